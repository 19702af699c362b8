package emit_test

import (
	"bytes"
	"errors"
	"testing"

	"placing/internal/emit"
)

func TestWriteRecord(t *testing.T) {
	tests := []struct {
		name        string
		placeholder string
		rec         emit.Record
		want        string
	}{
		{
			name: "train",
			rec:  emit.Record{Identifier: "id1", Hash: "h1", Latitude: "45.5", Longitude: "12.5", Text: "a b"},
			want: "id1,h1,45.5,12.5,a b\n",
		},
		{
			name: "test mode empty placeholder",
			rec:  emit.Record{Identifier: "id1", Hash: "h1", Text: "tags"},
			want: "id1,h1,,,tags\n",
		},
		{
			name:        "custom placeholder",
			placeholder: "0",
			rec:         emit.Record{Identifier: "id1", Hash: "h1"},
			want:        "id1,h1,0,0,\n",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			e := emit.New(&buf, tc.placeholder)
			if err := e.WriteRecord(tc.rec); err != nil {
				t.Fatalf("WriteRecord: %v", err)
			}
			if buf.String() != tc.want {
				t.Fatalf("got %q, want %q", buf.String(), tc.want)
			}
			if e.Written() != 1 {
				t.Fatalf("Written = %d", e.Written())
			}
		})
	}
}

func TestCountHeaderAndLine(t *testing.T) {
	var buf bytes.Buffer
	e := emit.New(&buf, "")
	if err := e.WriteCount(42); err != nil {
		t.Fatal(err)
	}
	if err := e.WriteHeader("a", "b"); err != nil {
		t.Fatal(err)
	}
	if err := e.WriteLine("7", "h\tx"); err != nil {
		t.Fatal(err)
	}
	want := "42\na\tb\n7\th\tx\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
	if e.Written() != 1 {
		t.Fatalf("count and header lines must not count as rows, got %d", e.Written())
	}
}

type failingWriter struct{}

var errDiskFull = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) { return 0, errDiskFull }

func TestWriteErrorWrapped(t *testing.T) {
	e := emit.New(failingWriter{}, "")
	if err := e.WriteRecord(emit.Record{}); !errors.Is(err, errDiskFull) {
		t.Fatalf("expected wrapped write error, got %v", err)
	}
}
