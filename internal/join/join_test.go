package join_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"placing/internal/emit"
	"placing/internal/index"
	"placing/internal/join"
	"placing/internal/records"
	"placing/internal/streamio"
	"placing/internal/tags"
	"placing/internal/testsupport"
)

// dataRow builds a 12-column metadata row.
func dataRow(id, title, desc, user, machine, lon, lat string) string {
	return strings.Join([]string{id, "u", "d", "t", "x", "y", title, desc, user, machine, lon, lat}, "\t")
}

func mustIndex(t *testing.T, body string, cols ...int) *index.Index {
	t.Helper()
	ix, err := index.Build("ref", strings.NewReader(body), index.Spec{LabelColumns: cols})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return ix
}

func TestTrainRecordWithEncodedLabel(t *testing.T) {
	dir := t.TempDir()
	data := testsupport.WriteLines(t, dir, "data.gz", streamio.CodecGzip,
		dataRow("id1", "Title", "Desc", "user", "mach", "12.5", "45.5"),
	)
	var out bytes.Buffer
	targets := []join.Target{{
		Name:    "out",
		Index:   mustIndex(t, "id1\thash1\tX\tX\tCountryA|RegionB\n", 4),
		Emitter: emit.New(&out, ""),
	}}
	j := join.New(targets, join.Options{
		Mode:         join.ModeTrain,
		Normalizer:   tags.New(tags.Options{EncodeLabels: true}),
		AbortOnError: true,
	})
	if err := j.WriteCounts(); err != nil {
		t.Fatalf("WriteCounts: %v", err)
	}
	stats, err := j.Run(context.Background(), []string{data})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := "1\nid1,hash1,45.5,12.5,CountryA RegionB Title Desc user mach\n"
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
	if stats.Scanned != 1 || stats.Matched != 1 || stats.Emitted != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestTestModeUsesPlaceholders(t *testing.T) {
	dir := t.TempDir()
	data := testsupport.WriteLines(t, dir, "data.txt", streamio.CodecPlain,
		dataRow("7", "a,b", "c  d", "e", "f", "1", "2"),
	)
	var out bytes.Buffer
	targets := []join.Target{{Name: "out", Index: mustIndex(t, "7\th7\n"), Emitter: emit.New(&out, "")}}
	j := join.New(targets, join.Options{Mode: join.ModeTest, AbortOnError: true})
	if _, err := j.Run(context.Background(), []string{data}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got, want := out.String(), "7,h7,,,a b c d e f\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEmissionOrderAcrossStreams(t *testing.T) {
	dir := t.TempDir()
	first := testsupport.WriteLines(t, dir, "a.zst", streamio.CodecZstd,
		dataRow("3", "c", "", "", "", "0", "0"),
		dataRow("9", "miss", "", "", "", "0", "0"),
		dataRow("1", "a", "", "", "", "0", "0"),
	)
	second := testsupport.WriteLines(t, dir, "b.lz4", streamio.CodecLZ4,
		dataRow("2", "b", "", "", "", "0", "0"),
		dataRow("3", "again", "", "", "", "0", "0"),
	)
	var out bytes.Buffer
	targets := []join.Target{{Name: "out", Index: mustIndex(t, "1\th1\n2\th2\n3\th3\n"), Emitter: emit.New(&out, "")}}
	j := join.New(targets, join.Options{Mode: join.ModeTrain, AbortOnError: true})
	stats, err := j.Run(context.Background(), []string{first, second})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{"3,h3,0,0,c", "1,h1,0,0,a", "2,h2,0,0,b", "3,h3,0,0,again"}
	got := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("got %q, want %q", got, want)
	}
	if stats.Streams != 2 || stats.Scanned != 5 || stats.Emitted != 4 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestMultipleTargetsShareOnePass(t *testing.T) {
	dir := t.TempDir()
	data := testsupport.WriteLines(t, dir, "data", streamio.CodecPlain,
		dataRow("1", "one", "", "", "", "0", "0"),
		dataRow("2", "two", "", "", "", "0", "0"),
	)
	var left, right bytes.Buffer
	targets := []join.Target{
		{Name: "left", Index: mustIndex(t, "1\tL1\n2\tL2\n"), Emitter: emit.New(&left, "")},
		{Name: "right", Index: mustIndex(t, "2\tR2\n"), Emitter: emit.New(&right, "")},
	}
	j := join.New(targets, join.Options{Mode: join.ModeTrain, AbortOnError: true})
	stats, err := j.Run(context.Background(), []string{data})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if left.String() != "1,L1,0,0,one\n2,L2,0,0,two\n" {
		t.Fatalf("left = %q", left.String())
	}
	if right.String() != "2,R2,0,0,two\n" {
		t.Fatalf("right = %q", right.String())
	}
	if stats.Matched != 2 || stats.Emitted != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	data := testsupport.WriteLines(t, dir, "data", streamio.CodecPlain,
		dataRow("1", "x", "y", "z", "w", "3", "4"),
	)
	ix := mustIndex(t, "1\th\n")
	run := func() string {
		var out bytes.Buffer
		j := join.New([]join.Target{{Name: "o", Index: ix, Emitter: emit.New(&out, "")}}, join.Options{AbortOnError: true})
		if _, err := j.Run(context.Background(), []string{data}); err != nil {
			t.Fatalf("Run: %v", err)
		}
		return out.String()
	}
	if a, b := run(), run(); a != b {
		t.Fatalf("outputs differ: %q vs %q", a, b)
	}
}

func TestMalformedHitRow(t *testing.T) {
	dir := t.TempDir()
	data := testsupport.WriteLines(t, dir, "data", streamio.CodecPlain,
		"1\tonly\tthree",
		dataRow("2", "ok", "", "", "", "0", "0"),
		"3\tmissed\tshort",
	)
	ix := mustIndex(t, "1\th1\n2\th2\n")

	t.Run("abort", func(t *testing.T) {
		var out bytes.Buffer
		j := join.New([]join.Target{{Name: "o", Index: ix, Emitter: emit.New(&out, "")}}, join.Options{AbortOnError: true})
		_, err := j.Run(context.Background(), []string{data})
		if !errors.Is(err, records.ErrShortRow) {
			t.Fatalf("expected ErrShortRow, got %v", err)
		}
		var rowErr *records.RowError
		if !errors.As(err, &rowErr) || rowErr.Line != 1 || rowErr.Source != data {
			t.Fatalf("unexpected position: %v", err)
		}
		if out.Len() != 0 {
			t.Fatalf("nothing should be emitted, got %q", out.String())
		}
	})

	t.Run("skip", func(t *testing.T) {
		var out bytes.Buffer
		j := join.New([]join.Target{{Name: "o", Index: ix, Emitter: emit.New(&out, "")}}, join.Options{})
		stats, err := j.Run(context.Background(), []string{data})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if stats.Skipped != 1 || out.String() != "2,h2,0,0,ok\n" {
			t.Fatalf("stats %+v output %q", stats, out.String())
		}
	})
}

func TestMissingStreamFails(t *testing.T) {
	j := join.New(nil, join.Options{})
	if _, err := j.Run(context.Background(), []string{t.TempDir() + "/absent.bz2"}); err == nil {
		t.Fatal("expected error for missing stream")
	}
}
