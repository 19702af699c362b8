package index_test

import (
	"errors"
	"strings"
	"testing"

	"placing/internal/index"
	"placing/internal/records"
	"placing/internal/streamio"
	"placing/internal/testsupport"
)

func TestBuildHashOnly(t *testing.T) {
	ix, err := index.Build("ref", strings.NewReader("100\thA\n200\thB\nabc\thC\n"), index.Spec{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if ix.Len() != 3 {
		t.Fatalf("Len = %d, want 3", ix.Len())
	}
	for _, id := range []string{"100", "200", "abc"} {
		if !ix.Contains(id) {
			t.Fatalf("expected %q to be a member", id)
		}
	}
	for _, id := range []string{"300", "0100", "ab", ""} {
		if ix.Contains(id) {
			t.Fatalf("did not expect %q to be a member", id)
		}
	}
	p, ok := ix.Lookup("200")
	if !ok || p.Hash() != "hB" || p.Label() != "" {
		t.Fatalf("Lookup(200) = %q, %v", p, ok)
	}
	if _, declared := ix.DeclaredCount(); declared {
		t.Fatal("no count header expected")
	}
}

func TestBuildLaterRowShadowsEarlier(t *testing.T) {
	ix, err := index.Build("ref", strings.NewReader("7\told\n7\tnew\n"), index.Spec{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if ix.Len() != 1 {
		t.Fatalf("Len = %d, want 1", ix.Len())
	}
	p, _ := ix.Lookup("7")
	if p.Hash() != "new" {
		t.Fatalf("hash = %q, want new", p.Hash())
	}
}

func TestBuildWithLabelColumns(t *testing.T) {
	input := "id1\thash1\tX\tX\tCountryA|RegionB\n"
	ix, err := index.Build("ref", strings.NewReader(input), index.Spec{LabelColumns: []int{4}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	p, ok := ix.Lookup("id1")
	if !ok {
		t.Fatal("id1 missing")
	}
	if p.Hash() != "hash1" || p.Label() != "CountryA|RegionB" {
		t.Fatalf("payload = %q", p)
	}
	if got := p.Fields(); len(got) != 2 {
		t.Fatalf("fields = %q", got)
	}
}

func TestBuildShortRowIsFatal(t *testing.T) {
	input := "id1\thash1\tX\tX\tlabel\nid2\thash2\n"
	_, err := index.Build("ref.tsv", strings.NewReader(input), index.Spec{LabelColumns: []int{4}})
	if !errors.Is(err, records.ErrShortRow) {
		t.Fatalf("expected ErrShortRow, got %v", err)
	}
	var rowErr *records.RowError
	if !errors.As(err, &rowErr) || rowErr.Line != 2 || rowErr.Source != "ref.tsv" {
		t.Fatalf("unexpected row error: %#v", rowErr)
	}
}

func TestBuildCountHeader(t *testing.T) {
	ix, err := index.Build("ref", strings.NewReader("2\n10\th1\n11\th2\n"), index.Spec{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	n, ok := ix.DeclaredCount()
	if !ok || n != 2 {
		t.Fatalf("DeclaredCount = %d, %v", n, ok)
	}
	if ix.Len() != 2 || ix.Contains("2") {
		t.Fatalf("count header must not be indexed (len %d)", ix.Len())
	}
}

func TestPayloadSanitizesSeparator(t *testing.T) {
	p := index.NewPayload("h", "a"+index.PayloadSeparator+"b")
	if p.Label() != "a b" {
		t.Fatalf("Label = %q", p.Label())
	}
}

func TestBuildFileCompressed(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteLines(t, dir, "ref.zst", streamio.CodecZstd, "1\ta", "2\tb")
	ix, err := index.BuildFile(path, index.Spec{})
	if err != nil {
		t.Fatalf("BuildFile: %v", err)
	}
	if ix.Len() != 2 || ix.Name() != path {
		t.Fatalf("unexpected index %s with %d ids", ix.Name(), ix.Len())
	}
}

func TestBuildSet(t *testing.T) {
	s, err := index.BuildSet(strings.NewReader("h1\tx\th2\nh2\ny\nh1\n"))
	if err != nil {
		t.Fatalf("BuildSet: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}
	if !s.Contains("h1") || !s.Contains("y") || s.Contains("x") {
		t.Fatal("unexpected membership")
	}
}
