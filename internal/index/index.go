package index

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"placing/internal/records"
	"placing/internal/streamio"
)

// Spec selects the reference columns that make up a payload.
type Spec struct {
	// LabelColumns lists zero-based label columns; empty means hash only.
	LabelColumns []int
}

// Index is an immutable identifier membership set with per-identifier payloads.
type Index struct {
	name     string
	payloads map[string]Payload
	numeric  *roaring64.Bitmap

	declared    int
	hasDeclared bool
}

// Build reads a tab-delimited reference stream. A row with fewer columns than
// spec requires is returned as a *records.RowError. Later rows for the same
// identifier replace earlier ones.
func Build(name string, r io.Reader, spec Spec) (*Index, error) {
	ix := &Index{
		name:     name,
		payloads: make(map[string]Payload),
		numeric:  roaring64.New(),
	}
	err := streamio.ForEachLine(r, func(lineNo int, line string) error {
		if lineNo == 1 {
			if n, ok := countHeader(line); ok {
				ix.declared, ix.hasDeclared = n, true
				return nil
			}
		}
		ref, err := records.ParseReference(line, spec.LabelColumns)
		if err != nil {
			return records.At(err, name, lineNo, line)
		}
		ix.add(ref)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("build index %s: %w", name, err)
	}
	ix.numeric.RunOptimize()
	return ix, nil
}

// BuildFile opens path (compressed or plain) and builds an Index from it.
func BuildFile(path string, spec Spec) (ix *Index, err error) {
	r, err := streamio.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return Build(path, r, spec)
}

func (ix *Index) add(ref records.Reference) {
	fields := make([]string, 0, 1+len(ref.Labels))
	fields = append(fields, ref.Hash)
	fields = append(fields, ref.Labels...)
	ix.payloads[ref.Identifier] = NewPayload(fields...)
	if n, ok := canonicalUint(ref.Identifier); ok {
		ix.numeric.Add(n)
	}
}

// Name returns the source the index was built from.
func (ix *Index) Name() string { return ix.name }

// Contains reports whether id is a member.
func (ix *Index) Contains(id string) bool {
	if n, ok := canonicalUint(id); ok {
		return ix.numeric.Contains(n)
	}
	_, ok := ix.payloads[id]
	return ok
}

// Lookup returns the payload for id.
func (ix *Index) Lookup(id string) (Payload, bool) {
	p, ok := ix.payloads[id]
	return p, ok
}

// Len returns the number of distinct identifiers.
func (ix *Index) Len() int { return len(ix.payloads) }

// DeclaredCount returns the record count declared by a leading count line,
// if the reference stream had one.
func (ix *Index) DeclaredCount() (int, bool) { return ix.declared, ix.hasDeclared }

// countHeader recognizes a leading line made of a single decimal number.
func countHeader(line string) (int, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.ContainsRune(line, '\t') {
		return 0, false
	}
	for i := 0; i < len(line); i++ {
		if line[i] < '0' || line[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, false
	}
	return n, true
}

// canonicalUint parses ids whose decimal form round-trips exactly, so "7" and
// "007" never collide in the bitmap.
func canonicalUint(id string) (uint64, bool) {
	if id == "" || len(id) > 20 || (len(id) > 1 && id[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
