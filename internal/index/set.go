package index

import (
	"fmt"
	"io"

	"placing/internal/records"
	"placing/internal/streamio"
)

// Set is a membership-only identifier set built from column 0 of a stream.
type Set struct {
	members map[string]struct{}
}

// BuildSet collects the first column of every line in r.
func BuildSet(r io.Reader) (*Set, error) {
	s := &Set{members: make(map[string]struct{})}
	err := streamio.ForEachLine(r, func(_ int, line string) error {
		s.members[records.FirstField(line)] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// BuildSetFile opens path and builds a Set from it.
func BuildSetFile(path string) (s *Set, err error) {
	r, err := streamio.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	s, err = BuildSet(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return s, nil
}

// Contains reports whether id is a member.
func (s *Set) Contains(id string) bool {
	_, ok := s.members[id]
	return ok
}

// Len returns the number of distinct members.
func (s *Set) Len() int { return len(s.members) }
