package records

import (
	"errors"
	"fmt"
)

var (
	// ErrShortRow marks a row with fewer columns than the reader requires.
	ErrShortRow = errors.New("too few columns")
	// ErrFieldCount marks a row whose column count must match exactly.
	ErrFieldCount = errors.New("wrong number of fields")
	// ErrBadCoordinate marks a coordinate that is not a finite number.
	ErrBadCoordinate = errors.New("invalid coordinate")
)

// RowError describes a malformed row together with its position.
type RowError struct {
	Source string
	Line   int
	Text   string
	Err    error
}

func (e *RowError) Error() string {
	switch {
	case e.Source != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %v", e.Source, e.Line, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *RowError) Unwrap() error { return e.Err }

// At returns a copy of err positioned at source:line when err is a RowError.
// Other errors are returned unchanged.
func At(err error, source string, line int, text string) error {
	var rowErr *RowError
	if !errors.As(err, &rowErr) {
		return err
	}
	positioned := *rowErr
	positioned.Source = source
	positioned.Line = line
	positioned.Text = text
	return &positioned
}

func shortRow(want, got int) error {
	return &RowError{Err: fmt.Errorf("%w: want at least %d, got %d", ErrShortRow, want, got)}
}

func fieldCount(want, got int) error {
	return &RowError{Err: fmt.Errorf("%w: want %d, got %d", ErrFieldCount, want, got)}
}

func badCoordinate(name, value string) error {
	return &RowError{Err: fmt.Errorf("%w: %s %q", ErrBadCoordinate, name, value)}
}
