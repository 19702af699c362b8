// Package emit writes the delimited output formats of the build and
// resolution pipelines.
package emit

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Record is one enriched output row.
type Record struct {
	Identifier string
	Hash       string
	Latitude   string
	Longitude  string
	// Text is written verbatim as the final column.
	Text string
}

// Emitter serializes records onto a destination. Writes are not buffered
// here; wrap w in a bufio.Writer (or a streamio.Destination) for throughput.
type Emitter struct {
	w           io.Writer
	placeholder string
	written     int
}

// New returns an Emitter that substitutes placeholder for empty coordinates.
func New(w io.Writer, placeholder string) *Emitter {
	return &Emitter{w: w, placeholder: placeholder}
}

// WriteCount writes the leading record-count line of a dataset.
func (e *Emitter) WriteCount(n int) error {
	return e.writeString(strconv.Itoa(n) + "\n")
}

// WriteHeader writes a tab-delimited column header.
func (e *Emitter) WriteHeader(cols ...string) error {
	return e.writeString(strings.Join(cols, "\t") + "\n")
}

// WriteRecord writes identifier,hash,latitude,longitude,text.
func (e *Emitter) WriteRecord(rec Record) error {
	var b strings.Builder
	b.Grow(len(rec.Identifier) + len(rec.Hash) + len(rec.Latitude) + len(rec.Longitude) + len(rec.Text) + 5)
	b.WriteString(rec.Identifier)
	b.WriteByte(',')
	b.WriteString(rec.Hash)
	b.WriteByte(',')
	b.WriteString(e.coordinate(rec.Latitude))
	b.WriteByte(',')
	b.WriteString(e.coordinate(rec.Longitude))
	b.WriteByte(',')
	b.WriteString(rec.Text)
	b.WriteByte('\n')
	if err := e.writeString(b.String()); err != nil {
		return err
	}
	e.written++
	return nil
}

// WriteLine writes fields joined by tabs.
func (e *Emitter) WriteLine(fields ...string) error {
	if err := e.writeString(strings.Join(fields, "\t") + "\n"); err != nil {
		return err
	}
	e.written++
	return nil
}

// Written returns the number of data rows (records and lines) emitted.
func (e *Emitter) Written() int { return e.written }

func (e *Emitter) coordinate(v string) string {
	if v == "" {
		return e.placeholder
	}
	return v
}

func (e *Emitter) writeString(s string) error {
	if _, err := io.WriteString(e.w, s); err != nil {
		return fmt.Errorf("emit: %w", err)
	}
	return nil
}
