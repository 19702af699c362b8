package index

import "strings"

// PayloadSeparator joins payload columns. It never occurs in tab- or
// comma-delimited text once source columns are sanitized.
const PayloadSeparator = "\x1f"

// Payload is the label attached to an identifier at build time: the hash
// identifier followed by any label columns, joined by PayloadSeparator.
type Payload string

// NewPayload joins fields into a Payload, replacing separator characters in
// the source text with spaces.
func NewPayload(fields ...string) Payload {
	clean := make([]string, len(fields))
	for i, f := range fields {
		clean[i] = strings.ReplaceAll(f, PayloadSeparator, " ")
	}
	return Payload(strings.Join(clean, PayloadSeparator))
}

// Fields splits the payload into its columns.
func (p Payload) Fields() []string {
	return strings.Split(string(p), PayloadSeparator)
}

// Hash returns the hash identifier column.
func (p Payload) Hash() string {
	hash, _, _ := strings.Cut(string(p), PayloadSeparator)
	return hash
}

// Label returns the label columns joined with single spaces, or "" when the
// payload carries no label.
func (p Payload) Label() string {
	_, rest, ok := strings.Cut(string(p), PayloadSeparator)
	if !ok {
		return ""
	}
	return strings.ReplaceAll(rest, PayloadSeparator, " ")
}
