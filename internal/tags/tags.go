// Package tags turns photo free text into the single token string carried in
// the last column of emitted records.
package tags

import (
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// labelSeparators split hierarchical place labels into levels.
const labelSeparators = "|@"

// Normalizer merges free-text fields into one normalized token string.
type Normalizer struct {
	form         norm.Form
	normalize    bool
	encodeLabels bool
}

// Options configures a Normalizer.
type Options struct {
	// EncodeLabels percent-encodes each level of hierarchical place labels.
	EncodeLabels bool
	// UnicodeForm is "", "NFC" or "NFKC".
	UnicodeForm string
}

// New builds a Normalizer.
func New(opts Options) *Normalizer {
	n := &Normalizer{encodeLabels: opts.EncodeLabels}
	switch strings.ToUpper(opts.UnicodeForm) {
	case "NFC":
		n.form, n.normalize = norm.NFC, true
	case "NFKC":
		n.form, n.normalize = norm.NFKC, true
	}
	return n
}

// Normalize joins fields with single spaces, removes commas, collapses every
// whitespace run (newlines included) to one space, and trims the result.
func (n *Normalizer) Normalize(fields ...string) string {
	joined := strings.Join(fields, " ")
	if n != nil && n.normalize {
		joined = n.form.String(joined)
	}
	joined = strings.ReplaceAll(joined, ",", " ")
	return strings.Join(strings.Fields(joined), " ")
}

// Label renders a place label as leading tokens. With label encoding enabled
// each hierarchy level becomes one percent-encoded token.
func (n *Normalizer) Label(label string) string {
	if n == nil || !n.encodeLabels {
		return label
	}
	return EncodePlaceLabel(label)
}

// Normalize applies the default normalization (no Unicode form).
func Normalize(fields ...string) string {
	var n *Normalizer
	return n.Normalize(fields...)
}

// EncodePlaceLabel percent-encodes every segment of a label separated by '|'
// or '@' and joins the encoded segments with single spaces. Spaces inside a
// segment become '+', so each level stays one token.
func EncodePlaceLabel(label string) string {
	segments := strings.FieldsFunc(label, func(r rune) bool {
		return strings.ContainsRune(labelSeparators, r)
	})
	encoded := make([]string, 0, len(segments))
	for _, segment := range segments {
		encoded = append(encoded, url.QueryEscape(segment))
	}
	return strings.Join(encoded, " ")
}
