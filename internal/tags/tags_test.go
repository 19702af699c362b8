package tags

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   string
	}{
		{"commas and runs", []string{"Paris, France", "nice   photo", "", ""}, "Paris France nice photo"},
		{"newlines and tabs", []string{" a\nb ", "c\t\td"}, "a b c d"},
		{"only commas", []string{",,,", ","}, ""},
		{"machine tags kept", []string{"T", "D", "u1,u2", "vision:outdoor=099"}, "T D u1 u2 vision:outdoor=099"},
		{"nothing", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.fields...); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.fields, got, tt.want)
			}
		})
	}
}

func TestEncodePlaceLabel(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"CountryA|RegionB", "CountryA RegionB"},
		{"United States@New York|New York City", "United+States New+York New+York+City"},
		{"Île-de-France|Paris", "%C3%8Ele-de-France Paris"},
		{"A||B", "A B"},
		{"a,b|c/d", "a%2Cb c%2Fd"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := EncodePlaceLabel(tt.label); got != tt.want {
			t.Errorf("EncodePlaceLabel(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestNormalizerLabelPassThrough(t *testing.T) {
	n := New(Options{EncodeLabels: false})
	got := n.Normalize(n.Label("Paris,Île-de-France,France"), "Title")
	if got != "Paris Île-de-France France Title" {
		t.Fatalf("unexpected pass-through label: %q", got)
	}

	enc := New(Options{EncodeLabels: true})
	if got := enc.Normalize(enc.Label("CountryA|RegionB"), "Title"); got != "CountryA RegionB Title" {
		t.Fatalf("unexpected encoded label: %q", got)
	}
}

func TestNormalizerUnicodeForm(t *testing.T) {
	decomposed := "Cafe\u0301"
	if got := New(Options{UnicodeForm: "NFC"}).Normalize(decomposed); got != "Caf\u00e9" {
		t.Fatalf("NFC = %q", got)
	}
	if got := New(Options{}).Normalize(decomposed); got != decomposed {
		t.Fatalf("expected no normalization by default, got %q", got)
	}
	if got := New(Options{UnicodeForm: "nfkc"}).Normalize("ＡＢ"); got != "AB" {
		t.Fatalf("NFKC = %q", got)
	}
}
