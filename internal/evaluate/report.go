package evaluate

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"placing/internal/emit"
)

// ReportColumns is the header of the per-record section.
var ReportColumns = []string{"hash", "estimated_lat", "estimated_lon", "real_lat", "real_lon", "error_km"}

type reportWriter struct {
	w  io.Writer
	em *emit.Emitter
}

func newReportWriter(w io.Writer) *reportWriter {
	return &reportWriter{w: w, em: emit.New(w, "")}
}

func (r *reportWriter) header() error {
	return r.em.WriteHeader(ReportColumns...)
}

func (r *reportWriter) detail(hash string, estimated, truth Point, km float64) error {
	return r.em.WriteLine(hash,
		formatNumber(estimated.Lat), formatNumber(estimated.Lon),
		formatNumber(truth.Lat), formatNumber(truth.Lon),
		formatNumber(km),
	)
}

func (r *reportWriter) summary(s Summary) error {
	var b strings.Builder
	b.WriteString("\ndistance\t#items\tpercentage\n")
	for _, tier := range s.Tiers {
		fmt.Fprintf(&b, "%s km\t%d\t%10.2f %%\n", FormatThreshold(tier.Km), tier.Count, tier.Percent)
	}
	for _, row := range []struct {
		label string
		value float64
	}{
		{"min:", s.Min},
		{"max:", s.Max},
		{"mean:", s.Mean},
		{"stddev:", s.StdDev},
		{"Q1:", s.Q1},
		{"Q2:", s.Q2},
		{"Q3:", s.Q3},
	} {
		fmt.Fprintf(&b, "%s\t%10.4f\n", row.label, row.value)
	}
	if _, err := io.WriteString(r.w, b.String()); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// FormatThreshold renders a threshold in its shortest form ("0.001", "1").
func FormatThreshold(km float64) string {
	return strconv.FormatFloat(km, 'f', -1, 64)
}

// formatNumber renders v with twelve significant digits, keeping a decimal
// point on integral values ("45.0", "0.000123456789012").
func formatNumber(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	if math.IsInf(v, 0) {
		if v > 0 {
			return "inf"
		}
		return "-inf"
	}
	s := strconv.FormatFloat(v, 'g', 12, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
