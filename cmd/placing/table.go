package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"placing/internal/evaluate"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(title string, headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if title != "" {
		tw.SetTitle("%s", title)
	}

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// renderSummary formats one evaluation as a threshold table followed by the
// distribution statistics.
func renderSummary(res evaluate.Result) string {
	s := res.Summary
	rows := make([][]string, 0, len(s.Tiers)+8)
	for _, tier := range s.Tiers {
		rows = append(rows, []string{
			"< " + evaluate.FormatThreshold(tier.Km) + " km",
			strconv.Itoa(tier.Count),
			fmt.Sprintf("%.2f %%", tier.Percent),
		})
	}
	for _, stat := range []struct {
		label string
		value float64
	}{
		{"min", s.Min},
		{"max", s.Max},
		{"mean", s.Mean},
		{"stddev", s.StdDev},
		{"Q1", s.Q1},
		{"Q2", s.Q2},
		{"Q3", s.Q3},
	} {
		rows = append(rows, []string{stat.label, fmt.Sprintf("%.4f km", stat.value), ""})
	}
	rows = append(rows, []string{"records", strconv.Itoa(s.Count), ""})
	if res.Skipped > 0 {
		rows = append(rows, []string{"skipped", strconv.Itoa(res.Skipped), ""})
	}
	return renderTable(res.Path, []string{"Distance", "Items", "Share"}, rows, []columnAlignment{alignLeft, alignRight, alignRight})
}
