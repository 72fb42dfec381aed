// Package profiling computes per-column summary statistics for the combined
// table, surfaced through the processing report so a caller can sanity-check
// a run (row counts, value ranges) without opening the output file.
package profiling

import (
	"github.com/montanaflynn/stats"

	"gocombine/domain/table"
)

// ColumnProfile summarizes one column of the combined table. Numeric fields
// are only meaningful when NumericCount > 0.
type ColumnProfile struct {
	Column       string  `json:"column"`
	Count        int     `json:"count"`         // non-empty cells
	NumericCount int     `json:"numeric_count"` // cells with a numeric value
	Mean         float64 `json:"mean"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	StdDev       float64 `json:"std_dev"`
}

// ProfileTable profiles every column of the table. Text cells that parse as
// numbers count toward the numeric summary, so delimited sources profile the
// same as spreadsheets.
func ProfileTable(t *table.Table) []ColumnProfile {
	profiles := make([]ColumnProfile, 0, len(t.Columns))
	for col, name := range t.Columns {
		p := ColumnProfile{Column: name}
		values := make([]float64, 0, len(t.Rows))
		for row := range t.Rows {
			cell := t.Rows[row][col]
			if cell.IsEmpty() {
				continue
			}
			p.Count++
			if v, ok := cell.Float(); ok {
				values = append(values, v)
			}
		}
		p.NumericCount = len(values)
		if len(values) > 0 {
			// These only error on empty input, which is guarded above.
			p.Mean, _ = stats.Mean(values)
			p.Min, _ = stats.Min(values)
			p.Max, _ = stats.Max(values)
			p.StdDev, _ = stats.StandardDeviation(values)
		}
		profiles = append(profiles, p)
	}
	return profiles
}
