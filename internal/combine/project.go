package combine

import (
	"gocombine/domain/table"
	"gocombine/internal/errors"
)

// Project reduces a table to the requested columns, in the requested order,
// keeping every row. Matching is exact and case-sensitive; silent partial
// extraction would corrupt downstream merges, so any missing column fails the
// whole file with COLUMN_NOT_FOUND. An empty request keeps all columns.
func Project(t *table.Table, columns []string, fileLabel string) (*table.Table, error) {
	if len(columns) == 0 {
		return t, nil
	}

	indexes := make([]int, 0, len(columns))
	var missing []string
	for _, name := range columns {
		idx := t.ColumnIndex(name)
		if idx < 0 {
			missing = append(missing, name)
			continue
		}
		indexes = append(indexes, idx)
	}
	if len(missing) > 0 {
		return nil, errors.ColumnNotFound(fileLabel, missing)
	}

	projected, err := table.New(columns)
	if err != nil {
		return nil, errors.ColumnNotFound(fileLabel, columns)
	}
	for _, row := range t.Rows {
		out := make(table.Row, len(indexes))
		for i, idx := range indexes {
			out[i] = row[idx]
		}
		projected.Append(out)
	}
	return projected, nil
}
