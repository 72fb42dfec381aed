// Package table holds the in-memory tabular data model shared by readers,
// the combiner, the lookup merger and the writers. A Table is a rectangular
// block of cells with a single, duplicate-free column ordering; every row is
// padded or truncated to that ordering on append.
package table

import (
	"fmt"
	"strings"
)

// Row is one record, cell-aligned to the owning Table's Columns.
type Row []Cell

// Table is an ordered sequence of rows sharing one column ordering.
type Table struct {
	Columns []string
	Rows    []Row
}

// New creates an empty table with the given column ordering.
// Column names must be unique.
func New(columns []string) (*Table, error) {
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c] {
			return nil, fmt.Errorf("duplicate column name %q", c)
		}
		seen[c] = true
	}
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}, nil
}

// Append adds a row, padding missing trailing cells with Empty and dropping
// cells beyond the column count. Ragged input never errors.
func (t *Table) Append(row Row) {
	normalized := make(Row, len(t.Columns))
	for i := range normalized {
		if i < len(row) {
			normalized[i] = row[i]
		} else {
			normalized[i] = Empty()
		}
	}
	t.Rows = append(t.Rows, normalized)
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column, or -1. Matching is
// exact and case-sensitive.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the cell at (row, column index). Out-of-range access yields
// the empty cell rather than panicking.
func (t *Table) Cell(row, col int) Cell {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Columns) {
		return Empty()
	}
	return t.Rows[row][col]
}

// DedupeColumns makes header names unique by suffixing repeats with ".1",
// ".2", ... in order of appearance. Blank header cells become "Unnamed".
func DedupeColumns(names []string) []string {
	seen := make(map[string]int, len(names))
	out := make([]string, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			name = "Unnamed"
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			out = append(out, fmt.Sprintf("%s.%d", name, n+1))
			continue
		}
		seen[name] = 0
		out = append(out, name)
	}
	return out
}
