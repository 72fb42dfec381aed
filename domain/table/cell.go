package table

import "strconv"

// CellKind tags the variant held by a Cell.
type CellKind int

const (
	KindEmpty CellKind = iota
	KindText
	KindNumber
)

// Cell is a single table value. Spreadsheet cells may arrive typed (number,
// string, blank); delimited-text cells are always text or empty. Key
// comparison and CSV output go through String, so a numeric 100 and a textual
// "100" render identically.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// Empty returns the empty cell value.
func Empty() Cell {
	return Cell{Kind: KindEmpty}
}

// Text cells keep the raw string; an empty string collapses to the empty cell.
func NewText(s string) Cell {
	if s == "" {
		return Empty()
	}
	return Cell{Kind: KindText, Text: s}
}

// NewNumber creates a numeric cell.
func NewNumber(v float64) Cell {
	return Cell{Kind: KindNumber, Number: v}
}

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool {
	return c.Kind == KindEmpty
}

// String renders the cell for output and key comparison. Numbers use the
// shortest representation that round-trips (so 9.99 stays "9.99", 100 stays
// "100").
func (c Cell) String() string {
	switch c.Kind {
	case KindNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case KindText:
		return c.Text
	default:
		return ""
	}
}

// Float returns the numeric value of the cell and whether one is available.
// Text cells that parse as numbers count as numeric for profiling purposes.
func (c Cell) Float() (float64, bool) {
	switch c.Kind {
	case KindNumber:
		return c.Number, true
	case KindText:
		v, err := strconv.ParseFloat(c.Text, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}
