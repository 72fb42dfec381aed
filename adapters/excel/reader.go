// Package excel reads and writes Excel workbooks (.xlsx/.xlsm) via excelize.
package excel

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gocombine/domain/table"
	"gocombine/internal/errors"
	"gocombine/ports"

	"github.com/xuri/excelize/v2"
)

// Reader reads one named sheet of a workbook into a Table.
type Reader struct{}

// NewReader creates a new workbook reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read opens the workbook, takes column names from the header row and data
// from the data-start row onward. An empty sheet name selects the workbook's
// first sheet, which is how lookup files exported from other systems are read.
// Native cell types are preserved: numeric cells become Number cells,
// everything else Text or Empty. All errors carry the FILE_READ code so the
// combiner can record and skip the file.
func (r *Reader) Read(ctx context.Context, spec ports.SourceFileSpec) (*table.Table, error) {
	if err := spec.Validate(); err != nil {
		return nil, errors.FileRead(spec.Path, err)
	}
	if _, err := os.Stat(spec.Path); err != nil {
		return nil, errors.FileRead(spec.Path, err)
	}

	f, err := excelize.OpenFile(spec.Path)
	if err != nil {
		return nil, errors.FileRead(spec.Path, err)
	}
	defer f.Close()

	sheet := spec.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, errors.FileRead(spec.Path, fmt.Errorf("sheet %q not found", sheet))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.FileRead(spec.Path, err)
	}
	if spec.HeaderRow >= len(rows) {
		return nil, errors.FileRead(spec.Path, fmt.Errorf("header row %d is beyond the sheet's %d rows", spec.HeaderRow+1, len(rows)))
	}

	headers := table.DedupeColumns(rows[spec.HeaderRow])
	t, err := table.New(headers)
	if err != nil {
		return nil, errors.FileRead(spec.Path, err)
	}

	for i := spec.DataStartRow; i < len(rows); i++ {
		row := make(table.Row, len(headers))
		for j := range headers {
			var raw string
			if j < len(rows[i]) {
				raw = rows[i][j]
			}
			row[j] = r.cell(f, sheet, j, i, raw)
		}
		t.Append(row)
	}

	log.Printf("[ExcelReader] %s: sheet %q read (%d columns, %d rows)",
		spec.Path, sheet, len(t.Columns), t.RowCount())
	return t, nil
}

// cell classifies one cell using the workbook's native type. Plain numeric
// cells carry no explicit type attribute, so both CellTypeNumber and unset
// types are parsed; string cells (shared or inline) always stay text, which
// keeps values like "00123" intact.
func (r *Reader) cell(f *excelize.File, sheet string, col, row int, raw string) table.Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return table.Empty()
	}

	ref, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err == nil {
		cellType, err := f.GetCellType(sheet, ref)
		if err == nil && (cellType == excelize.CellTypeNumber || cellType == excelize.CellTypeUnset) {
			if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
				return table.NewNumber(v)
			}
		}
	}
	return table.NewText(trimmed)
}
