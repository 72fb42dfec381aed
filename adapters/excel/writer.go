package excel

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gocombine/domain/table"
	"gocombine/internal/errors"
	"gocombine/ports"

	"github.com/xuri/excelize/v2"
)

// OutputSheet is the sheet name all XLSX output is written to.
const OutputSheet = "Sheet1"

// Writer serializes a table to a single-sheet workbook.
type Writer struct{}

// NewWriter creates a new workbook writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write places the header row in row 1 and data rows beneath it, in table
// order. Number cells are written as numbers so spreadsheet consumers see
// real numerics; empty cells are left unset. No styling is applied.
func (w *Writer) Write(t *table.Table, spec ports.OutputSpec) (string, error) {
	info, err := os.Stat(spec.TargetFolder)
	if err != nil || !info.IsDir() {
		return "", errors.WriteFailed(fmt.Sprintf("output folder %s does not exist", spec.TargetFolder), err)
	}
	path := filepath.Join(spec.TargetFolder, spec.FileName+".xlsx")

	f := excelize.NewFile()
	defer f.Close()

	for i, h := range t.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(OutputSheet, cell, h); err != nil {
			return "", errors.WriteFailed("failed to write header row", err)
		}
	}

	for r, row := range t.Rows {
		rowIdx := r + 2
		for c, v := range row {
			if v.IsEmpty() {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, rowIdx)
			var value interface{}
			if v.Kind == table.KindNumber {
				value = v.Number
			} else {
				value = v.Text
			}
			if err := f.SetCellValue(OutputSheet, cell, value); err != nil {
				return "", errors.WriteFailed(fmt.Sprintf("failed to write row %d", rowIdx), err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", errors.WriteFailed(fmt.Sprintf("failed to save %s", path), err)
	}

	log.Printf("[ExcelWriter] wrote %d rows to %s", t.RowCount(), path)
	return path, nil
}
