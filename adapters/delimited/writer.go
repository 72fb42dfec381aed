package delimited

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gocombine/domain/table"
	"gocombine/internal/errors"
	"gocombine/ports"
)

// Writer serializes a table as comma-delimited CSV.
type Writer struct{}

// NewWriter creates a new CSV writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write emits a UTF-8 file with a leading BOM (so Excel opens it with the
// right encoding), a header row, and one line per row in table order. Quoting
// of embedded commas, quotes and newlines is handled by encoding/csv.
func (w *Writer) Write(t *table.Table, spec ports.OutputSpec) (string, error) {
	info, err := os.Stat(spec.TargetFolder)
	if err != nil || !info.IsDir() {
		return "", errors.WriteFailed(fmt.Sprintf("output folder %s does not exist", spec.TargetFolder), err)
	}
	path := filepath.Join(spec.TargetFolder, spec.FileName+".csv")

	f, err := os.Create(path)
	if err != nil {
		return "", errors.WriteFailed(fmt.Sprintf("failed to create %s", path), err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return "", errors.WriteFailed(fmt.Sprintf("failed to write %s", path), err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(t.Columns); err != nil {
		return "", errors.WriteFailed("failed to write header row", err)
	}

	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, cell := range row {
			record[i] = cell.String()
		}
		if err := cw.Write(record); err != nil {
			return "", errors.WriteFailed(fmt.Sprintf("failed to write %s", path), err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", errors.WriteFailed(fmt.Sprintf("failed to write %s", path), err)
	}

	log.Printf("[DelimitedWriter] wrote %d rows to %s", t.RowCount(), path)
	return path, nil
}
