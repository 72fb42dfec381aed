// Package delimited reads and writes delimited-text tables (.csv and .txt
// with a configurable separator). Input handling mirrors what the original
// spreadsheet sources demand in practice: UTF-8 BOMs are skipped, files that
// are not valid UTF-8 are re-decoded as Latin-1, and ragged lines are kept
// with missing trailing fields treated as empty.
package delimited

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"unicode/utf8"

	"gocombine/domain/table"
	"gocombine/internal/errors"
	"gocombine/ports"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader reads one delimited text file into a Table.
type Reader struct{}

// NewReader creates a new delimited-text reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read parses the whole file, takes column names from the header row and data
// from the data-start row onward. CSV files always split on ','; txt files use
// the configured delimiter. All cells are text (or empty) since delimited
// input carries no type information.
func (r *Reader) Read(ctx context.Context, spec ports.SourceFileSpec) (*table.Table, error) {
	if err := spec.Validate(); err != nil {
		return nil, errors.FileRead(spec.Path, err)
	}

	data, err := os.ReadFile(spec.Path)
	if err != nil {
		return nil, errors.FileRead(spec.Path, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	if !utf8.Valid(data) {
		// Same fallback chain the legacy tool used: try UTF-8, then Latin-1.
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, errors.FileRead(spec.Path, fmt.Errorf("not valid UTF-8 and Latin-1 decode failed: %w", err))
		}
		log.Printf("[DelimitedReader] %s: not valid UTF-8, decoded as Latin-1", spec.Path)
		data = decoded
	}

	delimiter := ','
	if spec.Kind == ports.KindTXT {
		delimiter = spec.Delimiter
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1 // ragged lines are data, not errors
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.FileRead(spec.Path, err)
	}
	if spec.HeaderRow >= len(records) {
		return nil, errors.FileRead(spec.Path, fmt.Errorf("header row %d is beyond the file's %d lines", spec.HeaderRow+1, len(records)))
	}

	headers := table.DedupeColumns(records[spec.HeaderRow])
	t, err := table.New(headers)
	if err != nil {
		return nil, errors.FileRead(spec.Path, err)
	}

	for i := spec.DataStartRow; i < len(records); i++ {
		row := make(table.Row, len(headers))
		for j := range headers {
			if j < len(records[i]) {
				row[j] = table.NewText(records[i][j])
			} else {
				row[j] = table.Empty()
			}
		}
		t.Append(row)
	}

	log.Printf("[DelimitedReader] %s: read (%d columns, %d rows)", spec.Path, len(t.Columns), t.RowCount())
	return t, nil
}
