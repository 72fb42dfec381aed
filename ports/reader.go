package ports

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"gocombine/domain/table"
)

// FileKind names the supported source file formats.
type FileKind string

const (
	KindXLSX FileKind = "xlsx"
	KindXLSM FileKind = "xlsm"
	KindCSV  FileKind = "csv"
	KindTXT  FileKind = "txt"
)

// KindForPath derives the file kind from the path extension.
func KindForPath(path string) (FileKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return KindXLSX, true
	case ".xlsm":
		return KindXLSM, true
	case ".csv":
		return KindCSV, true
	case ".txt":
		return KindTXT, true
	}
	return "", false
}

// IsSpreadsheet reports whether the kind is an Excel workbook format.
func (k FileKind) IsSpreadsheet() bool {
	return k == KindXLSX || k == KindXLSM
}

// SourceFileSpec describes how to read one tabular file: where it is, what
// format it is, which sheet (spreadsheets), which rows carry the header and
// the first data record, the field delimiter (text files), and which columns
// to keep. Row indexes are 0-based here; the 1-based numbers users supply are
// converted once, at configuration load.
type SourceFileSpec struct {
	Path         string
	Kind         FileKind
	SheetName    string // spreadsheet kinds only; empty means the workbook's first sheet
	HeaderRow    int    // 0-based
	DataStartRow int    // 0-based, must be > HeaderRow
	Delimiter    rune   // txt only; csv always uses ','
	Columns      []string
}

// Validate checks the shape of the spec before any file is opened.
func (s SourceFileSpec) Validate() error {
	if s.Path == "" {
		return fmt.Errorf("source file path is empty")
	}
	if s.HeaderRow < 0 {
		return fmt.Errorf("%s: header row must be >= 1", s.Path)
	}
	if s.DataStartRow <= s.HeaderRow {
		return fmt.Errorf("%s: data start row must be after the header row", s.Path)
	}
	if s.Kind == KindTXT && s.Delimiter == 0 {
		return fmt.Errorf("%s: delimiter is required for txt files", s.Path)
	}
	return nil
}

// TableReader reads one source file into a Table whose columns come from the
// header row and whose rows are padded/truncated to the header width.
type TableReader interface {
	Read(ctx context.Context, spec SourceFileSpec) (*table.Table, error)
}
