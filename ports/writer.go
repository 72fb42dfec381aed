package ports

import (
	"gocombine/domain/table"
)

// OutputFormat names the supported output serializations.
type OutputFormat string

const (
	FormatCSV  OutputFormat = "csv"
	FormatXLSX OutputFormat = "xlsx"
)

// OutputSpec says where the final table goes. FileName carries no extension;
// the writer appends one matching its format.
type OutputSpec struct {
	TargetFolder string
	FileName     string
	Format       OutputFormat
}

// TableWriter serializes a table and returns the full output path.
type TableWriter interface {
	Write(t *table.Table, spec OutputSpec) (string, error)
}
