// Package config loads and validates the run configuration. The on-disk
// settings document (a JSON file, written by whatever interface drives the
// engine) uses 1-based row numbers and comma-separated column lists the way
// users type them; Build converts that document into the validated, 0-based
// Config the engine consumes. Validation fails fast: a bad offset or a
// missing required field is a configuration error, not a per-file problem.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gocombine/internal/errors"
	"gocombine/ports"
)

// Settings mirrors the persisted settings document verbatim.
type Settings struct {
	InputFolder         string `json:"input_folder"`
	SheetName           string `json:"sheet_name"`
	HeaderRow           int    `json:"header_row"`      // 1-based
	DataStartRow        int    `json:"data_start_row"`  // 1-based
	ColumnsToExtract    string `json:"columns_to_extract"`
	EnableTxtProcessing bool   `json:"enable_txt_processing"`
	TxtDelimiter        string `json:"txt_delimiter"` // escapes like \t allowed

	EnableMerge        bool   `json:"enable_merge"`
	LookupFilePath     string `json:"lookup_file_path"`
	LookupHeaderRow    int    `json:"lookup_header_row"`     // 1-based
	LookupDataStartRow int    `json:"lookup_data_start_row"` // 1-based
	EnableLookupTxt    bool   `json:"enable_lookup_txt"`
	LookupTxtDelimiter string `json:"lookup_txt_delimiter"`
	SourceKeyColumn    string `json:"source_key_column"`
	LookupKeyColumn    string `json:"lookup_key_column"`
	LookupColumnsToAdd string `json:"lookup_columns_to_add"`

	OutputFolder   string `json:"output_folder"`
	OutputFilename string `json:"output_filename"`
	OutputFormat   string `json:"output_format"` // csv|xlsx

	Workers int `json:"workers"` // optional; 0 or 1 means sequential
}

// Config is the validated engine configuration.
type Config struct {
	Input   InputConfig
	Merge   *MergeConfig // nil when merge is disabled
	Output  ports.OutputSpec
	Workers int
}

// InputConfig describes the source folder scan and the per-file read shape.
type InputConfig struct {
	Folder       string
	SheetName    string
	HeaderRow    int // 0-based
	DataStartRow int // 0-based
	IncludeTxt   bool
	TxtDelimiter rune
	Columns      []string // empty means keep all columns
}

// MergeConfig describes the lookup enrichment step.
type MergeConfig struct {
	Lookup        ports.SourceFileSpec
	SourceKey     string
	LookupKey     string
	AppendColumns []string
}

// LoadSettings reads and parses a settings document without validating it.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigInvalid(fmt.Sprintf("cannot read settings file %s: %v", path, err))
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.ConfigInvalid(fmt.Sprintf("settings file %s is not valid JSON: %v", path, err))
	}
	return &s, nil
}

// LoadFile reads a settings document and builds the validated Config.
func LoadFile(path string) (*Config, error) {
	s, err := LoadSettings(path)
	if err != nil {
		return nil, err
	}
	return s.Build()
}

// Build validates the settings document and converts it into engine form.
func (s Settings) Build() (*Config, error) {
	if strings.TrimSpace(s.InputFolder) == "" {
		return nil, errors.ConfigInvalid("input_folder is required")
	}
	if strings.TrimSpace(s.SheetName) == "" {
		return nil, errors.ConfigInvalid("sheet_name is required")
	}
	if s.HeaderRow < 1 {
		return nil, errors.ConfigInvalid("header_row must be >= 1")
	}
	if s.DataStartRow <= s.HeaderRow {
		return nil, errors.ConfigInvalid("data_start_row must be greater than header_row")
	}
	if strings.TrimSpace(s.OutputFilename) == "" {
		return nil, errors.ConfigInvalid("output_filename is required")
	}

	outputFolder := s.OutputFolder
	if strings.TrimSpace(outputFolder) == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.ConfigInvalid("output_folder is required")
		}
		outputFolder = wd
	}

	format := ports.OutputFormat(strings.ToLower(strings.TrimSpace(s.OutputFormat)))
	if format == "" {
		format = ports.FormatCSV
	}
	if format != ports.FormatCSV && format != ports.FormatXLSX {
		return nil, errors.ConfigInvalid(fmt.Sprintf("output_format must be csv or xlsx, got %q", s.OutputFormat))
	}

	columns := SplitList(s.ColumnsToExtract)
	if dup := firstDuplicate(columns); dup != "" {
		return nil, errors.ConfigInvalid(fmt.Sprintf("columns_to_extract lists %q more than once", dup))
	}

	input := InputConfig{
		Folder:       s.InputFolder,
		SheetName:    s.SheetName,
		HeaderRow:    s.HeaderRow - 1,
		DataStartRow: s.DataStartRow - 1,
		IncludeTxt:   s.EnableTxtProcessing,
		Columns:      columns,
	}
	if s.EnableTxtProcessing {
		delim, err := ParseDelimiter(s.TxtDelimiter)
		if err != nil {
			return nil, errors.ConfigInvalid(fmt.Sprintf("txt_delimiter: %v", err))
		}
		input.TxtDelimiter = delim
	}

	cfg := &Config{
		Input: input,
		Output: ports.OutputSpec{
			TargetFolder: outputFolder,
			FileName:     s.OutputFilename,
			Format:       format,
		},
		Workers: s.Workers,
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	if s.EnableMerge {
		merge, err := s.buildMerge()
		if err != nil {
			return nil, err
		}
		cfg.Merge = merge
	}

	return cfg, nil
}

func (s Settings) buildMerge() (*MergeConfig, error) {
	if strings.TrimSpace(s.LookupFilePath) == "" {
		return nil, errors.ConfigInvalid("lookup_file_path is required when merge is enabled")
	}
	if strings.TrimSpace(s.SourceKeyColumn) == "" || strings.TrimSpace(s.LookupKeyColumn) == "" {
		return nil, errors.ConfigInvalid("source_key_column and lookup_key_column are required when merge is enabled")
	}
	appendCols := SplitList(s.LookupColumnsToAdd)
	if len(appendCols) == 0 {
		return nil, errors.ConfigInvalid("lookup_columns_to_add is required when merge is enabled")
	}
	if dup := firstDuplicate(appendCols); dup != "" {
		return nil, errors.ConfigInvalid(fmt.Sprintf("lookup_columns_to_add lists %q more than once", dup))
	}
	if s.LookupHeaderRow < 1 {
		return nil, errors.ConfigInvalid("lookup_header_row must be >= 1")
	}
	if s.LookupDataStartRow <= s.LookupHeaderRow {
		return nil, errors.ConfigInvalid("lookup_data_start_row must be greater than lookup_header_row")
	}

	kind, ok := ports.KindForPath(s.LookupFilePath)
	if !ok {
		return nil, errors.ConfigInvalid(fmt.Sprintf("lookup file %s has an unsupported extension", s.LookupFilePath))
	}
	if kind == ports.KindTXT && !s.EnableLookupTxt {
		return nil, errors.ConfigInvalid("lookup file is .txt but enable_lookup_txt is off")
	}

	// The lookup workbook is usually an export from another system with its
	// own sheet name, so it is read from its first sheet rather than the
	// source files' configured one.
	spec := ports.SourceFileSpec{
		Path:         s.LookupFilePath,
		Kind:         kind,
		HeaderRow:    s.LookupHeaderRow - 1,
		DataStartRow: s.LookupDataStartRow - 1,
	}
	if kind == ports.KindTXT {
		delim, err := ParseDelimiter(s.LookupTxtDelimiter)
		if err != nil {
			return nil, errors.ConfigInvalid(fmt.Sprintf("lookup_txt_delimiter: %v", err))
		}
		spec.Delimiter = delim
	}

	return &MergeConfig{
		Lookup:        spec,
		SourceKey:     strings.TrimSpace(s.SourceKeyColumn),
		LookupKey:     strings.TrimSpace(s.LookupKeyColumn),
		AppendColumns: appendCols,
	}, nil
}

func firstDuplicate(names []string) string {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return n
		}
		seen[n] = true
	}
	return ""
}

// SplitList parses a comma-separated column list, trimming whitespace and
// dropping empty entries.
func SplitList(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ParseDelimiter turns a user-typed delimiter ("\t", ";", "|") into a rune.
// Backslash escapes for tab are accepted because that is how the settings
// document records them.
func ParseDelimiter(raw string) (rune, error) {
	switch raw {
	case "":
		return 0, fmt.Errorf("delimiter is empty")
	case "\\t", "\t":
		return '\t', nil
	}
	runes := []rune(raw)
	if len(runes) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", raw)
	}
	return runes[0], nil
}
