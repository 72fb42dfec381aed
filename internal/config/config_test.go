package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocombine/internal/errors"
	"gocombine/internal/testkit"
	"gocombine/ports"
)

func validSettings() Settings {
	return Settings{
		InputFolder:    "./in",
		SheetName:      "Sheet1",
		HeaderRow:      1,
		DataStartRow:   2,
		OutputFolder:   "./out",
		OutputFilename: "combined",
		OutputFormat:   "csv",
	}
}

func TestBuildConvertsRowNumbersToZeroBased(t *testing.T) {
	s := validSettings()
	s.HeaderRow = 3
	s.DataStartRow = 5

	cfg, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Input.HeaderRow)
	assert.Equal(t, 4, cfg.Input.DataStartRow)
	assert.Equal(t, 1, cfg.Workers)
	assert.Nil(t, cfg.Merge)
}

func TestBuildValidationFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"missing input folder", func(s *Settings) { s.InputFolder = " " }},
		{"missing sheet name", func(s *Settings) { s.SheetName = "" }},
		{"header row below one", func(s *Settings) { s.HeaderRow = 0 }},
		{"data row not after header", func(s *Settings) { s.DataStartRow = 1 }},
		{"missing output filename", func(s *Settings) { s.OutputFilename = "" }},
		{"unknown output format", func(s *Settings) { s.OutputFormat = "pdf" }},
		{"duplicate extract column", func(s *Settings) { s.ColumnsToExtract = "SKU, Qty, SKU" }},
		{"txt enabled without delimiter", func(s *Settings) { s.EnableTxtProcessing = true }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validSettings()
			tc.mutate(&s)
			_, err := s.Build()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}

func TestBuildDefaultsFormatToCSV(t *testing.T) {
	s := validSettings()
	s.OutputFormat = ""

	cfg, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, ports.FormatCSV, cfg.Output.Format)
}

func TestBuildColumnsToExtract(t *testing.T) {
	s := validSettings()
	s.ColumnsToExtract = " SKU , Qty ,, Price "

	cfg, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"SKU", "Qty", "Price"}, cfg.Input.Columns)

	s.ColumnsToExtract = ""
	cfg, err = s.Build()
	require.NoError(t, err)
	assert.Empty(t, cfg.Input.Columns)
}

func TestBuildMergeBlock(t *testing.T) {
	s := validSettings()
	s.EnableMerge = true
	s.LookupFilePath = "prices.xlsx"
	s.LookupHeaderRow = 1
	s.LookupDataStartRow = 2
	s.SourceKeyColumn = " SKU "
	s.LookupKeyColumn = "Item"
	s.LookupColumnsToAdd = "Price, ASIN"

	cfg, err := s.Build()
	require.NoError(t, err)
	require.NotNil(t, cfg.Merge)
	assert.Equal(t, ports.KindXLSX, cfg.Merge.Lookup.Kind)
	// The lookup workbook keeps its own sheet layout; an empty sheet name
	// selects its first sheet instead of the source files' configured one.
	assert.Empty(t, cfg.Merge.Lookup.SheetName)
	assert.Equal(t, 0, cfg.Merge.Lookup.HeaderRow)
	assert.Equal(t, 1, cfg.Merge.Lookup.DataStartRow)
	assert.Equal(t, "SKU", cfg.Merge.SourceKey)
	assert.Equal(t, "Item", cfg.Merge.LookupKey)
	assert.Equal(t, []string{"Price", "ASIN"}, cfg.Merge.AppendColumns)
}

func TestBuildMergeValidationFailures(t *testing.T) {
	base := func() Settings {
		s := validSettings()
		s.EnableMerge = true
		s.LookupFilePath = "prices.xlsx"
		s.LookupHeaderRow = 1
		s.LookupDataStartRow = 2
		s.SourceKeyColumn = "SKU"
		s.LookupKeyColumn = "SKU"
		s.LookupColumnsToAdd = "Price"
		return s
	}

	cases := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"missing lookup path", func(s *Settings) { s.LookupFilePath = "" }},
		{"missing key columns", func(s *Settings) { s.SourceKeyColumn = "" }},
		{"missing append columns", func(s *Settings) { s.LookupColumnsToAdd = " , " }},
		{"duplicate append column", func(s *Settings) { s.LookupColumnsToAdd = "Price,Price" }},
		{"bad lookup offsets", func(s *Settings) { s.LookupDataStartRow = 1 }},
		{"unsupported lookup extension", func(s *Settings) { s.LookupFilePath = "prices.pdf" }},
		{"txt lookup without enable flag", func(s *Settings) { s.LookupFilePath = "prices.txt" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := base()
			tc.mutate(&s)
			_, err := s.Build()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}

func TestBuildTxtLookupDelimiter(t *testing.T) {
	s := validSettings()
	s.EnableMerge = true
	s.EnableLookupTxt = true
	s.LookupFilePath = "prices.txt"
	s.LookupTxtDelimiter = "\\t"
	s.LookupHeaderRow = 1
	s.LookupDataStartRow = 2
	s.SourceKeyColumn = "SKU"
	s.LookupKeyColumn = "SKU"
	s.LookupColumnsToAdd = "Price"

	cfg, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, '\t', cfg.Merge.Lookup.Delimiter)
}

func TestParseDelimiter(t *testing.T) {
	got, err := ParseDelimiter("\\t")
	require.NoError(t, err)
	assert.Equal(t, '\t', got)

	got, err = ParseDelimiter("|")
	require.NoError(t, err)
	assert.Equal(t, '|', got)

	_, err = ParseDelimiter("")
	require.Error(t, err)
	_, err = ParseDelimiter("||")
	require.Error(t, err)
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteText(t, dir, "config.json", `{
		"input_folder": "./in",
		"sheet_name": "Data",
		"header_row": 2,
		"data_start_row": 3,
		"columns_to_extract": "SKU,Qty",
		"output_filename": "combined",
		"output_format": "xlsx"
	}`)

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "Data", s.SheetName)
	assert.Equal(t, 2, s.HeaderRow)

	cfg, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, ports.FormatXLSX, cfg.Output.Format)
	assert.Equal(t, []string{"SKU", "Qty"}, cfg.Input.Columns)
}

func TestLoadSettingsBadJSON(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteText(t, dir, "config.json", "{not json")

	_, err := LoadSettings(path)
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("GOCOMBINE_INPUT_FOLDER", "/srv/in")
	t.Setenv("GOCOMBINE_OUTPUT_FORMAT", "xlsx")
	t.Setenv("GOCOMBINE_WORKERS", "4")

	s := validSettings()
	s.ApplyEnv()

	assert.Equal(t, "/srv/in", s.InputFolder)
	assert.Equal(t, "xlsx", s.OutputFormat)
	assert.Equal(t, 4, s.Workers)
	// Unset variables keep the document's values.
	assert.Equal(t, "combined", s.OutputFilename)
}
