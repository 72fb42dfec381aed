package excel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocombine/domain/table"
	"gocombine/internal/errors"
	"gocombine/internal/testkit"
	"gocombine/ports"
)

func sheetSpec(path, sheet string) ports.SourceFileSpec {
	return ports.SourceFileSpec{
		Path:         path,
		Kind:         ports.KindXLSX,
		SheetName:    sheet,
		HeaderRow:    0,
		DataStartRow: 1,
	}
}

func TestReadWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteXLSX(t, dir, "items.xlsx", "Data", [][]interface{}{
		{"SKU", "Qty", "Price"},
		{"100", 5, 9.99},
		{"200", 3, 4.5},
	})

	tbl, err := NewReader().Read(context.Background(), sheetSpec(path, "Data"))
	require.NoError(t, err)

	assert.Equal(t, []string{"SKU", "Qty", "Price"}, tbl.Columns)
	require.Equal(t, 2, tbl.RowCount())

	// Numeric cells keep their native type, text stays text.
	assert.Equal(t, table.KindNumber, tbl.Cell(0, 1).Kind)
	assert.Equal(t, "9.99", tbl.Cell(0, 2).String())
	assert.Equal(t, table.KindText, tbl.Cell(0, 0).Kind)
}

func TestReadHeaderAndDataOffsets(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteXLSX(t, dir, "report.xlsx", "Sheet1", [][]interface{}{
		{"Quarterly export"},
		{"SKU", "Qty"},
		{"unit", "count"},
		{"100", 5},
	})

	spec := sheetSpec(path, "Sheet1")
	spec.HeaderRow = 1
	spec.DataStartRow = 3

	tbl, err := NewReader().Read(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, []string{"SKU", "Qty"}, tbl.Columns)
	require.Equal(t, 1, tbl.RowCount())
	assert.Equal(t, "100", tbl.Cell(0, 0).String())
}

func TestReadEmptySheetNameUsesFirstSheet(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteXLSX(t, dir, "prices.xlsx", "Prices", [][]interface{}{
		{"SKU", "Price"},
		{"100", 9.99},
	})

	tbl, err := NewReader().Read(context.Background(), sheetSpec(path, ""))
	require.NoError(t, err)
	assert.Equal(t, []string{"SKU", "Price"}, tbl.Columns)
	require.Equal(t, 1, tbl.RowCount())
	assert.Equal(t, "9.99", tbl.Cell(0, 1).String())
}

func TestReadMissingSheet(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteXLSX(t, dir, "items.xlsx", "Data", [][]interface{}{
		{"SKU"},
		{"100"},
	})

	_, err := NewReader().Read(context.Background(), sheetSpec(path, "Other"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeFileRead, errors.GetCode(err))
}

func TestReadShortRowsArePadded(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteXLSX(t, dir, "sparse.xlsx", "Sheet1", [][]interface{}{
		{"A", "B", "C"},
		{"1"},
		{"1", "2", "3"},
	})

	tbl, err := NewReader().Read(context.Background(), sheetSpec(path, "Sheet1"))
	require.NoError(t, err)
	require.Equal(t, 2, tbl.RowCount())
	assert.True(t, tbl.Cell(0, 1).IsEmpty())
	assert.Equal(t, "3", tbl.Cell(1, 2).String())
}

func TestReadHeaderBeyondSheet(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteXLSX(t, dir, "tiny.xlsx", "Sheet1", [][]interface{}{
		{"only"},
	})

	spec := sheetSpec(path, "Sheet1")
	spec.HeaderRow = 4
	spec.DataStartRow = 5

	_, err := NewReader().Read(context.Background(), spec)
	require.Error(t, err)
	assert.Equal(t, errors.CodeFileRead, errors.GetCode(err))
}

func TestReadMissingFile(t *testing.T) {
	_, err := NewReader().Read(context.Background(), sheetSpec(t.TempDir()+"/nope.xlsx", "Sheet1"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeFileRead, errors.GetCode(err))
}
