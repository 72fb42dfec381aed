package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsDuplicateColumns(t *testing.T) {
	_, err := New([]string{"SKU", "Qty", "SKU"})
	assert.Error(t, err)
}

func TestAppendPadsAndTruncates(t *testing.T) {
	tbl, err := New([]string{"A", "B", "C"})
	require.NoError(t, err)

	tbl.Append(Row{NewText("1")})
	tbl.Append(Row{NewText("1"), NewText("2"), NewText("3"), NewText("4")})

	require.Equal(t, 2, tbl.RowCount())
	assert.True(t, tbl.Cell(0, 1).IsEmpty())
	assert.True(t, tbl.Cell(0, 2).IsEmpty())
	assert.Equal(t, "3", tbl.Cell(1, 2).String())
	assert.Len(t, tbl.Rows[1], 3)
}

func TestColumnIndexIsCaseSensitive(t *testing.T) {
	tbl, err := New([]string{"SKU", "Qty"})
	require.NoError(t, err)

	assert.Equal(t, 0, tbl.ColumnIndex("SKU"))
	assert.Equal(t, -1, tbl.ColumnIndex("sku"))
}

func TestDedupeColumns(t *testing.T) {
	got := DedupeColumns([]string{"SKU", " SKU ", "Price", "SKU", ""})
	assert.Equal(t, []string{"SKU", "SKU.1", "Price", "SKU.2", "Unnamed"}, got)
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "", Empty().String())
	assert.Equal(t, "abc", NewText("abc").String())
	assert.Equal(t, "100", NewNumber(100).String())
	assert.Equal(t, "9.99", NewNumber(9.99).String())
}

func TestCellFloat(t *testing.T) {
	v, ok := NewNumber(2.5).Float()
	assert.True(t, ok)
	assert.Equal(t, 2.5, v)

	v, ok = NewText("42").Float()
	assert.True(t, ok)
	assert.Equal(t, 42.0, v)

	_, ok = NewText("n/a").Float()
	assert.False(t, ok)

	_, ok = Empty().Float()
	assert.False(t, ok)
}

func TestNewTextCollapsesEmpty(t *testing.T) {
	assert.True(t, NewText("").IsEmpty())
}
