package dataprocessing

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xuri/excelize/v2"
)

func writeTestWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "input.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParseFile(t *testing.T) {
	path := writeTestWorkbook(t, "Orders", [][]any{
		{"Order", "Date", "Amount"},
		{"K1", "2023-10-21", "100"},
		{"K2", "2023-10-22", "50"},
	})

	table, err := ParseFile(path, ParseOptions{Sheet: "Orders", HeaderRow: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"Order", "Date", "Amount"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "K1", table.Rows[0]["Order"])
	assert.Equal(t, "50", table.Rows[1]["Amount"])
	assert.Equal(t, "Orders", table.SheetName)
	assert.Equal(t, path, table.SourceFile)
}

func TestParseFileDefaultsToFirstSheet(t *testing.T) {
	path := writeTestWorkbook(t, "Whatever", [][]any{
		{"K", "V"},
		{"a", "1"},
	})

	table, err := ParseFile(path, ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Whatever", table.SheetName)
	assert.Len(t, table.Rows, 1)
}

func TestParseFileHeaderOffset(t *testing.T) {
	path := writeTestWorkbook(t, "Sheet1", [][]any{
		{"some report title"},
		{"Order", "Amount"},
		{"K1", "100"},
	})

	table, err := ParseFile(path, ParseOptions{HeaderRow: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"Order", "Amount"}, table.Header)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "K1", table.Rows[0]["Order"])
}

func TestParseFileShortRowsPadded(t *testing.T) {
	path := writeTestWorkbook(t, "Sheet1", [][]any{
		{"Order", "Date", "Amount"},
		{"K1"},
	})

	table, err := ParseFile(path, ParseOptions{HeaderRow: 1})
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "", table.Rows[0]["Date"])
	assert.Equal(t, "", table.Rows[0]["Amount"])
}

func TestParseFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(t.TempDir(), "nope.xlsx"), ParseOptions{})
		require.Error(t, err)
	})

	t.Run("missing sheet", func(t *testing.T) {
		path := writeTestWorkbook(t, "Sheet1", [][]any{{"K"}})
		_, err := ParseFile(path, ParseOptions{Sheet: "Missing"})
		require.Error(t, err)
	})

	t.Run("header row beyond sheet", func(t *testing.T) {
		path := writeTestWorkbook(t, "Sheet1", [][]any{{"K"}})
		_, err := ParseFile(path, ParseOptions{HeaderRow: 10})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "header row 10 not found")
	})
}
