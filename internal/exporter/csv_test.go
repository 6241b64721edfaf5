package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupedCSVExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grouped.csv")
	e := NewGroupedCSVExporter(Layout{Renames: map[string]string{"Amount": "金额"}})
	require.NoError(t, e.Export(scenarioGrouped(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "expected UTF-8 BOM prefix")

	records, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"No.", "Order", "Date", "金额"}, records[0])
	assert.Equal(t, []string{"1", "K1", "2023-10-21", "100"}, records[1])
	assert.Equal(t, []string{"1", "K1", "2023-10-21", "20"}, records[2])
	assert.Equal(t, []string{"2", "K2", "2023-10-22", "50"}, records[3])
}

func TestWriteCSV(t *testing.T) {
	testCases := []struct {
		name      string
		options   WriteOptions
		bomPrefix bool
	}{
		{
			name: "with BOM",
			options: WriteOptions{
				Headers:   []string{"a", "b"},
				Records:   [][]string{{"1", "2"}},
				BOMPrefix: true,
			},
			bomPrefix: true,
		},
		{
			name: "without BOM",
			options: WriteOptions{
				Headers: []string{"a", "b"},
				Records: [][]string{{"1", "2"}, {"3", "4"}},
			},
			bomPrefix: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.csv")
			require.NoError(t, NewCSVWriter().WriteCSV(path, tc.options))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tc.bomPrefix, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))

			data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
			records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
			require.NoError(t, err)
			assert.Len(t, records, 1+len(tc.options.Records))
		})
	}
}

func TestStreamWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stream.csv")

	stream, err := NewCSVWriter().CreateStreamWriter(path, []string{"k", "v"})
	require.NoError(t, err)
	require.NoError(t, stream.WriteRecord([]string{"a", "1"}))
	require.NoError(t, stream.WriteRecord([]string{"b", "2"}))
	require.NoError(t, stream.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"k", "v"}, {"a", "1"}, {"b", "2"}}, records)
}
