package dataprocessing

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"xlmerge/pkg/contracts/domain"
)

// ParseOptions controls how a workbook is read.
type ParseOptions struct {
	// Sheet is the worksheet to load. Empty selects the first sheet.
	Sheet string

	// HeaderRow is the 1-based row carrying the column headers. Rows
	// above it are ignored; data starts on the row after it.
	HeaderRow int
}

// ParseFile reads an .xlsx workbook and materializes the selected sheet
// as a string-valued table. Cell values are taken as rendered strings so
// long identifiers survive without precision loss.
func ParseFile(filePath string, opts ParseOptions) (*domain.Table, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	headerRow := opts.HeaderRow
	if headerRow <= 0 {
		headerRow = 1
	}
	if len(rows) < headerRow {
		return nil, fmt.Errorf("sheet %q has %d rows, header row %d not found", sheet, len(rows), headerRow)
	}

	header := make([]string, len(rows[headerRow-1]))
	for i, h := range rows[headerRow-1] {
		header[i] = strings.TrimSpace(h)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("sheet %q has an empty header row", sheet)
	}

	table := &domain.Table{
		Header:     header,
		SourceFile: filePath,
		SheetName:  sheet,
	}
	for _, raw := range rows[headerRow:] {
		row := make(domain.Row, len(header))
		for i, col := range header {
			if i < len(raw) {
				row[col] = raw[i]
			} else {
				// Short rows are padded so every row carries the
				// full column set.
				row[col] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	slog.Debug("Parsed workbook",
		slog.String("file", filePath),
		slog.String("sheet", sheet),
		slog.Int("columns", len(header)),
		slog.Int("rows", len(table.Rows)))

	return table, nil
}
