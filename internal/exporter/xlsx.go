package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"xlmerge/pkg/contracts/domain"
)

// DefaultSheetName is the worksheet name used for the merged output.
const DefaultSheetName = "Merged"

// WorkbookWriter emits the grouped table as an .xlsx workbook with the
// index and key cells of every multi-row group merged and centered.
type WorkbookWriter struct {
	layout Layout
	sheet  string
}

// NewWorkbookWriter creates a workbook writer with the given layout.
func NewWorkbookWriter(layout Layout) *WorkbookWriter {
	return &WorkbookWriter{layout: layout, sheet: DefaultSheetName}
}

// Write saves the grouped table to filePath, applying each merge range
// as a merge-and-center instruction. The merge ranges must have been
// computed for this table with a header offset of 1 (the written header
// row) and the layout's merge-column positions.
func (w *WorkbookWriter) Write(grouped *domain.GroupedTable, ranges []domain.MergeRange, filePath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", w.sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := w.setRow(f, 1, w.layout.Header(grouped)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, rec := range w.layout.Flatten(grouped) {
		if err := w.setRow(f, i+2, rec); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	centered, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create cell style: %w", err)
	}

	for _, r := range ranges {
		start, err := excelize.CoordinatesToCellName(r.Column, r.StartRow)
		if err != nil {
			return fmt.Errorf("invalid merge range %+v: %w", r, err)
		}
		end, err := excelize.CoordinatesToCellName(r.Column, r.EndRow)
		if err != nil {
			return fmt.Errorf("invalid merge range %+v: %w", r, err)
		}
		if err := f.MergeCell(w.sheet, start, end); err != nil {
			return fmt.Errorf("failed to merge %s:%s: %w", start, end, err)
		}
		if err := f.SetCellStyle(w.sheet, start, end, centered); err != nil {
			return fmt.Errorf("failed to style %s:%s: %w", start, end, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	slog.Info("Wrote merged workbook",
		slog.String("path", filePath),
		slog.Int("groups", len(grouped.Groups)),
		slog.Int("merge_ranges", len(ranges)))

	return nil
}

func (w *WorkbookWriter) setRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(w.sheet, cell, &cells)
}
