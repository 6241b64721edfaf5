// Package exporter serializes a grouped table into its external
// formats.
//
// This package contains three main components:
//
// WorkbookWriter: emits an .xlsx workbook where the index and key cells
// of every multi-row group are merged and centered, with the full key
// values repeated on every physical row underneath the merge.
//
// JSONExporter: emits an ordered document mapping each group's joined
// composite key to its list of detail records.
//
// GroupedCSVExporter: emits the same flattened rows as the workbook in
// CSV form, with a UTF-8 BOM for Excel compatibility.
//
// All three consume the identical GroupedTable, which is what
// guarantees consistency between the output formats.
package exporter
