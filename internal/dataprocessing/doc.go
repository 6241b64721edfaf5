// Package dataprocessing implements the core grouping engine: it loads
// a worksheet into a string-valued table, normalizes cells and dates,
// partitions rows into order-preserving groups by composite key, and
// computes the cell ranges to merge in the physical output.
//
// # Pipeline
//
//	Excel File → ParseFile → Table → NormalizeTable → Grouper → GroupedTable → ComputeMergeRanges
//
// Every stage consumes an immutable input and returns a new value; the
// exporter package consumes the same GroupedTable for both the workbook
// and the JSON document, which is what keeps the two outputs consistent.
//
// # Error handling
//
// Cell-level normalization failures are recovered locally: the cell
// falls back to its original stringified value and processing
// continues. Wholly-empty rows are filtered silently. A configured key
// or detail column that is absent from the loaded header is fatal and
// is reported before any grouping is attempted.
package dataprocessing
