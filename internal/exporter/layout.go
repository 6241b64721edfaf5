package exporter

import (
	"strconv"

	"xlmerge/pkg/contracts/domain"
)

// Layout describes the physical column arrangement shared by the
// workbook and CSV writers: a leading group-index column, the key
// columns, then the detail columns with any configured header renames
// applied. Keeping both writers on one layout is what keeps the two
// tabular outputs consistent.
type Layout struct {
	// IndexHeader is the header of the leading group-ordinal column.
	IndexHeader string

	// Renames maps detail column names to their output headers.
	Renames map[string]string
}

// DefaultIndexHeader is used when no index header is configured.
const DefaultIndexHeader = "No."

func (l Layout) indexHeader() string {
	if l.IndexHeader == "" {
		return DefaultIndexHeader
	}
	return l.IndexHeader
}

func (l Layout) rename(col string) string {
	if out, ok := l.Renames[col]; ok {
		return out
	}
	return col
}

// Header returns the full output header row.
func (l Layout) Header(grouped *domain.GroupedTable) []string {
	header := make([]string, 0, 1+len(grouped.KeyColumns)+len(grouped.DetailColumns))
	header = append(header, l.indexHeader())
	header = append(header, grouped.KeyColumns...)
	for _, col := range grouped.DetailColumns {
		header = append(header, l.rename(col))
	}
	return header
}

// MergeColumns returns the 1-based physical positions of the columns
// that get merged per group: the index column and every key column.
// Detail columns are never merged.
func (l Layout) MergeColumns(grouped *domain.GroupedTable) []int {
	cols := make([]int, 0, 1+len(grouped.KeyColumns))
	for i := 0; i <= len(grouped.KeyColumns); i++ {
		cols = append(cols, i+1)
	}
	return cols
}

// Flatten renders the grouped table back into a flat row sequence. Key
// values are repeated on every physical row of their group so the data
// stays complete independent of visual merging; the index column
// carries the group's 1-based ordinal.
func (l Layout) Flatten(grouped *domain.GroupedTable) [][]string {
	var out [][]string
	for gi := range grouped.Groups {
		group := &grouped.Groups[gi]
		for _, row := range group.Rows {
			rec := make([]string, 0, 1+len(group.Key)+len(grouped.DetailColumns))
			rec = append(rec, strconv.Itoa(gi+1))
			rec = append(rec, group.Key...)
			for _, col := range grouped.DetailColumns {
				rec = append(rec, row[col])
			}
			out = append(out, rec)
		}
	}
	return out
}
