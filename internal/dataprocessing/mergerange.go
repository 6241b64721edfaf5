package dataprocessing

import (
	"xlmerge/pkg/contracts/domain"
)

// ComputeMergeRanges lays the grouped rows out as contiguous physical
// row blocks, one block per group in GroupedTable order, and returns the
// cell spans to merge. The first block starts at headerOffset+1; blocks
// never overlap. For every position in mergeColumns, a range is emitted
// only when the group's block spans more than one row, so single-row
// groups produce nothing.
func ComputeMergeRanges(grouped *domain.GroupedTable, headerOffset int, mergeColumns []int) []domain.MergeRange {
	var ranges []domain.MergeRange

	row := headerOffset + 1
	for i := range grouped.Groups {
		size := len(grouped.Groups[i].Rows)
		start, end := row, row+size-1
		if end > start {
			for _, col := range mergeColumns {
				ranges = append(ranges, domain.MergeRange{
					Column:   col,
					StartRow: start,
					EndRow:   end,
				})
			}
		}
		row = end + 1
	}
	return ranges
}
