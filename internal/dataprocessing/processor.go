package dataprocessing

import (
	"fmt"

	"xlmerge/pkg/contracts/domain"
)

// Processor runs the full core pipeline for one loaded table:
// normalization, grouping, and merge-range calculation. Each stage takes
// an immutable input and produces a new value; nothing is shared or
// mutated across stage boundaries.
type Processor struct {
	dates   *DateNormalizer
	grouper *Grouper
}

// ProcessorOptions configures a Processor.
type ProcessorOptions struct {
	KeyColumns    []string
	DetailColumns []string
	DateKeywords  []string
}

// NewProcessor creates a processor for the given column roles and
// date-keyword set.
func NewProcessor(opts ProcessorOptions) *Processor {
	return &Processor{
		dates:   NewDateNormalizer(opts.DateKeywords),
		grouper: NewGrouper(opts.KeyColumns, opts.DetailColumns),
	}
}

// Process normalizes and groups the table. Configuration errors (a
// named column absent from the header) surface here, before any
// grouping work is done.
func (p *Processor) Process(table *domain.Table) (*domain.GroupedTable, error) {
	if err := ValidateColumnRoles(table.Header, p.grouper.keyColumns, p.grouper.detailColumns); err != nil {
		return nil, fmt.Errorf("column role validation failed: %w", err)
	}
	normalized := NormalizeTable(table, p.dates)
	return p.grouper.Group(normalized)
}
