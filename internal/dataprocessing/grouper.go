package dataprocessing

import (
	"fmt"
	"log/slog"
	"strings"

	"xlmerge/pkg/contracts/domain"
)

// keySeparator joins composite key components for the grouper's internal
// index. The unit separator cannot appear in cell text, so the joined
// form preserves tuple equality.
const keySeparator = "\x1f"

// Grouper partitions normalized rows into order-preserving groups keyed
// by the composite of the configured key columns.
type Grouper struct {
	keyColumns    []string
	detailColumns []string
}

// NewGrouper creates a grouper for the given column roles. The roles are
// validated against each table's actual header when Group is called.
func NewGrouper(keyColumns, detailColumns []string) *Grouper {
	return &Grouper{
		keyColumns:    keyColumns,
		detailColumns: detailColumns,
	}
}

// ValidateColumnRoles checks the configured key/detail assignment
// against a loaded header: every named column must exist, the two sets
// must be disjoint, and together they must cover the full header. Any
// violation is fatal to the run; composite keys cannot be built from a
// broken assignment.
func ValidateColumnRoles(header, keyColumns, detailColumns []string) error {
	if len(keyColumns) == 0 {
		return fmt.Errorf("at least one key column must be configured")
	}

	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[col] = true
	}

	roles := make(map[string]string, len(keyColumns)+len(detailColumns))
	for _, col := range keyColumns {
		if !present[col] {
			return fmt.Errorf("key column %q not found in header [%s]", col, strings.Join(header, ", "))
		}
		if _, dup := roles[col]; dup {
			return fmt.Errorf("column %q assigned more than once", col)
		}
		roles[col] = "key"
	}
	for _, col := range detailColumns {
		if !present[col] {
			return fmt.Errorf("detail column %q not found in header [%s]", col, strings.Join(header, ", "))
		}
		if role, dup := roles[col]; dup {
			if role == "key" {
				return fmt.Errorf("column %q assigned as both key and detail", col)
			}
			return fmt.Errorf("column %q assigned more than once", col)
		}
		roles[col] = "detail"
	}

	for _, col := range header {
		if _, ok := roles[col]; !ok {
			return fmt.Errorf("column %q has no role; every column must be key or detail", col)
		}
	}
	return nil
}

// Group partitions the table's rows into a GroupedTable. Wholly-empty
// rows are dropped. Groups are ordered by first appearance of their
// composite key; rows within a group keep their source order. The pass
// is O(n) in rows with O(k) key construction per row.
func (g *Grouper) Group(table *domain.Table) (*domain.GroupedTable, error) {
	if err := ValidateColumnRoles(table.Header, g.keyColumns, g.detailColumns); err != nil {
		return nil, fmt.Errorf("column role validation failed: %w", err)
	}

	grouped := &domain.GroupedTable{
		KeyColumns:    g.keyColumns,
		DetailColumns: g.detailColumns,
	}
	index := make(map[string]int)
	dropped := 0

	for _, row := range table.Rows {
		if row.IsEmpty() {
			dropped++
			continue
		}

		key := make(domain.CompositeKey, len(g.keyColumns))
		for i, col := range g.keyColumns {
			key[i] = row[col]
		}

		id := key.Join(keySeparator)
		if pos, ok := index[id]; ok {
			grouped.Groups[pos].Rows = append(grouped.Groups[pos].Rows, row)
			continue
		}
		index[id] = len(grouped.Groups)
		grouped.Groups = append(grouped.Groups, domain.Group{
			Key:  key,
			Rows: []domain.Row{row},
		})
	}

	slog.Debug("Grouped table",
		slog.Int("input_rows", len(table.Rows)),
		slog.Int("dropped_empty_rows", dropped),
		slog.Int("groups", len(grouped.Groups)))

	return grouped, nil
}
