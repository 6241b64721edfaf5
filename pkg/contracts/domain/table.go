package domain

import "strings"

// Table is a worksheet materialized in memory as string-typed cells.
// Callers load it with string-preserving semantics so long identifiers
// survive without precision loss before normalization sees the data.
type Table struct {
	Header     []string `json:"header"`
	Rows       []Row    `json:"rows"`
	SourceFile string   `json:"source_file,omitempty"`
	SheetName  string   `json:"sheet_name,omitempty"`
}

// RowCount returns the number of data rows in the table.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// HasColumn reports whether the table header contains the named column.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Header {
		if h == name {
			return true
		}
	}
	return false
}

// Row maps a column name to its normalized cell value. Column order is
// carried by the owning Table's header, not by the map itself.
type Row map[string]string

// IsEmpty reports whether every cell of the row is blank after trimming.
func (r Row) IsEmpty() bool {
	for _, v := range r {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// CompositeKey is the ordered tuple of a row's key-column values in the
// configured key-column order. Two rows belong to the same group iff
// their composite keys are equal element-wise.
type CompositeKey []string

// Equal reports element-wise equality with another composite key.
func (k CompositeKey) Equal(other CompositeKey) bool {
	if len(k) != len(other) {
		return false
	}
	for i := range k {
		if k[i] != other[i] {
			return false
		}
	}
	return true
}

// Join renders the key components as a single string using the given
// delimiter. Distinct keys can collide after joining when a component
// contains the delimiter; see the exporter package for how that is
// handled.
func (k CompositeKey) Join(delimiter string) string {
	return strings.Join(k, delimiter)
}

// Group is an ordered, non-empty run of rows sharing one composite key,
// in original source order.
type Group struct {
	Key  CompositeKey `json:"key"`
	Rows []Row        `json:"rows"`
}

// Size returns the number of rows in the group.
func (g *Group) Size() int {
	return len(g.Rows)
}

// GroupedTable is an ordered sequence of groups, ordered by the first
// appearance of each distinct composite key in the source table.
type GroupedTable struct {
	KeyColumns    []string `json:"key_columns"`
	DetailColumns []string `json:"detail_columns"`
	Groups        []Group  `json:"groups"`
}

// TotalRows returns the number of rows across all groups.
func (gt *GroupedTable) TotalRows() int {
	n := 0
	for i := range gt.Groups {
		n += len(gt.Groups[i].Rows)
	}
	return n
}

// MergeRange identifies a vertical cell span in the physical output that
// should be visually merged. Coordinates are 1-based; EndRow is always
// strictly greater than StartRow.
type MergeRange struct {
	Column   int `json:"column"`
	StartRow int `json:"start_row"`
	EndRow   int `json:"end_row"`
}
