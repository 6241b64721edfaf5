package exporter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"xlmerge/pkg/contracts/domain"
)

// JSONExporter serializes a GroupedTable as an ordered document mapping
// each group's joined composite key to its list of detail records.
type JSONExporter struct {
	// Delimiter joins composite key components into the document key.
	Delimiter string

	// Renames maps detail column names to their output field names.
	Renames map[string]string
}

// NewJSONExporter creates an exporter with the given key delimiter.
func NewJSONExporter(delimiter string, renames map[string]string) *JSONExporter {
	return &JSONExporter{Delimiter: delimiter, Renames: renames}
}

// Document is an ordered mapping from a composite-key string to detail
// records, in first-appearance order of the underlying composite keys.
type Document struct {
	entries []docEntry
	columns []string
}

type docEntry struct {
	key     string
	records []domain.Row
}

// Len returns the number of entries in the document.
func (d *Document) Len() int {
	return len(d.entries)
}

// Keys returns the document keys in order.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.key
	}
	return keys
}

// Records returns the detail records stored under the given key.
func (d *Document) Records(key string) ([]domain.Row, bool) {
	for _, e := range d.entries {
		if e.key == key {
			return e.records, true
		}
	}
	return nil, false
}

// MarshalJSON writes the entries as one JSON object, preserving entry
// order and the configured detail-column order inside each record.
// encoding/json's map marshaling sorts keys, which would destroy the
// first-appearance ordering guarantee, hence the manual encoder.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range d.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, e.key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		buf.WriteByte('[')
		for j, rec := range e.records {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('{')
			for k, col := range d.columns {
				if k > 0 {
					buf.WriteByte(',')
				}
				if err := writeJSONString(&buf, col); err != nil {
					return nil, err
				}
				buf.WriteByte(':')
				if err := writeJSONString(&buf, rec[col]); err != nil {
					return nil, err
				}
			}
			buf.WriteByte('}')
		}
		buf.WriteByte(']')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// BuildDocument renders the grouped table into an ordered document.
// Detail records carry only the detail columns, with renames applied
// and row order preserved. When two distinct composite keys join to the
// same string, the later group's records replace the earlier entry in
// place and a warning is logged; see DESIGN.md for the rationale.
func (e *JSONExporter) BuildDocument(grouped *domain.GroupedTable) *Document {
	doc := &Document{}
	for _, col := range grouped.DetailColumns {
		doc.columns = append(doc.columns, e.rename(col))
	}

	index := make(map[string]int)
	for gi := range grouped.Groups {
		group := &grouped.Groups[gi]
		key := group.Key.Join(e.Delimiter)

		records := make([]domain.Row, len(group.Rows))
		for ri, row := range group.Rows {
			rec := make(domain.Row, len(grouped.DetailColumns))
			for _, col := range grouped.DetailColumns {
				rec[e.rename(col)] = row[col]
			}
			records[ri] = rec
		}

		if pos, ok := index[key]; ok {
			slog.Warn("Composite key collision in structured export, overwriting earlier group",
				slog.String("key", key),
				slog.Int("replaced_records", len(doc.entries[pos].records)),
				slog.Int("new_records", len(records)))
			doc.entries[pos].records = records
			continue
		}
		index[key] = len(doc.entries)
		doc.entries = append(doc.entries, docEntry{key: key, records: records})
	}
	return doc
}

func (e *JSONExporter) rename(col string) string {
	if out, ok := e.Renames[col]; ok {
		return out
	}
	return col
}

// Export builds the document and writes it to filePath as indented
// UTF-8 JSON.
func (e *JSONExporter) Export(grouped *domain.GroupedTable, filePath string) error {
	doc := e.BuildDocument(grouped)

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	slog.Info("Wrote structured document",
		slog.String("path", filePath),
		slog.Int("entries", doc.Len()))

	return nil
}
