package dataprocessing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"xlmerge/pkg/contracts/domain"
)

// canonicalDateLayout is the single textual date form every date-flagged
// cell is normalized to.
const canonicalDateLayout = "2006-01-02"

// serialEpoch is the spreadsheet serial-day epoch. 1899-12-30 (not
// 1899-12-31) absorbs the historical 1900 leap-year miscount so that
// known serial numbers map to the expected calendar date.
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// serialThreshold guards against treating short numeric strings (box
// counts, weights) as serial dates. Serial 10000 is 1927-05-18; anything
// below that is not a plausible date in this data.
const serialThreshold = 10000

// dateLayouts are the string forms recognized as calendar dates, tried
// in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"2006-1-2",
	"2006/1/2",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006年01月02日",
	"2006年1月2日",
	time.RFC3339,
}

// NormalizeCell cleans a single raw cell value: trims whitespace, maps
// the string renderings of missing values to "", strips a trailing ".0"
// from integer-like numerics, and repairs scientific-notation artifacts
// left by spreadsheet engines on long identifiers. A cell that cannot be
// cleaned is returned unchanged; this function never fails.
func NormalizeCell(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" || v == "nan" || v == "NaN" {
		return ""
	}

	v = fixScientificNotation(v)

	// String-typed loads render whole numbers as "123.0".
	if s, ok := strings.CutSuffix(v, ".0"); ok && isDigits(s) {
		return s
	}
	return v
}

// fixScientificNotation rewrites values like "1.23E+11" back to their
// plain decimal-digit form. Only integer-like quantities are rewritten;
// true floating-point amounts pass through untouched.
func fixScientificNotation(v string) string {
	if !strings.Contains(strings.ToLower(v), "e+") {
		return v
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return v
	}
	if f != math.Trunc(f) {
		return v
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// isDigits reports whether s is non-empty and consists only of ASCII
// digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// DateNormalizer converts the date representations found in spreadsheet
// exports (serial day numbers, assorted textual forms, time.Time values)
// into the canonical YYYY-MM-DD form. Normalization failure is local to
// the cell: unrecognized input is returned stringified, unchanged, so
// applying the normalizer to its own output is a no-op.
type DateNormalizer struct {
	keywords []string
}

// NewDateNormalizer creates a normalizer that flags columns whose header
// contains any of the given keywords (case-sensitive substring match).
func NewDateNormalizer(keywords []string) *DateNormalizer {
	return &DateNormalizer{keywords: keywords}
}

// IsDateColumn reports whether the column header matches the configured
// date-keyword set.
func (d *DateNormalizer) IsDateColumn(header string) bool {
	for _, kw := range d.keywords {
		if kw != "" && strings.Contains(header, kw) {
			return true
		}
	}
	return false
}

// Normalize converts a cell value from a date-flagged column to the
// canonical form. The recognizers run in order, first success wins:
// parseable date string, time.Time, spreadsheet serial day count. When
// none apply the stringified input is returned unmodified.
func (d *DateNormalizer) Normalize(value any) string {
	switch v := value.(type) {
	case time.Time:
		return v.Format(canonicalDateLayout)
	case float64:
		return serialToDate(v)
	case float32:
		return serialToDate(float64(v))
	case int:
		return serialToDate(float64(v))
	case int64:
		return serialToDate(float64(v))
	case string:
		return d.normalizeString(v)
	case nil:
		return ""
	default:
		return d.normalizeString(fmt.Sprint(value))
	}
}

func (d *DateNormalizer) normalizeString(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" || v == "nan" || v == "NaN" {
		return ""
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(canonicalDateLayout)
		}
	}

	// Serial day count rendered as text, e.g. "45932" or "45932.0".
	// The threshold keeps small quantities from being misread as dates.
	if isNumericString(v) {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > serialThreshold {
			return serialToDate(f)
		}
	}

	return raw
}

// serialToDate maps a spreadsheet serial day count onto the calendar.
// The fractional part (time of day) is discarded.
func serialToDate(serial float64) string {
	if serial < 0 || math.IsNaN(serial) || math.IsInf(serial, 0) {
		return strconv.FormatFloat(serial, 'f', -1, 64)
	}
	days := int(math.Floor(serial))
	return serialEpoch.AddDate(0, 0, days).Format(canonicalDateLayout)
}

// isNumericString reports whether s looks like a plain decimal number
// with at most one dot.
func isNumericString(s string) bool {
	return isDigits(strings.Replace(s, ".", "", 1))
}

// NormalizeTable applies cell normalization to every cell of the table
// and date normalization to cells in date-flagged columns, returning a
// new table. The input table is not modified.
func NormalizeTable(table *domain.Table, dates *DateNormalizer) *domain.Table {
	dateCols := make(map[string]bool, len(table.Header))
	for _, col := range table.Header {
		if dates != nil && dates.IsDateColumn(col) {
			dateCols[col] = true
		}
	}

	out := &domain.Table{
		Header:     table.Header,
		Rows:       make([]domain.Row, len(table.Rows)),
		SourceFile: table.SourceFile,
		SheetName:  table.SheetName,
	}
	for i, row := range table.Rows {
		clean := make(domain.Row, len(row))
		for _, col := range table.Header {
			v := NormalizeCell(row[col])
			if dateCols[col] && v != "" {
				v = dates.Normalize(v)
			}
			clean[col] = v
		}
		out.Rows[i] = clean
	}
	return out
}
