package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"xlmerge/pkg/contracts/domain"
)

func TestNormalizeCell(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain value unchanged",
			input:    "SF1234567890",
			expected: "SF1234567890",
		},
		{
			name:     "leading and trailing whitespace stripped",
			input:    "  Shanghai  ",
			expected: "Shanghai",
		},
		{
			name:     "nan string becomes empty",
			input:    "nan",
			expected: "",
		},
		{
			name:     "NaN string becomes empty",
			input:    "NaN",
			expected: "",
		},
		{
			name:     "trailing point zero stripped from integer",
			input:    "12.0",
			expected: "12",
		},
		{
			name:     "true decimal kept",
			input:    "12.5",
			expected: "12.5",
		},
		{
			name:     "scientific notation identifier restored",
			input:    "1.23E+11",
			expected: "123000000000",
		},
		{
			name:     "lowercase exponent restored",
			input:    "9.8765e+10",
			expected: "98765000000",
		},
		{
			name:     "fractional scientific value untouched",
			input:    "1.234567E+2",
			expected: "1.234567E+2",
		},
		{
			name:     "unparseable exponent-looking text untouched",
			input:    "ROUTE+11",
			expected: "ROUTE+11",
		},
		{
			name:     "empty string stays empty",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only becomes empty",
			input:    "   ",
			expected: "",
		},
		{
			name:     "point zero on non-numeric untouched",
			input:    "v2.0",
			expected: "v2.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeCell(tt.input))
		})
	}
}

func TestDateNormalizerStrings(t *testing.T) {
	d := NewDateNormalizer([]string{"日期", "时间", "Date", "Time"})

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "canonical form unchanged",
			input:    "2023-10-21",
			expected: "2023-10-21",
		},
		{
			name:     "slash form reformatted",
			input:    "2023/10/21",
			expected: "2023-10-21",
		},
		{
			name:     "single digit slash form reformatted",
			input:    "2023/1/2",
			expected: "2023-01-02",
		},
		{
			name:     "datetime string keeps date part",
			input:    "2023-10-21 08:30:00",
			expected: "2023-10-21",
		},
		{
			name:     "chinese date form reformatted",
			input:    "2023年10月21日",
			expected: "2023-10-21",
		},
		{
			name:     "serial day string converted",
			input:    "45932",
			expected: "2025-10-08",
		},
		{
			name:     "serial day with point zero converted",
			input:    "45932.0",
			expected: "2025-10-08",
		},
		{
			name:     "small number below threshold passes through",
			input:    "42",
			expected: "42",
		},
		{
			name:     "malformed date passes through",
			input:    "not-a-date",
			expected: "not-a-date",
		},
		{
			name:     "empty string stays empty",
			input:    "",
			expected: "",
		},
		{
			name:     "nan becomes empty",
			input:    "nan",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, d.Normalize(tt.input))
		})
	}
}

func TestDateNormalizerNonStringInputs(t *testing.T) {
	d := NewDateNormalizer([]string{"Date"})

	assert.Equal(t, "2025-10-08", d.Normalize(45932.0), "float serial")
	assert.Equal(t, "2025-10-08", d.Normalize(45932.75), "fractional part discarded")
	assert.Equal(t, "2025-10-08", d.Normalize(45932), "int serial")
	assert.Equal(t, "2023-10-21", d.Normalize(time.Date(2023, 10, 21, 14, 5, 0, 0, time.UTC)), "time.Time formatted directly")
	assert.Equal(t, "", d.Normalize(nil), "nil becomes empty")
}

// Applying the normalizer to its own output must be a no-op for any
// input.
func TestDateNormalizerIdempotent(t *testing.T) {
	d := NewDateNormalizer([]string{"Date"})

	inputs := []string{
		"2023-10-21",
		"2023/10/21",
		"45932",
		"45932.0",
		"not-a-date",
		"",
		"42",
		"20060102",
	}
	for _, in := range inputs {
		once := d.Normalize(in)
		assert.Equal(t, once, d.Normalize(once), "input %q", in)
	}
}

func TestIsDateColumn(t *testing.T) {
	d := NewDateNormalizer([]string{"日期", "时间", "Date", "Time"})

	tests := []struct {
		header   string
		expected bool
	}{
		{"清美出库日期", true},
		{"Ship Date", true},
		{"Time Stamp", true},
		{"运单号码", false},
		{"date", false}, // substring match is case-sensitive
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.expected, d.IsDateColumn(tt.header))
		})
	}
}

func TestNormalizeTable(t *testing.T) {
	table := &domain.Table{
		Header: []string{"Order", "Ship Date", "Amount"},
		Rows: []domain.Row{
			{"Order": " A1 ", "Ship Date": "45932", "Amount": "100.0"},
			{"Order": "1.23E+11", "Ship Date": "2023/10/21", "Amount": "nan"},
		},
	}

	out := NormalizeTable(table, NewDateNormalizer([]string{"Date"}))

	assert.Equal(t, "A1", out.Rows[0]["Order"])
	assert.Equal(t, "2025-10-08", out.Rows[0]["Ship Date"])
	assert.Equal(t, "100", out.Rows[0]["Amount"])
	assert.Equal(t, "123000000000", out.Rows[1]["Order"])
	assert.Equal(t, "2023-10-21", out.Rows[1]["Ship Date"])
	assert.Equal(t, "", out.Rows[1]["Amount"])

	// Source table is left untouched.
	assert.Equal(t, " A1 ", table.Rows[0]["Order"])
	assert.Equal(t, "45932", table.Rows[0]["Ship Date"])
}
