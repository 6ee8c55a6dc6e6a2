package numeric

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeColumn(t *testing.T) {
	tests := []struct {
		name     string
		cells    []string
		expected []float64
		valid    []bool
	}{
		{
			name:     "plain us numbers",
			cells:    []string{"1234.56", "2000", "950.25"},
			expected: []float64{1234.56, 2000, 950.25},
			valid:    []bool{true, true, true},
		},
		{
			name:     "european thousands and decimals",
			cells:    []string{"1.234,56", "2.000,00", "950,25"},
			expected: []float64{1234.56, 2000, 950.25},
			valid:    []bool{true, true, true},
		},
		{
			name:     "us thousands separators",
			cells:    []string{"1,234.56", "2,000.00"},
			expected: []float64{1234.56, 2000},
			valid:    []bool{true, true},
		},
		{
			name:     "currency and percent symbols",
			cells:    []string{"€ 1.234,56", "$500", "£2,50", "15%"},
			expected: []float64{1234.56, 500, 2.5, 15},
			valid:    []bool{true, true, true, true},
		},
		{
			name:     "unparseable cells stay invalid",
			cells:    []string{"100", "abc", "", "200"},
			expected: []float64{100, 0, 0, 200},
			valid:    []bool{true, false, false, true},
		},
		{
			name:     "negative values",
			cells:    []string{"-42.5", "-1,000.00"},
			expected: []float64{-42.5, -1000},
			valid:    []bool{true, true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			values, valid := NormalizeColumn(tc.cells)
			require.Len(t, values, len(tc.cells))
			assert.Equal(t, tc.valid, valid)
			for i := range tc.expected {
				if tc.valid[i] {
					assert.InDelta(t, tc.expected[i], values[i], 1e-9, "cell %d", i)
				}
			}
		})
	}
}

func TestNormalizeColumn_SeparatorDecisionIsColumnWide(t *testing.T) {
	// One dot-only cell does not flip a comma-decimal column back to US
	// interpretation: the aggregate counts decide for every cell.
	values, valid := NormalizeColumn([]string{"10,5", "20,5", "30,5", "1.000"})
	require.Equal(t, []bool{true, true, true, true}, valid)
	assert.InDelta(t, 10.5, values[0], 1e-9)
	assert.InDelta(t, 1000.0, values[3], 1e-9)
}

func TestParseDates(t *testing.T) {
	tests := []struct {
		name     string
		cell     string
		expected time.Time
		valid    bool
	}{
		{"iso", "2024-03-15", date(2024, 3, 15), true},
		{"iso timestamp", "2024-03-15 10:30:00", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), true},
		{"slashed iso", "2024/03/15", date(2024, 3, 15), true},
		{"month first", "03/15/2024", date(2024, 3, 15), true},
		{"day first when month impossible", "25/03/2024", date(2024, 3, 25), true},
		{"compact", "20240315", date(2024, 3, 15), true},
		{"named month", "15 Mar 2024", date(2024, 3, 15), true},
		{"timestamp with fraction", "2024-03-15 10:30:00.123456", date(2024, 3, 15), true},
		{"excel serial", "45366", date(2024, 3, 15), true},
		{"small integer is not a serial", "42", time.Time{}, false},
		{"garbage", "not a date", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			values, valid := ParseDates([]string{tc.cell})
			require.Len(t, valid, 1)
			assert.Equal(t, tc.valid, valid[0])
			if tc.valid {
				assert.True(t, tc.expected.Equal(values[0]), "got %s", values[0])
			}
		})
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
