// Package numeric converts free-form numeric and date text into typed
// values. Business spreadsheets mix US (1,234.56) and European (1.234,56)
// conventions unpredictably, so the decimal separator is resolved per
// column from aggregate separator counts rather than per cell.
package numeric

import (
	"strconv"
	"strings"
)

var symbolStripper = strings.NewReplacer(
	"€", "", "$", "", "£", "", "%", "",
	" ", "", " ", "",
)

// NormalizeColumn parses a column of free-form numeric text. It strips
// currency and percent symbols, decides the decimal separator from the
// whole column, and parses each cell; unparseable cells come back invalid
// rather than failing the column.
//
// Known limitation: a short column where every cell carries exactly one
// comma and one dot (e.g. "1.234,56" vs "1,234.56") is disambiguated only
// by the aggregate counts and can misfire.
func NormalizeColumn(cells []string) ([]float64, []bool) {
	stripped := make([]string, len(cells))
	commas, dots := 0, 0
	for i, cell := range cells {
		s := symbolStripper.Replace(strings.TrimSpace(cell))
		stripped[i] = s
		commas += strings.Count(s, ",")
		dots += strings.Count(s, ".")
	}

	// Commas outnumbering dots across the column marks comma-decimal text;
	// the dots are then thousands separators.
	commaDecimal := commas > 0 && dots < commas

	values := make([]float64, len(cells))
	valid := make([]bool, len(cells))
	for i, s := range stripped {
		if s == "" {
			continue
		}
		if commaDecimal {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			continue
		}
		values[i] = v
		valid[i] = true
	}
	return values, valid
}
