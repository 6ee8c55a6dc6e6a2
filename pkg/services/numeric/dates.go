package numeric

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts is ordered: ISO forms first, then slashed forms with
// month-first tried before day-first, matching how ambiguous dates like
// 01/02/2024 are conventionally resolved by tabular tooling.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"02/01/2006",
	"01-02-2006",
	"02-01-2006",
	"02.01.2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"02-Jan-2006",
	"01-02-06",
	"20060102",
}

// excelEpoch is day zero of the 1900 date system used by xlsx serials.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseDates parses a column of date text. Cells that match none of the
// known layouts fall back to an Excel serial-number interpretation;
// anything still unparseable comes back invalid, never an error.
func ParseDates(cells []string) ([]time.Time, []bool) {
	values := make([]time.Time, len(cells))
	valid := make([]bool, len(cells))
	for i, cell := range cells {
		if t, ok := parseDate(cell); ok {
			values[i] = t
			valid[i] = true
		}
	}
	return values, valid
}

func parseDate(cell string) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	// Timestamps with trailing precision beyond the known layouts.
	if len(s) > 10 {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return t, true
		}
	}
	// Excel serial dates: days since the 1900 epoch. Serials below 60
	// collide with plain small integers too often to trust.
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= 60 && serial < 300000 {
		days := int(serial)
		return excelEpoch.AddDate(0, 0, days), true
	}
	return time.Time{}, false
}
