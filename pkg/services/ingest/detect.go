package ingest

import "github.com/smaport/insight/pkg/models/domain"

// DetectHeader returns the number of leading rows to discard before the
// real column-header row. It parses the first 20 rows under every candidate
// configuration and keeps the row with the highest count of meaningful
// cells; earlier rows and earlier-tried configurations win ties. Detection
// never fails: when nothing parses it returns 0 and the caller proceeds
// with default behavior.
func DetectHeader(data []byte, kind domain.FileKind) int {
	best := -1
	bestRow := 0

	consider := func(rows [][]string) {
		limit := len(rows)
		if limit > lookaheadRows {
			limit = lookaheadRows
		}
		for i := 0; i < limit; i++ {
			if v := rowValidity(rows[i]); v > best {
				best = v
				bestRow = i
			}
		}
	}

	if kind == domain.FileKindSpreadsheet {
		rows, err := readSpreadsheet(data)
		if err != nil {
			return 0
		}
		consider(rows)
		return bestRow
	}

	delimiters := []rune{',', ';'}
	if sniffed := sniffDelimiter(data); sniffed != 0 && sniffed != ',' && sniffed != ';' {
		delimiters = append(delimiters, sniffed)
	}
	for _, delimiter := range delimiters {
		for _, enc := range []fileEncoding{encodingUTF8, encodingLatin1} {
			rows, err := readDelimited(data, delimiter, enc, lookaheadRows)
			if err != nil {
				continue
			}
			consider(rows)
		}
	}
	return bestRow
}

// rowValidity counts cells that are present and meaningful: non-empty
// after trimming and not a textual missing marker.
func rowValidity(row []string) int {
	count := 0
	for _, cell := range row {
		if !isMissing(cell) {
			count++
		}
	}
	return count
}
