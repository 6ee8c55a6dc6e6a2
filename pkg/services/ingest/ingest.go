// Package ingest turns raw uploaded bytes into a clean analytic table.
// It detects the true header row amid metadata junk, infers delimiter and
// encoding for delimited text, and reads spreadsheets through excelize.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

var (
	// ErrUnreadableFile means no parse configuration produced a usable table.
	ErrUnreadableFile = errors.New("unreadable file")
	// ErrEmptyTable means the file parsed but held no data after cleaning.
	ErrEmptyTable = errors.New("file is empty after cleaning")
)

// lookaheadRows bounds how far header detection scans into the file.
const lookaheadRows = 20

// missingMarkers are textual stand-ins for absent values, matched after
// trimming and lowercasing.
var missingMarkers = map[string]struct{}{
	"nan": {}, "null": {}, "none": {}, "na": {}, "n/a": {}, "#n/a": {},
}

func isMissing(cell string) bool {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return true
	}
	_, ok := missingMarkers[strings.ToLower(trimmed)]
	return ok
}

type fileEncoding int

const (
	encodingUTF8 fileEncoding = iota
	encodingLatin1
)

// decode returns the byte stream as UTF-8 text. The UTF-8 path fails on
// invalid byte sequences so the Latin-1 fallback gets its turn.
func decode(data []byte, enc fileEncoding) ([]byte, error) {
	data = stripBOM(data)
	switch enc {
	case encodingUTF8:
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("not valid UTF-8")
		}
		return data, nil
	case encodingLatin1:
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("latin-1 decode: %w", err)
		}
		return decoded, nil
	default:
		return nil, fmt.Errorf("unknown encoding %d", enc)
	}
}

func stripBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}

// readDelimited parses up to maxRows records (all when maxRows <= 0) with
// the given delimiter and encoding.
func readDelimited(data []byte, delimiter rune, enc fileEncoding, maxRows int) ([][]string, error) {
	decoded, err := decode(data, enc)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv parse: %w", err)
		}
		rows = append(rows, record)
		if maxRows > 0 && len(rows) >= maxRows {
			break
		}
	}
	return rows, nil
}

// readSpreadsheet loads the first sheet of an xlsx container.
func readSpreadsheet(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// sniffDelimiter picks the delimiter occurring most often in the first
// non-empty line. Returns 0 when nothing matches.
func sniffDelimiter(data []byte) rune {
	decoded, err := decode(data, encodingUTF8)
	if err != nil {
		decoded, err = decode(data, encodingLatin1)
		if err != nil {
			return 0
		}
	}

	for _, line := range strings.Split(string(decoded), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		best, bestCount := rune(0), 0
		for _, d := range []rune{';', '\t', ',', '|'} {
			if count := strings.Count(line, string(d)); count > bestCount {
				best, bestCount = d, count
			}
		}
		return best
	}
	return 0
}
