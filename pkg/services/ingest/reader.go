package ingest

import (
	"fmt"
	"strings"

	"github.com/smaport/insight/pkg/models/domain"
)

// Read parses the byte stream into a clean table with the header at row
// skipRows. Delimited text walks an ordered list of (delimiter, encoding)
// configurations and keeps the first one that parses without structural
// error and yields a usable table. Spreadsheets go through the single
// excelize reader.
func Read(data []byte, kind domain.FileKind, skipRows int) (*domain.Table, error) {
	if kind == domain.FileKindSpreadsheet {
		rows, err := readSpreadsheet(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
		}
		table := buildTable(rows, skipRows)
		if table.RowCount() == 0 {
			return nil, ErrEmptyTable
		}
		return table, nil
	}

	configs := []struct {
		delimiter rune
		enc       fileEncoding
	}{
		{';', encodingUTF8},
		{';', encodingLatin1},
		{',', encodingUTF8},
		{',', encodingLatin1},
	}

	// A single-column parse usually means the wrong delimiter, so wider
	// tables are preferred. A one-column result is kept as a fallback only
	// when the file carries no delimiter at all; otherwise it is just the
	// wrong-delimiter rendering of a file whose real columns held no data.
	var fallback *domain.Table
	parsed := false
	for _, cfg := range configs {
		rows, err := readDelimited(data, cfg.delimiter, cfg.enc, 0)
		if err != nil {
			continue
		}
		parsed = true
		table := buildTable(rows, skipRows)
		if table.RowCount() == 0 {
			continue
		}
		if len(table.Columns) >= 2 {
			return table, nil
		}
		if fallback == nil {
			fallback = table
		}
	}
	if fallback != nil && sniffDelimiter(data) == 0 {
		return fallback, nil
	}
	if parsed {
		return nil, ErrEmptyTable
	}
	return nil, ErrUnreadableFile
}

// buildTable assembles a table from raw rows: the row at skipRows names
// the columns, everything after it is data. Column names are trimmed,
// synthetic "Unnamed" columns are dropped, missing markers become empty
// cells, and fully-empty rows and columns are removed.
func buildTable(rows [][]string, skipRows int) *domain.Table {
	if skipRows < 0 || skipRows >= len(rows) {
		return &domain.Table{}
	}
	header := rows[skipRows]
	dataRows := rows[skipRows+1:]

	type columnSource struct {
		name  string
		index int
	}
	var sources []columnSource
	for i, name := range header {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" || strings.HasPrefix(trimmed, "Unnamed") {
			continue
		}
		sources = append(sources, columnSource{name: trimmed, index: i})
	}
	if len(sources) == 0 {
		return &domain.Table{}
	}

	table := &domain.Table{Columns: make([]domain.Column, len(sources))}
	for c, src := range sources {
		table.Columns[c] = domain.Column{Name: src.name}
	}

	for _, row := range dataRows {
		cells := make([]domain.Cell, len(sources))
		empty := true
		for c, src := range sources {
			var raw string
			if src.index < len(row) {
				raw = strings.TrimSpace(row[src.index])
			}
			if isMissing(raw) {
				raw = ""
			} else {
				empty = false
			}
			cells[c] = domain.Cell{Raw: raw}
		}
		if empty {
			continue
		}
		for c := range sources {
			table.Columns[c].Cells = append(table.Columns[c].Cells, cells[c])
		}
	}

	return dropEmptyColumns(table)
}

func dropEmptyColumns(t *domain.Table) *domain.Table {
	kept := t.Columns[:0]
	for _, col := range t.Columns {
		hasValue := false
		for _, cell := range col.Cells {
			if !cell.Missing() {
				hasValue = true
				break
			}
		}
		if hasValue {
			kept = append(kept, col)
		}
	}
	t.Columns = kept
	return t
}
