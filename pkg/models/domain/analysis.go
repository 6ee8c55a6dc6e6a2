package domain

import (
	"strings"
	"time"
)

// FileKind selects the parsing path for an upload.
type FileKind string

const (
	FileKindDelimited   FileKind = "delimited"
	FileKindSpreadsheet FileKind = "spreadsheet"
)

// KindForFilename picks the file kind from the upload's extension. Only
// ".csv" selects the delimited path; everything else goes through the
// spreadsheet reader.
func KindForFilename(name string) FileKind {
	if strings.HasSuffix(strings.ToLower(name), ".csv") {
		return FileKindDelimited
	}
	return FileKindSpreadsheet
}

// TableFilter narrows an analysis to a product and/or an inclusive date
// range. Zero values leave the corresponding dimension untouched.
type TableFilter struct {
	Product string
	Start   *time.Time
	End     *time.Time
}

func (f TableFilter) Empty() bool {
	return f.Product == "" && f.Start == nil && f.End == nil
}

// Analysis is one processed upload: the clean table, its role mapping and
// the snapshot computed from both. Filters derive new Analysis values
// rather than mutating this one.
type Analysis struct {
	ID        string
	FileName  string
	Table     *Table
	Roles     RoleMapping
	Config    AnalysisConfig
	Snapshot  Snapshot
	Products  []string
	CreatedAt time.Time
}
