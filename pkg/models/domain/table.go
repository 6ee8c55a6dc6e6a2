package domain

import (
	"math"
	"time"
)

// Cell is a single value from an uploaded file. Raw always carries the
// trimmed source text; Number and Time are populated by normalization.
type Cell struct {
	Raw      string
	Number   float64
	Time     time.Time
	IsNumber bool
	IsTime   bool
}

// Missing reports whether the cell carries no usable value.
func (c Cell) Missing() bool {
	return c.Raw == "" && !c.IsNumber && !c.IsTime
}

// Column is a named, ordered sequence of cells.
type Column struct {
	Name  string
	Cells []Cell
}

// Table is the cleaned analytic table produced by ingestion. Rows align
// positionally across columns: Cells[i] of every column belongs to row i.
type Table struct {
	Columns []Column
}

func (t *Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

func (t *Table) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		names = append(names, col.Name)
	}
	return names
}

// Column returns the column with the given name, or nil when absent.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// FilterRows returns a new table holding only the rows where keep[i] is
// true. The receiver is left untouched; filters always derive.
func (t *Table) FilterRows(keep []bool) *Table {
	filtered := &Table{Columns: make([]Column, len(t.Columns))}
	for i, col := range t.Columns {
		cells := make([]Cell, 0, len(col.Cells))
		for j, cell := range col.Cells {
			if j < len(keep) && keep[j] {
				cells = append(cells, cell)
			}
		}
		filtered.Columns[i] = Column{Name: col.Name, Cells: cells}
	}
	return filtered
}

// SetNumbers installs parsed numeric values on a column. Infinities are
// demoted to missing so they never reach aggregate computations.
func (c *Column) SetNumbers(values []float64, valid []bool) {
	for i := range c.Cells {
		if i >= len(values) || i >= len(valid) || !valid[i] {
			continue
		}
		if math.IsInf(values[i], 0) || math.IsNaN(values[i]) {
			continue
		}
		c.Cells[i].Number = values[i]
		c.Cells[i].IsNumber = true
	}
}

// SetTimes installs parsed timestamps on a column.
func (c *Column) SetTimes(values []time.Time, valid []bool) {
	for i := range c.Cells {
		if i >= len(values) || i >= len(valid) || !valid[i] {
			continue
		}
		c.Cells[i].Time = values[i]
		c.Cells[i].IsTime = true
	}
}

// Numbers returns the column's parsed numeric values alongside a validity
// mask; missing and unparseable cells are false in the mask.
func (c *Column) Numbers() ([]float64, []bool) {
	values := make([]float64, len(c.Cells))
	valid := make([]bool, len(c.Cells))
	for i, cell := range c.Cells {
		values[i] = cell.Number
		valid[i] = cell.IsNumber
	}
	return values, valid
}
