package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/smaport/insight/pkg/models/domain"
)

// sampleRows bounds how much raw data is shipped to the collaborator.
const sampleRows = 50

// Payload is what the collaborator receives: a per-column statistical
// summary and a bounded row sample, both rendered as plain text.
type Payload struct {
	Summary string
	Sample  string
}

// BuildPayload derives the report payload from an analyzed table.
func BuildPayload(a *domain.Analysis) Payload {
	return Payload{
		Summary: summarize(a.Table),
		Sample:  renderSample(a.Table, sampleRows),
	}
}

// Prompt renders the analyst instruction wrapped around the payload.
func (p Payload) Prompt() string {
	return fmt.Sprintf(`You are an expert business data analyst. Analyze the following information and answer with clearly separated sections:
1) Executive summary (3-5 sentences)
2) Trends and seasonality
3) Most and least profitable products/periods
4) Risks or anomalies detected
5) 3 actionable, prioritized recommendations

Statistical summary:
%s

Sample:
%s`, p.Summary, p.Sample)
}

// summarize produces a describe-style block per column: count and missing
// for every column, mean/std/min/max for numeric ones, unique count and
// most frequent value for textual ones.
func summarize(t *domain.Table) string {
	var b strings.Builder
	for _, col := range t.Columns {
		count, missing := 0, 0
		var numbers []float64
		freq := map[string]int{}
		for _, cell := range col.Cells {
			if cell.Missing() {
				missing++
				continue
			}
			count++
			if cell.IsNumber {
				numbers = append(numbers, cell.Number)
			} else {
				freq[cell.Raw]++
			}
		}

		fmt.Fprintf(&b, "%s: count=%d missing=%d", col.Name, count, missing)
		if len(numbers) > 0 {
			mean, std, min, max := describe(numbers)
			fmt.Fprintf(&b, " mean=%.2f std=%.2f min=%.2f max=%.2f", mean, std, min, max)
		} else if len(freq) > 0 {
			top, topCount := "", 0
			for value, n := range freq {
				if n > topCount || (n == topCount && value < top) {
					top, topCount = value, n
				}
			}
			fmt.Fprintf(&b, " unique=%d top=%q freq=%d", len(freq), top, topCount)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func describe(values []float64) (mean, std, min, max float64) {
	min, max = values[0], values[0]
	for _, v := range values {
		mean += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean /= float64(len(values))
	if len(values) > 1 {
		variance := 0.0
		for _, v := range values {
			variance += (v - mean) * (v - mean)
		}
		std = math.Sqrt(variance / float64(len(values)-1))
	}
	return mean, std, min, max
}

// renderSample writes the first maxRows rows as a delimited text block,
// header included.
func renderSample(t *domain.Table, maxRows int) string {
	var b strings.Builder
	names := t.ColumnNames()
	b.WriteString(strings.Join(names, " | "))
	b.WriteString("\n")

	rows := t.RowCount()
	if rows > maxRows {
		rows = maxRows
	}
	for i := 0; i < rows; i++ {
		fields := make([]string, len(t.Columns))
		for c, col := range t.Columns {
			fields[c] = col.Cells[i].Raw
		}
		b.WriteString(strings.Join(fields, " | "))
		b.WriteString("\n")
	}
	return b.String()
}
