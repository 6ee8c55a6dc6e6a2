// Package export renders an analysis as a plain-text report for the CLI.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/smaport/insight/pkg/models/domain"
)

type TableConfig struct {
	NameWidth  int
	ValueWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:  32,
		ValueWidth: 24,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (r *Reporter) Handle(a *domain.Analysis) error {
	funcMap := template.FuncMap{
		"row": func(name string, value any) string {
			return fmt.Sprintf("| %-*s | %-*v |",
				r.config.NameWidth, name,
				r.config.ValueWidth, value)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+",
				strings.Repeat("-", r.config.NameWidth+2),
				strings.Repeat("-", r.config.ValueWidth+2))
		},
		"money":   Money,
		"number":  Number,
		"percent": func(v float64) string { return fmt.Sprintf("%.2f%%", v) },
		"date":    func(t time.Time) string { return t.Format("2006-01-02") },
	}

	tmpl := `
{{.FileName}} — {{.Table.RowCount}} rows, {{len .Table.Columns}} columns
{{with .Snapshot.Period}}Period: {{date .Start}} to {{date .End}} ({{.Duration}} days)
{{end}}
{{separator}}
{{row "Revenue" (money .Snapshot.Revenue)}}
{{row "Cost" (money .Snapshot.Cost)}}
{{row "Profit" (money .Snapshot.Profit)}}
{{row (printf "Margin (%s)" .Snapshot.MarginBand) (percent .Snapshot.MarginPct)}}
{{row "Units" (number .Snapshot.Units)}}
{{if .Snapshot.HasGrowth}}{{row (printf "Growth (%s)" .Snapshot.GrowthBand) (percent .Snapshot.GrowthPct)}}
{{end}}{{separator}}
{{if .Snapshot.TopProducts}}
Top products by revenue:
{{separator}}
{{range .Snapshot.TopProducts}}{{row .Product (money .Revenue)}}
{{end}}{{separator}}
{{end}}{{if .Snapshot.Trend.Points}}
Trend ({{.Snapshot.Trend.Granularity}}):
{{separator}}
{{range .Snapshot.Trend.Points}}{{row (date .Bucket) (money .Revenue)}}
{{end}}{{separator}}
{{end}}{{if .Snapshot.Outliers}}
Possible anomalies:
{{separator}}
{{range .Snapshot.Outliers}}{{row (printf "row %d %s" .Row .Product) (money .Value)}}
{{end}}{{separator}}
{{end}}`

	t, err := template.New("analysis").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(r.writer, a)
}

// Money formats a value as European-style currency text: "€ 1 234,56".
func Money(v float64) string {
	return "€ " + formatGrouped(v, 2)
}

// Number formats an integral value with space-grouped thousands.
func Number(v int64) string {
	return formatGrouped(float64(v), 0)
}

func formatGrouped(v float64, decimals int) string {
	s := fmt.Sprintf("%.*f", decimals, v)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac := s, ""
	if i := strings.Index(s, "."); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}

	var groups []string
	for len(whole) > 3 {
		groups = append([]string{whole[len(whole)-3:]}, groups...)
		whole = whole[:len(whole)-3]
	}
	groups = append([]string{whole}, groups...)

	out := sign + strings.Join(groups, " ")
	if frac != "" {
		out += "," + frac
	}
	return out
}
