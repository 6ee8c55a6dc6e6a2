package adapters

import (
	"github.com/smaport/insight/pkg/models/api"
	"github.com/smaport/insight/pkg/models/domain"
)

// previewRows bounds the raw-row preview returned to the presentation
// layer.
const previewRows = 50

func MapAnalysisDomainToApi(a *domain.Analysis) api.Analysis {
	roles := make(map[string]string, len(a.Roles))
	for role, column := range a.Roles {
		roles[string(role)] = column
	}
	return api.Analysis{
		ID:       a.ID,
		FileName: a.FileName,
		Columns:  a.Table.ColumnNames(),
		Roles:    roles,
		RowCount: a.Table.RowCount(),
		Products: a.Products,
		Preview:  preview(a.Table, previewRows),
		Snapshot: MapSnapshotDomainToApi(a.Snapshot),
	}
}

func MapSnapshotDomainToApi(s domain.Snapshot) api.Snapshot {
	out := api.Snapshot{
		Revenue:     s.Revenue,
		Cost:        s.Cost,
		Profit:      s.Profit,
		MarginPct:   s.MarginPct,
		MarginBand:  string(s.MarginBand),
		Units:       s.Units,
		TopProducts: []api.ProductRevenue{},
		Trend: api.TrendSeries{
			Granularity: string(s.Trend.Granularity),
			Points:      []api.TrendPoint{},
		},
		Outliers: []api.Outlier{},
	}

	if s.HasGrowth {
		growth := s.GrowthPct
		out.GrowthPct = &growth
		out.GrowthBand = string(s.GrowthBand)
	}
	if s.Period != nil {
		out.Period = &api.TimePeriod{
			Start:    s.Period.Start,
			End:      s.Period.End,
			Duration: s.Period.Duration,
		}
	}
	for _, p := range s.TopProducts {
		out.TopProducts = append(out.TopProducts, api.ProductRevenue{Product: p.Product, Revenue: p.Revenue})
	}
	for _, p := range s.Trend.Points {
		out.Trend.Points = append(out.Trend.Points, api.TrendPoint{Bucket: p.Bucket, Revenue: p.Revenue, Cost: p.Cost})
	}
	for _, o := range s.Outliers {
		out.Outliers = append(out.Outliers, api.Outlier{Row: o.Row, Value: o.Value, Product: o.Product, Date: o.Date})
	}
	return out
}

func preview(t *domain.Table, maxRows int) [][]string {
	rows := t.RowCount()
	if rows > maxRows {
		rows = maxRows
	}
	out := make([][]string, 0, rows)
	for i := 0; i < rows; i++ {
		row := make([]string, len(t.Columns))
		for c, col := range t.Columns {
			row[c] = col.Cells[i].Raw
		}
		out = append(out, row)
	}
	return out
}
