package adapters

import (
	"testing"
	"time"

	"github.com/smaport/insight/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapAnalysisDomainToApi(t *testing.T) {
	cells := make([]domain.Cell, 60)
	for i := range cells {
		cells[i] = domain.Cell{Raw: "v"}
	}
	a := &domain.Analysis{
		ID:       "abc",
		FileName: "ventas.csv",
		Table:    &domain.Table{Columns: []domain.Column{{Name: "Ventas", Cells: cells}}},
		Roles:    domain.RoleMapping{domain.RoleRevenue: "Ventas"},
		Products: []string{"A"},
		Snapshot: domain.Snapshot{Revenue: 100},
	}

	out := MapAnalysisDomainToApi(a)

	assert.Equal(t, "abc", out.ID)
	assert.Equal(t, []string{"Ventas"}, out.Columns)
	assert.Equal(t, map[string]string{"revenue": "Ventas"}, out.Roles)
	assert.Equal(t, 60, out.RowCount)
	// The raw-row preview is bounded.
	assert.Len(t, out.Preview, 50)
	assert.Equal(t, []string{"v"}, out.Preview[0])
}

func TestMapSnapshotDomainToApi(t *testing.T) {
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	s := domain.Snapshot{
		Revenue:    100,
		Cost:       40,
		Profit:     60,
		MarginPct:  60,
		MarginBand: domain.MarginHealthy,
		HasGrowth:  true,
		GrowthPct:  12.5,
		GrowthBand: domain.GrowthHealthy,
		Period:     &domain.TimePeriod{Start: now, End: now.AddDate(0, 0, 9), Duration: 9},
		TopProducts: []domain.ProductRevenue{
			{Product: "A", Revenue: 100},
		},
		Trend: domain.TrendSeries{
			Granularity: domain.GranularityDaily,
			Points:      []domain.TrendPoint{{Bucket: now, Revenue: 100, Cost: 40}},
		},
	}

	out := MapSnapshotDomainToApi(s)

	assert.Equal(t, "healthy", out.MarginBand)
	require.NotNil(t, out.GrowthPct)
	assert.InDelta(t, 12.5, *out.GrowthPct, 1e-9)
	require.NotNil(t, out.Period)
	assert.Equal(t, 9, out.Period.Duration)
	assert.Equal(t, "daily", out.Trend.Granularity)
	require.Len(t, out.Trend.Points, 1)
	assert.InDelta(t, 40.0, out.Trend.Points[0].Cost, 1e-9)
}

func TestMapSnapshotDomainToApi_EmptySlicesStayEmpty(t *testing.T) {
	out := MapSnapshotDomainToApi(domain.Snapshot{})

	// Empty collections serialize as [], never null.
	assert.NotNil(t, out.TopProducts)
	assert.NotNil(t, out.Trend.Points)
	assert.NotNil(t, out.Outliers)
	assert.Nil(t, out.GrowthPct)
	assert.Nil(t, out.Period)
}
