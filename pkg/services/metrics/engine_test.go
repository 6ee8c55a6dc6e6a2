package metrics

import (
	"testing"
	"time"

	"github.com/smaport/insight/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(offset int) time.Time {
	return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func numberColumn(name string, values ...float64) domain.Column {
	cells := make([]domain.Cell, len(values))
	for i, v := range values {
		cells[i] = domain.Cell{Number: v, IsNumber: true}
	}
	return domain.Column{Name: name, Cells: cells}
}

func timeColumn(name string, values ...time.Time) domain.Column {
	cells := make([]domain.Cell, len(values))
	for i, v := range values {
		cells[i] = domain.Cell{Time: v, IsTime: true}
	}
	return domain.Column{Name: name, Cells: cells}
}

func textColumn(name string, values ...string) domain.Column {
	cells := make([]domain.Cell, len(values))
	for i, v := range values {
		cells[i] = domain.Cell{Raw: v}
	}
	return domain.Column{Name: name, Cells: cells}
}

func fullRoles() domain.RoleMapping {
	return domain.RoleMapping{
		domain.RoleDate:    "Fecha",
		domain.RoleProduct: "Producto",
		domain.RoleRevenue: "Ventas",
		domain.RoleCost:    "Coste",
		domain.RoleUnits:   "Unidades",
	}
}

func TestCompute_KPIs(t *testing.T) {
	table := &domain.Table{Columns: []domain.Column{
		timeColumn("Fecha", day(0), day(1), day(2), day(3)),
		textColumn("Producto", "A", "B", "A", "B"),
		numberColumn("Ventas", 100, 200, 300, 400),
		numberColumn("Coste", 50, 100, 150, 200),
		numberColumn("Unidades", 1, 2, 3, 4),
	}}

	s := Compute(table, fullRoles(), domain.DefaultAnalysisConfig())

	assert.InDelta(t, 1000.0, s.Revenue, 1e-9)
	assert.InDelta(t, 500.0, s.Cost, 1e-9)
	assert.InDelta(t, 500.0, s.Profit, 1e-9)
	assert.InDelta(t, 50.0, s.MarginPct, 1e-9)
	assert.Equal(t, domain.MarginHealthy, s.MarginBand)
	assert.Equal(t, int64(10), s.Units)

	require.True(t, s.HasGrowth)
	assert.InDelta(t, 300.0, s.GrowthPct, 1e-9)
	assert.Equal(t, domain.GrowthHealthy, s.GrowthBand)

	require.NotNil(t, s.Period)
	assert.Equal(t, day(0), s.Period.Start)
	assert.Equal(t, day(3), s.Period.End)
	assert.Equal(t, 3, s.Period.Duration)

	require.Len(t, s.TopProducts, 2)
	assert.Equal(t, domain.ProductRevenue{Product: "B", Revenue: 600}, s.TopProducts[0])
	assert.Equal(t, domain.ProductRevenue{Product: "A", Revenue: 400}, s.TopProducts[1])
}

func TestCompute_MissingRolesDegradeToZero(t *testing.T) {
	table := &domain.Table{Columns: []domain.Column{
		textColumn("Notas", "x", "y"),
	}}

	s := Compute(table, domain.RoleMapping{}, domain.DefaultAnalysisConfig())

	assert.Zero(t, s.Revenue)
	assert.Zero(t, s.Cost)
	assert.Zero(t, s.Profit)
	assert.Zero(t, s.MarginPct)
	assert.Equal(t, domain.MarginWeak, s.MarginBand)
	assert.Zero(t, s.Units)
	assert.False(t, s.HasGrowth)
	assert.Nil(t, s.Period)
	assert.Nil(t, s.TopProducts)
	assert.Empty(t, s.Trend.Points)
	assert.Nil(t, s.Outliers)
}

func TestCompute_ZeroRevenueMargin(t *testing.T) {
	table := &domain.Table{Columns: []domain.Column{
		numberColumn("Ventas", 0, 0),
		numberColumn("Coste", 10, 20),
	}}
	roles := domain.RoleMapping{domain.RoleRevenue: "Ventas", domain.RoleCost: "Coste"}

	s := Compute(table, roles, domain.DefaultAnalysisConfig())

	assert.Zero(t, s.MarginPct)
	assert.Equal(t, domain.MarginWeak, s.MarginBand)
	assert.InDelta(t, -30.0, s.Profit, 1e-9)
}

func TestCompute_UnitsTruncated(t *testing.T) {
	table := &domain.Table{Columns: []domain.Column{
		numberColumn("Unidades", 5.4, 5.4),
	}}
	roles := domain.RoleMapping{domain.RoleUnits: "Unidades"}

	s := Compute(table, roles, domain.DefaultAnalysisConfig())
	assert.Equal(t, int64(10), s.Units)
}

func TestComputeGrowth_Degenerate(t *testing.T) {
	t.Run("single dated value", func(t *testing.T) {
		table := &domain.Table{Columns: []domain.Column{
			timeColumn("Fecha", day(0)),
			numberColumn("Ventas", 100),
		}}
		roles := domain.RoleMapping{domain.RoleDate: "Fecha", domain.RoleRevenue: "Ventas"}
		s := Compute(table, roles, domain.DefaultAnalysisConfig())
		assert.False(t, s.HasGrowth)
	})

	t.Run("zero first value", func(t *testing.T) {
		table := &domain.Table{Columns: []domain.Column{
			timeColumn("Fecha", day(0), day(1)),
			numberColumn("Ventas", 0, 100),
		}}
		roles := domain.RoleMapping{domain.RoleDate: "Fecha", domain.RoleRevenue: "Ventas"}
		s := Compute(table, roles, domain.DefaultAnalysisConfig())
		assert.False(t, s.HasGrowth)
	})

	t.Run("negative growth band", func(t *testing.T) {
		table := &domain.Table{Columns: []domain.Column{
			timeColumn("Fecha", day(0), day(1)),
			numberColumn("Ventas", 100, 80),
		}}
		roles := domain.RoleMapping{domain.RoleDate: "Fecha", domain.RoleRevenue: "Ventas"}
		s := Compute(table, roles, domain.DefaultAnalysisConfig())
		require.True(t, s.HasGrowth)
		assert.InDelta(t, -20.0, s.GrowthPct, 1e-9)
		assert.Equal(t, domain.GrowthNegative, s.GrowthBand)
	})
}

func TestTopProducts_TiesKeepFirstSeenOrder(t *testing.T) {
	table := &domain.Table{Columns: []domain.Column{
		textColumn("Producto", "Z", "Y", "Z", "Y", "X"),
		numberColumn("Ventas", 50, 50, 50, 50, 300),
	}}
	roles := domain.RoleMapping{domain.RoleProduct: "Producto", domain.RoleRevenue: "Ventas"}

	ranking := topProducts(table, roles, 5)
	require.Len(t, ranking, 3)
	assert.Equal(t, "X", ranking[0].Product)
	// Z and Y both total 100; Z appeared first in the data.
	assert.Equal(t, "Z", ranking[1].Product)
	assert.Equal(t, "Y", ranking[2].Product)
}

func TestTopProducts_Truncation(t *testing.T) {
	table := &domain.Table{Columns: []domain.Column{
		textColumn("Producto", "A", "B", "C", "D"),
		numberColumn("Ventas", 4, 3, 2, 1),
	}}
	roles := domain.RoleMapping{domain.RoleProduct: "Producto", domain.RoleRevenue: "Ventas"}

	ranking := topProducts(table, roles, 2)
	require.Len(t, ranking, 2)
	assert.Equal(t, "A", ranking[0].Product)
	assert.Equal(t, "B", ranking[1].Product)
}

func TestTrend_Granularity(t *testing.T) {
	t.Run("89 day span stays daily", func(t *testing.T) {
		table := &domain.Table{Columns: []domain.Column{
			timeColumn("Fecha", day(0), day(89)),
			numberColumn("Ventas", 10, 20),
		}}
		roles := domain.RoleMapping{domain.RoleDate: "Fecha", domain.RoleRevenue: "Ventas"}

		series := trend(table, roles)
		assert.Equal(t, domain.GranularityDaily, series.Granularity)
		require.Len(t, series.Points, 90)
		assert.InDelta(t, 10.0, series.Points[0].Revenue, 1e-9)
		assert.InDelta(t, 20.0, series.Points[89].Revenue, 1e-9)
		// Interior buckets with no rows are zero-filled.
		assert.Zero(t, series.Points[45].Revenue)
	})

	t.Run("four month span is monthly", func(t *testing.T) {
		table := &domain.Table{Columns: []domain.Column{
			timeColumn("Fecha", day(0), day(121)),
			numberColumn("Ventas", 10, 20),
		}}
		roles := domain.RoleMapping{domain.RoleDate: "Fecha", domain.RoleRevenue: "Ventas"}

		series := trend(table, roles)
		assert.Equal(t, domain.GranularityMonthly, series.Granularity)
		require.Len(t, series.Points, 5)
		assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), series.Points[0].Bucket)
		assert.Equal(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), series.Points[4].Bucket)
		assert.Zero(t, series.Points[2].Revenue)
	})

	t.Run("multi year span is quarterly", func(t *testing.T) {
		start := time.Date(2022, time.February, 10, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC)
		table := &domain.Table{Columns: []domain.Column{
			timeColumn("Fecha", start, end),
			numberColumn("Ventas", 10, 20),
		}}
		roles := domain.RoleMapping{domain.RoleDate: "Fecha", domain.RoleRevenue: "Ventas"}

		series := trend(table, roles)
		assert.Equal(t, domain.GranularityQuarterly, series.Granularity)
		require.Len(t, series.Points, 10)
		assert.Equal(t, time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC), series.Points[0].Bucket)
		assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), series.Points[9].Bucket)
	})
}

func TestTrend_AggregatesCost(t *testing.T) {
	table := &domain.Table{Columns: []domain.Column{
		timeColumn("Fecha", day(0), day(0), day(1)),
		numberColumn("Ventas", 10, 20, 5),
		numberColumn("Coste", 4, 6, 2),
	}}
	roles := domain.RoleMapping{
		domain.RoleDate:    "Fecha",
		domain.RoleRevenue: "Ventas",
		domain.RoleCost:    "Coste",
	}

	series := trend(table, roles)
	require.Len(t, series.Points, 2)
	assert.InDelta(t, 30.0, series.Points[0].Revenue, 1e-9)
	assert.InDelta(t, 10.0, series.Points[0].Cost, 1e-9)
	assert.InDelta(t, 5.0, series.Points[1].Revenue, 1e-9)
}

func TestOutliers(t *testing.T) {
	t.Run("high revenue flagged", func(t *testing.T) {
		table := &domain.Table{Columns: []domain.Column{
			timeColumn("Fecha", day(0), day(1), day(2), day(3), day(4), day(5)),
			textColumn("Producto", "A", "A", "A", "A", "A", "B"),
			numberColumn("Ventas", 10, 10, 10, 10, 10, 200),
		}}
		roles := domain.RoleMapping{
			domain.RoleDate:    "Fecha",
			domain.RoleProduct: "Producto",
			domain.RoleRevenue: "Ventas",
		}

		result := outliers(table, roles, 2.0)
		require.Len(t, result, 1)
		assert.Equal(t, 5, result[0].Row)
		assert.InDelta(t, 200.0, result[0].Value, 1e-9)
		assert.Equal(t, "B", result[0].Product)
		require.NotNil(t, result[0].Date)
		assert.Equal(t, day(5), *result[0].Date)
	})

	t.Run("too few samples", func(t *testing.T) {
		table := &domain.Table{Columns: []domain.Column{
			numberColumn("Ventas", 10, 1000),
		}}
		roles := domain.RoleMapping{domain.RoleRevenue: "Ventas"}
		assert.Nil(t, outliers(table, roles, 2.0))
	})

	t.Run("falls back to cost column", func(t *testing.T) {
		table := &domain.Table{Columns: []domain.Column{
			numberColumn("Coste", 10, 10, 10, 10, 10, 200),
		}}
		roles := domain.RoleMapping{domain.RoleCost: "Coste"}

		result := outliers(table, roles, 2.0)
		require.Len(t, result, 1)
		assert.InDelta(t, 200.0, result[0].Value, 1e-9)
	})

	t.Run("uniform values yield none", func(t *testing.T) {
		table := &domain.Table{Columns: []domain.Column{
			numberColumn("Ventas", 10, 10, 10, 10),
		}}
		roles := domain.RoleMapping{domain.RoleRevenue: "Ventas"}
		assert.Nil(t, outliers(table, roles, 2.0))
	})
}
