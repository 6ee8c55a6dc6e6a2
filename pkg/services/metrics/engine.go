// Package metrics derives the full metric snapshot from a clean table:
// aggregate KPIs, endpoint growth, top-N product ranking, a contiguous
// time-bucketed trend series, and statistical outliers.
package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/smaport/insight/pkg/models/domain"
)

const (
	dailySpanDays   = 90
	monthlySpanDays = 730

	minAnomalySamples = 3

	marginHealthyPct = 30
	marginThinPct    = 10
	growthLowPct     = 5
)

// Compute derives a snapshot from the table, its role mapping and the
// analysis configuration. It is pure and deterministic: every computation
// whose required role is absent degrades to a zero or empty result instead
// of failing.
func Compute(t *domain.Table, roles domain.RoleMapping, cfg domain.AnalysisConfig) domain.Snapshot {
	snapshot := domain.Snapshot{}

	snapshot.Revenue = sumRole(t, roles, domain.RoleRevenue)
	snapshot.Cost = sumRole(t, roles, domain.RoleCost)
	snapshot.Profit = snapshot.Revenue - snapshot.Cost
	if snapshot.Revenue != 0 {
		snapshot.MarginPct = snapshot.Profit / snapshot.Revenue * 100
	}
	snapshot.MarginBand = marginBand(snapshot.MarginPct)
	snapshot.Units = int64(sumRole(t, roles, domain.RoleUnits))

	computeGrowth(&snapshot, t, roles)
	snapshot.Period = period(t, roles)
	snapshot.TopProducts = topProducts(t, roles, cfg.TopN)
	snapshot.Trend = trend(t, roles)
	snapshot.Outliers = outliers(t, roles, cfg.Sigma)

	return snapshot
}

func sumRole(t *domain.Table, roles domain.RoleMapping, role domain.Role) float64 {
	name, ok := roles.Column(role)
	if !ok {
		return 0
	}
	col := t.Column(name)
	if col == nil {
		return 0
	}
	total := 0.0
	for _, cell := range col.Cells {
		if cell.IsNumber {
			total += cell.Number
		}
	}
	return total
}

func marginBand(marginPct float64) domain.MarginBand {
	switch {
	case marginPct > marginHealthyPct:
		return domain.MarginHealthy
	case marginPct > marginThinPct:
		return domain.MarginThin
	default:
		return domain.MarginWeak
	}
}

// computeGrowth compares the first and last revenue values in date order.
// This is an endpoint comparison, not a regression, and is sensitive to
// outliers at the boundaries.
func computeGrowth(s *domain.Snapshot, t *domain.Table, roles domain.RoleMapping) {
	points := datedValues(t, roles, domain.RoleRevenue)
	if len(points) < 2 {
		return
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].date.Before(points[j].date) })
	first, last := points[0].value, points[len(points)-1].value
	if first == 0 {
		return
	}
	s.GrowthPct = (last - first) / first * 100
	s.HasGrowth = true
	switch {
	case s.GrowthPct < 0:
		s.GrowthBand = domain.GrowthNegative
	case s.GrowthPct < growthLowPct:
		s.GrowthBand = domain.GrowthLow
	default:
		s.GrowthBand = domain.GrowthHealthy
	}
}

type datedValue struct {
	date  time.Time
	value float64
	cost  float64
}

// datedValues pairs each row's date with its value for the given role,
// keeping only rows where both are present.
func datedValues(t *domain.Table, roles domain.RoleMapping, role domain.Role) []datedValue {
	dateName, ok := roles.Column(domain.RoleDate)
	if !ok {
		return nil
	}
	valueName, ok := roles.Column(role)
	if !ok {
		return nil
	}
	dateCol, valueCol := t.Column(dateName), t.Column(valueName)
	if dateCol == nil || valueCol == nil {
		return nil
	}

	var costCol *domain.Column
	if costName, ok := roles.Column(domain.RoleCost); ok {
		costCol = t.Column(costName)
	}

	var points []datedValue
	for i := range dateCol.Cells {
		if !dateCol.Cells[i].IsTime || i >= len(valueCol.Cells) || !valueCol.Cells[i].IsNumber {
			continue
		}
		p := datedValue{date: dateCol.Cells[i].Time, value: valueCol.Cells[i].Number}
		if costCol != nil && i < len(costCol.Cells) && costCol.Cells[i].IsNumber {
			p.cost = costCol.Cells[i].Number
		}
		points = append(points, p)
	}
	return points
}

func period(t *domain.Table, roles domain.RoleMapping) *domain.TimePeriod {
	name, ok := roles.Column(domain.RoleDate)
	if !ok {
		return nil
	}
	col := t.Column(name)
	if col == nil {
		return nil
	}
	var start, end time.Time
	found := false
	for _, cell := range col.Cells {
		if !cell.IsTime {
			continue
		}
		if !found || cell.Time.Before(start) {
			start = cell.Time
		}
		if !found || cell.Time.After(end) {
			end = cell.Time
		}
		found = true
	}
	if !found {
		return nil
	}
	return &domain.TimePeriod{
		Start:    start,
		End:      end,
		Duration: int(end.Sub(start).Hours() / 24),
	}
}

// topProducts groups revenue by product and returns the topN groups by
// summed revenue, descending. Equal sums keep their first-seen order.
func topProducts(t *domain.Table, roles domain.RoleMapping, topN int) []domain.ProductRevenue {
	productName, ok := roles.Column(domain.RoleProduct)
	if !ok {
		return nil
	}
	revenueName, ok := roles.Column(domain.RoleRevenue)
	if !ok {
		return nil
	}
	productCol, revenueCol := t.Column(productName), t.Column(revenueName)
	if productCol == nil || revenueCol == nil {
		return nil
	}

	totals := map[string]float64{}
	var order []string
	for i, cell := range productCol.Cells {
		product := cell.Raw
		if product == "" {
			continue
		}
		if _, seen := totals[product]; !seen {
			order = append(order, product)
		}
		if i < len(revenueCol.Cells) && revenueCol.Cells[i].IsNumber {
			totals[product] += revenueCol.Cells[i].Number
		}
	}

	ranking := make([]domain.ProductRevenue, 0, len(order))
	for _, product := range order {
		ranking = append(ranking, domain.ProductRevenue{Product: product, Revenue: totals[product]})
	}
	sort.SliceStable(ranking, func(i, j int) bool { return ranking[i].Revenue > ranking[j].Revenue })
	if len(ranking) > topN {
		ranking = ranking[:topN]
	}
	return ranking
}

// trend buckets revenue and cost by a granularity picked from the total
// date span. Buckets without rows are zero-filled so the series stays
// contiguous.
func trend(t *domain.Table, roles domain.RoleMapping) domain.TrendSeries {
	points := datedValues(t, roles, domain.RoleRevenue)
	if len(points) == 0 {
		return domain.TrendSeries{}
	}

	start, end := points[0].date, points[0].date
	for _, p := range points {
		if p.date.Before(start) {
			start = p.date
		}
		if p.date.After(end) {
			end = p.date
		}
	}

	spanDays := int(end.Sub(start).Hours() / 24)
	granularity := domain.GranularityQuarterly
	switch {
	case spanDays < dailySpanDays:
		granularity = domain.GranularityDaily
	case spanDays < monthlySpanDays:
		granularity = domain.GranularityMonthly
	}

	sums := map[time.Time]*domain.TrendPoint{}
	for _, p := range points {
		bucket := truncateToBucket(p.date, granularity)
		tp, ok := sums[bucket]
		if !ok {
			tp = &domain.TrendPoint{Bucket: bucket}
			sums[bucket] = tp
		}
		tp.Revenue += p.value
		tp.Cost += p.cost
	}

	series := domain.TrendSeries{Granularity: granularity}
	last := truncateToBucket(end, granularity)
	for bucket := truncateToBucket(start, granularity); !bucket.After(last); bucket = nextBucket(bucket, granularity) {
		if tp, ok := sums[bucket]; ok {
			series.Points = append(series.Points, *tp)
		} else {
			series.Points = append(series.Points, domain.TrendPoint{Bucket: bucket})
		}
	}
	return series
}

func truncateToBucket(t time.Time, g domain.Granularity) time.Time {
	year, month, day := t.Date()
	switch g {
	case domain.GranularityDaily:
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	case domain.GranularityMonthly:
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	default:
		quarterStart := time.Month((int(month)-1)/3*3 + 1)
		return time.Date(year, quarterStart, 1, 0, 0, 0, 0, time.UTC)
	}
}

func nextBucket(t time.Time, g domain.Granularity) time.Time {
	switch g {
	case domain.GranularityDaily:
		return t.AddDate(0, 0, 1)
	case domain.GranularityMonthly:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 3, 0)
	}
}

// outliers flags rows whose classifying value lies strictly outside
// mean ± sigma * sample standard deviation. Revenue is the classifying
// column, falling back to Cost when no revenue column exists. Fewer than
// three non-missing values yields no outliers.
func outliers(t *domain.Table, roles domain.RoleMapping, sigma float64) []domain.Outlier {
	role := domain.RoleRevenue
	if !roles.Has(role) {
		role = domain.RoleCost
	}
	name, ok := roles.Column(role)
	if !ok {
		return nil
	}
	col := t.Column(name)
	if col == nil {
		return nil
	}

	var values []float64
	for _, cell := range col.Cells {
		if cell.IsNumber {
			values = append(values, cell.Number)
		}
	}
	if len(values) < minAnomalySamples {
		return nil
	}

	mean, std := meanStd(values)
	upper := mean + sigma*std
	lower := mean - sigma*std

	var productCol, dateCol *domain.Column
	if productName, ok := roles.Column(domain.RoleProduct); ok {
		productCol = t.Column(productName)
	}
	if dateName, ok := roles.Column(domain.RoleDate); ok {
		dateCol = t.Column(dateName)
	}

	var result []domain.Outlier
	for i, cell := range col.Cells {
		if !cell.IsNumber || (cell.Number <= upper && cell.Number >= lower) {
			continue
		}
		o := domain.Outlier{Row: i, Value: cell.Number}
		if productCol != nil && i < len(productCol.Cells) {
			o.Product = productCol.Cells[i].Raw
		}
		if dateCol != nil && i < len(dateCol.Cells) && dateCol.Cells[i].IsTime {
			d := dateCol.Cells[i].Time
			o.Date = &d
		}
		result = append(result, o)
	}
	return result
}

// meanStd returns the mean and sample standard deviation.
func meanStd(values []float64) (float64, float64) {
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values) - 1)
	return mean, math.Sqrt(variance)
}
