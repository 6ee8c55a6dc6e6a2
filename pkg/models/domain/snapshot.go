package domain

import "time"

// Granularity of the time-bucketed trend series, chosen from the span of
// the Date column: under 90 days daily, under 730 days monthly, else
// quarterly.
type Granularity string

const (
	GranularityDaily     Granularity = "daily"
	GranularityMonthly   Granularity = "monthly"
	GranularityQuarterly Granularity = "quarterly"
)

// TimePeriod is the date span covered by the analyzed table.
type TimePeriod struct {
	Start    time.Time
	End      time.Time
	Duration int // in days
}

// TrendPoint is one bucket of the revenue/cost trend. Buckets with no
// rows carry zeros so the series stays contiguous.
type TrendPoint struct {
	Bucket  time.Time
	Revenue float64
	Cost    float64
}

type TrendSeries struct {
	Granularity Granularity
	Points      []TrendPoint
}

// ProductRevenue is one entry of the top-N product ranking.
type ProductRevenue struct {
	Product string
	Revenue float64
}

// Outlier is a row whose classifying value falls strictly outside
// mean ± sigma * stddev of its column.
type Outlier struct {
	Row     int
	Value   float64
	Product string
	Date    *time.Time
}

type MarginBand string

const (
	MarginHealthy MarginBand = "healthy" // above 30%
	MarginThin    MarginBand = "thin"    // above 10%
	MarginWeak    MarginBand = "weak"
)

type GrowthBand string

const (
	GrowthNegative GrowthBand = "negative"
	GrowthLow      GrowthBand = "low" // under 5%
	GrowthHealthy  GrowthBand = "healthy"
)

// Snapshot holds every metric derived from a clean table. It is pure
// function output: never mutated, always recomputed when the table or
// the analysis configuration changes.
type Snapshot struct {
	Revenue    float64
	Cost       float64
	Profit     float64
	MarginPct  float64
	MarginBand MarginBand
	Units      int64

	GrowthPct  float64
	HasGrowth  bool
	GrowthBand GrowthBand

	Period      *TimePeriod
	TopProducts []ProductRevenue
	Trend       TrendSeries
	Outliers    []Outlier
}
