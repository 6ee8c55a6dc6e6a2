package api

import "time"

type TimePeriod struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration int       `json:"duration_days"`
}

type TrendPoint struct {
	Bucket  time.Time `json:"bucket"`
	Revenue float64   `json:"revenue"`
	Cost    float64   `json:"cost"`
}

type TrendSeries struct {
	Granularity string       `json:"granularity"`
	Points      []TrendPoint `json:"points"`
}

type ProductRevenue struct {
	Product string  `json:"product"`
	Revenue float64 `json:"revenue"`
}

type Outlier struct {
	Row     int        `json:"row"`
	Value   float64    `json:"value"`
	Product string     `json:"product,omitempty"`
	Date    *time.Time `json:"date,omitempty"`
}

type Snapshot struct {
	Revenue    float64 `json:"revenue"`
	Cost       float64 `json:"cost"`
	Profit     float64 `json:"profit"`
	MarginPct  float64 `json:"margin_pct"`
	MarginBand string  `json:"margin_band"`
	Units      int64   `json:"units"`

	GrowthPct  *float64 `json:"growth_pct,omitempty"`
	GrowthBand string   `json:"growth_band,omitempty"`

	Period      *TimePeriod      `json:"period,omitempty"`
	TopProducts []ProductRevenue `json:"top_products"`
	Trend       TrendSeries      `json:"trend"`
	Outliers    []Outlier        `json:"outliers"`
}

type Analysis struct {
	ID       string            `json:"id"`
	FileName string            `json:"file_name"`
	Columns  []string          `json:"columns"`
	Roles    map[string]string `json:"roles"`
	RowCount int               `json:"row_count"`
	Products []string          `json:"products,omitempty"`
	Preview  [][]string        `json:"preview"`
	Snapshot Snapshot          `json:"snapshot"`
}

type FilterRequest struct {
	Product string `json:"product,omitempty"`
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
}

type Report struct {
	Text string `json:"text"`
}

type Error struct {
	Error string `json:"error"`
}
