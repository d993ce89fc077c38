package api

// SeriesDef describes one rendered series (bar or slice) of a chart.
type SeriesDef struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// PivotPoint is one ranked row of pivot chart data. Won/Dead are populated
// only for the win_rate metric.
type PivotPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Won   *int    `json:"won,omitempty"`
	Dead  *int    `json:"dead,omitempty"`
}

// Chart is the render-ready half of a pivot result. The frontend switches on
// Type, so the donut/bar decision rules are part of the contract.
type Chart struct {
	Type     string       `json:"type"`
	Title    string       `json:"title"`
	IsAmount bool         `json:"isAmount"`
	Data     []PivotPoint `json:"data"`
	Bars     []SeriesDef  `json:"bars"`
}

// PivotSummary is the scalar half of a pivot result. Total always covers the
// full group set, never just the displayed top rows.
type PivotSummary struct {
	Total             float64 `json:"total"`
	TotalFormatted    string  `json:"total_formatted"`
	TopName           string  `json:"top_name"`
	TopValue          float64 `json:"top_value"`
	TopValueFormatted string  `json:"top_value_formatted"`
	Unit              string  `json:"unit"`
	RecordCount       int     `json:"record_count"`
}

// PivotResult pairs ranked chart data with its scalar summary.
type PivotResult struct {
	Chart   Chart        `json:"chart"`
	Summary PivotSummary `json:"summary"`
}
