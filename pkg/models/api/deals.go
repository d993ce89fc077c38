package api

// RankedValue is a labeled amount carrying both display and raw forms, so
// consumers can render the string or re-scale the number.
type RankedValue struct {
	Name      string  `json:"name"`
	Formatted string  `json:"formatted"`
	Value     float64 `json:"value"`
}

// SectorOutcome counts closed and in-play deals for one sector.
type SectorOutcome struct {
	Won  int `json:"won"`
	Dead int `json:"dead"`
	Open int `json:"open"`
}

// PipelineSummary is the single-pass reduction of the deals board.
type PipelineSummary struct {
	TotalDeals            int                      `json:"total_deals"`
	StatusCounts          map[string]int           `json:"status_counts"`
	OpenPipelineValue     float64                  `json:"open_pipeline_value"`
	OpenPipelineFormatted string                   `json:"open_pipeline_formatted"`
	WonValue              float64                  `json:"won_value"`
	WonValueFormatted     string                   `json:"won_value_formatted"`
	ZeroValueDeals        int                      `json:"zero_value_deals"`
	TopSectorsByOpenValue []RankedValue            `json:"top_sectors_by_open_value"`
	TopOwnersByValue      []RankedValue            `json:"top_owners_by_value"`
	StageDistribution     map[string]int           `json:"stage_distribution"`
	ProbabilityBreakdown  map[string]string        `json:"probability_breakdown"`
	SectorWinDead         map[string]SectorOutcome `json:"sector_win_dead"`
}

// SectorWinRate is one sector's conversion performance.
type SectorWinRate struct {
	Sector     string  `json:"sector"`
	Won        int     `json:"won"`
	Dead       int     `json:"dead"`
	WinRatePct float64 `json:"win_rate_pct"`
}

// WinRateReport covers conversion overall and per sector. The overall rate
// is nil when no deal has resolved yet.
type WinRateReport struct {
	OverallWon        int             `json:"overall_won"`
	OverallDead       int             `json:"overall_dead"`
	OverallWinRatePct *float64        `json:"overall_win_rate_pct"`
	BySector          []SectorWinRate `json:"by_sector"`
}

// OverdueDeal is an in-play deal whose close date has already passed.
type OverdueDeal struct {
	Name        string `json:"name"`
	Owner       string `json:"owner"`
	Sector      string `json:"sector"`
	Stage       string `json:"stage"`
	Value       string `json:"value"`
	CloseDate   string `json:"close_date"`
	DaysOverdue int    `json:"days_overdue"`
	Probability string `json:"probability"`
}

// AtRiskDeal is an in-play deal flagged by one or more risk rules.
type AtRiskDeal struct {
	Name           string   `json:"name"`
	Owner          string   `json:"owner"`
	Sector         string   `json:"sector"`
	Stage          string   `json:"stage"`
	Value          string   `json:"value"`
	RawValue       float64  `json:"raw_value"`
	Probability    string   `json:"probability"`
	RiskReasons    []string `json:"risk_reasons"`
	TentativeClose string   `json:"tentative_close"`
}

// UpcomingDeal is an in-play deal expected to close soon.
type UpcomingDeal struct {
	Name           string `json:"name"`
	Owner          string `json:"owner"`
	Sector         string `json:"sector"`
	Stage          string `json:"stage"`
	Value          string `json:"value"`
	TentativeClose string `json:"tentative_close"`
	DaysUntilClose int    `json:"days_until_close"`
	Probability    string `json:"probability"`
}
