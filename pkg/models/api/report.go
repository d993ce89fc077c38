package api

// TopDeal is a headline open opportunity in the leadership briefing.
type TopDeal struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Sector      string `json:"sector"`
	Stage       string `json:"stage"`
	Probability string `json:"probability"`
}

// LeadershipUpdate is the composite briefing structure handed to the text
// generator and to the CLI reporter.
type LeadershipUpdate struct {
	Pipeline             PipelineSummary `json:"pipeline"`
	WinRate              WinRateReport   `json:"win_rate"`
	Billing              BillingSummary  `json:"billing"`
	Operations           WorkOrderOps    `json:"operations"`
	TopOpenOpportunities []TopDeal       `json:"top_open_opportunities"`
	OverdueDealsCount    int             `json:"overdue_deals_count"`
	AtRiskCount          int             `json:"at_risk_count"`
	UpcomingClosures30d  int             `json:"upcoming_closures_30d"`
}

// QueryContext is the BI context block assembled for one assistant query.
// Sections irrelevant to the question stay nil and are omitted from JSON.
type QueryContext struct {
	Pipeline      *PipelineSummary  `json:"pipeline,omitempty"`
	WinRate       *WinRateReport    `json:"win_rate,omitempty"`
	OverdueDeals  []OverdueDeal     `json:"overdue_deals,omitempty"`
	AtRisk        []AtRiskDeal      `json:"at_risk,omitempty"`
	UpcomingDeals []UpcomingDeal    `json:"upcoming_deals,omitempty"`
	Billing       *BillingSummary   `json:"billing,omitempty"`
	Operations    *WorkOrderOps     `json:"operations,omitempty"`
	Platform      *PlatformAdoption `json:"platform,omitempty"`
}
