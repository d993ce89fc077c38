package api

// SectorBilling is one sector's contract/billed/AR breakdown, formatted for
// direct rendering.
type SectorBilling struct {
	Sector   string `json:"sector"`
	Contract string `json:"contract"`
	Billed   string `json:"billed"`
	AR       string `json:"ar"`
}

// ARAccount is a receivable large and urgent enough to chase.
type ARAccount struct {
	Deal     string  `json:"deal"`
	AR       string  `json:"ar"`
	RawAR    float64 `json:"raw_ar"`
	Priority string  `json:"priority"`
	Sector   string  `json:"sector"`
	Customer string  `json:"customer"`
}

// BillingSummary aggregates the work-order board's money flow.
type BillingSummary struct {
	TotalContractValue       float64         `json:"total_contract_value"`
	TotalContractFormatted   string          `json:"total_contract_formatted"`
	TotalBilled              float64         `json:"total_billed"`
	TotalBilledFormatted     string          `json:"total_billed_formatted"`
	TotalCollected           float64         `json:"total_collected"`
	TotalCollectedFormatted  string          `json:"total_collected_formatted"`
	TotalAR                  float64         `json:"total_ar"`
	TotalARFormatted         string          `json:"total_ar_formatted"`
	BillingGap               float64         `json:"billing_gap"`
	BillingGapFormatted      string          `json:"billing_gap_formatted"`
	AmountToBeBilled         float64         `json:"amount_to_be_billed"`
	AmountToBeBilledFmt      string          `json:"amount_to_be_billed_formatted"`
	CollectionEfficiencyPct  float64         `json:"collection_efficiency_pct"`
	TopSectors               []SectorBilling `json:"top_sectors"`
	HighPriorityAR           []ARAccount     `json:"high_priority_ar"`
}

// StuckProject is a work order parked in a non-progressing status.
type StuckProject struct {
	Deal     string `json:"deal"`
	Customer string `json:"customer"`
	Sector   string `json:"sector"`
	Status   string `json:"status"`
}

// WorkOrderOps is the status breakdown of the work-order board.
type WorkOrderOps struct {
	StatusBreakdown map[string]int `json:"status_breakdown"`
	TotalWorkOrders int            `json:"total_work_orders"`
	StuckProjects   []StuckProject `json:"stuck_projects"`
	StuckCount      int            `json:"stuck_count"`
}

// PlatformAdoption holds independent product/platform histograms from the
// two boards.
type PlatformAdoption struct {
	ByProductType   map[string]int `json:"by_product_type"`
	ByPlatformOnWOs map[string]int `json:"by_platform_on_wos"`
}
