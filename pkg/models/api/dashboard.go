package api

// KPI is one headline card on the executive dashboard.
type KPI struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
	Sub   string `json:"sub"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// ValuePoint is a name/value chart datum, optionally with a fixed fill
// color.
type ValuePoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Fill  string  `json:"fill,omitempty"`
}

// CountPoint is a name/count chart datum.
type CountPoint struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// WinRatePoint is a per-category win-rate datum with its won/dead split.
type WinRatePoint struct {
	Name    string  `json:"name"`
	WinRate float64 `json:"win_rate"`
	Won     int     `json:"won"`
	Dead    int     `json:"dead"`
}

// BilledVsARPoint pairs billed and outstanding amounts for one sector.
type BilledVsARPoint struct {
	Name      string  `json:"name"`
	Billed    float64 `json:"billed"`
	Collected float64 `json:"collected"`
}

// DashboardChart is a chart block on the dashboard or in an assistant
// response. Data holds one of the point slice types above; the series
// descriptors in Bars tell the renderer which keys to plot.
type DashboardChart struct {
	ID       string      `json:"id,omitempty"`
	Type     string      `json:"type"`
	Title    string      `json:"title"`
	IsAmount bool        `json:"isAmount,omitempty"`
	Data     interface{} `json:"data"`
	Bars     []SeriesDef `json:"bars,omitempty"`
}

// WorkOrderRow is one row of the dashboard's top work-order table.
type WorkOrderRow struct {
	WorkOrder     string `json:"work_order"`
	Sector        string `json:"sector"`
	Status        string `json:"status"`
	ContractValue string `json:"contract_value"`
	Receivable    string `json:"receivable"`
	IsARHigh      bool   `json:"is_ar_high"`
}

// DashboardSummary carries dashboard metadata.
type DashboardSummary struct {
	LastUpdated string `json:"last_updated"`
}

// DashboardData is the full payload of the executive dashboard view.
type DashboardData struct {
	KPIs          []KPI              `json:"kpis"`
	Charts        []DashboardChart   `json:"charts"`
	TopWorkOrders []WorkOrderRow     `json:"top_work_orders"`
	Summary       DashboardSummary   `json:"summary"`
	CacheAge      map[string]float64 `json:"cache_age,omitempty"`
}
