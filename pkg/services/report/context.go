package report

import (
	"sort"
	"strings"
	"time"

	"github.com/bi-tools/board-pulse/pkg/format"
	"github.com/bi-tools/board-pulse/pkg/models/api"
	"github.com/bi-tools/board-pulse/pkg/models/domain"
	"github.com/bi-tools/board-pulse/pkg/services/billing"
	"github.com/bi-tools/board-pulse/pkg/services/deal"
)

// Board names recognized by the query router.
const (
	BoardDeals      = "deals"
	BoardWorkOrders = "work_orders"
)

var (
	riskKeywords = []string{"risk", "overdue", "slip", "behind", "late", "stuck", "miss"}

	// upcomingKeywords extend the risk set for the closing-soon section.
	upcomingKeywords = []string{"upcoming", "closing", "this month", "pipeline"}

	dealsKeywords = []string{
		"pipeline", "deal", "stage", "win", "won", "dead", "owner",
		"probability", "conversion", "opportunit",
	}
	workOrderKeywords = []string{
		"bill", "invoice", "collect", "receivable", "payment",
		"work order", "wo ", "execut", "project", "stuck",
	}

	pipelineChartKeywords = []string{"pipeline", "sector", "energy", "renew", "mining", "rail", "top", "value"}
	winChartKeywords      = []string{"win", "rate", "won", "dead", "conversion", "performance"}
	billingChartKeywords  = []string{"bill", "collect", "ar", "revenue", "invoice", "paid", "receivable"}
	woChartKeywords       = []string{"work order", "wo", "stuck", "active", "ongoing", "execut", "operational"}
)

const maxCharts = 4

// ClassifyBoards routes a question to the board(s) whose data can answer
// it. Ambiguous or general questions query both.
func ClassifyBoards(message string) []string {
	lower := strings.ToLower(message)
	deals := containsAny(lower, dealsKeywords)
	wos := containsAny(lower, workOrderKeywords)

	switch {
	case deals && !wos:
		return []string{BoardDeals}
	case wos && !deals:
		return []string{BoardWorkOrders}
	}
	return []string{BoardDeals, BoardWorkOrders}
}

// BuildContext assembles the analytics sections relevant to one question.
// Pipeline and win rate always ride along with deal data; the risk sections
// expand to include upcoming closures when the question asks about timing.
func BuildContext(message string, deals []domain.DealRecord, wos []domain.WorkOrderRecord, today time.Time) api.QueryContext {
	lower := strings.ToLower(message)
	var ctx api.QueryContext

	if len(deals) > 0 {
		pipe := deal.PipelineSummary(deals)
		wr := deal.WinRate(deals)
		ctx.Pipeline = &pipe
		ctx.WinRate = &wr

		ctx.OverdueDeals = deal.Overdue(deals, today)
		ctx.AtRisk = deal.AtRisk(deals, today, deal.DefaultRiskSettings())
		if containsAny(lower, riskKeywords) || containsAny(lower, upcomingKeywords) {
			ctx.UpcomingDeals = deal.Upcoming(deals, today, 30)
		}
	}

	if len(wos) > 0 {
		bill := billing.Summary(wos, billing.DefaultSettings())
		ops := billing.ActiveWorkOrders(wos)
		ctx.Billing = &bill
		ctx.Operations = &ops
	}

	if len(deals) > 0 || len(wos) > 0 {
		platform := billing.PlatformAdoption(deals, wos)
		ctx.Platform = &platform
	}

	return ctx
}

// ChartsFor picks up to four charts matching the question from an already
// built context.
func ChartsFor(message string, ctx api.QueryContext) []api.DashboardChart {
	lower := strings.ToLower(message)
	var charts []api.DashboardChart

	if ctx.Pipeline != nil && len(ctx.Pipeline.StatusCounts) > 0 {
		charts = append(charts, api.DashboardChart{
			Type:  "donut",
			Title: "Deal Status Distribution",
			Data:  countPoints(ctx.Pipeline.StatusCounts),
		})
	}

	if ctx.Pipeline != nil && len(ctx.Pipeline.TopSectorsByOpenValue) > 0 &&
		containsAny(lower, pipelineChartKeywords) {
		sectors := ctx.Pipeline.TopSectorsByOpenValue
		if len(sectors) > 8 {
			sectors = sectors[:8]
		}
		data := make([]api.ValuePoint, 0, len(sectors))
		for _, rv := range sectors {
			data = append(data, api.ValuePoint{Name: rv.Name, Value: rv.Value})
		}
		charts = append(charts, api.DashboardChart{
			Type:     "bar",
			Title:    "Open Pipeline Value by Sector",
			IsAmount: true,
			Data:     data,
			Bars:     []api.SeriesDef{{Key: "value", Label: "Open Value", Color: "#3b82f6"}},
		})
	}

	if ctx.WinRate != nil && len(ctx.WinRate.BySector) > 0 &&
		containsAny(lower, winChartKeywords) {
		sectors := ctx.WinRate.BySector
		if len(sectors) > 8 {
			sectors = sectors[:8]
		}
		data := make([]api.WinRatePoint, 0, len(sectors))
		for _, s := range sectors {
			data = append(data, api.WinRatePoint{
				Name:    s.Sector,
				WinRate: s.WinRatePct,
				Won:     s.Won,
				Dead:    s.Dead,
			})
		}
		charts = append(charts, api.DashboardChart{
			Type:  "bar",
			Title: "Win Rate by Sector (%)",
			Data:  data,
			Bars: []api.SeriesDef{
				{Key: "won", Label: "Won", Color: "#10b981"},
				{Key: "dead", Label: "Dead", Color: "#ef4444"},
			},
		})
	}

	if ctx.Billing != nil && len(ctx.Billing.TopSectors) > 0 &&
		containsAny(lower, billingChartKeywords) {
		rows := ctx.Billing.TopSectors
		if len(rows) > 7 {
			rows = rows[:7]
		}
		data := make([]api.BilledVsARPoint, 0, len(rows))
		for _, r := range rows {
			data = append(data, api.BilledVsARPoint{
				Name:      r.Sector,
				Billed:    format.ParseINR(r.Billed),
				Collected: format.ParseINR(r.AR),
			})
		}
		charts = append(charts, api.DashboardChart{
			Type:     "bar",
			Title:    "Billed vs Collected by Sector",
			IsAmount: true,
			Data:     data,
			Bars: []api.SeriesDef{
				{Key: "billed", Label: "Billed", Color: "#3b82f6"},
				{Key: "collected", Label: "AR", Color: "#f59e0b"},
			},
		})
	}

	if ctx.Operations != nil && len(ctx.Operations.StatusBreakdown) > 0 &&
		containsAny(lower, woChartKeywords) {
		charts = append(charts, api.DashboardChart{
			Type:  "donut",
			Title: "Work Order Status",
			Data:  countPoints(ctx.Operations.StatusBreakdown),
		})
	}

	if len(charts) > maxCharts {
		charts = charts[:maxCharts]
	}
	return charts
}

// countPoints flattens a histogram into sorted chart rows, dropping empty
// buckets.
func countPoints(counts map[string]int) []api.ValuePoint {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var data []api.ValuePoint
	for _, k := range keys {
		if counts[k] > 0 {
			data = append(data, api.ValuePoint{Name: k, Value: float64(counts[k])})
		}
	}
	return data
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
