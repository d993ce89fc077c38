package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bi-tools/board-pulse/pkg/aggregate"
	"github.com/bi-tools/board-pulse/pkg/format"
	"github.com/bi-tools/board-pulse/pkg/models/api"
	"github.com/bi-tools/board-pulse/pkg/models/domain"
)

// probColors are the fixed fills of the closure-probability chart and the
// high-probability KPI card.
var probColors = map[string]string{
	"High":   "#34d399",
	"Medium": "#fbbf24",
	"Low":    "#f87171",
}

const maxTableRows = 10

// DashboardMetrics builds the board-centric executive dashboard: four KPI
// cards, three charts and the top work orders by contract value.
func DashboardMetrics(deals []domain.DealRecord, wos []domain.WorkOrderRecord, now time.Time) api.DashboardData {
	var open []domain.DealRecord
	for _, d := range deals {
		if d.StatusNorm() == "open" {
			open = append(open, d)
		}
	}

	var pipelineValue float64
	probDist := make(map[string]float64)
	productDist := aggregate.NewCounter()
	for _, d := range open {
		pipelineValue += d.DealValue
		probDist[probBucket(d.ClosureProbability)] += d.DealValue

		product := strings.TrimSpace(d.Product)
		if product == "" {
			product = "Uncategorized"
		}
		productDist.Add(product, d.DealValue)
	}

	var totalContract, totalBilled, totalAR float64
	billingCounts := aggregate.NewCounter()
	for _, wo := range wos {
		totalContract += wo.ContractValue()
		totalBilled += wo.BilledValue()
		totalAR += wo.AmountReceivable

		status := strings.TrimSpace(wo.BillingStatus)
		if status == "" {
			status = "Pending"
		}
		billingCounts.Add(status, 1)
	}

	kpis := []api.KPI{
		{
			ID:    "pipeline",
			Label: "Total Open Pipeline",
			Value: format.INR(pipelineValue),
			Sub:   fmt.Sprintf("%d open deals", len(open)),
			Icon:  "💰",
			Color: "var(--accent-blue)",
		},
		{
			ID:    "high_prob",
			Label: "High Probability Deals",
			Value: format.INR(probDist["High"]),
			Sub:   "Closure Probability: High",
			Icon:  "🔥",
			Color: probColors["High"],
		},
		{
			ID:    "ar",
			Label: "Total Receivable",
			Value: format.INR(totalAR),
			Sub:   "Outstanding across projects",
			Icon:  "⚠️",
			Color: "var(--accent-orange)",
		},
		{
			ID:    "billed",
			Label: "Total Billed Value",
			Value: format.INR(totalBilled),
			Sub:   fmt.Sprintf("Of %s contract", format.INR(totalContract)),
			Icon:  "📋",
			Color: "var(--accent-cyan)",
		},
	}

	probData := make([]api.ValuePoint, 0, 3)
	for _, bucket := range []string{"High", "Medium", "Low"} {
		probData = append(probData, api.ValuePoint{
			Name:  bucket,
			Value: probDist[bucket],
			Fill:  probColors[bucket],
		})
	}

	var productData []api.ValuePoint
	for _, e := range productDist.Entries() {
		if e.Value > 0 {
			productData = append(productData, api.ValuePoint{Name: e.Key, Value: e.Value})
		}
	}

	var billingData []api.CountPoint
	for _, e := range billingCounts.Entries() {
		billingData = append(billingData, api.CountPoint{Name: e.Key, Count: int(e.Value)})
	}

	charts := []api.DashboardChart{
		{
			ID:       "prob_distribution",
			Type:     "bar",
			Title:    "OPEN PIPELINE BY CLOSURE PROBABILITY",
			IsAmount: true,
			Data:     probData,
			Bars:     []api.SeriesDef{{Key: "value", Label: "Value (₹)", Color: "#818cf8"}},
		},
		{
			ID:    "product_mix",
			Type:  "donut",
			Title: "PIPELINE MIX BY PRODUCT",
			Data:  productData,
		},
		{
			ID:    "billing_status_ops",
			Type:  "bar",
			Title: "PROJECT COUNT BY BILLING STATUS",
			Data:  billingData,
			Bars:  []api.SeriesDef{{Key: "count", Label: "Projects", Color: "#38bdf8"}},
		},
	}

	return api.DashboardData{
		KPIs:          kpis,
		Charts:        charts,
		TopWorkOrders: topWorkOrderRows(wos),
		Summary:       api.DashboardSummary{LastUpdated: now.Format("03:04:05 PM")},
	}
}

// probBucket collapses free-text closure probability into High/Medium/Low.
// Anything else stays as its own title-cased bucket.
func probBucket(probability string) string {
	p := strings.TrimSpace(probability)
	if p == "" {
		return domain.UnknownBucket
	}
	lower := strings.ToLower(p)
	switch {
	case strings.Contains(lower, "high"):
		return "High"
	case strings.Contains(lower, "medium"):
		return "Medium"
	case strings.Contains(lower, "low"):
		return "Low"
	}
	return titleCase(lower)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func topWorkOrderRows(wos []domain.WorkOrderRecord) []api.WorkOrderRow {
	sorted := make([]domain.WorkOrderRecord, len(wos))
	copy(sorted, wos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ContractValue() > sorted[j].ContractValue()
	})
	if len(sorted) > maxTableRows {
		sorted = sorted[:maxTableRows]
	}

	rows := make([]api.WorkOrderRow, 0, len(sorted))
	for _, wo := range sorted {
		name := strings.TrimSpace(wo.DealName)
		if name == "" {
			name = "N/A"
		}
		status := strings.TrimSpace(wo.BillingStatus)
		if status == "" {
			status = strings.TrimSpace(wo.ExecutionStatus)
		}
		if status == "" {
			status = domain.UnknownBucket
		}
		rows = append(rows, api.WorkOrderRow{
			WorkOrder:     name,
			Sector:        wo.Sector,
			Status:        status,
			ContractValue: format.INR(wo.ContractValue()),
			Receivable:    format.INR(wo.AmountReceivable),
			IsARHigh:      wo.AmountReceivable > 0,
		})
	}
	return rows
}
