package report

import (
	"testing"
	"time"

	"github.com/bi-tools/board-pulse/pkg/models/api"
	"github.com/bi-tools/board-pulse/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = time.Date(2026, time.June, 10, 9, 0, 0, 0, time.UTC)

func reportDeals() []domain.DealRecord {
	return []domain.DealRecord{
		{Name: "Pit Survey", DealStatus: "Open", Sector: "Mining", OwnerCode: "RK",
			DealStage: "Negotiations", ClosureProbability: "High", Product: "Spectra", DealValue: 9_000_000},
		{Name: "Grid Audit", DealStatus: "Open", Sector: "Energy", OwnerCode: "AN",
			DealStage: "Proposal Sent", ClosureProbability: "medium", DealValue: 4_000_000},
		{Name: "Track Scan", DealStatus: "Open", Sector: "Railways", OwnerCode: "VS",
			DealStage: "Lead", ClosureProbability: "Very High", Product: "DMO", DealValue: 1_000_000},
		{Name: "Old Bid", DealStatus: "Won", Sector: "Mining", DealValue: 2_000_000},
		{Name: "Lost Bid", DealStatus: "Dead", Sector: "Mining", DealValue: 500_000},
	}
}

func reportWorkOrders() []domain.WorkOrderRecord {
	return []domain.WorkOrderRecord{
		{DealName: "Mine Mapping", Sector: "Mining", AmountExclGST: 3_000_000,
			BilledValueExclGST: 1_000_000, AmountReceivable: 700_000, BillingStatus: "Partially Billed"},
		{DealName: "Rail Inspection", Sector: "Railways", AmountInclGST: 1_180_000,
			ExecutionStatus: "In Progress"},
	}
}

func TestLeadershipUpdate(t *testing.T) {
	update := LeadershipUpdate(reportDeals(), reportWorkOrders(), testToday)

	assert.Equal(t, 5, update.Pipeline.TotalDeals)
	assert.Equal(t, 2, update.Operations.TotalWorkOrders)

	require.Len(t, update.TopOpenOpportunities, 3)
	assert.Equal(t, "Pit Survey", update.TopOpenOpportunities[0].Name)
	assert.Equal(t, "₹90.00 L", update.TopOpenOpportunities[0].Value)
	assert.Equal(t, "Grid Audit", update.TopOpenOpportunities[1].Name)
	assert.Equal(t, "Track Scan", update.TopOpenOpportunities[2].Name)

	// No close dates set, so nothing is overdue or upcoming.
	assert.Equal(t, 0, update.OverdueDealsCount)
	assert.Equal(t, 0, update.UpcomingClosures30d)
	// Pit Survey exceeds the high-value floor with probability High, not
	// flagged; no deal carries a Low probability.
	assert.Equal(t, 0, update.AtRiskCount)
}

func TestDashboardMetrics(t *testing.T) {
	data := DashboardMetrics(reportDeals(), reportWorkOrders(), testToday)

	require.Len(t, data.KPIs, 4)
	assert.Equal(t, "pipeline", data.KPIs[0].ID)
	assert.Equal(t, "₹1.40 Cr", data.KPIs[0].Value)
	assert.Equal(t, "3 open deals", data.KPIs[0].Sub)

	// "Very High" collapses into the High bucket.
	assert.Equal(t, "₹1.00 Cr", data.KPIs[1].Value)

	assert.Equal(t, "₹7.00 L", data.KPIs[2].Value)
	assert.Equal(t, "₹10.00 L", data.KPIs[3].Value)
	assert.Equal(t, "Of ₹41.80 L contract", data.KPIs[3].Sub)

	require.Len(t, data.Charts, 3)

	probChart := data.Charts[0]
	assert.Equal(t, "prob_distribution", probChart.ID)
	probData, ok := probChart.Data.([]api.ValuePoint)
	require.True(t, ok)
	require.Len(t, probData, 3)
	assert.Equal(t, api.ValuePoint{Name: "High", Value: 10_000_000, Fill: "#34d399"}, probData[0])
	assert.Equal(t, api.ValuePoint{Name: "Medium", Value: 4_000_000, Fill: "#fbbf24"}, probData[1])
	assert.Equal(t, api.ValuePoint{Name: "Low", Value: 0, Fill: "#f87171"}, probData[2])

	productData, ok := data.Charts[1].Data.([]api.ValuePoint)
	require.True(t, ok)
	require.Len(t, productData, 3)
	assert.Equal(t, "Spectra", productData[0].Name)
	assert.Equal(t, "Uncategorized", productData[1].Name)
	assert.Equal(t, "DMO", productData[2].Name)

	billingData, ok := data.Charts[2].Data.([]api.CountPoint)
	require.True(t, ok)
	assert.Contains(t, billingData, api.CountPoint{Name: "Partially Billed", Count: 1})
	assert.Contains(t, billingData, api.CountPoint{Name: "Pending", Count: 1})

	require.Len(t, data.TopWorkOrders, 2)
	top := data.TopWorkOrders[0]
	assert.Equal(t, "Mine Mapping", top.WorkOrder)
	assert.Equal(t, "Partially Billed", top.Status)
	assert.Equal(t, "₹30.00 L", top.ContractValue)
	assert.True(t, top.IsARHigh)

	second := data.TopWorkOrders[1]
	assert.Equal(t, "In Progress", second.Status)
	assert.False(t, second.IsARHigh)

	assert.Equal(t, "09:00:00 AM", data.Summary.LastUpdated)
}

func TestProbBucket(t *testing.T) {
	cases := map[string]string{
		"High":       "High",
		"very high":  "High",
		"Medium":     "Medium",
		"LOW":        "Low",
		"":           "Unknown",
		"long shot":  "Long Shot",
		"  medium  ": "Medium",
	}
	for in, want := range cases {
		assert.Equal(t, want, probBucket(in), "probBucket(%q)", in)
	}
}

func TestClassifyBoards(t *testing.T) {
	assert.Equal(t, []string{BoardDeals}, ClassifyBoards("How is our pipeline by stage?"))
	assert.Equal(t, []string{BoardWorkOrders}, ClassifyBoards("Which invoices are unpaid?"))
	assert.Equal(t, []string{BoardDeals, BoardWorkOrders}, ClassifyBoards("Overall revenue health?"))
	// Mentions of both sides query both boards.
	assert.Equal(t, []string{BoardDeals, BoardWorkOrders},
		ClassifyBoards("Compare deal pipeline against billing"))
}

func TestBuildContext(t *testing.T) {
	deals, wos := reportDeals(), reportWorkOrders()

	t.Run("deal sections always ride along", func(t *testing.T) {
		ctx := BuildContext("how are we doing", deals, nil, testToday)
		require.NotNil(t, ctx.Pipeline)
		require.NotNil(t, ctx.WinRate)
		assert.Nil(t, ctx.Billing)
		assert.Nil(t, ctx.UpcomingDeals)
		require.NotNil(t, ctx.Platform)
	})

	t.Run("timing questions add upcoming closures", func(t *testing.T) {
		ctx := BuildContext("what is closing this month", deals, nil, testToday)
		assert.NotNil(t, ctx.Pipeline)
		// Upcoming is computed even when empty.
		assert.Equal(t, 0, len(ctx.UpcomingDeals))
	})

	t.Run("work order sections", func(t *testing.T) {
		ctx := BuildContext("billing status", nil, wos, testToday)
		assert.Nil(t, ctx.Pipeline)
		require.NotNil(t, ctx.Billing)
		require.NotNil(t, ctx.Operations)
		require.NotNil(t, ctx.Platform)
	})

	t.Run("no data no context", func(t *testing.T) {
		ctx := BuildContext("anything", nil, nil, testToday)
		assert.Equal(t, api.QueryContext{}, ctx)
	})
}

func TestChartsFor(t *testing.T) {
	deals, wos := reportDeals(), reportWorkOrders()

	t.Run("status donut always present with deals", func(t *testing.T) {
		ctx := BuildContext("hello", deals, nil, testToday)
		charts := ChartsFor("hello", ctx)
		require.Len(t, charts, 1)
		assert.Equal(t, "donut", charts[0].Type)
		assert.Equal(t, "Deal Status Distribution", charts[0].Title)
	})

	t.Run("sector pipeline bar on pipeline keywords", func(t *testing.T) {
		ctx := BuildContext("pipeline by sector", deals, nil, testToday)
		charts := ChartsFor("pipeline by sector", ctx)
		require.Len(t, charts, 2)
		assert.Equal(t, "Open Pipeline Value by Sector", charts[1].Title)
		data, ok := charts[1].Data.([]api.ValuePoint)
		require.True(t, ok)
		assert.Equal(t, "Mining", data[0].Name)
		assert.Equal(t, float64(9_000_000), data[0].Value)
	})

	t.Run("billing chart parses formatted amounts back", func(t *testing.T) {
		ctx := BuildContext("billed vs collected", deals, wos, testToday)
		charts := ChartsFor("billed vs collected", ctx)

		var billed *api.DashboardChart
		for i := range charts {
			if charts[i].Title == "Billed vs Collected by Sector" {
				billed = &charts[i]
			}
		}
		require.NotNil(t, billed)
		data, ok := billed.Data.([]api.BilledVsARPoint)
		require.True(t, ok)
		require.NotEmpty(t, data)
		assert.Equal(t, "Mining", data[0].Name)
		assert.Equal(t, float64(1_000_000), data[0].Billed)
		assert.Equal(t, float64(700_000), data[0].Collected)
	})

	t.Run("at most four charts", func(t *testing.T) {
		msg := "pipeline sector win rate billing work order status"
		ctx := BuildContext(msg, deals, wos, testToday)
		charts := ChartsFor(msg, ctx)
		assert.LessOrEqual(t, len(charts), 4)
		assert.Len(t, charts, 4)
	})
}
