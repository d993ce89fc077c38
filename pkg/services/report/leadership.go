// Package report composes the lower-level analytics into the three
// consumer-facing shapes: the leadership briefing, the executive dashboard
// and the per-query assistant context.
package report

import (
	"sort"
	"time"

	"github.com/bi-tools/board-pulse/pkg/format"
	"github.com/bi-tools/board-pulse/pkg/models/api"
	"github.com/bi-tools/board-pulse/pkg/models/domain"
	"github.com/bi-tools/board-pulse/pkg/services/billing"
	"github.com/bi-tools/board-pulse/pkg/services/deal"
)

const topOpportunities = 3

// LeadershipUpdate assembles the full briefing structure: pipeline, win
// rate, billing, operations, the top open opportunities and the risk
// counters.
func LeadershipUpdate(deals []domain.DealRecord, wos []domain.WorkOrderRecord, today time.Time) api.LeadershipUpdate {
	riskSettings := deal.DefaultRiskSettings()

	return api.LeadershipUpdate{
		Pipeline:             deal.PipelineSummary(deals),
		WinRate:              deal.WinRate(deals),
		Billing:              billing.Summary(wos, billing.DefaultSettings()),
		Operations:           billing.ActiveWorkOrders(wos),
		TopOpenOpportunities: topOpenDeals(deals),
		OverdueDealsCount:    len(deal.Overdue(deals, today)),
		AtRiskCount:          len(deal.AtRisk(deals, today, riskSettings)),
		UpcomingClosures30d:  len(deal.Upcoming(deals, today, 30)),
	}
}

func topOpenDeals(deals []domain.DealRecord) []api.TopDeal {
	var open []domain.DealRecord
	for _, d := range deals {
		if d.StatusNorm() == "open" {
			open = append(open, d)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		return open[i].DealValue > open[j].DealValue
	})
	if len(open) > topOpportunities {
		open = open[:topOpportunities]
	}

	top := make([]api.TopDeal, 0, len(open))
	for _, d := range open {
		top = append(top, api.TopDeal{
			Name:        d.Name,
			Value:       format.INR(d.DealValue),
			Sector:      d.Sector,
			Stage:       d.DealStage,
			Probability: d.ClosureProbability,
		})
	}
	return top
}
