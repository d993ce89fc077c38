// Package billing aggregates the work-order board: money flow, execution
// status and platform adoption. Like the deal package, everything here is a
// pure reduction over immutable input slices.
package billing

import (
	"math"
	"sort"
	"strings"

	"github.com/bi-tools/board-pulse/pkg/aggregate"
	"github.com/bi-tools/board-pulse/pkg/format"
	"github.com/bi-tools/board-pulse/pkg/models/api"
	"github.com/bi-tools/board-pulse/pkg/models/domain"
)

// Settings contains the thresholds of the billing summary.
type Settings struct {
	// HighARFloor is the receivable above which a High/Critical-priority
	// account makes the chase list.
	HighARFloor float64
	// TopSectorCount caps the per-sector breakdown.
	TopSectorCount int
	// MaxARAccounts caps the high-priority AR list.
	MaxARAccounts int
}

// DefaultSettings returns the thresholds used by the dashboard.
func DefaultSettings() Settings {
	return Settings{
		HighARFloor:    500_000,
		TopSectorCount: 8,
		MaxARAccounts:  10,
	}
}

// Summary totals contract, billed, collected and receivable amounts with
// per-sector breakdowns and the high-priority AR chase list.
func Summary(wos []domain.WorkOrderRecord, settings Settings) api.BillingSummary {
	var totalContract, totalBilled, totalCollected, totalAR, totalToBeBilled float64
	sectorContract := aggregate.NewCounter()
	sectorBilled := aggregate.NewCounter()
	sectorAR := aggregate.NewCounter()
	var highAR []api.ARAccount

	for _, wo := range wos {
		contract := wo.ContractValue()
		billed := wo.BilledValue()
		ar := wo.AmountReceivable
		sector := aggregate.NormalizeKey(wo.Sector)

		totalContract += contract
		totalBilled += billed
		totalCollected += wo.CollectedInclGST
		totalAR += ar
		totalToBeBilled += wo.AmountToBeBilled

		sectorContract.Add(sector, contract)
		sectorBilled.Add(sector, billed)
		sectorAR.Add(sector, ar)

		if ar > settings.HighARFloor && isUrgentPriority(wo.ARPriority) {
			highAR = append(highAR, api.ARAccount{
				Deal:     wo.DealName,
				AR:       format.INR(ar),
				RawAR:    ar,
				Priority: wo.ARPriority,
				Sector:   sector,
				Customer: wo.CustomerCode,
			})
		}
	}

	collectionEff := 0.0
	if totalBilled > 0 {
		collectionEff = round1(totalCollected / totalBilled * 100)
	}
	billingGap := totalContract - totalBilled

	topSectors := make([]api.SectorBilling, 0, settings.TopSectorCount)
	for _, e := range sectorContract.TopN(settings.TopSectorCount) {
		topSectors = append(topSectors, api.SectorBilling{
			Sector:   e.Key,
			Contract: format.INR(e.Value),
			Billed:   format.INR(sectorBilled.Get(e.Key)),
			AR:       format.INR(sectorAR.Get(e.Key)),
		})
	}

	sort.SliceStable(highAR, func(i, j int) bool {
		return highAR[i].RawAR > highAR[j].RawAR
	})
	if len(highAR) > settings.MaxARAccounts {
		highAR = highAR[:settings.MaxARAccounts]
	}

	return api.BillingSummary{
		TotalContractValue:      totalContract,
		TotalContractFormatted:  format.INR(totalContract),
		TotalBilled:             totalBilled,
		TotalBilledFormatted:    format.INR(totalBilled),
		TotalCollected:          totalCollected,
		TotalCollectedFormatted: format.INR(totalCollected),
		TotalAR:                 totalAR,
		TotalARFormatted:        format.INR(totalAR),
		BillingGap:              billingGap,
		BillingGapFormatted:     format.INR(billingGap),
		AmountToBeBilled:        totalToBeBilled,
		AmountToBeBilledFmt:     format.INR(totalToBeBilled),
		CollectionEfficiencyPct: collectionEff,
		TopSectors:              topSectors,
		HighPriorityAR:          highAR,
	}
}

func isUrgentPriority(priority string) bool {
	switch strings.ToLower(strings.TrimSpace(priority)) {
	case "high", "critical":
		return true
	}
	return false
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
