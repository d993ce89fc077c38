// Package deal computes pipeline, conversion and risk analytics over the
// deals board. Every function is a pure reduction over its input slice:
// no mutation, no I/O, deterministic output for identical input.
package deal

import (
	"math"
	"strings"

	"github.com/bi-tools/board-pulse/pkg/aggregate"
	"github.com/bi-tools/board-pulse/pkg/format"
	"github.com/bi-tools/board-pulse/pkg/models/api"
	"github.com/bi-tools/board-pulse/pkg/models/domain"
)

// probabilityBuckets are initialized eagerly so the breakdown always carries
// all four keys, even on an empty board.
var probabilityBuckets = []string{"High", "Medium", "Low", domain.UnknownBucket}

const topListSize = 10

// PipelineSummary reduces the deal list in a single pass into the headline
// pipeline metrics. All derived fields are independent reductions over the
// same stream, so one scan covers every one of them.
func PipelineSummary(deals []domain.DealRecord) api.PipelineSummary {
	statusCounts := make(map[string]int)
	stageCounts := make(map[string]int)
	sectorValues := aggregate.NewCounter()
	ownerValues := aggregate.NewCounter()
	sectorOutcomes := make(map[string]*api.SectorOutcome)

	probValues := make(map[string]float64, len(probabilityBuckets))
	for _, b := range probabilityBuckets {
		probValues[b] = 0
	}

	var openValue, wonValue float64
	zeroValueCount := 0

	outcomeFor := func(sector string) *api.SectorOutcome {
		if o, ok := sectorOutcomes[sector]; ok {
			return o
		}
		o := &api.SectorOutcome{}
		sectorOutcomes[sector] = o
		return o
	}

	for _, d := range deals {
		status := aggregate.NormalizeKey(d.DealStatus)
		statusCounts[status]++

		val := d.DealValue
		sector := aggregate.NormalizeKey(d.Sector)
		stage := aggregate.NormalizeKey(d.DealStage)
		prob := strings.TrimSpace(d.ClosureProbability)

		if val == 0 {
			zeroValueCount++
		}

		switch d.StatusNorm() {
		case "open":
			openValue += val
			sectorValues.Add(sector, val)
		case "won":
			wonValue += val
			outcomeFor(sector).Won++
		}
		if d.StatusNorm() == "dead" {
			outcomeFor(sector).Dead++
		}
		if d.IsOpenOrOnHold() {
			outcomeFor(sector).Open++
		}

		stageCounts[stage]++
		ownerValues.Add(d.OwnerCode, val)

		if _, known := probValues[prob]; known {
			probValues[prob] += val
		} else {
			probValues[domain.UnknownBucket] += val
		}
	}

	topSectors := make([]api.RankedValue, 0, topListSize)
	for _, e := range sectorValues.TopN(topListSize) {
		topSectors = append(topSectors, api.RankedValue{
			Name:      e.Key,
			Formatted: format.INR(e.Value),
			Value:     math.Round(e.Value),
		})
	}

	topOwners := make([]api.RankedValue, 0, topListSize)
	for _, e := range ownerValues.TopN(topListSize) {
		topOwners = append(topOwners, api.RankedValue{
			Name:      e.Key,
			Formatted: format.INR(e.Value),
			Value:     math.Round(e.Value),
		})
	}

	probBreakdown := make(map[string]string, len(probValues))
	for k, v := range probValues {
		probBreakdown[k] = format.INR(v)
	}

	winDead := make(map[string]api.SectorOutcome, len(sectorOutcomes))
	for s, o := range sectorOutcomes {
		winDead[s] = *o
	}

	return api.PipelineSummary{
		TotalDeals:            len(deals),
		StatusCounts:          statusCounts,
		OpenPipelineValue:     openValue,
		OpenPipelineFormatted: format.INR(openValue),
		WonValue:              wonValue,
		WonValueFormatted:     format.INR(wonValue),
		ZeroValueDeals:        zeroValueCount,
		TopSectorsByOpenValue: topSectors,
		TopOwnersByValue:      topOwners,
		StageDistribution:     stageCounts,
		ProbabilityBreakdown:  probBreakdown,
		SectorWinDead:         winDead,
	}
}
