package deal

import (
	"math"
	"sort"

	"github.com/bi-tools/board-pulse/pkg/aggregate"
	"github.com/bi-tools/board-pulse/pkg/models/api"
	"github.com/bi-tools/board-pulse/pkg/models/domain"
)

// minSectorSample is the smallest won+dead count for which a per-sector win
// rate is reported. Two data points produce meaningless 0%/100% headlines;
// the overall rate has no such floor.
const minSectorSample = 3

// WinRate computes won/dead conversion overall and per sector.
func WinRate(deals []domain.DealRecord) api.WinRateReport {
	type tally struct {
		won, dead int
	}
	tallies := make(map[string]*tally)
	var order []string
	tallyFor := func(sector string) *tally {
		if t, ok := tallies[sector]; ok {
			return t
		}
		t := &tally{}
		tallies[sector] = t
		order = append(order, sector)
		return t
	}

	totalWon, totalDead := 0, 0
	for _, d := range deals {
		sector := aggregate.NormalizeKey(d.Sector)
		switch d.StatusNorm() {
		case "won":
			tallyFor(sector).won++
			totalWon++
		case "dead":
			tallyFor(sector).dead++
			totalDead++
		}
	}

	var overall *float64
	if totalWon+totalDead > 0 {
		r := winRatePct(totalWon, totalDead)
		overall = &r
	}

	bySector := make([]api.SectorWinRate, 0, len(order))
	for _, sector := range order {
		t := tallies[sector]
		if t.won+t.dead < minSectorSample {
			continue
		}
		bySector = append(bySector, api.SectorWinRate{
			Sector:     sector,
			Won:        t.won,
			Dead:       t.dead,
			WinRatePct: winRatePct(t.won, t.dead),
		})
	}
	sort.SliceStable(bySector, func(i, j int) bool {
		return bySector[i].WinRatePct > bySector[j].WinRatePct
	})

	return api.WinRateReport{
		OverallWon:        totalWon,
		OverallDead:       totalDead,
		OverallWinRatePct: overall,
		BySector:          bySector,
	}
}

// winRatePct is won/(won+dead)*100 rounded to one decimal. Callers guard
// the zero-denominator case.
func winRatePct(won, dead int) float64 {
	return math.Round(float64(won)/float64(won+dead)*1000) / 10
}
