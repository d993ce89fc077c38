package deal

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bi-tools/board-pulse/pkg/format"
	"github.com/bi-tools/board-pulse/pkg/models/api"
	"github.com/bi-tools/board-pulse/pkg/models/domain"
)

const dateLayout = "2006-01-02"

// RiskSettings contains the thresholds used by the risk classifiers.
type RiskSettings struct {
	// LateStages are funnel stages where a lapsed close date means trouble.
	LateStages []string
	// HighValueFloor is the deal value above which a Low-probability deal is
	// escalated regardless of stage.
	HighValueFloor float64
	// MaxResults caps the at-risk list.
	MaxResults int
}

// DefaultRiskSettings returns the thresholds agreed with the sales team.
func DefaultRiskSettings() RiskSettings {
	return RiskSettings{
		LateStages:     []string{"Negotiations", "Proposal Sent", "Feasibility", "WO Received", "POC"},
		HighValueFloor: 5_000_000,
		MaxResults:     15,
	}
}

// Overdue lists Open/On-Hold deals whose close date (actual, else tentative)
// is strictly in the past, most overdue first.
func Overdue(deals []domain.DealRecord, today time.Time) []api.OverdueDeal {
	today = truncateDay(today)
	var overdue []api.OverdueDeal

	for _, d := range deals {
		if !d.IsOpenOrOnHold() {
			continue
		}
		close := truncateDay(d.CloseDate())
		if close.IsZero() || !close.Before(today) {
			continue
		}
		overdue = append(overdue, api.OverdueDeal{
			Name:        d.Name,
			Owner:       d.OwnerCode,
			Sector:      d.Sector,
			Stage:       d.DealStage,
			Value:       format.INR(d.DealValue),
			CloseDate:   close.Format(dateLayout),
			DaysOverdue: daysBetween(close, today),
			Probability: d.ClosureProbability,
		})
	}

	sort.SliceStable(overdue, func(i, j int) bool {
		return overdue[i].DaysOverdue > overdue[j].DaysOverdue
	})
	return overdue
}

// AtRisk flags Open/On-Hold deals matching any risk rule: low probability
// with real value, a late-stage deal past its tentative close date, or a
// high-value deal with low probability. Reasons accumulate; the result is
// sorted by value descending and capped.
func AtRisk(deals []domain.DealRecord, today time.Time, settings RiskSettings) []api.AtRiskDeal {
	today = truncateDay(today)
	lateStages := make(map[string]bool, len(settings.LateStages))
	for _, s := range settings.LateStages {
		lateStages[s] = true
	}

	var atRisk []api.AtRiskDeal
	for _, d := range deals {
		if !d.IsOpenOrOnHold() {
			continue
		}
		val := d.DealValue
		prob := strings.TrimSpace(d.ClosureProbability)
		lowProb := strings.EqualFold(prob, "low")
		close := truncateDay(d.TentativeCloseDate)

		var reasons []string
		if lowProb && val > 0 {
			reasons = append(reasons, "Low probability")
		}
		if lateStages[d.DealStage] && !close.IsZero() && close.Before(today) {
			reasons = append(reasons, fmt.Sprintf("Overdue in %s", d.DealStage))
		}
		if val > settings.HighValueFloor && lowProb {
			reasons = append(reasons, "High value, low probability")
		}
		if len(reasons) == 0 {
			continue
		}

		tentative := "Not set"
		if !close.IsZero() {
			tentative = close.Format(dateLayout)
		}
		atRisk = append(atRisk, api.AtRiskDeal{
			Name:           d.Name,
			Owner:          d.OwnerCode,
			Sector:         d.Sector,
			Stage:          d.DealStage,
			Value:          format.INR(val),
			RawValue:       val,
			Probability:    prob,
			RiskReasons:    reasons,
			TentativeClose: tentative,
		})
	}

	sort.SliceStable(atRisk, func(i, j int) bool {
		return atRisk[i].RawValue > atRisk[j].RawValue
	})
	if len(atRisk) > settings.MaxResults {
		atRisk = atRisk[:settings.MaxResults]
	}
	return atRisk
}

// Upcoming lists Open/On-Hold deals with a tentative close date within
// [today, today+daysAhead], soonest first.
func Upcoming(deals []domain.DealRecord, today time.Time, daysAhead int) []api.UpcomingDeal {
	today = truncateDay(today)
	var upcoming []api.UpcomingDeal

	for _, d := range deals {
		if !d.IsOpenOrOnHold() {
			continue
		}
		close := truncateDay(d.TentativeCloseDate)
		if close.IsZero() {
			continue
		}
		days := daysBetween(today, close)
		if days < 0 || days > daysAhead {
			continue
		}
		upcoming = append(upcoming, api.UpcomingDeal{
			Name:           d.Name,
			Owner:          d.OwnerCode,
			Sector:         d.Sector,
			Stage:          d.DealStage,
			Value:          format.INR(d.DealValue),
			TentativeClose: close.Format(dateLayout),
			DaysUntilClose: days,
			Probability:    d.ClosureProbability,
		})
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DaysUntilClose < upcoming[j].DaysUntilClose
	})
	return upcoming
}

func truncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
