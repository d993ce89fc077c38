// Package pivot implements the ad-hoc dimension × metric aggregation
// matrix. One call groups one metric by one categorical dimension across
// the deal or work-order board and returns a render-ready chart plus a
// scalar summary.
package pivot

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/bi-tools/board-pulse/pkg/aggregate"
	"github.com/bi-tools/board-pulse/pkg/format"
	"github.com/bi-tools/board-pulse/pkg/models/api"
	"github.com/bi-tools/board-pulse/pkg/models/domain"
)

const (
	// maxChartRows caps the displayed ranking; totals still cover the full
	// group set.
	maxChartRows = 10
	// donutMaxWOSlices / donutMaxStatusSlices pick donut over bar when the
	// category count is small enough to read as slices.
	donutMaxWOSlices     = 6
	donutMaxStatusSlices = 7
	// minResolvedDeals is the win-rate floor for exploratory pivots, looser
	// than the headline per-sector KPI floor.
	minResolvedDeals = 2
	// emptyTopName marks a pivot with no groups at all.
	emptyTopName = "—"
)

// Analyze validates the requested dimension and metric, dispatches to the
// right record set and aggregates.
//
// Work-order metrics only understand sector and platform; the dashboard has
// always sent owner/stage/status here too and expects a sector grouping
// back, so that fallback is preserved deliberately rather than rejected.
func Analyze(deals []domain.DealRecord, wos []domain.WorkOrderRecord, dimension, metric string) (api.PivotResult, error) {
	dim, err := domain.ParseDimension(dimension)
	if err != nil {
		return api.PivotResult{}, err
	}
	m, err := domain.ParseMetric(metric)
	if err != nil {
		return api.PivotResult{}, err
	}

	switch {
	case m.NeedsWorkOrders():
		return workOrderPivot(wos, dim, m), nil
	case m == domain.MetricWinRate:
		return winRatePivot(deals, dim), nil
	default:
		return dealPivot(deals, dim, m), nil
	}
}

func workOrderPivot(wos []domain.WorkOrderRecord, dim domain.Dimension, m domain.Metric) api.PivotResult {
	groups := aggregate.NewCounter()
	for _, wo := range wos {
		groups.Add(workOrderKey(wo, dim), workOrderValue(wo, m))
	}

	ranked := groups.TopN(0)
	data := positivePoints(ranked)

	chartType := "bar"
	if m == domain.MetricWOCount && len(data) <= donutMaxWOSlices {
		chartType = "donut"
	}

	unit := "WOs"
	if m.IsAmount() {
		unit = "₹"
	}

	return assemble(chart(chartType, m, dim, data, "#06b6d4"),
		groups.Total(), topEntry(ranked), m.IsAmount(), unit, len(wos))
}

func dealPivot(deals []domain.DealRecord, dim domain.Dimension, m domain.Metric) api.PivotResult {
	groups := aggregate.NewCounter()
	for _, d := range deals {
		groups.Add(dealKey(d, dim), dealValue(d, m))
	}

	ranked := groups.TopN(0)
	data := positivePoints(ranked)

	chartType := "bar"
	if dim == domain.DimensionStatus && len(data) <= donutMaxStatusSlices {
		chartType = "donut"
	}

	unit := "deals"
	if m.IsAmount() {
		unit = "₹"
	}

	return assemble(chart(chartType, m, dim, data, "#3b82f6"),
		groups.Total(), topEntry(ranked), m.IsAmount(), unit, len(deals))
}

func winRatePivot(deals []domain.DealRecord, dim domain.Dimension) api.PivotResult {
	type tally struct {
		won, dead int
	}
	tallies := make(map[string]*tally)
	var order []string

	for _, d := range deals {
		status := d.StatusNorm()
		if status != "won" && status != "dead" {
			continue
		}
		key := dealKey(d, dim)
		t, ok := tallies[key]
		if !ok {
			t = &tally{}
			tallies[key] = t
			order = append(order, key)
		}
		if status == "won" {
			t.won++
		} else {
			t.dead++
		}
	}

	var data []api.PivotPoint
	for _, key := range order {
		t := tallies[key]
		resolved := t.won + t.dead
		if resolved < minResolvedDeals {
			continue
		}
		won, dead := t.won, t.dead
		data = append(data, api.PivotPoint{
			Name:  key,
			Value: math.Round(float64(won)/float64(resolved)*1000) / 10,
			Won:   &won,
			Dead:  &dead,
		})
	}
	sort.SliceStable(data, func(i, j int) bool { return data[i].Value > data[j].Value })

	topName, topValue := emptyTopName, 0.0
	if len(data) > 0 {
		topName, topValue = data[0].Name, data[0].Value
	}
	if len(data) > maxChartRows {
		data = data[:maxChartRows]
	}

	return api.PivotResult{
		Chart: api.Chart{
			Type:     "bar",
			Title:    fmt.Sprintf("%s by %s", domain.MetricWinRate.Label(), dim.Label()),
			IsAmount: false,
			Data:     data,
			Bars: []api.SeriesDef{
				{Key: "won", Label: "Won", Color: "#10b981"},
				{Key: "dead", Label: "Dead", Color: "#ef4444"},
			},
		},
		Summary: api.PivotSummary{
			Total:             float64(len(deals)),
			TotalFormatted:    strconv.Itoa(len(deals)),
			TopName:           topName,
			TopValue:          topValue,
			TopValueFormatted: fmt.Sprintf("%.1f%%", topValue),
			Unit:              "%",
			RecordCount:       len(deals),
		},
	}
}

// dealKey maps a deal to its group for the requested dimension. "platform"
// means the product field on the deal board.
func dealKey(d domain.DealRecord, dim domain.Dimension) string {
	switch dim {
	case domain.DimensionSector:
		return aggregate.NormalizeKey(d.Sector)
	case domain.DimensionOwner:
		return aggregate.NormalizeKey(d.OwnerCode)
	case domain.DimensionStage:
		return aggregate.NormalizeKey(d.DealStage)
	case domain.DimensionStatus:
		return aggregate.NormalizeKey(d.DealStatus)
	case domain.DimensionPlatform:
		return aggregate.NormalizeKey(d.Product)
	}
	return domain.UnknownBucket
}

// workOrderKey maps a work order to its group. Owner, stage and status are
// deal-board concepts with no work-order equivalent: they fall back to
// sector (see Analyze).
func workOrderKey(wo domain.WorkOrderRecord, dim domain.Dimension) string {
	if dim == domain.DimensionPlatform {
		return aggregate.NormalizeKey(wo.Platform)
	}
	return aggregate.NormalizeKey(wo.Sector)
}

func workOrderValue(wo domain.WorkOrderRecord, m domain.Metric) float64 {
	switch m {
	case domain.MetricWOCount:
		return 1
	case domain.MetricAR:
		return wo.AmountReceivable
	case domain.MetricBilled:
		return wo.BilledValue()
	case domain.MetricCollected:
		return wo.CollectedInclGST
	}
	return 0
}

func dealValue(d domain.DealRecord, m domain.Metric) float64 {
	if m == domain.MetricDealValue {
		return d.DealValue
	}
	return 1
}

// positivePoints turns ranked entries into chart rows, keeping only groups
// with something to show.
func positivePoints(ranked []aggregate.Entry) []api.PivotPoint {
	var data []api.PivotPoint
	for _, e := range ranked {
		if e.Value <= 0 {
			continue
		}
		data = append(data, api.PivotPoint{Name: e.Key, Value: math.Round(e.Value)})
	}
	return data
}

func topEntry(ranked []aggregate.Entry) aggregate.Entry {
	if len(ranked) == 0 {
		return aggregate.Entry{Key: emptyTopName}
	}
	return ranked[0]
}

func chart(chartType string, m domain.Metric, dim domain.Dimension, data []api.PivotPoint, color string) api.Chart {
	if len(data) > maxChartRows {
		data = data[:maxChartRows]
	}
	return api.Chart{
		Type:     chartType,
		Title:    fmt.Sprintf("%s by %s", m.Label(), dim.Label()),
		IsAmount: m.IsAmount(),
		Data:     data,
		Bars:     []api.SeriesDef{{Key: "value", Label: m.Label(), Color: color}},
	}
}

func assemble(c api.Chart, total float64, top aggregate.Entry, isAmount bool, unit string, recordCount int) api.PivotResult {
	formatted := func(v float64) string {
		if isAmount {
			return format.INR(v)
		}
		return strconv.Itoa(int(v))
	}
	return api.PivotResult{
		Chart: c,
		Summary: api.PivotSummary{
			Total:             math.Round(total),
			TotalFormatted:    formatted(total),
			TopName:           top.Key,
			TopValue:          math.Round(top.Value),
			TopValueFormatted: formatted(top.Value),
			Unit:              unit,
			RecordCount:       recordCount,
		},
	}
}
