package domain

import (
	"fmt"
	"strings"
)

// Dimension is a categorical grouping axis for ad-hoc pivots.
type Dimension string

// Metric is the aggregated quantity of an ad-hoc pivot.
type Metric string

const (
	DimensionSector   Dimension = "sector"
	DimensionOwner    Dimension = "owner"
	DimensionStage    Dimension = "stage"
	DimensionStatus   Dimension = "status"
	DimensionPlatform Dimension = "platform"
)

const (
	MetricDealCount Metric = "deal_count"
	MetricDealValue Metric = "deal_value"
	MetricWinRate   Metric = "win_rate"
	MetricWOCount   Metric = "wo_count"
	MetricAR        Metric = "ar"
	MetricBilled    Metric = "billed"
	MetricCollected Metric = "collected"
)

// Dimensions and Metrics are the full enumerations shared by validation,
// dispatch and error messages.
var (
	Dimensions = []Dimension{DimensionSector, DimensionOwner, DimensionStage, DimensionStatus, DimensionPlatform}
	Metrics    = []Metric{MetricDealCount, MetricDealValue, MetricWinRate, MetricWOCount, MetricAR, MetricBilled, MetricCollected}
)

// ParseDimension normalizes case/whitespace and rejects anything outside the
// enumeration, naming the allowed set.
func ParseDimension(s string) (Dimension, error) {
	d := Dimension(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Dimensions {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown dimension %q: must be one of %v", s, Dimensions)
}

// ParseMetric is the Metric counterpart of ParseDimension.
func ParseMetric(s string) (Metric, error) {
	m := Metric(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Metrics {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown metric %q: must be one of %v", s, Metrics)
}

// NeedsWorkOrders reports whether the metric aggregates over the work-order
// board rather than the deals board.
func (m Metric) NeedsWorkOrders() bool {
	switch m {
	case MetricWOCount, MetricAR, MetricBilled, MetricCollected:
		return true
	}
	return false
}

// IsAmount reports whether the metric is a currency amount.
func (m Metric) IsAmount() bool {
	switch m {
	case MetricDealValue, MetricAR, MetricBilled, MetricCollected:
		return true
	}
	return false
}

// Label is the human-readable metric name used in chart titles.
func (m Metric) Label() string {
	switch m {
	case MetricDealCount:
		return "Deal Count"
	case MetricDealValue:
		return "Open Deal Value"
	case MetricWinRate:
		return "Win Rate (%)"
	case MetricWOCount:
		return "Work Order Count"
	case MetricAR:
		return "Outstanding AR"
	case MetricBilled:
		return "Billed Value"
	case MetricCollected:
		return "Amount Collected"
	}
	return "Value"
}

// Label is the human-readable dimension name used in chart titles.
func (d Dimension) Label() string {
	switch d {
	case DimensionSector:
		return "Sector"
	case DimensionOwner:
		return "Owner"
	case DimensionStage:
		return "Stage"
	case DimensionStatus:
		return "Status"
	case DimensionPlatform:
		return "Platform"
	}
	return strings.ToUpper(string(d)[:1]) + string(d)[1:]
}
