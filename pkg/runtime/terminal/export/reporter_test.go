package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/bi-tools/board-pulse/pkg/models/domain"
	"github.com/bi-tools/board-pulse/pkg/services/pivot"
	"github.com/bi-tools/board-pulse/pkg/services/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter_Briefing(t *testing.T) {
	deals := []domain.DealRecord{
		{Name: "Pit Survey", DealStatus: "Open", Sector: "Mining", DealValue: 7_500_000},
		{Name: "Won Bid", DealStatus: "Won", Sector: "Mining", DealValue: 2_000_000},
		{Name: "Lost Bid", DealStatus: "Dead", Sector: "Mining", DealValue: 100_000},
	}
	update := report.LeadershipUpdate(deals, nil, time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).Briefing(update))

	out := buf.String()
	assert.Contains(t, out, "LEADERSHIP BRIEFING")
	assert.Contains(t, out, "Total deals: 3")
	assert.Contains(t, out, "Open pipeline: ₹75.00 L")
	assert.Contains(t, out, "Overall: 50.0% (Won 1, Dead 1)")
	assert.Contains(t, out, "- Pit Survey (Mining, ): ₹75.00 L")
}

func TestReporter_Briefing_NoResolvedDeals(t *testing.T) {
	update := report.LeadershipUpdate(nil, nil, time.Now())

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).Briefing(update))
	assert.Contains(t, buf.String(), "Overall: no resolved deals yet")
}

func TestReporter_Pivot(t *testing.T) {
	deals := []domain.DealRecord{
		{DealStatus: "Open", Sector: "Mining", DealValue: 1_000_000},
		{DealStatus: "Open", Sector: "Energy", DealValue: 500_000},
	}
	result, err := pivot.Analyze(deals, nil, "sector", "deal_value")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).Pivot(result))

	out := buf.String()
	assert.Contains(t, out, "Open Deal Value by Sector")
	assert.Contains(t, out, "Mining")
	assert.Contains(t, out, "Total: ₹15.00 L (₹)")
	assert.Contains(t, out, "Top: Mining at ₹10.00 L")
	assert.Contains(t, out, "Records analyzed: 2")
}

func TestReporter_Pivot_Empty(t *testing.T) {
	result, err := pivot.Analyze(nil, nil, "sector", "deal_count")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).Pivot(result))
	assert.Contains(t, buf.String(), "Top: — at 0")
}

func TestReporter_NilWriterDefaultsToStdout(t *testing.T) {
	r := NewReporter(nil)
	assert.NotNil(t, r.writer)
}
