package normalize

import (
	"testing"
	"time"

	"github.com/bi-tools/board-pulse/pkg/store/monday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanAmount(t *testing.T) {
	cases := map[string]float64{
		"1234.5":      1234.5,
		"₹1,20,000":   120000,
		"1,000,000":   1000000,
		" ₹ 500 ":     500,
		"#VALUE!":     0,
		"nan":         0,
		"N/A":         0,
		"-":           0,
		"":            0,
		"not a value": 0,
		"-42000":      -42000,
	}
	for in, want := range cases {
		assert.Equal(t, want, CleanAmount(in), "CleanAmount(%q)", in)
	}
}

func TestNormalizeDate(t *testing.T) {
	want := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)

	cases := []string{
		"2026-03-05",
		"05/03/2026",
		"5/3/2026",
		"05-03-2026",
		"5 March 2026",
		"5 Mar 2026",
		"Mar 5, 2026",
	}
	for _, in := range cases {
		assert.Equal(t, want, NormalizeDate(in), "NormalizeDate(%q)", in)
	}

	for _, in := range []string{"", "nan", "N/A", "-", "sometime soon"} {
		assert.True(t, NormalizeDate(in).IsZero(), "NormalizeDate(%q)", in)
	}
}

func TestMapStage(t *testing.T) {
	cases := map[string]string{
		"A":              "Lead",
		"b":              "SQL",
		"B - SQL":        "SQL",
		"F - Negotiated": "Negotiations",
		"O":              "Not Relevant",
		"negotiations":   "Negotiations",
		"proposal sent":  "Proposal Sent",
		"":               "Unknown",
	}
	for in, want := range cases {
		assert.Equal(t, want, MapStage(in), "MapStage(%q)", in)
	}
}

func dealItem(name string, cells map[string]string) monday.Item {
	item := monday.Item{ID: "1", Name: name}
	for title, text := range cells {
		item.ColumnValues = append(item.ColumnValues, monday.ColumnValue{Title: title, Text: text})
	}
	return item
}

func TestDeals(t *testing.T) {
	items := []monday.Item{
		dealItem("Pit Survey", map[string]string{
			"Owner Code":           "RK",
			"Deal Status":          "Open",
			"Deal Stage":           "F",
			"Closure Probability":  "High",
			"Masked Deal Value":    "₹75,00,000",
			"Sector/Service":       "Mining",
			"Product Deal":         "Spectra",
			"Tentative Close Date": "15/07/2026",
		}),
		// Header row imported from the spreadsheet.
		dealItem("Name", map[string]string{"Deal Status": "Deal Status"}),
	}

	deals := Deals(items)
	require.Len(t, deals, 1)

	d := deals[0]
	assert.Equal(t, "Pit Survey", d.Name)
	assert.Equal(t, "RK", d.OwnerCode)
	assert.Equal(t, "Open", d.DealStatus)
	assert.Equal(t, "Negotiations", d.DealStage)
	assert.Equal(t, float64(7_500_000), d.DealValue)
	assert.Equal(t, "Mining", d.Sector)
	assert.Equal(t, "Spectra", d.Product)
	assert.Equal(t, time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC), d.TentativeCloseDate)
	assert.True(t, d.CloseDateActual.IsZero())
}

func TestDeals_AliasLookup(t *testing.T) {
	deals := Deals([]monday.Item{
		dealItem("Alias Deal", map[string]string{
			"Owner":  "AN",
			"Status": "Won",
			"Value":  "1000",
			"Sector": "Energy",
		}),
	})

	require.Len(t, deals, 1)
	assert.Equal(t, "AN", deals[0].OwnerCode)
	assert.Equal(t, "Won", deals[0].DealStatus)
	assert.Equal(t, float64(1000), deals[0].DealValue)
	assert.Equal(t, "Energy", deals[0].Sector)
}

func TestWorkOrders(t *testing.T) {
	items := []monday.Item{
		dealItem("Mine Mapping", map[string]string{
			"Customer Name Code":        "C001",
			"Execution Status":          "In Progress",
			"Sector":                    "Mining",
			"Platform":                  "DMO",
			"Amount Excl GST (Masked)":  "₹30,00,000",
			"Billed Value Excl GST":     "#VALUE!",
			"Collected Amount Incl GST": "5,00,000",
			"Amount Receivable":         "₹7,00,000",
			"AR Priority":               "High",
			"Billing Status":            "Partially Billed",
		}),
		dealItem("Header", map[string]string{"Execution Status": "Execution Status"}),
	}

	wos := WorkOrders(items)
	require.Len(t, wos, 1)

	wo := wos[0]
	assert.Equal(t, "Mine Mapping", wo.DealName)
	assert.Equal(t, "C001", wo.CustomerCode)
	assert.Equal(t, "In Progress", wo.ExecutionStatus)
	assert.Equal(t, "DMO", wo.Platform)
	assert.Equal(t, float64(3_000_000), wo.AmountExclGST)
	assert.Equal(t, float64(0), wo.BilledValueExclGST)
	assert.Equal(t, float64(500_000), wo.CollectedInclGST)
	assert.Equal(t, float64(700_000), wo.AmountReceivable)
	assert.Equal(t, "High", wo.ARPriority)
	assert.Equal(t, "Partially Billed", wo.BillingStatus)
}

func TestItemColumns_FallsBackToID(t *testing.T) {
	item := monday.Item{
		ID:   "9",
		Name: "No Titles",
		ColumnValues: []monday.ColumnValue{
			{ID: "deal status", Text: "Open"},
		},
	}

	deals := Deals([]monday.Item{item})
	require.Len(t, deals, 1)
	assert.Equal(t, "Open", deals[0].DealStatus)
}
