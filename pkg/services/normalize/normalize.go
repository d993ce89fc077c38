// Package normalize turns raw Monday.com board items into clean domain
// records. The boards were bulk-imported from spreadsheets, so the cleaners
// tolerate currency glyphs, formula errors, stray header rows and mixed
// date formats.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bi-tools/board-pulse/pkg/models/domain"
	"github.com/bi-tools/board-pulse/pkg/store/monday"
)

// junkValues are spreadsheet artifacts that mean "no value".
var junkValues = map[string]bool{
	"":        true,
	"#VALUE!": true,
	"nan":     true,
	"N/A":     true,
	"-":       true,
}

var amountJunk = regexp.MustCompile(`[₹,\s]`)

// CleanAmount parses a currency cell into a float. Formula errors, dashes
// and empty cells come back as 0.
func CleanAmount(value string) float64 {
	text := strings.TrimSpace(value)
	if junkValues[text] {
		return 0
	}
	text = amountJunk.ReplaceAllString(text, "")
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}
	return f
}

// dateLayouts are tried in order. Day-first layouts come before month-first
// ones because the boards were filled in day-first.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2 January 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006/01/02",
}

// NormalizeDate parses a date cell, preferring day-first formats. The zero
// time means the cell was empty or unparseable.
func NormalizeDate(value string) time.Time {
	text := strings.TrimSpace(value)
	if junkValues[text] {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t
		}
	}
	return time.Time{}
}

// stageLabels maps the board's letter codes to funnel stage names.
var stageLabels = map[string]string{
	"A": "Lead",
	"B": "SQL",
	"C": "Demo Done",
	"D": "Feasibility",
	"E": "Proposal Sent",
	"F": "Negotiations",
	"G": "Won",
	"H": "WO Received",
	"I": "POC",
	"J": "Invoice Sent",
	"K": "Amount Accrued",
	"L": "Project Lost",
	"M": "On Hold",
	"N": "Not Relevant",
	"O": "Not Relevant",
}

var stageLetter = regexp.MustCompile(`^([A-O])\b`)

// MapStage resolves a stage cell to its funnel label. Accepts a bare letter
// code or a letter prefix like "B - SQL"; anything else is title-cased.
func MapStage(raw string) string {
	text := strings.ToUpper(strings.TrimSpace(raw))
	if text == "" {
		return domain.UnknownBucket
	}
	if m := stageLetter.FindStringSubmatch(text); m != nil {
		return stageLabels[m[1]]
	}
	return titleCase(text)
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// dealHeaderStatuses identify duplicate header rows embedded in the
// imported board data.
var dealHeaderStatuses = map[string]bool{
	"Deal Status":      true,
	"Close Date (A)":   true,
	"Execution Status": true,
	"Status":           true,
	"deal_status":      true,
	"WO Status":        true,
}

// columns flattens an item's cells into a lowercase-title lookup table.
type columns map[string]string

func itemColumns(item monday.Item) columns {
	cols := make(columns, len(item.ColumnValues))
	for _, cv := range item.ColumnValues {
		title := cv.Title
		if title == "" {
			title = cv.ID
		}
		cols[strings.ToLower(strings.TrimSpace(title))] = strings.TrimSpace(cv.Text)
	}
	return cols
}

// lookup tries the given title aliases in order and returns the first
// non-empty cell.
func (c columns) lookup(titles ...string) string {
	for _, title := range titles {
		if v := c[title]; v != "" {
			return v
		}
	}
	return ""
}

// Deals normalizes raw deal-board items, dropping embedded header rows.
func Deals(items []monday.Item) []domain.DealRecord {
	var deals []domain.DealRecord
	for _, item := range items {
		cols := itemColumns(item)

		status := cols.lookup("deal status", "status")
		if dealHeaderStatuses[status] {
			continue
		}

		deals = append(deals, domain.DealRecord{
			ID:                 item.ID,
			Name:               strings.TrimSpace(item.Name),
			OwnerCode:          cols.lookup("owner code", "owner", "bd/kam personnel code"),
			ClientCode:         cols.lookup("client code", "client", "customer name code"),
			DealStatus:         status,
			DealStage:          MapStage(cols.lookup("deal stage", "stage")),
			ClosureProbability: cols.lookup("closure probability", "probability"),
			DealValue:          CleanAmount(cols.lookup("masked deal value", "deal value", "value")),
			Sector:             cols.lookup("sector/service", "sector"),
			Product:            cols.lookup("product deal", "product"),
			CloseDateActual:    NormalizeDate(cols.lookup("close date (a)", "close date")),
			TentativeCloseDate: NormalizeDate(cols.lookup("tentative close date", "tentative close")),
			CreatedDate:        NormalizeDate(cols.lookup("created date")),
		})
	}
	return deals
}

// WorkOrders normalizes raw work-order-board items, dropping embedded
// header rows.
func WorkOrders(items []monday.Item) []domain.WorkOrderRecord {
	var wos []domain.WorkOrderRecord
	for _, item := range items {
		cols := itemColumns(item)

		execStatus := cols.lookup("execution status", "status")
		if execStatus == "Execution Status" || execStatus == "Status" {
			continue
		}

		wos = append(wos, domain.WorkOrderRecord{
			ID:                 item.ID,
			DealName:           strings.TrimSpace(item.Name),
			CustomerCode:       cols.lookup("customer name code", "client code"),
			ExecutionStatus:    execStatus,
			Sector:             cols.lookup("sector", "sector/service"),
			Platform:           cols.lookup("platform", "product platform"),
			AmountExclGST:      CleanAmount(cols.lookup("amount excl gst (masked)", "amount excl gst")),
			AmountInclGST:      CleanAmount(cols.lookup("amount incl gst (masked)", "amount incl gst")),
			BilledValueExclGST: CleanAmount(cols.lookup("billed value excl gst (masked)", "billed value excl gst")),
			BilledValueInclGST: CleanAmount(cols.lookup("billed value incl gst (masked)", "billed value incl gst")),
			CollectedInclGST:   CleanAmount(cols.lookup("collected amount incl gst (masked)", "collected amount incl gst", "collected amount")),
			AmountToBeBilled:   CleanAmount(cols.lookup("amount to be billed incl gst", "amount to be billed")),
			AmountReceivable:   CleanAmount(cols.lookup("amount receivable", "ar")),
			ARPriority:         cols.lookup("ar priority", "priority"),
			BillingStatus:      cols.lookup("billing status", "status"),
			WOStatus:           cols.lookup("wo status (billed)", "wo status"),
		})
	}
	return wos
}
