package domain

import (
	"strings"
	"time"
)

// Statuses used for deal classification. The deals board carries free text,
// so anything outside this set is kept verbatim and bucketed as-is.
const (
	DealStatusOpen   = "Open"
	DealStatusWon    = "Won"
	DealStatusDead   = "Dead"
	DealStatusOnHold = "On Hold"
)

// UnknownBucket is the catch-all category for missing or empty values.
// Every record lands in exactly one bucket of any histogram.
const UnknownBucket = "Unknown"

// DealRecord is one sales opportunity from the deals board, already cleaned
// by the normalization layer: numeric fields are numeric, dates are calendar
// dates (zero time when absent) and text fields are trimmed.
type DealRecord struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	OwnerCode          string    `json:"owner_code"`
	ClientCode         string    `json:"client_code"`
	DealStatus         string    `json:"deal_status"`
	DealStage          string    `json:"deal_stage"`
	ClosureProbability string    `json:"closure_probability"`
	DealValue          float64   `json:"deal_value"`
	Sector             string    `json:"sector"`
	Product            string    `json:"product"`
	CloseDateActual    time.Time `json:"close_date_actual"`
	TentativeCloseDate time.Time `json:"tentative_close_date"`
	CreatedDate        time.Time `json:"created_date"`
}

// StatusNorm returns the status lower-cased and trimmed for comparisons.
func (d DealRecord) StatusNorm() string {
	return strings.ToLower(strings.TrimSpace(d.DealStatus))
}

// IsOpenOrOnHold reports whether the deal is still in play.
func (d DealRecord) IsOpenOrOnHold() bool {
	s := d.StatusNorm()
	return s == "open" || s == "on hold"
}

// CloseDate returns the actual close date, falling back to the tentative
// one. Zero when neither is set.
func (d DealRecord) CloseDate() time.Time {
	if !d.CloseDateActual.IsZero() {
		return d.CloseDateActual
	}
	return d.TentativeCloseDate
}
