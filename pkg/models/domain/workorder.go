package domain

import "strings"

// WorkOrderRecord is one execution/billing unit from the work-orders board.
// Amount fields come in excl-GST and incl-GST variants because the board
// mixes both; accessors below apply the preferred fallback order.
type WorkOrderRecord struct {
	ID                 string  `json:"id"`
	DealName           string  `json:"deal_name"`
	CustomerCode       string  `json:"customer_code"`
	ExecutionStatus    string  `json:"execution_status"`
	Sector             string  `json:"sector"`
	Platform           string  `json:"platform"`
	AmountExclGST      float64 `json:"amount_excl_gst"`
	AmountInclGST      float64 `json:"amount_incl_gst"`
	BilledValueExclGST float64 `json:"billed_value_excl_gst"`
	BilledValueInclGST float64 `json:"billed_value_incl_gst"`
	CollectedInclGST   float64 `json:"collected_amount_incl_gst"`
	AmountToBeBilled   float64 `json:"amount_to_be_billed_incl_gst"`
	AmountReceivable   float64 `json:"amount_receivable"`
	ARPriority         string  `json:"ar_priority"`
	BillingStatus      string  `json:"billing_status"`
	WOStatus           string  `json:"wo_status"`
}

// ContractValue is the excl-GST contract amount, falling back to incl-GST
// when the excl figure is missing or zero.
func (w WorkOrderRecord) ContractValue() float64 {
	if w.AmountExclGST != 0 {
		return w.AmountExclGST
	}
	return w.AmountInclGST
}

// BilledValue applies the same excl-then-incl fallback to billed amounts.
func (w WorkOrderRecord) BilledValue() float64 {
	if w.BilledValueExclGST != 0 {
		return w.BilledValueExclGST
	}
	return w.BilledValueInclGST
}

// Status is the execution status, falling back to the WO status.
func (w WorkOrderRecord) Status() string {
	if s := strings.TrimSpace(w.ExecutionStatus); s != "" {
		return s
	}
	if s := strings.TrimSpace(w.WOStatus); s != "" {
		return s
	}
	return UnknownBucket
}
