// Package format renders amounts in the Indian business convention used
// across every dashboard surface: crores (Cr) above 1e7, lakhs (L) above
// 1e5, thousands (K) above 1e3.
package format

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	crore    = 1e7
	lakh     = 1e5
	thousand = 1e3
)

// INR formats an amount as "₹X.XX Cr", "₹X.XX L", "₹X.XK" or "₹X" depending
// on magnitude. The grammar is part of the output contract and must not
// drift.
func INR(amount float64) string {
	switch {
	case amount >= crore:
		return fmt.Sprintf("₹%.2f Cr", amount/crore)
	case amount >= lakh:
		return fmt.Sprintf("₹%.2f L", amount/lakh)
	case amount >= thousand:
		return fmt.Sprintf("₹%.1fK", amount/thousand)
	}
	return fmt.Sprintf("₹%.0f", amount)
}

// ParseINR is the inverse of INR for strings carrying the ₹ glyph. Anything
// unparsable yields 0: formatting is a presentation helper, not a
// validation gate.
func ParseINR(s string) float64 {
	if !strings.Contains(s, "₹") {
		return 0
	}
	text := strings.TrimSpace(strings.ReplaceAll(s, "₹", ""))

	mult := 1.0
	switch {
	case strings.Contains(text, "Cr"):
		mult = crore
		text = strings.ReplaceAll(text, "Cr", "")
	case strings.Contains(text, "L"):
		mult = lakh
		text = strings.ReplaceAll(text, "L", "")
	case strings.Contains(text, "K"):
		mult = thousand
		text = strings.ReplaceAll(text, "K", "")
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0
	}
	return v * mult
}
