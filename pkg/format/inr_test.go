package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestINR(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"below thousand", 999, "₹999"},
		{"thousands", 1500, "₹1.5K"},
		{"lakhs", 150000, "₹1.50 L"},
		{"crores", 15000000, "₹1.50 Cr"},
		{"zero", 0, "₹0"},
		{"thousand boundary", 1000, "₹1.0K"},
		{"lakh boundary", 100000, "₹1.00 L"},
		{"crore boundary", 10000000, "₹1.00 Cr"},
		{"sub-thousand rounds to integer", 999.6, "₹1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, INR(tt.amount))
		})
	}
}

func TestParseINR(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"crores", "₹1.50 Cr", 15000000},
		{"lakhs", "₹2.25 L", 225000},
		{"thousands", "₹1.5K", 1500},
		{"plain", "₹999", 999},
		{"missing glyph", "1.50 Cr", 0},
		{"garbage", "₹not-a-number", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseINR(tt.input), 0.001)
		})
	}
}

func TestParseINR_RoundTrip(t *testing.T) {
	// One representative value per formatting bracket. Round-tripping loses
	// only the precision the display format drops.
	cases := []struct {
		amount    float64
		tolerance float64
	}{
		{750, 0.5},
		{4200, 50},
		{360000, 500},
		{98000000, 50000},
	}

	for _, c := range cases {
		got := ParseINR(INR(c.amount))
		assert.LessOrEqual(t, math.Abs(got-c.amount), c.tolerance,
			"round trip of %v drifted to %v", c.amount, got)
	}
}
