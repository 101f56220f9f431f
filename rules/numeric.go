package rules

import (
	"math"
	"strconv"
	"strings"
)

// RoundHalfUp rounds to the nearest integer, halves away from zero. This is
// the single authoritative rounding rule for derived progress figures.
func RoundHalfUp(v float64) float64 {
	return math.Round(v)
}

// Round2 rounds to two decimal places, halves away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FinancialPercent derives financial progress (0-100) from the submitted bill
// amount and the sanctioned ceiling, rounded to two decimals.
func FinancialPercent(billAmount, ceiling float64) float64 {
	if ceiling <= 0 {
		return 0
	}
	return Round2(billAmount / ceiling * 100)
}

// ParseAmount parses a user-entered numeric string. Malformed input is
// coerced to 0 with ok=false so callers can display the coercion and flag the
// field for re-entry instead of silently submitting it.
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
