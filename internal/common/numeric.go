package common

import (
	"math"
	"strconv"
	"strings"
)

// SafeNumber coerces a float into a finite value. NaN and infinities become 0.
func SafeNumber(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ToNumber parses a user-entered numeric string. A comma decimal separator is
// tolerated ("12,5" == 12.5). Empty, malformed, or non-finite input yields 0.
func ToNumber(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return SafeNumber(n)
}
