package models

import "math"

// CentsToDollars converts an integer cent amount to decimal currency.
func CentsToDollars(cents int64) float64 {
	return float64(cents) / 100
}

// Round2 rounds to two decimal places. Only applied when building output.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
