// Package calculator prices a loan at a flat daily rate.
package calculator

import "math"

// DefaultDailyRate is 0.3% per day.
const DefaultDailyRate = 0.003

// Rounding selects how the interest is rounded before it is added to the principal.
type Rounding int

const (
	// Exact keeps full floating precision. The dashboard application form uses it.
	Exact Rounding = iota
	// Nearest rounds to the nearest whole currency unit, halves up. The landing calculator uses it.
	Nearest
)

// Cost is the price of a loan.
type Cost struct {
	Interest float64 `json:"interest"`
	Total    float64 `json:"total"`
}

// Compute returns the interest and total repayment for amount borrowed over termDays.
// It never validates its input; callers enforce bounds.
func Compute(amount float64, termDays int, dailyRate float64, rounding Rounding) Cost {
	interest := amount * dailyRate * float64(termDays)
	if rounding == Nearest {
		interest = roundHalfUp(interest)
	}
	return Cost{Interest: interest, Total: amount + interest}
}

// Rounded prices a loan the way the landing page calculator does.
func Rounded(amount float64, termDays int) Cost {
	return Compute(amount, termDays, DefaultDailyRate, Nearest)
}

// Unrounded prices a loan the way the application form preview does.
func Unrounded(amount float64, termDays int) Cost {
	return Compute(amount, termDays, DefaultDailyRate, Exact)
}

// roundHalfUp rounds ties toward positive infinity.
func roundHalfUp(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	r := math.Floor(x)
	if x-r >= 0.5 {
		r++
	}
	return r
}
