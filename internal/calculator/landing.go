package calculator

// Slider bounds of the landing page calculator.
const (
	LandingMinAmount     = 5000
	LandingMaxAmount     = 100000
	LandingAmountStep    = 1000
	LandingMinDays       = 7
	LandingMaxDays       = 30
	LandingDefaultAmount = 30000
	LandingDefaultDays   = 14
)

// Quote is what the landing calculator displays.
type Quote struct {
	Amount   float64 `json:"amount"`
	TermDays int     `json:"term_days"`
	Cost
}

// LandingQuote snaps amount and days onto the slider range and prices the result with rounding.
func LandingQuote(amount float64, days int, dailyRate float64) Quote {
	amount = snapAmount(amount)
	days = clampInt(days, LandingMinDays, LandingMaxDays)
	return Quote{
		Amount:   amount,
		TermDays: days,
		Cost:     Compute(amount, days, dailyRate, Nearest),
	}
}

func snapAmount(amount float64) float64 {
	if amount != amount || amount < LandingMinAmount {
		return LandingMinAmount
	}
	if amount > LandingMaxAmount {
		return LandingMaxAmount
	}
	steps := roundHalfUp((amount - LandingMinAmount) / LandingAmountStep)
	return LandingMinAmount + steps*LandingAmountStep
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
