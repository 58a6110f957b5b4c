package feedback

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Minus is the sign placed in front of debits.
const Minus = "−"

var rub = message.NewPrinter(language.Russian)

// Rub formats amount with Russian digit grouping and the ruble sign.
func Rub(amount float64) string {
	return rub.Sprint(number.Decimal(amount, number.MaxFractionDigits(2))) + " ₽"
}

// SignedRub formats amount with an explicit sign.
func SignedRub(amount float64, debit bool) string {
	if debit {
		return Minus + Rub(amount)
	}
	return "+" + Rub(amount)
}
