package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/hongminglow/labubu-portal/internal/calculator"
	"github.com/hongminglow/labubu-portal/internal/http/respond"
)

// Sections are the in-page anchors of the landing page, in display order.
var Sections = []string{"home", "terms", "calculator", "account", "faq"}

type sliderBounds struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Step    int `json:"step,omitempty"`
	Default int `json:"default"`
}

type landingView struct {
	Sections  []string         `json:"sections"`
	DailyRate float64          `json:"daily_rate"`
	Amount    sliderBounds     `json:"amount"`
	TermDays  sliderBounds     `json:"term_days"`
	Quote     calculator.Quote `json:"quote"`
}

// LandingHandler serves the public landing page data and its cost calculator.
type LandingHandler struct {
	dailyRate float64
}

func NewLandingHandler(dailyRate float64) *LandingHandler {
	if dailyRate <= 0 {
		dailyRate = calculator.DefaultDailyRate
	}
	return &LandingHandler{dailyRate: dailyRate}
}

func (h *LandingHandler) Register(r chi.Router) {
	r.Get("/api/landing", h.handleLanding)
	r.Get("/api/calculator", h.handleCalculator)
}

func (h *LandingHandler) handleLanding(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, "ok", landingView{
		Sections:  Sections,
		DailyRate: h.dailyRate,
		Amount: sliderBounds{
			Min:     calculator.LandingMinAmount,
			Max:     calculator.LandingMaxAmount,
			Step:    calculator.LandingAmountStep,
			Default: calculator.LandingDefaultAmount,
		},
		TermDays: sliderBounds{
			Min:     calculator.LandingMinDays,
			Max:     calculator.LandingMaxDays,
			Default: calculator.LandingDefaultDays,
		},
		Quote: calculator.LandingQuote(calculator.LandingDefaultAmount, calculator.LandingDefaultDays, h.dailyRate),
	})
}

// handleCalculator prices ?amount=&days=. Missing values use the slider defaults.
func (h *LandingHandler) handleCalculator(w http.ResponseWriter, r *http.Request) {
	amount := float64(calculator.LandingDefaultAmount)
	if raw := r.URL.Query().Get("amount"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "amount must be a number")
			return
		}
		amount = d.InexactFloat64()
	}
	days := calculator.LandingDefaultDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "days must be an integer")
			return
		}
		days = n
	}
	respond.JSON(w, http.StatusOK, "ok", calculator.LandingQuote(amount, days, h.dailyRate))
}
