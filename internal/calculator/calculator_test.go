package calculator

import (
	"math"
	"testing"
)

func TestComputeTotalsMatchFormula(t *testing.T) {
	cases := []struct {
		amount float64
		days   int
	}{
		{0, 0},
		{1000, 7},
		{30000, 14},
		{12345.67, 21},
		{100000, 365},
	}
	for _, tc := range cases {
		raw := tc.amount * DefaultDailyRate * float64(tc.days)

		exact := Unrounded(tc.amount, tc.days)
		if exact.Interest != raw || exact.Total != tc.amount+raw {
			t.Fatalf("Unrounded(%v, %d) = %+v, want interest %v", tc.amount, tc.days, exact, raw)
		}

		rounded := Rounded(tc.amount, tc.days)
		if rounded.Interest != math.Round(raw) || rounded.Total != tc.amount+math.Round(raw) {
			t.Fatalf("Rounded(%v, %d) = %+v, want interest %v", tc.amount, tc.days, rounded, math.Round(raw))
		}
		if rounded.Total < tc.amount || exact.Total < tc.amount {
			t.Fatalf("total below principal for %v/%d", tc.amount, tc.days)
		}
	}
}

func TestRoundedLandingExample(t *testing.T) {
	got := Rounded(30000, 14)
	if got.Interest != 1260 || got.Total != 31260 {
		t.Fatalf("Rounded(30000, 14) = %+v, want 1260/31260", got)
	}
}

func TestComputeCustomRate(t *testing.T) {
	got := Compute(10000, 10, 0.01, Nearest)
	if got.Interest != 1000 || got.Total != 11000 {
		t.Fatalf("Compute = %+v", got)
	}
}

func TestRoundHalfUp(t *testing.T) {
	cases := map[float64]float64{
		0.5:  1,
		1.49: 1,
		2.5:  3,
		-2.5: -2,
		-2.6: -3,
	}
	for in, want := range cases {
		if got := roundHalfUp(in); got != want {
			t.Errorf("roundHalfUp(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestLandingQuoteSnapsToSlider(t *testing.T) {
	cases := []struct {
		name       string
		amount     float64
		days       int
		wantAmount float64
		wantDays   int
	}{
		{"defaults", LandingDefaultAmount, LandingDefaultDays, 30000, 14},
		{"below range", 100, 1, LandingMinAmount, LandingMinDays},
		{"above range", 500000, 90, LandingMaxAmount, LandingMaxDays},
		{"off step", 12400, 10, 12000, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := LandingQuote(tc.amount, tc.days, DefaultDailyRate)
			if q.Amount != tc.wantAmount || q.TermDays != tc.wantDays {
				t.Fatalf("got %v/%d, want %v/%d", q.Amount, q.TermDays, tc.wantAmount, tc.wantDays)
			}
			if q.Total != q.Amount+q.Interest {
				t.Fatalf("total mismatch: %+v", q)
			}
		})
	}
}
