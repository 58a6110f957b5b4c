// Package loanform validates, previews, and submits a loan application.
package loanform

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hongminglow/labubu-portal/internal/calculator"
	"github.com/hongminglow/labubu-portal/internal/feedback"
	"github.com/hongminglow/labubu-portal/internal/models"
	"github.com/hongminglow/labubu-portal/internal/models/dto"
)

const (
	MinAmount       = 1000
	MaxAmount       = 100000
	MinTermDays     = 7
	MaxTermDays     = 365
	DefaultTermDays = 30
)

// TermOptions are the terms offered by the term selector.
var TermOptions = []int{7, 14, 21, 30, 60, 90}

// LoanCreator submits applications upstream.
type LoanCreator interface {
	Create(ctx context.Context, sess models.Session, amount float64, termDays int, purpose string) (dto.CreateLoanResult, error)
}

// Fields are the raw form inputs.
type Fields struct {
	Amount   string `json:"amount"`
	TermDays string `json:"term_days"`
	Purpose  string `json:"purpose"`
}

// Preview is the live cost estimate shown under the form.
type Preview struct {
	Amount   float64 `json:"amount"`
	TermDays int     `json:"term_days"`
	calculator.Cost
}

// PreviewFor prices the current inputs without rounding. It returns nil while the amount is empty.
// Unparsable input prices as a zero amount or the default term.
func PreviewFor(f Fields) *Preview {
	if strings.TrimSpace(f.Amount) == "" {
		return nil
	}
	amount, ok := parseAmount(f.Amount)
	if !ok {
		amount = 0
	}
	days, err := strconv.Atoi(strings.TrimSpace(f.TermDays))
	if err != nil || days == 0 {
		days = DefaultTermDays
	}
	return &Preview{Amount: amount, TermDays: days, Cost: calculator.Unrounded(amount, days)}
}

// Validate checks the bounds enforced before submission and returns the parsed values,
// or the message to show.
func Validate(f Fields) (amount float64, termDays int, msg string) {
	amount, ok := parseAmount(f.Amount)
	if !ok || amount < MinAmount || amount > MaxAmount {
		return 0, 0, feedback.MsgAmountOutOfRange
	}
	termDays, err := strconv.Atoi(strings.TrimSpace(f.TermDays))
	if err != nil || termDays < MinTermDays || termDays > MaxTermDays {
		return 0, 0, feedback.MsgTermOutOfRange
	}
	return amount, termDays, ""
}

// State is the renderable form state.
type State struct {
	Loading bool              `json:"loading"`
	Error   *feedback.Message `json:"error,omitempty"`
}

// Form submits one application on behalf of a session.
type Form struct {
	loans     LoanCreator
	sess      models.Session
	onSuccess func(ctx context.Context)
	logger    *zap.Logger

	loading bool
	errs    feedback.Reporter
}

// New builds a form. onSuccess runs after the loan service accepts the application.
func New(loans LoanCreator, sess models.Session, onSuccess func(ctx context.Context), logger *zap.Logger) *Form {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Form{
		loans:     loans,
		sess:      sess,
		onSuccess: onSuccess,
		logger:    logger,
		errs:      feedback.NewInline(),
	}
}

func (f *Form) State() State {
	return State{Loading: f.loading, Error: f.errs.Current()}
}

// Submit validates and sends the application. It reports whether the loan service accepted it.
func (f *Form) Submit(ctx context.Context, fields Fields) bool {
	f.errs.Clear()

	amount, termDays, msg := Validate(fields)
	if msg != "" {
		f.errs.Report(msg)
		return false
	}

	f.loading = true
	defer func() { f.loading = false }()

	if _, err := f.loans.Create(ctx, f.sess, amount, termDays, fields.Purpose); err != nil {
		f.logger.Info("loan application failed", zap.Error(err))
		f.errs.Report(feedback.Describe(err, feedback.MsgLoanFailed))
		return false
	}
	if f.onSuccess != nil {
		f.onSuccess(ctx)
	}
	return true
}

func parseAmount(raw string) (float64, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}
