// Package transfer drives the peer transfer form and transaction history of the virtual card.
package transfer

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hongminglow/labubu-portal/internal/feedback"
	"github.com/hongminglow/labubu-portal/internal/models"
	"github.com/hongminglow/labubu-portal/internal/models/dto"
)

type CardService interface {
	Transactions(ctx context.Context, sess models.Session) (dto.TransactionsResult, error)
	CreateTransfer(ctx context.Context, sess models.Session, phone string, amount float64, comment string) (dto.TransferResult, error)
}

// Fields are the raw transfer inputs. Comment is optional.
type Fields struct {
	Phone   string `json:"phone"`
	Amount  string `json:"amount"`
	Comment string `json:"comment"`
}

// Entry is a transaction prepared for display.
type Entry struct {
	models.CardTransaction
	Debit   bool   `json:"debit"`
	Display string `json:"display"`
}

// Render signs each transaction by its type: transfers debit, everything else credits.
func Render(txs []models.CardTransaction) []Entry {
	out := make([]Entry, 0, len(txs))
	for _, tx := range txs {
		debit := tx.IsDebit()
		out = append(out, Entry{CardTransaction: tx, Debit: debit, Display: feedback.SignedRub(tx.Amount, debit)})
	}
	return out
}

// State is the renderable card view.
type State struct {
	FormOpen     bool                 `json:"form_open"`
	Fields       Fields               `json:"fields"`
	MaxAmount    float64              `json:"max_amount"`
	Loading      bool                 `json:"loading"`
	Transactions []Entry              `json:"transactions"`
	Receipt      *dto.TransferReceipt `json:"receipt,omitempty"`
	Error        *feedback.Message    `json:"error,omitempty"`
}

type Controller struct {
	card    CardService
	sess    models.Session
	balance float64
	logger  *zap.Logger

	open    bool
	fields  Fields
	loading bool
	txs     []models.CardTransaction
	receipt *dto.TransferReceipt
	errs    feedback.Reporter
}

// New builds a controller for the card with the given balance. Failures are reported as alerts.
func New(card CardService, sess models.Session, balance float64, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		card:    card,
		sess:    sess,
		balance: balance,
		logger:  logger,
		errs:    feedback.NewAlert(),
	}
}

// Mount loads the transaction history once.
func (c *Controller) Mount(ctx context.Context) {
	c.reload(ctx)
}

func (c *Controller) Open() {
	c.open = true
}

func (c *Controller) Close() {
	c.open = false
}

// Submit sends the transfer. The balance only bounds the input; it is not checked here.
func (c *Controller) Submit(ctx context.Context, f Fields) bool {
	c.errs.Clear()
	c.fields = f

	amount, err := decimal.NewFromString(strings.TrimSpace(f.Amount))
	if err != nil {
		c.errs.Report(feedback.MsgInvalidAmount)
		return false
	}

	c.loading = true
	defer func() { c.loading = false }()

	res, err := c.card.CreateTransfer(ctx, c.sess, strings.TrimSpace(f.Phone), amount.InexactFloat64(), f.Comment)
	if err != nil {
		c.logger.Info("transfer failed", zap.Error(err))
		c.errs.Report(feedback.Describe(err, feedback.MsgTransferFailed))
		return false
	}

	c.receipt = res.Transaction
	if res.Transaction != nil {
		c.balance = res.Transaction.NewBalance
	}
	c.fields = Fields{}
	c.open = false
	c.reload(ctx)
	return true
}

func (c *Controller) State() State {
	return State{
		FormOpen:     c.open,
		Fields:       c.fields,
		MaxAmount:    c.balance,
		Loading:      c.loading,
		Transactions: Render(c.txs),
		Receipt:      c.receipt,
		Error:        c.errs.Current(),
	}
}

// reload replaces the history on success and keeps the previous list otherwise.
func (c *Controller) reload(ctx context.Context) {
	res, err := c.card.Transactions(ctx, c.sess)
	if err != nil {
		c.logger.Warn("load transactions failed", zap.Error(err))
		return
	}
	c.txs = res.Transactions
}
