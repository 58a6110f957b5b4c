// Package dashboard aggregates the authenticated visitor's loans, card, and referral data.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hongminglow/labubu-portal/internal/metrics"
	"github.com/hongminglow/labubu-portal/internal/models"
	"github.com/hongminglow/labubu-portal/internal/models/dto"
	"github.com/hongminglow/labubu-portal/internal/session"
)

// LoginRoute is where unauthenticated visitors are sent.
const LoginRoute = "/login"

type Tab string

const (
	TabOverview  Tab = "overview"
	TabLoans     Tab = "loans"
	TabCard      Tab = "card"
	TabReferrals Tab = "referrals"
)

// ParseTab accepts a tab name, defaulting to the overview.
func ParseTab(raw string) Tab {
	switch Tab(strings.ToLower(strings.TrimSpace(raw))) {
	case TabLoans:
		return TabLoans
	case TabCard:
		return TabCard
	case TabReferrals:
		return TabReferrals
	default:
		return TabOverview
	}
}

type SessionLoader interface {
	Load(ctx context.Context, sid string) (models.Session, error)
}

type LoanService interface {
	Stats(ctx context.Context, sess models.Session) (dto.LoanStatsResult, error)
	List(ctx context.Context, sess models.Session, status models.LoanStatus) (dto.LoanListResult, error)
}

type ReferralService interface {
	Stats(ctx context.Context, sess models.Session) (dto.ReferralStatsResult, error)
}

type CardService interface {
	Card(ctx context.Context, sess models.Session) (dto.CardResult, error)
}

// Deps are the collaborators of the controller.
type Deps struct {
	Sessions      SessionLoader
	Loans         LoanService
	Referrals     ReferralService
	Card          CardService
	PublicBaseURL string
	Logger        *zap.Logger
}

// State is the renderable dashboard.
type State struct {
	Tab           Tab                   `json:"tab"`
	Loading       bool                  `json:"loading"`
	User          *models.User          `json:"user,omitempty"`
	LoanStats     *models.LoanStats     `json:"loan_stats,omitempty"`
	ReferralStats *models.ReferralStats `json:"referral_stats,omitempty"`
	ReferralCode  string                `json:"referral_code"`
	ReferralLink  string                `json:"referral_link,omitempty"`
	Card          *models.VirtualCard   `json:"card,omitempty"`
	Loans         []models.Loan         `json:"loans"`
	LoanFormOpen  bool                  `json:"loan_form_open"`
}

type Controller struct {
	deps   Deps
	logger *zap.Logger
	sess   models.Session
	state  State
}

func New(deps Deps) *Controller {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		deps:   deps,
		logger: logger,
		state:  State{Tab: TabOverview, Loans: []models.Loan{}},
	}
}

// Resume builds a controller for a session that was already loaded, without fetching anything.
func Resume(deps Deps, sess models.Session) *Controller {
	c := New(deps)
	c.sess = sess
	c.state.User = sess.User
	return c
}

// Mount requires an authenticated session and then loads every aggregate.
// It returns LoginRoute when the visitor must sign in first.
func (c *Controller) Mount(ctx context.Context, sid string) (string, error) {
	sess, err := c.deps.Sessions.Load(ctx, sid)
	if err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			return LoginRoute, nil
		}
		return "", fmt.Errorf("load session: %w", err)
	}
	c.sess = sess
	c.state.User = sess.User
	c.Load(ctx)
	return "", nil
}

// Session returns the session the controller was mounted with.
func (c *Controller) Session() models.Session {
	return c.sess
}

// Load fetches loan stats, referral stats, the card, and the loan list in parallel.
// A failed fetch leaves its aggregate untouched and never blocks the others.
func (c *Controller) Load(ctx context.Context) {
	c.state.Loading = true
	defer func() { c.state.Loading = false }()

	var (
		loanStats *dto.LoanStatsResult
		refStats  *dto.ReferralStatsResult
		card      *dto.CardResult
		loans     *dto.LoanListResult
	)
	g := new(errgroup.Group)
	c.fetch(g, "loan_stats", func() error {
		res, err := c.deps.Loans.Stats(ctx, c.sess)
		if err == nil {
			loanStats = &res
		}
		return err
	})
	c.fetch(g, "referral_stats", func() error {
		res, err := c.deps.Referrals.Stats(ctx, c.sess)
		if err == nil {
			refStats = &res
		}
		return err
	})
	c.fetch(g, "card", func() error {
		res, err := c.deps.Card.Card(ctx, c.sess)
		if err == nil {
			card = &res
		}
		return err
	})
	c.fetch(g, "loans", func() error {
		res, err := c.deps.Loans.List(ctx, c.sess, "")
		if err == nil {
			loans = &res
		}
		return err
	})
	_ = g.Wait()

	c.applyLoanStats(loanStats)
	c.applyLoans(loans)
	if refStats != nil && refStats.Stats != nil {
		c.state.ReferralStats = refStats.Stats
		c.state.ReferralCode = refStats.ReferralCode
		c.state.ReferralLink = ReferralLink(c.deps.PublicBaseURL, refStats.ReferralCode)
	}
	if card != nil && card.Card != nil {
		c.state.Card = card.Card
	}
}

// LoanCreated closes the application modal and refreshes loan stats and the loan list.
func (c *Controller) LoanCreated(ctx context.Context) {
	c.state.LoanFormOpen = false

	var (
		loanStats *dto.LoanStatsResult
		loans     *dto.LoanListResult
	)
	g := new(errgroup.Group)
	c.fetch(g, "loan_stats", func() error {
		res, err := c.deps.Loans.Stats(ctx, c.sess)
		if err == nil {
			loanStats = &res
		}
		return err
	})
	c.fetch(g, "loans", func() error {
		res, err := c.deps.Loans.List(ctx, c.sess, "")
		if err == nil {
			loans = &res
		}
		return err
	})
	_ = g.Wait()

	c.applyLoanStats(loanStats)
	c.applyLoans(loans)
}

func (c *Controller) SelectTab(tab Tab) {
	c.state.Tab = tab
}

func (c *Controller) OpenLoanForm() {
	c.state.LoanFormOpen = true
}

func (c *Controller) CloseLoanForm() {
	c.state.LoanFormOpen = false
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) applyLoanStats(res *dto.LoanStatsResult) {
	if res != nil && res.Stats != nil {
		c.state.LoanStats = res.Stats
	}
}

func (c *Controller) applyLoans(res *dto.LoanListResult) {
	if res != nil && res.Loans != nil {
		c.state.Loans = res.Loans
	}
}

// fetch runs fn on g. Failures and panics are logged and swallowed so one aggregate
// cannot hold back the rest.
func (c *Controller) fetch(g *errgroup.Group, name string, fn func() error) {
	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				c.logger.Error("dashboard fetch panicked", zap.String("aggregate", name), zap.Any("panic", r))
				metrics.SkippedAggregate(name)
			}
		}()
		if err := fn(); err != nil {
			c.logger.Warn("dashboard fetch failed", zap.String("aggregate", name), zap.Error(err))
			metrics.SkippedAggregate(name)
		}
		return nil
	})
}

// ReferralLink is the shareable signup link for code.
func ReferralLink(baseURL, code string) string {
	if code == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + LoginRoute + "?ref=" + url.QueryEscape(code)
}
