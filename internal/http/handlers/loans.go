package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hongminglow/labubu-portal/internal/dashboard"
	"github.com/hongminglow/labubu-portal/internal/feedback"
	"github.com/hongminglow/labubu-portal/internal/http/respond"
	"github.com/hongminglow/labubu-portal/internal/loanform"
	"github.com/hongminglow/labubu-portal/internal/middleware"
	"github.com/hongminglow/labubu-portal/internal/models"
	"github.com/hongminglow/labubu-portal/internal/remote"
)

// LoanView is a loan with its display badge.
type LoanView struct {
	models.Loan
	Badge string `json:"badge"`
}

func loanViews(loans []models.Loan) []LoanView {
	out := make([]LoanView, 0, len(loans))
	for _, l := range loans {
		out = append(out, LoanView{Loan: l, Badge: l.Status.Badge()})
	}
	return out
}

// LoansHandler serves loan applications, previews, and the loan list.
type LoansHandler struct {
	loans     *remote.LoanClient
	dashboard dashboard.Deps
	sessions  middleware.SessionLoader
	logger    *zap.Logger
}

// NewLoansHandler builds the handler. The dashboard deps are used to refresh loan aggregates
// after an application is accepted.
func NewLoansHandler(loans *remote.LoanClient, dash dashboard.Deps, logger *zap.Logger) *LoansHandler {
	return &LoansHandler{loans: loans, dashboard: dash, sessions: dash.Sessions, logger: logger}
}

func (h *LoansHandler) Register(r chi.Router) {
	r.Get("/api/loans/preview", h.handlePreview)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(h.sessions, h.logger))
		r.Post("/api/loans", h.handleCreate)
		r.Get("/api/loans", h.handleList)
		r.Get("/api/loans/{id}", h.handleGet)
	})
}

type loanFormView struct {
	loanform.State
	Dashboard *dashboard.State `json:"dashboard,omitempty"`
}

type previewView struct {
	TermOptions []int             `json:"term_options"`
	MinAmount   int               `json:"min_amount"`
	MaxAmount   int               `json:"max_amount"`
	Preview     *loanform.Preview `json:"preview"`
}

func (h *LoansHandler) handlePreview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	respond.JSON(w, http.StatusOK, "ok", previewView{
		TermOptions: loanform.TermOptions,
		MinAmount:   loanform.MinAmount,
		MaxAmount:   loanform.MaxAmount,
		Preview:     loanform.PreviewFor(loanform.Fields{Amount: q.Get("amount"), TermDays: q.Get("term_days")}),
	})
}

// handleCreate submits the application and, on success, returns the refreshed loan aggregates.
func (h *LoansHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var fields loanform.Fields
	if err := decodeJSON(r, &fields); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	dash := dashboard.Resume(h.dashboard, mustSession(r))
	form := loanform.New(h.loans, mustSession(r), dash.LoanCreated, h.logger)

	if !form.Submit(r.Context(), fields) {
		st := form.State()
		msg := feedback.MsgLoanFailed
		if st.Error != nil {
			msg = st.Error.Text
		}
		respond.JSON(w, failureStatus(msg), msg, loanFormView{State: st})
		return
	}
	ds := dash.State()
	respond.JSON(w, http.StatusCreated, "loan application submitted", loanFormView{State: form.State(), Dashboard: &ds})
}

func (h *LoansHandler) handleList(w http.ResponseWriter, r *http.Request) {
	status := models.LoanStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Known() {
		respond.Error(w, http.StatusBadRequest, "unknown loan status")
		return
	}
	res, err := h.loans.List(r.Context(), mustSession(r), status)
	if err != nil {
		respondUpstream(w, r, h.logger, err, feedback.MsgLoadFailed)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", loanViews(res.Loans))
}

func (h *LoansHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(w, http.StatusBadRequest, "invalid loan id")
		return
	}
	res, err := h.loans.GetByID(r.Context(), mustSession(r), id)
	if err != nil {
		respondUpstream(w, r, h.logger, err, feedback.MsgLoadFailed)
		return
	}
	if res.Loan == nil {
		respond.Error(w, http.StatusNotFound, "loan not found")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", LoanView{Loan: *res.Loan, Badge: res.Loan.Status.Badge()})
}
