package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hongminglow/labubu-portal/internal/feedback"
	"github.com/hongminglow/labubu-portal/internal/http/respond"
	"github.com/hongminglow/labubu-portal/internal/middleware"
	"github.com/hongminglow/labubu-portal/internal/remote"
	"github.com/hongminglow/labubu-portal/internal/transfer"
)

// CardHandler serves the virtual card, its history, and peer transfers.
type CardHandler struct {
	card     *remote.CardClient
	sessions middleware.SessionLoader
	logger   *zap.Logger
}

func NewCardHandler(card *remote.CardClient, sessions middleware.SessionLoader, logger *zap.Logger) *CardHandler {
	return &CardHandler{card: card, sessions: sessions, logger: logger}
}

func (h *CardHandler) Register(r chi.Router) {
	r.Route("/api/card", func(r chi.Router) {
		r.Use(middleware.RequireSession(h.sessions, h.logger))
		r.Get("/", h.handleCard)
		r.Get("/transactions", h.handleTransactions)
		r.Post("/transfers", h.handleTransfer)
	})
}

func (h *CardHandler) handleCard(w http.ResponseWriter, r *http.Request) {
	res, err := h.card.Card(r.Context(), mustSession(r))
	if err != nil {
		respondUpstream(w, r, h.logger, err, feedback.MsgLoadFailed)
		return
	}
	if res.Card == nil {
		respond.Error(w, http.StatusNotFound, "card not found")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", res.Card)
}

func (h *CardHandler) handleTransactions(w http.ResponseWriter, r *http.Request) {
	res, err := h.card.Transactions(r.Context(), mustSession(r))
	if err != nil {
		respondUpstream(w, r, h.logger, err, feedback.MsgLoadFailed)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", transfer.Render(res.Transactions))
}

// handleTransfer submits a transfer and returns the card view with the reloaded history.
// The current balance is only reported back as the input bound.
func (h *CardHandler) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var fields transfer.Fields
	if err := decodeJSON(r, &fields); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	sess := mustSession(r)

	var balance float64
	if res, err := h.card.Card(r.Context(), sess); err == nil && res.Card != nil {
		balance = res.Card.Balance
	} else if err != nil {
		h.logger.Warn("load card before transfer", zap.Error(err))
	}

	c := transfer.New(h.card, sess, balance, h.logger)
	c.Open()
	if !c.Submit(r.Context(), fields) {
		st := c.State()
		msg := feedback.MsgTransferFailed
		if st.Error != nil {
			msg = st.Error.Text
		}
		respond.JSON(w, failureStatus(msg), msg, st)
		return
	}
	respond.JSON(w, http.StatusOK, "transfer completed", c.State())
}
