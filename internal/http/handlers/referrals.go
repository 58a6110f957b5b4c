package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hongminglow/labubu-portal/internal/dashboard"
	"github.com/hongminglow/labubu-portal/internal/feedback"
	"github.com/hongminglow/labubu-portal/internal/http/respond"
	"github.com/hongminglow/labubu-portal/internal/middleware"
	"github.com/hongminglow/labubu-portal/internal/models"
	"github.com/hongminglow/labubu-portal/internal/remote"
)

// ReferralsHandler serves the referral program: stats, shareable link, referrals, and bonuses.
type ReferralsHandler struct {
	referrals     *remote.ReferralClient
	sessions      middleware.SessionLoader
	publicBaseURL string
	logger        *zap.Logger
}

func NewReferralsHandler(referrals *remote.ReferralClient, sessions middleware.SessionLoader, publicBaseURL string, logger *zap.Logger) *ReferralsHandler {
	return &ReferralsHandler{referrals: referrals, sessions: sessions, publicBaseURL: publicBaseURL, logger: logger}
}

func (h *ReferralsHandler) Register(r chi.Router) {
	r.Route("/api/referrals", func(r chi.Router) {
		r.Use(middleware.RequireSession(h.sessions, h.logger))
		r.Get("/", h.handleStats)
		r.Get("/list", h.handleList)
		r.Get("/bonuses", h.handleBonuses)
	})
}

type referralStatsView struct {
	ReferralCode string               `json:"referral_code"`
	ReferralLink string               `json:"referral_link"`
	Stats        models.ReferralStats `json:"stats"`
}

func (h *ReferralsHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	res, err := h.referrals.Stats(r.Context(), mustSession(r))
	if err != nil {
		respondUpstream(w, r, h.logger, err, feedback.MsgLoadFailed)
		return
	}
	view := referralStatsView{
		ReferralCode: res.ReferralCode,
		ReferralLink: dashboard.ReferralLink(h.publicBaseURL, res.ReferralCode),
	}
	if res.Stats != nil {
		view.Stats = *res.Stats
	}
	respond.JSON(w, http.StatusOK, "ok", view)
}

func (h *ReferralsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	res, err := h.referrals.List(r.Context(), mustSession(r))
	if err != nil {
		respondUpstream(w, r, h.logger, err, feedback.MsgLoadFailed)
		return
	}
	referrals := res.Referrals
	if referrals == nil {
		referrals = []models.Referral{}
	}
	respond.JSON(w, http.StatusOK, "ok", referrals)
}

func (h *ReferralsHandler) handleBonuses(w http.ResponseWriter, r *http.Request) {
	res, err := h.referrals.BonusHistory(r.Context(), mustSession(r))
	if err != nil {
		respondUpstream(w, r, h.logger, err, feedback.MsgLoadFailed)
		return
	}
	bonuses := res.Bonuses
	if bonuses == nil {
		bonuses = []models.ReferralBonus{}
	}
	respond.JSON(w, http.StatusOK, "ok", bonuses)
}
