package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hongminglow/labubu-portal/internal/dashboard"
	"github.com/hongminglow/labubu-portal/internal/http/respond"
	"github.com/hongminglow/labubu-portal/internal/middleware"
)

// DashboardHandler renders the authenticated overview.
type DashboardHandler struct {
	deps   dashboard.Deps
	logger *zap.Logger
}

func NewDashboardHandler(deps dashboard.Deps) *DashboardHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{deps: deps, logger: logger}
}

func (h *DashboardHandler) Register(r chi.Router) {
	r.Get("/api/dashboard", h.handle)
}

func (h *DashboardHandler) handle(w http.ResponseWriter, r *http.Request) {
	c := dashboard.New(h.deps)
	redirect, err := c.Mount(r.Context(), middleware.VisitorID(r.Context()))
	if err != nil {
		h.logger.Error("mount dashboard", zap.String("request_id", middleware.RequestID(r.Context())), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}
	if redirect != "" {
		respond.Redirect(w, http.StatusUnauthorized, "authentication required", redirect)
		return
	}
	c.SelectTab(dashboard.ParseTab(r.URL.Query().Get("tab")))
	respond.JSON(w, http.StatusOK, "ok", c.State())
}
