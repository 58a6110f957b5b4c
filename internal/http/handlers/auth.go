package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hongminglow/labubu-portal/internal/authform"
	"github.com/hongminglow/labubu-portal/internal/feedback"
	"github.com/hongminglow/labubu-portal/internal/http/respond"
	"github.com/hongminglow/labubu-portal/internal/middleware"
	"github.com/hongminglow/labubu-portal/internal/remote"
	"github.com/hongminglow/labubu-portal/internal/session"
)

// AuthHandler owns login, registration, logout, and profile refresh on behalf of the visitor.
type AuthHandler struct {
	auth     *remote.AuthClient
	sessions *session.Store
	logger   *zap.Logger
}

func NewAuthHandler(auth *remote.AuthClient, sessions *session.Store, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, logger: logger}
}

func (h *AuthHandler) Register(r chi.Router) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Get("/form", h.handleForm)
		r.Post("/login", h.submit(authform.Login))
		r.Post("/register", h.submit(authform.Register))
		r.Post("/logout", h.handleLogout)
		r.With(middleware.RequireSession(h.sessions, h.logger)).Get("/profile", h.handleProfile)
	})
}

type authFormView struct {
	authform.State
	ReferralCode      string `json:"referral_code,omitempty"`
	MinPasswordLength int    `json:"min_password_length"`
	Authenticated     bool   `json:"authenticated"`
}

// handleForm returns the initial form. A ?ref= code opens registration with the code filled in.
func (h *AuthHandler) handleForm(w http.ResponseWriter, r *http.Request) {
	sid := middleware.VisitorID(r.Context())
	c := authform.New(h.auth, h.sessions, sid, h.logger)
	ref := strings.TrimSpace(r.URL.Query().Get("ref"))
	if ref != "" {
		c.SetMode(authform.Register)
	}
	respond.JSON(w, http.StatusOK, "ok", authFormView{
		State:             c.State(),
		ReferralCode:      ref,
		MinPasswordLength: authform.MinPasswordLength,
		Authenticated:     h.sessions.IsAuthenticated(r.Context(), sid),
	})
}

func (h *AuthHandler) submit(mode authform.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var fields authform.Fields
		if err := decodeJSON(r, &fields); err != nil {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		c := authform.New(h.auth, h.sessions, middleware.VisitorID(r.Context()), h.logger)
		c.SetMode(mode)

		route := c.Submit(r.Context(), fields)
		st := c.State()
		if route == "" {
			msg := feedback.MsgLoginFailed
			if st.Error != nil {
				msg = st.Error.Text
			}
			respond.JSON(w, failureStatus(msg), msg, st)
			return
		}
		respond.RedirectWith(w, http.StatusOK, "ok", route, st)
	}
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context(), middleware.VisitorID(r.Context())); err != nil {
		h.logger.Error("logout", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to log out")
		return
	}
	respond.Redirect(w, http.StatusOK, "logged out", "/")
}

// handleProfile re-fetches the user from the auth service and stores it.
func (h *AuthHandler) handleProfile(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)
	res, err := h.auth.GetProfile(r.Context(), sess.Token)
	if err != nil {
		respondUpstream(w, r, h.logger, err, feedback.MsgLoadFailed)
		return
	}
	if res.User == nil {
		respond.JSON(w, http.StatusOK, "ok", sess.User)
		return
	}
	if err := h.sessions.SaveUser(r.Context(), middleware.VisitorID(r.Context()), *res.User); err != nil {
		h.logger.Error("save refreshed user", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to save profile")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", res.User)
}
