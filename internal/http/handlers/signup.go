package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hongminglow/labubu-portal/internal/http/respond"
	"github.com/hongminglow/labubu-portal/internal/middleware"
	"github.com/hongminglow/labubu-portal/internal/signup"
	"github.com/hongminglow/labubu-portal/internal/storage"
)

// SignupKey is the storage key of the signup snapshot within a visitor's namespace.
const SignupKey = "signup"

// SignupHandler serves the landing page phone/code teaser. Progress is kept per visitor.
type SignupHandler struct {
	kv     storage.KV
	flags  signup.Flags
	wait   signup.Wait
	logger *zap.Logger
}

// NewSignupHandler builds the handler. A nil wait uses signup.Sleep.
func NewSignupHandler(kv storage.KV, flags signup.Flags, wait signup.Wait, logger *zap.Logger) *SignupHandler {
	return &SignupHandler{kv: kv, flags: flags, wait: wait, logger: logger}
}

func (h *SignupHandler) Register(r chi.Router) {
	r.Route("/api/signup", func(r chi.Router) {
		r.Get("/", h.step(nil))
		r.Post("/phone", h.step(func(_ context.Context, m *signup.Machine, in signupInput) error {
			m.SetPhone(in.Phone)
			return nil
		}))
		r.Post("/send-code", h.step(func(ctx context.Context, m *signup.Machine, _ signupInput) error {
			return m.SendCode(ctx)
		}))
		r.Post("/resend-code", h.step(func(ctx context.Context, m *signup.Machine, _ signupInput) error {
			return m.ResendCode(ctx)
		}))
		r.Post("/code", h.step(func(_ context.Context, m *signup.Machine, in signupInput) error {
			m.SetCode(in.Code)
			return nil
		}))
		r.Post("/verify", h.step(func(ctx context.Context, m *signup.Machine, _ signupInput) error {
			return m.VerifyCode(ctx)
		}))
		r.Post("/change-number", h.step(func(_ context.Context, m *signup.Machine, _ signupInput) error {
			return m.ChangeNumber()
		}))
	})
}

type signupInput struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type signupAction func(ctx context.Context, m *signup.Machine, in signupInput) error

// step restores the visitor's machine, applies action, and persists the result.
func (h *SignupHandler) step(action signupAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sid := middleware.VisitorID(ctx)

		var in signupInput
		if r.Method == http.MethodPost && r.ContentLength != 0 {
			if err := decodeJSON(r, &in); err != nil {
				respond.Error(w, http.StatusBadRequest, err.Error())
				return
			}
		}

		m, err := h.load(ctx, sid)
		if err != nil {
			h.logger.Error("load signup state", zap.String("sid", sid), zap.Error(err))
			respond.Error(w, http.StatusInternalServerError, "failed to load signup state")
			return
		}
		if action != nil {
			if err := action(ctx, m, in); err != nil {
				respond.JSON(w, signupStatus(err), err.Error(), m.State())
				return
			}
			if err := h.save(ctx, sid, m); err != nil {
				h.logger.Error("save signup state", zap.String("sid", sid), zap.Error(err))
				respond.Error(w, http.StatusInternalServerError, "failed to save signup state")
				return
			}
		}
		respond.JSON(w, http.StatusOK, "ok", m.State())
	}
}

func (h *SignupHandler) load(ctx context.Context, sid string) (*signup.Machine, error) {
	raw, err := h.kv.Get(ctx, sid, SignupKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return signup.New(h.flags, h.wait), nil
		}
		return nil, err
	}
	var snap signup.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		h.logger.Warn("discarding malformed signup state", zap.String("sid", sid), zap.Error(err))
		return signup.New(h.flags, h.wait), nil
	}
	return signup.Restore(h.flags, h.wait, snap), nil
}

func (h *SignupHandler) save(ctx context.Context, sid string, m *signup.Machine) error {
	raw, err := json.Marshal(m.Snapshot())
	if err != nil {
		return fmt.Errorf("encode signup state: %w", err)
	}
	return h.kv.Set(ctx, sid, SignupKey, string(raw))
}

func signupStatus(err error) int {
	switch {
	case errors.Is(err, signup.ErrSendDisabled):
		return http.StatusForbidden
	case errors.Is(err, signup.ErrWrongStep):
		return http.StatusConflict
	case errors.Is(err, signup.ErrIncomplete):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusServiceUnavailable
	}
}
