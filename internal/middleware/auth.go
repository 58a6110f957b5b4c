package middleware

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/hongminglow/labubu-portal/internal/http/respond"
	"github.com/hongminglow/labubu-portal/internal/models"
	"github.com/hongminglow/labubu-portal/internal/session"
)

// LoginRoute is returned to unauthenticated callers as the redirect target.
const LoginRoute = "/login"

type SessionLoader interface {
	Load(ctx context.Context, sid string) (models.Session, error)
}

type sessionKey struct{}

// SessionFrom returns the session attached by RequireSession.
func SessionFrom(ctx context.Context) (models.Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(models.Session)
	return sess, ok
}

// RequireSession rejects requests without an authenticated session with 401 and a
// redirect to LoginRoute.
func RequireSession(sessions SessionLoader, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sessions.Load(r.Context(), VisitorID(r.Context()))
			if err != nil {
				if errors.Is(err, session.ErrNotAuthenticated) {
					respond.Redirect(w, http.StatusUnauthorized, "authentication required", LoginRoute)
					return
				}
				logger.Error("load session", zap.String("request_id", RequestID(r.Context())), zap.Error(err))
				respond.Error(w, http.StatusInternalServerError, "failed to load session")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess)))
		})
	}
}
