package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type visitorKey struct{}

// VisitorID returns the visitor session id set by Visitor, or "".
func VisitorID(ctx context.Context) string {
	sid, _ := ctx.Value(visitorKey{}).(string)
	return sid
}

// WithVisitorID stores sid on ctx.
func WithVisitorID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, visitorKey{}, sid)
}

// Visitor ensures every request carries a visitor session id. A missing or malformed
// cookie is replaced by a fresh UUID.
func Visitor(cookieName string, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := ""
			if c, err := r.Cookie(cookieName); err == nil {
				if id, err := uuid.Parse(c.Value); err == nil {
					sid = id.String()
				}
			}
			if sid == "" {
				sid = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    sid,
					Path:     "/",
					MaxAge:   int(ttl / time.Second),
					HttpOnly: true,
					Secure:   r.TLS != nil,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(WithVisitorID(r.Context(), sid)))
		})
	}
}
