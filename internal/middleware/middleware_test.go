package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hongminglow/labubu-portal/internal/http/respond"
	"github.com/hongminglow/labubu-portal/internal/models"
	"github.com/hongminglow/labubu-portal/internal/session"
)

func echoVisitor() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(VisitorID(r.Context())))
	})
}

func TestVisitorIssuesCookie(t *testing.T) {
	h := Visitor("sid", time.Hour)(echoVisitor())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "sid" || !cookies[0].HttpOnly {
		t.Fatalf("cookies = %+v", cookies)
	}
	if rec.Body.String() != cookies[0].Value {
		t.Fatalf("context id %q != cookie %q", rec.Body.String(), cookies[0].Value)
	}
}

func TestVisitorKeepsValidCookie(t *testing.T) {
	id := uuid.NewString()
	h := Visitor("sid", time.Hour)(echoVisitor())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: id})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("no new cookie expected")
	}
	if rec.Body.String() != id {
		t.Fatalf("visitor = %q, want %q", rec.Body.String(), id)
	}
}

func TestVisitorReplacesForgedCookie(t *testing.T) {
	h := Visitor("sid", time.Hour)(echoVisitor())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "../../etc"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if _, err := uuid.Parse(rec.Body.String()); err != nil {
		t.Fatalf("visitor id %q is not a uuid", rec.Body.String())
	}
}

type loaderFunc func(ctx context.Context, sid string) (models.Session, error)

func (f loaderFunc) Load(ctx context.Context, sid string) (models.Session, error) {
	return f(ctx, sid)
}

func TestRequireSession(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := SessionFrom(r.Context())
		if !ok || sess.Token != "tok" {
			t.Errorf("session = %+v, %v", sess, ok)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	cases := []struct {
		name   string
		loader loaderFunc
		want   int
	}{
		{"authenticated", func(context.Context, string) (models.Session, error) {
			return models.Session{Token: "tok", User: &models.User{ID: 1}}, nil
		}, http.StatusNoContent},
		{"anonymous", func(context.Context, string) (models.Session, error) {
			return models.Session{}, session.ErrNotAuthenticated
		}, http.StatusUnauthorized},
		{"storage down", func(context.Context, string) (models.Session, error) {
			return models.Session{}, errors.New("connection refused")
		}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RequireSession(tc.loader, zap.NewNop())(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
			if tc.want == http.StatusUnauthorized {
				var env respond.Envelope
				if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if env.Redirect != LoginRoute {
					t.Fatalf("redirect = %q", env.Redirect)
				}
			}
		})
	}
}

func TestLoggingSetsRequestID(t *testing.T) {
	var seen string
	h := Logging(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if seen == "" || rec.Header().Get(HeaderRequestID) != seen {
		t.Fatalf("request id header %q, context %q", rec.Header().Get(HeaderRequestID), seen)
	}
}

func preflight(h http.Handler, origin string) http.Header {
	req := httptest.NewRequest(http.MethodOptions, "/api/card/transfers", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Header()
}

func TestCORSWildcardNeverAllowsCredentials(t *testing.T) {
	h := CORS([]string{"*"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	got := preflight(h, "https://evil.example")
	if acao := got.Get("Access-Control-Allow-Origin"); acao != "*" {
		t.Fatalf("allow origin = %q, want *", acao)
	}
	if acac := got.Get("Access-Control-Allow-Credentials"); acac != "" {
		t.Fatalf("allow credentials = %q for a wildcard origin", acac)
	}
}

func TestCORSListedOriginsGetCredentials(t *testing.T) {
	h := CORS([]string{"https://portal.example"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	got := preflight(h, "https://portal.example")
	if got.Get("Access-Control-Allow-Origin") != "https://portal.example" || got.Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatalf("listed origin headers = %v", got)
	}

	got = preflight(h, "https://evil.example")
	if acao := got.Get("Access-Control-Allow-Origin"); acao != "" {
		t.Fatalf("unlisted origin allowed: %q", acao)
	}
	if acac := got.Get("Access-Control-Allow-Credentials"); acac != "" {
		t.Fatalf("unlisted origin got credentials: %q", acac)
	}
}
