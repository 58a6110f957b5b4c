package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hongminglow/labubu-portal/internal/config"
	"github.com/hongminglow/labubu-portal/internal/dashboard"
	"github.com/hongminglow/labubu-portal/internal/http/handlers"
	"github.com/hongminglow/labubu-portal/internal/middleware"
	"github.com/hongminglow/labubu-portal/internal/remote"
	"github.com/hongminglow/labubu-portal/internal/session"
	"github.com/hongminglow/labubu-portal/internal/signup"
	"github.com/hongminglow/labubu-portal/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// Deps are the long-lived collaborators shared by every request.
type Deps struct {
	KV      storage.KV
	Clients remote.Clients
	Logger  *zap.Logger
	// Wait overrides the signup delay; nil uses signup.Sleep.
	Wait signup.Wait
}

// Handler builds the portal router.
func Handler(cfg config.Config, deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sessions := session.NewStore(deps.KV, logger)

	r := chi.NewRouter()
	r.Use(middleware.Logging(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Visitor(cfg.SessionCookie, cfg.SessionTTL))

	handlers.NewHealthHandler(time.Now()).Register(r)
	r.Handle("/metrics", promhttp.Handler())

	dash := dashboard.Deps{
		Sessions:      sessions,
		Loans:         deps.Clients.Loans,
		Referrals:     deps.Clients.Referrals,
		Card:          deps.Clients.Card,
		PublicBaseURL: cfg.PublicBaseURL,
		Logger:        logger,
	}
	handlers.NewLandingHandler(cfg.DailyRate).Register(r)
	handlers.NewSignupHandler(deps.KV, signup.Flags{SendCodeEnabled: cfg.SignupEnabled}, deps.Wait, logger).Register(r)
	handlers.NewAuthHandler(deps.Clients.Auth, sessions, logger).Register(r)
	handlers.NewDashboardHandler(dash).Register(r)
	handlers.NewLoansHandler(deps.Clients.Loans, dash, logger).Register(r)
	handlers.NewCardHandler(deps.Clients.Card, sessions, logger).Register(r)
	handlers.NewReferralsHandler(deps.Clients.Referrals, sessions, cfg.PublicBaseURL, logger).Register(r)

	return r
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, deps Deps) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           Handler(cfg, deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
