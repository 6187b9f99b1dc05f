// Package api implements the HTTP surface of the lifecycle email service:
// the authenticated trigger endpoint the platform scheduler POSTs once a day,
// plus a health check. Handlers are methods on *Server.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vowly/vowly-backend/internal/worker"
)

// Config holds values read from environment variables at startup.
type Config struct {
	// CronSecret is the shared secret the scheduler presents as a Bearer
	// token. Enforced only when Env is "production".
	CronSecret string

	// Env is "production", "staging", or "development".
	Env string
}

// Server holds all shared dependencies. Each handler file attaches methods to
// this type and uses only the fields it needs.
type Server struct {
	// trigger runs the email batch on demand.
	trigger worker.Trigger

	cfg    Config
	logger *slog.Logger
}

// NewServer constructs the Server and wires the chi router. The returned
// http.Handler is ready to pass to http.ListenAndServe.
func NewServer(trigger worker.Trigger, cfg Config, logger *slog.Logger) http.Handler {
	s := &Server{
		trigger: trigger,
		cfg:     cfg,
		logger:  logger,
	}
	return s.routes()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	// ── Global middleware ─────────────────────────────────────────────────────
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggerMiddleware)
	r.Use(middleware.Recoverer)
	// Generous — the batch runs inside the request when triggered over HTTP.
	r.Use(middleware.Timeout(15 * time.Minute))

	// ── Health ────────────────────────────────────────────────────────────────
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// ── Jobs ──────────────────────────────────────────────────────────────────
	r.Route("/api/jobs", func(r chi.Router) {
		r.With(s.requireCronSecret).Post("/email-sequences", s.handleRunEmailSequences)

		// GET alias for manual testing. Never available in production.
		r.Get("/email-sequences", s.handleRunEmailSequencesDev)
	})

	return r
}
