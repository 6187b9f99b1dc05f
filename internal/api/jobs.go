package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/vowly/vowly-backend/internal/worker"
)

// ─── POST /api/jobs/email-sequences ───────────────────────────────────────────

type runJobResponse struct {
	Success   bool         `json:"success"`
	Stats     worker.Stats `json:"stats"`
	Timestamp time.Time    `json:"timestamp"`
}

// handleRunEmailSequences runs the lifecycle email batch synchronously and
// returns the per-campaign counters. The platform scheduler calls this once a
// day with the cron secret; requireCronSecret has already vetted the caller.
//
// Whatever goes wrong inside the run, the scheduler gets a well-formed JSON
// verdict: per-candidate failures are inside stats.errors with HTTP 200, and
// only a batch-wide failure (candidate queries down, panic) produces the 500
// envelope.
func (s *Server) handleRunEmailSequences(w http.ResponseWriter, r *http.Request) {
	stats, err := s.runSequences(r)
	if err != nil {
		s.logger.Error("email sequences run failed",
			"error", err,
			"request_id", middleware.GetReqID(r.Context()),
		)
		respondErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	respond(w, http.StatusOK, runJobResponse{
		Success:   true,
		Stats:     stats,
		Timestamp: time.Now().UTC(),
	})
}

// ─── GET /api/jobs/email-sequences (non-production only) ─────────────────────

// handleRunEmailSequencesDev is the manual-testing alias: same run, reachable
// from a browser. Hidden entirely in production so the unauthenticated GET
// surface does not exist there.
func (s *Server) handleRunEmailSequencesDev(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Env == "production" {
		respondErr(w, http.StatusNotFound, "not found")
		return
	}
	s.handleRunEmailSequences(w, r)
}

// runSequences invokes the trigger with a panic net, so a crash anywhere in
// the batch surfaces as the failure envelope instead of tearing down the
// request.
func (s *Server) runSequences(r *http.Request) (stats worker.Stats, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("email sequences panic: %v", p)
		}
	}()
	return s.trigger.RunNow(r.Context())
}
