package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/vowly/vowly-backend/internal/store"
)

// ─── TRIGGER INTERFACE ────────────────────────────────────────────────────────

// Trigger is the narrow interface the api package uses to run the batch on
// demand. Keeping it here (not in api/) means api/ does not need to import
// the concrete Runner or Job types.
//
// The concrete implementation is *Runner. In tests, any struct with a RunNow
// method satisfies the interface.
type Trigger interface {
	RunNow(ctx context.Context) (Stats, error)
}

// ─── RUNNER ───────────────────────────────────────────────────────────────────

// Runner serialises batch runs behind the per-date advisory lock and, when an
// interval is configured, schedules them itself. Deployments with an external
// scheduler (a platform cron POSTing the trigger endpoint) set the interval
// to zero and rely on RunNow alone.
type Runner struct {
	job      *Job
	store    *store.Store
	interval time.Duration
	logger   *slog.Logger
}

// NewRunner constructs a Runner. interval <= 0 disables the internal
// scheduler; RunNow still works.
func NewRunner(job *Job, st *store.Store, interval time.Duration, logger *slog.Logger) *Runner {
	return &Runner{
		job:      job,
		store:    st,
		interval: interval,
		logger:   logger,
	}
}

// RunNow acquires today's run lock and executes the batch. Both the HTTP
// trigger and the internal scheduler come through here, so two overlapping
// triggers can never run the campaigns concurrently — the second caller gets
// store.ErrRunInProgress.
func (r *Runner) RunNow(ctx context.Context) (Stats, error) {
	lock, err := r.store.AcquireRunLock(ctx, r.job.now())
	if err != nil {
		return Stats{}, err
	}
	defer func() {
		// Fresh context: the run's context may already be cancelled, and the
		// lock must be released regardless.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if rerr := lock.Release(releaseCtx); rerr != nil {
			r.logger.Error("worker: failed to release run lock", "error", rerr)
		}
	}()

	return r.job.Run(ctx)
}

// Start runs the batch every interval. It blocks until ctx is cancelled.
// Call it in a goroutine from main:
//
//	go runner.Start(ctx)
func (r *Runner) Start(ctx context.Context) {
	if r.interval <= 0 {
		r.logger.Info("worker: internal scheduler disabled, expecting external trigger")
		return
	}

	r.logger.Info("worker: scheduler started", "interval", r.interval)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("worker: scheduler stopped")
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *Runner) tick(ctx context.Context) {
	// A run should finish in well under 30 minutes; the deadline keeps a hung
	// dependency from blocking every later tick via the run lock.
	runCtx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	stats, err := r.RunNow(runCtx)
	switch {
	case errors.Is(err, store.ErrRunInProgress):
		r.logger.Info("worker: tick skipped, run already in progress")
	case err != nil:
		r.logger.Error("worker: scheduled run failed", "error", err)
	default:
		r.logger.Info("worker: scheduled run complete",
			"provider_incomplete", stats.ProviderIncomplete,
			"couple_incomplete", stats.CoupleIncomplete,
			"pending_requests", stats.PendingRequests,
			"inactivity", stats.Inactivity,
			"provider_low_completion", stats.ProviderLowCompletion,
			"errors", stats.Errors,
		)
	}
}
