// Package worker contains the lifecycle email batch: the Job walks the five
// campaigns in order, evaluates each candidate with the sequence package,
// claims the send in the log, and delivers via the email package. It is
// decoupled from the HTTP layer: the api package holds a worker.Trigger and
// calls RunNow — it never imports the concrete Runner or Job types.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vowly/vowly-backend/internal/billing"
	"github.com/vowly/vowly-backend/internal/db"
	"github.com/vowly/vowly-backend/internal/email"
	"github.com/vowly/vowly-backend/internal/sequence"
	"github.com/vowly/vowly-backend/internal/store"
)

const (
	// pendingLookback bounds how old a pending request can be and still
	// trigger the nudge. Mirrors the candidate query's filter.
	pendingLookback = 48 * time.Hour

	// Inactivity candidate window, mirrored by the evaluator's boundary
	// checks. The SQL filter is the coarse cut; sequence.Inactivity is the
	// authority.
	inactivityUpper = 30 * 24 * time.Hour
	inactivityLower = 14 * 24 * time.Hour
)

// Stats counts successful sends per campaign plus delivery failures across
// all five. Field names match the JSON the trigger endpoint returns.
type Stats struct {
	ProviderIncomplete    int `json:"providerIncomplete"`
	CoupleIncomplete      int `json:"coupleIncomplete"`
	PendingRequests       int `json:"pendingRequests"`
	Inactivity            int `json:"inactivity"`
	ProviderLowCompletion int `json:"providerLowCompletion"`
	Errors                int `json:"errors"`
}

// SendLog is the narrow slice of *store.Store the job writes through.
// Tests inject an in-memory fake.
type SendLog interface {
	RecordSend(ctx context.Context, p store.RecordSendParams) (db.EmailLog, error)
	ReleaseSend(ctx context.Context, id uuid.UUID) error
}

// Job holds the dependencies for one batch run. Each campaign pass is a
// separate method so Run reads like the campaign list.
type Job struct {
	q       db.Querier
	sends   SendLog
	mailer  email.Sender
	billing billing.Client
	workers int
	now     func() time.Time
	logger  *slog.Logger
}

// NewJob constructs a Job. workers bounds how many candidates are in flight
// at once within a pass; values below 1 fall back to 4.
func NewJob(
	q db.Querier,
	sends SendLog,
	mailer email.Sender,
	billingClient billing.Client,
	workers int,
	logger *slog.Logger,
) *Job {
	if workers < 1 {
		workers = 4
	}
	return &Job{
		q:       q,
		sends:   sends,
		mailer:  mailer,
		billing: billingClient,
		workers: workers,
		now:     time.Now,
		logger:  logger,
	}
}

// Run executes the five campaign passes in fixed order. A failed candidate
// fetch aborts the batch with an error; a failed individual send only bumps
// Stats.Errors and the batch continues. The six counters therefore always
// reconcile: each campaign counter is the number of successful sends in that
// pass, and Errors is exactly the number of per-candidate failures.
func (j *Job) Run(ctx context.Context) (Stats, error) {
	now := j.now().UTC()
	var stats Stats

	passes := []struct {
		name    string
		counter *int
		run     func(context.Context, time.Time) (int, int, error)
	}{
		{"provider_incomplete_profile", &stats.ProviderIncomplete,
			func(ctx context.Context, now time.Time) (int, int, error) {
				return j.profilePass(ctx, now, db.AccountRoleProvider)
			}},
		{"couple_incomplete_profile", &stats.CoupleIncomplete,
			func(ctx context.Context, now time.Time) (int, int, error) {
				return j.profilePass(ctx, now, db.AccountRoleCouple)
			}},
		{"pending_requests_reminder", &stats.PendingRequests, j.pendingRequestsPass},
		{"inactivity_reminder", &stats.Inactivity, j.inactivityPass},
		{"provider_low_completion", &stats.ProviderLowCompletion, j.lowCompletionPass},
	}

	for _, pass := range passes {
		sent, failed, err := pass.run(ctx, now)
		if err != nil {
			return Stats{}, fmt.Errorf("job: %s pass: %w", pass.name, err)
		}
		*pass.counter = sent
		stats.Errors += failed
		j.logger.Info("job: pass complete", "campaign", pass.name, "sent", sent, "failed", failed)
	}

	return stats, nil
}

// ─── CAMPAIGN PASSES ──────────────────────────────────────────────────────────

// profilePass runs the incomplete-profile campaign for one audience. The
// candidate queries already exclude onboarded accounts, so the pass never
// sees them.
func (j *Job) profilePass(ctx context.Context, now time.Time, role db.AccountRole) (int, int, error) {
	var (
		candidates []db.Account
		emailType  db.EmailType
		err        error
	)
	if role == db.AccountRoleProvider {
		emailType = db.EmailTypeProviderIncompleteProfile
		candidates, err = j.q.ListIncompleteProviders(ctx)
	} else {
		emailType = db.EmailTypeCoupleIncompleteProfile
		candidates, err = j.q.ListIncompleteCouples(ctx)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("list candidates: %w", err)
	}

	sent, failed := j.forEach(ctx, len(candidates), func(i int) (bool, error) {
		acct := candidates[i]
		history, err := j.history(ctx, acct.ID, emailType)
		if err != nil {
			return false, err
		}

		d := sequence.ProfileReminder(acct.CreatedAt, now, history)
		if !d.Send {
			return false, nil
		}

		entry, err := j.sends.RecordSend(ctx, store.RecordSendParams{
			AccountID: acct.ID,
			EmailType: emailType,
			Ordinal:   d.Ordinal,
		})
		if errors.Is(err, store.ErrAlreadySent) {
			return false, nil
		}
		if err != nil {
			return false, err
		}

		if err := j.mailer.SendProfileReminder(ctx, email.ProfileReminderParams{
			To:       acct.Email,
			Name:     acct.DisplayName,
			Ordinal:  d.Ordinal,
			Provider: role == db.AccountRoleProvider,
		}); err != nil {
			j.release(ctx, entry.ID)
			return false, err
		}
		return true, nil
	})
	return sent, failed, nil
}

// pendingRequestsPass nudges providers sitting on unanswered quote requests.
// One email per provider citing the count — never one per request.
func (j *Job) pendingRequestsPass(ctx context.Context, now time.Time) (int, int, error) {
	candidates, err := j.q.ListProvidersWithPendingRequests(ctx, now.Add(-pendingLookback))
	if err != nil {
		return 0, 0, fmt.Errorf("list candidates: %w", err)
	}

	sent, failed := j.forEach(ctx, len(candidates), func(i int) (bool, error) {
		row := candidates[i]
		history, err := j.history(ctx, row.ID, db.EmailTypePendingRequestsReminder)
		if err != nil {
			return false, err
		}

		if d := sequence.PendingRequests(now, history); !d.Send {
			return false, nil
		}

		payload, err := json.Marshal(map[string]int64{"pending_count": row.PendingCount})
		if err != nil {
			return false, fmt.Errorf("marshal payload: %w", err)
		}

		entry, err := j.sends.RecordSend(ctx, store.RecordSendParams{
			AccountID: row.ID,
			EmailType: db.EmailTypePendingRequestsReminder,
			Payload:   payload,
		})
		if errors.Is(err, store.ErrAlreadySent) {
			return false, nil
		}
		if err != nil {
			return false, err
		}

		if err := j.mailer.SendPendingRequestsReminder(ctx, email.PendingRequestsParams{
			To:           row.Email,
			Name:         row.DisplayName,
			PendingCount: int(row.PendingCount),
		}); err != nil {
			j.release(ctx, entry.ID)
			return false, err
		}
		return true, nil
	})
	return sent, failed, nil
}

// inactivityPass re-engages onboarded accounts that have gone quiet.
func (j *Job) inactivityPass(ctx context.Context, now time.Time) (int, int, error) {
	candidates, err := j.q.ListInactiveAccounts(ctx, db.ListInactiveAccountsParams{
		UpdatedAfter:  now.Add(-inactivityUpper),
		UpdatedBefore: now.Add(-inactivityLower),
	})
	if err != nil {
		return 0, 0, fmt.Errorf("list candidates: %w", err)
	}

	sent, failed := j.forEach(ctx, len(candidates), func(i int) (bool, error) {
		acct := candidates[i]
		history, err := j.history(ctx, acct.ID, db.EmailTypeInactivityReminder)
		if err != nil {
			return false, err
		}

		if d := sequence.Inactivity(acct.UpdatedAt, now, history); !d.Send {
			return false, nil
		}

		entry, err := j.sends.RecordSend(ctx, store.RecordSendParams{
			AccountID: acct.ID,
			EmailType: db.EmailTypeInactivityReminder,
		})
		if errors.Is(err, store.ErrAlreadySent) {
			return false, nil
		}
		if err != nil {
			return false, err
		}

		if err := j.mailer.SendInactivityNudge(ctx, email.InactivityParams{
			To:   acct.Email,
			Name: acct.DisplayName,
		}); err != nil {
			j.release(ctx, entry.ID)
			return false, err
		}
		return true, nil
	})
	return sent, failed, nil
}

// lowCompletionPass pushes onboarded providers with thin profiles. Completion
// is recomputed from the live profile (and Stripe payout status) on every
// run, and the percentage sent is the one computed in this run — never a
// cached value.
func (j *Job) lowCompletionPass(ctx context.Context, now time.Time) (int, int, error) {
	candidates, err := j.q.ListOnboardedProviderProfiles(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list candidates: %w", err)
	}

	sent, failed := j.forEach(ctx, len(candidates), func(i int) (bool, error) {
		row := candidates[i]
		history, err := j.history(ctx, row.ID, db.EmailTypeProviderLowCompletion)
		if err != nil {
			return false, err
		}

		comp := sequence.ComputeCompletion(j.snapshotProfile(ctx, row))
		d := sequence.LowCompletion(comp.Percentage, now, history)
		if !d.Send {
			return false, nil
		}

		payload, err := json.Marshal(struct {
			Percentage   int      `json:"percentage"`
			MissingItems []string `json:"missing_items"`
		}{comp.Percentage, comp.MissingItems})
		if err != nil {
			return false, fmt.Errorf("marshal payload: %w", err)
		}

		entry, err := j.sends.RecordSend(ctx, store.RecordSendParams{
			AccountID: row.ID,
			EmailType: db.EmailTypeProviderLowCompletion,
			Ordinal:   d.Ordinal,
			Payload:   payload,
		})
		if errors.Is(err, store.ErrAlreadySent) {
			return false, nil
		}
		if err != nil {
			return false, err
		}

		if err := j.mailer.SendCompletionReminder(ctx, email.CompletionReminderParams{
			To:           row.Email,
			BusinessName: row.BusinessName.String,
			Ordinal:      d.Ordinal,
			Percentage:   comp.Percentage,
			MissingItems: comp.MissingItems,
		}); err != nil {
			j.release(ctx, entry.ID)
			return false, err
		}
		return true, nil
	})
	return sent, failed, nil
}

// ─── HELPERS ──────────────────────────────────────────────────────────────────

// snapshotProfile builds the completion input from the joined candidate row
// plus the live Stripe payout status.
func (j *Job) snapshotProfile(ctx context.Context, row db.ListOnboardedProviderProfilesRow) sequence.ProfileSnapshot {
	snap := sequence.ProfileSnapshot{
		BusinessName: row.BusinessName.String,
		Category:     row.Category.String,
		City:         row.City.String,
		Bio:          row.Bio.String,
		PriceRange:   row.PriceRange.String,
	}

	if row.Portfolio.Valid {
		var photos []string
		if err := json.Unmarshal(row.Portfolio.RawMessage, &photos); err == nil {
			snap.PortfolioCount = len(photos)
		}
	}

	if row.StripeAccountID.Valid && row.StripeAccountID.String != "" {
		status, err := j.billing.GetAccountStatus(ctx, row.StripeAccountID.String)
		if err != nil {
			// Treat a Stripe lookup failure as payouts-not-ready; the item
			// simply stays on the missing list for this run.
			j.logger.Warn("job: stripe account lookup failed", "account_id", row.ID, "error", err)
		} else {
			snap.PayoutsEnabled = status.PayoutsEnabled
		}
	}
	return snap
}

// history loads the send-log rows for one account and campaign, mapped to
// the sequence package's input type.
func (j *Job) history(ctx context.Context, accountID uuid.UUID, emailType db.EmailType) ([]sequence.SendRecord, error) {
	rows, err := j.q.GetEmailHistory(ctx, db.GetEmailHistoryParams{
		AccountID: accountID,
		EmailType: emailType,
	})
	if err != nil {
		return nil, fmt.Errorf("get email history: %w", err)
	}
	records := make([]sequence.SendRecord, len(rows))
	for i, r := range rows {
		records[i] = sequence.SendRecord{
			Ordinal: int(r.ReminderNumber.Int16),
			SentAt:  r.SentAt,
		}
	}
	return records, nil
}

// release drops a send claim after a failed delivery. Failure to release is
// logged, not returned: the row then suppresses one reminder until someone
// clears it, which beats failing the candidate twice.
func (j *Job) release(ctx context.Context, id uuid.UUID) {
	if err := j.sends.ReleaseSend(ctx, id); err != nil {
		j.logger.Error("job: failed to release send claim", "entry_id", id, "error", err)
	}
}

// forEach runs fn for every candidate index with at most j.workers in
// flight. fn reports whether a reminder went out; its errors (and panics)
// are counted and isolated so one bad candidate never aborts the pass.
func (j *Job) forEach(ctx context.Context, n int, fn func(i int) (bool, error)) (sent, failed int) {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, j.workers)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			ok, err := j.runCandidate(ctx, i, fn)
			mu.Lock()
			switch {
			case err != nil:
				failed++
			case ok:
				sent++
			}
			mu.Unlock()
		}(i)
	}
	wg.Wait()
	return sent, failed
}

func (j *Job) runCandidate(_ context.Context, i int, fn func(int) (bool, error)) (ok bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("candidate panic: %v", p)
			j.logger.Error("job: candidate panicked", "error", err)
		}
	}()
	ok, err = fn(i)
	if err != nil {
		j.logger.Error("job: candidate failed", "error", err)
	}
	return ok, err
}
