package worker_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/vowly/vowly-backend/internal/billing"
	"github.com/vowly/vowly-backend/internal/db"
	"github.com/vowly/vowly-backend/internal/email"
	"github.com/vowly/vowly-backend/internal/store"
	"github.com/vowly/vowly-backend/internal/worker"
)

// ─── STUBS ────────────────────────────────────────────────────────────────────

// stubQuerier satisfies db.Querier with fixed candidate sets.
// Fields may be set per-test to control behaviour.
type stubQuerier struct {
	db.Querier // embedded to panic on unimplemented methods

	incompleteProviders []db.Account
	incompleteCouples   []db.Account
	pendingProviders    []db.ListProvidersWithPendingRequestsRow
	inactiveAccounts    []db.Account
	providerProfiles    []db.ListOnboardedProviderProfilesRow
	history             map[uuid.UUID]map[db.EmailType][]db.EmailLog

	listProvidersErr error
}

func (q *stubQuerier) ListIncompleteProviders(_ context.Context) ([]db.Account, error) {
	if q.listProvidersErr != nil {
		return nil, q.listProvidersErr
	}
	return q.incompleteProviders, nil
}

func (q *stubQuerier) ListIncompleteCouples(_ context.Context) ([]db.Account, error) {
	return q.incompleteCouples, nil
}

func (q *stubQuerier) ListProvidersWithPendingRequests(_ context.Context, _ time.Time) ([]db.ListProvidersWithPendingRequestsRow, error) {
	return q.pendingProviders, nil
}

func (q *stubQuerier) ListInactiveAccounts(_ context.Context, _ db.ListInactiveAccountsParams) ([]db.Account, error) {
	return q.inactiveAccounts, nil
}

func (q *stubQuerier) ListOnboardedProviderProfiles(_ context.Context) ([]db.ListOnboardedProviderProfilesRow, error) {
	return q.providerProfiles, nil
}

func (q *stubQuerier) GetEmailHistory(_ context.Context, arg db.GetEmailHistoryParams) ([]db.EmailLog, error) {
	return q.history[arg.AccountID][arg.EmailType], nil
}

// fakeSendLog records claims in memory and honours the same uniqueness rule
// as the real store: one row per (account, type, ordinal) for ordinal > 0.
type fakeSendLog struct {
	mu       sync.Mutex
	claims   []store.RecordSendParams
	claimIDs map[uuid.UUID]store.RecordSendParams
	released []uuid.UUID
}

func newFakeSendLog() *fakeSendLog {
	return &fakeSendLog{claimIDs: make(map[uuid.UUID]store.RecordSendParams)}
}

func (f *fakeSendLog) RecordSend(_ context.Context, p store.RecordSendParams) (db.EmailLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.Ordinal > 0 {
		for _, c := range f.claims {
			if c.AccountID == p.AccountID && c.EmailType == p.EmailType && c.Ordinal == p.Ordinal {
				return db.EmailLog{}, store.ErrAlreadySent
			}
		}
	}
	f.claims = append(f.claims, p)
	id := uuid.New()
	f.claimIDs[id] = p
	var ordinal sql.NullInt16
	if p.Ordinal > 0 {
		ordinal = sql.NullInt16{Int16: int16(p.Ordinal), Valid: true}
	}
	return db.EmailLog{
		ID:             id,
		AccountID:      p.AccountID,
		EmailType:      p.EmailType,
		ReminderNumber: ordinal,
		SentAt:         time.Now(),
	}, nil
}

func (f *fakeSendLog) ReleaseSend(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = append(f.released, id)
	return nil
}

// stubMailer records every send and fails delivery to addresses in failTo.
type stubMailer struct {
	mu         sync.Mutex
	profile    []email.ProfileReminderParams
	pending    []email.PendingRequestsParams
	inactivity []email.InactivityParams
	completion []email.CompletionReminderParams
	failTo     map[string]bool
}

func (m *stubMailer) fail(to string) error {
	if m.failTo[to] {
		return fmt.Errorf("resend rejected delivery to %s", to)
	}
	return nil
}

func (m *stubMailer) SendProfileReminder(_ context.Context, p email.ProfileReminderParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(p.To); err != nil {
		return err
	}
	m.profile = append(m.profile, p)
	return nil
}

func (m *stubMailer) SendPendingRequestsReminder(_ context.Context, p email.PendingRequestsParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(p.To); err != nil {
		return err
	}
	m.pending = append(m.pending, p)
	return nil
}

func (m *stubMailer) SendInactivityNudge(_ context.Context, p email.InactivityParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(p.To); err != nil {
		return err
	}
	m.inactivity = append(m.inactivity, p)
	return nil
}

func (m *stubMailer) SendCompletionReminder(_ context.Context, p email.CompletionReminderParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(p.To); err != nil {
		return err
	}
	m.completion = append(m.completion, p)
	return nil
}

// stubBilling returns a fixed account status.
type stubBilling struct {
	status billing.AccountStatus
}

func (b *stubBilling) GetAccountStatus(_ context.Context, _ string) (billing.AccountStatus, error) {
	return b.status, nil
}

// ─── TEST HELPERS ─────────────────────────────────────────────────────────────

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestJob(q *stubQuerier, sends *fakeSendLog, mailer *stubMailer) *worker.Job {
	return worker.NewJob(q, sends, mailer, &stubBilling{}, 1, testLogger())
}

func account(role db.AccountRole, addr string, createdAgo time.Duration) db.Account {
	now := time.Now().UTC()
	return db.Account{
		ID:        uuid.New(),
		Email:     addr,
		Role:      role,
		CreatedAt: now.Add(-createdAgo),
		UpdatedAt: now.Add(-createdAgo),
	}
}

// ─── Run ──────────────────────────────────────────────────────────────────────

func TestRun_DayOneProviderGetsFirstReminder(t *testing.T) {
	provider := account(db.AccountRoleProvider, "p@example.com", 25*time.Hour)
	q := &stubQuerier{incompleteProviders: []db.Account{provider}}
	sends := newFakeSendLog()
	mailer := &stubMailer{}

	stats, err := newTestJob(q, sends, mailer).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.ProviderIncomplete != 1 {
		t.Errorf("providerIncomplete: got %d, want 1", stats.ProviderIncomplete)
	}
	if stats.Errors != 0 {
		t.Errorf("errors: got %d, want 0", stats.Errors)
	}
	if len(mailer.profile) != 1 {
		t.Fatalf("profile sends: got %d, want 1", len(mailer.profile))
	}
	sent := mailer.profile[0]
	if sent.To != "p@example.com" || sent.Ordinal != 1 || !sent.Provider {
		t.Errorf("sent %+v, want reminder #1 to p@example.com as provider", sent)
	}
	if len(sends.claims) != 1 {
		t.Errorf("claims: got %d, want 1", len(sends.claims))
	}
}

func TestRun_LoggedReminderIsNotResent(t *testing.T) {
	provider := account(db.AccountRoleProvider, "p@example.com", 26*time.Hour)
	q := &stubQuerier{
		incompleteProviders: []db.Account{provider},
		history: map[uuid.UUID]map[db.EmailType][]db.EmailLog{
			provider.ID: {
				db.EmailTypeProviderIncompleteProfile: {{
					AccountID:      provider.ID,
					EmailType:      db.EmailTypeProviderIncompleteProfile,
					ReminderNumber: sql.NullInt16{Int16: 1, Valid: true},
					SentAt:         time.Now().Add(-time.Hour),
				}},
			},
		},
	}
	sends := newFakeSendLog()
	mailer := &stubMailer{}

	stats, err := newTestJob(q, sends, mailer).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.ProviderIncomplete != 0 || len(mailer.profile) != 0 {
		t.Errorf("re-run same day: got %d sends (%d stats), want 0", len(mailer.profile), stats.ProviderIncomplete)
	}
}

func TestRun_ConcurrentClaimLosesQuietly(t *testing.T) {
	// The claim exists in the log table but not in this run's history fetch —
	// exactly what a racing run produces. The loser counts nothing.
	provider := account(db.AccountRoleProvider, "p@example.com", 25*time.Hour)
	q := &stubQuerier{incompleteProviders: []db.Account{provider}}
	sends := newFakeSendLog()
	if _, err := sends.RecordSend(context.Background(), store.RecordSendParams{
		AccountID: provider.ID,
		EmailType: db.EmailTypeProviderIncompleteProfile,
		Ordinal:   1,
	}); err != nil {
		t.Fatalf("seed claim: %v", err)
	}
	mailer := &stubMailer{}

	stats, err := newTestJob(q, sends, mailer).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.ProviderIncomplete != 0 || stats.Errors != 0 || len(mailer.profile) != 0 {
		t.Errorf("lost claim race: got %+v with %d sends, want all zero", stats, len(mailer.profile))
	}
}

func TestRun_PendingRequestsOneEmailWithCount(t *testing.T) {
	q := &stubQuerier{
		pendingProviders: []db.ListProvidersWithPendingRequestsRow{{
			ID:           uuid.New(),
			Email:        "venue@example.com",
			DisplayName:  "The Old Mill",
			PendingCount: 3,
		}},
	}
	sends := newFakeSendLog()
	mailer := &stubMailer{}

	stats, err := newTestJob(q, sends, mailer).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.PendingRequests != 1 {
		t.Errorf("pendingRequests: got %d, want 1", stats.PendingRequests)
	}
	if len(mailer.pending) != 1 {
		t.Fatalf("pending sends: got %d, want exactly 1 (never one per request)", len(mailer.pending))
	}
	if mailer.pending[0].PendingCount != 3 {
		t.Errorf("count in email: got %d, want 3", mailer.pending[0].PendingCount)
	}
}

func TestRun_SendFailureReleasesClaimAndContinues(t *testing.T) {
	bad := account(db.AccountRoleProvider, "bounce@example.com", 25*time.Hour)
	good := account(db.AccountRoleProvider, "ok@example.com", 25*time.Hour)
	q := &stubQuerier{incompleteProviders: []db.Account{bad, good}}
	sends := newFakeSendLog()
	mailer := &stubMailer{failTo: map[string]bool{"bounce@example.com": true}}

	stats, err := newTestJob(q, sends, mailer).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.ProviderIncomplete != 1 {
		t.Errorf("providerIncomplete: got %d, want 1 (the good candidate)", stats.ProviderIncomplete)
	}
	if stats.Errors != 1 {
		t.Errorf("errors: got %d, want 1", stats.Errors)
	}
	if len(sends.released) != 1 {
		t.Fatalf("released claims: got %d, want 1", len(sends.released))
	}
	if claim := sends.claimIDs[sends.released[0]]; claim.AccountID != bad.ID {
		t.Errorf("released the wrong claim: %+v", claim)
	}
}

func TestRun_CandidateQueryFailureAbortsBatch(t *testing.T) {
	q := &stubQuerier{listProvidersErr: errors.New("connection refused")}
	_, err := newTestJob(q, newFakeSendLog(), &stubMailer{}).Run(context.Background())
	if err == nil {
		t.Fatal("expected batch-wide error, got nil")
	}
}

func TestRun_LowCompletionSendsLiveSnapshot(t *testing.T) {
	q := &stubQuerier{
		providerProfiles: []db.ListOnboardedProviderProfilesRow{{
			ID:           uuid.New(),
			Email:        "florist@example.com",
			BusinessName: sql.NullString{String: "Peony & Co", Valid: true},
			Category:     sql.NullString{String: "florist", Valid: true},
			City:         sql.NullString{String: "Lisbon", Valid: true},
		}},
	}
	sends := newFakeSendLog()
	mailer := &stubMailer{}

	stats, err := newTestJob(q, sends, mailer).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.ProviderLowCompletion != 1 {
		t.Fatalf("providerLowCompletion: got %d, want 1", stats.ProviderLowCompletion)
	}
	sent := mailer.completion[0]
	// Name + category + city = 45%, everything else missing.
	if sent.Percentage != 45 {
		t.Errorf("percentage: got %d, want 45", sent.Percentage)
	}
	if sent.Ordinal != 1 {
		t.Errorf("ordinal: got %d, want 1", sent.Ordinal)
	}
	if len(sent.MissingItems) != 4 {
		t.Errorf("missing items: got %v, want 4 entries", sent.MissingItems)
	}
}

func TestRun_CountersReconcile(t *testing.T) {
	provider := account(db.AccountRoleProvider, "p@example.com", 25*time.Hour)
	couple := account(db.AccountRoleCouple, "c@example.com", 25*time.Hour)
	inactive := account(db.AccountRoleCouple, "idle@example.com", 0)
	inactive.UpdatedAt = time.Now().UTC().Add(-20 * 24 * time.Hour)

	q := &stubQuerier{
		incompleteProviders: []db.Account{provider},
		incompleteCouples:   []db.Account{couple},
		pendingProviders: []db.ListProvidersWithPendingRequestsRow{{
			ID: uuid.New(), Email: "venue@example.com", PendingCount: 1,
		}},
		inactiveAccounts: []db.Account{inactive},
		providerProfiles: []db.ListOnboardedProviderProfilesRow{{
			ID: uuid.New(), Email: "florist@example.com",
		}},
	}
	sends := newFakeSendLog()
	mailer := &stubMailer{}

	stats, err := newTestJob(q, sends, mailer).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	total := stats.ProviderIncomplete + stats.CoupleIncomplete + stats.PendingRequests +
		stats.Inactivity + stats.ProviderLowCompletion
	delivered := len(mailer.profile) + len(mailer.pending) + len(mailer.inactivity) + len(mailer.completion)

	if total != 5 {
		t.Errorf("total sends: got %d (%+v), want 5", total, stats)
	}
	if total != delivered {
		t.Errorf("counters (%d) do not match deliveries (%d)", total, delivered)
	}
	if stats.Errors != 0 {
		t.Errorf("errors: got %d, want 0", stats.Errors)
	}
	if len(sends.claims) != delivered {
		t.Errorf("claims (%d) do not match deliveries (%d)", len(sends.claims), delivered)
	}
}
