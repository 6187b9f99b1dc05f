package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
	"github.com/vowly/vowly-backend/internal/db"
)

// ─── INPUT TYPES ─────────────────────────────────────────────────────────────

// RecordSendParams identifies one reminder in the send log. Ordinal is the
// 1-based reminder number for ordinal campaigns and 0 for the window-based
// ones. Payload is an optional campaign-specific snapshot (pending-request
// count, completion percentage and missing items) stored alongside the row.
type RecordSendParams struct {
	AccountID uuid.UUID
	EmailType db.EmailType
	Ordinal   int
	Payload   json.RawMessage
}

// ─── ERRORS ──────────────────────────────────────────────────────────────────

// ErrAlreadySent is returned by RecordSend when a log row for the same
// (account, email type, reminder number) already exists. The worker treats
// this as a clean skip — another run, possibly concurrent, got there first.
var ErrAlreadySent = errors.New("store: reminder already recorded for this account and ordinal")

// ─── METHODS ─────────────────────────────────────────────────────────────────

// RecordSend claims a reminder before delivery. The claim is a single
// insert-if-absent backed by the partial unique index on
// (account_id, email_type, reminder_number), so there is no separate
// existence check to race against: of two concurrent runs, exactly one gets
// the row and the other gets ErrAlreadySent.
//
// The claim happens before the email goes out. If delivery then fails the
// worker calls ReleaseSend so the next run re-evaluates the account; a crash
// between claim and send therefore loses at most one reminder rather than
// ever sending it twice.
//
// Window-based campaigns (Ordinal == 0) insert a NULL reminder_number, which
// the unique index deliberately ignores — their dedupe is the evaluator's
// rolling time window, and concurrent runs are excluded by the run lock.
func (s *Store) RecordSend(ctx context.Context, p RecordSendParams) (db.EmailLog, error) {
	var ordinal sql.NullInt16
	if p.Ordinal > 0 {
		ordinal = sql.NullInt16{Int16: int16(p.Ordinal), Valid: true}
	}
	var payload pqtype.NullRawMessage
	if len(p.Payload) > 0 {
		payload = pqtype.NullRawMessage{RawMessage: p.Payload, Valid: true}
	}

	entry, err := s.q.InsertEmailLog(ctx, db.InsertEmailLogParams{
		AccountID:      p.AccountID,
		EmailType:      p.EmailType,
		ReminderNumber: ordinal,
		Payload:        payload,
	})
	if errors.Is(err, sql.ErrNoRows) {
		// ON CONFLICT DO NOTHING swallowed the insert — the row exists.
		return db.EmailLog{}, ErrAlreadySent
	}
	if err != nil {
		return db.EmailLog{}, fmt.Errorf("RecordSend: insert email log: %w", err)
	}
	return entry, nil
}

// ReleaseSend removes a claim after a failed delivery so the account becomes
// eligible again on the next run.
func (s *Store) ReleaseSend(ctx context.Context, id uuid.UUID) error {
	if err := s.q.DeleteEmailLog(ctx, id); err != nil {
		return fmt.Errorf("ReleaseSend: delete email log: %w", err)
	}
	return nil
}
