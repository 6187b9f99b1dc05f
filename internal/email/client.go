// Package email defines the interface for lifecycle email delivery and
// provides a Resend-backed implementation.
package email

import "context"

// ProfileReminderParams holds the data for an incomplete-profile nudge.
// Provider flips the copy between the provider and couple variants of the
// same campaign.
type ProfileReminderParams struct {
	To       string // recipient email address
	Name     string // display name; may be empty
	Ordinal  int    // 1, 2 or 3
	Provider bool
}

// PendingRequestsParams holds the data for the pending-requests nudge. One
// email cites the full count — never one email per request.
type PendingRequestsParams struct {
	To           string
	Name         string
	PendingCount int
}

// InactivityParams holds the data for the we-miss-you nudge.
type InactivityParams struct {
	To   string
	Name string
}

// CompletionReminderParams holds the data for a low-completion nudge. The
// percentage and missing items are computed live at send time, never cached
// from a prior run.
type CompletionReminderParams struct {
	To           string
	BusinessName string // may be empty
	Ordinal      int    // 1, 2 or 3
	Percentage   int
	MissingItems []string
}

// Sender is the interface the worker uses to deliver lifecycle email, one
// method per campaign so each call site is checked against the exact payload
// its campaign needs. Tests inject a stub that records calls without hitting
// the network.
type Sender interface {
	// SendProfileReminder nudges an account that signed up but never finished
	// onboarding.
	SendProfileReminder(ctx context.Context, p ProfileReminderParams) error

	// SendPendingRequestsReminder tells a provider how many quote requests are
	// waiting for a reply.
	SendPendingRequestsReminder(ctx context.Context, p PendingRequestsParams) error

	// SendInactivityNudge re-engages an onboarded account that has gone quiet.
	SendInactivityNudge(ctx context.Context, p InactivityParams) error

	// SendCompletionReminder pushes a provider to finish their public profile,
	// listing exactly what is still missing.
	SendCompletionReminder(ctx context.Context, p CompletionReminderParams) error
}
