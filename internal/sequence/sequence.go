// Package sequence holds the eligibility rules for the five lifecycle email
// campaigns. Every function here is a pure decision over an account snapshot,
// the current time, and the prior send history — no I/O, no clock reads. The
// worker package owns fetching inputs and acting on decisions.
package sequence

import "time"

const day = 24 * time.Hour

// ─── TYPES ────────────────────────────────────────────────────────────────────

// Decision is the outcome of evaluating one account against one campaign.
// Ordinal is the 1-based reminder number for ordinal campaigns and 0 for the
// window-based ones (pending requests, inactivity).
type Decision struct {
	Send    bool
	Ordinal int
}

// SendRecord is the slice of an email_log row the evaluators need. Ordinal is
// 0 when the row belongs to a window-based campaign.
type SendRecord struct {
	Ordinal int
	SentAt  time.Time
}

// ─── SCHEDULES ────────────────────────────────────────────────────────────────

// profileSchedule maps reminder ordinal → minimum days since account creation.
// The progression is monotonic: the next reminder is always max-sent + 1, and
// it fires once the account is old enough, so a missed daily run picks up
// where it left off instead of skipping a tier.
var profileSchedule = map[int]int{1: 1, 2: 3, 3: 7}

const profileMaxOrdinal = 3

// completionDelays maps reminder ordinal → minimum days since the previous
// reminder of this campaign. The first reminder has no delay.
var completionDelays = map[int]int{1: 0, 2: 2, 3: 3}

const completionMaxOrdinal = 3

// CompletionThreshold is the profile-completion percentage at and above which
// the low-completion campaign goes quiet.
const CompletionThreshold = 70

const (
	pendingRequestsCooldown = 24 * time.Hour

	inactivityMinAge   = 14 * day
	inactivityMaxAge   = 30 * day
	inactivityCooldown = 7 * day
)

// ─── EVALUATORS ───────────────────────────────────────────────────────────────

// ProfileReminder decides the next incomplete-profile nudge for an account
// that has not finished onboarding. The caller filters out onboarded accounts
// before evaluating; this function only sees candidates.
//
// History may contain rows in any order. Records from other campaigns must
// not be passed in.
func ProfileReminder(createdAt, now time.Time, history []SendRecord) Decision {
	next := maxOrdinal(history) + 1
	if next > profileMaxOrdinal {
		return Decision{}
	}
	if now.Sub(createdAt) >= time.Duration(profileSchedule[next])*day {
		return Decision{Send: true, Ordinal: next}
	}
	return Decision{}
}

// PendingRequests decides whether to nudge a provider who has at least one
// pending request from the last 48 hours (the candidate query enforces that
// precondition). At most one nudge per rolling 24-hour window; the nudge
// re-fires on later runs as long as pending requests persist.
func PendingRequests(now time.Time, history []SendRecord) Decision {
	if sentWithin(history, now, pendingRequestsCooldown) {
		return Decision{}
	}
	return Decision{Send: true}
}

// Inactivity decides whether to nudge an onboarded account that has gone
// quiet. The window is half-open on updated_at: an account exactly 14 days
// stale is included, one exactly 30 days stale is not — old enough to nudge,
// not so old it is presumed gone. At most one nudge per rolling 7-day window.
func Inactivity(updatedAt, now time.Time, history []SendRecord) Decision {
	age := now.Sub(updatedAt)
	if age < inactivityMinAge || age >= inactivityMaxAge {
		return Decision{}
	}
	if sentWithin(history, now, inactivityCooldown) {
		return Decision{}
	}
	return Decision{Send: true}
}

// LowCompletion decides the next completion nudge for an onboarded provider.
// percentage is the live-computed profile completion (see ComputeCompletion).
// Terminal once the third reminder is sent or the profile reaches the
// threshold, regardless of elapsed time.
func LowCompletion(percentage int, now time.Time, history []SendRecord) Decision {
	if percentage >= CompletionThreshold {
		return Decision{}
	}
	next := maxOrdinal(history) + 1
	if next > completionMaxOrdinal {
		return Decision{}
	}
	last, ok := lastSentAt(history)
	if !ok {
		// No prior reminder — the first one is due immediately.
		return Decision{Send: true, Ordinal: next}
	}
	if now.Sub(last) >= time.Duration(completionDelays[next])*day {
		return Decision{Send: true, Ordinal: next}
	}
	return Decision{}
}

// ─── HELPERS ──────────────────────────────────────────────────────────────────

func maxOrdinal(history []SendRecord) int {
	max := 0
	for _, r := range history {
		if r.Ordinal > max {
			max = r.Ordinal
		}
	}
	return max
}

func lastSentAt(history []SendRecord) (time.Time, bool) {
	var last time.Time
	for _, r := range history {
		if r.SentAt.After(last) {
			last = r.SentAt
		}
	}
	return last, !last.IsZero()
}

// sentWithin reports whether any record was sent strictly less than window
// before now. A record exactly window old no longer suppresses the next send.
func sentWithin(history []SendRecord, now time.Time, window time.Duration) bool {
	for _, r := range history {
		if now.Sub(r.SentAt) < window {
			return true
		}
	}
	return false
}
