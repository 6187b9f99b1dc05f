// Package billing defines the read-only Stripe Connect probe the lifecycle
// job uses to check whether a provider has finished payout setup. The Connect
// onboarding flow itself lives elsewhere — this package only reads account
// status.
package billing

import "context"

// AccountStatus is the subset of a Stripe Connect account the completion
// calculator cares about.
type AccountStatus struct {
	PayoutsEnabled   bool
	ChargesEnabled   bool
	DetailsSubmitted bool
}

// Client is the interface the worker uses for Stripe account lookups. The
// concrete implementation wraps the official stripe-go SDK. Tests inject a
// stub.
type Client interface {
	// GetAccountStatus retrieves the live status of a connected account.
	GetAccountStatus(ctx context.Context, stripeAccountID string) (AccountStatus, error)
}
