package billing

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/account"
)

// stripeClient is the concrete implementation of Client backed by the
// official stripe-go SDK. Construct it with NewClient.
type stripeClient struct {
	secretKey string
}

// NewClient returns a Client backed by the Stripe SDK.
// secretKey is your STRIPE_SECRET_KEY env var.
func NewClient(secretKey string) Client {
	return &stripeClient{secretKey: secretKey}
}

// GetAccountStatus fetches the connected account and maps the three readiness
// flags the completion calculator needs.
func (c *stripeClient) GetAccountStatus(ctx context.Context, stripeAccountID string) (AccountStatus, error) {
	stripe.Key = c.secretKey

	params := &stripe.AccountParams{}
	// Propagate context deadline to the Stripe HTTP call.
	params.Context = ctx

	acct, err := account.GetByID(stripeAccountID, params)
	if err != nil {
		return AccountStatus{}, fmt.Errorf("billing: get account %s: %w", stripeAccountID, err)
	}

	return AccountStatus{
		PayoutsEnabled:   acct.PayoutsEnabled,
		ChargesEnabled:   acct.ChargesEnabled,
		DetailsSubmitted: acct.DetailsSubmitted,
	}, nil
}
