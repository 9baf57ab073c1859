package core

import (
	"context"

	stripe "github.com/stripe/stripe-go/v84"
	checkoutsession "github.com/stripe/stripe-go/v84/checkout/session"
)

// stripeCheckout calls the live Stripe API through the package-level key,
// the way stripe-go's legacy clients are wired.
type stripeCheckout struct{}

// NewStripeCheckout installs the API key and returns the live
// CheckoutCreator.
func NewStripeCheckout(secretKey string) CheckoutCreator {
	stripe.Key = secretKey
	return stripeCheckout{}
}

func (stripeCheckout) Create(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	params.Context = ctx
	return checkoutsession.New(params)
}
