// Package core implements the Pro unlock flow: Stripe Checkout session
// creation and verified webhook processing into the entitlement store.
package core

import (
	"context"

	"github.com/sirupsen/logrus"
	stripe "github.com/stripe/stripe-go/v84"

	"github.com/scopedlabs/prokit/entitlements"
)

// CheckoutCreator abstracts the Stripe checkout-session call so handlers can
// be tested without network I/O.
type CheckoutCreator interface {
	Create(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// EventCache deduplicates webhook deliveries by Stripe event ID. Seen is a
// read-only probe; MarkProcessed records the event and must only be called
// once the grant is durably written, otherwise a failed upsert would swallow
// Stripe's retry of the same event. Best-effort: the store's unique key is
// the real idempotency guarantee.
type EventCache interface {
	Seen(ctx context.Context, eventID string) bool
	MarkProcessed(ctx context.Context, eventID string)
}

// Config wires the service's collaborators. WebhookSecret and Store are
// required for webhook processing; Checkout and SiteOrigin for session
// creation. Events and Log are optional.
type Config struct {
	SiteOrigin    string
	WebhookSecret string

	Checkout CheckoutCreator
	Store    entitlements.Store
	Events   EventCache
	Log      *logrus.Logger
}

type Service struct {
	cfg Config
	log *logrus.Logger
}

func NewService(cfg Config) *Service {
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{cfg: cfg, log: log}
}
