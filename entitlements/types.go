package entitlements

import "context"

// SourceStripe marks grants written by the verified Stripe webhook flow.
const SourceStripe = "stripe"

// Entitlement represents a user's purchase grant for one tool category.
// At most one row exists per (UserID, Category) pair.
type Entitlement struct {
	UserID   string `json:"user_id"`
	Category string `json:"category"`
	Source   string `json:"source,omitempty"`
}

// Store persists entitlements. Upsert must be idempotent: re-granting an
// existing (user_id, category) pair must neither error nor duplicate.
type Store interface {
	Upsert(ctx context.Context, e Entitlement) error
}
