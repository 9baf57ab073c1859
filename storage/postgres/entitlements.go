// Package postgres is the direct-database entitlement store for deployments
// that run next to Postgres instead of the Supabase REST edge.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/scopedlabs/prokit/entitlements"
)

// EntitlementStore upserts grants with a composite-key conflict clause.
// The unique constraint is the sole mechanism protecting two concurrent
// webhook deliveries for the same pair; no application-level locking.
type EntitlementStore struct {
	pg *pgxpool.Pool
}

func NewEntitlementStore(pg *pgxpool.Pool) *EntitlementStore {
	return &EntitlementStore{pg: pg}
}

func (s *EntitlementStore) Upsert(ctx context.Context, e entitlements.Entitlement) error {
	if s == nil || s.pg == nil {
		return nil
	}
	_, err := s.pg.Exec(ctx,
		`INSERT INTO entitlements (user_id, category, source)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, category) DO NOTHING`,
		e.UserID, e.Category, e.Source)
	return err
}
