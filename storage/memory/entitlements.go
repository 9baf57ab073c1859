package memorystore

import (
	"context"
	"sync"

	"github.com/scopedlabs/prokit/entitlements"
)

type pair struct{ userID, category string }

// EntitlementStore is an in-memory entitlements.Store for tests and local
// development. Upsert keeps one row per (user_id, category) like the real
// stores.
type EntitlementStore struct {
	mu   sync.Mutex
	rows map[pair]entitlements.Entitlement
}

func NewEntitlementStore() *EntitlementStore {
	return &EntitlementStore{rows: make(map[pair]entitlements.Entitlement)}
}

func (s *EntitlementStore) Upsert(ctx context.Context, e entitlements.Entitlement) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[pair{e.UserID, e.Category}] = e
	return nil
}

// Has reports whether a grant exists for the pair.
func (s *EntitlementStore) Has(userID, category string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rows[pair{userID, category}]
	return ok
}

// Count returns the number of distinct grants.
func (s *EntitlementStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}
