// Package supabase writes entitlements through the Supabase PostgREST API.
// This is the store of record for edge deployments that have no direct
// database connection.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/scopedlabs/prokit/entitlements"
)

const maxErrorDetail = 300

// EntitlementStore upserts rows into <url>/rest/v1/entitlements using the
// service-role key. Conflict resolution on (user_id, category) is delegated
// to PostgREST's merge-duplicates preference, so repeated deliveries of the
// same grant neither error nor duplicate.
type EntitlementStore struct {
	baseURL    string
	serviceKey string
	hc         *http.Client
}

func NewEntitlementStore(baseURL, serviceKey string) *EntitlementStore {
	return &EntitlementStore{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		serviceKey: serviceKey,
		hc:         &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *EntitlementStore) Upsert(ctx context.Context, e entitlements.Entitlement) error {
	endpoint := s.baseURL + "/rest/v1/entitlements?on_conflict=user_id,category"
	body, err := json.Marshal([]entitlements.Entitlement{e})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Prefer", "resolution=merge-duplicates,return=minimal")

	resp, err := s.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorDetail))
		return fmt.Errorf("supabase upsert: status %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}
