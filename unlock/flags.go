// Package unlock implements the client-side half of the Pro flow: the typed
// local flag store and the return-redirect listener.
//
// The flags are an unauthenticated convenience cache. The entitlement of
// record lives server-side in the store written by the verified webhook;
// nothing here is a security boundary.
package unlock

import "sync"

// Local flag schema. Per-category flags are presence markers under
// categoryKeyPrefix; KeyAll overrides every category.
const (
	categoryKeyPrefix = "scopedlabs_pro_"
	KeyAll            = "scopedlabs_pro_all"
	KeySelected       = "sl_selected_category"
)

// KV is the minimal local-storage surface the unlock flow needs. Browser
// hosts back it with window.localStorage; tests use MemoryKV.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// Flags is the typed view over the unlock flag schema. Grants are monotonic:
// there is no revocation path, matching the server-side entitlements.
type Flags struct {
	kv KV
}

func NewFlags(kv KV) *Flags {
	return &Flags{kv: kv}
}

func (f *Flags) GrantCategory(category string) {
	f.kv.Set(categoryKeyPrefix+category, "1")
}

func (f *Flags) HasCategory(category string) bool {
	_, ok := f.kv.Get(categoryKeyPrefix + category)
	return ok
}

func (f *Flags) GrantAll() {
	f.kv.Set(KeyAll, "1")
}

func (f *Flags) HasAll() bool {
	_, ok := f.kv.Get(KeyAll)
	return ok
}

// HasAccess reports whether category (possibly empty) is unlocked, honoring
// the global override.
func (f *Flags) HasAccess(category string) bool {
	if f.HasAll() {
		return true
	}
	return category != "" && f.HasCategory(category)
}

func (f *Flags) SelectedCategory() string {
	v, _ := f.kv.Get(KeySelected)
	return v
}

func (f *Flags) SetSelectedCategory(category string) {
	f.kv.Set(KeySelected, category)
}

// MemoryKV is a map-backed KV for tests and non-browser hosts.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MemoryKV) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}
