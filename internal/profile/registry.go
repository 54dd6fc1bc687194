package profile

import (
	"sort"
	"sync"

	"github.com/jmylchreest/padprofile/internal/model"
)

// Key identifies a store by game mode and layout id.
type Key struct {
	Mode     model.GameMode
	LayoutID string
}

// String returns the key's identifier.
func (k Key) String() string {
	return "profile_" + k.Mode.StringID() + "_" + k.LayoutID
}

// Registry hands out one Store per (mode, layout).
type Registry struct {
	mu     sync.Mutex
	dm     DeviceManager
	opts   []Option
	stores map[Key]*Store
}

// NewRegistry creates a registry whose stores attach to dm and are built
// with opts.
func NewRegistry(dm DeviceManager, opts ...Option) *Registry {
	return &Registry{
		dm:     dm,
		opts:   opts,
		stores: make(map[Key]*Store),
	}
}

// Get returns the store for (mode, layout), creating it on first use.
func (r *Registry) Get(mode model.GameMode, layout *model.Layout) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := Key{Mode: mode, LayoutID: layout.ID}
	if s, ok := r.stores[key]; ok {
		return s
	}

	s := NewStore(mode, layout, r.dm, r.opts...)
	r.stores[key] = s
	return s
}

// Lookup returns an existing store without creating one.
func (r *Registry) Lookup(mode model.GameMode, layoutID string) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.stores[Key{Mode: mode, LayoutID: layoutID}]
	return s, ok
}

// Keys returns the keys of all created stores, sorted.
func (r *Registry) Keys() []Key {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]Key, 0, len(r.stores))
	for k := range r.stores {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}
