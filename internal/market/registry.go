package market

import "sync"

// Registry holds the set of markets the broker is tracking. It is populated
// during bootstrap and read-only to the commitment flow afterwards; Track is
// safe to call concurrently with lookups for operator-driven additions.
type Registry struct {
	mtx     sync.RWMutex
	markets map[string]*Market
}

func NewRegistry() *Registry {
	return &Registry{
		markets: make(map[string]*Market),
	}
}

func (r *Registry) Track(m *Market) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.markets[m.Name] = m
}

func (r *Registry) Get(name string) (*Market, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	m, ok := r.markets[name]
	return m, ok
}

func (r *Registry) Names() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	names := make([]string, 0, len(r.markets))
	for name := range r.markets {
		names = append(names, name)
	}
	return names
}
