package cart

import "sync"

// Manager hands out one Store per cart token so the HTTP layer can serve
// many clients. Stores are created lazily, rehydrating from their snapshot.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store
	snaps  Snapshots
}

func NewManager(snaps Snapshots) *Manager {
	return &Manager{stores: make(map[string]*Store), snaps: snaps}
}

func (m *Manager) Store(token string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[token]; ok {
		return s
	}
	s := NewStore(StorageName+"-"+token, m.snaps)
	m.stores[token] = s
	return s
}

// Flush waits for every store's in-flight snapshot writes.
func (m *Manager) Flush() {
	m.mu.Lock()
	stores := make([]*Store, 0, len(m.stores))
	for _, s := range m.stores {
		stores = append(stores, s)
	}
	m.mu.Unlock()

	for _, s := range stores {
		s.Flush()
	}
}
