package contract

import (
	"sort"
	"sync"
)

// MemStore keeps all state in a map. Writes of an Update are staged and applied only on success.
type MemStore struct {
	mu sync.RWMutex
	db map[string]string
}

// NewMemStore returns an empty store.
func NewMemStore() *MemStore {
	return &MemStore{db: make(map[string]string)}
}

func (m *MemStore) Update(fn func(State) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := newStagedState(m.db)
	if err := fn(st); err != nil {
		return err
	}
	for k, v := range st.writes {
		if v == nil {
			delete(m.db, k)
			continue
		}
		m.db[k] = *v
	}
	return nil
}

func (m *MemStore) View(fn func(State) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fn(newStagedState(m.db))
}

// Len returns the number of committed keys.
func (m *MemStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.db)
}

// Keys returns committed keys in sorted order, used by tests to compare whole stores.
func (m *MemStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.db))
	for k := range m.db {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// stagedState overlays uncommitted writes on top of the committed map. A nil value is a delete.
type stagedState struct {
	base   map[string]string
	writes map[string]*string
}

func newStagedState(base map[string]string) *stagedState {
	return &stagedState{base: base, writes: make(map[string]*string)}
}

func (s *stagedState) Set(key, value string) {
	v := value
	s.writes[key] = &v
}

func (s *stagedState) Get(key string) *string {
	if v, ok := s.writes[key]; ok {
		if v == nil {
			return nil
		}
		cp := *v
		return &cp
	}
	val, ok := s.base[key]
	if !ok {
		return nil
	}
	return &val
}

func (s *stagedState) Delete(key string) {
	s.writes[key] = nil
}
