package importer

import (
	"fmt"
	"sync"

	"github.com/mesh-intelligence/loantrack/pkg/types"
)

// memStore is an in-memory types.Store that validates like the real one.
type memStore struct {
	mu     sync.Mutex
	tables map[string]*memTable
	failOn string // collection whose Set fails with a storage error
}

func newMemStore() *memStore {
	s := &memStore{tables: make(map[string]*memTable)}
	for _, name := range types.StandardTableNames {
		s.tables[name] = &memTable{store: s, name: name}
	}
	return s
}

func (s *memStore) GetTable(name string) (types.Table, error) {
	t, ok := s.tables[name]
	if !ok {
		return nil, types.ErrTableNotFound
	}
	return t, nil
}

func (s *memStore) Attach(types.Config) error { return nil }
func (s *memStore) Detach() error             { return nil }

type memTable struct {
	store *memStore
	name  string
	order []string
	rows  map[string]types.Record
}

func (t *memTable) Get(id string) (types.Record, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	r, ok := t.rows[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	return r, nil
}

func (t *memTable) Set(id string, data types.Record) (string, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if t.store.failOn == t.name {
		return "", fmt.Errorf("disk full")
	}
	if id == "" {
		id = data.ID()
	}
	if id == "" {
		id = fmt.Sprintf("%s-%d", t.name, len(t.order)+1)
	}
	rec := data.Clone()
	rec[types.KeyField] = id
	rec, err := types.NormalizeRecord(t.name, rec)
	if err != nil {
		return "", err
	}
	if t.rows == nil {
		t.rows = make(map[string]types.Record)
	}
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = rec
	return id, nil
}

func (t *memTable) Delete(id string) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	delete(t.rows, id)
	return nil
}

func (t *memTable) Fetch(types.Filter) ([]types.Record, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	out := make([]types.Record, 0, len(t.order))
	for _, id := range t.order {
		if r, ok := t.rows[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}
