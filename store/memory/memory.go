// Package memory provides in-memory Store implementations (for testing/dev).
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/almacen/consulta-engine/consulta"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Store keeps record collections and active-query snapshots in process
// memory. It satisfies both consulta.DataProvider and consulta.SnapshotStore,
// which makes it the natural backing for engine tests and ":memory:"-style
// dev runs without SQLite.
type Store struct {
	mu        sync.RWMutex
	records   map[consulta.QueryType][]consulta.Record
	snapshots map[consulta.QueryType]consulta.Snapshot
}

func New() *Store {
	return &Store{
		records:   make(map[consulta.QueryType][]consulta.Record),
		snapshots: make(map[consulta.QueryType]consulta.Snapshot),
	}
}

// Seed replaces the collection for one category.
func (m *Store) Seed(category consulta.QueryType, docs []consulta.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]consulta.Record, len(docs))
	copy(cp, docs)
	m.records[category] = cp
}

// Add appends one record to a category.
func (m *Store) Add(category consulta.QueryType, doc consulta.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[category] = append(m.records[category], doc)
}

// Records returns a copy of the collection so callers cannot mutate the
// stored records.
func (m *Store) Records(_ context.Context, category consulta.QueryType) ([]consulta.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]consulta.Record, len(m.records[category]))
	copy(out, m.records[category])
	return out, nil
}

// SaveSnapshot upserts the active query for its category, one per type.
func (m *Store) SaveSnapshot(_ context.Context, snap consulta.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if snap.ID == "" {
		if prev, ok := m.snapshots[snap.QueryType]; ok {
			snap.ID = prev.ID
		} else {
			snap.ID = uuid.NewString()
		}
	}
	m.snapshots[snap.QueryType] = snap
	return nil
}

// GetSnapshotByType returns the stored active query for a category, or nil.
func (m *Store) GetSnapshotByType(_ context.Context, t consulta.QueryType) (*consulta.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.snapshots[t]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

// ClearSnapshots drops all stored active queries.
func (m *Store) ClearSnapshots(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots = make(map[consulta.QueryType]consulta.Snapshot)
	return nil
}
