/*
engine.go - Query execution: validation, reentrancy, persistence

PURPOSE:
  Hosts the pieces shared by all six executors: the nothing-unconstrained
  safety rail, the single-in-flight guard, the data-provider contract and
  the best-effort active-query persistence that follows a successful run.

EXECUTION FLOW:
  1. Validate (query selected, >=1 constraint, dates ordered) - user-visible
     errors, no data touched
  2. Acquire the in-flight slot (concurrent requests are dropped)
  3. Pull the record collections through the DataProvider
  4. Execute the category's filter + aggregation
  5. Persist the snapshot best-effort (retry once, log, never surface)

CONCURRENCY:
  Filtering is synchronous and in-memory; the guard covers the whole run
  including the persistence round-trip. The result reflects the collection
  snapshot at invocation time, nothing stronger.

SEE ALSO:
  - reportes/: The six Query implementations
  - errors.go: Validation error messages
*/
package consulta

import (
	"context"
	"log"
	"sync/atomic"
)

// DataProvider supplies record collections to executors. Implementations
// are expected to retry a load once when their cached collection is empty
// (the ensure-loaded capability); the engine does not re-ask.
type DataProvider interface {
	Records(ctx context.Context, t QueryType) ([]Record, error)
}

// SnapshotStore persists the active query of a user. Absence of a stored
// snapshot is not an error.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snap Snapshot) error
}

// Query is one configured, immutable query: a category plus its filter
// criteria. Implementations live in the reportes package.
type Query interface {
	// Type returns the record category the query runs against.
	Type() QueryType

	// HasFilters reports whether at least one category-specific criterion
	// is active.
	HasFilters() bool

	// Range returns the standard start/end date pair.
	Range() DateRange

	// Execute applies the criteria against the provider's collections and
	// aggregates the matches.
	Execute(ctx context.Context, provider DataProvider) (*QueryResult, error)
}

// Runner executes queries with the shared validation and persistence
// behavior. Zero value is not usable; use NewRunner.
type Runner struct {
	provider  DataProvider
	snapshots SnapshotStore
	inFlight  atomic.Bool
}

func NewRunner(provider DataProvider, snapshots SnapshotStore) *Runner {
	return &Runner{provider: provider, snapshots: snapshots}
}

// Validate applies the pre-data checks shared by all categories.
func Validate(q Query) error {
	if q == nil || !KnownType(q.Type()) {
		return ErrNoQueryType
	}
	if err := q.Range().Validate(); err != nil {
		return err
	}
	if !q.HasFilters() && !q.Range().Active() {
		return ErrNoFilters
	}
	return nil
}

// Run validates and executes a query, then persists the snapshot
// best-effort. A request arriving while another run is in flight is dropped
// with ErrQueryInFlight rather than queued.
func (r *Runner) Run(ctx context.Context, q Query) (*QueryResult, error) {
	if err := Validate(q); err != nil {
		return nil, err
	}
	if !r.inFlight.CompareAndSwap(false, true) {
		return nil, ErrQueryInFlight
	}
	defer r.inFlight.Store(false)

	result, err := q.Execute(ctx, r.provider)
	if err != nil {
		return nil, err
	}

	r.saveSnapshot(ctx, q, result)
	return result, nil
}

// saveSnapshot upserts the active query, retrying once. Failures are logged
// and swallowed: the in-memory result is already good.
func (r *Runner) saveSnapshot(ctx context.Context, q Query, result *QueryResult) {
	if r.snapshots == nil {
		return
	}
	snap := Snapshot{
		QueryType: q.Type(),
		StartDate: q.Range().Start,
		EndDate:   q.Range().End,
		Results:   result,
	}
	err := r.snapshots.SaveSnapshot(ctx, snap)
	if err == nil {
		return
	}
	log.Printf("Warning: saving active query failed, retrying once: %v", err)
	if err := r.snapshots.SaveSnapshot(ctx, snap); err != nil {
		log.Printf("Warning: active query not persisted (results remain available locally): %v", err)
	}
}
