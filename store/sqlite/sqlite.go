/*
Package sqlite provides the SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Persists the six record collections and the per-user active-query
  snapshot. Record collections are loosely-typed by design - historical
  clients wrote the same logical field under several spellings - so each
  record is stored as a JSON document rather than widening a column per
  spelling. The engine's alias resolution handles the rest.

INTERFACES IMPLEMENTED:
  consulta.SnapshotStore: Active-query upsert

KEY TABLES:
  records:      One row per record, keyed by (category, id), document JSON
  user_queries: At most one snapshot per query type; overwritten on each
                successful run, cleared explicitly

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/consulta.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - consulta/engine.go: SnapshotStore contract
  - api/handlers.go: The data provider built on this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/almacen/consulta-engine/consulta"
)

// Store implements record and snapshot persistence using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Record collections (loosely-typed documents)
	CREATE TABLE IF NOT EXISTS records (
		category TEXT NOT NULL,
		id INTEGER NOT NULL,
		doc_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (category, id)
	);

	CREATE INDEX IF NOT EXISTS idx_records_category
		ON records(category);

	-- Active query snapshots (at most one per query type)
	CREATE TABLE IF NOT EXISTS user_queries (
		id TEXT PRIMARY KEY,
		query_type TEXT NOT NULL UNIQUE,
		start_date TEXT,
		end_date TEXT,
		results_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_user_queries_updated
		ON user_queries(updated_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RECORD COLLECTIONS
// =============================================================================

// SaveRecord inserts one record document into a collection. When the
// document carries no numeric id, the next id of the category is assigned
// and injected into the stored document.
func (s *Store) SaveRecord(ctx context.Context, category consulta.QueryType, doc map[string]any) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := numericID(doc["id"])
	if !ok {
		row := s.db.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(id), 0) + 1 FROM records WHERE category = ?`, string(category))
		if err := row.Scan(&id); err != nil {
			return 0, err
		}
		doc["id"] = id
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return 0, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO records (category, id, doc_json, created_at) VALUES (?, ?, ?, ?)`,
		string(category), id, string(docJSON), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ReplaceRecords swaps a whole collection, used by seeding.
func (s *Store) ReplaceRecords(ctx context.Context, category consulta.QueryType, docs []map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE category = ?`, string(category)); err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for i, doc := range docs {
		id, ok := numericID(doc["id"])
		if !ok {
			id = int64(i + 1)
			doc["id"] = id
		}
		docJSON, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO records (category, id, doc_json, created_at) VALUES (?, ?, ?, ?)`,
			string(category), id, string(docJSON), now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListRecords returns a collection in insertion (id) order.
func (s *Store) ListRecords(ctx context.Context, category consulta.QueryType) ([]consulta.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT doc_json FROM records WHERE category = ? ORDER BY id`, string(category))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []consulta.Record
	for rows.Next() {
		var docJSON string
		if err := rows.Scan(&docJSON); err != nil {
			return nil, err
		}
		var doc map[string]any
		if err := json.Unmarshal([]byte(docJSON), &doc); err != nil {
			return nil, err
		}
		out = append(out, consulta.Record(doc))
	}
	return out, rows.Err()
}

// =============================================================================
// ACTIVE QUERY SNAPSHOTS (consulta.SnapshotStore)
// =============================================================================

// SaveSnapshot upserts the snapshot for its query type.
func (s *Store) SaveSnapshot(ctx context.Context, snap consulta.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	resultsJSON, err := json.Marshal(snap.Results)
	if err != nil {
		return err
	}
	id := snap.ID
	if id == "" {
		id = uuid.NewString()
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO user_queries (id, query_type, start_date, end_date, results_json, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(query_type) DO UPDATE SET
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			results_json = excluded.results_json,
			updated_at = excluded.updated_at`,
		id, string(snap.QueryType), snap.StartDate, snap.EndDate,
		string(resultsJSON), time.Now().UTC().Format(time.RFC3339))
	return err
}

// GetActiveSnapshot returns the most recently saved snapshot, or nil when
// none is stored (absence is not an error).
func (s *Store) GetActiveSnapshot(ctx context.Context) (*consulta.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, query_type, start_date, end_date, results_json
		FROM user_queries ORDER BY updated_at DESC LIMIT 1`)
	return scanSnapshot(row)
}

// GetSnapshotByType returns the stored snapshot of one query type, or nil.
func (s *Store) GetSnapshotByType(ctx context.Context, t consulta.QueryType) (*consulta.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, query_type, start_date, end_date, results_json
		FROM user_queries WHERE query_type = ?`, string(t))
	return scanSnapshot(row)
}

// ClearSnapshots removes every stored snapshot, the explicit user action.
func (s *Store) ClearSnapshots(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM user_queries`)
	return err
}

func scanSnapshot(row *sql.Row) (*consulta.Snapshot, error) {
	var snap consulta.Snapshot
	var queryType, resultsJSON string
	err := row.Scan(&snap.ID, &queryType, &snap.StartDate, &snap.EndDate, &resultsJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	snap.QueryType = consulta.QueryType(queryType)
	if err := json.Unmarshal([]byte(resultsJSON), &snap.Results); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Reset wipes all data, used by tests and the dev reset endpoint.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"records", "user_queries"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func numericID(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case float64:
		return int64(t), true
	}
	return 0, false
}
