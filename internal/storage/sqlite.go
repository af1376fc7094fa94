package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveMap(ctx context.Context, record Record) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	meta, transitions, err := EncodeRecord(record)
	if err != nil {
		return err
	}
	shape, err := json.Marshal(record.Shape)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO maps (id, schema_version, created_at, shape, states, domain, meta, transitions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			schema_version = excluded.schema_version,
			created_at = excluded.created_at,
			shape = excluded.shape,
			states = excluded.states,
			domain = excluded.domain,
			meta = excluded.meta,
			transitions = excluded.transitions
	`, record.ID, record.SchemaVersion, record.CreatedAt.Unix(), shape, record.States,
		int64(len(record.Transitions)), meta, transitions)
	return err
}

func (s *SQLiteStore) GetMap(ctx context.Context, id string) (Record, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return Record{}, false, err
	}

	var meta, transitions []byte
	err = db.QueryRowContext(ctx, `SELECT meta, transitions FROM maps WHERE id = ?`, id).Scan(&meta, &transitions)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, false, nil
		}
		return Record{}, false, err
	}

	record, err := DecodeRecord(meta, transitions)
	if err != nil {
		return Record{}, false, fmt.Errorf("decode map %s: %w", id, err)
	}
	return record, true, nil
}

func (s *SQLiteStore) ListMaps(ctx context.Context) ([]Summary, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT id, created_at, shape, states, domain FROM maps ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			summary Summary
			created int64
			shape   []byte
			domain  int64
		)
		if err := rows.Scan(&summary.ID, &created, &shape, &summary.States, &domain); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(shape, &summary.Shape); err != nil {
			return nil, fmt.Errorf("decode shape of %s: %w", summary.ID, err)
		}
		summary.CreatedAt = time.Unix(created, 0).UTC()
		summary.Domain = uint64(domain)
		out = append(out, summary)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteMap(ctx context.Context, id string) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `DELETE FROM maps WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS maps (
			id TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL,
			created_at INTEGER NOT NULL,
			shape BLOB NOT NULL,
			states INTEGER NOT NULL,
			domain INTEGER NOT NULL,
			meta BLOB NOT NULL,
			transitions BLOB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS maps_created_at ON maps (created_at, id);
	`)
	return err
}

var _ Store = (*SQLiteStore)(nil)
