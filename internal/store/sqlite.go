// internal/store/sqlite.go
//
// SQLite-backed KV implementation over the `kv` table (see sql/ migrations).
// Each Set is a single upsert statement, so readers never observe a
// partial-field write.

package store

import (
	"context"
	"database/sql"
	"errors"
)

type sqliteKV struct {
	db *sql.DB
}

// NewSQLiteKV constructs a KV backed by the kv table in db.
func NewSQLiteKV(db *sql.DB) KV {
	return &sqliteKV{db: db}
}

func (s *sqliteKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var v []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key=?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (s *sqliteKV) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv(key, value) VALUES(?,?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`, key, value)
	return err
}

func (s *sqliteKV) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key=?`, key)
	return err
}
