// backend/internal/adapters/out/db/schema.go
package db

import (
	"context"
	"database/sql"
	"errors"
)

// Schema is the document layout of the PostgreSQL remote store: one JSONB
// document per row, keyed by a Firestore-style id.
const Schema = `
CREATE TABLE IF NOT EXISTS products (
  id         TEXT PRIMARY KEY,
  doc        JSONB NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS orders (
  id         TEXT PRIMARY KEY,
  order_id   TEXT NOT NULL,
  date       TEXT NOT NULL,
  status     TEXT NOT NULL DEFAULT 'pending',
  doc        JSONB NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS orders_date_idx ON orders (date DESC);
`

// EnsureSchema creates the tables when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("db is nil")
	}
	_, err := db.ExecContext(ctx, Schema)
	return err
}
