package dbx

import (
	"context"
	"database/sql"
)

// Getter/Queryer let store helpers run against *sql.DB and *sql.Tx alike.
type Getter interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// WithinTx runs fn in a transaction (commit on nil, rollback on error).
func WithinTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
