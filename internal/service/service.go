// Package service holds the business rules: booking conflicts, the session
// lifecycle, rating aggregation and community engagement. Repositories are
// injected so every rule is testable against mocks.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/shlok-baraskar/skill-swap-hub/pkg/logger/sl"
)

// Transactor begins database transactions for multi-statement operations.
// *sqlx.DB satisfies it; tests substitute sqlmock.
type Transactor interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

type base struct {
	log *slog.Logger
	db  Transactor
}

// transaction runs fn inside a transaction, rolling back on error.
func (b *base) transaction(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := b.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			b.log.Error("failed to rollback transaction", slog.String("op", op), sl.Err(err))
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return nil
}
