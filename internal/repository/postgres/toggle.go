package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/shlok-baraskar/skill-swap-hub/internal/domain"
	"github.com/shlok-baraskar/skill-swap-hub/pkg/logger/sl"
)

// toggleMembership flips userID's membership in a like/helpful set table and
// returns the resulting count and state. The same delete-or-insert sequence
// backs discussion likes, reply likes and review helpful marks; rows are
// appended at the tail (liked_at default) so ordering stays deterministic.
func toggleMembership(
	ctx context.Context,
	db *sqlx.DB,
	log *slog.Logger,
	sqb sq.StatementBuilderType,
	table string,
	targetCol string,
	targetID string,
	userID string,
) (*domain.ToggleResult, error) {
	const op = "internal.repository.postgres.toggleMembership"

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Error("failed to rollback toggle transaction", sl.Err(err))
		}
	}()

	deleteQuery, args, err := sqb.Delete(table).
		Where(sq.Eq{targetCol: targetID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build delete query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, deleteQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to execute delete: %w", op, err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read rows affected: %w", op, err)
	}

	if removed == 0 {
		insertQuery, args, err := sqb.Insert(table).
			Columns(targetCol, "user_id").
			Values(targetID, userID).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%s: failed to build insert query: %w", op, err)
		}

		if _, err := tx.ExecContext(ctx, insertQuery, args...); err != nil {
			return nil, fmt.Errorf("%s: failed to execute insert: %w", op, err)
		}
	}

	countQuery, args, err := sqb.Select("COUNT(*)").
		From(table).
		Where(sq.Eq{targetCol: targetID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build count query: %w", op, err)
	}

	var count int
	if err := tx.GetContext(ctx, &count, countQuery, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to count members: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return &domain.ToggleResult{
		Count: count,
		State: removed == 0,
	}, nil
}

// selectMembers returns the user ids of a like/helpful set in append order.
func selectMembers(
	ctx context.Context,
	ext sqlx.ExtContext,
	sqb sq.StatementBuilderType,
	table string,
	targetCol string,
	targetID string,
) ([]string, error) {
	query, args, err := sqb.Select("user_id").
		From(table).
		Where(sq.Eq{targetCol: targetID}).
		OrderBy("liked_at", "user_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build members query: %w", err)
	}

	var ids []string
	if err := sqlx.SelectContext(ctx, ext, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select members: %w", err)
	}

	return ids, nil
}
