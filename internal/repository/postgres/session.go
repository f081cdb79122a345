package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shlok-baraskar/skill-swap-hub/internal/apperrors"
	"github.com/shlok-baraskar/skill-swap-hub/internal/domain"
	"github.com/shlok-baraskar/skill-swap-hub/internal/repository"
)

var sessionColumns = []string{
	"id", "skill_id", "skill_name", "teacher_id", "student_id",
	"scheduled_at", "duration_min", "status", "format", "meeting_link",
	"location", "price", "notes",
	"payment_status", "payment_transaction_id", "payment_amount", "paid_at",
	"cancelled_by", "cancellation_reason", "cancelled_at",
	"reschedule_requested_by", "reschedule_original_date",
	"reschedule_new_date", "reschedule_reason", "reschedule_status",
	"completed_at", "stats_applied", "created_at", "updated_at",
}

type SessionRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewSessionRepository(db *sqlx.DB, log *slog.Logger) *SessionRepository {
	return &SessionRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *SessionRepository) CreateSession(ctx context.Context, session *domain.Session) error {
	const op = "internal.repository.postgres.CreateSession"

	query, args, err := r.sq.Insert("sessions").
		Columns("id", "skill_id", "skill_name", "teacher_id", "student_id",
			"scheduled_at", "duration_min", "status", "format", "meeting_link",
			"location", "price", "notes", "payment_status", "payment_amount").
		Values(session.ID, session.SkillID, session.SkillName,
			session.TeacherID, session.StudentID, session.ScheduledAt,
			session.Duration, session.Status, session.Format,
			session.MeetingLink, session.Location, session.Price,
			session.Notes, session.PaymentStatus, session.PaymentAmount).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return fmt.Errorf("%s: %w: referenced skill or user", op, apperrors.ErrNotFound)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *SessionRepository) GetSessionByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	const op = "internal.repository.postgres.GetSessionByID"

	return r.getSession(ctx, r.db, op, sessionID, false)
}

func (r *SessionRepository) GetSessionByIDWithLock(ctx context.Context, tx *sqlx.Tx, sessionID string) (*domain.Session, error) {
	const op = "internal.repository.postgres.GetSessionByIDWithLock"

	return r.getSession(ctx, tx, op, sessionID, true)
}

func (r *SessionRepository) getSession(ctx context.Context, ext sqlx.ExtContext, op, sessionID string, forUpdate bool) (*domain.Session, error) {
	builder := r.sq.Select(sessionColumns...).
		From("sessions").
		Where(sq.Eq{"id": sessionID})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var session domain.Session
	if err := sqlx.GetContext(ctx, ext, &session, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: session with id '%s'", op, apperrors.ErrNotFound, sessionID)
		}

		return nil, fmt.Errorf("%s: failed to get session: %w", op, err)
	}

	return &session, nil
}

// HasSchedulingConflict checks the teacher's calendar against the half-open
// window [windowStart, windowEnd). Only the existing session's start time is
// tested; its own duration is ignored on purpose, matching the booking rule
// the rest of the system was built around.
func (r *SessionRepository) HasSchedulingConflict(ctx context.Context, teacherID string, windowStart, windowEnd time.Time) (bool, error) {
	const op = "internal.repository.postgres.HasSchedulingConflict"

	query, args, err := r.sq.Select("1").
		From("sessions").
		Where(sq.And{
			sq.Eq{"teacher_id": teacherID},
			sq.GtOrEq{"scheduled_at": windowStart},
			sq.Lt{"scheduled_at": windowEnd},
			sq.Eq{"status": []string{string(domain.SessionScheduled), string(domain.SessionInProgress)}},
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var one int
	err = r.db.GetContext(ctx, &one, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: failed to probe for conflicts: %w", op, err)
	}

	return true, nil
}

func (r *SessionRepository) ListSessions(ctx context.Context, filter repository.SessionFilter) ([]domain.Session, int, error) {
	const op = "internal.repository.postgres.ListSessions"

	conds := sq.And{}
	switch filter.Kind {
	case "teaching":
		conds = append(conds, sq.Eq{"teacher_id": filter.UserID})
	case "learning":
		conds = append(conds, sq.Eq{"student_id": filter.UserID})
	default:
		conds = append(conds, sq.Or{
			sq.Eq{"teacher_id": filter.UserID},
			sq.Eq{"student_id": filter.UserID},
		})
	}
	if filter.Status != "" {
		conds = append(conds, sq.Eq{"status": filter.Status})
	}

	countQuery, args, err := r.sq.Select("COUNT(*)").From("sessions").Where(conds).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to build count query: %w", op, err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("%s: failed to count sessions: %w", op, err)
	}

	page, limit := normalizePage(filter.Page, filter.Limit, 20)

	query, args, err := r.sq.Select(sessionColumns...).
		From("sessions").
		Where(conds).
		OrderBy("scheduled_at DESC").
		Offset(uint64((page - 1) * limit)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var sessions []domain.Session
	if err := r.db.SelectContext(ctx, &sessions, query, args...); err != nil {
		return nil, 0, fmt.Errorf("%s: failed to select sessions: %w", op, err)
	}

	return sessions, total, nil
}

func (r *SessionRepository) UpcomingSessions(ctx context.Context, userID string, limit int) ([]domain.Session, error) {
	const op = "internal.repository.postgres.UpcomingSessions"

	if limit <= 0 {
		limit = 5
	}

	query, args, err := r.sq.Select(sessionColumns...).
		From("sessions").
		Where(sq.And{
			sq.Or{
				sq.Eq{"teacher_id": userID},
				sq.Eq{"student_id": userID},
			},
			sq.Eq{"status": string(domain.SessionScheduled)},
			sq.Expr("scheduled_at > now()"),
		}).
		OrderBy("scheduled_at ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var sessions []domain.Session
	if err := r.db.SelectContext(ctx, &sessions, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to select sessions: %w", op, err)
	}

	return sessions, nil
}

func (r *SessionRepository) MarkCompleted(ctx context.Context, tx *sqlx.Tx, sessionID string, completedAt time.Time) error {
	const op = "internal.repository.postgres.MarkCompleted"

	query, args, err := r.sq.Update("sessions").
		Set("status", string(domain.SessionCompleted)).
		Set("completed_at", completedAt).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": sessionID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: session with id '%s'", op, apperrors.ErrNotFound, sessionID)
	}

	return nil
}

func (r *SessionRepository) MarkCancelled(ctx context.Context, sessionID string, cancelledBy, reason string, cancelledAt time.Time) error {
	const op = "internal.repository.postgres.MarkCancelled"

	query, args, err := r.sq.Update("sessions").
		Set("status", string(domain.SessionCancelled)).
		Set("cancelled_by", cancelledBy).
		Set("cancellation_reason", reason).
		Set("cancelled_at", cancelledAt).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": sessionID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: session with id '%s'", op, apperrors.ErrNotFound, sessionID)
	}

	return nil
}

func (r *SessionRepository) SetRescheduleRequest(ctx context.Context, sessionID string, requestedBy string, originalDate, newDate time.Time, reason string) error {
	const op = "internal.repository.postgres.SetRescheduleRequest"

	// scheduled_at is left alone: the request sits pending until the other
	// party approves it.
	query, args, err := r.sq.Update("sessions").
		Set("reschedule_requested_by", requestedBy).
		Set("reschedule_original_date", originalDate).
		Set("reschedule_new_date", newDate).
		Set("reschedule_reason", reason).
		Set("reschedule_status", string(domain.ReschedulePending)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": sessionID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: session with id '%s'", op, apperrors.ErrNotFound, sessionID)
	}

	return nil
}

// MarkStatsApplied is a conditional update so the inline completion path and
// the reconciler cannot both count the same session.
func (r *SessionRepository) MarkStatsApplied(ctx context.Context, tx *sqlx.Tx, sessionID string) (bool, error) {
	const op = "internal.repository.postgres.MarkStatsApplied"

	query, args, err := r.sq.Update("sessions").
		Set("stats_applied", true).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": sessionID, "stats_applied": false}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: failed to read rows affected: %w", op, err)
	}

	return affected > 0, nil
}

func (r *SessionRepository) ListUnreconciled(ctx context.Context, tx *sqlx.Tx, limit int) ([]domain.Session, error) {
	const op = "internal.repository.postgres.ListUnreconciled"

	// SKIP LOCKED lets overlapping reconciliation runs divide the backlog
	// instead of blocking on each other.
	query, args, err := r.sq.Select(sessionColumns...).
		From("sessions").
		Where(sq.And{
			sq.Eq{"status": string(domain.SessionCompleted)},
			sq.Eq{"stats_applied": false},
		}).
		OrderBy("completed_at ASC").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var sessions []domain.Session
	if err := tx.SelectContext(ctx, &sessions, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to select sessions: %w", op, err)
	}

	return sessions, nil
}
