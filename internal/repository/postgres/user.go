package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shlok-baraskar/skill-swap-hub/internal/apperrors"
	"github.com/shlok-baraskar/skill-swap-hub/internal/domain"
	"github.com/shlok-baraskar/skill-swap-hub/internal/repository"
)

var userColumns = []string{
	"id", "name", "email", "role", "avatar", "bio", "title", "location",
	"phone_number", "teaching_experience", "hourly_rate", "is_verified",
	"is_active", "sessions_taught", "sessions_taken", "average_rating",
	"total_reviews", "total_earnings", "created_at", "updated_at",
}

type UserRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewUserRepository(db *sqlx.DB, log *slog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	const op = "internal.repository.postgres.CreateUser"

	query, args, err := r.sq.Insert("users").
		Columns("id", "name", "email", "role", "avatar", "bio", "title",
			"location", "phone_number", "teaching_experience", "hourly_rate").
		Values(user.ID, user.Name, user.Email, user.Role, user.Avatar, user.Bio,
			user.Title, user.Location, user.PhoneNumber,
			user.TeachingExperience, user.HourlyRate).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("%s: %w: email '%s' is already registered", op, apperrors.ErrConflict, user.Email)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	const op = "internal.repository.postgres.GetUserByID"

	query, args, err := r.sq.Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: user with id '%s'", op, apperrors.ErrNotFound, userID)
		}

		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	return &user, nil
}

func (r *UserRepository) UpdateUserProfile(ctx context.Context, userID string, upd repository.UserProfileUpdate) (*domain.User, error) {
	const op = "internal.repository.postgres.UpdateUserProfile"

	updateBuilder := r.sq.Update("users").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": userID})

	if upd.Name != nil {
		updateBuilder = updateBuilder.Set("name", *upd.Name)
	}
	if upd.Bio != nil {
		updateBuilder = updateBuilder.Set("bio", *upd.Bio)
	}
	if upd.Title != nil {
		updateBuilder = updateBuilder.Set("title", *upd.Title)
	}
	if upd.Location != nil {
		updateBuilder = updateBuilder.Set("location", *upd.Location)
	}
	if upd.PhoneNumber != nil {
		updateBuilder = updateBuilder.Set("phone_number", *upd.PhoneNumber)
	}
	if upd.Avatar != nil {
		updateBuilder = updateBuilder.Set("avatar", *upd.Avatar)
	}
	if upd.HourlyRate != nil {
		updateBuilder = updateBuilder.Set("hourly_rate", *upd.HourlyRate)
	}
	if upd.TeachingExperience != nil {
		updateBuilder = updateBuilder.Set("teaching_experience", *upd.TeachingExperience)
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING " + joinColumns(userColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	var user domain.User
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: user with id '%s'", op, apperrors.ErrNotFound, userID)
		}

		return nil, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return &user, nil
}

func (r *UserRepository) ListUsers(ctx context.Context, filter repository.UserFilter) ([]domain.User, int, error) {
	const op = "internal.repository.postgres.ListUsers"

	conds := sq.And{sq.Eq{"is_active": true}}
	if filter.Role != "" {
		conds = append(conds, sq.Eq{"role": filter.Role})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"title": pattern},
			sq.ILike{"bio": pattern},
		})
	}

	countQuery, args, err := r.sq.Select("COUNT(*)").From("users").Where(conds).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to build count query: %w", op, err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("%s: failed to count users: %w", op, err)
	}

	page, limit := normalizePage(filter.Page, filter.Limit, 20)

	query, args, err := r.sq.Select(userColumns...).
		From("users").
		Where(conds).
		OrderBy("average_rating DESC", "created_at DESC").
		Offset(uint64((page - 1) * limit)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var users []domain.User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("%s: failed to select users: %w", op, err)
	}

	return users, total, nil
}

func (r *UserRepository) ListUserSkills(ctx context.Context, userID string) ([]domain.UserSkill, error) {
	const op = "internal.repository.postgres.ListUserSkills"

	query, args, err := r.sq.Select("user_id", "skill_id", "skill_name", "category", "kind").
		From("user_skills").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("skill_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var entries []domain.UserSkill
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to select user skills: %w", op, err)
	}

	return entries, nil
}

func (r *UserRepository) AddUserSkill(ctx context.Context, entry domain.UserSkill) error {
	const op = "internal.repository.postgres.AddUserSkill"

	query, args, err := r.sq.Insert("user_skills").
		Columns("user_id", "skill_id", "skill_name", "category", "kind").
		Values(entry.UserID, entry.SkillID, entry.SkillName, entry.Category, entry.Kind).
		Suffix("ON CONFLICT (user_id, skill_id, kind) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return fmt.Errorf("%s: %w: user or skill does not exist", op, apperrors.ErrNotFound)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *UserRepository) ApplyUserRating(ctx context.Context, ext sqlx.ExtContext, userID string, avg float64, count int) error {
	const op = "internal.repository.postgres.ApplyUserRating"

	query, args, err := r.sq.Update("users").
		Set("average_rating", avg).
		Set("total_reviews", count).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := ext.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: user with id '%s'", op, apperrors.ErrNotFound, userID)
	}

	return nil
}

func (r *UserRepository) IncrementTaught(ctx context.Context, tx *sqlx.Tx, teacherID string, earnings float64) error {
	const op = "internal.repository.postgres.IncrementTaught"

	query, args, err := r.sq.Update("users").
		Set("sessions_taught", sq.Expr("sessions_taught + 1")).
		Set("total_earnings", sq.Expr("total_earnings + ?", earnings)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": teacherID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: teacher with id '%s'", op, apperrors.ErrNotFound, teacherID)
	}

	return nil
}

func (r *UserRepository) IncrementTaken(ctx context.Context, tx *sqlx.Tx, studentID string) error {
	const op = "internal.repository.postgres.IncrementTaken"

	query, args, err := r.sq.Update("users").
		Set("sessions_taken", sq.Expr("sessions_taken + 1")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": studentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: student with id '%s'", op, apperrors.ErrNotFound, studentID)
	}

	return nil
}
