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

// total_students is derived from the skill_students set table on every read.
var skillColumns = []string{
	"id", "name", "category", "description", "teacher_id", "teacher_name",
	"level", "duration_min", "price", "max_students", "tags", "is_active",
	"is_featured", "total_sessions",
	"(SELECT COUNT(*) FROM skill_students ss WHERE ss.skill_id = skills.id) AS total_students",
	"average_rating", "total_reviews", "created_at", "updated_at",
}

type SkillRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewSkillRepository(db *sqlx.DB, log *slog.Logger) *SkillRepository {
	return &SkillRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *SkillRepository) CreateSkill(ctx context.Context, skill *domain.Skill) error {
	const op = "internal.repository.postgres.CreateSkill"

	query, args, err := r.sq.Insert("skills").
		Columns("id", "name", "category", "description", "teacher_id",
			"teacher_name", "level", "duration_min", "price", "max_students",
			"tags").
		Values(skill.ID, skill.Name, skill.Category, skill.Description,
			skill.TeacherID, skill.TeacherName, skill.Level, skill.Duration,
			skill.Price, skill.MaxStudents, skill.Tags).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" {
				return fmt.Errorf("%s: %w: skill named '%s' already exists", op, apperrors.ErrConflict, skill.Name)
			}

			if pqErr.Code == "23503" {
				return fmt.Errorf("%s: %w: teacher with id '%s'", op, apperrors.ErrNotFound, skill.TeacherID)
			}
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *SkillRepository) GetSkillByID(ctx context.Context, skillID string) (*domain.Skill, error) {
	const op = "internal.repository.postgres.GetSkillByID"

	query, args, err := r.sq.Select(skillColumns...).
		From("skills").
		Where(sq.Eq{"id": skillID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var skill domain.Skill
	if err := r.db.GetContext(ctx, &skill, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: skill with id '%s'", op, apperrors.ErrNotFound, skillID)
		}

		return nil, fmt.Errorf("%s: failed to get skill: %w", op, err)
	}

	return &skill, nil
}

func (r *SkillRepository) ListSkills(ctx context.Context, filter repository.SkillFilter) ([]domain.Skill, int, error) {
	const op = "internal.repository.postgres.ListSkills"

	conds := sq.And{sq.Eq{"is_active": true}}
	if filter.Category != "" && filter.Category != "all" {
		conds = append(conds, sq.Eq{"category": filter.Category})
	}
	if filter.Level != "" {
		conds = append(conds, sq.Eq{"level": filter.Level})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"description": pattern},
		})
	}
	if filter.MinPrice > 0 {
		conds = append(conds, sq.GtOrEq{"price": filter.MinPrice})
	}
	if filter.MaxPrice > 0 {
		conds = append(conds, sq.LtOrEq{"price": filter.MaxPrice})
	}

	countQuery, args, err := r.sq.Select("COUNT(*)").From("skills").Where(conds).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to build count query: %w", op, err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("%s: failed to count skills: %w", op, err)
	}

	var order string
	switch filter.Sort {
	case "price-asc":
		order = "price ASC"
	case "price-desc":
		order = "price DESC"
	case "rating":
		order = "average_rating DESC"
	case "popular":
		order = "total_sessions DESC"
	default:
		order = "created_at DESC"
	}

	page, limit := normalizePage(filter.Page, filter.Limit, 12)

	query, args, err := r.sq.Select(skillColumns...).
		From("skills").
		Where(conds).
		OrderBy(order).
		Offset(uint64((page - 1) * limit)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var skills []domain.Skill
	if err := r.db.SelectContext(ctx, &skills, query, args...); err != nil {
		return nil, 0, fmt.Errorf("%s: failed to select skills: %w", op, err)
	}

	return skills, total, nil
}

func (r *SkillRepository) UpdateSkill(ctx context.Context, skill *domain.Skill) (*domain.Skill, error) {
	const op = "internal.repository.postgres.UpdateSkill"

	query, args, err := r.sq.Update("skills").
		Set("name", skill.Name).
		Set("category", skill.Category).
		Set("description", skill.Description).
		Set("level", skill.Level).
		Set("duration_min", skill.Duration).
		Set("price", skill.Price).
		Set("max_students", skill.MaxStudents).
		Set("tags", skill.Tags).
		Set("is_featured", skill.IsFeatured).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": skill.ID}).
		Suffix("RETURNING " + joinColumns(skillColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	var updated domain.Skill
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: skill with id '%s'", op, apperrors.ErrNotFound, skill.ID)
		}

		return nil, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return &updated, nil
}

func (r *SkillRepository) SoftDeleteSkill(ctx context.Context, skillID string) error {
	const op = "internal.repository.postgres.SoftDeleteSkill"

	query, args, err := r.sq.Update("skills").
		Set("is_active", false).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": skillID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: skill with id '%s'", op, apperrors.ErrNotFound, skillID)
	}

	return nil
}

func (r *SkillRepository) ApplySkillRating(ctx context.Context, ext sqlx.ExtContext, skillID string, avg float64, count int) error {
	const op = "internal.repository.postgres.ApplySkillRating"

	query, args, err := r.sq.Update("skills").
		Set("average_rating", avg).
		Set("total_reviews", count).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": skillID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := ext.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: skill with id '%s'", op, apperrors.ErrNotFound, skillID)
	}

	return nil
}

func (r *SkillRepository) IncrementSessions(ctx context.Context, tx *sqlx.Tx, skillID string) error {
	const op = "internal.repository.postgres.IncrementSessions"

	query, args, err := r.sq.Update("skills").
		Set("total_sessions", sq.Expr("total_sessions + 1")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": skillID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: skill with id '%s'", op, apperrors.ErrNotFound, skillID)
	}

	return nil
}

func (r *SkillRepository) AddStudent(ctx context.Context, tx *sqlx.Tx, skillID string, studentID string) error {
	const op = "internal.repository.postgres.AddStudent"

	// ON CONFLICT keeps set semantics: repeat students do not grow the set.
	query, args, err := r.sq.Insert("skill_students").
		Columns("skill_id", "student_id").
		Values(skillID, studentID).
		Suffix("ON CONFLICT (skill_id, student_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}
