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

var reviewColumns = []string{
	"id", "skill_id", "teacher_id", "student_id", "session_id", "rating",
	"comment", "response_text", "responded_at", "is_visible",
	"created_at", "updated_at",
}

type ReviewRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewReviewRepository(db *sqlx.DB, log *slog.Logger) *ReviewRepository {
	return &ReviewRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ReviewRepository) CreateReview(ctx context.Context, review *domain.Review) error {
	const op = "internal.repository.postgres.CreateReview"

	query, args, err := r.sq.Insert("reviews").
		Columns("id", "skill_id", "teacher_id", "student_id", "session_id",
			"rating", "comment").
		Values(review.ID, review.SkillID, review.TeacherID, review.StudentID,
			review.SessionID, review.Rating, review.Comment).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" {
				return fmt.Errorf("%s: %w", op, &apperrors.DuplicateReviewError{
					SessionID: review.SessionID,
					StudentID: review.StudentID,
				})
			}

			if pqErr.Code == "23503" {
				return fmt.Errorf("%s: %w: referenced session, skill or user", op, apperrors.ErrNotFound)
			}
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *ReviewRepository) GetReviewByID(ctx context.Context, reviewID string) (*domain.Review, error) {
	const op = "internal.repository.postgres.GetReviewByID"

	query, args, err := r.sq.Select(reviewColumns...).
		From("reviews").
		Where(sq.Eq{"id": reviewID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var review domain.Review
	if err := r.db.GetContext(ctx, &review, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: review with id '%s'", op, apperrors.ErrNotFound, reviewID)
		}

		return nil, fmt.Errorf("%s: failed to get review: %w", op, err)
	}

	helpful, err := selectMembers(ctx, r.db, r.sq, "review_helpful", "review_id", reviewID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to load helpful marks: %w", op, err)
	}
	review.HelpfulIDs = helpful

	return &review, nil
}

// ListReviews only surfaces visible reviews. The aggregator deliberately does
// not go through here; it reads every rating via TeacherRatings/SkillRatings.
func (r *ReviewRepository) ListReviews(ctx context.Context, filter repository.ReviewFilter) ([]domain.Review, int, error) {
	const op = "internal.repository.postgres.ListReviews"

	conds := sq.And{sq.Eq{"is_visible": true}}
	if filter.SkillID != "" {
		conds = append(conds, sq.Eq{"skill_id": filter.SkillID})
	}
	if filter.TeacherID != "" {
		conds = append(conds, sq.Eq{"teacher_id": filter.TeacherID})
	}
	if filter.StudentID != "" {
		conds = append(conds, sq.Eq{"student_id": filter.StudentID})
	}

	countQuery, args, err := r.sq.Select("COUNT(*)").From("reviews").Where(conds).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to build count query: %w", op, err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("%s: failed to count reviews: %w", op, err)
	}

	page, limit := normalizePage(filter.Page, filter.Limit, 10)

	query, args, err := r.sq.Select(reviewColumns...).
		From("reviews").
		Where(conds).
		OrderBy("created_at DESC").
		Offset(uint64((page - 1) * limit)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var reviews []domain.Review
	if err := r.db.SelectContext(ctx, &reviews, query, args...); err != nil {
		return nil, 0, fmt.Errorf("%s: failed to select reviews: %w", op, err)
	}

	return reviews, total, nil
}

func (r *ReviewRepository) UpdateReview(ctx context.Context, reviewID string, upd repository.ReviewUpdate) (*domain.Review, error) {
	const op = "internal.repository.postgres.UpdateReview"

	builder := r.sq.Update("reviews").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": reviewID}).
		Suffix("RETURNING " + joinColumns(reviewColumns))
	if upd.Rating != nil {
		builder = builder.Set("rating", *upd.Rating)
	}
	if upd.Comment != nil {
		builder = builder.Set("comment", *upd.Comment)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	var review domain.Review
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&review); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: review with id '%s'", op, apperrors.ErrNotFound, reviewID)
		}

		return nil, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return &review, nil
}

func (r *ReviewRepository) DeleteReview(ctx context.Context, reviewID string) error {
	const op = "internal.repository.postgres.DeleteReview"

	query, args, err := r.sq.Delete("reviews").
		Where(sq.Eq{"id": reviewID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build delete query: %w", op, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute delete: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: review with id '%s'", op, apperrors.ErrNotFound, reviewID)
	}

	return nil
}

func (r *ReviewRepository) SetResponse(ctx context.Context, reviewID string, text string, respondedAt time.Time) (*domain.Review, error) {
	const op = "internal.repository.postgres.SetResponse"

	query, args, err := r.sq.Update("reviews").
		Set("response_text", text).
		Set("responded_at", respondedAt).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": reviewID}).
		Suffix("RETURNING " + joinColumns(reviewColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	var review domain.Review
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&review); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: review with id '%s'", op, apperrors.ErrNotFound, reviewID)
		}

		return nil, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return &review, nil
}

func (r *ReviewRepository) TeacherRatings(ctx context.Context, teacherID string) ([]float64, error) {
	const op = "internal.repository.postgres.TeacherRatings"

	return r.ratings(ctx, op, sq.Eq{"teacher_id": teacherID})
}

func (r *ReviewRepository) SkillRatings(ctx context.Context, skillID string) ([]float64, error) {
	const op = "internal.repository.postgres.SkillRatings"

	return r.ratings(ctx, op, sq.Eq{"skill_id": skillID})
}

// ratings returns every rating regardless of visibility. Hidden reviews still
// count toward the aggregate even though listings filter them out.
func (r *ReviewRepository) ratings(ctx context.Context, op string, cond sq.Eq) ([]float64, error) {
	query, args, err := r.sq.Select("rating").
		From("reviews").
		Where(cond).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var ratings []float64
	if err := r.db.SelectContext(ctx, &ratings, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to select ratings: %w", op, err)
	}

	return ratings, nil
}

func (r *ReviewRepository) ToggleHelpful(ctx context.Context, reviewID string, userID string) (*domain.ToggleResult, error) {
	const op = "internal.repository.postgres.ToggleHelpful"

	result, err := toggleMembership(ctx, r.db, r.log, r.sq, "review_helpful", "review_id", reviewID, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}
