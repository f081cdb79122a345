package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/montanaflynn/stats"
	"github.com/shlok-baraskar/skill-swap-hub/internal/apperrors"
	"github.com/shlok-baraskar/skill-swap-hub/internal/domain"
	"github.com/shlok-baraskar/skill-swap-hub/internal/repository"
)

// ReviewService implements reviews and the rating aggregation that feeds the
// teacher and skill profiles.
type ReviewService interface {
	CreateReview(ctx context.Context, params CreateReviewParams) (*domain.Review, error)
	GetReview(ctx context.Context, reviewID string) (*domain.Review, error)
	ListReviews(ctx context.Context, filter repository.ReviewFilter) ([]domain.Review, int, error)
	UpdateReview(ctx context.Context, reviewID string, upd repository.ReviewUpdate) (*domain.Review, error)
	DeleteReview(ctx context.Context, reviewID string) error
	RespondToReview(ctx context.Context, reviewID, teacherID, text string) (*domain.Review, error)
	ToggleHelpful(ctx context.Context, reviewID, userID string) (*domain.ToggleResult, error)
}

type ReviewServiceImpl struct {
	base
	reviews  repository.ReviewRepository
	sessions repository.SessionRepository
	users    repository.UserRepository
	skills   repository.SkillRepository
}

func NewReviewService(
	log *slog.Logger,
	db Transactor,
	reviews repository.ReviewRepository,
	sessions repository.SessionRepository,
	users repository.UserRepository,
	skills repository.SkillRepository,
) *ReviewServiceImpl {
	return &ReviewServiceImpl{
		base:     base{log: log, db: db},
		reviews:  reviews,
		sessions: sessions,
		users:    users,
		skills:   skills,
	}
}

// CreateReviewParams carries a new review. Rating is 1..5.
type CreateReviewParams struct {
	SessionID string
	StudentID string
	Rating    int
	Comment   string
}

// CreateReview stores a review for a completed session and refreshes the
// teacher and skill aggregates. One review per (session, student).
func (s *ReviewServiceImpl) CreateReview(ctx context.Context, params CreateReviewParams) (*domain.Review, error) {
	const op = "internal.service.CreateReview"

	session, err := s.sessions.GetSessionByID(ctx, params.SessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if session.StudentID != params.StudentID {
		return nil, fmt.Errorf("%s: %w: only the session's student can review it", op, apperrors.ErrInvalidRequest)
	}

	if session.Status != domain.SessionCompleted {
		return nil, fmt.Errorf("%s: %w: session is not completed", op, apperrors.ErrInvalidRequest)
	}

	review := &domain.Review{
		ID:        uuid.NewString(),
		SkillID:   session.SkillID,
		TeacherID: session.TeacherID,
		StudentID: params.StudentID,
		SessionID: params.SessionID,
		Rating:    params.Rating,
		Comment:   params.Comment,
	}

	if err := s.reviews.CreateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.recomputeAggregates(ctx, session.TeacherID, session.SkillID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("review created",
		slog.String("op", op),
		slog.String("review_id", review.ID),
		slog.String("session_id", params.SessionID),
	)

	return s.reviews.GetReviewByID(ctx, review.ID)
}

func (s *ReviewServiceImpl) GetReview(ctx context.Context, reviewID string) (*domain.Review, error) {
	const op = "internal.service.GetReview"

	review, err := s.reviews.GetReviewByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return review, nil
}

func (s *ReviewServiceImpl) ListReviews(ctx context.Context, filter repository.ReviewFilter) ([]domain.Review, int, error) {
	const op = "internal.service.ListReviews"

	reviews, total, err := s.reviews.ListReviews(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return reviews, total, nil
}

// UpdateReview applies the student's edits and refreshes the aggregates.
func (s *ReviewServiceImpl) UpdateReview(ctx context.Context, reviewID string, upd repository.ReviewUpdate) (*domain.Review, error) {
	const op = "internal.service.UpdateReview"

	review, err := s.reviews.UpdateReview(ctx, reviewID, upd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.recomputeAggregates(ctx, review.TeacherID, review.SkillID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return review, nil
}

// DeleteReview removes a review and refreshes the aggregates. When the last
// review goes away the previous averages stay in place.
func (s *ReviewServiceImpl) DeleteReview(ctx context.Context, reviewID string) error {
	const op = "internal.service.DeleteReview"

	review, err := s.reviews.GetReviewByID(ctx, reviewID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.reviews.DeleteReview(ctx, reviewID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.recomputeAggregates(ctx, review.TeacherID, review.SkillID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RespondToReview stores the teacher's response.
func (s *ReviewServiceImpl) RespondToReview(ctx context.Context, reviewID, teacherID, text string) (*domain.Review, error) {
	const op = "internal.service.RespondToReview"

	review, err := s.reviews.GetReviewByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if review.TeacherID != teacherID {
		return nil, fmt.Errorf("%s: %w: only the reviewed teacher can respond", op, apperrors.ErrInvalidRequest)
	}

	updated, err := s.reviews.SetResponse(ctx, reviewID, text, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

// ToggleHelpful flips the caller's helpful mark on a review.
func (s *ReviewServiceImpl) ToggleHelpful(ctx context.Context, reviewID, userID string) (*domain.ToggleResult, error) {
	const op = "internal.service.ToggleHelpful"

	if _, err := s.reviews.GetReviewByID(ctx, reviewID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result, err := s.reviews.ToggleHelpful(ctx, reviewID, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// recomputeAggregates rereads every rating for the teacher and the skill and
// writes both averages in one transaction. Hidden reviews count; only the
// listings filter on visibility. With zero reviews left nothing is written,
// so the previous aggregate survives.
func (s *ReviewServiceImpl) recomputeAggregates(ctx context.Context, teacherID, skillID string) error {
	const op = "internal.service.recomputeAggregates"

	teacherRatings, err := s.reviews.TeacherRatings(ctx, teacherID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	skillRatings, err := s.reviews.SkillRatings(ctx, skillID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	teacherAgg := aggregate(teacherRatings)
	skillAgg := aggregate(skillRatings)

	if teacherAgg == nil && skillAgg == nil {
		return nil
	}

	return s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		if teacherAgg != nil {
			if err := s.users.ApplyUserRating(ctx, tx, teacherID, teacherAgg.AverageRating, teacherAgg.Count); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		}

		if skillAgg != nil {
			if err := s.skills.ApplySkillRating(ctx, tx, skillID, skillAgg.AverageRating, skillAgg.Count); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		}

		return nil
	})
}

// aggregate averages a rating slice to one decimal, rounding half away from
// zero. A nil result means "leave the stored aggregate alone".
func aggregate(ratings []float64) *domain.RatingAggregate {
	if len(ratings) == 0 {
		return nil
	}

	mean, err := stats.Mean(ratings)
	if err != nil {
		return nil
	}

	return &domain.RatingAggregate{
		AverageRating: math.Round(mean*10) / 10,
		Count:         len(ratings),
	}
}
