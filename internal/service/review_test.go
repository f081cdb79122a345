package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shlok-baraskar/skill-swap-hub/internal/apperrors"
	"github.com/shlok-baraskar/skill-swap-hub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func completedSession() *domain.Session {
	return &domain.Session{
		ID:        "session-1",
		SkillID:   "skill-1",
		TeacherID: "teacher-1",
		StudentID: "student-1",
		Status:    domain.SessionCompleted,
	}
}

func TestReviewService_CreateReview(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a review and recomputes both aggregates", func(t *testing.T) {
		transactorMock := new(TransactorMock)
		reviewsMock := new(ReviewRepositoryMock)
		sessionsMock := new(SessionRepositoryMock)
		usersMock := new(UserRepositoryMock)
		skillsMock := new(SkillRepositoryMock)

		_, tx, smock := newMockDBAndTx(t)
		smock.ExpectCommit()

		sessionsMock.On("GetSessionByID", ctx, "session-1").Return(completedSession(), nil).Once()
		reviewsMock.On("CreateReview", ctx, mock.AnythingOfType("*domain.Review")).Return(nil).Once()

		// [4, 5, 3] averages to 4.0 over 3 reviews.
		reviewsMock.On("TeacherRatings", ctx, "teacher-1").Return([]float64{4, 5, 3}, nil).Once()
		reviewsMock.On("SkillRatings", ctx, "skill-1").Return([]float64{4, 5, 3}, nil).Once()

		transactorMock.On("BeginTxx", mock.Anything, (*sql.TxOptions)(nil)).Return(tx, nil).Once()
		usersMock.On("ApplyUserRating", ctx, tx, "teacher-1", 4.0, 3).Return(nil).Once()
		skillsMock.On("ApplySkillRating", ctx, tx, "skill-1", 4.0, 3).Return(nil).Once()

		reviewsMock.On("GetReviewByID", ctx, mock.AnythingOfType("string")).
			Return(&domain.Review{ID: "review-1", Rating: 4}, nil).Once()

		svc := NewReviewService(testLogger(), transactorMock, reviewsMock, sessionsMock, usersMock, skillsMock)

		review, err := svc.CreateReview(ctx, CreateReviewParams{
			SessionID: "session-1",
			StudentID: "student-1",
			Rating:    4,
			Comment:   "great session",
		})
		require.NoError(t, err)
		assert.Equal(t, "review-1", review.ID)

		reviewsMock.AssertExpectations(t)
		usersMock.AssertExpectations(t)
		skillsMock.AssertExpectations(t)
	})

	t.Run("duplicate review maps to conflict", func(t *testing.T) {
		reviewsMock := new(ReviewRepositoryMock)
		sessionsMock := new(SessionRepositoryMock)

		sessionsMock.On("GetSessionByID", ctx, "session-1").Return(completedSession(), nil).Once()
		reviewsMock.On("CreateReview", ctx, mock.AnythingOfType("*domain.Review")).
			Return(&apperrors.DuplicateReviewError{SessionID: "session-1", StudentID: "student-1"}).Once()

		svc := NewReviewService(testLogger(), new(TransactorMock), reviewsMock, sessionsMock, new(UserRepositoryMock), new(SkillRepositoryMock))

		_, err := svc.CreateReview(ctx, CreateReviewParams{
			SessionID: "session-1",
			StudentID: "student-1",
			Rating:    5,
			Comment:   "again!",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrDuplicateReview)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("rejects a session that is not completed", func(t *testing.T) {
		sessionsMock := new(SessionRepositoryMock)

		session := completedSession()
		session.Status = domain.SessionScheduled
		sessionsMock.On("GetSessionByID", ctx, "session-1").Return(session, nil).Once()

		svc := NewReviewService(testLogger(), new(TransactorMock), new(ReviewRepositoryMock), sessionsMock, new(UserRepositoryMock), new(SkillRepositoryMock))

		_, err := svc.CreateReview(ctx, CreateReviewParams{
			SessionID: "session-1",
			StudentID: "student-1",
			Rating:    5,
			Comment:   "too early",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	})

	t.Run("rejects a reviewer who is not the student", func(t *testing.T) {
		sessionsMock := new(SessionRepositoryMock)
		sessionsMock.On("GetSessionByID", ctx, "session-1").Return(completedSession(), nil).Once()

		svc := NewReviewService(testLogger(), new(TransactorMock), new(ReviewRepositoryMock), sessionsMock, new(UserRepositoryMock), new(SkillRepositoryMock))

		_, err := svc.CreateReview(ctx, CreateReviewParams{
			SessionID: "session-1",
			StudentID: "someone-else",
			Rating:    5,
			Comment:   "not my session",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	})
}

func TestReviewService_DeleteReview_ZeroReviewsLeavesAggregates(t *testing.T) {
	ctx := context.Background()

	reviewsMock := new(ReviewRepositoryMock)
	usersMock := new(UserRepositoryMock)
	skillsMock := new(SkillRepositoryMock)

	reviewsMock.On("GetReviewByID", ctx, "review-1").
		Return(&domain.Review{ID: "review-1", TeacherID: "teacher-1", SkillID: "skill-1"}, nil).Once()
	reviewsMock.On("DeleteReview", ctx, "review-1").Return(nil).Once()

	// The last review is gone: nothing gets written, the stale averages
	// stand until the next review arrives.
	reviewsMock.On("TeacherRatings", ctx, "teacher-1").Return([]float64{}, nil).Once()
	reviewsMock.On("SkillRatings", ctx, "skill-1").Return([]float64{}, nil).Once()

	svc := NewReviewService(testLogger(), new(TransactorMock), reviewsMock, new(SessionRepositoryMock), usersMock, skillsMock)

	err := svc.DeleteReview(ctx, "review-1")
	require.NoError(t, err)

	reviewsMock.AssertExpectations(t)
	usersMock.AssertNotCalled(t, "ApplyUserRating", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	skillsMock.AssertNotCalled(t, "ApplySkillRating", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAggregate_Rounding(t *testing.T) {
	testCases := []struct {
		name    string
		ratings []float64
		want    float64
		count   int
	}{
		{"whole average", []float64{4, 5, 3}, 4.0, 3},
		{"repeating third rounds down", []float64{4, 4, 5}, 4.3, 3},
		{"repeating two thirds rounds up", []float64{4, 5, 5}, 4.7, 3},
		{"half rounds away from zero", []float64{4, 4.5}, 4.3, 2},
		{"single rating", []float64{5}, 5.0, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := aggregate(tc.ratings)
			require.NotNil(t, got)
			assert.InDelta(t, tc.want, got.AverageRating, 1e-9)
			assert.Equal(t, tc.count, got.Count)
		})
	}

	t.Run("no ratings yields no aggregate", func(t *testing.T) {
		assert.Nil(t, aggregate(nil))
		assert.Nil(t, aggregate([]float64{}))
	})
}

func TestReviewService_ToggleHelpful(t *testing.T) {
	ctx := context.Background()

	reviewsMock := new(ReviewRepositoryMock)

	reviewsMock.On("GetReviewByID", ctx, "review-1").
		Return(&domain.Review{ID: "review-1"}, nil).Twice()
	reviewsMock.On("ToggleHelpful", ctx, "review-1", "user-1").
		Return(&domain.ToggleResult{Count: 1, State: true}, nil).Once()
	reviewsMock.On("ToggleHelpful", ctx, "review-1", "user-1").
		Return(&domain.ToggleResult{Count: 0, State: false}, nil).Once()

	svc := NewReviewService(testLogger(), new(TransactorMock), reviewsMock, new(SessionRepositoryMock), new(UserRepositoryMock), new(SkillRepositoryMock))

	// Toggling twice returns to the original state.
	first, err := svc.ToggleHelpful(ctx, "review-1", "user-1")
	require.NoError(t, err)
	assert.True(t, first.State)
	assert.Equal(t, 1, first.Count)

	second, err := svc.ToggleHelpful(ctx, "review-1", "user-1")
	require.NoError(t, err)
	assert.False(t, second.State)
	assert.Equal(t, 0, second.Count)

	reviewsMock.AssertExpectations(t)
}

func TestReviewService_RespondToReview(t *testing.T) {
	ctx := context.Background()

	reviewsMock := new(ReviewRepositoryMock)

	reviewsMock.On("GetReviewByID", ctx, "review-1").
		Return(&domain.Review{ID: "review-1", TeacherID: "teacher-1"}, nil).Twice()

	text := "thanks for the feedback"
	responded := &domain.Review{ID: "review-1", TeacherID: "teacher-1", Response: &text}
	reviewsMock.On("SetResponse", ctx, "review-1", text, mock.AnythingOfType("time.Time")).
		Return(responded, nil).Once()

	svc := NewReviewService(testLogger(), new(TransactorMock), reviewsMock, new(SessionRepositoryMock), new(UserRepositoryMock), new(SkillRepositoryMock))

	review, err := svc.RespondToReview(ctx, "review-1", "teacher-1", text)
	require.NoError(t, err)
	require.NotNil(t, review.Response)
	assert.Equal(t, text, *review.Response)

	_, err = svc.RespondToReview(ctx, "review-1", "someone-else", text)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
}
