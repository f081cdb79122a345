package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/shlok-baraskar/skill-swap-hub/internal/apperrors"
	"github.com/shlok-baraskar/skill-swap-hub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDiscussionService_GetDiscussion_CountsViews(t *testing.T) {
	ctx := context.Background()

	discussionsMock := new(DiscussionRepositoryMock)

	// Every fetch is a view, repeat visitors included.
	const fetches = 3
	for i := 0; i < fetches; i++ {
		discussionsMock.On("GetDiscussionByID", ctx, "discussion-1").
			Return(&domain.Discussion{ID: "discussion-1", Views: i}, nil).Once()
	}
	discussionsMock.On("IncrementViews", ctx, "discussion-1").Return(nil).Times(fetches)

	svc := NewDiscussionService(testLogger(), new(TransactorMock), discussionsMock, new(UserRepositoryMock))

	var last *domain.Discussion
	for i := 0; i < fetches; i++ {
		d, err := svc.GetDiscussion(ctx, "discussion-1")
		require.NoError(t, err)
		last = d
	}

	assert.Equal(t, fetches, last.Views)
	discussionsMock.AssertExpectations(t)
}

func TestDiscussionService_GetDiscussion_ViewBumpFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()

	discussionsMock := new(DiscussionRepositoryMock)

	discussionsMock.On("GetDiscussionByID", ctx, "discussion-1").
		Return(&domain.Discussion{ID: "discussion-1", Views: 7}, nil).Once()
	discussionsMock.On("IncrementViews", ctx, "discussion-1").
		Return(errors.New("connection reset")).Once()

	svc := NewDiscussionService(testLogger(), new(TransactorMock), discussionsMock, new(UserRepositoryMock))

	d, err := svc.GetDiscussion(ctx, "discussion-1")
	require.NoError(t, err)
	assert.Equal(t, 7, d.Views)
}

func TestDiscussionService_AppendReply(t *testing.T) {
	ctx := context.Background()

	t.Run("appends to an open discussion", func(t *testing.T) {
		transactorMock := new(TransactorMock)
		discussionsMock := new(DiscussionRepositoryMock)

		_, tx, smock := newMockDBAndTx(t)
		smock.ExpectCommit()

		discussionsMock.On("GetDiscussionByID", ctx, "discussion-1").
			Return(&domain.Discussion{ID: "discussion-1"}, nil).Once()

		transactorMock.On("BeginTxx", mock.Anything, (*sql.TxOptions)(nil)).Return(tx, nil).Once()
		discussionsMock.On("AppendReply", ctx, tx, mock.MatchedBy(func(r *domain.Reply) bool {
			return r.DiscussionID == "discussion-1" &&
				r.AuthorID == "user-1" &&
				r.Content == "have you tried pair sessions?"
		}), mock.AnythingOfType("time.Time")).Return(nil).Once()

		discussionsMock.On("GetDiscussionByID", ctx, "discussion-1").
			Return(&domain.Discussion{
				ID:      "discussion-1",
				Replies: []domain.Reply{{ID: "reply-1", Content: "have you tried pair sessions?"}},
			}, nil).Once()

		svc := NewDiscussionService(testLogger(), transactorMock, discussionsMock, new(UserRepositoryMock))

		discussion, err := svc.AppendReply(ctx, "discussion-1", "user-1", "have you tried pair sessions?")
		require.NoError(t, err)
		require.Len(t, discussion.Replies, 1)

		discussionsMock.AssertExpectations(t)
	})

	t.Run("rejects a closed discussion", func(t *testing.T) {
		discussionsMock := new(DiscussionRepositoryMock)

		discussionsMock.On("GetDiscussionByID", ctx, "discussion-1").
			Return(&domain.Discussion{ID: "discussion-1", IsClosed: true}, nil).Once()

		svc := NewDiscussionService(testLogger(), new(TransactorMock), discussionsMock, new(UserRepositoryMock))

		_, err := svc.AppendReply(ctx, "discussion-1", "user-1", "late to the party")
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrDiscussionClosed)

		discussionsMock.AssertNotCalled(t, "AppendReply", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDiscussionService_ToggleLike_RoundTrip(t *testing.T) {
	ctx := context.Background()

	discussionsMock := new(DiscussionRepositoryMock)

	discussionsMock.On("GetDiscussionByID", ctx, "discussion-1").
		Return(&domain.Discussion{ID: "discussion-1"}, nil).Twice()
	discussionsMock.On("ToggleLike", ctx, "discussion-1", "user-1").
		Return(&domain.ToggleResult{Count: 5, State: true}, nil).Once()
	discussionsMock.On("ToggleLike", ctx, "discussion-1", "user-1").
		Return(&domain.ToggleResult{Count: 4, State: false}, nil).Once()

	svc := NewDiscussionService(testLogger(), new(TransactorMock), discussionsMock, new(UserRepositoryMock))

	first, err := svc.ToggleLike(ctx, "discussion-1", "user-1")
	require.NoError(t, err)
	assert.True(t, first.State)

	second, err := svc.ToggleLike(ctx, "discussion-1", "user-1")
	require.NoError(t, err)
	assert.False(t, second.State)
	assert.Equal(t, first.Count-1, second.Count)
}

func TestDiscussionService_DeleteDiscussion(t *testing.T) {
	ctx := context.Background()

	t.Run("author can delete", func(t *testing.T) {
		discussionsMock := new(DiscussionRepositoryMock)

		discussionsMock.On("GetDiscussionByID", ctx, "discussion-1").
			Return(&domain.Discussion{ID: "discussion-1", AuthorID: "user-1"}, nil).Once()
		discussionsMock.On("DeleteDiscussion", ctx, "discussion-1").Return(nil).Once()

		svc := NewDiscussionService(testLogger(), new(TransactorMock), discussionsMock, new(UserRepositoryMock))

		require.NoError(t, svc.DeleteDiscussion(ctx, "discussion-1", "user-1"))
		discussionsMock.AssertExpectations(t)
	})

	t.Run("non-author cannot delete", func(t *testing.T) {
		discussionsMock := new(DiscussionRepositoryMock)

		discussionsMock.On("GetDiscussionByID", ctx, "discussion-1").
			Return(&domain.Discussion{ID: "discussion-1", AuthorID: "user-1"}, nil).Once()

		svc := NewDiscussionService(testLogger(), new(TransactorMock), discussionsMock, new(UserRepositoryMock))

		err := svc.DeleteDiscussion(ctx, "discussion-1", "user-2")
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)

		discussionsMock.AssertNotCalled(t, "DeleteDiscussion", mock.Anything, mock.Anything)
	})
}
