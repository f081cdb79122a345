package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shlok-baraskar/skill-swap-hub/internal/apperrors"
	"github.com/shlok-baraskar/skill-swap-hub/internal/domain"
	"github.com/shlok-baraskar/skill-swap-hub/internal/repository"
	"github.com/shlok-baraskar/skill-swap-hub/pkg/logger/sl"
)

// DiscussionService implements the community board.
type DiscussionService interface {
	CreateDiscussion(ctx context.Context, params CreateDiscussionParams) (*domain.Discussion, error)
	GetDiscussion(ctx context.Context, discussionID string) (*domain.Discussion, error)
	ListDiscussions(ctx context.Context, filter repository.DiscussionFilter) ([]domain.Discussion, int, error)
	DeleteDiscussion(ctx context.Context, discussionID, userID string) error
	AppendReply(ctx context.Context, discussionID, authorID, content string) (*domain.Discussion, error)
	ToggleLike(ctx context.Context, discussionID, userID string) (*domain.ToggleResult, error)
	ToggleReplyLike(ctx context.Context, discussionID, replyID, userID string) (*domain.ToggleResult, error)
	Trending(ctx context.Context, limit int) ([]domain.TrendingTopic, error)
}

type DiscussionServiceImpl struct {
	base
	discussions repository.DiscussionRepository
	users       repository.UserRepository
}

func NewDiscussionService(
	log *slog.Logger,
	db Transactor,
	discussions repository.DiscussionRepository,
	users repository.UserRepository,
) *DiscussionServiceImpl {
	return &DiscussionServiceImpl{
		base:        base{log: log, db: db},
		discussions: discussions,
		users:       users,
	}
}

// CreateDiscussionParams carries a new discussion.
type CreateDiscussionParams struct {
	Title    string
	Content  string
	AuthorID string
	Category string
	Tags     []string
}

func (s *DiscussionServiceImpl) CreateDiscussion(ctx context.Context, params CreateDiscussionParams) (*domain.Discussion, error) {
	const op = "internal.service.CreateDiscussion"

	tags := pq.StringArray(params.Tags)
	if tags == nil {
		tags = pq.StringArray{}
	}

	discussion := &domain.Discussion{
		ID:           uuid.NewString(),
		Title:        params.Title,
		Content:      params.Content,
		AuthorID:     params.AuthorID,
		Category:     params.Category,
		Tags:         tags,
		LastActivity: time.Now().UTC(),
	}

	if err := s.discussions.CreateDiscussion(ctx, discussion); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.discussions.GetDiscussionByID(ctx, discussion.ID)
}

// GetDiscussion returns a discussion and bumps its view counter. Every fetch
// counts a view, refreshes included; the bump is best effort and never fails
// the read.
func (s *DiscussionServiceImpl) GetDiscussion(ctx context.Context, discussionID string) (*domain.Discussion, error) {
	const op = "internal.service.GetDiscussion"

	discussion, err := s.discussions.GetDiscussionByID(ctx, discussionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.discussions.IncrementViews(ctx, discussionID); err != nil {
		s.log.Warn("failed to bump view counter",
			slog.String("op", op),
			slog.String("discussion_id", discussionID),
			sl.Err(err),
		)
	} else {
		discussion.Views++
	}

	return discussion, nil
}

func (s *DiscussionServiceImpl) ListDiscussions(ctx context.Context, filter repository.DiscussionFilter) ([]domain.Discussion, int, error) {
	const op = "internal.service.ListDiscussions"

	discussions, total, err := s.discussions.ListDiscussions(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return discussions, total, nil
}

// DeleteDiscussion removes a discussion on behalf of its author.
func (s *DiscussionServiceImpl) DeleteDiscussion(ctx context.Context, discussionID, userID string) error {
	const op = "internal.service.DeleteDiscussion"

	discussion, err := s.discussions.GetDiscussionByID(ctx, discussionID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if discussion.AuthorID != userID {
		return fmt.Errorf("%s: %w: only the author can delete a discussion", op, apperrors.ErrInvalidRequest)
	}

	if err := s.discussions.DeleteDiscussion(ctx, discussionID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// AppendReply adds a reply to the tail of an open discussion and bumps its
// last activity.
func (s *DiscussionServiceImpl) AppendReply(ctx context.Context, discussionID, authorID, content string) (*domain.Discussion, error) {
	const op = "internal.service.AppendReply"

	discussion, err := s.discussions.GetDiscussionByID(ctx, discussionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if discussion.IsClosed {
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrDiscussionClosed)
	}

	now := time.Now().UTC()
	reply := &domain.Reply{
		ID:           uuid.NewString(),
		DiscussionID: discussionID,
		AuthorID:     authorID,
		Content:      content,
		CreatedAt:    now,
	}

	err = s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		return s.discussions.AppendReply(ctx, tx, reply, now)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.discussions.GetDiscussionByID(ctx, discussionID)
}

// ToggleLike flips the caller's like on a discussion.
func (s *DiscussionServiceImpl) ToggleLike(ctx context.Context, discussionID, userID string) (*domain.ToggleResult, error) {
	const op = "internal.service.ToggleLike"

	if _, err := s.discussions.GetDiscussionByID(ctx, discussionID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result, err := s.discussions.ToggleLike(ctx, discussionID, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// ToggleReplyLike flips the caller's like on a reply.
func (s *DiscussionServiceImpl) ToggleReplyLike(ctx context.Context, discussionID, replyID, userID string) (*domain.ToggleResult, error) {
	const op = "internal.service.ToggleReplyLike"

	result, err := s.discussions.ToggleReplyLike(ctx, discussionID, replyID, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// Trending returns the highest scoring discussions.
func (s *DiscussionServiceImpl) Trending(ctx context.Context, limit int) ([]domain.TrendingTopic, error) {
	const op = "internal.service.Trending"

	topics, err := s.discussions.Trending(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return topics, nil
}
