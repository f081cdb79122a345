package http

import (
	"context"
	"time"

	"github.com/shlok-baraskar/skill-swap-hub/internal/domain"
	"github.com/shlok-baraskar/skill-swap-hub/internal/repository"
	"github.com/shlok-baraskar/skill-swap-hub/internal/service"
	"github.com/stretchr/testify/mock"
)

type UserServiceMock struct {
	mock.Mock
}

var _ service.UserService = (*UserServiceMock)(nil)

func (m *UserServiceMock) CreateUser(ctx context.Context, params service.CreateUserParams) (*domain.User, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserServiceMock) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserServiceMock) GetStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.UserStats), args.Error(1)
}

func (m *UserServiceMock) UpdateProfile(ctx context.Context, userID string, upd repository.UserProfileUpdate) (*domain.User, error) {
	args := m.Called(ctx, userID, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserServiceMock) ListUsers(ctx context.Context, filter repository.UserFilter) ([]domain.User, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]domain.User), args.Int(1), args.Error(2)
}

func (m *UserServiceMock) ListUserSkills(ctx context.Context, userID string) ([]domain.UserSkill, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.UserSkill), args.Error(1)
}

func (m *UserServiceMock) AddLearningSkill(ctx context.Context, userID, skillID, skillName, category string) error {
	args := m.Called(ctx, userID, skillID, skillName, category)

	return args.Error(0)
}

type SkillServiceMock struct {
	mock.Mock
}

var _ service.SkillService = (*SkillServiceMock)(nil)

func (m *SkillServiceMock) CreateSkill(ctx context.Context, params service.CreateSkillParams) (*domain.Skill, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Skill), args.Error(1)
}

func (m *SkillServiceMock) GetSkill(ctx context.Context, skillID string) (*domain.Skill, error) {
	args := m.Called(ctx, skillID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Skill), args.Error(1)
}

func (m *SkillServiceMock) ListSkills(ctx context.Context, filter repository.SkillFilter) ([]domain.Skill, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]domain.Skill), args.Int(1), args.Error(2)
}

func (m *SkillServiceMock) UpdateSkill(ctx context.Context, skillID, teacherID string, params service.UpdateSkillParams) (*domain.Skill, error) {
	args := m.Called(ctx, skillID, teacherID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Skill), args.Error(1)
}

func (m *SkillServiceMock) DeleteSkill(ctx context.Context, skillID, teacherID string) error {
	args := m.Called(ctx, skillID, teacherID)

	return args.Error(0)
}

type SessionServiceMock struct {
	mock.Mock
}

var _ service.SessionService = (*SessionServiceMock)(nil)

func (m *SessionServiceMock) CreateSession(ctx context.Context, params service.CreateSessionParams) (*domain.Session, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *SessionServiceMock) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *SessionServiceMock) ListSessions(ctx context.Context, filter repository.SessionFilter) ([]domain.Session, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]domain.Session), args.Int(1), args.Error(2)
}

func (m *SessionServiceMock) UpcomingSessions(ctx context.Context, userID string, limit int) ([]domain.Session, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Session), args.Error(1)
}

func (m *SessionServiceMock) CompleteSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *SessionServiceMock) CancelSession(ctx context.Context, sessionID, cancelledBy, reason string) (*domain.Session, error) {
	args := m.Called(ctx, sessionID, cancelledBy, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *SessionServiceMock) RequestReschedule(ctx context.Context, sessionID, requestedBy string, newDate time.Time, reason string) (*domain.Session, error) {
	args := m.Called(ctx, sessionID, requestedBy, newDate, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *SessionServiceMock) ReconcileCompletionStats(ctx context.Context, batchSize int) (int, error) {
	args := m.Called(ctx, batchSize)

	return args.Int(0), args.Error(1)
}

type ReviewServiceMock struct {
	mock.Mock
}

var _ service.ReviewService = (*ReviewServiceMock)(nil)

func (m *ReviewServiceMock) CreateReview(ctx context.Context, params service.CreateReviewParams) (*domain.Review, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *ReviewServiceMock) GetReview(ctx context.Context, reviewID string) (*domain.Review, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *ReviewServiceMock) ListReviews(ctx context.Context, filter repository.ReviewFilter) ([]domain.Review, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]domain.Review), args.Int(1), args.Error(2)
}

func (m *ReviewServiceMock) UpdateReview(ctx context.Context, reviewID string, upd repository.ReviewUpdate) (*domain.Review, error) {
	args := m.Called(ctx, reviewID, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *ReviewServiceMock) DeleteReview(ctx context.Context, reviewID string) error {
	args := m.Called(ctx, reviewID)

	return args.Error(0)
}

func (m *ReviewServiceMock) RespondToReview(ctx context.Context, reviewID, teacherID, text string) (*domain.Review, error) {
	args := m.Called(ctx, reviewID, teacherID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *ReviewServiceMock) ToggleHelpful(ctx context.Context, reviewID, userID string) (*domain.ToggleResult, error) {
	args := m.Called(ctx, reviewID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ToggleResult), args.Error(1)
}

type DiscussionServiceMock struct {
	mock.Mock
}

var _ service.DiscussionService = (*DiscussionServiceMock)(nil)

func (m *DiscussionServiceMock) CreateDiscussion(ctx context.Context, params service.CreateDiscussionParams) (*domain.Discussion, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Discussion), args.Error(1)
}

func (m *DiscussionServiceMock) GetDiscussion(ctx context.Context, discussionID string) (*domain.Discussion, error) {
	args := m.Called(ctx, discussionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Discussion), args.Error(1)
}

func (m *DiscussionServiceMock) ListDiscussions(ctx context.Context, filter repository.DiscussionFilter) ([]domain.Discussion, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]domain.Discussion), args.Int(1), args.Error(2)
}

func (m *DiscussionServiceMock) DeleteDiscussion(ctx context.Context, discussionID, userID string) error {
	args := m.Called(ctx, discussionID, userID)

	return args.Error(0)
}

func (m *DiscussionServiceMock) AppendReply(ctx context.Context, discussionID, authorID, content string) (*domain.Discussion, error) {
	args := m.Called(ctx, discussionID, authorID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Discussion), args.Error(1)
}

func (m *DiscussionServiceMock) ToggleLike(ctx context.Context, discussionID, userID string) (*domain.ToggleResult, error) {
	args := m.Called(ctx, discussionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ToggleResult), args.Error(1)
}

func (m *DiscussionServiceMock) ToggleReplyLike(ctx context.Context, discussionID, replyID, userID string) (*domain.ToggleResult, error) {
	args := m.Called(ctx, discussionID, replyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ToggleResult), args.Error(1)
}

func (m *DiscussionServiceMock) Trending(ctx context.Context, limit int) ([]domain.TrendingTopic, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.TrendingTopic), args.Error(1)
}
