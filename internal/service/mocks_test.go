package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shlok-baraskar/skill-swap-hub/internal/domain"
	"github.com/shlok-baraskar/skill-swap-hub/internal/repository"
	"github.com/stretchr/testify/mock"
)

type TransactorMock struct {
	mock.Mock
}

var _ Transactor = (*TransactorMock)(nil)

func (m *TransactorMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*sqlx.Tx), args.Error(1)
}

type UserRepositoryMock struct {
	mock.Mock
}

var _ repository.UserRepository = (*UserRepositoryMock)(nil)

func (m *UserRepositoryMock) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepositoryMock) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) UpdateUserProfile(ctx context.Context, userID string, upd repository.UserProfileUpdate) (*domain.User, error) {
	args := m.Called(ctx, userID, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) ListUsers(ctx context.Context, filter repository.UserFilter) ([]domain.User, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}

	return args.Get(0).([]domain.User), args.Int(1), args.Error(2)
}

func (m *UserRepositoryMock) ListUserSkills(ctx context.Context, userID string) ([]domain.UserSkill, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.UserSkill), args.Error(1)
}

func (m *UserRepositoryMock) AddUserSkill(ctx context.Context, entry domain.UserSkill) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *UserRepositoryMock) ApplyUserRating(ctx context.Context, ext sqlx.ExtContext, userID string, avg float64, count int) error {
	args := m.Called(ctx, ext, userID, avg, count)
	return args.Error(0)
}

func (m *UserRepositoryMock) IncrementTaught(ctx context.Context, tx *sqlx.Tx, teacherID string, earnings float64) error {
	args := m.Called(ctx, tx, teacherID, earnings)
	return args.Error(0)
}

func (m *UserRepositoryMock) IncrementTaken(ctx context.Context, tx *sqlx.Tx, studentID string) error {
	args := m.Called(ctx, tx, studentID)
	return args.Error(0)
}

type SkillRepositoryMock struct {
	mock.Mock
}

var _ repository.SkillRepository = (*SkillRepositoryMock)(nil)

func (m *SkillRepositoryMock) CreateSkill(ctx context.Context, skill *domain.Skill) error {
	args := m.Called(ctx, skill)
	return args.Error(0)
}

func (m *SkillRepositoryMock) GetSkillByID(ctx context.Context, skillID string) (*domain.Skill, error) {
	args := m.Called(ctx, skillID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Skill), args.Error(1)
}

func (m *SkillRepositoryMock) ListSkills(ctx context.Context, filter repository.SkillFilter) ([]domain.Skill, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}

	return args.Get(0).([]domain.Skill), args.Int(1), args.Error(2)
}

func (m *SkillRepositoryMock) UpdateSkill(ctx context.Context, skill *domain.Skill) (*domain.Skill, error) {
	args := m.Called(ctx, skill)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Skill), args.Error(1)
}

func (m *SkillRepositoryMock) SoftDeleteSkill(ctx context.Context, skillID string) error {
	args := m.Called(ctx, skillID)
	return args.Error(0)
}

func (m *SkillRepositoryMock) ApplySkillRating(ctx context.Context, ext sqlx.ExtContext, skillID string, avg float64, count int) error {
	args := m.Called(ctx, ext, skillID, avg, count)
	return args.Error(0)
}

func (m *SkillRepositoryMock) IncrementSessions(ctx context.Context, tx *sqlx.Tx, skillID string) error {
	args := m.Called(ctx, tx, skillID)
	return args.Error(0)
}

func (m *SkillRepositoryMock) AddStudent(ctx context.Context, tx *sqlx.Tx, skillID string, studentID string) error {
	args := m.Called(ctx, tx, skillID, studentID)
	return args.Error(0)
}

type SessionRepositoryMock struct {
	mock.Mock
}

var _ repository.SessionRepository = (*SessionRepositoryMock)(nil)

func (m *SessionRepositoryMock) CreateSession(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *SessionRepositoryMock) GetSessionByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *SessionRepositoryMock) GetSessionByIDWithLock(ctx context.Context, tx *sqlx.Tx, sessionID string) (*domain.Session, error) {
	args := m.Called(ctx, tx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *SessionRepositoryMock) HasSchedulingConflict(ctx context.Context, teacherID string, windowStart, windowEnd time.Time) (bool, error) {
	args := m.Called(ctx, teacherID, windowStart, windowEnd)
	return args.Bool(0), args.Error(1)
}

func (m *SessionRepositoryMock) ListSessions(ctx context.Context, filter repository.SessionFilter) ([]domain.Session, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}

	return args.Get(0).([]domain.Session), args.Int(1), args.Error(2)
}

func (m *SessionRepositoryMock) UpcomingSessions(ctx context.Context, userID string, limit int) ([]domain.Session, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Session), args.Error(1)
}

func (m *SessionRepositoryMock) MarkCompleted(ctx context.Context, tx *sqlx.Tx, sessionID string, completedAt time.Time) error {
	args := m.Called(ctx, tx, sessionID, completedAt)
	return args.Error(0)
}

func (m *SessionRepositoryMock) MarkCancelled(ctx context.Context, sessionID string, cancelledBy, reason string, cancelledAt time.Time) error {
	args := m.Called(ctx, sessionID, cancelledBy, reason, cancelledAt)
	return args.Error(0)
}

func (m *SessionRepositoryMock) SetRescheduleRequest(ctx context.Context, sessionID string, requestedBy string, originalDate, newDate time.Time, reason string) error {
	args := m.Called(ctx, sessionID, requestedBy, originalDate, newDate, reason)
	return args.Error(0)
}

func (m *SessionRepositoryMock) MarkStatsApplied(ctx context.Context, tx *sqlx.Tx, sessionID string) (bool, error) {
	args := m.Called(ctx, tx, sessionID)
	return args.Bool(0), args.Error(1)
}

func (m *SessionRepositoryMock) ListUnreconciled(ctx context.Context, tx *sqlx.Tx, limit int) ([]domain.Session, error) {
	args := m.Called(ctx, tx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Session), args.Error(1)
}

type ReviewRepositoryMock struct {
	mock.Mock
}

var _ repository.ReviewRepository = (*ReviewRepositoryMock)(nil)

func (m *ReviewRepositoryMock) CreateReview(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *ReviewRepositoryMock) GetReviewByID(ctx context.Context, reviewID string) (*domain.Review, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *ReviewRepositoryMock) ListReviews(ctx context.Context, filter repository.ReviewFilter) ([]domain.Review, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}

	return args.Get(0).([]domain.Review), args.Int(1), args.Error(2)
}

func (m *ReviewRepositoryMock) UpdateReview(ctx context.Context, reviewID string, upd repository.ReviewUpdate) (*domain.Review, error) {
	args := m.Called(ctx, reviewID, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *ReviewRepositoryMock) DeleteReview(ctx context.Context, reviewID string) error {
	args := m.Called(ctx, reviewID)
	return args.Error(0)
}

func (m *ReviewRepositoryMock) SetResponse(ctx context.Context, reviewID string, text string, respondedAt time.Time) (*domain.Review, error) {
	args := m.Called(ctx, reviewID, text, respondedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *ReviewRepositoryMock) TeacherRatings(ctx context.Context, teacherID string) ([]float64, error) {
	args := m.Called(ctx, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]float64), args.Error(1)
}

func (m *ReviewRepositoryMock) SkillRatings(ctx context.Context, skillID string) ([]float64, error) {
	args := m.Called(ctx, skillID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]float64), args.Error(1)
}

func (m *ReviewRepositoryMock) ToggleHelpful(ctx context.Context, reviewID string, userID string) (*domain.ToggleResult, error) {
	args := m.Called(ctx, reviewID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ToggleResult), args.Error(1)
}

type DiscussionRepositoryMock struct {
	mock.Mock
}

var _ repository.DiscussionRepository = (*DiscussionRepositoryMock)(nil)

func (m *DiscussionRepositoryMock) CreateDiscussion(ctx context.Context, discussion *domain.Discussion) error {
	args := m.Called(ctx, discussion)
	return args.Error(0)
}

func (m *DiscussionRepositoryMock) GetDiscussionByID(ctx context.Context, discussionID string) (*domain.Discussion, error) {
	args := m.Called(ctx, discussionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Discussion), args.Error(1)
}

func (m *DiscussionRepositoryMock) IncrementViews(ctx context.Context, discussionID string) error {
	args := m.Called(ctx, discussionID)
	return args.Error(0)
}

func (m *DiscussionRepositoryMock) ListDiscussions(ctx context.Context, filter repository.DiscussionFilter) ([]domain.Discussion, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}

	return args.Get(0).([]domain.Discussion), args.Int(1), args.Error(2)
}

func (m *DiscussionRepositoryMock) DeleteDiscussion(ctx context.Context, discussionID string) error {
	args := m.Called(ctx, discussionID)
	return args.Error(0)
}

func (m *DiscussionRepositoryMock) AppendReply(ctx context.Context, tx *sqlx.Tx, reply *domain.Reply, lastActivity time.Time) error {
	args := m.Called(ctx, tx, reply, lastActivity)
	return args.Error(0)
}

func (m *DiscussionRepositoryMock) ToggleLike(ctx context.Context, discussionID string, userID string) (*domain.ToggleResult, error) {
	args := m.Called(ctx, discussionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ToggleResult), args.Error(1)
}

func (m *DiscussionRepositoryMock) ToggleReplyLike(ctx context.Context, discussionID, replyID, userID string) (*domain.ToggleResult, error) {
	args := m.Called(ctx, discussionID, replyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ToggleResult), args.Error(1)
}

func (m *DiscussionRepositoryMock) Trending(ctx context.Context, limit int) ([]domain.TrendingTopic, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.TrendingTopic), args.Error(1)
}
