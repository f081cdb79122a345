// Package repository defines the interfaces for the data persistence layer.
// These interfaces abstract the underlying database implementation from the
// service layer; the lifecycle manager and the rating aggregator receive them
// by injection instead of reaching for a shared model handle.
package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shlok-baraskar/skill-swap-hub/internal/domain"
)

// UserFilter narrows ListUsers. Zero values mean "no filter".
type UserFilter struct {
	Role   string
	Search string
	Page   int
	Limit  int
}

// UserProfileUpdate carries the allow-listed profile fields. Nil pointers are
// left untouched.
type UserProfileUpdate struct {
	Name               *string
	Bio                *string
	Title              *string
	Location           *string
	PhoneNumber        *string
	Avatar             *string
	HourlyRate         *float64
	TeachingExperience *int
}

// UserRepository defines the contract for user rows and their derived stats.
type UserRepository interface {
	// CreateUser inserts a new user. It returns apperrors.ErrConflict if the
	// email is already taken.
	CreateUser(ctx context.Context, user *domain.User) error

	// GetUserByID returns apperrors.ErrNotFound if the user does not exist.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// UpdateUserProfile applies the allow-listed profile fields and returns
	// the updated row. It returns apperrors.ErrNotFound if the user is absent.
	UpdateUserProfile(ctx context.Context, userID string, upd UserProfileUpdate) (*domain.User, error)

	// ListUsers returns active users plus the unpaginated total count.
	ListUsers(ctx context.Context, filter UserFilter) ([]domain.User, int, error)

	// ListUserSkills returns the teaching/learning entries for a user.
	ListUserSkills(ctx context.Context, userID string) ([]domain.UserSkill, error)

	// AddUserSkill appends an entry to a user's teaching or learning list.
	AddUserSkill(ctx context.Context, entry domain.UserSkill) error

	// ApplyUserRating overwrites the aggregate rating columns of a user.
	// The ext argument allows execution inside or outside a transaction.
	ApplyUserRating(ctx context.Context, ext sqlx.ExtContext, userID string, avg float64, count int) error

	// IncrementTaught bumps sessions_taught by one and total_earnings by the
	// given amount. Intended for the completion-stats transaction.
	IncrementTaught(ctx context.Context, tx *sqlx.Tx, teacherID string, earnings float64) error

	// IncrementTaken bumps sessions_taken by one.
	IncrementTaken(ctx context.Context, tx *sqlx.Tx, studentID string) error
}

// SkillFilter narrows ListSkills. Zero values mean "no filter".
type SkillFilter struct {
	Category string
	Level    string
	Search   string
	MinPrice float64
	MaxPrice float64
	Sort     string // price-asc, price-desc, rating, popular, recent
	Page     int
	Limit    int
}

// SkillRepository defines the contract for skill rows and their derived stats.
type SkillRepository interface {
	// CreateSkill inserts a new skill. It returns apperrors.ErrNotFound if
	// the teacher does not exist and apperrors.ErrConflict on a duplicate
	// skill name.
	CreateSkill(ctx context.Context, skill *domain.Skill) error

	// GetSkillByID returns apperrors.ErrNotFound if the skill is absent.
	GetSkillByID(ctx context.Context, skillID string) (*domain.Skill, error)

	// ListSkills returns active skills plus the unpaginated total count.
	ListSkills(ctx context.Context, filter SkillFilter) ([]domain.Skill, int, error)

	// UpdateSkill overwrites the mutable columns of a skill and returns the
	// updated row.
	UpdateSkill(ctx context.Context, skill *domain.Skill) (*domain.Skill, error)

	// SoftDeleteSkill flips is_active to false; the row is kept so sessions
	// and reviews referencing it stay resolvable.
	SoftDeleteSkill(ctx context.Context, skillID string) error

	// ApplySkillRating overwrites the aggregate rating columns of a skill.
	ApplySkillRating(ctx context.Context, ext sqlx.ExtContext, skillID string, avg float64, count int) error

	// IncrementSessions bumps total_sessions by one.
	IncrementSessions(ctx context.Context, tx *sqlx.Tx, skillID string) error

	// AddStudent adds the student to the skill's distinct-student set.
	// Adding a student who is already present is a no-op.
	AddStudent(ctx context.Context, tx *sqlx.Tx, skillID string, studentID string) error
}

// SessionFilter narrows ListSessions.
type SessionFilter struct {
	UserID string
	Kind   string // teaching, learning, or empty for both sides
	Status string
	Page   int
	Limit  int
}

// SessionRepository defines the contract for session rows, including the
// booking conflict probe and the lifecycle writes.
type SessionRepository interface {
	// CreateSession inserts a freshly booked session.
	CreateSession(ctx context.Context, session *domain.Session) error

	// GetSessionByID returns apperrors.ErrNotFound if the session is absent.
	GetSessionByID(ctx context.Context, sessionID string) (*domain.Session, error)

	// GetSessionByIDWithLock acquires a row-level lock ("FOR UPDATE") so a
	// lifecycle transition cannot race a concurrent one on the same session.
	GetSessionByIDWithLock(ctx context.Context, tx *sqlx.Tx, sessionID string) (*domain.Session, error)

	// HasSchedulingConflict reports whether the teacher has a session whose
	// start falls inside [windowStart, windowEnd) with status scheduled or
	// in-progress. The window is half-open and tested against the existing
	// session's start only.
	HasSchedulingConflict(ctx context.Context, teacherID string, windowStart, windowEnd time.Time) (bool, error)

	// ListSessions returns sessions plus the unpaginated total count.
	ListSessions(ctx context.Context, filter SessionFilter) ([]domain.Session, int, error)

	// UpcomingSessions returns future scheduled sessions where the user is
	// teacher or student, soonest first.
	UpcomingSessions(ctx context.Context, userID string, limit int) ([]domain.Session, error)

	// MarkCompleted sets status/completed_at.
	MarkCompleted(ctx context.Context, tx *sqlx.Tx, sessionID string, completedAt time.Time) error

	// MarkCancelled sets status and the cancellation sub-record.
	MarkCancelled(ctx context.Context, sessionID string, cancelledBy, reason string, cancelledAt time.Time) error

	// SetRescheduleRequest stores the rescheduling sub-record with status
	// 'pending'. It does not touch scheduled_at.
	SetRescheduleRequest(ctx context.Context, sessionID string, requestedBy string, originalDate, newDate time.Time, reason string) error

	// MarkStatsApplied flips stats_applied for this session unless it is
	// already set. It reports whether this call claimed the flag; a false
	// return means another transaction applied the stats first and the
	// caller must not write them again.
	MarkStatsApplied(ctx context.Context, tx *sqlx.Tx, sessionID string) (bool, error)

	// ListUnreconciled returns completed sessions whose completion stats were
	// never applied, locking the rows for the repair transaction.
	ListUnreconciled(ctx context.Context, tx *sqlx.Tx, limit int) ([]domain.Session, error)
}

// ReviewFilter narrows ListReviews. Listing only returns visible reviews.
type ReviewFilter struct {
	SkillID   string
	TeacherID string
	StudentID string
	Page      int
	Limit     int
}

// ReviewUpdate carries the student-editable fields; nil keeps the old value.
type ReviewUpdate struct {
	Rating  *int
	Comment *string
}

// ReviewRepository defines the contract for review rows, the helpful set and
// the rating source data used by the aggregator.
type ReviewRepository interface {
	// CreateReview inserts a review. It returns apperrors.DuplicateReviewError
	// if the (session, student) pair already has one.
	CreateReview(ctx context.Context, review *domain.Review) error

	// GetReviewByID returns apperrors.ErrNotFound if the review is absent.
	GetReviewByID(ctx context.Context, reviewID string) (*domain.Review, error)

	// ListReviews returns visible reviews plus the unpaginated total count.
	ListReviews(ctx context.Context, filter ReviewFilter) ([]domain.Review, int, error)

	// UpdateReview applies the student edits and returns the updated row.
	UpdateReview(ctx context.Context, reviewID string, upd ReviewUpdate) (*domain.Review, error)

	// DeleteReview removes the review and its helpful marks.
	DeleteReview(ctx context.Context, reviewID string) error

	// SetResponse stores the teacher's response text and timestamp.
	SetResponse(ctx context.Context, reviewID string, text string, respondedAt time.Time) (*domain.Review, error)

	// TeacherRatings returns the rating values of every review for a teacher,
	// visible or not.
	TeacherRatings(ctx context.Context, teacherID string) ([]float64, error)

	// SkillRatings returns the rating values of every review for a skill,
	// visible or not.
	SkillRatings(ctx context.Context, skillID string) ([]float64, error)

	// ToggleHelpful flips the user's membership in the review's helpful set
	// and reports the resulting count and state.
	ToggleHelpful(ctx context.Context, reviewID string, userID string) (*domain.ToggleResult, error)
}

// DiscussionFilter narrows ListDiscussions.
type DiscussionFilter struct {
	Category string
	Sort     string // recent, popular, unanswered
	Page     int
	Limit    int
}

// DiscussionRepository defines the contract for discussions, replies and the
// like sets.
type DiscussionRepository interface {
	// CreateDiscussion inserts a new discussion.
	CreateDiscussion(ctx context.Context, discussion *domain.Discussion) error

	// GetDiscussionByID returns the discussion with its replies and like
	// sets. It returns apperrors.ErrNotFound if absent.
	GetDiscussionByID(ctx context.Context, discussionID string) (*domain.Discussion, error)

	// IncrementViews bumps the view counter by one, unconditionally.
	IncrementViews(ctx context.Context, discussionID string) error

	// ListDiscussions returns discussions plus the unpaginated total count.
	ListDiscussions(ctx context.Context, filter DiscussionFilter) ([]domain.Discussion, int, error)

	// DeleteDiscussion removes the discussion, cascading to replies and likes.
	DeleteDiscussion(ctx context.Context, discussionID string) error

	// AppendReply inserts a reply at the tail of the discussion's reply list
	// and bumps last_activity, in one transaction.
	AppendReply(ctx context.Context, tx *sqlx.Tx, reply *domain.Reply, lastActivity time.Time) error

	// ToggleLike flips the user's membership in the discussion's like set.
	ToggleLike(ctx context.Context, discussionID string, userID string) (*domain.ToggleResult, error)

	// ToggleReplyLike flips the user's membership in a reply's like set. The
	// reply must belong to the given discussion.
	ToggleReplyLike(ctx context.Context, discussionID, replyID, userID string) (*domain.ToggleResult, error)

	// Trending returns the highest-scoring discussions
	// (replies + 2*likes + views/10).
	Trending(ctx context.Context, limit int) ([]domain.TrendingTopic, error)
}
