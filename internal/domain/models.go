package domain

import (
	"time"

	"github.com/lib/pq"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

type SessionStatus string

const (
	SessionScheduled   SessionStatus = "scheduled"
	SessionInProgress  SessionStatus = "in-progress"
	SessionCompleted   SessionStatus = "completed"
	SessionCancelled   SessionStatus = "cancelled"
	SessionRescheduled SessionStatus = "rescheduled"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentRefunded  PaymentStatus = "refunded"
	PaymentFailed    PaymentStatus = "failed"
)

type RescheduleStatus string

const (
	ReschedulePending  RescheduleStatus = "pending"
	RescheduleApproved RescheduleStatus = "approved"
	RescheduleDeclined RescheduleStatus = "declined"
)

// UserStats are derived counters. AverageRating and TotalReviews are owned by
// the rating aggregator; the session counters by session completion.
type UserStats struct {
	SessionsTaught int     `db:"sessions_taught"`
	SessionsTaken  int     `db:"sessions_taken"`
	AverageRating  float64 `db:"average_rating"`
	TotalReviews   int     `db:"total_reviews"`
	TotalEarnings  float64 `db:"total_earnings"`
}

type User struct {
	ID                 string  `db:"id"`
	Name               string  `db:"name"`
	Email              string  `db:"email"`
	Role               Role    `db:"role"`
	Avatar             string  `db:"avatar"`
	Bio                string  `db:"bio"`
	Title              string  `db:"title"`
	Location           string  `db:"location"`
	PhoneNumber        string  `db:"phone_number"`
	TeachingExperience int     `db:"teaching_experience"`
	HourlyRate         float64 `db:"hourly_rate"`
	IsVerified         bool    `db:"is_verified"`
	IsActive           bool    `db:"is_active"`
	UserStats
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// UserSkill is one entry of a user's teaching or learning list.
type UserSkill struct {
	UserID    string `db:"user_id"`
	SkillID   string `db:"skill_id"`
	SkillName string `db:"skill_name"`
	Category  string `db:"category"`
	Kind      string `db:"kind"` // 'teaching' or 'learning'
}

// SkillStats mirrors UserStats for a skill. TotalStudents is the size of the
// distinct-student set kept in skill_students.
type SkillStats struct {
	TotalSessions int     `db:"total_sessions"`
	TotalStudents int     `db:"total_students"`
	AverageRating float64 `db:"average_rating"`
	TotalReviews  int     `db:"total_reviews"`
}

type Skill struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Category    string         `db:"category"`
	Description string         `db:"description"`
	TeacherID   string         `db:"teacher_id"`
	TeacherName string         `db:"teacher_name"`
	Level       string         `db:"level"`
	Duration    int            `db:"duration_min"`
	Price       float64        `db:"price"`
	MaxStudents int            `db:"max_students"`
	Tags        pq.StringArray `db:"tags"`
	IsActive    bool           `db:"is_active"`
	IsFeatured  bool           `db:"is_featured"`
	SkillStats
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Session rows keep the payment, cancellation and rescheduling sub-records as
// nullable columns; the nullable groups stay nil until the corresponding
// transition happens.
type Session struct {
	ID          string        `db:"id"`
	SkillID     string        `db:"skill_id"`
	SkillName   string        `db:"skill_name"`
	TeacherID   string        `db:"teacher_id"`
	StudentID   string        `db:"student_id"`
	ScheduledAt time.Time     `db:"scheduled_at"`
	Duration    int           `db:"duration_min"`
	Status      SessionStatus `db:"status"`
	Format      string        `db:"format"`
	MeetingLink string        `db:"meeting_link"`
	Location    string        `db:"location"`
	Price       float64       `db:"price"`
	Notes       string        `db:"notes"`

	PaymentStatus        PaymentStatus `db:"payment_status"`
	PaymentTransactionID *string       `db:"payment_transaction_id"`
	PaymentAmount        float64       `db:"payment_amount"`
	PaidAt               *time.Time    `db:"paid_at"`

	CancelledBy        *string    `db:"cancelled_by"`
	CancellationReason *string    `db:"cancellation_reason"`
	CancelledAt        *time.Time `db:"cancelled_at"`

	RescheduleRequestedBy  *string           `db:"reschedule_requested_by"`
	RescheduleOriginalDate *time.Time        `db:"reschedule_original_date"`
	RescheduleNewDate      *time.Time        `db:"reschedule_new_date"`
	RescheduleReason       *string           `db:"reschedule_reason"`
	RescheduleStatus       *RescheduleStatus `db:"reschedule_status"`

	CompletedAt  *time.Time `db:"completed_at"`
	StatsApplied bool       `db:"stats_applied"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

type Review struct {
	ID          string     `db:"id"`
	SkillID     string     `db:"skill_id"`
	TeacherID   string     `db:"teacher_id"`
	StudentID   string     `db:"student_id"`
	SessionID   string     `db:"session_id"`
	Rating      int        `db:"rating"`
	Comment     string     `db:"comment"`
	Response    *string    `db:"response_text"`
	RespondedAt *time.Time `db:"responded_at"`
	IsVisible   bool       `db:"is_visible"`
	HelpfulIDs  []string
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type Discussion struct {
	ID           string         `db:"id"`
	Title        string         `db:"title"`
	Content      string         `db:"content"`
	AuthorID     string         `db:"author_id"`
	Category     string         `db:"category"`
	Tags         pq.StringArray `db:"tags"`
	Views        int            `db:"views"`
	IsPinned     bool           `db:"is_pinned"`
	IsClosed     bool           `db:"is_closed"`
	LastActivity time.Time      `db:"last_activity"`
	LikeIDs      []string
	Replies      []Reply
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type Reply struct {
	ID           string    `db:"id"`
	DiscussionID string    `db:"discussion_id"`
	AuthorID     string    `db:"author_id"`
	Content      string    `db:"content"`
	LikeIDs      []string
	CreatedAt    time.Time `db:"created_at"`
}

// RatingAggregate is the result of averaging reviews for one teacher or skill.
type RatingAggregate struct {
	AverageRating float64
	Count         int
}

// ToggleResult reports the state of a like/helpful set after a toggle.
type ToggleResult struct {
	Count int
	State bool
}

// TrendingTopic is the projection returned by the community trending query.
type TrendingTopic struct {
	ID         string  `db:"id"`
	Title      string  `db:"title"`
	Category   string  `db:"category"`
	ReplyCount int     `db:"reply_count"`
	LikesCount int     `db:"likes_count"`
	Views      int     `db:"views"`
	Score      float64 `db:"score"`
}
