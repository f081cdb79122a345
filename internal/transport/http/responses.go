package http

import (
	"time"

	"github.com/shlok-baraskar/skill-swap-hub/internal/domain"
)

// sessionResponse reshapes the flat session row into the payment,
// cancellation and rescheduling sub-objects clients expect.
type sessionResponse struct {
	ID           string                `json:"id"`
	SkillID      string                `json:"skill_id"`
	SkillName    string                `json:"skill_name"`
	TeacherID    string                `json:"teacher_id"`
	StudentID    string                `json:"student_id"`
	ScheduledAt  time.Time             `json:"scheduled_at"`
	Duration     int                   `json:"duration"`
	Status       domain.SessionStatus  `json:"status"`
	Format       string                `json:"format,omitempty"`
	MeetingLink  string                `json:"meeting_link,omitempty"`
	Location     string                `json:"location,omitempty"`
	Price        float64               `json:"price"`
	Notes        string                `json:"notes,omitempty"`
	Payment      paymentResponse       `json:"payment"`
	Cancellation *cancellationResponse `json:"cancellation,omitempty"`
	Rescheduling *reschedulingResponse `json:"rescheduling,omitempty"`
	CompletedAt  *time.Time            `json:"completed_at,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

type paymentResponse struct {
	Status        domain.PaymentStatus `json:"status"`
	TransactionID *string              `json:"transaction_id,omitempty"`
	Amount        float64              `json:"amount"`
	PaidAt        *time.Time           `json:"paid_at,omitempty"`
}

type cancellationResponse struct {
	CancelledBy string     `json:"cancelled_by"`
	Reason      string     `json:"reason,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

type reschedulingResponse struct {
	RequestedBy  string                  `json:"requested_by"`
	OriginalDate *time.Time              `json:"original_date,omitempty"`
	NewDate      *time.Time              `json:"new_date,omitempty"`
	Reason       string                  `json:"reason,omitempty"`
	Status       domain.RescheduleStatus `json:"status"`
}

func toSessionResponse(s *domain.Session) sessionResponse {
	resp := sessionResponse{
		ID:          s.ID,
		SkillID:     s.SkillID,
		SkillName:   s.SkillName,
		TeacherID:   s.TeacherID,
		StudentID:   s.StudentID,
		ScheduledAt: s.ScheduledAt,
		Duration:    s.Duration,
		Status:      s.Status,
		Format:      s.Format,
		MeetingLink: s.MeetingLink,
		Location:    s.Location,
		Price:       s.Price,
		Notes:       s.Notes,
		Payment: paymentResponse{
			Status:        s.PaymentStatus,
			TransactionID: s.PaymentTransactionID,
			Amount:        s.PaymentAmount,
			PaidAt:        s.PaidAt,
		},
		CompletedAt: s.CompletedAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}

	if s.CancelledBy != nil {
		resp.Cancellation = &cancellationResponse{
			CancelledBy: *s.CancelledBy,
			CancelledAt: s.CancelledAt,
		}
		if s.CancellationReason != nil {
			resp.Cancellation.Reason = *s.CancellationReason
		}
	}

	if s.RescheduleRequestedBy != nil {
		resp.Rescheduling = &reschedulingResponse{
			RequestedBy:  *s.RescheduleRequestedBy,
			OriginalDate: s.RescheduleOriginalDate,
			NewDate:      s.RescheduleNewDate,
		}
		if s.RescheduleReason != nil {
			resp.Rescheduling.Reason = *s.RescheduleReason
		}
		if s.RescheduleStatus != nil {
			resp.Rescheduling.Status = *s.RescheduleStatus
		}
	}

	return resp
}

func toSessionResponses(sessions []domain.Session) []sessionResponse {
	out := make([]sessionResponse, len(sessions))
	for i := range sessions {
		out[i] = toSessionResponse(&sessions[i])
	}

	return out
}

type reviewResponse struct {
	ID          string     `json:"id"`
	SkillID     string     `json:"skill_id"`
	TeacherID   string     `json:"teacher_id"`
	StudentID   string     `json:"student_id"`
	SessionID   string     `json:"session_id"`
	Rating      int        `json:"rating"`
	Comment     string     `json:"comment"`
	Response    *string    `json:"response,omitempty"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	IsVisible   bool       `json:"is_visible"`
	Helpful     []string   `json:"helpful"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toReviewResponse(r *domain.Review) reviewResponse {
	helpful := r.HelpfulIDs
	if helpful == nil {
		helpful = []string{}
	}

	return reviewResponse{
		ID:          r.ID,
		SkillID:     r.SkillID,
		TeacherID:   r.TeacherID,
		StudentID:   r.StudentID,
		SessionID:   r.SessionID,
		Rating:      r.Rating,
		Comment:     r.Comment,
		Response:    r.Response,
		RespondedAt: r.RespondedAt,
		IsVisible:   r.IsVisible,
		Helpful:     helpful,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toReviewResponses(reviews []domain.Review) []reviewResponse {
	out := make([]reviewResponse, len(reviews))
	for i := range reviews {
		out[i] = toReviewResponse(&reviews[i])
	}

	return out
}

type replyResponse struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

type discussionResponse struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Content      string          `json:"content"`
	AuthorID     string          `json:"author_id"`
	Category     string          `json:"category"`
	Tags         []string        `json:"tags"`
	Views        int             `json:"views"`
	IsPinned     bool            `json:"is_pinned"`
	IsClosed     bool            `json:"is_closed"`
	LastActivity time.Time       `json:"last_activity"`
	Likes        []string        `json:"likes"`
	Replies      []replyResponse `json:"replies"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func toDiscussionResponse(d *domain.Discussion) discussionResponse {
	likes := d.LikeIDs
	if likes == nil {
		likes = []string{}
	}

	replies := make([]replyResponse, len(d.Replies))
	for i, reply := range d.Replies {
		replyLikes := reply.LikeIDs
		if replyLikes == nil {
			replyLikes = []string{}
		}

		replies[i] = replyResponse{
			ID:        reply.ID,
			AuthorID:  reply.AuthorID,
			Content:   reply.Content,
			Likes:     replyLikes,
			CreatedAt: reply.CreatedAt,
		}
	}

	return discussionResponse{
		ID:           d.ID,
		Title:        d.Title,
		Content:      d.Content,
		AuthorID:     d.AuthorID,
		Category:     d.Category,
		Tags:         stringList(d.Tags),
		Views:        d.Views,
		IsPinned:     d.IsPinned,
		IsClosed:     d.IsClosed,
		LastActivity: d.LastActivity,
		Likes:        likes,
		Replies:      replies,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func toDiscussionResponses(discussions []domain.Discussion) []discussionResponse {
	out := make([]discussionResponse, len(discussions))
	for i := range discussions {
		out[i] = toDiscussionResponse(&discussions[i])
	}

	return out
}

// stringList renders a text[] column as a JSON array, never null.
func stringList(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}

type toggleResponse struct {
	Count int  `json:"count"`
	State bool `json:"state"`
}

// listMeta is the pagination envelope shared by the list endpoints.
type listMeta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type userStatsResponse struct {
	SessionsTaught int     `json:"sessions_taught"`
	SessionsTaken  int     `json:"sessions_taken"`
	AverageRating  float64 `json:"average_rating"`
	TotalReviews   int     `json:"total_reviews"`
	TotalEarnings  float64 `json:"total_earnings"`
}

type userResponse struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Email              string            `json:"email"`
	Role               domain.Role       `json:"role"`
	Avatar             string            `json:"avatar,omitempty"`
	Bio                string            `json:"bio,omitempty"`
	Title              string            `json:"title,omitempty"`
	Location           string            `json:"location,omitempty"`
	PhoneNumber        string            `json:"phone_number,omitempty"`
	TeachingExperience int               `json:"teaching_experience"`
	HourlyRate         float64           `json:"hourly_rate"`
	IsVerified         bool              `json:"is_verified"`
	IsActive           bool              `json:"is_active"`
	Stats              userStatsResponse `json:"stats"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Role:               u.Role,
		Avatar:             u.Avatar,
		Bio:                u.Bio,
		Title:              u.Title,
		Location:           u.Location,
		PhoneNumber:        u.PhoneNumber,
		TeachingExperience: u.TeachingExperience,
		HourlyRate:         u.HourlyRate,
		IsVerified:         u.IsVerified,
		IsActive:           u.IsActive,
		Stats:              toUserStatsResponse(&u.UserStats),
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func toUserStatsResponse(stats *domain.UserStats) userStatsResponse {
	return userStatsResponse{
		SessionsTaught: stats.SessionsTaught,
		SessionsTaken:  stats.SessionsTaken,
		AverageRating:  stats.AverageRating,
		TotalReviews:   stats.TotalReviews,
		TotalEarnings:  stats.TotalEarnings,
	}
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, len(users))
	for i := range users {
		out[i] = toUserResponse(&users[i])
	}

	return out
}

type userSkillResponse struct {
	SkillID   string `json:"skill_id"`
	SkillName string `json:"skill_name"`
	Category  string `json:"category"`
	Kind      string `json:"kind"`
}

func toUserSkillResponses(entries []domain.UserSkill) []userSkillResponse {
	out := make([]userSkillResponse, len(entries))
	for i, entry := range entries {
		out[i] = userSkillResponse{
			SkillID:   entry.SkillID,
			SkillName: entry.SkillName,
			Category:  entry.Category,
			Kind:      entry.Kind,
		}
	}

	return out
}

type skillStatsResponse struct {
	TotalSessions int     `json:"total_sessions"`
	TotalStudents int     `json:"total_students"`
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`
}

type skillResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Description string             `json:"description"`
	TeacherID   string             `json:"teacher_id"`
	TeacherName string             `json:"teacher_name"`
	Level       string             `json:"level"`
	Duration    int                `json:"duration"`
	Price       float64            `json:"price"`
	MaxStudents int                `json:"max_students"`
	Tags        []string           `json:"tags"`
	IsActive    bool               `json:"is_active"`
	IsFeatured  bool               `json:"is_featured"`
	Stats       skillStatsResponse `json:"stats"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func toSkillResponse(s *domain.Skill) skillResponse {
	return skillResponse{
		ID:          s.ID,
		Name:        s.Name,
		Category:    s.Category,
		Description: s.Description,
		TeacherID:   s.TeacherID,
		TeacherName: s.TeacherName,
		Level:       s.Level,
		Duration:    s.Duration,
		Price:       s.Price,
		MaxStudents: s.MaxStudents,
		Tags:        stringList(s.Tags),
		IsActive:    s.IsActive,
		IsFeatured:  s.IsFeatured,
		Stats: skillStatsResponse{
			TotalSessions: s.TotalSessions,
			TotalStudents: s.TotalStudents,
			AverageRating: s.AverageRating,
			TotalReviews:  s.TotalReviews,
		},
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toSkillResponses(skills []domain.Skill) []skillResponse {
	out := make([]skillResponse, len(skills))
	for i := range skills {
		out[i] = toSkillResponse(&skills[i])
	}

	return out
}

type trendingTopicResponse struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Category   string  `json:"category"`
	ReplyCount int     `json:"reply_count"`
	LikesCount int     `json:"likes_count"`
	Views      int     `json:"views"`
	Score      float64 `json:"score"`
}

func toTrendingTopicResponses(topics []domain.TrendingTopic) []trendingTopicResponse {
	out := make([]trendingTopicResponse, len(topics))
	for i, topic := range topics {
		out[i] = trendingTopicResponse{
			ID:         topic.ID,
			Title:      topic.Title,
			Category:   topic.Category,
			ReplyCount: topic.ReplyCount,
			LikesCount: topic.LikesCount,
			Views:      topic.Views,
			Score:      topic.Score,
		}
	}

	return out
}
