package http

import "time"

type createUserRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email,max=255"`
	Role  string `json:"role" validate:"omitempty,oneof=student teacher admin"`
}

type updateProfileRequest struct {
	Name               *string  `json:"name" validate:"omitempty,min=2,max=100"`
	Bio                *string  `json:"bio" validate:"omitempty,max=2000"`
	Title              *string  `json:"title" validate:"omitempty,max=100"`
	Location           *string  `json:"location" validate:"omitempty,max=100"`
	PhoneNumber        *string  `json:"phone_number" validate:"omitempty,max=30"`
	Avatar             *string  `json:"avatar" validate:"omitempty,max=500"`
	HourlyRate         *float64 `json:"hourly_rate" validate:"omitempty,gte=0"`
	TeachingExperience *int     `json:"teaching_experience" validate:"omitempty,gte=0"`
}

type addLearningSkillRequest struct {
	SkillID   string `json:"skill_id" validate:"required,entity_id"`
	SkillName string `json:"skill_name" validate:"required,min=2,max=100"`
	Category  string `json:"category" validate:"required,min=2,max=50"`
}

type createSkillRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=100"`
	Category    string   `json:"category" validate:"required,oneof=technology creative business languages lifestyle music fitness cooking academic other"`
	Description string   `json:"description" validate:"required,min=10,max=2000"`
	TeacherID   string   `json:"teacher_id" validate:"required,entity_id"`
	Level       string   `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Duration    int      `json:"duration" validate:"required,gte=15,lte=480"`
	Price       float64  `json:"price" validate:"gte=0"`
	MaxStudents int      `json:"max_students" validate:"omitempty,gte=1,lte=100"`
	Tags        []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=30"`
}

type updateSkillRequest struct {
	TeacherID   string   `json:"teacher_id" validate:"required,entity_id"`
	Name        *string  `json:"name" validate:"omitempty,min=2,max=100"`
	Category    *string  `json:"category" validate:"omitempty,oneof=technology creative business languages lifestyle music fitness cooking academic other"`
	Description *string  `json:"description" validate:"omitempty,min=10,max=2000"`
	Level       *string  `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Duration    *int     `json:"duration" validate:"omitempty,gte=15,lte=480"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	MaxStudents *int     `json:"max_students" validate:"omitempty,gte=1,lte=100"`
	Tags        []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=30"`
	IsFeatured  *bool    `json:"is_featured"`
}

type deleteSkillRequest struct {
	TeacherID string `json:"teacher_id" validate:"required,entity_id"`
}

type createSessionRequest struct {
	SkillID     string    `json:"skill_id" validate:"required,entity_id"`
	StudentID   string    `json:"student_id" validate:"required,entity_id"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Format      string    `json:"format" validate:"omitempty,oneof=online in-person"`
	MeetingLink string    `json:"meeting_link" validate:"omitempty,max=500"`
	Location    string    `json:"location" validate:"omitempty,max=255"`
	Notes       string    `json:"notes" validate:"omitempty,max=2000"`
}

type cancelSessionRequest struct {
	CancelledBy string `json:"cancelled_by" validate:"required,entity_id"`
	Reason      string `json:"reason" validate:"omitempty,max=1000"`
}

type rescheduleSessionRequest struct {
	RequestedBy string    `json:"requested_by" validate:"required,entity_id"`
	NewDate     time.Time `json:"new_date" validate:"required"`
	Reason      string    `json:"reason" validate:"omitempty,max=1000"`
}

type createReviewRequest struct {
	SessionID string `json:"session_id" validate:"required,entity_id"`
	StudentID string `json:"student_id" validate:"required,entity_id"`
	Rating    int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string `json:"comment" validate:"required,min=5,max=2000"`
}

type updateReviewRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Comment *string `json:"comment" validate:"omitempty,min=5,max=2000"`
}

type respondToReviewRequest struct {
	TeacherID string `json:"teacher_id" validate:"required,entity_id"`
	Text      string `json:"text" validate:"required,min=2,max=2000"`
}

type toggleRequest struct {
	UserID string `json:"user_id" validate:"required,entity_id"`
}

type createDiscussionRequest struct {
	Title    string   `json:"title" validate:"required,min=5,max=200"`
	Content  string   `json:"content" validate:"required,min=10,max=10000"`
	AuthorID string   `json:"author_id" validate:"required,entity_id"`
	Category string   `json:"category" validate:"required,min=2,max=50"`
	Tags     []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=30"`
}

type deleteDiscussionRequest struct {
	UserID string `json:"user_id" validate:"required,entity_id"`
}

type appendReplyRequest struct {
	AuthorID string `json:"author_id" validate:"required,entity_id"`
	Content  string `json:"content" validate:"required,min=1,max=5000"`
}
