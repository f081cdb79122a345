package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shlok-baraskar/skill-swap-hub/internal/apperrors"
	"github.com/shlok-baraskar/skill-swap-hub/internal/domain"
	"github.com/shlok-baraskar/skill-swap-hub/internal/repository"
)

// SkillService implements the skill listing catalog.
type SkillService interface {
	CreateSkill(ctx context.Context, params CreateSkillParams) (*domain.Skill, error)
	GetSkill(ctx context.Context, skillID string) (*domain.Skill, error)
	ListSkills(ctx context.Context, filter repository.SkillFilter) ([]domain.Skill, int, error)
	UpdateSkill(ctx context.Context, skillID, teacherID string, params UpdateSkillParams) (*domain.Skill, error)
	DeleteSkill(ctx context.Context, skillID, teacherID string) error
}

type SkillServiceImpl struct {
	log    *slog.Logger
	skills repository.SkillRepository
	users  repository.UserRepository
}

func NewSkillService(log *slog.Logger, skills repository.SkillRepository, users repository.UserRepository) *SkillServiceImpl {
	return &SkillServiceImpl{
		log:    log,
		skills: skills,
		users:  users,
	}
}

// CreateSkillParams carries a new skill listing.
type CreateSkillParams struct {
	Name        string
	Category    string
	Description string
	TeacherID   string
	Level       string
	Duration    int
	Price       float64
	MaxStudents int
	Tags        []string
}

// CreateSkill publishes a listing and mirrors it into the teacher's teaching
// list.
func (s *SkillServiceImpl) CreateSkill(ctx context.Context, params CreateSkillParams) (*domain.Skill, error) {
	const op = "internal.service.CreateSkill"

	teacher, err := s.users.GetUserByID(ctx, params.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	maxStudents := params.MaxStudents
	if maxStudents <= 0 {
		maxStudents = 1
	}

	tags := pq.StringArray(params.Tags)
	if tags == nil {
		tags = pq.StringArray{}
	}

	skill := &domain.Skill{
		ID:          uuid.NewString(),
		Name:        params.Name,
		Category:    params.Category,
		Description: params.Description,
		TeacherID:   teacher.ID,
		TeacherName: teacher.Name,
		Level:       params.Level,
		Duration:    params.Duration,
		Price:       params.Price,
		MaxStudents: maxStudents,
		Tags:        tags,
	}

	if err := s.skills.CreateSkill(ctx, skill); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	entry := domain.UserSkill{
		UserID:    teacher.ID,
		SkillID:   skill.ID,
		SkillName: skill.Name,
		Category:  skill.Category,
		Kind:      "teaching",
	}
	if err := s.users.AddUserSkill(ctx, entry); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("skill created",
		slog.String("op", op),
		slog.String("skill_id", skill.ID),
		slog.String("teacher_id", teacher.ID),
	)

	return s.skills.GetSkillByID(ctx, skill.ID)
}

func (s *SkillServiceImpl) GetSkill(ctx context.Context, skillID string) (*domain.Skill, error) {
	const op = "internal.service.GetSkill"

	skill, err := s.skills.GetSkillByID(ctx, skillID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return skill, nil
}

func (s *SkillServiceImpl) ListSkills(ctx context.Context, filter repository.SkillFilter) ([]domain.Skill, int, error) {
	const op = "internal.service.ListSkills"

	skills, total, err := s.skills.ListSkills(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return skills, total, nil
}

// UpdateSkillParams carries the teacher-editable fields; nil keeps the old
// value.
type UpdateSkillParams struct {
	Name        *string
	Category    *string
	Description *string
	Level       *string
	Duration    *int
	Price       *float64
	MaxStudents *int
	Tags        []string
	IsFeatured  *bool
}

// UpdateSkill applies the edits on behalf of teacherID.
func (s *SkillServiceImpl) UpdateSkill(ctx context.Context, skillID, teacherID string, params UpdateSkillParams) (*domain.Skill, error) {
	const op = "internal.service.UpdateSkill"

	skill, err := s.skills.GetSkillByID(ctx, skillID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if skill.TeacherID != teacherID {
		return nil, fmt.Errorf("%s: %w: only the skill's teacher can update it", op, apperrors.ErrInvalidRequest)
	}

	if params.Name != nil {
		skill.Name = *params.Name
	}
	if params.Category != nil {
		skill.Category = *params.Category
	}
	if params.Description != nil {
		skill.Description = *params.Description
	}
	if params.Level != nil {
		skill.Level = *params.Level
	}
	if params.Duration != nil {
		skill.Duration = *params.Duration
	}
	if params.Price != nil {
		skill.Price = *params.Price
	}
	if params.MaxStudents != nil {
		skill.MaxStudents = *params.MaxStudents
	}
	if params.Tags != nil {
		skill.Tags = pq.StringArray(params.Tags)
	}
	if params.IsFeatured != nil {
		skill.IsFeatured = *params.IsFeatured
	}

	updated, err := s.skills.UpdateSkill(ctx, skill)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

// DeleteSkill retires a listing. The row is kept so history stays readable.
func (s *SkillServiceImpl) DeleteSkill(ctx context.Context, skillID, teacherID string) error {
	const op = "internal.service.DeleteSkill"

	skill, err := s.skills.GetSkillByID(ctx, skillID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if skill.TeacherID != teacherID {
		return fmt.Errorf("%s: %w: only the skill's teacher can delete it", op, apperrors.ErrInvalidRequest)
	}

	if err := s.skills.SoftDeleteSkill(ctx, skillID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
