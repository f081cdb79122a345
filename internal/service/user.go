package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shlok-baraskar/skill-swap-hub/internal/domain"
	"github.com/shlok-baraskar/skill-swap-hub/internal/repository"
)

// UserService implements user profiles.
type UserService interface {
	CreateUser(ctx context.Context, params CreateUserParams) (*domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	GetStats(ctx context.Context, userID string) (*domain.UserStats, error)
	UpdateProfile(ctx context.Context, userID string, upd repository.UserProfileUpdate) (*domain.User, error)
	ListUsers(ctx context.Context, filter repository.UserFilter) ([]domain.User, int, error)
	ListUserSkills(ctx context.Context, userID string) ([]domain.UserSkill, error)
	AddLearningSkill(ctx context.Context, userID, skillID, skillName, category string) error
}

type UserServiceImpl struct {
	log   *slog.Logger
	users repository.UserRepository
}

func NewUserService(log *slog.Logger, users repository.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{
		log:   log,
		users: users,
	}
}

// CreateUserParams carries a new user registration.
type CreateUserParams struct {
	Name  string
	Email string
	Role  domain.Role
}

func (s *UserServiceImpl) CreateUser(ctx context.Context, params CreateUserParams) (*domain.User, error) {
	const op = "internal.service.CreateUser"

	role := params.Role
	if role == "" {
		role = domain.RoleStudent
	}

	user := &domain.User{
		ID:    uuid.NewString(),
		Name:  params.Name,
		Email: params.Email,
		Role:  role,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user created",
		slog.String("op", op),
		slog.String("user_id", user.ID),
	)

	return s.users.GetUserByID(ctx, user.ID)
}

func (s *UserServiceImpl) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	const op = "internal.service.GetUser"

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// GetStats returns the derived counters for one user.
func (s *UserServiceImpl) GetStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	const op = "internal.service.GetStats"

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user.UserStats, nil
}

// UpdateProfile applies the allow-listed profile fields. Role, email and the
// derived counters cannot be changed here.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID string, upd repository.UserProfileUpdate) (*domain.User, error) {
	const op = "internal.service.UpdateProfile"

	user, err := s.users.UpdateUserProfile(ctx, userID, upd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, filter repository.UserFilter) ([]domain.User, int, error) {
	const op = "internal.service.ListUsers"

	users, total, err := s.users.ListUsers(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return users, total, nil
}

func (s *UserServiceImpl) ListUserSkills(ctx context.Context, userID string) ([]domain.UserSkill, error) {
	const op = "internal.service.ListUserSkills"

	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	entries, err := s.users.ListUserSkills(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return entries, nil
}

// AddLearningSkill appends a skill to the user's learning list.
func (s *UserServiceImpl) AddLearningSkill(ctx context.Context, userID, skillID, skillName, category string) error {
	const op = "internal.service.AddLearningSkill"

	entry := domain.UserSkill{
		UserID:    userID,
		SkillID:   skillID,
		SkillName: skillName,
		Category:  category,
		Kind:      "learning",
	}

	if err := s.users.AddUserSkill(ctx, entry); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
