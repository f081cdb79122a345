package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shlok-baraskar/skill-swap-hub/internal/apperrors"
	"github.com/shlok-baraskar/skill-swap-hub/internal/domain"
	"github.com/shlok-baraskar/skill-swap-hub/internal/repository"
	"github.com/shlok-baraskar/skill-swap-hub/pkg/logger/sl"
)

// SessionService implements booking and the session lifecycle.
type SessionService interface {
	CreateSession(ctx context.Context, params CreateSessionParams) (*domain.Session, error)
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	ListSessions(ctx context.Context, filter repository.SessionFilter) ([]domain.Session, int, error)
	UpcomingSessions(ctx context.Context, userID string, limit int) ([]domain.Session, error)
	CompleteSession(ctx context.Context, sessionID string) (*domain.Session, error)
	CancelSession(ctx context.Context, sessionID, cancelledBy, reason string) (*domain.Session, error)
	RequestReschedule(ctx context.Context, sessionID, requestedBy string, newDate time.Time, reason string) (*domain.Session, error)
	ReconcileCompletionStats(ctx context.Context, batchSize int) (int, error)
}

type SessionServiceImpl struct {
	base
	sessions repository.SessionRepository
	skills   repository.SkillRepository
	users    repository.UserRepository
}

func NewSessionService(
	log *slog.Logger,
	db Transactor,
	sessions repository.SessionRepository,
	skills repository.SkillRepository,
	users repository.UserRepository,
) *SessionServiceImpl {
	return &SessionServiceImpl{
		base:     base{log: log, db: db},
		sessions: sessions,
		skills:   skills,
		users:    users,
	}
}

// CreateSessionParams carries the booking request.
type CreateSessionParams struct {
	SkillID     string
	StudentID   string
	ScheduledAt time.Time
	Format      string
	MeetingLink string
	Location    string
	Notes       string
}

// CreateSession books a session against a skill after probing the teacher's
// calendar. The conflict window is [scheduledAt, scheduledAt+duration) and is
// checked against the start times of the teacher's existing sessions only; an
// existing session that is already running when the new one starts does not
// register as a conflict. Two bookings racing past the probe can both land.
func (s *SessionServiceImpl) CreateSession(ctx context.Context, params CreateSessionParams) (*domain.Session, error) {
	const op = "internal.service.CreateSession"

	log := s.log.With(
		slog.String("op", op),
		slog.String("skill_id", params.SkillID),
		slog.String("student_id", params.StudentID),
	)

	skill, err := s.skills.GetSkillByID(ctx, params.SkillID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !skill.IsActive {
		return nil, fmt.Errorf("%s: %w: skill is no longer offered", op, apperrors.ErrInvalidRequest)
	}

	windowStart := params.ScheduledAt
	windowEnd := params.ScheduledAt.Add(time.Duration(skill.Duration) * time.Minute)

	conflict, err := s.sessions.HasSchedulingConflict(ctx, skill.TeacherID, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if conflict {
		log.Info("booking rejected, teacher already booked in window",
			slog.Time("window_start", windowStart),
			slog.Time("window_end", windowEnd),
		)

		return nil, fmt.Errorf("%s: %w", op, &apperrors.SchedulingConflictError{
			TeacherID: skill.TeacherID,
		})
	}

	session := &domain.Session{
		ID:            uuid.NewString(),
		SkillID:       skill.ID,
		SkillName:     skill.Name,
		TeacherID:     skill.TeacherID,
		StudentID:     params.StudentID,
		ScheduledAt:   params.ScheduledAt,
		Duration:      skill.Duration,
		Status:        domain.SessionScheduled,
		Format:        params.Format,
		MeetingLink:   params.MeetingLink,
		Location:      params.Location,
		Price:         skill.Price,
		Notes:         params.Notes,
		PaymentStatus: domain.PaymentPending,
		PaymentAmount: skill.Price,
	}

	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("session booked", slog.String("session_id", session.ID))

	return s.sessions.GetSessionByID(ctx, session.ID)
}

// CompleteSession transitions a session to completed, then applies the
// completion stats in a second transaction. The status write commits on its
// own, so a crash between the two leaves the stats behind; the reconciler
// catches up using the stats_applied flag.
func (s *SessionServiceImpl) CompleteSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	const op = "internal.service.CompleteSession"

	log := s.log.With(slog.String("op", op), slog.String("session_id", sessionID))

	var session *domain.Session

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		locked, err := s.sessions.GetSessionByIDWithLock(ctx, tx, sessionID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if locked.Status == domain.SessionCompleted {
			return fmt.Errorf("%s: %w", op, apperrors.ErrAlreadyCompleted)
		}

		if locked.Status == domain.SessionCancelled {
			return fmt.Errorf("%s: %w: session is cancelled", op, apperrors.ErrInvalidRequest)
		}

		completedAt := time.Now().UTC()
		if err := s.sessions.MarkCompleted(ctx, tx, sessionID, completedAt); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		locked.Status = domain.SessionCompleted
		locked.CompletedAt = &completedAt
		session = locked

		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.applyCompletionStats(ctx, session); err != nil {
		// The session is already completed; the stats transaction is
		// retried by the reconciler.
		log.Warn("completion stats not applied, leaving to reconciliation", sl.Err(err))
	}

	return session, nil
}

// applyCompletionStats bumps the teacher, student and skill counters for one
// completed session, all in a single transaction. The stats_applied flag is
// claimed first: if the reconciler already counted this session, the
// increments are skipped so they apply exactly once.
func (s *SessionServiceImpl) applyCompletionStats(ctx context.Context, session *domain.Session) error {
	const op = "internal.service.applyCompletionStats"

	return s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		claimed, err := s.sessions.MarkStatsApplied(ctx, tx, session.ID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if !claimed {
			s.log.Debug("completion stats already applied, skipping",
				slog.String("op", op),
				slog.String("session_id", session.ID),
			)

			return nil
		}

		if err := s.users.IncrementTaught(ctx, tx, session.TeacherID, session.Price); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if err := s.users.IncrementTaken(ctx, tx, session.StudentID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if err := s.skills.IncrementSessions(ctx, tx, session.SkillID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if err := s.skills.AddStudent(ctx, tx, session.SkillID, session.StudentID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		return nil
	})
}

// CancelSession cancels a session on behalf of cancelledBy. Only completion
// blocks cancellation; cancelling twice just overwrites the sub-record.
func (s *SessionServiceImpl) CancelSession(ctx context.Context, sessionID, cancelledBy, reason string) (*domain.Session, error) {
	const op = "internal.service.CancelSession"

	session, err := s.sessions.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if session.Status == domain.SessionCompleted {
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrAlreadyCompleted)
	}

	if err := s.sessions.MarkCancelled(ctx, sessionID, cancelledBy, reason, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("session cancelled",
		slog.String("op", op),
		slog.String("session_id", sessionID),
		slog.String("cancelled_by", cancelledBy),
	)

	return s.sessions.GetSessionByID(ctx, sessionID)
}

// RequestReschedule records a pending reschedule request. The session keeps
// its original scheduled time until the other party approves; the request is
// accepted in any state and replaces a previous one.
func (s *SessionServiceImpl) RequestReschedule(ctx context.Context, sessionID, requestedBy string, newDate time.Time, reason string) (*domain.Session, error) {
	const op = "internal.service.RequestReschedule"

	session, err := s.sessions.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.sessions.SetRescheduleRequest(ctx, sessionID, requestedBy, session.ScheduledAt, newDate, reason); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.sessions.GetSessionByID(ctx, sessionID)
}

func (s *SessionServiceImpl) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	const op = "internal.service.GetSession"

	session, err := s.sessions.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return session, nil
}

func (s *SessionServiceImpl) ListSessions(ctx context.Context, filter repository.SessionFilter) ([]domain.Session, int, error) {
	const op = "internal.service.ListSessions"

	sessions, total, err := s.sessions.ListSessions(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return sessions, total, nil
}

func (s *SessionServiceImpl) UpcomingSessions(ctx context.Context, userID string, limit int) ([]domain.Session, error) {
	const op = "internal.service.UpcomingSessions"

	sessions, err := s.sessions.UpcomingSessions(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sessions, nil
}

// ReconcileCompletionStats repairs sessions whose completion stats were never
// applied. It is idempotent: stats_applied guards against double counting.
func (s *SessionServiceImpl) ReconcileCompletionStats(ctx context.Context, batchSize int) (int, error) {
	const op = "internal.service.ReconcileCompletionStats"

	var repaired int

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		pending, err := s.sessions.ListUnreconciled(ctx, tx, batchSize)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		for _, session := range pending {
			claimed, err := s.sessions.MarkStatsApplied(ctx, tx, session.ID)
			if err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}

			if !claimed {
				continue
			}

			if err := s.users.IncrementTaught(ctx, tx, session.TeacherID, session.Price); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}

			if err := s.users.IncrementTaken(ctx, tx, session.StudentID); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}

			if err := s.skills.IncrementSessions(ctx, tx, session.SkillID); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}

			if err := s.skills.AddStudent(ctx, tx, session.SkillID, session.StudentID); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}

			repaired++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return repaired, nil
}
