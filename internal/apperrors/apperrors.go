package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("resource conflict")

	ErrInvalidRequest = errors.New("invalid request body")
	ErrValidation     = errors.New("validation failed")

	ErrAlreadyCompleted  = errors.New("session is already completed")
	ErrDiscussionClosed  = errors.New("discussion is closed")
	ErrSchedulingOverlap = errors.New("teacher is not available at this time")
	ErrDuplicateReview   = errors.New("session has already been reviewed by this student")
)

type SchedulingConflictError struct {
	TeacherID string
}

func (e *SchedulingConflictError) Error() string {
	return fmt.Sprintf("teacher '%s' already has a session in this time window", e.TeacherID)
}
func (e *SchedulingConflictError) Is(target error) bool {
	return target == ErrSchedulingOverlap || target == ErrConflict
}

type DuplicateReviewError struct {
	SessionID string
	StudentID string
}

func (e *DuplicateReviewError) Error() string {
	return fmt.Sprintf("student '%s' has already reviewed session '%s'", e.StudentID, e.SessionID)
}
func (e *DuplicateReviewError) Is(target error) bool {
	return target == ErrDuplicateReview || target == ErrConflict
}
