// package http implements the HTTP transport layer for the service.
// It handles incoming requests, decodes them, calls the appropriate service
// methods, and encodes the responses.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shlok-baraskar/skill-swap-hub/internal/apperrors"
	"github.com/shlok-baraskar/skill-swap-hub/internal/service"
	"github.com/shlok-baraskar/skill-swap-hub/internal/validation"
	"github.com/shlok-baraskar/skill-swap-hub/pkg/logger/sl"
)

// Server holds the dependencies for the HTTP server, including the logger and
// the domain services.
type Server struct {
	log               *slog.Logger
	userService       service.UserService
	skillService      service.SkillService
	sessionService    service.SessionService
	reviewService     service.ReviewService
	discussionService service.DiscussionService
}

// NewServer creates a new instance of the HTTP server.
func NewServer(
	log *slog.Logger,
	us service.UserService,
	sks service.SkillService,
	ses service.SessionService,
	rs service.ReviewService,
	ds service.DiscussionService,
) *Server {
	return &Server{
		log:               log,
		userService:       us,
		skillService:      sks,
		sessionService:    ses,
		reviewService:     rs,
		discussionService: ds,
	}
}

// Routes sets up the router with all middleware and API endpoints.
func (s *Server) Routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(s.requestID)
	mux.Use(s.logRequest)
	mux.Use(s.metricsMiddleware)

	mux.Handle("/metrics", promhttp.Handler())

	mux.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", s.createUser)
			r.Get("/", s.listUsers)
			r.Get("/{userID}", s.getUser)
			r.Put("/{userID}", s.updateProfile)
			r.Get("/{userID}/stats", s.getUserStats)
			r.Get("/{userID}/skills", s.listUserSkills)
			r.Post("/{userID}/skills", s.addLearningSkill)
		})

		r.Route("/skills", func(r chi.Router) {
			r.Post("/", s.createSkill)
			r.Get("/", s.listSkills)
			r.Get("/category/{category}", s.listSkillsByCategory)
			r.Get("/{skillID}", s.getSkill)
			r.Put("/{skillID}", s.updateSkill)
			r.Delete("/{skillID}", s.deleteSkill)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.createSession)
			r.Get("/", s.listSessions)
			r.Get("/upcoming", s.upcomingSessions)
			r.Get("/{sessionID}", s.getSession)
			r.Put("/{sessionID}/complete", s.completeSession)
			r.Put("/{sessionID}/cancel", s.cancelSession)
			r.Put("/{sessionID}/reschedule", s.requestReschedule)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Post("/", s.createReview)
			r.Get("/", s.listReviews)
			r.Get("/{reviewID}", s.getReview)
			r.Put("/{reviewID}", s.updateReview)
			r.Delete("/{reviewID}", s.deleteReview)
			r.Post("/{reviewID}/respond", s.respondToReview)
			r.Post("/{reviewID}/helpful", s.toggleHelpful)
		})

		r.Route("/discussions", func(r chi.Router) {
			r.Post("/", s.createDiscussion)
			r.Get("/", s.listDiscussions)
			r.Get("/trending", s.trendingDiscussions)
			r.Get("/{discussionID}", s.getDiscussion)
			r.Delete("/{discussionID}", s.deleteDiscussion)
			r.Post("/{discussionID}/replies", s.appendReply)
			r.Post("/{discussionID}/like", s.toggleDiscussionLike)
			r.Post("/{discussionID}/replies/{replyID}/like", s.toggleReplyLike)
		})
	})

	return mux
}

// respond is a helper function to encode data to JSON and write it to the
// response. It centralizes setting the Content-Type header and writing the
// status code.
func (s *Server) respond(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.log.Error("failed to encode response", sl.Err(err))
		}
	}
}

// respondError is a convenience wrapper around respond for sending simple
// error messages.
func (s *Server) respondError(w http.ResponseWriter, code int, message string) {
	s.respond(w, code, map[string]string{"error": message})
}

// decodeAndValidate is a helper that deserializes a JSON request body into a
// struct and then runs validation checks on it.
func (s *Server) decodeAndValidate(r *http.Request, v interface{}) error {
	if err := s.decode(r.Body, v); err != nil {
		return err
	}

	if err := validation.ValidateStruct(v); err != nil {
		return err
	}

	return nil
}

// decode is a helper function to decode a JSON request body.
func (s *Server) decode(body io.ReadCloser, v interface{}) error {
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	return nil
}

// handleServiceError provides centralized error handling for all HTTP
// handlers. It logs the internal error and maps it to a user-friendly HTTP
// response.
func (s *Server) handleServiceError(w http.ResponseWriter, _ *http.Request, op string, err error) {
	log := s.log.With(slog.String("op", op))
	log.Error("service error occurred", sl.Err(err))

	var (
		conflictErr   *apperrors.SchedulingConflictError
		duplicateErr  *apperrors.DuplicateReviewError
		validationErr *validation.ValidationError
	)

	switch {
	case errors.As(err, &validationErr):
		wrappedErr := fmt.Errorf("%w: %s", apperrors.ErrValidation, validationErr.Error())
		s.respondError(w, http.StatusBadRequest, wrappedErr.Error())
	case errors.Is(err, apperrors.ErrInvalidRequest):
		s.respondError(w, http.StatusBadRequest, "invalid request")
	case errors.Is(err, apperrors.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "resource not found")
	case errors.As(err, &conflictErr):
		s.respondError(w, http.StatusConflict, "teacher already has a session at this time")
	case errors.As(err, &duplicateErr):
		s.respondError(w, http.StatusConflict, "session already reviewed by this student")
	case errors.Is(err, apperrors.ErrAlreadyCompleted):
		s.respondError(w, http.StatusConflict, apperrors.ErrAlreadyCompleted.Error())
	case errors.Is(err, apperrors.ErrDiscussionClosed):
		s.respondError(w, http.StatusConflict, apperrors.ErrDiscussionClosed.Error())
	case errors.Is(err, apperrors.ErrConflict):
		s.respondError(w, http.StatusConflict, "resource already exists")
	default:
		s.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
