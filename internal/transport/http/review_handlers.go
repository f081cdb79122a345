package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shlok-baraskar/skill-swap-hub/internal/repository"
	"github.com/shlok-baraskar/skill-swap-hub/internal/service"
)

func (s *Server) createReview(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.createReview"

	var req createReviewRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	review, err := s.reviewService.CreateReview(r.Context(), service.CreateReviewParams{
		SessionID: req.SessionID,
		StudentID: req.StudentID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]reviewResponse{"review": toReviewResponse(review)})
}

func (s *Server) getReview(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getReview"

	review, err := s.reviewService.GetReview(r.Context(), chi.URLParam(r, "reviewID"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]reviewResponse{"review": toReviewResponse(review)})
}

func (s *Server) listReviews(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listReviews"

	query := r.URL.Query()

	filter := repository.ReviewFilter{
		SkillID:   query.Get("skill_id"),
		TeacherID: query.Get("teacher_id"),
		StudentID: query.Get("student_id"),
		Page:      queryInt(query.Get("page"), 1),
		Limit:     queryInt(query.Get("limit"), 10),
	}

	reviews, total, err := s.reviewService.ListReviews(r.Context(), filter)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]interface{}{
		"reviews": toReviewResponses(reviews),
		"meta":    listMeta{Total: total, Page: filter.Page, Limit: filter.Limit},
	})
}

func (s *Server) updateReview(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.updateReview"

	var req updateReviewRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	review, err := s.reviewService.UpdateReview(r.Context(), chi.URLParam(r, "reviewID"), repository.ReviewUpdate{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]reviewResponse{"review": toReviewResponse(review)})
}

func (s *Server) deleteReview(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.deleteReview"

	if err := s.reviewService.DeleteReview(r.Context(), chi.URLParam(r, "reviewID")); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) respondToReview(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.respondToReview"

	var req respondToReviewRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	review, err := s.reviewService.RespondToReview(r.Context(), chi.URLParam(r, "reviewID"), req.TeacherID, req.Text)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]reviewResponse{"review": toReviewResponse(review)})
}

func (s *Server) toggleHelpful(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.toggleHelpful"

	var req toggleRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	result, err := s.reviewService.ToggleHelpful(r.Context(), chi.URLParam(r, "reviewID"), req.UserID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, toggleResponse{Count: result.Count, State: result.State})
}
