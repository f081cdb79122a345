package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shlok-baraskar/skill-swap-hub/internal/repository"
	"github.com/shlok-baraskar/skill-swap-hub/internal/service"
)

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.createSession"

	var req createSessionRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	session, err := s.sessionService.CreateSession(r.Context(), service.CreateSessionParams{
		SkillID:     req.SkillID,
		StudentID:   req.StudentID,
		ScheduledAt: req.ScheduledAt,
		Format:      req.Format,
		MeetingLink: req.MeetingLink,
		Location:    req.Location,
		Notes:       req.Notes,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]sessionResponse{"session": toSessionResponse(session)})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getSession"

	session, err := s.sessionService.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]sessionResponse{"session": toSessionResponse(session)})
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listSessions"

	query := r.URL.Query()

	filter := repository.SessionFilter{
		UserID: query.Get("user_id"),
		Kind:   query.Get("kind"),
		Status: query.Get("status"),
		Page:   queryInt(query.Get("page"), 1),
		Limit:  queryInt(query.Get("limit"), 20),
	}

	sessions, total, err := s.sessionService.ListSessions(r.Context(), filter)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]interface{}{
		"sessions": toSessionResponses(sessions),
		"meta":     listMeta{Total: total, Page: filter.Page, Limit: filter.Limit},
	})
}

func (s *Server) upcomingSessions(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.upcomingSessions"

	query := r.URL.Query()

	sessions, err := s.sessionService.UpcomingSessions(r.Context(), query.Get("user_id"), queryInt(query.Get("limit"), 10))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]interface{}{
		"sessions": toSessionResponses(sessions),
	})
}

func (s *Server) completeSession(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.completeSession"

	session, err := s.sessionService.CompleteSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]sessionResponse{"session": toSessionResponse(session)})
}

func (s *Server) cancelSession(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.cancelSession"

	var req cancelSessionRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	session, err := s.sessionService.CancelSession(r.Context(), chi.URLParam(r, "sessionID"), req.CancelledBy, req.Reason)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]sessionResponse{"session": toSessionResponse(session)})
}

func (s *Server) requestReschedule(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.requestReschedule"

	var req rescheduleSessionRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	session, err := s.sessionService.RequestReschedule(r.Context(), chi.URLParam(r, "sessionID"), req.RequestedBy, req.NewDate, req.Reason)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]sessionResponse{"session": toSessionResponse(session)})
}
