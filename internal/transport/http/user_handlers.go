package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shlok-baraskar/skill-swap-hub/internal/domain"
	"github.com/shlok-baraskar/skill-swap-hub/internal/repository"
	"github.com/shlok-baraskar/skill-swap-hub/internal/service"
)

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.createUser"

	var req createUserRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	user, err := s.userService.CreateUser(r.Context(), service.CreateUserParams{
		Name:  req.Name,
		Email: req.Email,
		Role:  domain.Role(req.Role),
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]userResponse{"user": toUserResponse(user)})
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getUser"

	user, err := s.userService.GetUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]userResponse{"user": toUserResponse(user)})
}

func (s *Server) getUserStats(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getUserStats"

	stats, err := s.userService.GetStats(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]userStatsResponse{"stats": toUserStatsResponse(stats)})
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.updateProfile"

	var req updateProfileRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	user, err := s.userService.UpdateProfile(r.Context(), chi.URLParam(r, "userID"), repository.UserProfileUpdate{
		Name:               req.Name,
		Bio:                req.Bio,
		Title:              req.Title,
		Location:           req.Location,
		PhoneNumber:        req.PhoneNumber,
		Avatar:             req.Avatar,
		HourlyRate:         req.HourlyRate,
		TeachingExperience: req.TeachingExperience,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]userResponse{"user": toUserResponse(user)})
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listUsers"

	query := r.URL.Query()

	filter := repository.UserFilter{
		Role:   query.Get("role"),
		Search: query.Get("search"),
		Page:   queryInt(query.Get("page"), 1),
		Limit:  queryInt(query.Get("limit"), 20),
	}

	users, total, err := s.userService.ListUsers(r.Context(), filter)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]interface{}{
		"users": toUserResponses(users),
		"meta":  listMeta{Total: total, Page: filter.Page, Limit: filter.Limit},
	})
}

func (s *Server) listUserSkills(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listUserSkills"

	entries, err := s.userService.ListUserSkills(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]userSkillResponse{"skills": toUserSkillResponses(entries)})
}

func (s *Server) addLearningSkill(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.addLearningSkill"

	var req addLearningSkillRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	userID := chi.URLParam(r, "userID")
	if err := s.userService.AddLearningSkill(r.Context(), userID, req.SkillID, req.SkillName, req.Category); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]string{"status": "added"})
}

// queryInt parses an integer query parameter, falling back on bad input.
func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}

	return n
}
