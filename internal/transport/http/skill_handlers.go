package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shlok-baraskar/skill-swap-hub/internal/repository"
	"github.com/shlok-baraskar/skill-swap-hub/internal/service"
)

func (s *Server) createSkill(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.createSkill"

	var req createSkillRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	skill, err := s.skillService.CreateSkill(r.Context(), service.CreateSkillParams{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		TeacherID:   req.TeacherID,
		Level:       req.Level,
		Duration:    req.Duration,
		Price:       req.Price,
		MaxStudents: req.MaxStudents,
		Tags:        req.Tags,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]skillResponse{"skill": toSkillResponse(skill)})
}

func (s *Server) getSkill(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getSkill"

	skill, err := s.skillService.GetSkill(r.Context(), chi.URLParam(r, "skillID"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]skillResponse{"skill": toSkillResponse(skill)})
}

func (s *Server) listSkills(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listSkills"

	query := r.URL.Query()

	filter := repository.SkillFilter{
		Category: query.Get("category"),
		Level:    query.Get("level"),
		Search:   query.Get("search"),
		Sort:     query.Get("sort"),
		Page:     queryInt(query.Get("page"), 1),
		Limit:    queryInt(query.Get("limit"), 12),
	}

	if raw := query.Get("min_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = v
		}
	}
	if raw := query.Get("max_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = v
		}
	}

	skills, total, err := s.skillService.ListSkills(r.Context(), filter)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]interface{}{
		"skills": toSkillResponses(skills),
		"meta":   listMeta{Total: total, Page: filter.Page, Limit: filter.Limit},
	})
}

func (s *Server) listSkillsByCategory(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listSkillsByCategory"

	query := r.URL.Query()

	filter := repository.SkillFilter{
		Category: chi.URLParam(r, "category"),
		Sort:     query.Get("sort"),
		Page:     queryInt(query.Get("page"), 1),
		Limit:    queryInt(query.Get("limit"), 12),
	}

	skills, total, err := s.skillService.ListSkills(r.Context(), filter)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]interface{}{
		"skills": toSkillResponses(skills),
		"meta":   listMeta{Total: total, Page: filter.Page, Limit: filter.Limit},
	})
}

func (s *Server) updateSkill(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.updateSkill"

	var req updateSkillRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	skill, err := s.skillService.UpdateSkill(r.Context(), chi.URLParam(r, "skillID"), req.TeacherID, service.UpdateSkillParams{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Level:       req.Level,
		Duration:    req.Duration,
		Price:       req.Price,
		MaxStudents: req.MaxStudents,
		Tags:        req.Tags,
		IsFeatured:  req.IsFeatured,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]skillResponse{"skill": toSkillResponse(skill)})
}

func (s *Server) deleteSkill(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.deleteSkill"

	var req deleteSkillRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if err := s.skillService.DeleteSkill(r.Context(), chi.URLParam(r, "skillID"), req.TeacherID); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}
