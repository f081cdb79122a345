package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shlok-baraskar/skill-swap-hub/internal/repository"
	"github.com/shlok-baraskar/skill-swap-hub/internal/service"
)

func (s *Server) createDiscussion(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.createDiscussion"

	var req createDiscussionRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	discussion, err := s.discussionService.CreateDiscussion(r.Context(), service.CreateDiscussionParams{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: req.AuthorID,
		Category: req.Category,
		Tags:     req.Tags,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]discussionResponse{"discussion": toDiscussionResponse(discussion)})
}

func (s *Server) getDiscussion(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getDiscussion"

	discussion, err := s.discussionService.GetDiscussion(r.Context(), chi.URLParam(r, "discussionID"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]discussionResponse{"discussion": toDiscussionResponse(discussion)})
}

func (s *Server) listDiscussions(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listDiscussions"

	query := r.URL.Query()

	filter := repository.DiscussionFilter{
		Category: query.Get("category"),
		Sort:     query.Get("sort"),
		Page:     queryInt(query.Get("page"), 1),
		Limit:    queryInt(query.Get("limit"), 20),
	}

	discussions, total, err := s.discussionService.ListDiscussions(r.Context(), filter)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]interface{}{
		"discussions": toDiscussionResponses(discussions),
		"meta":        listMeta{Total: total, Page: filter.Page, Limit: filter.Limit},
	})
}

func (s *Server) trendingDiscussions(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.trendingDiscussions"

	topics, err := s.discussionService.Trending(r.Context(), queryInt(r.URL.Query().Get("limit"), 10))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]trendingTopicResponse{"topics": toTrendingTopicResponses(topics)})
}

func (s *Server) deleteDiscussion(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.deleteDiscussion"

	var req deleteDiscussionRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if err := s.discussionService.DeleteDiscussion(r.Context(), chi.URLParam(r, "discussionID"), req.UserID); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) appendReply(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.appendReply"

	var req appendReplyRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	discussion, err := s.discussionService.AppendReply(r.Context(), chi.URLParam(r, "discussionID"), req.AuthorID, req.Content)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]discussionResponse{"discussion": toDiscussionResponse(discussion)})
}

func (s *Server) toggleDiscussionLike(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.toggleDiscussionLike"

	var req toggleRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	result, err := s.discussionService.ToggleLike(r.Context(), chi.URLParam(r, "discussionID"), req.UserID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, toggleResponse{Count: result.Count, State: result.State})
}

func (s *Server) toggleReplyLike(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.toggleReplyLike"

	var req toggleRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	result, err := s.discussionService.ToggleReplyLike(
		r.Context(),
		chi.URLParam(r, "discussionID"),
		chi.URLParam(r, "replyID"),
		req.UserID,
	)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, toggleResponse{Count: result.Count, State: result.State})
}
