package api

import (
	"encoding/json"
	"net/http"

	"rating-service/internal/domain/post"
	"rating-service/internal/platform/apperr"
)

type registerPostRequest struct {
	Title    string `json:"title"`
	PostType string `json:"post_type"`
}

func (h *Handler) handleRegisterPost(w http.ResponseWriter, r *http.Request) {
	var req registerPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}
	if req.Title == "" {
		errorResponse(w, apperr.BadRequest("invalid_input", "title is required", nil))
		return
	}

	p := &post.Post{Title: req.Title, PostType: req.PostType}
	id, err := h.postSvc.Register(r.Context(), p)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (h *Handler) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid post id", err))
		return
	}

	p, err := h.postSvc.Get(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// handleListRatings enumerates every vote recorded against one post,
// including attached feedback; the reporting read contract.
func (h *Handler) handleListRatings(w http.ResponseWriter, r *http.Request) {
	postID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid post id", err))
		return
	}

	if _, err := h.postSvc.Get(r.Context(), postID); err != nil {
		errorResponse(w, err)
		return
	}

	ratings, err := h.ratingSvc.ListByPost(r.Context(), postID)
	if err != nil {
		errorResponse(w, err)
		return
	}

	counts, err := h.ratingSvc.Counts(r.Context(), postID)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"post_id":   postID,
		"positives": counts.Positives,
		"negatives": counts.Negatives,
		"ratings":   ratings,
	})
}
