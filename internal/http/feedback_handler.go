package api

import (
	"encoding/json"
	"net/http"

	"rating-service/internal/platform/apperr"
	"rating-service/internal/platform/token"
	"rating-service/internal/worker"
)

type feedbackRequest struct {
	PostID   int64  `json:"post_id"`
	Feedback string `json:"feedback"`
	Reply    string `json:"reply"`
	Token    string `json:"_token"`
}

type feedbackResponse struct {
	Message string `json:"message"`
}

// @Summary     Attach feedback to a vote
// @Tags        ratings
// @Accept      json
// @Produce     json
// @Param       id       path      int64            true  "Rating ID"
// @Param       request  body      feedbackRequest  true  "Feedback payload"
// @Success     200  {object}  feedbackResponse
// @Failure     400  {object}  map[string]string  "empty feedback"
// @Failure     401  {object}  map[string]string  "token not valid for this rating"
// @Failure     404  {object}  map[string]string  "rating not found"
// @Failure     409  {object}  map[string]string  "feedback already attached"
// @Router      /api/v1/ratings/{id}/feedback [post]
func (h *Handler) handleFeedback(w http.ResponseWriter, r *http.Request) {
	ratingID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid rating id", err))
		return
	}

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	// The continuation token is scoped to exactly this rating id; a token
	// minted for any other rating fails here.
	if err := h.tokens.Verify(req.Token, token.FeedbackPurpose(ratingID)); err != nil {
		errorResponse(w, apperr.Unauthorized("invalid_token", "invalid or missing feedback token", err))
		return
	}

	feedback, reply, err := h.ratingSvc.AttachFeedback(r.Context(), ratingID, req.Feedback, req.Reply)
	if err != nil {
		errorResponse(w, err)
		return
	}

	select {
	case h.feedbackCh <- worker.FeedbackEvent{
		RatingID: ratingID,
		PostID:   req.PostID,
		Feedback: feedback,
		Reply:    reply,
	}:
	default:
	}

	writeJSON(w, http.StatusOK, feedbackResponse{Message: "Thank you for the feedback."})
}
