package api

import (
	"encoding/json"
	"net/http"
	"time"

	"rating-service/internal/domain/rating"
	"rating-service/internal/domain/settings"
	"rating-service/internal/guard"
	"rating-service/internal/metrics"
	"rating-service/internal/platform/apperr"
	"rating-service/internal/platform/token"
)

const (
	voteTokenTTL     = 24 * time.Hour
	feedbackTokenTTL = time.Hour
)

type voteRequest struct {
	Type  string `json:"type"`
	Token string `json:"_token"`
}

type feedbackFormDescriptor struct {
	Description string `json:"description"`
	Reply       bool   `json:"reply"`
	ReplyDescr  string `json:"reply_descr,omitempty"`
}

type voteResponse struct {
	Positives    int64                   `json:"positives"`
	Negatives    int64                   `json:"negatives"`
	Message      string                  `json:"message"`
	RatingID     int64                   `json:"rating_id"`
	Token        string                  `json:"token,omitempty"`
	Feedback     bool                    `json:"feedback,omitempty"`
	FeedbackForm *feedbackFormDescriptor `json:"feedbackform,omitempty"`
}

type ratingControlsResponse struct {
	PostID        int64  `json:"post_id"`
	Enabled       bool   `json:"enabled"`
	Title         string `json:"title,omitempty"`
	LabelPositive string `json:"label_positive,omitempty"`
	LabelNegative string `json:"label_negative,omitempty"`
	Positives     int64  `json:"positives"`
	Negatives     int64  `json:"negatives"`
	Token         string `json:"token,omitempty"`
}

// @Summary     Rating widget payload
// @Tags        ratings
// @Produce     json
// @Param       id   path     int64  true  "Post ID"
// @Success     200  {object} ratingControlsResponse
// @Failure     404  {object}  map[string]string  "post not found"
// @Router      /api/v1/posts/{id}/rating [get]
func (h *Handler) handleRatingControls(w http.ResponseWriter, r *http.Request) {
	postID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid post id", err))
		return
	}

	p, err := h.postSvc.Get(r.Context(), postID)
	if err != nil {
		errorResponse(w, err)
		return
	}

	cfg, err := h.settingsSvc.Get(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}

	resp := ratingControlsResponse{PostID: p.ID}

	if !cfg.EnabledFor(p.PostType) {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	counts, err := h.ratingSvc.Counts(r.Context(), postID)
	if err != nil {
		errorResponse(w, err)
		return
	}

	voteToken, err := h.tokens.Mint(token.PurposeVote, voteTokenTTL)
	if err != nil {
		errorResponse(w, err)
		return
	}

	resp.Enabled = true
	resp.Title = cfg.Title
	resp.LabelPositive = settings.RenderLabel(cfg.BtnLabelPositive, counts.Positives)
	resp.LabelNegative = settings.RenderLabel(cfg.BtnLabelNegative, counts.Negatives)
	resp.Positives = counts.Positives
	resp.Negatives = counts.Negatives
	resp.Token = voteToken

	writeJSON(w, http.StatusOK, resp)
}

// @Summary     Submit a vote
// @Tags        ratings
// @Accept      json
// @Produce     json
// @Param       id       path      int64        true  "Post ID"
// @Param       request  body      voteRequest  true  "Vote payload"
// @Success     200  {object}  voteResponse
// @Failure     400  {object}  map[string]string  "unknown vote type"
// @Failure     401  {object}  map[string]string  "missing or invalid token"
// @Failure     404  {object}  map[string]string  "post not found"
// @Failure     409  {object}  map[string]string  "already voted"
// @Router      /api/v1/posts/{id}/vote [post]
func (h *Handler) handleVote(w http.ResponseWriter, r *http.Request) {
	postID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid post id", err))
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	if err := h.tokens.Verify(req.Token, token.PurposeVote); err != nil {
		errorResponse(w, apperr.Unauthorized("invalid_token", "invalid or missing vote token", err))
		return
	}

	voted := guard.FromRequest(r)

	rt, counts, err := h.ratingSvc.Submit(r.Context(), rating.SubmitInput{
		PostID:         postID,
		Type:           rating.Type(req.Type),
		VoterIP:        clientIP(r),
		VoterUserAgent: r.UserAgent(),
		AlreadyVoted:   voted.Has(postID),
	})
	if err != nil {
		errorResponse(w, err)
		return
	}

	metrics.IncRating(string(rt.Type))

	voted.Add(postID)
	http.SetCookie(w, voted.Cookie())

	resp := voteResponse{
		Positives: counts.Positives,
		Negatives: counts.Negatives,
		Message:   "Your vote was saved.",
		RatingID:  rt.ID,
	}

	cfg, err := h.settingsSvc.Get(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}

	if enabled, descr := cfg.FeedbackFor(string(rt.Type)); enabled {
		contToken, err := h.tokens.Mint(token.FeedbackPurpose(rt.ID), feedbackTokenTTL)
		if err != nil {
			errorResponse(w, err)
			return
		}
		resp.Token = contToken
		resp.Feedback = true
		resp.FeedbackForm = &feedbackFormDescriptor{
			Description: descr,
			Reply:       cfg.FeedbackReply,
			ReplyDescr:  cfg.FeedbackReplyDescr,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
