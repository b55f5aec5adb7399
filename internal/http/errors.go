package api

import (
	"database/sql"
	"errors"
	"net/http"

	"rating-service/internal/domain/post"
	"rating-service/internal/domain/rating"
	"rating-service/internal/platform/apperr"
)

func errorResponse(w http.ResponseWriter, err error) {
	appErr := mapError(err)
	writeJSON(w, appErr.StatusCode(), map[string]string{
		"error":   appErr.Code,
		"message": appErr.Message,
	})
}

func mapError(err error) *apperr.AppError {
	if err == nil {
		return apperr.Internal("internal_error", "internal server error", nil)
	}

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return apperr.NotFound("not_found", "resource not found", err)
	case errors.Is(err, post.ErrNotFound):
		return apperr.NotFound("post_not_found", "post not found", err)
	case errors.Is(err, rating.ErrNotFound):
		return apperr.NotFound("rating_not_found", "rating not found", err)
	case errors.Is(err, rating.ErrUnknownType):
		return apperr.BadRequest("invalid_type", "Technical hiccups. Sorry.", err)
	case errors.Is(err, rating.ErrAlreadyVoted):
		return apperr.Conflict("already_voted", "You've already voted, sorry.", err)
	case errors.Is(err, rating.ErrEmptyFeedback):
		return apperr.BadRequest("empty_feedback", "Please provide feedback.", err)
	case errors.Is(err, rating.ErrFeedbackExists):
		return apperr.Conflict("feedback_exists", "Feedback was already submitted for this rating.", err)
	default:
		return apperr.Internal("internal_error", http.StatusText(http.StatusInternalServerError), err)
	}
}
