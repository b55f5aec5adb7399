package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"rating-service/internal/platform/apperr"
)

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	if len(h.admin.PasswordHash) == 0 {
		errorResponse(w, apperr.Unauthorized("login_disabled", "admin login is not configured", nil))
		return
	}

	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(h.admin.Email)) == 1
	passErr := bcrypt.CompareHashAndPassword(h.admin.PasswordHash, []byte(req.Password))
	if !emailOK || passErr != nil {
		errorResponse(w, apperr.Unauthorized("invalid_credentials", "invalid credentials", nil))
		return
	}

	sessionToken, err := h.tokens.MintSession("admin", 24*time.Hour)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": sessionToken})
}
