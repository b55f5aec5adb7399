package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"rating-service/internal/domain/post"
	"rating-service/internal/domain/rating"
	"rating-service/internal/domain/settings"
	"rating-service/internal/platform/token"
	"rating-service/internal/worker"
)

// AdminAccount is the single configured admin identity used by the login
// endpoint; there is no stored user base.
type AdminAccount struct {
	Email        string
	PasswordHash []byte
}

type Handler struct {
	postSvc     *post.Service
	ratingSvc   *rating.Service
	settingsSvc *settings.Service
	tokens      *token.Manager
	feedbackCh  chan<- worker.FeedbackEvent
	admin       AdminAccount
	db          *sql.DB
}

func NewRouter(
	postSvc *post.Service,
	ratingSvc *rating.Service,
	settingsSvc *settings.Service,
	tokens *token.Manager,
	feedbackCh chan<- worker.FeedbackEvent,
	admin AdminAccount,
	db *sql.DB,
) http.Handler {
	h := &Handler{
		postSvc:     postSvc,
		ratingSvc:   ratingSvc,
		settingsSvc: settingsSvc,
		tokens:      tokens,
		feedbackCh:  feedbackCh,
		admin:       admin,
		db:          db,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(RequestLogger)
	r.Use(CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/ready", h.handleReady)
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.handleLogin)

		r.Get("/posts/{id}", h.handleGetPost)
		r.Get("/posts/{id}/rating", h.handleRatingControls)
		r.With(RateLimitVotes(rate.Every(time.Minute/10), 3)).Post("/posts/{id}/vote", h.handleVote)
		r.Post("/ratings/{id}/feedback", h.handleFeedback)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(tokens))
			r.Use(RequireRole("admin"))

			r.Post("/posts", h.handleRegisterPost)
			r.Get("/posts/{id}/ratings", h.handleListRatings)
			r.Get("/settings", h.handleGetSettings)
			r.Put("/settings", h.handleUpdateSettings)
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)
	return strconv.ParseInt(idStr, 10, 64)
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "db_unavailable",
			"message": "database not configured",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "db_unavailable",
			"message": "database not ready",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
