package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"golang.org/x/crypto/bcrypt"

	_ "rating-service/docs"
	"rating-service/internal/config"
	"rating-service/internal/domain/post"
	"rating-service/internal/domain/rating"
	"rating-service/internal/domain/settings"
	api "rating-service/internal/http"
	"rating-service/internal/metrics"
	"rating-service/internal/platform/database"
	"rating-service/internal/platform/token"
	"rating-service/internal/repository/postgres"
	"rating-service/internal/worker"
)

// @title           Rating Service API
// @version         1.0
// @description     Thumbs-up/thumbs-down post ratings with optional feedback
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg := config.Load()

	db, err := database.NewPostgres(cfg.DB_DSN)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer db.Close()

	metrics.Register()

	postRepo := postgres.NewPostRepo(db)
	ratingRepo := postgres.NewRatingRepo(db)
	optionsRepo := postgres.NewOptionsRepo(db)

	postSvc := post.NewService(postRepo)
	ratingSvc := rating.NewService(ratingRepo)
	settingsSvc := settings.NewService(optionsRepo)

	tokens := token.NewManager(cfg.TokenSecret, "rating-service")

	admin := api.AdminAccount{Email: cfg.AdminEmail}
	if cfg.AdminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash admin password: %v", err)
		}
		admin.PasswordHash = hash
	}

	feedbackCh := make(chan worker.FeedbackEvent, 100)
	notifier := worker.NewNotifier(feedbackCh, cfg.FeedbackWebhook)

	router := api.NewRouter(postSvc, ratingSvc, settingsSvc, tokens, feedbackCh, admin, db)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go notifier.Run(ctx)

	go func() {
		log.Printf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	<-stop
	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown error: %v", err)
	}

	log.Println("server stopped")
}
