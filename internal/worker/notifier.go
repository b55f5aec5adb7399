package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"rating-service/internal/retry"
)

// FeedbackEvent is published whenever feedback is attached to a rating, so
// external consumers (notification dispatch, reporting) can react.
type FeedbackEvent struct {
	RatingID int64  `json:"rating_id"`
	PostID   int64  `json:"post_id"`
	Feedback string `json:"feedback"`
	Reply    string `json:"reply,omitempty"`
}

// Notifier consumes feedback events from a channel. Events are always
// logged; when a webhook URL is configured they are also POSTed there as
// JSON with bounded retries.
type Notifier struct {
	ch         <-chan FeedbackEvent
	webhookURL string
	client     *http.Client
}

func NewNotifier(ch <-chan FeedbackEvent, webhookURL string) *Notifier {
	return &Notifier{
		ch:         ch,
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *Notifier) Run(ctx context.Context) {
	slog.Info("feedback notifier started")
	for {
		select {
		case <-ctx.Done():
			slog.Info("feedback notifier stopped")
			return
		case ev := <-n.ch:
			n.handle(ctx, ev)
		}
	}
}

func (n *Notifier) handle(ctx context.Context, ev FeedbackEvent) {
	slog.Info("feedback received",
		"rating_id", ev.RatingID,
		"post_id", ev.PostID,
		"has_reply", ev.Reply != "",
	)

	if n.webhookURL == "" {
		return
	}

	err := retry.DoWithRetry(ctx, 3, 500*time.Millisecond, func() error {
		return n.post(ctx, ev)
	})
	if err != nil {
		slog.Error("feedback webhook dispatch failed", "rating_id", ev.RatingID, "err", err)
	}
}

func (n *Notifier) post(ctx context.Context, ev FeedbackEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded %d", resp.StatusCode)
	}
	return nil
}
