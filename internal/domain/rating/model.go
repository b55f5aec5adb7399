package rating

import (
	"context"
	"time"
)

type Type string

const (
	TypePositive Type = "positive"
	TypeNegative Type = "negative"
)

// Rating is one recorded vote. Feedback and ReplyContact are attached at
// most once after creation and never mutated again.
type Rating struct {
	ID             int64      `json:"id"`
	PostID         int64      `json:"post_id"`
	Type           Type       `json:"type"`
	VoterIP        string     `json:"voter_ip"`
	VoterUserAgent string     `json:"voter_user_agent"`
	Feedback       *string    `json:"feedback,omitempty"`
	ReplyContact   *string    `json:"reply_contact,omitempty"`
	FeedbackAt     *time.Time `json:"feedback_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type Counts struct {
	Positives int64 `json:"positives"`
	Negatives int64 `json:"negatives"`
}

type Repository interface {
	// Create inserts the rating and bumps the matching per-post counter in
	// one transaction. The counter bump must be atomic under concurrent
	// submissions for the same post.
	Create(ctx context.Context, r *Rating) error
	Counts(ctx context.Context, postID int64) (Counts, error)
	// AttachFeedback sets feedback and reply contact on a rating that has
	// none yet. A rating that already carries feedback is reported as
	// ErrFeedbackExists.
	AttachFeedback(ctx context.Context, ratingID int64, feedback, replyContact string) error
	ListByPost(ctx context.Context, postID int64) ([]Rating, error)
}
