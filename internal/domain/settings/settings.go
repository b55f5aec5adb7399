// Package settings holds the widget configuration the admin surface owns
// and the rating core reads. Keys mirror the persisted option names.
package settings

import (
	"context"
	"strconv"
	"strings"
)

// Settings is the full widget configuration. Button labels may carry a
// {count} placeholder, replaced with the current counter when rendered.
type Settings struct {
	Title            string          `json:"title"`
	PostTypes        map[string]bool `json:"posttypes"`
	BtnLabelPositive string          `json:"btn_label_positive"`
	BtnLabelNegative string          `json:"btn_label_negative"`

	FeedbackPositive      bool   `json:"feedback_positive"`
	FeedbackNegative      bool   `json:"feedback_negative"`
	FeedbackPositiveDescr string `json:"feedback_positive_descr"`
	FeedbackNegativeDescr string `json:"feedback_negative_descr"`

	FeedbackReply      bool   `json:"feedback_reply"`
	FeedbackReplyDescr string `json:"feedback_reply_descr"`
}

type Repository interface {
	Load(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
}

func Defaults() Settings {
	return Settings{
		Title:            "Was this helpful?",
		PostTypes:        map[string]bool{"post": true},
		BtnLabelPositive: "Yes ({count})",
		BtnLabelNegative: "No ({count})",
	}
}

// EnabledFor reports whether rating controls are active for a post type.
func (s Settings) EnabledFor(postType string) bool {
	return s.PostTypes[postType]
}

// FeedbackFor returns whether feedback collection is enabled for the given
// vote type and the configured prompt description.
func (s Settings) FeedbackFor(voteType string) (bool, string) {
	switch voteType {
	case "positive":
		return s.FeedbackPositive, s.FeedbackPositiveDescr
	case "negative":
		return s.FeedbackNegative, s.FeedbackNegativeDescr
	default:
		return false, ""
	}
}

// RenderLabel substitutes the {count} placeholder in a button label.
func RenderLabel(label string, count int64) string {
	return strings.ReplaceAll(label, "{count}", strconv.FormatInt(count, 10))
}
