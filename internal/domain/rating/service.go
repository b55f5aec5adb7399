package rating

import (
	"context"
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ErrUnknownType    = errors.New("unknown rating type")
	ErrAlreadyVoted   = errors.New("already voted for this post")
	ErrEmptyFeedback  = errors.New("feedback is empty")
	ErrFeedbackExists = errors.New("feedback already attached to this rating")
	ErrNotFound       = errors.New("rating not found")
)

type SubmitInput struct {
	PostID         int64
	Type           Type
	VoterIP        string
	VoterUserAgent string
	// AlreadyVoted reflects the client's guard cookie; the guard is
	// best-effort, so it arrives as a claim rather than server state.
	AlreadyVoted bool
}

type Service struct {
	repo      Repository
	sanitizer *bluemonday.Policy
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:      repo,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Submit records one vote and returns the created rating together with the
// post's updated counters. Duplicate submissions (per guard cookie) are
// rejected without touching counters.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*Rating, Counts, error) {
	if in.Type != TypePositive && in.Type != TypeNegative {
		return nil, Counts{}, ErrUnknownType
	}
	if in.AlreadyVoted {
		return nil, Counts{}, ErrAlreadyVoted
	}

	r := &Rating{
		PostID:         in.PostID,
		Type:           in.Type,
		VoterIP:        in.VoterIP,
		VoterUserAgent: in.VoterUserAgent,
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, Counts{}, err
	}

	counts, err := s.repo.Counts(ctx, in.PostID)
	if err != nil {
		return nil, Counts{}, err
	}

	return r, counts, nil
}

// AttachFeedback sanitizes and attaches free-text feedback (and an optional
// reply contact) to an existing rating. The attachment is write-once.
func (s *Service) AttachFeedback(ctx context.Context, ratingID int64, feedback, replyContact string) (string, string, error) {
	feedback = strings.TrimSpace(s.sanitizer.Sanitize(feedback))
	if feedback == "" {
		return "", "", ErrEmptyFeedback
	}
	replyContact = strings.TrimSpace(s.sanitizer.Sanitize(replyContact))

	if err := s.repo.AttachFeedback(ctx, ratingID, feedback, replyContact); err != nil {
		return "", "", err
	}
	return feedback, replyContact, nil
}

func (s *Service) Counts(ctx context.Context, postID int64) (Counts, error) {
	return s.repo.Counts(ctx, postID)
}

func (s *Service) ListByPost(ctx context.Context, postID int64) ([]Rating, error) {
	return s.repo.ListByPost(ctx, postID)
}
