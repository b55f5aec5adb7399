package rating

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type memoryRatingRepo struct {
	mu      sync.Mutex
	ratings map[int64]*Rating
	counts  map[int64]Counts
	nextID  int64
}

func newMemoryRatingRepo() *memoryRatingRepo {
	return &memoryRatingRepo{
		ratings: make(map[int64]*Rating),
		counts:  make(map[int64]Counts),
		nextID:  1,
	}
}

func (r *memoryRatingRepo) Create(ctx context.Context, rt *Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt.ID = r.nextID
	r.nextID++
	rt.CreatedAt = time.Now()
	copyRating := *rt
	r.ratings[rt.ID] = &copyRating

	c := r.counts[rt.PostID]
	if rt.Type == TypePositive {
		c.Positives++
	} else {
		c.Negatives++
	}
	r.counts[rt.PostID] = c
	return nil
}

func (r *memoryRatingRepo) Counts(ctx context.Context, postID int64) (Counts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[postID], nil
}

func (r *memoryRatingRepo) AttachFeedback(ctx context.Context, ratingID int64, feedback, replyContact string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.ratings[ratingID]
	if !ok {
		return ErrNotFound
	}
	if rt.Feedback != nil {
		return ErrFeedbackExists
	}
	rt.Feedback = &feedback
	if replyContact != "" {
		rt.ReplyContact = &replyContact
	}
	now := time.Now()
	rt.FeedbackAt = &now
	return nil
}

func (r *memoryRatingRepo) ListByPost(ctx context.Context, postID int64) ([]Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []Rating
	for _, rt := range r.ratings {
		if rt.PostID == postID {
			res = append(res, *rt)
		}
	}
	return res, nil
}

func TestSubmitAndCounts(t *testing.T) {
	repo := newMemoryRatingRepo()
	svc := NewService(repo)
	ctx := context.Background()

	rt, counts, err := svc.Submit(ctx, SubmitInput{PostID: 1, Type: TypePositive, VoterIP: "10.0.0.1"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if rt.ID == 0 {
		t.Fatalf("expected assigned rating id")
	}
	if counts.Positives != 1 || counts.Negatives != 0 {
		t.Fatalf("expected counts 1/0, got %d/%d", counts.Positives, counts.Negatives)
	}

	_, counts, err = svc.Submit(ctx, SubmitInput{PostID: 1, Type: TypeNegative})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if counts.Positives != 1 || counts.Negatives != 1 {
		t.Fatalf("expected counts 1/1, got %d/%d", counts.Positives, counts.Negatives)
	}
}

func TestSubmitUnknownType(t *testing.T) {
	repo := newMemoryRatingRepo()
	svc := NewService(repo)

	_, _, err := svc.Submit(context.Background(), SubmitInput{PostID: 1, Type: "meh"})
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	if c, _ := repo.Counts(context.Background(), 1); c.Positives != 0 || c.Negatives != 0 {
		t.Fatalf("counters must stay untouched, got %+v", c)
	}
}

func TestSubmitDuplicateRejected(t *testing.T) {
	repo := newMemoryRatingRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, _, err := svc.Submit(ctx, SubmitInput{PostID: 1, Type: TypePositive}); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	_, _, err := svc.Submit(ctx, SubmitInput{PostID: 1, Type: TypePositive, AlreadyVoted: true})
	if !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}
	if c, _ := repo.Counts(ctx, 1); c.Positives != 1 {
		t.Fatalf("duplicate must not change counters, got %+v", c)
	}
}

func TestConcurrentSubmissionsDontLoseVotes(t *testing.T) {
	repo := newMemoryRatingRepo()
	svc := NewService(repo)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		typ := TypePositive
		if i%2 == 1 {
			typ = TypeNegative
		}
		go func(tp Type) {
			defer wg.Done()
			if _, _, err := svc.Submit(ctx, SubmitInput{PostID: 7, Type: tp}); err != nil {
				t.Errorf("submit: %v", err)
			}
		}(typ)
	}
	wg.Wait()

	c, _ := repo.Counts(ctx, 7)
	if c.Positives+c.Negatives != n {
		t.Fatalf("lost updates: %d + %d != %d", c.Positives, c.Negatives, n)
	}
}

func TestAttachFeedbackSanitizes(t *testing.T) {
	repo := newMemoryRatingRepo()
	svc := NewService(repo)
	ctx := context.Background()

	rt, _, err := svc.Submit(ctx, SubmitInput{PostID: 1, Type: TypeNegative})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	stored, reply, err := svc.AttachFeedback(ctx, rt.ID, "  <b>too short</b> ", "<i>me@example.com</i>")
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if stored != "too short" {
		t.Fatalf("expected markup stripped and trimmed, got %q", stored)
	}
	if reply != "me@example.com" {
		t.Fatalf("expected sanitized reply contact, got %q", reply)
	}
}

func TestAttachFeedbackEmptyAfterSanitize(t *testing.T) {
	repo := newMemoryRatingRepo()
	svc := NewService(repo)
	ctx := context.Background()

	rt, _, err := svc.Submit(ctx, SubmitInput{PostID: 1, Type: TypeNegative})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	for _, input := range []string{"", "   ", "<script>alert('x')</script>"} {
		if _, _, err := svc.AttachFeedback(ctx, rt.ID, input, ""); !errors.Is(err, ErrEmptyFeedback) {
			t.Fatalf("input %q: expected ErrEmptyFeedback, got %v", input, err)
		}
	}
}

func TestAttachFeedbackWriteOnce(t *testing.T) {
	repo := newMemoryRatingRepo()
	svc := NewService(repo)
	ctx := context.Background()

	rt, _, err := svc.Submit(ctx, SubmitInput{PostID: 1, Type: TypePositive})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, _, err := svc.AttachFeedback(ctx, rt.ID, "great", ""); err != nil {
		t.Fatalf("first attach: %v", err)
	}
	if _, _, err := svc.AttachFeedback(ctx, rt.ID, "changed my mind", ""); !errors.Is(err, ErrFeedbackExists) {
		t.Fatalf("expected ErrFeedbackExists, got %v", err)
	}
	if *repo.ratings[rt.ID].Feedback != "great" {
		t.Fatalf("stored feedback must not be overwritten")
	}
}

func TestAttachFeedbackUnknownRating(t *testing.T) {
	svc := NewService(newMemoryRatingRepo())

	if _, _, err := svc.AttachFeedback(context.Background(), 99, "hello", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
