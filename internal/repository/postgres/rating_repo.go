package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"rating-service/internal/domain/post"
	"rating-service/internal/domain/rating"
)

type RatingRepo struct {
	db *sql.DB
}

func NewRatingRepo(db *sql.DB) *RatingRepo {
	return &RatingRepo{db: db}
}

// Create inserts the rating and bumps the per-post counter in one
// transaction. The counter bump is a single upsert, so concurrent votes for
// the same post never lose updates.
func (r *RatingRepo) Create(ctx context.Context, rt *rating.Rating) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
        INSERT INTO ratings (post_id, type, voter_ip, voter_user_agent)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `, rt.PostID, rt.Type, rt.VoterIP, rt.VoterUserAgent).
		Scan(&rt.ID, &rt.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return post.ErrNotFound
		}
		return err
	}

	pos, neg := 0, 0
	if rt.Type == rating.TypePositive {
		pos = 1
	} else {
		neg = 1
	}

	_, err = tx.ExecContext(ctx, `
        INSERT INTO rating_counts (post_id, positives, negatives)
        VALUES ($1, $2, $3)
        ON CONFLICT (post_id) DO UPDATE
        SET positives  = rating_counts.positives + excluded.positives,
            negatives  = rating_counts.negatives + excluded.negatives,
            updated_at = now()
    `, rt.PostID, pos, neg)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *RatingRepo) Counts(ctx context.Context, postID int64) (rating.Counts, error) {
	var c rating.Counts
	err := r.db.QueryRowContext(ctx, `
        SELECT positives, negatives
        FROM rating_counts
        WHERE post_id = $1
    `, postID).Scan(&c.Positives, &c.Negatives)
	if errors.Is(err, sql.ErrNoRows) {
		return rating.Counts{}, nil
	}
	if err != nil {
		return rating.Counts{}, err
	}
	return c, nil
}

// AttachFeedback sets feedback on a rating that has none. The feedback
// column is write-once: the guard in the WHERE clause makes replays a
// conflict instead of an overwrite.
func (r *RatingRepo) AttachFeedback(ctx context.Context, ratingID int64, feedback, replyContact string) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE ratings
        SET feedback = $2, reply_contact = NULLIF($3, ''), feedback_at = now()
        WHERE id = $1 AND feedback IS NULL
    `, ratingID, feedback, replyContact)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	var exists bool
	err = r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM ratings WHERE id = $1)`, ratingID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return rating.ErrFeedbackExists
	}
	return rating.ErrNotFound
}

func (r *RatingRepo) ListByPost(ctx context.Context, postID int64) ([]rating.Rating, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, post_id, type, voter_ip, voter_user_agent,
               feedback, reply_contact, feedback_at, created_at
        FROM ratings
        WHERE post_id = $1
        ORDER BY created_at DESC
    `, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []rating.Rating
	for rows.Next() {
		var rt rating.Rating
		if err := rows.Scan(&rt.ID, &rt.PostID, &rt.Type, &rt.VoterIP, &rt.VoterUserAgent,
			&rt.Feedback, &rt.ReplyContact, &rt.FeedbackAt, &rt.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, rt)
	}
	return res, rows.Err()
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
