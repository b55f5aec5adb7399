package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rating-service/internal/domain/post"
)

type PostRepo struct {
	db *sql.DB
}

func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{db: db}
}

func (r *PostRepo) Create(ctx context.Context, p *post.Post) error {
	return r.db.QueryRowContext(ctx, `
        INSERT INTO posts (title, post_type)
        VALUES ($1, $2)
        RETURNING id, created_at
    `, p.Title, p.PostType).Scan(&p.ID, &p.CreatedAt)
}

func (r *PostRepo) GetByID(ctx context.Context, id int64) (*post.Post, error) {
	p := &post.Post{}
	err := r.db.QueryRowContext(ctx, `
        SELECT id, title, post_type, created_at
        FROM posts WHERE id = $1
    `, id).Scan(&p.ID, &p.Title, &p.PostType, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, post.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
