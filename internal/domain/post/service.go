package post

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("post not found")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, p *Post) (int64, error) {
	if p.Title == "" {
		return 0, errors.New("title required")
	}
	if p.PostType == "" {
		p.PostType = "post"
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Post, error) {
	return s.repo.GetByID(ctx, id)
}
