package settings

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (Settings, error) {
	return s.repo.Load(ctx)
}

func (s *Service) Update(ctx context.Context, cfg Settings) error {
	if cfg.PostTypes == nil {
		cfg.PostTypes = map[string]bool{}
	}
	return s.repo.Save(ctx, cfg)
}
