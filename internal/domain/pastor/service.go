package pastor

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, pastorID string) (*Pastor, error) {
	return s.repo.Get(ctx, pastorID)
}

func (s *Service) List(ctx context.Context) ([]Pastor, error) {
	return s.repo.List(ctx)
}

func (s *Service) Save(ctx context.Context, in Pastor) (*Pastor, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, ErrNameRequired
	}
	if in.ID == "" {
		in.ID = uuid.NewString()
	}

	if err := s.repo.Save(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}
