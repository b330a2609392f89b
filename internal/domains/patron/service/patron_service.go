package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/patron/model"
	"library-backend/internal/domains/patron/repository"
)

type PatronService struct {
	repo repository.RepositoryInterface
}

func NewService(repo repository.RepositoryInterface) ServiceInterface {
	return &PatronService{repo: repo}
}

func (s *PatronService) Register(ctx context.Context, req model.RegisterRequest) (*model.Patron, error) {
	patron := &model.Patron{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		RegisteredAt: time.Now(),
		ActiveLoans:  0,
	}

	if err := s.repo.Create(ctx, patron); err != nil {
		return nil, err
	}

	return patron, nil
}

func (s *PatronService) GetPatron(ctx context.Context, id uuid.UUID) (*model.Patron, error) {
	return s.repo.GetByID(ctx, id)
}
