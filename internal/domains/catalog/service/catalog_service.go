package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/catalog/model"
	"library-backend/internal/domains/catalog/repository"
	"library-backend/internal/shared"
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"
)

type CatalogService struct {
	repo  repository.RepositoryInterface
	cache cache.Cache
}

func NewService(repo repository.RepositoryInterface, cache cache.Cache) ServiceInterface {
	return &CatalogService{
		repo:  repo,
		cache: cache,
	}
}

// AddItem registers a new item. Every copy starts on the shelf, so
// available is initialized equal to quantity.
func (s *CatalogService) AddItem(ctx context.Context, req model.AddItemRequest) (*model.CatalogItem, error) {
	item := &model.CatalogItem{
		ID:        uuid.New(),
		Title:     req.Title,
		Author:    req.Author,
		ISBN:      req.ISBN,
		Quantity:  req.Quantity,
		Available: req.Quantity,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	// A new item can appear in cached availability listings.
	if err := s.cache.DeletePattern(ctx, shared.AvailableItemsCachePrefix+"*"); err != nil {
		logger.Warn("failed to invalidate availability cache", err)
	}

	return item, nil
}

func (s *CatalogService) GetItem(ctx context.Context, id uuid.UUID) (*model.CatalogItem, error) {
	return s.repo.GetByID(ctx, id)
}
