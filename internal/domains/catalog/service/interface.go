package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/catalog/model"
)

// ServiceInterface is the catalog business logic contract.
type ServiceInterface interface {
	AddItem(ctx context.Context, req model.AddItemRequest) (*model.CatalogItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (*model.CatalogItem, error)
}
