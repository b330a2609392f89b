package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/patron/model"
)

// ServiceInterface is the patron business logic contract.
type ServiceInterface interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.Patron, error)
	GetPatron(ctx context.Context, id uuid.UUID) (*model.Patron, error)
}
