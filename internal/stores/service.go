package stores

import (
	"context"

	"github.com/google/uuid"
	"github.com/nutrimart/nutrimart-backend/pkg/db/models"
	pkgerrors "github.com/nutrimart/nutrimart-backend/pkg/errors"
)

// StoreReader is the persistence surface the service needs.
type StoreReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	ListAll(ctx context.Context) ([]models.Store, error)
}

// Service exposes the storefront's retail location listing.
type Service interface {
	List(ctx context.Context) ([]StoreDTO, error)
}

type service struct {
	storeRepo StoreReader
}

// NewService builds a store service with the required dependencies.
func NewService(storeRepo StoreReader) (Service, error) {
	if storeRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store repo is required")
	}
	return &service{storeRepo: storeRepo}, nil
}

// List returns all retail locations for the contacts page.
func (s *service) List(ctx context.Context) ([]StoreDTO, error) {
	records, err := s.storeRepo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}
	dtos := make([]StoreDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, toDTO(record))
	}
	return dtos, nil
}
