package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nutrimart/nutrimart-backend/pkg/db/models"
	pkgerrors "github.com/nutrimart/nutrimart-backend/pkg/errors"
	"gorm.io/gorm"
)

// OrderReader is the persistence surface the service needs.
type OrderReader interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	FindOwned(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
}

// Service exposes order history for account holders.
type Service interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]OrderSummaryDTO, error)
	GetByID(ctx context.Context, userID, orderID uuid.UUID) (OrderDetailDTO, error)
}

type service struct {
	orderRepo OrderReader
}

// NewService builds an order service with the required dependencies.
func NewService(orderRepo OrderReader) (Service, error) {
	if orderRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order repo is required")
	}
	return &service{orderRepo: orderRepo}, nil
}

// ListByUser returns the user's placed orders newest-first.
func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]OrderSummaryDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	records, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	dtos := make([]OrderSummaryDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, ToSummaryDTO(record))
	}
	return dtos, nil
}

// GetByID returns one order, owner-scoped. Someone else's order is a 404,
// never a hint that it exists.
func (s *service) GetByID(ctx context.Context, userID, orderID uuid.UUID) (OrderDetailDTO, error) {
	if userID == uuid.Nil {
		return OrderDetailDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if orderID == uuid.Nil {
		return OrderDetailDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	record, err := s.orderRepo.FindOwned(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderDetailDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return OrderDetailDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return ToDetailDTO(*record), nil
}
