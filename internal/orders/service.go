package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	pkgdb "github.com/vibecommerce/storefront-backend/pkg/db"
	"github.com/vibecommerce/storefront-backend/pkg/db/models"
	pkgerrors "github.com/vibecommerce/storefront-backend/pkg/errors"
)

// Service exposes order history reads. A session only ever sees its own
// orders, so a valid order id from another session reads as not found.
type Service interface {
	GetOrder(ctx context.Context, sessionID string, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, sessionID string) ([]models.Order, error)
}

type service struct {
	repo OrderRepository
}

// NewService builds the orders service.
func NewService(repo OrderRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetOrder(ctx context.Context, sessionID string, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByIDAndSession(ctx, id, sessionID)
	if err != nil {
		if pkgdb.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading order")
	}
	return order, nil
}

func (s *service) ListOrders(ctx context.Context, sessionID string) ([]models.Order, error) {
	list, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing orders")
	}
	return list, nil
}
