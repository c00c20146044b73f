package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibecommerce/storefront-backend/internal/pricing"
	pkgdb "github.com/vibecommerce/storefront-backend/pkg/db"
	"github.com/vibecommerce/storefront-backend/pkg/db/models"
	pkgerrors "github.com/vibecommerce/storefront-backend/pkg/errors"
)

// productFinder is the slice of the catalog the cart needs: existence checks
// before an item goes into a cart.
type productFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service owns the per-session cart lifecycle.
type Service interface {
	ListItems(ctx context.Context, sessionID string) ([]models.CartItem, decimal.Decimal, error)
	AddItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) error
	SetQuantity(ctx context.Context, sessionID string, itemID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, sessionID string, itemID uuid.UUID) error
	ClearSession(ctx context.Context, sessionID string) error
}

type service struct {
	repo     CartRepository
	products productFinder
}

// NewService builds the cart service.
func NewService(repo CartRepository, products productFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	return &service{repo: repo, products: products}, nil
}

// ListItems returns the session's cart items together with the computed total.
func (s *service) ListItems(ctx context.Context, sessionID string) ([]models.CartItem, decimal.Decimal, error) {
	items, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing cart items")
	}

	lines := make([]pricing.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, pricing.Line{Quantity: item.Quantity, UnitPrice: item.Product.Price})
	}
	total, err := pricing.ComputeTotal(lines)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return items, total, nil
}

// AddItem puts quantity units of the product into the session's cart. Adding a
// product that is already in the cart increments the existing line instead of
// creating a second one.
func (s *service) AddItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeInvalidArgument, "session id required")
	}
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeInvalidArgument, "quantity must be at least 1")
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if pkgdb.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithDetails(map[string]string{"product_id": productID.String()})
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "verifying product")
	}

	item := &models.CartItem{
		SessionID: sessionID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.repo.UpsertAdd(ctx, item); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adding cart item")
	}
	return nil
}

// SetQuantity replaces the stored quantity for a cart line. Values below 1 are
// clamped to 1 rather than rejected, so a decrement past zero leaves one unit.
func (s *service) SetQuantity(ctx context.Context, sessionID string, itemID uuid.UUID, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	rows, err := s.repo.UpdateQuantity(ctx, sessionID, itemID, quantity)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating cart quantity")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found").
			WithDetails(map[string]string{"item_id": itemID.String()})
	}
	return nil
}

// RemoveItem deletes a cart line. Removing an item that is already gone is a
// success, so retried deletes stay safe.
func (s *service) RemoveItem(ctx context.Context, sessionID string, itemID uuid.UUID) error {
	if _, err := s.repo.Delete(ctx, sessionID, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "removing cart item")
	}
	return nil
}

// ClearSession empties the session's cart.
func (s *service) ClearSession(ctx context.Context, sessionID string) error {
	if err := s.repo.DeleteBySession(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing cart")
	}
	return nil
}
