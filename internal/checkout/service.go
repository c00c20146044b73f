package checkout

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/vibecommerce/storefront-backend/internal/cart"
	"github.com/vibecommerce/storefront-backend/internal/orders"
	"github.com/vibecommerce/storefront-backend/internal/pricing"
	"github.com/vibecommerce/storefront-backend/pkg/db/models"
	pkgerrors "github.com/vibecommerce/storefront-backend/pkg/errors"
	"github.com/vibecommerce/storefront-backend/pkg/types"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// txRunner is the transactional slice of the db client the checkout needs.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CustomerDetails is the buyer input collected at checkout.
type CustomerDetails struct {
	Name  string
	Email string
}

// Service turns a session's cart into an order. Order creation and cart
// clearing happen in one transaction, so a failure on either side leaves
// both the cart and order history untouched.
type Service interface {
	Checkout(ctx context.Context, sessionID string, customer CustomerDetails) (*models.Order, error)
}

type service struct {
	db        txRunner
	cartRepo  cart.CartRepository
	orderRepo orders.OrderRepository
}

// NewService builds the checkout service.
func NewService(db txRunner, cartRepo cart.CartRepository, orderRepo orders.OrderRepository) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("db client required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if orderRepo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	return &service{db: db, cartRepo: cartRepo, orderRepo: orderRepo}, nil
}

// Checkout validates the customer details, snapshots the cart into an order
// and empties the cart. Validation failures happen before any write, so a
// rejected checkout never mutates state. Stock is intentionally left alone;
// fulfilment adjusts it out of band.
func (s *service) Checkout(ctx context.Context, sessionID string, customer CustomerDetails) (*models.Order, error) {
	name := strings.TrimSpace(customer.Name)
	email := strings.TrimSpace(customer.Email)

	fields := map[string]string{}
	if name == "" {
		fields["name"] = "name is required"
	}
	if !emailPattern.MatchString(email) {
		fields["email"] = "a valid email is required"
	}
	if len(fields) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid customer details").WithDetails(fields)
	}

	var order *models.Order
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		items, err := cartRepo.ListBySession(ctx, sessionID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
		}
		if len(items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		lines := make([]pricing.Line, 0, len(items))
		snapshot := make(types.OrderItems, 0, len(items))
		for _, item := range items {
			lines = append(lines, pricing.Line{Quantity: item.Quantity, UnitPrice: item.Product.Price})
			snapshot = append(snapshot, types.OrderItem{
				Name:     item.Product.Name,
				Quantity: item.Quantity,
				Price:    item.Product.Price,
			})
		}
		total, err := pricing.ComputeTotal(lines)
		if err != nil {
			return err
		}

		order = &models.Order{
			SessionID:     sessionID,
			CustomerName:  name,
			CustomerEmail: email,
			Total:         total,
			Items:         snapshot,
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating order")
		}
		if err := cartRepo.DeleteBySession(ctx, sessionID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing cart")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
