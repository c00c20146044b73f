package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibecommerce/storefront-backend/api/middleware"
	"github.com/vibecommerce/storefront-backend/api/responses"
	"github.com/vibecommerce/storefront-backend/api/validators"
	cartsvc "github.com/vibecommerce/storefront-backend/internal/cart"
	"github.com/vibecommerce/storefront-backend/pkg/db/models"
	pkgerrors "github.com/vibecommerce/storefront-backend/pkg/errors"
	"github.com/vibecommerce/storefront-backend/pkg/logger"
)

type cartResponse struct {
	Items []models.CartItem `json:"items"`
	Total decimal.Decimal   `json:"total"`
}

type addCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"omitempty,min=1"`
}

// Quantity is unchecked here on purpose: values below 1 are clamped by the
// service rather than rejected.
type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func sessionFromRequest(r *http.Request) (string, error) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	return sessionID, nil
}

// GetCart returns the session's items and cart total.
func GetCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, total, err := svc.ListItems(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if items == nil {
			items = []models.CartItem{}
		}

		responses.WriteSuccess(w, cartResponse{Items: items, Total: total})
	}
}

// AddCartItem adds a product to the cart, incrementing the existing line when
// the product is already there. Quantity defaults to 1 when omitted.
func AddCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Quantity == 0 {
			payload.Quantity = 1
		}

		if err := svc.AddItem(r.Context(), sessionID, payload.ProductID, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeCart(r, w, svc, logg, sessionID, http.StatusCreated)
	}
}

// UpdateCartItem sets the quantity on an existing cart line.
func UpdateCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetQuantity(r.Context(), sessionID, itemID, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeCart(r, w, svc, logg, sessionID, http.StatusOK)
	}
}

// RemoveCartItem deletes a cart line. Deleting a line that no longer exists
// still returns the current cart.
func RemoveCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveItem(r.Context(), sessionID, itemID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeCart(r, w, svc, logg, sessionID, http.StatusOK)
	}
}

func writeCart(r *http.Request, w http.ResponseWriter, svc cartsvc.Service, logg *logger.Logger, sessionID string, status int) {
	items, total, err := svc.ListItems(r.Context(), sessionID)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	if items == nil {
		items = []models.CartItem{}
	}
	responses.WriteSuccessStatus(w, status, cartResponse{Items: items, Total: total})
}
