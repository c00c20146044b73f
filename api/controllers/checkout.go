package controllers

import (
	"net/http"

	"github.com/vibecommerce/storefront-backend/api/middleware"
	"github.com/vibecommerce/storefront-backend/api/responses"
	"github.com/vibecommerce/storefront-backend/api/validators"
	checkoutsvc "github.com/vibecommerce/storefront-backend/internal/checkout"
	pkgerrors "github.com/vibecommerce/storefront-backend/pkg/errors"
	"github.com/vibecommerce/storefront-backend/pkg/logger"
)

type checkoutRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
}

// Checkout converts the session's cart into an order and returns the receipt.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session context missing"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Checkout(r.Context(), sessionID, checkoutsvc.CustomerDetails{
			Name:  payload.Name,
			Email: payload.Email,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
