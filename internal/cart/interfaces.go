package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vibecommerce/storefront-backend/pkg/db/models"
)

// CartRepository defines the persistence surface required by the cart service.
// Every operation is scoped to a single session id; rows belonging to other
// sessions are never visible through it.
type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	ListBySession(ctx context.Context, sessionID string) ([]models.CartItem, error)
	UpsertAdd(ctx context.Context, item *models.CartItem) error
	UpdateQuantity(ctx context.Context, sessionID string, id uuid.UUID, quantity int) (int64, error)
	Delete(ctx context.Context, sessionID string, id uuid.UUID) (int64, error)
	DeleteBySession(ctx context.Context, sessionID string) error
}
