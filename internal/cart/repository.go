package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vibecommerce/storefront-backend/pkg/db/models"
)

// Repository implements CartRepository on a gorm connection.
type Repository struct {
	conn *gorm.DB
}

func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{conn: conn}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) CartRepository {
	return &Repository{conn: tx}
}

// ListBySession returns the session's items with their products preloaded,
// oldest first so the cart renders in insertion order.
func (r *Repository) ListBySession(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.conn.WithContext(ctx).
		Preload("Product").
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// UpsertAdd inserts the item, or adds its quantity onto the existing row for
// the same (session, product) pair. The conflict clause keeps concurrent adds
// from losing increments.
func (r *Repository) UpsertAdd(ctx context.Context, item *models.CartItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return r.conn.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
				"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
			}),
		}).
		Create(item).Error
}

// UpdateQuantity sets the stored quantity for the item and reports how many
// rows matched, so callers can distinguish a missing line from a no-op.
func (r *Repository) UpdateQuantity(ctx context.Context, sessionID string, id uuid.UUID, quantity int) (int64, error) {
	res := r.conn.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ? AND session_id = ?", id, sessionID).
		Update("quantity", quantity)
	return res.RowsAffected, res.Error
}

// Delete removes a single item from the session's cart.
func (r *Repository) Delete(ctx context.Context, sessionID string, id uuid.UUID) (int64, error) {
	res := r.conn.WithContext(ctx).
		Where("id = ? AND session_id = ?", id, sessionID).
		Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}

// DeleteBySession removes every item belonging to the session.
func (r *Repository) DeleteBySession(ctx context.Context, sessionID string) error {
	return r.conn.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&models.CartItem{}).Error
}
