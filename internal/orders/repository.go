package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vibecommerce/storefront-backend/pkg/db/models"
)

// OrderRepository persists and reads back order records. Reads are scoped to
// the owning session; there is no cross-session listing.
type OrderRepository interface {
	WithTx(tx *gorm.DB) OrderRepository
	Create(ctx context.Context, order *models.Order) error
	FindByIDAndSession(ctx context.Context, id uuid.UUID, sessionID string) (*models.Order, error)
	ListBySession(ctx context.Context, sessionID string) ([]models.Order, error)
}

// Repository implements OrderRepository on a gorm connection.
type Repository struct {
	conn *gorm.DB
}

func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{conn: conn}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) OrderRepository {
	return &Repository{conn: tx}
}

func (r *Repository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	return r.conn.WithContext(ctx).Create(order).Error
}

func (r *Repository) FindByIDAndSession(ctx context.Context, id uuid.UUID, sessionID string) (*models.Order, error) {
	var order models.Order
	err := r.conn.WithContext(ctx).
		Where("id = ? AND session_id = ?", id, sessionID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListBySession returns the session's orders, newest first.
func (r *Repository) ListBySession(ctx context.Context, sessionID string) ([]models.Order, error) {
	var list []models.Order
	err := r.conn.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
