package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one product line inside a visitor's cart. A session holds at
// most one line per product (unique on session_id + product_id) and
// quantity never drops below 1.
type CartItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SessionID string    `gorm:"column:session_id;not null;uniqueIndex:idx_cart_items_session_product" json:"-"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_cart_items_session_product" json:"product_id"`
	Quantity  int       `gorm:"column:quantity;not null;default:1" json:"quantity"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
