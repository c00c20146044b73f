package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibecommerce/storefront-backend/pkg/types"
)

// Order is the immutable record produced by checkout. Items carry the
// name/price snapshot taken at order time; nothing in this service updates
// or deletes an order after creation.
type Order struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SessionID     string           `gorm:"column:session_id;not null;index" json:"-"`
	CustomerName  string           `gorm:"column:customer_name;not null" json:"customer_name"`
	CustomerEmail string           `gorm:"column:customer_email;not null" json:"customer_email"`
	Total         decimal.Decimal  `gorm:"column:total;type:numeric(10,2);not null" json:"total"`
	Items         types.OrderItems `gorm:"column:items;type:jsonb;serializer:json" json:"items"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
