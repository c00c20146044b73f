package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog listing. The cart and checkout paths treat it as
// read-only; price and stock are only ever edited out of band.
type Product struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string          `gorm:"column:name;not null" json:"name"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Description string          `gorm:"column:description;not null;default:''" json:"description"`
	ImageURL    string          `gorm:"column:image_url;not null;default:''" json:"image_url"`
	Stock       int             `gorm:"column:stock;not null;default:0" json:"stock"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
