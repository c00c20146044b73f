package types

import "github.com/shopspring/decimal"

// OrderItem is one line of the snapshot frozen into an order at checkout.
// It copies the product name and unit price as of that moment so later
// catalog edits never alter order history.
type OrderItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// OrderItems is the jsonb column payload on the orders table.
type OrderItems []OrderItem
