package pricing

import (
	"github.com/shopspring/decimal"

	pkgerrors "github.com/vibecommerce/storefront-backend/pkg/errors"
)

// Line is the minimal shape ComputeTotal needs from a cart line.
type Line struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// ComputeTotal sums quantity * unit price over the provided lines using
// fixed-point decimal math. Negative quantities or prices are a caller
// contract violation and are rejected outright.
func ComputeTotal(lines []Line) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, line := range lines {
		if line.Quantity < 0 {
			return decimal.Zero, pkgerrors.New(pkgerrors.CodeInvalidArgument, "negative quantity").
				WithDetails(map[string]any{"quantity": line.Quantity})
		}
		if line.UnitPrice.IsNegative() {
			return decimal.Zero, pkgerrors.New(pkgerrors.CodeInvalidArgument, "negative unit price").
				WithDetails(map[string]any{"unit_price": line.UnitPrice.String()})
		}
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total, nil
}
