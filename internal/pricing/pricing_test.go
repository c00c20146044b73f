package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/vibecommerce/storefront-backend/pkg/errors"
)

func TestComputeTotalEmpty(t *testing.T) {
	t.Parallel()

	total, err := ComputeTotal(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !total.IsZero() {
		t.Fatalf("expected zero total, got %s", total)
	}
}

func TestComputeTotalSumsLines(t *testing.T) {
	t.Parallel()

	total, err := ComputeTotal([]Line{
		{Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
		{Quantity: 1, UnitPrice: decimal.RequireFromString("5.50")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !total.Equal(decimal.RequireFromString("25.50")) {
		t.Fatalf("expected 25.50, got %s", total)
	}
}

func TestComputeTotalAvoidsBinaryFloatError(t *testing.T) {
	t.Parallel()

	// 0.1 + 0.2 style inputs that float64 would mangle.
	total, err := ComputeTotal([]Line{
		{Quantity: 3, UnitPrice: decimal.RequireFromString("0.10")},
		{Quantity: 1, UnitPrice: decimal.RequireFromString("0.20")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total.String() != "0.5" {
		t.Fatalf("expected exact 0.5, got %s", total)
	}
}

func TestComputeTotalRejectsNegativeQuantity(t *testing.T) {
	t.Parallel()

	_, err := ComputeTotal([]Line{{Quantity: -1, UnitPrice: decimal.NewFromInt(1)}})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInvalidArgument {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestComputeTotalRejectsNegativePrice(t *testing.T) {
	t.Parallel()

	_, err := ComputeTotal([]Line{{Quantity: 1, UnitPrice: decimal.RequireFromString("-0.01")}})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInvalidArgument {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestComputeTotalZeroQuantityLineContributesNothing(t *testing.T) {
	t.Parallel()

	total, err := ComputeTotal([]Line{{Quantity: 0, UnitPrice: decimal.RequireFromString("99.99")}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !total.IsZero() {
		t.Fatalf("expected zero, got %s", total)
	}
}
