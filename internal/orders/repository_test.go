package orders

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vibecommerce/storefront-backend/pkg/db/models"
	"github.com/vibecommerce/storefront-backend/pkg/types"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  customer_email TEXT NOT NULL,
  total TEXT NOT NULL,
  items TEXT NOT NULL DEFAULT '[]',
  created_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	return db
}

func buildOrder(session, name, email, total string) *models.Order {
	return &models.Order{
		SessionID:     session,
		CustomerName:  name,
		CustomerEmail: email,
		Total:         decimal.RequireFromString(total),
		Items: types.OrderItems{
			{Name: "Canvas Tote", Quantity: 2, Price: decimal.RequireFromString("9.99")},
			{Name: "Trail Map", Quantity: 1, Price: decimal.RequireFromString("4.00")},
		},
	}
}

func TestCreateAndFindByIDAndSession(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	order := buildOrder("sess-1", "Ada Example", "ada@example.com", "23.98")
	require.NoError(t, repo.Create(context.Background(), order))
	require.NotEqual(t, uuid.Nil, order.ID)

	got, err := repo.FindByIDAndSession(context.Background(), order.ID, "sess-1")
	require.NoError(t, err)
	require.Equal(t, "Ada Example", got.CustomerName)
	require.True(t, got.Total.Equal(decimal.RequireFromString("23.98")))
	require.Len(t, got.Items, 2)
	require.Equal(t, "Canvas Tote", got.Items[0].Name)
	require.Equal(t, 2, got.Items[0].Quantity)
	require.True(t, got.Items[0].Price.Equal(decimal.RequireFromString("9.99")))
}

func TestFindByIDAndSessionHidesOtherSessions(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	order := buildOrder("sess-1", "Ada Example", "ada@example.com", "10.00")
	require.NoError(t, repo.Create(context.Background(), order))

	_, err := repo.FindByIDAndSession(context.Background(), order.ID, "sess-2")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListBySessionNewestFirst(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	first := buildOrder("sess-1", "Ada Example", "ada@example.com", "10.00")
	require.NoError(t, repo.Create(context.Background(), first))
	second := buildOrder("sess-1", "Ada Example", "ada@example.com", "20.00")
	require.NoError(t, repo.Create(context.Background(), second))
	other := buildOrder("sess-2", "Grace Example", "grace@example.com", "5.00")
	require.NoError(t, repo.Create(context.Background(), other))

	list, err := repo.ListBySession(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, o := range list {
		require.Equal(t, "ada@example.com", o.CustomerEmail)
	}
}
