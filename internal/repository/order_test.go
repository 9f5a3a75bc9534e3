package repository

import (
	"context"
	"testing"

	"marketplace-api/internal/model"
	"marketplace-api/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedOrder(t *testing.T, db *gorm.DB) *model.Order {
	t.Helper()

	user := &model.User{Username: "alice", Email: "alice@example.com", Password: "x"}
	require.NoError(t, db.Create(user).Error)

	category := &model.Category{Name: "drinks"}
	require.NoError(t, db.Create(category).Error)
	inventory := &model.Inventory{Quantity: 5}
	require.NoError(t, db.Create(inventory).Error)
	product := &model.Product{
		Name:        "Cold Brew",
		CategoryID:  category.ID,
		InventoryID: inventory.ID,
		Price:       decimal.NewFromInt(9500),
	}
	require.NoError(t, db.Create(product).Error)

	order := &model.Order{
		OrderNumber: "ord-1",
		UserID:      user.ID,
		TotalPrice:  decimal.NewFromInt(9500),
		Status:      model.OrderStatusPending,
	}
	require.NoError(t, db.Create(order).Error)
	require.NoError(t, db.Create(&model.OrderItem{
		OrderID:   order.ID,
		ProductID: product.ID,
		Quantity:  1,
		Price:     decimal.NewFromInt(9500),
	}).Error)

	return order
}

func TestOrderRepository_FindDetail(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	repo := NewOrderRepository(db)

	order := seedOrder(t, db)

	t.Run("missing order returns nil, nil", func(t *testing.T) {
		detail, err := repo.FindDetail(ctx, 9999)
		require.NoError(t, err)
		require.Nil(t, detail)
	})

	t.Run("shipping and payment are nullable", func(t *testing.T) {
		// no shipping or payment rows were seeded; assembly must not fail
		detail, err := repo.FindDetail(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, detail)
		require.Equal(t, "alice", detail.Username)
		require.Len(t, detail.Items, 1)
		require.Equal(t, "Cold Brew", detail.Items[0].ProductName)
		require.Nil(t, detail.Shipping)
		require.Nil(t, detail.Payment)
	})
}

func TestOrderRepository_UpsertPayment(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	repo := NewOrderRepository(db)

	order := seedOrder(t, db)

	require.NoError(t, repo.UpsertPayment(ctx, order.ID, &model.Payment{
		Method:      "card",
		Status:      model.PaymentStatusPending,
		TotalAmount: order.TotalPrice,
	}))

	// second upsert must update the existing row, not add another
	require.NoError(t, repo.UpsertPayment(ctx, order.ID, &model.Payment{
		Method:      "transfer",
		Status:      model.PaymentStatusPaid,
		TotalAmount: order.TotalPrice,
	}))

	var payments []model.Payment
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&payments).Error)
	require.Len(t, payments, 1)
	require.Equal(t, "transfer", payments[0].Method)
	require.Equal(t, model.PaymentStatusPaid, payments[0].Status)
	require.True(t, payments[0].TotalAmount.Equal(order.TotalPrice))
}
