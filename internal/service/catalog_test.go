package service

import (
	"context"
	"testing"

	"marketplace-api/internal/apperr"
	"marketplace-api/internal/dto"
	"marketplace-api/internal/model"
	"marketplace-api/internal/repository"
	"marketplace-api/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCatalogService(t *testing.T) (CatalogService, *gorm.DB) {
	t.Helper()
	db := testutil.OpenDB(t)
	svc := NewCatalogService(db, repository.NewProductRepository(db), repository.NewCategoryRepository(db))
	return svc, db
}

func TestCatalogService_Products(t *testing.T) {
	ctx := context.Background()
	svc, db := newCatalogService(t)

	category, err := svc.CreateCategory(ctx, dto.CategoryRequest{Name: "drinks"})
	require.NoError(t, err)

	created, err := svc.CreateProduct(ctx, dto.CreateProductRequest{
		Name:       "Cold Brew",
		CategoryID: category.ID,
		Price:      decimal.NewFromInt(9500),
		Quantity:   12,
	})
	require.NoError(t, err)
	require.Equal(t, "drinks", created.CategoryName)
	require.Equal(t, int32(12), created.Stock)

	t.Run("create writes product and inventory together", func(t *testing.T) {
		var inventories int64
		require.NoError(t, db.Model(&model.Inventory{}).Count(&inventories).Error)
		require.Equal(t, int64(1), inventories)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		_, err := svc.CreateProduct(ctx, dto.CreateProductRequest{
			Name:       "Orphan",
			CategoryID: 9999,
			Price:      decimal.NewFromInt(100),
		})
		require.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("patch update touches only supplied fields", func(t *testing.T) {
		newName := "Nitro Cold Brew"
		quantity := int32(5)
		updated, err := svc.UpdateProduct(ctx, created.ID, dto.UpdateProductRequest{
			Name:     &newName,
			Quantity: &quantity,
		})
		require.NoError(t, err)
		require.Equal(t, "Nitro Cold Brew", updated.Name)
		require.Equal(t, int32(5), updated.Stock)
		require.True(t, updated.Price.Equal(decimal.NewFromInt(9500)))
	})

	t.Run("search and sort", func(t *testing.T) {
		_, err := svc.CreateProduct(ctx, dto.CreateProductRequest{
			Name:       "Roasted Beans",
			CategoryID: category.ID,
			Price:      decimal.NewFromInt(4500),
		})
		require.NoError(t, err)

		page, err := svc.ListProducts(ctx, dto.ProductListQuery{Sort: "price_asc"})
		require.NoError(t, err)
		require.Equal(t, int64(2), page.Total)
		require.Equal(t, "Roasted Beans", page.Products[0].Name)

		page, err = svc.ListProducts(ctx, dto.ProductListQuery{Search: "Nitro"})
		require.NoError(t, err)
		require.Equal(t, int64(1), page.Total)
		require.Len(t, page.Products, 1)
	})

	t.Run("soft deleted products disappear from reads", func(t *testing.T) {
		require.NoError(t, svc.DeleteProduct(ctx, created.ID))

		_, err := svc.GetProduct(ctx, created.ID)
		require.ErrorIs(t, err, apperr.ErrNotFound)

		page, err := svc.ListProducts(ctx, dto.ProductListQuery{})
		require.NoError(t, err)
		require.Equal(t, int64(1), page.Total)

		err = svc.DeleteProduct(ctx, created.ID)
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestCatalogService_Categories(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCatalogService(t)

	drinks, err := svc.CreateCategory(ctx, dto.CategoryRequest{Name: "drinks", Description: "beverages"})
	require.NoError(t, err)

	t.Run("duplicate name is rejected", func(t *testing.T) {
		_, err := svc.CreateCategory(ctx, dto.CategoryRequest{Name: "drinks"})
		require.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("product count is exposed", func(t *testing.T) {
		_, err := svc.CreateProduct(ctx, dto.CreateProductRequest{
			Name:       "Cold Brew",
			CategoryID: drinks.ID,
			Price:      decimal.NewFromInt(9500),
		})
		require.NoError(t, err)

		got, err := svc.GetCategory(ctx, drinks.ID)
		require.NoError(t, err)
		require.Equal(t, int64(1), got.ProductCount)
	})

	t.Run("update and list", func(t *testing.T) {
		updated, err := svc.UpdateCategory(ctx, drinks.ID, dto.CategoryRequest{Name: "beverages"})
		require.NoError(t, err)
		require.Equal(t, "beverages", updated.Name)

		page, err := svc.ListCategories(ctx, dto.CategoryListQuery{})
		require.NoError(t, err)
		require.Equal(t, int64(1), page.Total)
	})

	t.Run("delete then not found", func(t *testing.T) {
		require.NoError(t, svc.DeleteCategory(ctx, drinks.ID))

		_, err := svc.GetCategory(ctx, drinks.ID)
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
