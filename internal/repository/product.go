package repository

import (
	"context"
	"errors"

	"marketplace-api/internal/dto"
	"marketplace-api/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	FindViews(ctx context.Context, query dto.ProductListQuery) ([]dto.ProductView, int64, error)
	FindViewByID(ctx context.Context, productID uint) (*dto.ProductView, error)
	FindByID(ctx context.Context, productID uint) (*model.Product, error)
	FindManyByIDs(ctx context.Context, productIDs []uint) ([]*model.Product, error)

	Create(ctx context.Context, tx *gorm.DB, product *model.Product) error
	CreateInventory(ctx context.Context, tx *gorm.DB, inventory *model.Inventory) error
	UpdateFields(ctx context.Context, tx *gorm.DB, productID uint, fields map[string]interface{}) error
	UpdateInventoryQuantity(ctx context.Context, tx *gorm.DB, inventoryID uint, quantity int32) error
	SoftDelete(ctx context.Context, productID uint) (bool, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("products").
		Select(`products.id, products.name, products.description, products.sku,
			products.category_id, categories.name AS category_name,
			products.price, inventories.quantity AS stock,
			products.image_url, products.created_at`).
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Joins("LEFT JOIN inventories ON inventories.id = products.inventory_id").
		Where("products.deleted_at IS NULL")
}

func (r *productRepoImpl) FindViews(ctx context.Context, query dto.ProductListQuery) ([]dto.ProductView, int64, error) {
	q := r.viewQuery(ctx)
	count := r.db.WithContext(ctx).
		Table("products").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where("products.deleted_at IS NULL")

	if query.Category != "" {
		q = q.Where("categories.name = ?", query.Category)
		count = count.Where("categories.name = ?", query.Category)
	}

	if query.Search != "" {
		like := "%" + query.Search + "%"
		cond := "products.name LIKE ? OR products.description LIKE ? OR categories.name LIKE ?"
		q = q.Where(cond, like, like, like)
		count = count.Where(cond, like, like, like)
	}

	switch query.Sort {
	case "price_asc":
		q = q.Order("products.price ASC")
	case "price_desc":
		q = q.Order("products.price DESC")
	default: // newest
		q = q.Order("products.created_at DESC")
	}

	var total int64
	if err := count.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit

	var views []dto.ProductView
	err := q.Limit(query.Limit).Offset(offset).Find(&views).Error
	if err != nil {
		return nil, 0, err
	}

	return views, total, nil
}

func (r *productRepoImpl) FindViewByID(ctx context.Context, productID uint) (*dto.ProductView, error) {
	var view dto.ProductView
	err := r.viewQuery(ctx).
		Where("products.id = ?", productID).
		Take(&view).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &view, nil
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID uint) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindManyByIDs(ctx context.Context, productIDs []uint) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", productIDs).
		Find(&products).Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) Create(ctx context.Context, tx *gorm.DB, product *model.Product) error {
	return tx.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) CreateInventory(ctx context.Context, tx *gorm.DB, inventory *model.Inventory) error {
	return tx.WithContext(ctx).Create(inventory).Error
}

func (r *productRepoImpl) UpdateFields(ctx context.Context, tx *gorm.DB, productID uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", productID).
		Updates(fields).Error
}

func (r *productRepoImpl) UpdateInventoryQuantity(ctx context.Context, tx *gorm.DB, inventoryID uint, quantity int32) error {
	return tx.WithContext(ctx).Model(&model.Inventory{}).
		Where("id = ?", inventoryID).
		Update("quantity", quantity).Error
}

func (r *productRepoImpl) SoftDelete(ctx context.Context, productID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", productID).
		Delete(&model.Product{})

	return result.RowsAffected > 0, result.Error
}
