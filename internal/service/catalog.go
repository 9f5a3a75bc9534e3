package service

import (
	"context"
	"fmt"

	"marketplace-api/internal/apperr"
	"marketplace-api/internal/dto"
	"marketplace-api/internal/model"
	"marketplace-api/internal/repository"

	"gorm.io/gorm"
)

// CatalogService covers products and categories. Product create and update
// touch the inventory row inside the same transaction.
type CatalogService interface {
	ListProducts(ctx context.Context, query dto.ProductListQuery) (*dto.PagedProducts, error)
	GetProduct(ctx context.Context, productID uint) (*dto.ProductView, error)
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductView, error)
	UpdateProduct(ctx context.Context, productID uint, req dto.UpdateProductRequest) (*dto.ProductView, error)
	DeleteProduct(ctx context.Context, productID uint) error

	ListCategories(ctx context.Context, query dto.CategoryListQuery) (*dto.PagedCategories, error)
	GetCategory(ctx context.Context, categoryID uint) (*dto.CategoryView, error)
	CreateCategory(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryView, error)
	UpdateCategory(ctx context.Context, categoryID uint, req dto.CategoryRequest) (*dto.CategoryView, error)
	DeleteCategory(ctx context.Context, categoryID uint) error
}

type catalogServiceImpl struct {
	db           *gorm.DB
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewCatalogService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) CatalogService {
	return &catalogServiceImpl{
		db:           db,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context, query dto.ProductListQuery) (*dto.PagedProducts, error) {
	query.Page, query.Limit = normalizePage(query.Page, query.Limit)

	views, total, err := s.productRepo.FindViews(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return &dto.PagedProducts{Products: views, Total: total}, nil
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, productID uint) (*dto.ProductView, error) {
	view, err := s.productRepo.FindViewByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if view == nil {
		return nil, apperr.NotFound("product not found")
	}

	return view, nil
}

func (s *catalogServiceImpl) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductView, error) {
	if req.Name == "" {
		return nil, apperr.Validation("product name is required")
	}
	if req.CategoryID == 0 {
		return nil, apperr.Validation("valid category is required")
	}
	if !req.Price.IsPositive() {
		return nil, apperr.Validation("price must be a positive number")
	}
	if req.Quantity < 0 {
		return nil, apperr.Validation("quantity must not be negative")
	}

	category, err := s.categoryRepo.FindByID(ctx, req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("load category: %w", err)
	}
	if category == nil {
		return nil, apperr.Validation("valid category is required")
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		SKU:         req.SKU,
		CategoryID:  req.CategoryID,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	}

	// inventory row first, then the product pointing at it
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inventory := &model.Inventory{Quantity: req.Quantity}
		if err := s.productRepo.CreateInventory(ctx, tx, inventory); err != nil {
			return fmt.Errorf("store inventory: %w", err)
		}

		product.InventoryID = inventory.ID
		if err := s.productRepo.Create(ctx, tx, product); err != nil {
			return fmt.Errorf("store product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetProduct(ctx, product.ID)
}

func (s *catalogServiceImpl) UpdateProduct(ctx context.Context, productID uint, req dto.UpdateProductRequest) (*dto.ProductView, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if product == nil {
		return nil, apperr.NotFound("product not found")
	}

	if req.Price != nil && !req.Price.IsPositive() {
		return nil, apperr.Validation("price must be a positive number")
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		return nil, apperr.Validation("quantity must not be negative")
	}
	if req.CategoryID != nil {
		category, err := s.categoryRepo.FindByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("load category: %w", err)
		}
		if category == nil {
			return nil, apperr.Validation("valid category is required")
		}
	}

	// the patch maps only known fields; absent ones stay untouched
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.SKU != nil {
		fields["sku"] = *req.SKU
	}
	if req.CategoryID != nil {
		fields["category_id"] = *req.CategoryID
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.ImageURL != nil {
		fields["image_url"] = *req.ImageURL
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.Quantity != nil {
			if err := s.productRepo.UpdateInventoryQuantity(ctx, tx, product.InventoryID, *req.Quantity); err != nil {
				return fmt.Errorf("update inventory: %w", err)
			}
		}
		if err := s.productRepo.UpdateFields(ctx, tx, productID, fields); err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetProduct(ctx, productID)
}

func (s *catalogServiceImpl) DeleteProduct(ctx context.Context, productID uint) error {
	deleted, err := s.productRepo.SoftDelete(ctx, productID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if !deleted {
		return apperr.NotFound("product not found")
	}

	return nil
}

func (s *catalogServiceImpl) ListCategories(ctx context.Context, query dto.CategoryListQuery) (*dto.PagedCategories, error) {
	query.Page, query.Limit = normalizePage(query.Page, query.Limit)

	categories, total, err := s.categoryRepo.FindAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	views := make([]dto.CategoryView, 0, len(categories))
	for _, category := range categories {
		count, err := s.categoryRepo.ProductCount(ctx, category.ID)
		if err != nil {
			return nil, fmt.Errorf("count products: %w", err)
		}
		views = append(views, dto.CategoryView{
			ID:           category.ID,
			Name:         category.Name,
			Description:  category.Description,
			ProductCount: count,
		})
	}

	return &dto.PagedCategories{Categories: views, Total: total}, nil
}

func (s *catalogServiceImpl) GetCategory(ctx context.Context, categoryID uint) (*dto.CategoryView, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("load category: %w", err)
	}
	if category == nil {
		return nil, apperr.NotFound("category not found")
	}

	count, err := s.categoryRepo.ProductCount(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	return &dto.CategoryView{
		ID:           category.ID,
		Name:         category.Name,
		Description:  category.Description,
		ProductCount: count,
	}, nil
}

func (s *catalogServiceImpl) CreateCategory(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryView, error) {
	if req.Name == "" {
		return nil, apperr.Validation("category name is required")
	}

	existing, err := s.categoryRepo.FindByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("load category: %w", err)
	}
	if existing != nil {
		return nil, apperr.Validation("category already exists")
	}

	category := &model.Category{Name: req.Name, Description: req.Description}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("store category: %w", err)
	}

	return &dto.CategoryView{ID: category.ID, Name: category.Name, Description: category.Description}, nil
}

func (s *catalogServiceImpl) UpdateCategory(ctx context.Context, categoryID uint, req dto.CategoryRequest) (*dto.CategoryView, error) {
	if req.Name == "" {
		return nil, apperr.Validation("category name is required")
	}

	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("load category: %w", err)
	}
	if category == nil {
		return nil, apperr.NotFound("category not found")
	}

	category.Name = req.Name
	category.Description = req.Description
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	return s.GetCategory(ctx, categoryID)
}

func (s *catalogServiceImpl) DeleteCategory(ctx context.Context, categoryID uint) error {
	deleted, err := s.categoryRepo.SoftDelete(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if !deleted {
		return apperr.NotFound("category not found")
	}

	return nil
}
