package repository

import (
	"context"
	"errors"

	"marketplace-api/internal/dto"
	"marketplace-api/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	FindAll(ctx context.Context, query dto.CategoryListQuery) ([]*model.Category, int64, error)
	FindByID(ctx context.Context, categoryID uint) (*model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	SoftDelete(ctx context.Context, categoryID uint) (bool, error)
	ProductCount(ctx context.Context, categoryID uint) (int64, error)
}

type categoryRepoImpl struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepoImpl{
		db: db,
	}
}

func (r *categoryRepoImpl) FindAll(ctx context.Context, query dto.CategoryListQuery) ([]*model.Category, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Category{})

	if query.Search != "" {
		like := "%" + query.Search + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit

	var categories []*model.Category
	err := q.Order("name ASC").Limit(query.Limit).Offset(offset).Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}

func (r *categoryRepoImpl) FindByID(ctx context.Context, categoryID uint) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).
		Where("id = ?", categoryID).
		First(&category).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &category, nil
}

func (r *categoryRepoImpl) FindByName(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&category).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &category, nil
}

func (r *categoryRepoImpl) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepoImpl) Update(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepoImpl) SoftDelete(ctx context.Context, categoryID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", categoryID).
		Delete(&model.Category{})

	return result.RowsAffected > 0, result.Error
}

func (r *categoryRepoImpl) ProductCount(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error

	return count, err
}
