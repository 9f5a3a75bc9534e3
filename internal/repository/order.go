package repository

import (
	"context"
	"errors"
	"time"

	"marketplace-api/internal/dto"
	"marketplace-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	CreateItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error
	CreateShipping(ctx context.Context, tx *gorm.DB, shipping *model.OrderShipping) error
	CreatePayment(ctx context.Context, tx *gorm.DB, payment *model.Payment) error

	FindDetail(ctx context.Context, orderID uint) (*dto.OrderDetail, error)
	FindAllDetails(ctx context.Context, userID *uint) ([]*dto.OrderDetail, error)
	FindDetailsByStatus(ctx context.Context, status string, userID *uint) ([]*dto.OrderDetail, error)

	UpdateStatus(ctx context.Context, orderID uint, status string) (bool, error)
	UpsertPayment(ctx context.Context, orderID uint, payment *model.Payment) error
	Delete(ctx context.Context, orderID uint) (bool, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) CreateItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error {
	return tx.WithContext(ctx).Create(&items).Error
}

func (r *orderRepoImpl) CreateShipping(ctx context.Context, tx *gorm.DB, shipping *model.OrderShipping) error {
	return tx.WithContext(ctx).Create(shipping).Error
}

func (r *orderRepoImpl) CreatePayment(ctx context.Context, tx *gorm.DB, payment *model.Payment) error {
	return tx.WithContext(ctx).Create(payment).Error
}

// orderRow carries one orders row with its joined user summary.
type orderRow struct {
	model.Order
	Username string
	Email    string
}

func (r *orderRepoImpl) FindDetail(ctx context.Context, orderID uint) (*dto.OrderDetail, error) {
	var row orderRow
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("orders.*, users.username, users.email").
		Joins("JOIN users ON users.id = orders.user_id").
		Where("orders.id = ?", orderID).
		Take(&row).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.assemble(ctx, &row, true)
}

func (r *orderRepoImpl) FindAllDetails(ctx context.Context, userID *uint) ([]*dto.OrderDetail, error) {
	q := r.db.WithContext(ctx).
		Table("orders").
		Select("orders.*, users.username, users.email").
		Joins("JOIN users ON users.id = orders.user_id")

	if userID != nil {
		q = q.Where("orders.user_id = ?", *userID)
	}

	var rows []orderRow
	if err := q.Order("orders.created_at DESC, orders.id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	return r.assembleAll(ctx, rows)
}

func (r *orderRepoImpl) FindDetailsByStatus(ctx context.Context, status string, userID *uint) ([]*dto.OrderDetail, error) {
	q := r.db.WithContext(ctx).
		Table("orders").
		Select("orders.*, users.username, users.email").
		Joins("JOIN users ON users.id = orders.user_id").
		Where("orders.status = ?", status)

	if userID != nil {
		q = q.Where("orders.user_id = ?", *userID)
	}

	var rows []orderRow
	if err := q.Order("orders.created_at DESC, orders.id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	return r.assembleAll(ctx, rows)
}

func (r *orderRepoImpl) assembleAll(ctx context.Context, rows []orderRow) ([]*dto.OrderDetail, error) {
	details := make([]*dto.OrderDetail, 0, len(rows))
	for i := range rows {
		detail, err := r.assemble(ctx, &rows[i], false)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

// assemble attaches items, shipping and payment to one order row. Product
// name and description come from the products table at read time; only the
// unit price is the order-time snapshot.
func (r *orderRepoImpl) assemble(ctx context.Context, row *orderRow, withDescription bool) (*dto.OrderDetail, error) {
	itemCols := "order_items.id, order_items.product_id, order_items.quantity, order_items.price, products.name AS product_name"
	if withDescription {
		itemCols += ", products.description AS product_description"
	}

	var items []dto.OrderItemDetail
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select(itemCols).
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ?", row.ID).
		Order("order_items.id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	detail := &dto.OrderDetail{
		ID:          row.ID,
		OrderNumber: row.OrderNumber,
		UserID:      row.UserID,
		Username:    row.Username,
		Email:       row.Email,
		TotalPrice:  row.TotalPrice,
		Status:      row.Status,
		CreatedAt:   row.CreatedAt,
		Items:       items,
	}

	var shipping model.OrderShipping
	err = r.db.WithContext(ctx).
		Where("order_id = ?", row.ID).
		Take(&shipping).Error
	switch {
	case err == nil:
		detail.Shipping = &dto.ShippingDetail{Address: shipping.Address, Phone: shipping.Phone}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	var payment model.Payment
	err = r.db.WithContext(ctx).
		Where("order_id = ?", row.ID).
		Take(&payment).Error
	switch {
	case err == nil:
		detail.Payment = &dto.PaymentDetail{
			Method:        payment.Method,
			Status:        payment.Status,
			TransactionID: payment.TransactionID,
			TotalAmount:   payment.TotalAmount,
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	return detail, nil
}

func (r *orderRepoImpl) UpdateStatus(ctx context.Context, orderID uint, status string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	return result.RowsAffected > 0, result.Error
}

func (r *orderRepoImpl) UpsertPayment(ctx context.Context, orderID uint, payment *model.Payment) error {
	payment.OrderID = orderID

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "order_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"method":         payment.Method,
			"status":         payment.Status,
			"transaction_id": payment.TransactionID,
			"updated_at":     time.Now(),
		}),
	}).Create(payment).Error
}

// Delete removes the order and its dependent rows in one transaction so no
// orphan items, shipping or payment rows survive.
func (r *orderRepoImpl) Delete(ctx context.Context, orderID uint) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&model.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", orderID).Delete(&model.OrderShipping{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", orderID).Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", orderID).Delete(&model.Order{})
		if result.Error != nil {
			return result.Error
		}

		deleted = result.RowsAffected > 0
		return nil
	})

	return deleted, err
}
