package service

import (
	"context"
	"fmt"

	"marketplace-api/internal/apperr"
	"marketplace-api/internal/dto"
	"marketplace-api/internal/model"
	"marketplace-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService owns the multi-table order workflow: creation writes orders,
// order_items, order_shipping and payments inside one transaction.
type OrderService interface {
	Create(ctx context.Context, userID uint, req dto.CreateOrderRequest) (*dto.OrderDetail, error)
	GetByID(ctx context.Context, orderID uint, requester *model.User) (*dto.OrderDetail, error)
	List(ctx context.Context, requester *model.User) ([]*dto.OrderDetail, error)
	ListByStatus(ctx context.Context, status string, requester *model.User) ([]*dto.OrderDetail, error)
	UpdateStatus(ctx context.Context, orderID uint, status string) (*dto.OrderDetail, error)
	UpdatePayment(ctx context.Context, orderID uint, req dto.UpdatePaymentRequest) (*dto.OrderDetail, error)
	Delete(ctx context.Context, orderID uint) (bool, error)
}

type orderServiceImpl struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
) OrderService {
	return &orderServiceImpl{
		db:          db,
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

func (s *orderServiceImpl) Create(ctx context.Context, userID uint, req dto.CreateOrderRequest) (*dto.OrderDetail, error) {
	// all validation happens before a transaction is opened
	if len(req.Items) == 0 {
		return nil, apperr.Validation("no order items provided")
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, apperr.Validation("item quantity must be positive")
		}
	}
	if req.Shipping.Address == "" || req.Shipping.Phone == "" {
		return nil, apperr.Validation("shipping address and phone are required")
	}
	if req.Payment != nil && req.Payment.Method == "" {
		return nil, apperr.Validation("payment method is required")
	}

	productIDs := make([]uint, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.FindManyByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	productByID := make(map[uint]*model.Product, len(products))
	for _, product := range products {
		productByID[product.ID] = product
	}

	// totals are recomputed server-side from the catalog price, never taken
	// from the client
	total := decimal.Zero
	orderItems := make([]*model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		product, ok := productByID[item.ProductID]
		if !ok {
			return nil, apperr.Validation(fmt.Sprintf("product %d not found", item.ProductID))
		}

		total = total.Add(product.Price.Mul(decimal.NewFromInt32(item.Quantity)))
		orderItems[i] = &model.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			Price:     product.Price, // snapshot, survives later catalog changes
		}
	}

	order := &model.Order{
		OrderNumber: uuid.NewString(),
		UserID:      userID,
		TotalPrice:  total,
		Status:      model.OrderStatusPending,
	}

	// Note: stock is intentionally not decremented here; inventory mutation
	// stays with the catalog.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}

		for _, item := range orderItems {
			item.OrderID = order.ID
		}
		if err := s.orderRepo.CreateItems(ctx, tx, orderItems); err != nil {
			return fmt.Errorf("store order items: %w", err)
		}

		if err := s.orderRepo.CreateShipping(ctx, tx, &model.OrderShipping{
			OrderID: order.ID,
			Address: req.Shipping.Address,
			Phone:   req.Shipping.Phone,
		}); err != nil {
			return fmt.Errorf("store order shipping: %w", err)
		}

		if req.Payment != nil {
			status := req.Payment.Status
			if status == "" {
				status = model.PaymentStatusPending
			}
			if err := s.orderRepo.CreatePayment(ctx, tx, &model.Payment{
				OrderID:       order.ID,
				Method:        req.Payment.Method,
				Status:        status,
				TransactionID: req.Payment.TransactionID,
				TotalAmount:   total,
			}); err != nil {
				return fmt.Errorf("store payment: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.detail(ctx, order.ID)
}

func (s *orderServiceImpl) GetByID(ctx context.Context, orderID uint, requester *model.User) (*dto.OrderDetail, error) {
	detail, err := s.orderRepo.FindDetail(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	if detail == nil {
		return nil, apperr.NotFound("order not found")
	}

	if requester.Role != model.RoleAdmin && detail.UserID != requester.ID {
		return nil, apperr.Forbidden("not authorized to access this order")
	}

	return detail, nil
}

func (s *orderServiceImpl) List(ctx context.Context, requester *model.User) ([]*dto.OrderDetail, error) {
	return s.orderRepo.FindAllDetails(ctx, visibleUserID(requester))
}

func (s *orderServiceImpl) ListByStatus(ctx context.Context, status string, requester *model.User) ([]*dto.OrderDetail, error) {
	if !model.ValidOrderStatus(status) {
		return nil, apperr.Validation("valid status is required")
	}

	return s.orderRepo.FindDetailsByStatus(ctx, status, visibleUserID(requester))
}

func (s *orderServiceImpl) UpdateStatus(ctx context.Context, orderID uint, status string) (*dto.OrderDetail, error) {
	if !model.ValidOrderStatus(status) {
		return nil, apperr.Validation("valid status is required")
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if !updated {
		return nil, apperr.NotFound("order not found")
	}

	return s.detail(ctx, orderID)
}

func (s *orderServiceImpl) UpdatePayment(ctx context.Context, orderID uint, req dto.UpdatePaymentRequest) (*dto.OrderDetail, error) {
	if req.Method == "" || req.Status == "" {
		return nil, apperr.Validation("payment method and status are required")
	}

	existing, err := s.orderRepo.FindDetail(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	if existing == nil {
		return nil, apperr.NotFound("order not found")
	}

	err = s.orderRepo.UpsertPayment(ctx, orderID, &model.Payment{
		Method:        req.Method,
		Status:        req.Status,
		TransactionID: req.TransactionID,
		TotalAmount:   existing.TotalPrice,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert payment: %w", err)
	}

	return s.detail(ctx, orderID)
}

func (s *orderServiceImpl) Delete(ctx context.Context, orderID uint) (bool, error) {
	return s.orderRepo.Delete(ctx, orderID)
}

func (s *orderServiceImpl) detail(ctx context.Context, orderID uint) (*dto.OrderDetail, error) {
	detail, err := s.orderRepo.FindDetail(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	if detail == nil {
		return nil, apperr.NotFound("order not found")
	}

	return detail, nil
}

// visibleUserID implements role-scoped visibility: admins see every order,
// everyone else only their own.
func visibleUserID(requester *model.User) *uint {
	if requester.Role == model.RoleAdmin {
		return nil
	}
	id := requester.ID
	return &id
}
