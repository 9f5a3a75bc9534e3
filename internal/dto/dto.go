package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// -------- auth --------

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role,omitempty"`
}

// -------- catalog --------

type ProductListQuery struct {
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
	Category string `query:"category"`
	Search   string `query:"search"`
	Sort     string `query:"sort"`
}

type ProductView struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	SKU          string          `json:"sku"`
	CategoryID   uint            `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Price        decimal.Decimal `json:"price"`
	Stock        int32           `json:"stock"`
	ImageURL     string          `json:"image_url"`
	CreatedAt    time.Time       `json:"created_at"`
}

type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	SKU         string          `json:"sku"`
	CategoryID  uint            `json:"category_id"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int32           `json:"quantity"`
	ImageURL    string          `json:"image_url"`
}

// UpdateProductRequest is a patch: nil fields are left untouched.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	SKU         *string          `json:"sku"`
	CategoryID  *uint            `json:"category_id"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int32           `json:"quantity"`
	ImageURL    *string          `json:"image_url"`
}

type CategoryListQuery struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Search string `query:"search"`
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CategoryView struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ProductCount int64  `json:"product_count"`
}

type PagedProducts struct {
	Products []ProductView `json:"products"`
	Total    int64         `json:"total"`
}

type PagedCategories struct {
	Categories []CategoryView `json:"categories"`
	Total      int64          `json:"total"`
}

// -------- cart --------

type CartItem struct {
	ProductID uint            `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int32           `json:"quantity"`
}

type Cart struct {
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// -------- orders --------

type OrderItemInput struct {
	ProductID uint  `json:"productId"`
	Quantity  int32 `json:"quantity"`
}

type ShippingInput struct {
	Address string `json:"shippingAddress"`
	Phone   string `json:"phone"`
}

type PaymentInput struct {
	Method        string  `json:"paymentMethod"`
	Status        string  `json:"paymentStatus"`
	TransactionID *string `json:"transactionId"`
}

type CreateOrderRequest struct {
	Items    []OrderItemInput `json:"items"`
	Shipping ShippingInput    `json:"shipping"`
	Payment  *PaymentInput    `json:"payment"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type UpdatePaymentRequest struct {
	Method        string  `json:"paymentMethod"`
	Status        string  `json:"paymentStatus"`
	TransactionID *string `json:"transactionId"`
}

type OrderItemDetail struct {
	ID                 uint            `json:"id"`
	ProductID          uint            `json:"product_id"`
	Quantity           int32           `json:"quantity"`
	Price              decimal.Decimal `json:"price"`
	ProductName        string          `json:"product_name"`
	ProductDescription string          `json:"product_description,omitempty"`
}

type ShippingDetail struct {
	Address string `json:"shipping_address"`
	Phone   string `json:"phone"`
}

type PaymentDetail struct {
	Method        string          `json:"payment_method"`
	Status        string          `json:"payment_status"`
	TransactionID *string         `json:"transaction_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

type OrderDetail struct {
	ID          uint              `json:"id"`
	OrderNumber string            `json:"order_number"`
	UserID      uint              `json:"user_id"`
	Username    string            `json:"username"`
	Email       string            `json:"email"`
	TotalPrice  decimal.Decimal   `json:"total_price"`
	Status      string            `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	Items       []OrderItemDetail `json:"items"`
	Shipping    *ShippingDetail   `json:"shipping"`
	Payment     *PaymentDetail    `json:"payment"`
}
