package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"size:64;uniqueIndex;not null"`
	Email     string `gorm:"size:128;uniqueIndex;not null"`
	Password  string `gorm:"size:128;not null"` // bcrypt hash
	Role      string `gorm:"size:16;not null;default:user"`
	CreatedAt time.Time
}

type Category struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:64;uniqueIndex;not null"`
	Description string `gorm:"size:512"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

type Inventory struct {
	ID        uint  `gorm:"primaryKey"`
	Quantity  int32 `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Product struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:128;not null"`
	Description string `gorm:"size:1024"`
	SKU         string `gorm:"size:64;index"`
	// FK → categories.id
	CategoryID uint `gorm:"index;not null"`
	// FK → inventories.id
	InventoryID uint            `gorm:"index;not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ImageURL    string          `gorm:"size:512"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

type Order struct {
	ID          uint   `gorm:"primaryKey"`
	OrderNumber string `gorm:"size:64;uniqueIndex;not null"`
	// FK → users.id
	UserID     uint            `gorm:"index;not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status     string          `gorm:"size:32;index;not null;default:pending"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type OrderItem struct {
	ID uint `gorm:"primaryKey"`
	// FK → orders.id
	OrderID uint `gorm:"index;not null"`
	// FK → products.id
	ProductID uint  `gorm:"index;not null"`
	Quantity  int32 `gorm:"not null"`
	// unit price snapshot taken at order time
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time
}

type OrderShipping struct {
	ID uint `gorm:"primaryKey"`
	// FK → orders.id, one row per order
	OrderID uint   `gorm:"uniqueIndex;not null"`
	Address string `gorm:"size:512;not null"`
	Phone   string `gorm:"size:32;not null"`
}

type Payment struct {
	ID uint `gorm:"primaryKey"`
	// FK → orders.id, at most one row per order
	OrderID       uint            `gorm:"uniqueIndex;not null"`
	Method        string          `gorm:"size:32;not null"`
	Status        string          `gorm:"size:32;index;not null;default:pending"`
	TransactionID *string         `gorm:"size:128"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
