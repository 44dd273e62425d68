package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"unique;not null"          json:"name"`
	SID       string    `gorm:"column:sid;not null"      json:"sid"`
	CreatedAt time.Time `json:"created_at"`
}

// Cart holds a running total maintained by the line aggregator. Once
// PurchasedAt is set the cart is historical and never mutated again.
type Cart struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
	PurchasedAt *time.Time      `json:"purchased_at,omitempty"`
}

// ActiveCart marks which cart is currently open. Slot is always 1, so the
// unique index guarantees at most one marker row system-wide.
type ActiveCart struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Slot      int       `gorm:"uniqueIndex;not null"     json:"-"`
	CartID    uint      `gorm:"not null"                 json:"cart_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderLine struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"                   json:"id"`
	CartID      uint            `gorm:"uniqueIndex:idx_cart_user_product;not null" json:"cart_id"`
	UserID      uint            `gorm:"uniqueIndex:idx_cart_user_product;not null" json:"user_id"`
	ProductID   string          `gorm:"uniqueIndex:idx_cart_user_product;not null" json:"product_id"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"                json:"unit_price"`
	Quantity    uint            `gorm:"default:1;check:quantity>0"                 json:"quantity"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Receipt is the immutable snapshot written at purchase time, exactly one
// per cart.
type Receipt struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	CartID    uint            `gorm:"uniqueIndex;not null"        json:"cart_id"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Fee       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"fee"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

// Obligation is what one user owes against one receipt: their attributed
// subtotal plus their share of the flat fee.
type Obligation struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"              json:"id"`
	ReceiptID uint            `gorm:"uniqueIndex:idx_receipt_user;not null" json:"receipt_id"`
	UserID    uint            `gorm:"uniqueIndex:idx_receipt_user;not null" json:"user_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"           json:"amount"`
	Paid      bool            `gorm:"default:false"                         json:"paid"`
	CreatedAt time.Time       `json:"created_at"`
	PaidAt    *time.Time      `json:"paid_at,omitempty"`
}

func (Obligation) TableName() string {
	return "user_receipt_obligations"
}
