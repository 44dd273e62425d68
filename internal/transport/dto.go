package transport

import "github.com/shopspring/decimal"

type ErrorResponse struct {
	Error string `json:"error"`
}

type RegisterUserRequest struct {
	Name string `json:"name"`
	SID  string `json:"sid"`
}

type AddItemRequest struct {
	UserID      uint            `json:"user_id"`
	ProductID   string          `json:"product_id"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type RemoveItemRequest struct {
	UserID    uint   `json:"user_id"`
	ProductID string `json:"product_id"`
}

type PayRequest struct {
	UserID uint `json:"user_id"`
}

type CartTotalResponse struct {
	CartID uint            `json:"cart_id"`
	Total  decimal.Decimal `json:"total"`
}
