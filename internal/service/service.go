package service

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/splitcart/splitcart/internal/repo"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrNameExists         = errors.New("user name already taken")
	ErrNoActiveCart       = errors.New("no active cart")
	ErrCartNotFound       = errors.New("cart not found")
	ErrLineNotFound       = errors.New("order line not found")
	ErrObligationNotFound = errors.New("obligation not found")
	ErrEmptyCart          = errors.New("active cart has no lines")

	// ErrTotalsMismatch means the cart's running total disagrees with the sum
	// of its lines. That is an internal accounting bug, never user input.
	ErrTotalsMismatch = errors.New("cart total does not match order lines")
)

// Service is the checkout engine: active-cart registry, order-line
// aggregator, settlement and payment tracking. It holds no state of its own;
// everything lives in the ledger store.
type Service struct {
	Repo *repo.GormRepo

	// Fee is the flat service fee charged once per purchase and split evenly
	// among contributing users.
	Fee decimal.Decimal

	// OverwriteDetails controls what a repeated AddItem for an existing
	// (cart, user, product) line does with price and description: false keeps
	// the first write, true takes the latest call's values.
	OverwriteDetails bool
}

func New(r *repo.GormRepo, fee decimal.Decimal) *Service {
	return &Service{Repo: r, Fee: fee}
}
