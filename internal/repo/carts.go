package repo

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/splitcart/splitcart/internal/models"
	"gorm.io/gorm/clause"
)

// GetActiveMarker reads the singleton active-cart marker. With forUpdate the
// row is locked so concurrent mutators serialize on it.
func (r *GormRepo) GetActiveMarker(ctx context.Context, forUpdate bool) (*models.ActiveCart, error) {
	var marker models.ActiveCart
	q := r.DB.WithContext(ctx)
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.Where("slot = ?", 1).First(&marker).Error; err != nil {
		return nil, err
	}
	return &marker, nil
}

// CreateActiveCart creates a fresh cart and its marker row. The unique index
// on slot makes a second concurrent creation fail instead of yielding two
// active carts.
func (r *GormRepo) CreateActiveCart(ctx context.Context) (*models.Cart, error) {
	cart := models.Cart{Total: decimal.Zero}
	if err := r.DB.WithContext(ctx).Create(&cart).Error; err != nil {
		return nil, err
	}
	marker := models.ActiveCart{Slot: 1, CartID: cart.ID}
	if err := r.DB.WithContext(ctx).Create(&marker).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormRepo) ClearActiveMarker(ctx context.Context, markerID uint) error {
	return r.DB.WithContext(ctx).Delete(&models.ActiveCart{}, markerID).Error
}

func (r *GormRepo) TouchActiveMarker(ctx context.Context, markerID uint) error {
	return r.DB.WithContext(ctx).Model(&models.ActiveCart{}).
		Where("id = ?", markerID).
		Update("updated_at", time.Now().UTC()).Error
}

func (r *GormRepo) GetCart(ctx context.Context, id uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).First(&cart, id).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormRepo) UpdateCartTotal(ctx context.Context, cartID uint, total decimal.Decimal) error {
	return r.DB.WithContext(ctx).Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("total", total).Error
}

func (r *GormRepo) MarkCartPurchased(ctx context.Context, cartID uint, at time.Time) error {
	return r.DB.WithContext(ctx).Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("purchased_at", at).Error
}
