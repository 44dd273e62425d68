package repo

import (
	"context"

	"github.com/splitcart/splitcart/internal/models"
	"gorm.io/gorm/clause"
)

// GetLineForUpdate locks the (cart, user, product) line so a concurrent add
// or remove for the same key cannot lose an update.
func (r *GormRepo) GetLineForUpdate(ctx context.Context, cartID, userID uint, productID string) (*models.OrderLine, error) {
	var line models.OrderLine
	err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("cart_id = ? AND user_id = ? AND product_id = ?", cartID, userID, productID).
		First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *GormRepo) CreateLine(ctx context.Context, line *models.OrderLine) error {
	return r.DB.WithContext(ctx).Create(line).Error
}

func (r *GormRepo) SaveLine(ctx context.Context, line *models.OrderLine) error {
	return r.DB.WithContext(ctx).Save(line).Error
}

func (r *GormRepo) DeleteLine(ctx context.Context, line *models.OrderLine) error {
	return r.DB.WithContext(ctx).Delete(line).Error
}

func (r *GormRepo) ListLines(ctx context.Context, cartID uint) ([]models.OrderLine, error) {
	var lines []models.OrderLine
	if err := r.DB.WithContext(ctx).Where("cart_id = ?", cartID).Order("id").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}
