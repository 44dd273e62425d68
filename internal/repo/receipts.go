package repo

import (
	"context"

	"github.com/splitcart/splitcart/internal/models"
	"gorm.io/gorm/clause"
)

func (r *GormRepo) CreateReceipt(ctx context.Context, receipt *models.Receipt) error {
	return r.DB.WithContext(ctx).Create(receipt).Error
}

func (r *GormRepo) GetReceipt(ctx context.Context, id uint) (*models.Receipt, error) {
	var receipt models.Receipt
	if err := r.DB.WithContext(ctx).First(&receipt, id).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *GormRepo) ListReceipts(ctx context.Context) ([]models.Receipt, error) {
	var receipts []models.Receipt
	if err := r.DB.WithContext(ctx).Order("id").Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

func (r *GormRepo) CreateObligation(ctx context.Context, ob *models.Obligation) error {
	return r.DB.WithContext(ctx).Create(ob).Error
}

func (r *GormRepo) GetObligationForUpdate(ctx context.Context, userID, receiptID uint) (*models.Obligation, error) {
	var ob models.Obligation
	err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND receipt_id = ?", userID, receiptID).
		First(&ob).Error
	if err != nil {
		return nil, err
	}
	return &ob, nil
}

func (r *GormRepo) SaveObligation(ctx context.Context, ob *models.Obligation) error {
	return r.DB.WithContext(ctx).Save(ob).Error
}

func (r *GormRepo) ListUserObligations(ctx context.Context, userID uint) ([]models.Obligation, error) {
	var obs []models.Obligation
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&obs).Error; err != nil {
		return nil, err
	}
	return obs, nil
}

func (r *GormRepo) ListReceiptObligations(ctx context.Context, receiptID uint) ([]models.Obligation, error) {
	var obs []models.Obligation
	if err := r.DB.WithContext(ctx).Where("receipt_id = ?", receiptID).Order("id").Find(&obs).Error; err != nil {
		return nil, err
	}
	return obs, nil
}
