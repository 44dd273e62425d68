package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/splitcart/splitcart/internal/models"
	"github.com/splitcart/splitcart/internal/repo"
	"gorm.io/gorm"
)

// Pay marks a user's obligation on a receipt as paid. Paying an already-paid
// obligation succeeds and re-stamps paid_at.
func (s *Service) Pay(ctx context.Context, userID, receiptID uint) (*models.Obligation, error) {
	var paid *models.Obligation
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		ob, err := tx.GetObligationForUpdate(ctx, userID, receiptID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %d receipt %d: %w", userID, receiptID, ErrObligationNotFound)
		}
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		ob.Paid = true
		ob.PaidAt = &now
		if err := tx.SaveObligation(ctx, ob); err != nil {
			return err
		}
		paid = ob
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paid, nil
}
