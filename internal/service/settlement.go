package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/splitcart/splitcart/internal/models"
	"github.com/splitcart/splitcart/internal/repo"
	"gorm.io/gorm"
)

// Purchase settles the open cart: it snapshots the lines into a receipt,
// writes one obligation per contributing user and retires the cart. The
// whole transition is one transaction; a totals mismatch aborts it before
// anything is written.
func (s *Service) Purchase(ctx context.Context) (*models.Receipt, error) {
	var receipt *models.Receipt
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		marker, err := tx.GetActiveMarker(ctx, true)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveCart
		}
		if err != nil {
			return err
		}

		cart, err := tx.GetCart(ctx, marker.CartID)
		if err != nil {
			return err
		}
		lines, err := tx.ListLines(ctx, cart.ID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		subtotal, perUser := settle(lines)
		if !subtotal.Equal(cart.Total) {
			return fmt.Errorf("cart %d: lines sum to %s, running total is %s: %w",
				cart.ID, subtotal, cart.Total, ErrTotalsMismatch)
		}

		now := time.Now().UTC()
		receipt = &models.Receipt{
			CartID:   cart.ID,
			Subtotal: subtotal,
			Fee:      s.Fee,
			Total:    subtotal.Add(s.Fee),
		}
		if err := tx.CreateReceipt(ctx, receipt); err != nil {
			return err
		}

		feeShare := splitFee(s.Fee, len(perUser))
		for _, userID := range sortedUserIDs(perUser) {
			ob := models.Obligation{
				ReceiptID: receipt.ID,
				UserID:    userID,
				Amount:    perUser[userID].Add(feeShare),
			}
			if err := tx.CreateObligation(ctx, &ob); err != nil {
				return err
			}
		}

		if err := tx.MarkCartPurchased(ctx, cart.ID, now); err != nil {
			return err
		}
		return tx.ClearActiveMarker(ctx, marker.ID)
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// settle computes the exact subtotal of all lines and each contributor's
// attributed share, using fixed-point arithmetic throughout.
func settle(lines []models.OrderLine) (decimal.Decimal, map[uint]decimal.Decimal) {
	subtotal := decimal.Zero
	perUser := make(map[uint]decimal.Decimal, len(lines))
	for _, line := range lines {
		lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		perUser[line.UserID] = perUser[line.UserID].Add(lineTotal)
	}
	return subtotal, perUser
}

// splitFee divides the flat fee evenly across contributors, rounding half up
// to cents. The rounded share is charged to every user as-is, so the sum of
// obligations may exceed the receipt total by up to n-1 cents.
func splitFee(fee decimal.Decimal, users int) decimal.Decimal {
	if users == 0 {
		return decimal.Zero
	}
	return fee.DivRound(decimal.NewFromInt(int64(users)), 2)
}

func sortedUserIDs(perUser map[uint]decimal.Decimal) []uint {
	ids := make([]uint, 0, len(perUser))
	for id := range perUser {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ListReceipts returns every receipt ever written.
func (s *Service) ListReceipts(ctx context.Context) ([]models.Receipt, error) {
	return s.Repo.ListReceipts(ctx)
}
