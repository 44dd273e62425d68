package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/splitcart/splitcart/internal/models"
	"github.com/splitcart/splitcart/internal/repo"
	"gorm.io/gorm"
)

// ActiveCart returns the single open cart, or ErrNoActiveCart.
func (s *Service) ActiveCart(ctx context.Context) (*models.Cart, error) {
	marker, err := s.Repo.GetActiveMarker(ctx, false)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActiveCart
	}
	if err != nil {
		return nil, err
	}
	return s.Repo.GetCart(ctx, marker.CartID)
}

// EnsureActive returns the open cart, creating one when none exists. The
// locking read of the marker plus the unique slot index makes creation a
// compare-and-swap: two concurrent callers cannot both create a cart.
func (s *Service) EnsureActive(ctx context.Context) (*models.Cart, error) {
	var cart *models.Cart
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		var err error
		_, cart, err = ensureActiveLocked(ctx, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func ensureActiveLocked(ctx context.Context, tx *repo.GormRepo) (*models.ActiveCart, *models.Cart, error) {
	marker, err := tx.GetActiveMarker(ctx, true)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart, err := tx.CreateActiveCart(ctx)
		if err != nil {
			return nil, nil, err
		}
		marker, err = tx.GetActiveMarker(ctx, true)
		if err != nil {
			return nil, nil, err
		}
		return marker, cart, nil
	}
	if err != nil {
		return nil, nil, err
	}
	cart, err := tx.GetCart(ctx, marker.CartID)
	if err != nil {
		return nil, nil, err
	}
	return marker, cart, nil
}

// AddItem upserts the (cart, user, product) line: a repeat call bumps the
// quantity by one, a first call creates the line with quantity 1. Every call
// models one unit added, and the cart's running total is re-based on the
// line's contribution so it always equals the sum over all lines.
func (s *Service) AddItem(ctx context.Context, userID uint, productID, description string, unitPrice decimal.Decimal) (*models.OrderLine, error) {
	var line *models.OrderLine
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if _, err := tx.GetUser(ctx, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("user %d: %w", userID, ErrUserNotFound)
			}
			return err
		}

		marker, cart, err := ensureActiveLocked(ctx, tx)
		if err != nil {
			return err
		}

		// oldContribution/newContribution keep the running total equal to
		// Σ unitPrice×quantity even when a repeat call carries a different
		// price, whichever detail policy is active.
		oldContribution := decimal.Zero

		line, err = tx.GetLineForUpdate(ctx, cart.ID, userID, productID)
		switch {
		case err == nil:
			oldContribution = lineContribution(line)
			line.Quantity++
			if s.OverwriteDetails {
				line.UnitPrice = unitPrice
				line.Description = description
			}
			if err := tx.SaveLine(ctx, line); err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			line = &models.OrderLine{
				CartID:      cart.ID,
				UserID:      userID,
				ProductID:   productID,
				Description: description,
				UnitPrice:   unitPrice,
				Quantity:    1,
			}
			if err := tx.CreateLine(ctx, line); err != nil {
				return err
			}
		default:
			return err
		}

		newTotal := cart.Total.Sub(oldContribution).Add(lineContribution(line))
		if err := tx.UpdateCartTotal(ctx, cart.ID, newTotal); err != nil {
			return err
		}
		return tx.TouchActiveMarker(ctx, marker.ID)
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

func lineContribution(line *models.OrderLine) decimal.Decimal {
	return line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// RemoveItem takes one unit off the matching line, deleting it when the
// quantity would hit zero, and returns the remaining lines of the open cart.
func (s *Service) RemoveItem(ctx context.Context, userID uint, productID string) ([]models.OrderLine, error) {
	var remaining []models.OrderLine
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		marker, err := tx.GetActiveMarker(ctx, true)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveCart
		}
		if err != nil {
			return err
		}

		line, err := tx.GetLineForUpdate(ctx, marker.CartID, userID, productID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %d product %q: %w", userID, productID, ErrLineNotFound)
		}
		if err != nil {
			return err
		}

		if line.Quantity > 1 {
			line.Quantity--
			if err := tx.SaveLine(ctx, line); err != nil {
				return err
			}
		} else if err := tx.DeleteLine(ctx, line); err != nil {
			return err
		}

		cart, err := tx.GetCart(ctx, marker.CartID)
		if err != nil {
			return err
		}
		if err := tx.UpdateCartTotal(ctx, cart.ID, cart.Total.Sub(line.UnitPrice)); err != nil {
			return err
		}
		if err := tx.TouchActiveMarker(ctx, marker.ID); err != nil {
			return err
		}

		remaining, err = tx.ListLines(ctx, marker.CartID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return remaining, nil
}

// ActiveLines lists the open cart's lines.
func (s *Service) ActiveLines(ctx context.Context) ([]models.OrderLine, error) {
	cart, err := s.ActiveCart(ctx)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListLines(ctx, cart.ID)
}

// CartTotal returns the open cart's running total.
func (s *Service) CartTotal(ctx context.Context) (decimal.Decimal, error) {
	cart, err := s.ActiveCart(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return cart.Total, nil
}

// CartByID returns any cart, active or historical.
func (s *Service) CartByID(ctx context.Context, cartID uint) (*models.Cart, error) {
	cart, err := s.Repo.GetCart(ctx, cartID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("cart %d: %w", cartID, ErrCartNotFound)
	}
	return cart, err
}

// LinesByCart lists a cart's lines by id, for historical carts too.
func (s *Service) LinesByCart(ctx context.Context, cartID uint) ([]models.OrderLine, error) {
	if _, err := s.CartByID(ctx, cartID); err != nil {
		return nil, err
	}
	return s.Repo.ListLines(ctx, cartID)
}
