package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/splitcart/splitcart/internal/models"
	"github.com/splitcart/splitcart/internal/repo"
	"gorm.io/gorm"
)

func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListUsers(ctx)
}

func (s *Service) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.Repo.GetUser(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %d: %w", id, ErrUserNotFound)
	}
	return user, err
}

// RegisterUser creates a user with a unique name. The check-then-create runs
// in one transaction and the unique column backs it up against races.
func (s *Service) RegisterUser(ctx context.Context, name, sid string) (*models.User, error) {
	user := models.User{Name: name, SID: sid}
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		_, err := tx.GetUserByName(ctx, name)
		if err == nil {
			return fmt.Errorf("name %q: %w", name, ErrNameExists)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.CreateUser(ctx, &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) UserObligations(ctx context.Context, userID uint) ([]models.Obligation, error) {
	return s.Repo.ListUserObligations(ctx, userID)
}
