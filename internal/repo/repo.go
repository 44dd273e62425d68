package repo

import (
	"context"

	"github.com/splitcart/splitcart/internal/models"
	"gorm.io/gorm"
)

// GormRepo is the ledger store. All multi-step engine operations run through
// Transaction so reads, invariant checks and writes share one commit.
type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

// Transaction runs fn against a repo bound to a single transaction.
func (r *GormRepo) Transaction(ctx context.Context, fn func(tx *GormRepo) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepo{DB: tx})
	})
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Cart{},
		&models.ActiveCart{},
		&models.OrderLine{},
		&models.Receipt{},
		&models.Obligation{},
	)
}
