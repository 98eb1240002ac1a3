package stores

import (
	"context"
	"fmt"

	"github.com/angelmondragon/wishlist-ai/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles store persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to store operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new store row.
func (r *Repository) Create(ctx context.Context, store *models.Store) error {
	if store == nil {
		return fmt.Errorf("store is required")
	}
	if store.ID == uuid.Nil {
		store.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(store).Error
}

// FindByShop loads a store by its normalized myshopify domain.
func (r *Repository) FindByShop(ctx context.Context, shop string) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).
		Where("shop = ?", shop).
		First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}
