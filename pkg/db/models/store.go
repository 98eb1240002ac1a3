package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/wishlist-ai/pkg/enums"
)

// Store is the installed shop and the Admin API credential used to read
// customer order history.
type Store struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	Shop        string            `gorm:"column:shop;not null;uniqueIndex:stores_shop_key"`
	AccessToken string            `gorm:"column:access_token;not null"`
	Status      enums.StoreStatus `gorm:"column:status;not null;default:'installed'"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (Store) TableName() string { return "stores" }
