package models

import (
	"time"

	"github.com/google/uuid"
)

// WishlistEntry records that a shopper saved a product in a given store.
type WishlistEntry struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	StoreID    uuid.UUID `gorm:"column:store_id;type:uuid;not null;uniqueIndex:wishlist_entries_store_customer_product_key"`
	CustomerID string    `gorm:"column:customer_id;not null;uniqueIndex:wishlist_entries_store_customer_product_key"`
	ProductID  string    `gorm:"column:product_id;not null;uniqueIndex:wishlist_entries_store_customer_product_key"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`

	Conversions []ConversionRecord `gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE"`
}

func (WishlistEntry) TableName() string { return "wishlist_entries" }
