package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/angelmondragon/wishlist-ai/pkg/db/types"
)

// ConversionRecord stores the one-time purchase likelihood computed for an entry.
type ConversionRecord struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	WishlistID   uuid.UUID          `gorm:"column:wishlist_id;type:uuid;not null;uniqueIndex:conversion_records_wishlist_id_key"`
	OrderIDs     dbtypes.StringList `gorm:"column:order_ids;type:jsonb;not null"`
	OrderHistory dbtypes.StringList `gorm:"column:order_history;type:jsonb;not null"`
	Score        int                `gorm:"column:score;not null"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
}

func (ConversionRecord) TableName() string { return "conversion_records" }
