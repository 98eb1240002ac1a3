package wishlist

import (
	"context"
	"errors"

	"github.com/angelmondragon/wishlist-ai/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConversionUniqueConstraint keeps a single conversion record per entry.
const ConversionUniqueConstraint = "conversion_records_wishlist_id_key"

// Repository encapsulates wishlist entry and conversion persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a wishlist repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindEntry loads the entry for the store/customer/product key.
func (r *Repository) FindEntry(ctx context.Context, storeID uuid.UUID, customerID, productID string) (*models.WishlistEntry, error) {
	var entry models.WishlistEntry
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND customer_id = ? AND product_id = ?", storeID, customerID, productID).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// InsertEntryIfAbsent inserts the entry unless the key already exists, then reloads it.
// created reports whether this call inserted the row.
func (r *Repository) InsertEntryIfAbsent(ctx context.Context, storeID uuid.UUID, customerID, productID string) (*models.WishlistEntry, bool, error) {
	if storeID == uuid.Nil || customerID == "" || productID == "" {
		return nil, false, gorm.ErrInvalidValue
	}

	candidate := models.WishlistEntry{
		ID:         uuid.New(),
		StoreID:    storeID,
		CustomerID: customerID,
		ProductID:  productID,
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "store_id"},
				{Name: "customer_id"},
				{Name: "product_id"},
			},
			DoNothing: true,
		}).
		Omit("Conversions").
		Create(&candidate)
	if res.Error != nil {
		return nil, false, res.Error
	}

	entry, err := r.FindEntry(ctx, storeID, customerID, productID)
	if err != nil {
		return nil, false, err
	}
	return entry, res.RowsAffected == 1, nil
}

// FindConversion returns the conversion record for the entry.
func (r *Repository) FindConversion(ctx context.Context, wishlistID uuid.UUID) (*models.ConversionRecord, error) {
	var record models.ConversionRecord
	if err := r.db.WithContext(ctx).
		Where("wishlist_id = ?", wishlistID).
		Order("created_at ASC").
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// CreateConversion inserts a conversion record. A second record for the same entry
// fails with a unique violation on ConversionUniqueConstraint.
func (r *Repository) CreateConversion(ctx context.Context, record *models.ConversionRecord) error {
	if record == nil || record.WishlistID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(record).Error
}

// DeleteByKey removes conversions and entries matching the key in one transaction.
// It returns the number of entries removed.
func (r *Repository) DeleteByKey(ctx context.Context, storeID uuid.UUID, customerID, productID string) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uuid.UUID
		if err := tx.Model(&models.WishlistEntry{}).
			Where("store_id = ? AND customer_id = ? AND product_id = ?", storeID, customerID, productID).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("wishlist_id IN ?", ids).Delete(&models.ConversionRecord{}).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ?", ids).Delete(&models.WishlistEntry{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		return nil
	})
	return removed, err
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
