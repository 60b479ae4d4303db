package services

import (
	"time"

	"github.com/catnipgames/catpacks/internal/gacha"
	"github.com/catnipgames/catpacks/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GrantItem appends one ownership unit linking the user to the item. Not
// idempotent: every call creates a new row, which is how "x3 owned" counts
// accumulate.
func GrantItem(db *gorm.DB, userID string, catID uint64) (*models.OwnershipRecord, error) {
	record := models.OwnershipRecord{
		GrantID:    uuid.NewString(),
		UserID:     userID,
		CatID:      catID,
		AcquiredAt: time.Now().UTC(),
	}
	if err := db.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// OwnedCat is one collection entry: a catalog item plus how many units the
// user owns.
type OwnedCat struct {
	CatID     uint64       `json:"id"`
	Name      string       `json:"name"`
	Rarity    gacha.Rarity `json:"rarity"`
	ImageURL  string       `json:"image_url"`
	BaseValue int64        `json:"base_value"`
	Count     int64        `json:"count"`
}

// GetCollection aggregates the user's ownership rows into per-item counts,
// most valuable first.
func GetCollection(db *gorm.DB, userID string) ([]OwnedCat, error) {
	var owned []OwnedCat
	err := db.Model(&models.OwnershipRecord{}).
		Select("cats_catalog.cat_id, cats_catalog.name, cats_catalog.rarity, cats_catalog.image_url, cats_catalog.base_value, COUNT(*) AS count").
		Joins("JOIN cats_catalog ON cats_catalog.cat_id = user_cats.cat_id").
		Where("user_cats.user_id = ?", userID).
		Group("cats_catalog.cat_id, cats_catalog.name, cats_catalog.rarity, cats_catalog.image_url, cats_catalog.base_value").
		Order("cats_catalog.base_value DESC, cats_catalog.cat_id ASC").
		Scan(&owned).Error
	if err != nil {
		return nil, err
	}
	return owned, nil
}

// CountOwned returns the user's total ownership units across all items.
func CountOwned(db *gorm.DB, userID string) (int64, error) {
	var n int64
	err := db.Model(&models.OwnershipRecord{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n, err
}
