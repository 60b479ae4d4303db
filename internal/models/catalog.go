package models

import (
	"time"

	"github.com/catnipgames/catpacks/internal/gacha"
)

// CatalogItem is one collectible definition. Seed data, read-only at
// runtime.
type CatalogItem struct {
	CatID     uint64       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string       `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Rarity    gacha.Rarity `gorm:"size:16;not null;index" json:"rarity"`
	ImageURL  string       `gorm:"size:512;not null" json:"image_url"`
	BaseValue int64        `gorm:"not null;default:0" json:"base_value"`
	CreatedAt time.Time    `json:"-"`
	UpdatedAt time.Time    `json:"-"`
}

// TableName overrides the table name for CatalogItem
func (CatalogItem) TableName() string {
	return "cats_catalog"
}
