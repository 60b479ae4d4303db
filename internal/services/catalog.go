package services

import (
	"github.com/catnipgames/catpacks/internal/gacha"
	"github.com/catnipgames/catpacks/internal/models"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// PickItem selects one catalog item of the given rarity, uniformly at random
// among the tier via the supplied index picker. An empty tier is a data
// defect, not a user error.
func PickItem(db *gorm.DB, rarity gacha.Rarity, pick func(n int) int) (*models.CatalogItem, error) {
	var items []models.CatalogItem
	err := db.Clauses(hints.New("MAX_EXECUTION_TIME(2000)")).
		Where("rarity = ?", rarity).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCatalogTier
	}

	item := items[pick(len(items))]
	return &item, nil
}

// ListCatalog returns the full collectible catalog, most valuable first.
func ListCatalog(db *gorm.DB) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	err := db.Order("base_value DESC, cat_id ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
