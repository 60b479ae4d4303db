package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/catnipgames/catpacks/internal/gacha"
	"github.com/catnipgames/catpacks/internal/models"
)

// setupTestDB opens an in-memory store with the full schema. The pool is
// pinned to one connection so the in-memory database survives across calls
// and concurrent writers serialize instead of tripping SQLITE_BUSY.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Account{},
		&models.CatalogItem{},
		&models.OwnershipRecord{},
		&models.PackOpenLog{},
	))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// seedTier inserts n catalog items of the given rarity and returns them.
func seedTier(t *testing.T, db *gorm.DB, rarity gacha.Rarity, n int) []models.CatalogItem {
	t.Helper()

	items := make([]models.CatalogItem, n)
	for i := range items {
		items[i] = models.CatalogItem{
			Name:      string(rarity) + " cat " + string(rune('A'+i)),
			Rarity:    rarity,
			ImageURL:  "/cats/" + string(rarity) + ".png",
			BaseValue: int64(10 * (i + 1)),
		}
	}
	require.NoError(t, db.Create(&items).Error)
	return items
}

// newAccount inserts an account with the given balance.
func newAccount(t *testing.T, db *gorm.DB, userID string, credits int64) {
	t.Helper()
	require.NoError(t, db.Create(&models.Account{UserID: userID, Credits: credits}).Error)
}
