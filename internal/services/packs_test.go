package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/catnipgames/catpacks/internal/gacha"
	"github.com/catnipgames/catpacks/internal/models"
)

// fixedRolls pins both draws so the pack outcome is deterministic.
func fixedRolls(roll float64) RollSource {
	return RollSource{
		Rarity: func() float64 { return roll },
		Index:  func(n int) int { return 0 },
	}
}

func TestOpenPackDebitsGrantsAndLogs(t *testing.T) {
	db := setupTestDB(t)
	commons := seedTier(t, db, gacha.RarityCommon, 2)
	newAccount(t, db, testUser, 20)

	result, err := OpenPack(db, testUser, fixedRolls(10))
	require.NoError(t, err)
	require.Equal(t, int64(20-PackCost), result.Credits)
	require.Equal(t, commons[0].CatID, result.Item.CatID)
	require.Equal(t, gacha.RarityCommon, result.Item.Rarity)

	// Same fixed rolls again: duplicate grant, balance down to zero
	result, err = OpenPack(db, testUser, fixedRolls(10))
	require.NoError(t, err)
	require.Equal(t, int64(0), result.Credits)

	owned, err := GetCollection(db, testUser)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	require.Equal(t, int64(2), owned[0].Count)

	var logs []models.PackOpenLog
	require.NoError(t, db.Where("user_id = ?", testUser).Find(&logs).Error)
	require.Len(t, logs, 2)
	for _, l := range logs {
		require.Equal(t, commons[0].CatID, l.CatID)
		require.Equal(t, gacha.RarityCommon, l.Rarity)
		require.Equal(t, int64(PackCost), l.Cost)
	}
}

func TestOpenPackInsufficientCredits(t *testing.T) {
	db := setupTestDB(t)
	seedTier(t, db, gacha.RarityCommon, 1)
	newAccount(t, db, testUser, PackCost-1)

	_, err := OpenPack(db, testUser, fixedRolls(10))
	require.ErrorIs(t, err, ErrInsufficientCredits)

	// Nothing granted, nothing logged, balance untouched
	total, err := CountOwned(db, testUser)
	require.NoError(t, err)
	require.Zero(t, total)

	var logCount int64
	require.NoError(t, db.Model(&models.PackOpenLog{}).Count(&logCount).Error)
	require.Zero(t, logCount)

	account, err := GetOrCreateAccount(db, testUser)
	require.NoError(t, err)
	require.Equal(t, int64(PackCost-1), account.Credits)
}

func TestOpenPackCreatesAccountLazily(t *testing.T) {
	db := setupTestDB(t)
	seedTier(t, db, gacha.RarityCommon, 1)

	// First contact with an unknown user: the account appears with zero
	// credits and the open is rejected.
	_, err := OpenPack(db, testUser, fixedRolls(10))
	require.ErrorIs(t, err, ErrInsufficientCredits)

	var account models.Account
	require.NoError(t, db.Where("user_id = ?", testUser).First(&account).Error)
	require.Equal(t, int64(0), account.Credits)
}

func TestOpenPackEmptyTier(t *testing.T) {
	db := setupTestDB(t)
	seedTier(t, db, gacha.RarityCommon, 1)
	newAccount(t, db, testUser, 50)

	// Roll lands in the mythic band but the tier has no items
	_, err := OpenPack(db, testUser, fixedRolls(99.95))
	require.ErrorIs(t, err, ErrEmptyCatalogTier)

	// Credits must not have been spent
	account, err := GetOrCreateAccount(db, testUser)
	require.NoError(t, err)
	require.Equal(t, int64(50), account.Credits)
}

func TestOpenPackRollsBackDebitOnGrantFailure(t *testing.T) {
	db := setupTestDB(t)
	seedTier(t, db, gacha.RarityCommon, 1)
	newAccount(t, db, testUser, 20)

	// Break the grant path after the precheck and pick will succeed
	require.NoError(t, db.Migrator().DropTable(&models.OwnershipRecord{}))

	_, err := OpenPack(db, testUser, fixedRolls(10))
	require.ErrorIs(t, err, ErrGrantFailed)

	// The debit committed inside the same transaction must be undone
	account, err := GetOrCreateAccount(db, testUser)
	require.NoError(t, err)
	require.Equal(t, int64(20), account.Credits)

	var logCount int64
	require.NoError(t, db.Model(&models.PackOpenLog{}).Count(&logCount).Error)
	require.Zero(t, logCount)
}

func TestOpenPackConcurrentNeverOverspends(t *testing.T) {
	db := setupTestDB(t)
	seedTier(t, db, gacha.RarityCommon, 3)
	newAccount(t, db, testUser, 100)

	const attempts = 100
	var wg sync.WaitGroup
	var mu sync.Mutex
	var opened, rejected int

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := OpenPack(db, testUser, fixedRolls(10))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				opened++
			case errors.Is(err, ErrInsufficientCredits):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	// 100 credits buy exactly 10 packs, no matter the interleaving
	require.Equal(t, 10, opened)
	require.Equal(t, attempts-10, rejected)

	account, err := GetOrCreateAccount(db, testUser)
	require.NoError(t, err)
	require.Equal(t, int64(0), account.Credits)

	total, err := CountOwned(db, testUser)
	require.NoError(t, err)
	require.Equal(t, int64(10), total)

	var logCount int64
	require.NoError(t, db.Model(&models.PackOpenLog{}).Count(&logCount).Error)
	require.Equal(t, int64(10), logCount)
}
