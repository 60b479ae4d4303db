package services

import (
	"log"
	"math/rand/v2"

	"github.com/catnipgames/catpacks/internal/gacha"
	"github.com/catnipgames/catpacks/internal/models"
	"gorm.io/gorm"
)

// PackCost is the credit price of one pack.
const PackCost = 10

// RollSource supplies the two random draws of a pack open. Injectable so
// tests can pin the outcome; statistical uniformity is all that is required
// of the defaults.
type RollSource struct {
	// Rarity draws uniformly from [0, 100).
	Rarity func() float64
	// Index draws uniformly from [0, n).
	Index func(n int) int
}

// DefaultRollSource uses the shared math/rand/v2 generator.
func DefaultRollSource() RollSource {
	return RollSource{
		Rarity: func() float64 { return rand.Float64() * 100 },
		Index:  rand.IntN,
	}
}

// PackResult is the outcome of one successful pack open.
type PackResult struct {
	Credits int64
	Item    models.CatalogItem
}

// OpenPack runs the pack-opening transaction for userID:
// balance precheck, rarity roll, item pick, then debit + grant + audit log
// committed as one transaction. The debit is a conditional update, so
// concurrent opens against the same account serialize on the balance and can
// never overspend; a grant failure rolls the debit back.
func OpenPack(db *gorm.DB, userID string, rolls RollSource) (*PackResult, error) {
	account, err := GetOrCreateAccount(db, userID)
	if err != nil {
		return nil, err
	}
	if account.Credits < PackCost {
		return nil, ErrInsufficientCredits
	}

	rarity := gacha.SelectRarity(gacha.DropRates, rolls.Rarity())

	item, err := PickItem(db, rarity, rolls.Index)
	if err != nil {
		return nil, err
	}

	var newBalance int64
	err = db.Transaction(func(tx *gorm.DB) error {
		balance, err := Debit(tx, userID, PackCost)
		if err != nil {
			return err
		}
		newBalance = balance

		if _, err := GrantItem(tx, userID, item.CatID); err != nil {
			log.Printf("pack grant failed for user %s, rolling back debit: %v", userID, err)
			return ErrGrantFailed
		}

		logRow := models.PackOpenLog{
			UserID: userID,
			CatID:  item.CatID,
			Rarity: item.Rarity,
			Cost:   PackCost,
		}
		if err := tx.Create(&logRow).Error; err != nil {
			log.Printf("pack open log failed for user %s, rolling back: %v", userID, err)
			return ErrGrantFailed
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &PackResult{Credits: newBalance, Item: *item}, nil
}
