package services

import (
	"errors"
	"time"

	"github.com/catnipgames/catpacks/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DailyCredits is the amount granted by one daily claim.
const DailyCredits = 20

// Today returns the current UTC calendar date as a DATE value.
func Today() datatypes.Date {
	y, m, d := time.Now().UTC().Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// GetOrCreateAccount reads the account for userID, creating an empty one if
// it does not exist. Safe under concurrent first access: the insert is
// ON CONFLICT DO NOTHING and the winner's row is read back.
func GetOrCreateAccount(db *gorm.DB, userID string) (*models.Account, error) {
	var account models.Account
	err := db.Where("user_id = ?", userID).First(&account).Error
	if err == nil {
		return &account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := models.Account{UserID: userID, Credits: 0}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&fresh).Error; err != nil {
		return nil, err
	}

	if err := db.Where("user_id = ?", userID).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// Debit atomically subtracts amount from the account balance and returns the
// new balance. The decrement is a single conditional UPDATE guarded by
// credits >= amount, so concurrent debits can never overspend. The returned
// balance comes from a follow-up read: outside a transaction it may already
// include other writers' updates, so callers that need the exact post-debit
// balance must pass a transaction handle.
func Debit(db *gorm.DB, userID string, amount int64) (int64, error) {
	res := db.Model(&models.Account{}).
		Where("user_id = ? AND credits >= ?", userID, amount).
		UpdateColumn("credits", gorm.Expr("credits - ?", amount))
	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected == 0 {
		var account models.Account
		if err := db.Where("user_id = ?", userID).First(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ErrAccountNotFound
			}
			return 0, err
		}
		return account.Credits, ErrInsufficientCredits
	}

	return currentBalance(db, userID)
}

// Credit atomically adds amount to the account balance and returns the new
// balance, read back separately like Debit's.
func Credit(db *gorm.DB, userID string, amount int64) (int64, error) {
	res := db.Model(&models.Account{}).
		Where("user_id = ?", userID).
		UpdateColumn("credits", gorm.Expr("credits + ?", amount))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrAccountNotFound
	}
	return currentBalance(db, userID)
}

// ClaimDaily grants DailyCredits once per calendar date. The claim itself is
// one conditional UPDATE keyed on last_daily_claim, so concurrent requests
// on the same date succeed at most once. A missing account is created
// already claimed for today.
func ClaimDaily(db *gorm.DB, userID string, today datatypes.Date) (int64, bool, error) {
	res := db.Model(&models.Account{}).
		Where("user_id = ? AND (last_daily_claim IS NULL OR last_daily_claim < ?)", userID, today).
		Updates(map[string]interface{}{
			"credits":          gorm.Expr("credits + ?", DailyCredits),
			"last_daily_claim": today,
		})
	if res.Error != nil {
		return 0, false, res.Error
	}
	if res.RowsAffected == 1 {
		balance, err := currentBalance(db, userID)
		return balance, true, err
	}

	// No row claimed: the account either already claimed today or does not
	// exist yet.
	var account models.Account
	err := db.Where("user_id = ?", userID).First(&account).Error
	if err == nil {
		return account.Credits, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, err
	}

	fresh := models.Account{UserID: userID, Credits: DailyCredits, LastDailyClaim: &today}
	created := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&fresh)
	if created.Error != nil {
		return 0, false, created.Error
	}
	if created.RowsAffected == 1 {
		return DailyCredits, true, nil
	}

	// Lost the creation race; the winner holds today's claim.
	if err := db.Where("user_id = ?", userID).First(&account).Error; err != nil {
		return 0, false, err
	}
	return account.Credits, false, nil
}

func currentBalance(db *gorm.DB, userID string) (int64, error) {
	var account models.Account
	if err := db.Where("user_id = ?", userID).First(&account).Error; err != nil {
		return 0, err
	}
	return account.Credits, nil
}
