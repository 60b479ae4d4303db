package models

import (
	"time"

	"gorm.io/datatypes"
)

// Account holds a user's spendable credits and daily-claim marker. Exactly
// one row per user; created lazily on first access and never deleted.
type Account struct {
	AccountID      uint64          `gorm:"primaryKey;autoIncrement"`
	UserID         string          `gorm:"type:char(36);uniqueIndex;not null"`
	Credits        int64           `gorm:"not null;default:0"`
	LastDailyClaim *datatypes.Date `gorm:"type:date"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName overrides the table name for Account
func (Account) TableName() string {
	return "users_profile"
}
