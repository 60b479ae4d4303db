package models

import (
	"time"

	"github.com/catnipgames/catpacks/internal/gacha"
)

// OwnershipRecord is one unit of a user owning one catalog item. Append
// only; duplicates are meaningful ("x3 owned" = three rows).
type OwnershipRecord struct {
	GrantID    string    `gorm:"primaryKey;type:char(36)"`
	UserID     string    `gorm:"type:char(36);not null;index"`
	CatID      uint64    `gorm:"not null;index"`
	AcquiredAt time.Time `gorm:"not null"`
}

// TableName overrides the table name for OwnershipRecord
func (OwnershipRecord) TableName() string {
	return "user_cats"
}

// PackOpenLog is the audit row written alongside every successful pack open.
type PackOpenLog struct {
	LogID     uint64       `gorm:"primaryKey;autoIncrement"`
	UserID    string       `gorm:"type:char(36);not null;index"`
	CatID     uint64       `gorm:"not null"`
	Rarity    gacha.Rarity `gorm:"size:16;not null"`
	Cost      int64        `gorm:"not null"`
	CreatedAt time.Time
}

// TableName overrides the table name for PackOpenLog
func (PackOpenLog) TableName() string {
	return "pack_open_logs"
}
