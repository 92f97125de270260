package models

import "time"

type WalletModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Address   string `gorm:"size:128;not null;uniqueIndex"`
	Balance   int64  `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (WalletModel) TableName() string {
	return "wallets"
}
