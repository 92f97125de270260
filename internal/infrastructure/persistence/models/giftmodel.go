package models

import "time"

type GiftModel struct {
	ID               string  `gorm:"primaryKey;size:32"`
	Amount           int64   `gorm:"not null"`
	SenderAddress    string  `gorm:"size:128;not null;index"`
	RecipientAddress *string `gorm:"size:128"`
	SecretHash       string  `gorm:"size:64;not null"`
	Description      string  `gorm:"size:1000"`
	IsClaimed        bool    `gorm:"not null;default:false"`
	ClaimedAt        *time.Time
	ExpiresAt        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (GiftModel) TableName() string {
	return "gifts"
}
