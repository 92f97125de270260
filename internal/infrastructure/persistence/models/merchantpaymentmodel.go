package models

import "time"

type MerchantPaymentModel struct {
	ID              string `gorm:"primaryKey;size:32"`
	MerchantName    string `gorm:"size:255;not null"`
	MerchantAddress string `gorm:"size:128;not null;index"`
	Amount          int64  `gorm:"not null"`
	OrderID         string `gorm:"size:128;not null;index"`
	Description     string `gorm:"size:1000"`
	Status          string `gorm:"size:20;not null;default:'pending';index"`
	ExpiresAt       *time.Time
	PaidAt          *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (MerchantPaymentModel) TableName() string {
	return "merchant_payments"
}
