package models

import "time"

type InvoiceModel struct {
	ID            string  `gorm:"primaryKey;size:32"`
	Title         string  `gorm:"size:255;not null"`
	Description   string  `gorm:"size:1000"`
	Amount        int64   `gorm:"not null"`
	IssuerAddress string  `gorm:"size:128;not null;index"`
	AllowedPayer  *string `gorm:"size:128"`
	Status        string  `gorm:"size:20;not null;default:'pending';index"`
	DueDate       *time.Time
	ExpiresAt     *time.Time
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (InvoiceModel) TableName() string {
	return "invoices"
}
