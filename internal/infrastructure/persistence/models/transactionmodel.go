package models

import "time"

type TransactionModel struct {
	ID           string  `gorm:"primaryKey;size:36"`
	FromAddress  string  `gorm:"size:128;not null;index"`
	ToAddress    string  `gorm:"size:128;not null;index"`
	Amount       int64   `gorm:"not null"`
	Kind         string  `gorm:"size:20;not null"`
	Status       string  `gorm:"size:20;not null;default:'pending'"`
	Description  string  `gorm:"size:500"`
	ExternalHash *string `gorm:"size:128"`
	CreatedAt    time.Time
}

func (TransactionModel) TableName() string {
	return "transactions"
}
