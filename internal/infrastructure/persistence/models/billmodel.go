package models

import "time"

type BillSplitModel struct {
	ID             string `gorm:"primaryKey;size:32"`
	Title          string `gorm:"size:255;not null"`
	Description    string `gorm:"size:1000"`
	TotalAmount    int64  `gorm:"not null"`
	CreatorAddress string `gorm:"size:128;not null;index"`
	Status         string `gorm:"size:20;not null;default:'active';index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Participants []BillParticipantModel `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE"`
}

func (BillSplitModel) TableName() string {
	return "bill_splits"
}

type BillParticipantModel struct {
	ID      string `gorm:"primaryKey;size:36"`
	BillID  string `gorm:"size:32;not null;index;uniqueIndex:idx_bill_participant"`
	Address string `gorm:"size:128;not null;index;uniqueIndex:idx_bill_participant"`
	Share   int64  `gorm:"not null"`
	Paid    bool   `gorm:"not null;default:false"`
	PaidAt  *time.Time
}

func (BillParticipantModel) TableName() string {
	return "bill_participants"
}
