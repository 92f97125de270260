package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tonpay/internal/domain/bill"
	"tonpay/internal/infrastructure/persistence/mappers"
	"tonpay/internal/infrastructure/persistence/models"
	"tonpay/internal/shared/db"
	apperrors "tonpay/internal/shared/errors"
)

type BillRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.BillMapper
}

func NewBillRepository(gdb *gorm.DB) bill.Repository {
	return &BillRepositoryImpl{
		db:     gdb,
		mapper: mappers.NewBillMapper(),
	}
}

func (r *BillRepositoryImpl) Create(ctx context.Context, b *bill.BillSplit) error {
	model, err := r.mapper.ToModel(b)
	if err != nil {
		return fmt.Errorf("failed to map bill entity to model: %w", err)
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create bill: %w", err)
	}
	return nil
}

func (r *BillRepositoryImpl) GetByID(ctx context.Context, billID string) (*bill.BillSplit, error) {
	var model models.BillSplitModel
	err := db.GetTxFromContext(ctx, r.db).
		Preload("Participants").
		Where("id = ?", billID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("bill not found", billID)
		}
		return nil, fmt.Errorf("failed to get bill by ID: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// Update saves the bill row and every participant row. Participant rows
// carry the paid flag, so they are written with Save rather than a partial
// update.
func (r *BillRepositoryImpl) Update(ctx context.Context, b *bill.BillSplit) error {
	model, err := r.mapper.ToModel(b)
	if err != nil {
		return fmt.Errorf("failed to map bill entity to model: %w", err)
	}
	tx := db.GetTxFromContext(ctx, r.db)

	participants := model.Participants
	model.Participants = nil
	result := tx.Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update bill: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("bill not found", b.ID())
	}
	for i := range participants {
		if err := tx.Save(&participants[i]).Error; err != nil {
			return fmt.Errorf("failed to update bill participant: %w", err)
		}
	}
	return nil
}

func (r *BillRepositoryImpl) ListByCreator(ctx context.Context, creatorAddress string) ([]*bill.BillSplit, error) {
	var ms []*models.BillSplitModel
	err := db.GetTxFromContext(ctx, r.db).
		Preload("Participants").
		Where("creator_address = ?", creatorAddress).
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bills by creator: %w", err)
	}
	return r.mapper.ToEntities(ms)
}

func (r *BillRepositoryImpl) ListByParticipant(ctx context.Context, address string) ([]*bill.BillSplit, error) {
	var ms []*models.BillSplitModel
	err := db.GetTxFromContext(ctx, r.db).
		Preload("Participants").
		Joins("JOIN bill_participants ON bill_participants.bill_id = bill_splits.id").
		Where("bill_participants.address = ?", address).
		Order("bill_splits.created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bills by participant: %w", err)
	}
	return r.mapper.ToEntities(ms)
}
