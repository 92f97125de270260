package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tonpay/internal/domain/gift"
	"tonpay/internal/infrastructure/persistence/mappers"
	"tonpay/internal/infrastructure/persistence/models"
	"tonpay/internal/shared/db"
	apperrors "tonpay/internal/shared/errors"
)

type GiftRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.GiftMapper
}

func NewGiftRepository(gdb *gorm.DB) gift.Repository {
	return &GiftRepositoryImpl{
		db:     gdb,
		mapper: mappers.NewGiftMapper(),
	}
}

func (r *GiftRepositoryImpl) Create(ctx context.Context, g *gift.Gift) error {
	model, err := r.mapper.ToModel(g)
	if err != nil {
		return fmt.Errorf("failed to map gift entity to model: %w", err)
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create gift: %w", err)
	}
	return nil
}

func (r *GiftRepositoryImpl) GetByID(ctx context.Context, giftID string) (*gift.Gift, error) {
	var model models.GiftModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", giftID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("gift not found", giftID)
		}
		return nil, fmt.Errorf("failed to get gift by ID: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *GiftRepositoryImpl) Update(ctx context.Context, g *gift.Gift) error {
	model, err := r.mapper.ToModel(g)
	if err != nil {
		return fmt.Errorf("failed to map gift entity to model: %w", err)
	}
	result := db.GetTxFromContext(ctx, r.db).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update gift: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("gift not found", g.ID())
	}
	return nil
}

func (r *GiftRepositoryImpl) ListBySender(ctx context.Context, senderAddress string) ([]*gift.Gift, error) {
	var ms []*models.GiftModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("sender_address = ?", senderAddress).
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list gifts by sender: %w", err)
	}
	return r.mapper.ToEntities(ms)
}
