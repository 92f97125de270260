package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tonpay/internal/domain/merchant"
	"tonpay/internal/infrastructure/persistence/mappers"
	"tonpay/internal/infrastructure/persistence/models"
	"tonpay/internal/shared/db"
	apperrors "tonpay/internal/shared/errors"
)

type MerchantPaymentRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.MerchantPaymentMapper
}

func NewMerchantPaymentRepository(gdb *gorm.DB) merchant.Repository {
	return &MerchantPaymentRepositoryImpl{
		db:     gdb,
		mapper: mappers.NewMerchantPaymentMapper(),
	}
}

func (r *MerchantPaymentRepositoryImpl) Create(ctx context.Context, p *merchant.Payment) error {
	model, err := r.mapper.ToModel(p)
	if err != nil {
		return fmt.Errorf("failed to map merchant payment entity to model: %w", err)
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create merchant payment: %w", err)
	}
	return nil
}

func (r *MerchantPaymentRepositoryImpl) GetByID(ctx context.Context, paymentID string) (*merchant.Payment, error) {
	var model models.MerchantPaymentModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", paymentID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("merchant payment not found", paymentID)
		}
		return nil, fmt.Errorf("failed to get merchant payment by ID: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *MerchantPaymentRepositoryImpl) Update(ctx context.Context, p *merchant.Payment) error {
	model, err := r.mapper.ToModel(p)
	if err != nil {
		return fmt.Errorf("failed to map merchant payment entity to model: %w", err)
	}
	result := db.GetTxFromContext(ctx, r.db).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update merchant payment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("merchant payment not found", p.ID())
	}
	return nil
}

func (r *MerchantPaymentRepositoryImpl) GetByOrderID(ctx context.Context, orderID string) (*merchant.Payment, error) {
	var model models.MerchantPaymentModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("merchant payment not found for order", orderID)
		}
		return nil, fmt.Errorf("failed to get merchant payment by order ID: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *MerchantPaymentRepositoryImpl) ListByMerchant(ctx context.Context, merchantAddress string) ([]*merchant.Payment, error) {
	var ms []*models.MerchantPaymentModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("merchant_address = ?", merchantAddress).
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list merchant payments: %w", err)
	}
	return r.mapper.ToEntities(ms)
}
