package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tonpay/internal/domain/ledger"
	"tonpay/internal/infrastructure/persistence/mappers"
	"tonpay/internal/infrastructure/persistence/models"
	"tonpay/internal/shared/db"
	apperrors "tonpay/internal/shared/errors"
)

type TransactionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.TransactionMapper
}

func NewTransactionRepository(gdb *gorm.DB) ledger.TransactionRepository {
	return &TransactionRepositoryImpl{
		db:     gdb,
		mapper: mappers.NewTransactionMapper(),
	}
}

func (r *TransactionRepositoryImpl) Create(ctx context.Context, tx *ledger.Transaction) error {
	model, err := r.mapper.ToModel(tx)
	if err != nil {
		return fmt.Errorf("failed to map transaction entity to model: %w", err)
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepositoryImpl) GetByID(ctx context.Context, id string) (*ledger.Transaction, error) {
	var model models.TransactionModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("transaction not found", id)
		}
		return nil, fmt.Errorf("failed to get transaction by ID: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *TransactionRepositoryImpl) Update(ctx context.Context, tx *ledger.Transaction) error {
	model, err := r.mapper.ToModel(tx)
	if err != nil {
		return fmt.Errorf("failed to map transaction entity to model: %w", err)
	}
	result := db.GetTxFromContext(ctx, r.db).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("transaction not found", tx.ID())
	}
	return nil
}

func (r *TransactionRepositoryImpl) ListByAddress(ctx context.Context, address string) ([]*ledger.Transaction, error) {
	var ms []*models.TransactionModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("from_address = ? OR to_address = ?", address, address).
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions by address: %w", err)
	}
	return r.mapper.ToEntities(ms)
}

func (r *TransactionRepositoryImpl) List(ctx context.Context) ([]*ledger.Transaction, error) {
	var ms []*models.TransactionModel
	if err := db.GetTxFromContext(ctx, r.db).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return r.mapper.ToEntities(ms)
}
