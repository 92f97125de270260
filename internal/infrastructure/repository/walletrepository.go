// Package repository contains the gorm-backed implementations of the domain
// repositories. All methods read the transaction from the context when one
// is active, so settlement writes commit or roll back together.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tonpay/internal/domain/ledger"
	vo "tonpay/internal/domain/shared/valueobjects"
	"tonpay/internal/infrastructure/persistence/mappers"
	"tonpay/internal/infrastructure/persistence/models"
	"tonpay/internal/shared/db"
	apperrors "tonpay/internal/shared/errors"
)

type WalletRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.WalletMapper
}

func NewWalletRepository(gdb *gorm.DB) ledger.WalletRepository {
	return &WalletRepositoryImpl{
		db:     gdb,
		mapper: mappers.NewWalletMapper(),
	}
}

func (r *WalletRepositoryImpl) Create(ctx context.Context, wallet *ledger.Wallet) error {
	model, err := r.mapper.ToModel(wallet)
	if err != nil {
		return fmt.Errorf("failed to map wallet entity to model: %w", err)
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

func (r *WalletRepositoryImpl) GetByAddress(ctx context.Context, address string) (*ledger.Wallet, error) {
	var model models.WalletModel
	if err := db.GetTxFromContext(ctx, r.db).Where("address = ?", address).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("wallet not found", address)
		}
		return nil, fmt.Errorf("failed to get wallet by address: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *WalletRepositoryImpl) Update(ctx context.Context, wallet *ledger.Wallet) error {
	model, err := r.mapper.ToModel(wallet)
	if err != nil {
		return fmt.Errorf("failed to map wallet entity to model: %w", err)
	}
	result := db.GetTxFromContext(ctx, r.db).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update wallet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("wallet not found", wallet.Address())
	}
	return nil
}

// AdjustBalance applies the delta in place, creating the wallet row first
// when the address is unknown. Callers run this inside a transaction so the
// debit and credit legs land together.
func (r *WalletRepositoryImpl) AdjustBalance(ctx context.Context, address string, delta vo.Amount) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.WalletModel{}).
		Where("address = ?", address).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta.Nano()))
	if result.Error != nil {
		return fmt.Errorf("failed to adjust balance for %s: %w", address, result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	wallet, err := ledger.NewWallet(address)
	if err != nil {
		return err
	}
	wallet.Adjust(delta)
	model, err := r.mapper.ToModel(wallet)
	if err != nil {
		return fmt.Errorf("failed to map wallet entity to model: %w", err)
	}
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create wallet for %s: %w", address, err)
	}
	return nil
}

func (r *WalletRepositoryImpl) List(ctx context.Context) ([]*ledger.Wallet, error) {
	var ms []*models.WalletModel
	if err := db.GetTxFromContext(ctx, r.db).Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	return r.mapper.ToEntities(ms)
}
