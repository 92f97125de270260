// Package usecases contains the application services for the ledger side:
// wallet registration, direct transfers and read access to the audit trail.
package usecases

import (
	"context"
	"fmt"

	"tonpay/internal/domain/ledger"
	"tonpay/internal/shared/biztime"
	apperrors "tonpay/internal/shared/errors"
	"tonpay/internal/shared/logger"
)

// WalletResult is the transport representation of a wallet.
type WalletResult struct {
	ID          string `json:"id"`
	Address     string `json:"address"`
	BalanceNano int64  `json:"balance_nano"`
	ConnectedAt string `json:"connected_at"`
}

func toWalletResult(w *ledger.Wallet) *WalletResult {
	return &WalletResult{
		ID:          w.ID(),
		Address:     w.Address(),
		BalanceNano: w.Balance().Nano(),
		ConnectedAt: biztime.FormatRFC3339(w.ConnectedAt()),
	}
}

// ConnectWalletUseCase registers a wallet address. Reconnecting an already
// known address returns the existing wallet unchanged.
type ConnectWalletUseCase struct {
	repo   ledger.WalletRepository
	logger logger.Interface
}

// NewConnectWalletUseCase creates a new ConnectWalletUseCase.
func NewConnectWalletUseCase(repo ledger.WalletRepository, logger logger.Interface) *ConnectWalletUseCase {
	return &ConnectWalletUseCase{repo: repo, logger: logger}
}

// Execute connects the wallet for the given address.
func (uc *ConnectWalletUseCase) Execute(ctx context.Context, address string) (*WalletResult, error) {
	existing, err := uc.repo.GetByAddress(ctx, address)
	if err == nil {
		return toWalletResult(existing), nil
	}
	if !apperrors.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to look up wallet: %w", err)
	}

	w, err := ledger.NewWallet(address)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, w); err != nil {
		uc.logger.Errorw("failed to persist wallet", "address", address, "error", err)
		return nil, fmt.Errorf("failed to save wallet: %w", err)
	}

	uc.logger.Infow("wallet connected", "address", address)
	return toWalletResult(w), nil
}

// GetWalletUseCase provides read access to a wallet.
type GetWalletUseCase struct {
	repo ledger.WalletRepository
}

// NewGetWalletUseCase creates a new GetWalletUseCase.
func NewGetWalletUseCase(repo ledger.WalletRepository) *GetWalletUseCase {
	return &GetWalletUseCase{repo: repo}
}

// Execute returns the wallet for the address.
func (uc *GetWalletUseCase) Execute(ctx context.Context, address string) (*WalletResult, error) {
	w, err := uc.repo.GetByAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	return toWalletResult(w), nil
}
