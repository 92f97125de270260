package usecases

import (
	"context"
	"fmt"
	"time"

	"tonpay/internal/domain/merchant"
	vo "tonpay/internal/domain/shared/valueobjects"
	"tonpay/internal/shared/logger"
)

// CreateMerchantPaymentCommand represents the input for creating a merchant
// payment request.
type CreateMerchantPaymentCommand struct {
	MerchantName    string
	MerchantAddress string
	AmountNano      int64
	OrderID         string
	Description     string
	ExpiresAt       *time.Time
}

// CreateMerchantPaymentUseCase handles merchant payment creation.
type CreateMerchantPaymentUseCase struct {
	repo   merchant.Repository
	logger logger.Interface
}

// NewCreateMerchantPaymentUseCase creates a new CreateMerchantPaymentUseCase.
func NewCreateMerchantPaymentUseCase(repo merchant.Repository, logger logger.Interface) *CreateMerchantPaymentUseCase {
	return &CreateMerchantPaymentUseCase{repo: repo, logger: logger}
}

// Execute creates a new pending merchant payment.
func (uc *CreateMerchantPaymentUseCase) Execute(ctx context.Context, cmd CreateMerchantPaymentCommand) (*MerchantPaymentResult, error) {
	p, err := merchant.NewPayment(cmd.MerchantName, cmd.MerchantAddress, vo.NewAmount(cmd.AmountNano), cmd.OrderID, cmd.Description, cmd.ExpiresAt)
	if err != nil {
		uc.logger.Warnw("invalid create merchant payment command", "error", err)
		return nil, err
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		uc.logger.Errorw("failed to persist merchant payment", "error", err)
		return nil, fmt.Errorf("failed to save merchant payment: %w", err)
	}

	uc.logger.Infow("merchant payment created",
		"payment_id", p.ID(),
		"merchant", p.MerchantName(),
		"order_id", p.OrderID(),
		"amount", p.Amount().String())
	return toMerchantPaymentResult(p), nil
}
