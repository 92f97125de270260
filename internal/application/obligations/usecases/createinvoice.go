package usecases

import (
	"context"
	"fmt"
	"time"

	"tonpay/internal/domain/invoice"
	vo "tonpay/internal/domain/shared/valueobjects"
	"tonpay/internal/shared/logger"
)

// CreateInvoiceCommand represents the input for creating an invoice.
type CreateInvoiceCommand struct {
	Title         string
	Description   string
	AmountNano    int64
	IssuerAddress string
	AllowedPayer  *string
	DueDate       *time.Time
	ExpiresAt     *time.Time
}

// CreateInvoiceUseCase handles invoice creation.
type CreateInvoiceUseCase struct {
	repo   invoice.Repository
	logger logger.Interface
}

// NewCreateInvoiceUseCase creates a new CreateInvoiceUseCase.
func NewCreateInvoiceUseCase(repo invoice.Repository, logger logger.Interface) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{repo: repo, logger: logger}
}

// Execute creates a new pending invoice.
func (uc *CreateInvoiceUseCase) Execute(ctx context.Context, cmd CreateInvoiceCommand) (*InvoiceResult, error) {
	inv, err := invoice.NewInvoice(cmd.Title, cmd.Description, vo.NewAmount(cmd.AmountNano), cmd.IssuerAddress, cmd.AllowedPayer, cmd.DueDate, cmd.ExpiresAt)
	if err != nil {
		uc.logger.Warnw("invalid create invoice command", "error", err)
		return nil, err
	}

	if err := uc.repo.Create(ctx, inv); err != nil {
		uc.logger.Errorw("failed to persist invoice", "error", err)
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	uc.logger.Infow("invoice created", "invoice_id", inv.ID(), "issuer", inv.IssuerAddress(), "amount", inv.Amount().String())
	return toInvoiceResult(inv), nil
}
