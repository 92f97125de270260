package usecases

import (
	"context"

	"tonpay/internal/application/settlement"
	"tonpay/internal/shared/logger"
)

// CancelObligationUseCase cancels pending invoices and active bills. Only
// the creator may cancel, and cancellation never touches the ledger. The
// transition itself runs inside the settlement engine so it holds the same
// per-obligation lock as a concurrent settlement attempt.
type CancelObligationUseCase struct {
	engine *settlement.Engine
	logger logger.Interface
}

// NewCancelObligationUseCase creates a new CancelObligationUseCase.
func NewCancelObligationUseCase(engine *settlement.Engine, logger logger.Interface) *CancelObligationUseCase {
	return &CancelObligationUseCase{
		engine: engine,
		logger: logger,
	}
}

// CancelInvoice cancels a pending invoice on behalf of its issuer.
func (uc *CancelObligationUseCase) CancelInvoice(ctx context.Context, invoiceID, callerAddress string) (*InvoiceResult, error) {
	inv, err := uc.engine.CancelInvoice(ctx, invoiceID, callerAddress)
	if err != nil {
		uc.logger.Debugw("invoice cancellation rejected", "invoice_id", invoiceID, "error", err)
		return nil, err
	}
	return toInvoiceResult(inv), nil
}

// CancelBill cancels an active bill on behalf of its creator.
func (uc *CancelObligationUseCase) CancelBill(ctx context.Context, billID, callerAddress string) (*BillResult, error) {
	b, err := uc.engine.CancelBill(ctx, billID, callerAddress)
	if err != nil {
		uc.logger.Debugw("bill cancellation rejected", "bill_id", billID, "error", err)
		return nil, err
	}
	return toBillResult(b), nil
}
