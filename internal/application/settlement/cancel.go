package settlement

import (
	"context"
	"fmt"

	"tonpay/internal/domain/bill"
	"tonpay/internal/domain/invoice"
	apperrors "tonpay/internal/shared/errors"
)

// CancelInvoice moves a pending invoice to cancelled. Only the issuer may
// cancel. The cancellation takes the same lock as SettleInvoice and re-reads
// the invoice inside the transaction, so a cancel racing a settlement sees
// the settled state and is rejected instead of overwriting it.
func (e *Engine) CancelInvoice(ctx context.Context, invoiceID, requesterAddress string) (*invoice.Invoice, error) {
	var inv *invoice.Invoice
	err := e.withObligation(ctx, "invoice", invoiceID, func(txCtx context.Context) error {
		cur, err := e.invoiceRepo.GetByID(txCtx, invoiceID)
		if err != nil {
			return err
		}
		if cur.IssuerAddress() != requesterAddress {
			return apperrors.NewUnauthorizedError("only the issuer can cancel an invoice")
		}
		if err := cur.Cancel(); err != nil {
			return err
		}
		if err := e.invoiceRepo.Update(txCtx, cur); err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}
		inv = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.logger.Infow("invoice cancelled", "invoice_id", invoiceID, "issuer", requesterAddress)
	return inv, nil
}

// CancelBill moves an active bill to cancelled. Only the creator may cancel.
// Locking and re-read semantics match CancelInvoice.
func (e *Engine) CancelBill(ctx context.Context, billID, requesterAddress string) (*bill.BillSplit, error) {
	var b *bill.BillSplit
	err := e.withObligation(ctx, "bill", billID, func(txCtx context.Context) error {
		cur, err := e.billRepo.GetByID(txCtx, billID)
		if err != nil {
			return err
		}
		if cur.CreatorAddress() != requesterAddress {
			return apperrors.NewUnauthorizedError("only the creator can cancel a bill")
		}
		if err := cur.Cancel(); err != nil {
			return err
		}
		if err := e.billRepo.Update(txCtx, cur); err != nil {
			return fmt.Errorf("failed to update bill: %w", err)
		}
		b = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.logger.Infow("bill cancelled", "bill_id", billID, "creator", requesterAddress)
	return b, nil
}
