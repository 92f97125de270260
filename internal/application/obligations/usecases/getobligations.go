package usecases

import (
	"context"

	"tonpay/internal/domain/bill"
	"tonpay/internal/domain/gift"
	"tonpay/internal/domain/invoice"
	"tonpay/internal/domain/merchant"
)

// GetObligationsUseCase provides read access to obligations. Pass-through to
// the repositories, no business logic.
type GetObligationsUseCase struct {
	invoiceRepo  invoice.Repository
	billRepo     bill.Repository
	giftRepo     gift.Repository
	merchantRepo merchant.Repository
}

// NewGetObligationsUseCase creates a new GetObligationsUseCase.
func NewGetObligationsUseCase(
	invoiceRepo invoice.Repository,
	billRepo bill.Repository,
	giftRepo gift.Repository,
	merchantRepo merchant.Repository,
) *GetObligationsUseCase {
	return &GetObligationsUseCase{
		invoiceRepo:  invoiceRepo,
		billRepo:     billRepo,
		giftRepo:     giftRepo,
		merchantRepo: merchantRepo,
	}
}

// GetInvoice returns one invoice by ID.
func (uc *GetObligationsUseCase) GetInvoice(ctx context.Context, invoiceID string) (*InvoiceResult, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return toInvoiceResult(inv), nil
}

// ListInvoicesByIssuer returns invoices issued by the address.
func (uc *GetObligationsUseCase) ListInvoicesByIssuer(ctx context.Context, issuerAddress string) ([]*InvoiceResult, error) {
	invs, err := uc.invoiceRepo.ListByIssuer(ctx, issuerAddress)
	if err != nil {
		return nil, err
	}
	out := make([]*InvoiceResult, 0, len(invs))
	for _, inv := range invs {
		out = append(out, toInvoiceResult(inv))
	}
	return out, nil
}

// GetBill returns one bill by ID, participants included.
func (uc *GetObligationsUseCase) GetBill(ctx context.Context, billID string) (*BillResult, error) {
	b, err := uc.billRepo.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	return toBillResult(b), nil
}

// ListBillsByAddress returns bills the address created or participates in,
// deduplicated.
func (uc *GetObligationsUseCase) ListBillsByAddress(ctx context.Context, address string) ([]*BillResult, error) {
	created, err := uc.billRepo.ListByCreator(ctx, address)
	if err != nil {
		return nil, err
	}
	participating, err := uc.billRepo.ListByParticipant(ctx, address)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(created))
	out := make([]*BillResult, 0, len(created)+len(participating))
	for _, b := range created {
		seen[b.ID()] = struct{}{}
		out = append(out, toBillResult(b))
	}
	for _, b := range participating {
		if _, dup := seen[b.ID()]; dup {
			continue
		}
		out = append(out, toBillResult(b))
	}
	return out, nil
}

// GetGift returns one gift by ID. The secret hash never leaves the store.
func (uc *GetObligationsUseCase) GetGift(ctx context.Context, giftID string) (*GiftResult, error) {
	g, err := uc.giftRepo.GetByID(ctx, giftID)
	if err != nil {
		return nil, err
	}
	return toGiftResult(g), nil
}

// ListGiftsBySender returns gifts sent by the address.
func (uc *GetObligationsUseCase) ListGiftsBySender(ctx context.Context, senderAddress string) ([]*GiftResult, error) {
	gs, err := uc.giftRepo.ListBySender(ctx, senderAddress)
	if err != nil {
		return nil, err
	}
	out := make([]*GiftResult, 0, len(gs))
	for _, g := range gs {
		out = append(out, toGiftResult(g))
	}
	return out, nil
}

// GetMerchantPayment returns one merchant payment by ID.
func (uc *GetObligationsUseCase) GetMerchantPayment(ctx context.Context, paymentID string) (*MerchantPaymentResult, error) {
	p, err := uc.merchantRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	return toMerchantPaymentResult(p), nil
}

// GetMerchantPaymentByOrder returns the payment correlated to an external
// order id.
func (uc *GetObligationsUseCase) GetMerchantPaymentByOrder(ctx context.Context, orderID string) (*MerchantPaymentResult, error) {
	p, err := uc.merchantRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toMerchantPaymentResult(p), nil
}

// ListMerchantPayments returns payments for a merchant address.
func (uc *GetObligationsUseCase) ListMerchantPayments(ctx context.Context, merchantAddress string) ([]*MerchantPaymentResult, error) {
	ps, err := uc.merchantRepo.ListByMerchant(ctx, merchantAddress)
	if err != nil {
		return nil, err
	}
	out := make([]*MerchantPaymentResult, 0, len(ps))
	for _, p := range ps {
		out = append(out, toMerchantPaymentResult(p))
	}
	return out, nil
}
