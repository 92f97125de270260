package memory

import (
	"context"
	"sort"

	"tonpay/internal/domain/bill"
	"tonpay/internal/domain/gift"
	"tonpay/internal/domain/invoice"
	"tonpay/internal/domain/merchant"
	"tonpay/internal/shared/errors"
)

type InvoiceRepository struct {
	store *Store
}

// NewInvoiceRepository creates an invoice repository backed by the store.
func NewInvoiceRepository(store *Store) invoice.Repository {
	return &InvoiceRepository{store: store}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, exists := r.store.invoices[inv.ID()]; exists {
		return errors.NewValidationError("invoice already exists", inv.ID())
	}
	r.store.invoices[inv.ID()] = inv
	return nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, invoiceID string) (*invoice.Invoice, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	inv, ok := r.store.invoices[invoiceID]
	if !ok {
		return nil, errors.NewNotFoundError("invoice not found", invoiceID)
	}
	return inv, nil
}

func (r *InvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.invoices[inv.ID()]; !ok {
		return errors.NewNotFoundError("invoice not found", inv.ID())
	}
	r.store.invoices[inv.ID()] = inv
	return nil
}

func (r *InvoiceRepository) ListByIssuer(ctx context.Context, issuerAddress string) ([]*invoice.Invoice, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	var out []*invoice.Invoice
	for _, inv := range r.store.invoices {
		if inv.IssuerAddress() == issuerAddress {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out, nil
}

type BillRepository struct {
	store *Store
}

// NewBillRepository creates a bill repository backed by the store.
func NewBillRepository(store *Store) bill.Repository {
	return &BillRepository{store: store}
}

func (r *BillRepository) Create(ctx context.Context, b *bill.BillSplit) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, exists := r.store.bills[b.ID()]; exists {
		return errors.NewValidationError("bill already exists", b.ID())
	}
	r.store.bills[b.ID()] = b
	return nil
}

func (r *BillRepository) GetByID(ctx context.Context, billID string) (*bill.BillSplit, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	b, ok := r.store.bills[billID]
	if !ok {
		return nil, errors.NewNotFoundError("bill not found", billID)
	}
	return b, nil
}

func (r *BillRepository) Update(ctx context.Context, b *bill.BillSplit) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.bills[b.ID()]; !ok {
		return errors.NewNotFoundError("bill not found", b.ID())
	}
	r.store.bills[b.ID()] = b
	return nil
}

func (r *BillRepository) ListByCreator(ctx context.Context, creatorAddress string) ([]*bill.BillSplit, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	var out []*bill.BillSplit
	for _, b := range r.store.bills {
		if b.CreatorAddress() == creatorAddress {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out, nil
}

func (r *BillRepository) ListByParticipant(ctx context.Context, address string) ([]*bill.BillSplit, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	var out []*bill.BillSplit
	for _, b := range r.store.bills {
		if b.FindParticipant(address) != nil {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out, nil
}

type GiftRepository struct {
	store *Store
}

// NewGiftRepository creates a gift repository backed by the store.
func NewGiftRepository(store *Store) gift.Repository {
	return &GiftRepository{store: store}
}

func (r *GiftRepository) Create(ctx context.Context, g *gift.Gift) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, exists := r.store.gifts[g.ID()]; exists {
		return errors.NewValidationError("gift already exists", g.ID())
	}
	r.store.gifts[g.ID()] = g
	return nil
}

func (r *GiftRepository) GetByID(ctx context.Context, giftID string) (*gift.Gift, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	g, ok := r.store.gifts[giftID]
	if !ok {
		return nil, errors.NewNotFoundError("gift not found", giftID)
	}
	return g, nil
}

func (r *GiftRepository) Update(ctx context.Context, g *gift.Gift) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.gifts[g.ID()]; !ok {
		return errors.NewNotFoundError("gift not found", g.ID())
	}
	r.store.gifts[g.ID()] = g
	return nil
}

func (r *GiftRepository) ListBySender(ctx context.Context, senderAddress string) ([]*gift.Gift, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	var out []*gift.Gift
	for _, g := range r.store.gifts {
		if g.SenderAddress() == senderAddress {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out, nil
}

type MerchantPaymentRepository struct {
	store *Store
}

// NewMerchantPaymentRepository creates a merchant payment repository backed
// by the store.
func NewMerchantPaymentRepository(store *Store) merchant.Repository {
	return &MerchantPaymentRepository{store: store}
}

func (r *MerchantPaymentRepository) Create(ctx context.Context, p *merchant.Payment) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, exists := r.store.merchantPayments[p.ID()]; exists {
		return errors.NewValidationError("merchant payment already exists", p.ID())
	}
	r.store.merchantPayments[p.ID()] = p
	return nil
}

func (r *MerchantPaymentRepository) GetByID(ctx context.Context, paymentID string) (*merchant.Payment, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	p, ok := r.store.merchantPayments[paymentID]
	if !ok {
		return nil, errors.NewNotFoundError("merchant payment not found", paymentID)
	}
	return p, nil
}

func (r *MerchantPaymentRepository) Update(ctx context.Context, p *merchant.Payment) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.merchantPayments[p.ID()]; !ok {
		return errors.NewNotFoundError("merchant payment not found", p.ID())
	}
	r.store.merchantPayments[p.ID()] = p
	return nil
}

func (r *MerchantPaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*merchant.Payment, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	for _, p := range r.store.merchantPayments {
		if p.OrderID() == orderID {
			return p, nil
		}
	}
	return nil, errors.NewNotFoundError("merchant payment not found for order", orderID)
}

func (r *MerchantPaymentRepository) ListByMerchant(ctx context.Context, merchantAddress string) ([]*merchant.Payment, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	var out []*merchant.Payment
	for _, p := range r.store.merchantPayments {
		if p.MerchantAddress() == merchantAddress {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out, nil
}
