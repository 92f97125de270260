package merchant

import "context"

// Repository manages merchant payment persistence.
type Repository interface {
	// Create persists a new payment.
	Create(ctx context.Context, p *Payment) error

	// GetByID finds a payment by ID. Returns a NotFound error when absent.
	GetByID(ctx context.Context, paymentID string) (*Payment, error)

	// Update persists payment changes.
	Update(ctx context.Context, p *Payment) error

	// GetByOrderID finds a payment by the merchant's order correlation id.
	GetByOrderID(ctx context.Context, orderID string) (*Payment, error)

	// ListByMerchant returns payments for the merchant address, newest
	// first.
	ListByMerchant(ctx context.Context, merchantAddress string) ([]*Payment, error)
}
