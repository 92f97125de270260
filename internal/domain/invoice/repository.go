package invoice

import "context"

// Repository manages invoice persistence.
type Repository interface {
	// Create persists a new invoice.
	Create(ctx context.Context, inv *Invoice) error

	// GetByID finds an invoice by ID. Returns a NotFound error when absent.
	GetByID(ctx context.Context, invoiceID string) (*Invoice, error)

	// Update persists invoice changes.
	Update(ctx context.Context, inv *Invoice) error

	// ListByIssuer returns invoices issued by the address, newest first.
	ListByIssuer(ctx context.Context, issuerAddress string) ([]*Invoice, error)
}
