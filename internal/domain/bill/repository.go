package bill

import "context"

// Repository manages bill split persistence. Implementations load and store
// the participant collection together with the bill.
type Repository interface {
	// Create persists a new bill with its participants.
	Create(ctx context.Context, b *BillSplit) error

	// GetByID finds a bill by ID, participants included. Returns a NotFound
	// error when absent.
	GetByID(ctx context.Context, billID string) (*BillSplit, error)

	// Update persists bill and participant changes.
	Update(ctx context.Context, b *BillSplit) error

	// ListByCreator returns bills created by the address, newest first.
	ListByCreator(ctx context.Context, creatorAddress string) ([]*BillSplit, error)

	// ListByParticipant returns bills the address participates in, newest
	// first.
	ListByParticipant(ctx context.Context, address string) ([]*BillSplit, error)
}
