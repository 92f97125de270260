package gift

import "context"

// Repository manages gift persistence.
type Repository interface {
	// Create persists a new gift.
	Create(ctx context.Context, g *Gift) error

	// GetByID finds a gift by ID. Returns a NotFound error when absent.
	GetByID(ctx context.Context, giftID string) (*Gift, error)

	// Update persists gift changes.
	Update(ctx context.Context, g *Gift) error

	// ListBySender returns gifts sent by the address, newest first.
	ListBySender(ctx context.Context, senderAddress string) ([]*Gift, error)
}
