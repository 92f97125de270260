package ledger

import (
	"context"

	vo "tonpay/internal/domain/shared/valueobjects"
)

// WalletRepository manages wallet persistence.
type WalletRepository interface {
	// Create persists a new wallet.
	Create(ctx context.Context, wallet *Wallet) error

	// GetByAddress finds a wallet by its chain address. Returns a NotFound
	// error when no wallet is registered for the address.
	GetByAddress(ctx context.Context, address string) (*Wallet, error)

	// Update persists wallet changes.
	Update(ctx context.Context, wallet *Wallet) error

	// AdjustBalance applies a signed delta to the wallet for the address,
	// creating the wallet with a zero starting balance if it does not exist
	// yet. Both legs of a transfer go through this method inside one
	// transaction.
	AdjustBalance(ctx context.Context, address string, delta vo.Amount) error

	// List returns all wallets.
	List(ctx context.Context) ([]*Wallet, error)
}

// TransactionRepository manages the append-only ledger entries.
type TransactionRepository interface {
	// Create appends a ledger entry.
	Create(ctx context.Context, tx *Transaction) error

	// GetByID finds a ledger entry by ID.
	GetByID(ctx context.Context, id string) (*Transaction, error)

	// Update persists a status/hash patch on a pending entry.
	Update(ctx context.Context, tx *Transaction) error

	// ListByAddress returns entries where the address is sender or
	// recipient, newest first.
	ListByAddress(ctx context.Context, address string) ([]*Transaction, error)

	// List returns all entries, newest first.
	List(ctx context.Context) ([]*Transaction, error)
}
