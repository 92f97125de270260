// Package ledger holds the internal bookkeeping side of the system: wallet
// balances and the append-only transaction audit trail. Obligations live in
// their own packages; the ledger only records the money movements their
// settlements produce.
package ledger

import (
	"time"

	"github.com/google/uuid"

	vo "tonpay/internal/domain/shared/valueobjects"
	apperrors "tonpay/internal/shared/errors"
	"tonpay/internal/shared/biztime"
)

// Wallet is an internal bookkeeping account keyed by chain address. It is
// created lazily on first reference and mutated only through balance
// adjustments applied by settlements and direct sends. The balance is not a
// custodial number; it may go negative.
type Wallet struct {
	id          string
	address     string
	balance     vo.Amount
	connectedAt time.Time
}

// NewWallet registers a wallet for the given address with a zero balance.
func NewWallet(address string) (*Wallet, error) {
	if !vo.ValidAddress(address) {
		return nil, apperrors.NewValidationError("invalid wallet address", address)
	}
	return &Wallet{
		id:          uuid.NewString(),
		address:     address,
		balance:     vo.NewAmount(0),
		connectedAt: biztime.NowUTC(),
	}, nil
}

// Adjust applies a signed delta to the balance.
func (w *Wallet) Adjust(delta vo.Amount) {
	w.balance = w.balance.Add(delta)
}

func (w *Wallet) ID() string {
	return w.id
}

func (w *Wallet) Address() string {
	return w.address
}

func (w *Wallet) Balance() vo.Amount {
	return w.balance
}

func (w *Wallet) ConnectedAt() time.Time {
	return w.connectedAt
}

// ReconstructWallet creates a Wallet instance from persistence.
func ReconstructWallet(id, address string, balance vo.Amount, connectedAt time.Time) *Wallet {
	return &Wallet{
		id:          id,
		address:     address,
		balance:     balance,
		connectedAt: connectedAt,
	}
}
