package memory

import (
	"context"

	"tonpay/internal/domain/ledger"
	vo "tonpay/internal/domain/shared/valueobjects"
	"tonpay/internal/shared/errors"
)

type WalletRepository struct {
	store *Store
}

// NewWalletRepository creates a wallet repository backed by the store.
func NewWalletRepository(store *Store) ledger.WalletRepository {
	return &WalletRepository{store: store}
}

func (r *WalletRepository) Create(ctx context.Context, wallet *ledger.Wallet) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, exists := r.store.wallets[wallet.Address()]; exists {
		return errors.NewValidationError("wallet already exists", wallet.Address())
	}
	r.store.wallets[wallet.Address()] = wallet
	return nil
}

func (r *WalletRepository) GetByAddress(ctx context.Context, address string) (*ledger.Wallet, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	w, ok := r.store.wallets[address]
	if !ok {
		return nil, errors.NewNotFoundError("wallet not found", address)
	}
	return w, nil
}

func (r *WalletRepository) Update(ctx context.Context, wallet *ledger.Wallet) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.wallets[wallet.Address()]; !ok {
		return errors.NewNotFoundError("wallet not found", wallet.Address())
	}
	r.store.wallets[wallet.Address()] = wallet
	return nil
}

func (r *WalletRepository) AdjustBalance(ctx context.Context, address string, delta vo.Amount) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	w, ok := r.store.wallets[address]
	if !ok {
		created, err := ledger.NewWallet(address)
		if err != nil {
			return err
		}
		r.store.wallets[address] = created
		w = created
	}
	w.Adjust(delta)
	return nil
}

func (r *WalletRepository) List(ctx context.Context) ([]*ledger.Wallet, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	out := make([]*ledger.Wallet, 0, len(r.store.wallets))
	for _, w := range r.store.wallets {
		out = append(out, w)
	}
	return out, nil
}

type TransactionRepository struct {
	store *Store
}

// NewTransactionRepository creates a ledger entry repository backed by the
// store.
func NewTransactionRepository(store *Store) ledger.TransactionRepository {
	return &TransactionRepository{store: store}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *ledger.Transaction) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, exists := r.store.transactionsByID[tx.ID()]; exists {
		return errors.NewValidationError("transaction already exists", tx.ID())
	}
	r.store.transactions = append(r.store.transactions, tx)
	r.store.transactionsByID[tx.ID()] = tx
	return nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*ledger.Transaction, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	tx, ok := r.store.transactionsByID[id]
	if !ok {
		return nil, errors.NewNotFoundError("transaction not found", id)
	}
	return tx, nil
}

func (r *TransactionRepository) Update(ctx context.Context, tx *ledger.Transaction) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.transactionsByID[tx.ID()]; !ok {
		return errors.NewNotFoundError("transaction not found", tx.ID())
	}
	r.store.transactionsByID[tx.ID()] = tx
	for i, existing := range r.store.transactions {
		if existing.ID() == tx.ID() {
			r.store.transactions[i] = tx
			break
		}
	}
	return nil
}

func (r *TransactionRepository) ListByAddress(ctx context.Context, address string) ([]*ledger.Transaction, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	var out []*ledger.Transaction
	for i := len(r.store.transactions) - 1; i >= 0; i-- {
		tx := r.store.transactions[i]
		if tx.FromAddress() == address || tx.ToAddress() == address {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *TransactionRepository) List(ctx context.Context) ([]*ledger.Transaction, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	out := make([]*ledger.Transaction, 0, len(r.store.transactions))
	for i := len(r.store.transactions) - 1; i >= 0; i-- {
		out = append(out, r.store.transactions[i])
	}
	return out, nil
}
