// Package memory provides an in-process implementation of every repository,
// suitable for tests and single-node deployments without a database. All
// state lives behind one store-wide lock; RunInTransaction holds it for the
// whole callback so readers never observe a half-applied settlement.
package memory

import (
	"context"
	"sync"

	"tonpay/internal/domain/bill"
	"tonpay/internal/domain/gift"
	"tonpay/internal/domain/invoice"
	"tonpay/internal/domain/ledger"
	"tonpay/internal/domain/merchant"
)

type txMarker struct{}

// Store holds all records. Zero value is not usable; call NewStore.
type Store struct {
	mu sync.RWMutex

	wallets          map[string]*ledger.Wallet // keyed by address
	transactions     []*ledger.Transaction     // append order
	transactionsByID map[string]*ledger.Transaction
	invoices         map[string]*invoice.Invoice
	bills            map[string]*bill.BillSplit
	gifts            map[string]*gift.Gift
	merchantPayments map[string]*merchant.Payment
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		wallets:          make(map[string]*ledger.Wallet),
		transactionsByID: make(map[string]*ledger.Transaction),
		invoices:         make(map[string]*invoice.Invoice),
		bills:            make(map[string]*bill.BillSplit),
		gifts:            make(map[string]*gift.Gift),
		merchantPayments: make(map[string]*merchant.Payment),
	}
}

// RunInTransaction executes fn while holding the store lock exclusively.
// The store state is snapshotted before fn runs and restored if fn returns
// an error, so a failed callback leaves no writes behind even when it
// mutated aggregates in place before failing. Repository methods detect the
// transactional context and skip their own locking.
func (s *Store) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txMarker{}, struct{}{})); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func inTx(ctx context.Context) bool {
	return ctx.Value(txMarker{}) != nil
}

// rlock takes the read lock unless the caller already holds the store lock
// through RunInTransaction. Returns the matching unlock.
func (s *Store) rlock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) lock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type storeState struct {
	wallets          map[string]*ledger.Wallet
	transactions     []*ledger.Transaction
	transactionsByID map[string]*ledger.Transaction
	invoices         map[string]*invoice.Invoice
	bills            map[string]*bill.BillSplit
	gifts            map[string]*gift.Gift
	merchantPayments map[string]*merchant.Payment
}

// snapshot deep-copies the mutable aggregates. Repositories hand out the
// stored pointers, so callers mutate aggregates in place; cloning through
// the Reconstruct constructors preserves the pre-transaction values.
// Ledger entries are immutable once created, copying the slice and index
// is enough to undo appends. Caller must hold the write lock.
func (s *Store) snapshot() storeState {
	wallets := make(map[string]*ledger.Wallet, len(s.wallets))
	for addr, w := range s.wallets {
		wallets[addr] = cloneWallet(w)
	}
	invoices := make(map[string]*invoice.Invoice, len(s.invoices))
	for id, inv := range s.invoices {
		invoices[id] = cloneInvoice(inv)
	}
	bills := make(map[string]*bill.BillSplit, len(s.bills))
	for id, b := range s.bills {
		bills[id] = cloneBill(b)
	}
	gifts := make(map[string]*gift.Gift, len(s.gifts))
	for id, g := range s.gifts {
		gifts[id] = cloneGift(g)
	}
	payments := make(map[string]*merchant.Payment, len(s.merchantPayments))
	for id, p := range s.merchantPayments {
		payments[id] = clonePayment(p)
	}
	txs := make([]*ledger.Transaction, len(s.transactions))
	copy(txs, s.transactions)
	txsByID := make(map[string]*ledger.Transaction, len(s.transactionsByID))
	for id, tx := range s.transactionsByID {
		txsByID[id] = tx
	}
	return storeState{
		wallets:          wallets,
		transactions:     txs,
		transactionsByID: txsByID,
		invoices:         invoices,
		bills:            bills,
		gifts:            gifts,
		merchantPayments: payments,
	}
}

func (s *Store) restore(snap storeState) {
	s.wallets = snap.wallets
	s.transactions = snap.transactions
	s.transactionsByID = snap.transactionsByID
	s.invoices = snap.invoices
	s.bills = snap.bills
	s.gifts = snap.gifts
	s.merchantPayments = snap.merchantPayments
}

func cloneWallet(w *ledger.Wallet) *ledger.Wallet {
	return ledger.ReconstructWallet(w.ID(), w.Address(), w.Balance(), w.ConnectedAt())
}

func cloneInvoice(inv *invoice.Invoice) *invoice.Invoice {
	return invoice.ReconstructInvoice(
		inv.ID(),
		inv.Title(),
		inv.Description(),
		inv.Amount(),
		inv.IssuerAddress(),
		inv.AllowedPayer(),
		inv.Status(),
		inv.DueDate(),
		inv.ExpiresAt(),
		inv.PaidAt(),
		inv.CreatedAt(),
	)
}

func cloneBill(b *bill.BillSplit) *bill.BillSplit {
	participants := make([]*bill.Participant, 0, len(b.Participants()))
	for _, p := range b.Participants() {
		participants = append(participants, bill.ReconstructParticipant(
			p.ID(),
			p.BillID(),
			p.Address(),
			p.Share(),
			p.Paid(),
			p.PaidAt(),
		))
	}
	return bill.ReconstructBillSplit(
		b.ID(),
		b.Title(),
		b.Description(),
		b.TotalAmount(),
		b.CreatorAddress(),
		b.Status(),
		participants,
		b.CreatedAt(),
	)
}

func cloneGift(g *gift.Gift) *gift.Gift {
	return gift.ReconstructGift(
		g.ID(),
		g.Amount(),
		g.SenderAddress(),
		g.RecipientAddress(),
		g.SecretHash(),
		g.Description(),
		g.IsClaimed(),
		g.ClaimedAt(),
		g.ExpiresAt(),
		g.CreatedAt(),
	)
}

func clonePayment(p *merchant.Payment) *merchant.Payment {
	return merchant.ReconstructPayment(
		p.ID(),
		p.MerchantName(),
		p.MerchantAddress(),
		p.Amount(),
		p.OrderID(),
		p.Description(),
		p.Status(),
		p.ExpiresAt(),
		p.PaidAt(),
		p.CreatedAt(),
	)
}
