package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tonpay/internal/domain/invoice"
	"tonpay/internal/domain/ledger"
	vo "tonpay/internal/domain/shared/valueobjects"
)

const (
	testAddrA = "EQAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	testAddrB = "UQBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB"
)

func TestRunInTransaction_CommitsOnSuccess(t *testing.T) {
	store := NewStore()
	wallets := NewWalletRepository(store)
	ctx := context.Background()

	err := store.RunInTransaction(ctx, func(txCtx context.Context) error {
		return wallets.AdjustBalance(txCtx, testAddrA, vo.NewAmount(500))
	})
	require.NoError(t, err)

	w, err := wallets.GetByAddress(ctx, testAddrA)
	require.NoError(t, err)
	assert.Equal(t, int64(500), w.Balance().Nano())
}

func TestRunInTransaction_RollsBackAllWrites(t *testing.T) {
	store := NewStore()
	wallets := NewWalletRepository(store)
	invoices := NewInvoiceRepository(store)
	txs := NewTransactionRepository(store)
	ctx := context.Background()

	inv, err := invoice.NewInvoice("Consulting", "", vo.NewAmount(1000), testAddrA, nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, invoices.Create(ctx, inv))

	boom := errors.New("transfer failed")
	err = store.RunInTransaction(ctx, func(txCtx context.Context) error {
		// Mutate the stored aggregate in place, persist it, append a
		// ledger entry, move a balance. All of it must vanish on error.
		cur, err := invoices.GetByID(txCtx, inv.ID())
		if err != nil {
			return err
		}
		if err := cur.MarkAsPaid(); err != nil {
			return err
		}
		if err := invoices.Update(txCtx, cur); err != nil {
			return err
		}
		entry, err := ledger.NewConfirmedTransaction(testAddrB, testAddrA, vo.NewAmount(1000), ledger.KindInvoice, "x")
		if err != nil {
			return err
		}
		if err := txs.Create(txCtx, entry); err != nil {
			return err
		}
		if err := wallets.AdjustBalance(txCtx, testAddrA, vo.NewAmount(1000)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := invoices.GetByID(ctx, inv.ID())
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusPending, got.Status())
	assert.Nil(t, got.PaidAt())

	all, err := txs.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = wallets.GetByAddress(ctx, testAddrA)
	assert.Error(t, err, "wallet created inside the failed transaction must not survive")
}

func TestRunInTransaction_RollbackRestoresPriorValues(t *testing.T) {
	store := NewStore()
	wallets := NewWalletRepository(store)
	ctx := context.Background()

	require.NoError(t, wallets.AdjustBalance(ctx, testAddrA, vo.NewAmount(300)))

	boom := errors.New("late failure")
	err := store.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := wallets.AdjustBalance(txCtx, testAddrA, vo.NewAmount(-200)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	w, err := wallets.GetByAddress(ctx, testAddrA)
	require.NoError(t, err)
	assert.Equal(t, int64(300), w.Balance().Nano())
}
