package settlement

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tonpay/internal/domain/bill"
	"tonpay/internal/domain/invoice"
	vo "tonpay/internal/domain/shared/valueobjects"
	apperrors "tonpay/internal/shared/errors"
)

func TestCancelInvoice_Pending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	inv, err := invoice.NewInvoice("Consulting", "", vo.NewAmount(1000), addrA, nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, env.invoices.Create(ctx, inv))

	cancelled, err := env.engine.CancelInvoice(ctx, inv.ID(), addrA)
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusCancelled, cancelled.Status())

	got, err := env.invoices.GetByID(ctx, inv.ID())
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusCancelled, got.Status())
}

func TestCancelInvoice_NotIssuer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	inv, err := invoice.NewInvoice("Consulting", "", vo.NewAmount(1000), addrA, nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, env.invoices.Create(ctx, inv))

	_, err = env.engine.CancelInvoice(ctx, inv.ID(), addrB)
	assert.True(t, apperrors.IsUnauthorizedError(err), "got %v", err)
}

func TestCancelInvoice_AfterSettlement_Rejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	inv, err := invoice.NewInvoice("Consulting", "", vo.NewAmount(1000), addrA, nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, env.invoices.Create(ctx, inv))

	require.NoError(t, env.engine.SettleInvoice(ctx, inv.ID(), addrB, vo.NewAmount(1000)))

	_, err = env.engine.CancelInvoice(ctx, inv.ID(), addrA)
	assert.True(t, apperrors.IsInvalidStateError(err), "got %v", err)

	// The settled state survives: funds moved and the invoice stays paid.
	got, err := env.invoices.GetByID(ctx, inv.ID())
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusPaid, got.Status())
	assert.Equal(t, 1, env.transactionCount(t))
}

func TestCancelInvoice_ThenSettle_Rejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	inv, err := invoice.NewInvoice("Consulting", "", vo.NewAmount(1000), addrA, nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, env.invoices.Create(ctx, inv))

	_, err = env.engine.CancelInvoice(ctx, inv.ID(), addrA)
	require.NoError(t, err)

	err = env.engine.SettleInvoice(ctx, inv.ID(), addrB, vo.NewAmount(1000))
	assert.Error(t, err)
	assert.Equal(t, 0, env.transactionCount(t))
}

func TestCancelInvoice_RacingSettlement_NeverBoth(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Cancel and settle race on many invoices; whichever wins the lock,
	// the loser must observe the terminal state. Paid with one transfer or
	// cancelled with none, never a mix.
	for i := 0; i < 20; i++ {
		inv, err := invoice.NewInvoice("Racy", "", vo.NewAmount(100), addrA, nil, nil, nil)
		require.NoError(t, err)
		require.NoError(t, env.invoices.Create(ctx, inv))

		before := env.transactionCount(t)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			env.engine.SettleInvoice(ctx, inv.ID(), addrB, vo.NewAmount(100))
		}()
		go func() {
			defer wg.Done()
			env.engine.CancelInvoice(ctx, inv.ID(), addrA)
		}()
		wg.Wait()

		got, err := env.invoices.GetByID(ctx, inv.ID())
		require.NoError(t, err)
		transfers := env.transactionCount(t) - before
		switch got.Status() {
		case invoice.StatusPaid:
			assert.Equal(t, 1, transfers, "paid invoice must have exactly one transfer")
		case invoice.StatusCancelled:
			assert.Equal(t, 0, transfers, "cancelled invoice must have no transfer")
		default:
			t.Fatalf("invoice left in %s", got.Status())
		}
	}
}

func TestCancelBill_Active(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	b, err := bill.NewEqualBillSplit("Dinner", "", vo.NewAmount(200), addrA, []string{addrX, addrY})
	require.NoError(t, err)
	require.NoError(t, env.bills.Create(ctx, b))

	cancelled, err := env.engine.CancelBill(ctx, b.ID(), addrA)
	require.NoError(t, err)
	assert.Equal(t, bill.StatusCancelled, cancelled.Status())

	err = env.engine.SettleBillParticipant(ctx, b.ID(), addrX, vo.NewAmount(100))
	assert.Error(t, err)
	assert.Equal(t, 0, env.transactionCount(t))
}

func TestCancelBill_AfterSettled_Rejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	b, err := bill.NewEqualBillSplit("Dinner", "", vo.NewAmount(200), addrA, []string{addrX, addrY})
	require.NoError(t, err)
	require.NoError(t, env.bills.Create(ctx, b))

	require.NoError(t, env.engine.SettleBillParticipant(ctx, b.ID(), addrX, vo.NewAmount(100)))
	require.NoError(t, env.engine.SettleBillParticipant(ctx, b.ID(), addrY, vo.NewAmount(100)))

	_, err = env.engine.CancelBill(ctx, b.ID(), addrA)
	assert.True(t, apperrors.IsInvalidStateError(err), "got %v", err)

	got, err := env.bills.GetByID(ctx, b.ID())
	require.NoError(t, err)
	assert.Equal(t, bill.StatusSettled, got.Status())
	assert.Equal(t, 2, env.transactionCount(t))
}

func TestCancelBill_NotCreator(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	b, err := bill.NewEqualBillSplit("Dinner", "", vo.NewAmount(200), addrA, []string{addrX, addrY})
	require.NoError(t, err)
	require.NoError(t, env.bills.Create(ctx, b))

	_, err = env.engine.CancelBill(ctx, b.ID(), addrX)
	assert.True(t, apperrors.IsUnauthorizedError(err), "got %v", err)
}
