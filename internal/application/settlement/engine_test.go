package settlement

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tonpay/internal/domain/bill"
	"tonpay/internal/domain/gift"
	"tonpay/internal/domain/invoice"
	"tonpay/internal/domain/ledger"
	"tonpay/internal/domain/merchant"
	vo "tonpay/internal/domain/shared/valueobjects"
	"tonpay/internal/infrastructure/repository/memory"
	apperrors "tonpay/internal/shared/errors"
	"tonpay/internal/shared/logger"
)

const (
	addrA = "EQAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	addrB = "UQBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB"
	addrX = "UQXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXX"
	addrY = "UQYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYY"
	addrZ = "UQZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZ"
)

// capturingNotifier records delivered events for assertions.
type capturingNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (n *capturingNotifier) Notify(ctx context.Context, event Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *capturingNotifier) kinds() []EventKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]EventKind, 0, len(n.events))
	for _, ev := range n.events {
		out = append(out, ev.Kind)
	}
	return out
}

type testEnv struct {
	engine   *Engine
	invoices invoice.Repository
	bills    bill.Repository
	gifts    gift.Repository
	payments merchant.Repository
	wallets  ledger.WalletRepository
	txs      ledger.TransactionRepository
	notifier *capturingNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	env := &testEnv{
		invoices: memory.NewInvoiceRepository(store),
		bills:    memory.NewBillRepository(store),
		gifts:    memory.NewGiftRepository(store),
		payments: memory.NewMerchantPaymentRepository(store),
		wallets:  memory.NewWalletRepository(store),
		txs:      memory.NewTransactionRepository(store),
		notifier: &capturingNotifier{},
	}
	env.engine = NewEngine(
		env.invoices, env.bills, env.gifts, env.payments,
		env.wallets, env.txs,
		store, env.notifier, nil, logger.NewLogger(),
	)
	return env
}

func (env *testEnv) balance(t *testing.T, address string) int64 {
	t.Helper()
	w, err := env.wallets.GetByAddress(context.Background(), address)
	require.NoError(t, err)
	return w.Balance().Nano()
}

func (env *testEnv) transactionCount(t *testing.T) int {
	t.Helper()
	txs, err := env.txs.List(context.Background())
	require.NoError(t, err)
	return len(txs)
}

func waitForEvents(t *testing.T, n *capturingNotifier, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(n.kinds()) >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("notifier received %d events, want %d", len(n.kinds()), want)
}

func TestSettleInvoice_Success(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	exp := time.Now().UTC().Add(time.Hour)
	inv, err := invoice.NewInvoice("Consulting", "", vo.NewAmount(1_500_000_000), addrA, nil, nil, &exp)
	require.NoError(t, err)
	require.NoError(t, env.invoices.Create(ctx, inv))

	require.NoError(t, env.engine.SettleInvoice(ctx, inv.ID(), addrB, vo.NewAmount(1_500_000_000)))

	got, err := env.invoices.GetByID(ctx, inv.ID())
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusPaid, got.Status())
	assert.NotNil(t, got.PaidAt())

	txs, err := env.txs.List(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, addrB, txs[0].FromAddress())
	assert.Equal(t, addrA, txs[0].ToAddress())
	assert.Equal(t, int64(1_500_000_000), txs[0].Amount().Nano())
	assert.Equal(t, ledger.KindInvoice, txs[0].Kind())
	assert.Equal(t, ledger.TransactionStatusConfirmed, txs[0].Status())

	// Both legs applied, wallets lazily created.
	assert.Equal(t, int64(-1_500_000_000), env.balance(t, addrB))
	assert.Equal(t, int64(1_500_000_000), env.balance(t, addrA))

	waitForEvents(t, env.notifier, 1)
	assert.Equal(t, []EventKind{EventInvoicePaid}, env.notifier.kinds())
}

func TestSettleInvoice_Idempotence(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	inv, err := invoice.NewInvoice("Consulting", "", vo.NewAmount(1000), addrA, nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, env.invoices.Create(ctx, inv))

	require.NoError(t, env.engine.SettleInvoice(ctx, inv.ID(), addrB, vo.NewAmount(1000)))

	err = env.engine.SettleInvoice(ctx, inv.ID(), addrB, vo.NewAmount(1000))
	assert.True(t, apperrors.IsAlreadySettledError(err), "second settlement: got %v", err)

	// No double transfer.
	assert.Equal(t, 1, env.transactionCount(t))
	assert.Equal(t, int64(-1000), env.balance(t, addrB))
}

func TestSettleInvoice_AmountMismatch_NoStateChange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	inv, err := invoice.NewInvoice("Consulting", "", vo.NewAmount(1000), addrA, nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, env.invoices.Create(ctx, inv))

	err = env.engine.SettleInvoice(ctx, inv.ID(), addrB, vo.NewAmount(999))
	assert.True(t, apperrors.IsAmountMismatchError(err), "got %v", err)

	got, err := env.invoices.GetByID(ctx, inv.ID())
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusPending, got.Status())
	assert.Equal(t, 0, env.transactionCount(t))
}

func TestSettleInvoice_NotFound(t *testing.T) {
	env := newTestEnv(t)
	err := env.engine.SettleInvoice(context.Background(), "inv_missing", addrB, vo.NewAmount(1))
	assert.True(t, apperrors.IsNotFoundError(err), "got %v", err)
}

func TestSettleInvoice_ConcurrentPayers_OneWins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	inv, err := invoice.NewInvoice("Consulting", "", vo.NewAmount(1000), addrA, nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, env.invoices.Create(ctx, inv))

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = env.engine.SettleInvoice(ctx, inv.ID(), addrB, vo.NewAmount(1000))
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.True(t, apperrors.IsAlreadySettledError(err), "loser error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, env.transactionCount(t))
	assert.Equal(t, int64(-1000), env.balance(t, addrB))
}

func TestSettleBillParticipant_AllSharesSettleBill(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	b, err := bill.NewEqualBillSplit("Dinner", "", vo.NewAmount(3_000_000_000), addrA, []string{addrX, addrY, addrZ})
	require.NoError(t, err)
	require.NoError(t, env.bills.Create(ctx, b))

	share := vo.NewAmount(1_000_000_000)

	require.NoError(t, env.engine.SettleBillParticipant(ctx, b.ID(), addrX, share))
	require.NoError(t, env.engine.SettleBillParticipant(ctx, b.ID(), addrY, share))

	got, err := env.bills.GetByID(ctx, b.ID())
	require.NoError(t, err)
	assert.Equal(t, bill.StatusActive, got.Status(), "bill settled with an unpaid participant")

	require.NoError(t, env.engine.SettleBillParticipant(ctx, b.ID(), addrZ, share))

	got, err = env.bills.GetByID(ctx, b.ID())
	require.NoError(t, err)
	assert.Equal(t, bill.StatusSettled, got.Status())

	assert.Equal(t, 3, env.transactionCount(t))
	assert.Equal(t, int64(3_000_000_000), env.balance(t, addrA))

	waitForEvents(t, env.notifier, 4)
	kinds := env.notifier.kinds()
	settledEvents := 0
	for _, k := range kinds {
		if k == EventBillSettled {
			settledEvents++
		}
	}
	assert.Equal(t, 1, settledEvents)
}

func TestSettleBillParticipant_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	b, err := bill.NewEqualBillSplit("Dinner", "", vo.NewAmount(200), addrA, []string{addrX, addrY})
	require.NoError(t, err)
	require.NoError(t, env.bills.Create(ctx, b))

	t.Run("non participant", func(t *testing.T) {
		err := env.engine.SettleBillParticipant(ctx, b.ID(), addrZ, vo.NewAmount(100))
		assert.True(t, apperrors.IsUnauthorizedError(err), "got %v", err)
	})

	t.Run("wrong share amount", func(t *testing.T) {
		err := env.engine.SettleBillParticipant(ctx, b.ID(), addrX, vo.NewAmount(50))
		assert.True(t, apperrors.IsAmountMismatchError(err), "got %v", err)
	})

	t.Run("double payment of a share", func(t *testing.T) {
		require.NoError(t, env.engine.SettleBillParticipant(ctx, b.ID(), addrX, vo.NewAmount(100)))
		err := env.engine.SettleBillParticipant(ctx, b.ID(), addrX, vo.NewAmount(100))
		assert.True(t, apperrors.IsAlreadySettledError(err), "got %v", err)
	})
}

func TestClaimGift_ConcurrentClaims_ExactlyOneSucceeds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	g, err := gift.NewGift(vo.NewAmount(500_000_000), addrA, nil, "s3cret", "", nil)
	require.NoError(t, err)
	require.NoError(t, env.gifts.Create(ctx, g))

	const n = 16
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = env.engine.ClaimGift(ctx, g.ID(), addrB, "s3cret")
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.True(t, apperrors.IsAlreadyClaimedError(err), "loser error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, env.transactionCount(t))
	assert.Equal(t, int64(500_000_000), env.balance(t, addrB))
	assert.Equal(t, int64(-500_000_000), env.balance(t, addrA))
}

func TestClaimGift_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("wrong secret", func(t *testing.T) {
		g, err := gift.NewGift(vo.NewAmount(100), addrA, nil, "s3cret", "", nil)
		require.NoError(t, err)
		require.NoError(t, env.gifts.Create(ctx, g))

		err = env.engine.ClaimGift(ctx, g.ID(), addrB, "guess")
		assert.True(t, apperrors.IsInvalidSecretError(err), "got %v", err)

		got, err := env.gifts.GetByID(ctx, g.ID())
		require.NoError(t, err)
		assert.False(t, got.IsClaimed())
	})

	t.Run("expired", func(t *testing.T) {
		past := time.Now().UTC().Add(-time.Minute)
		g, err := gift.NewGift(vo.NewAmount(100), addrA, nil, "s3cret", "", &past)
		require.NoError(t, err)
		require.NoError(t, env.gifts.Create(ctx, g))

		err = env.engine.ClaimGift(ctx, g.ID(), addrB, "s3cret")
		assert.True(t, apperrors.IsExpiredError(err), "got %v", err)
	})

	t.Run("fixed recipient", func(t *testing.T) {
		fixed := addrX
		g, err := gift.NewGift(vo.NewAmount(100), addrA, &fixed, "s3cret", "", nil)
		require.NoError(t, err)
		require.NoError(t, env.gifts.Create(ctx, g))

		err = env.engine.ClaimGift(ctx, g.ID(), addrB, "s3cret")
		assert.True(t, apperrors.IsUnauthorizedError(err), "got %v", err)
	})
}

func TestSettleMerchantPayment_Success(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := merchant.NewPayment("Coffee Shop", addrA, vo.NewAmount(250_000_000), "order-42", "", nil)
	require.NoError(t, err)
	require.NoError(t, env.payments.Create(ctx, p))

	require.NoError(t, env.engine.SettleMerchantPayment(ctx, p.ID(), addrB, vo.NewAmount(250_000_000)))

	got, err := env.payments.GetByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, merchant.StatusPaid, got.Status())
	assert.Equal(t, 1, env.transactionCount(t))
	assert.Equal(t, int64(250_000_000), env.balance(t, addrA))
}

func TestSettleMerchantPayment_Expired_StaysPending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	past := time.Now().UTC().Add(-time.Hour)
	p, err := merchant.NewPayment("Coffee Shop", addrA, vo.NewAmount(250_000_000), "order-43", "", &past)
	require.NoError(t, err)
	require.NoError(t, env.payments.Create(ctx, p))

	err = env.engine.SettleMerchantPayment(ctx, p.ID(), addrB, vo.NewAmount(250_000_000))
	assert.True(t, apperrors.IsExpiredError(err), "got %v", err)

	got, err := env.payments.GetByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, merchant.StatusPending, got.Status())
	assert.Equal(t, 0, env.transactionCount(t))
}

func TestSettleInvoice_MalformedPayer_NoStateChange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// No allowedPayer, so payment validation alone would accept any payer
	// string; the address check must reject it before the invoice moves.
	inv, err := invoice.NewInvoice("Consulting", "", vo.NewAmount(1000), addrA, nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, env.invoices.Create(ctx, inv))

	err = env.engine.SettleInvoice(ctx, inv.ID(), "not-a-ton-address", vo.NewAmount(1000))
	assert.True(t, apperrors.IsValidationError(err), "got %v", err)

	got, err := env.invoices.GetByID(ctx, inv.ID())
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusPending, got.Status())
	assert.Nil(t, got.PaidAt())
	assert.Equal(t, 0, env.transactionCount(t))

	// The invoice is still payable afterwards.
	require.NoError(t, env.engine.SettleInvoice(ctx, inv.ID(), addrB, vo.NewAmount(1000)))
	assert.Equal(t, 1, env.transactionCount(t))
}

func TestClaimGift_MalformedRecipient_StaysClaimable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	g, err := gift.NewGift(vo.NewAmount(100), addrA, nil, "s3cret", "", nil)
	require.NoError(t, err)
	require.NoError(t, env.gifts.Create(ctx, g))

	err = env.engine.ClaimGift(ctx, g.ID(), "nowhere", "s3cret")
	assert.True(t, apperrors.IsValidationError(err), "got %v", err)

	got, err := env.gifts.GetByID(ctx, g.ID())
	require.NoError(t, err)
	assert.False(t, got.IsClaimed())
	assert.Equal(t, 0, env.transactionCount(t))

	require.NoError(t, env.engine.ClaimGift(ctx, g.ID(), addrB, "s3cret"))
	assert.Equal(t, 1, env.transactionCount(t))
}

func TestSettleMerchantPayment_MalformedPayer_StaysPending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := merchant.NewPayment("Coffee Shop", addrA, vo.NewAmount(500), "order-50", "", nil)
	require.NoError(t, err)
	require.NoError(t, env.payments.Create(ctx, p))

	err = env.engine.SettleMerchantPayment(ctx, p.ID(), "", vo.NewAmount(500))
	assert.True(t, apperrors.IsValidationError(err), "got %v", err)

	got, err := env.payments.GetByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, merchant.StatusPending, got.Status())
	assert.Equal(t, 0, env.transactionCount(t))
}

func TestSettle_DifferentObligationsInParallel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 10; i++ {
		inv, err := invoice.NewInvoice("Batch", "", vo.NewAmount(100), addrA, nil, nil, nil)
		require.NoError(t, err)
		require.NoError(t, env.invoices.Create(ctx, inv))
		ids = append(ids, inv.ID())
	}

	var wg sync.WaitGroup
	errs := make([]error, len(ids))
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			errs[i] = env.engine.SettleInvoice(ctx, id, addrB, vo.NewAmount(100))
		}(i, id)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "invoice %d", i)
	}
	assert.Equal(t, len(ids), env.transactionCount(t))
	assert.Equal(t, int64(-100*int64(len(ids))), env.balance(t, addrB))
}
