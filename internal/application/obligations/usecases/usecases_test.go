package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tonpay/internal/application/settlement"
	"tonpay/internal/domain/gift"
	"tonpay/internal/infrastructure/repository/memory"
	apperrors "tonpay/internal/shared/errors"
	"tonpay/internal/shared/logger"
)

const (
	creatorAddr = "EQAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	aliceAddr   = "EQBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB"
	bobAddr     = "UQCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCC"
)

type fixtures struct {
	store         *memory.Store
	createInvoice *CreateInvoiceUseCase
	createBill    *CreateBillSplitUseCase
	createGift    *CreateGiftUseCase
	createPayment *CreateMerchantPaymentUseCase
	get           *GetObligationsUseCase
	cancel        *CancelObligationUseCase
	giftRepo      gift.Repository
}

func newFixtures() *fixtures {
	store := memory.NewStore()
	log := logger.NewLogger()
	invoiceRepo := memory.NewInvoiceRepository(store)
	billRepo := memory.NewBillRepository(store)
	giftRepo := memory.NewGiftRepository(store)
	merchantRepo := memory.NewMerchantPaymentRepository(store)
	engine := settlement.NewEngine(
		invoiceRepo,
		billRepo,
		giftRepo,
		merchantRepo,
		memory.NewWalletRepository(store),
		memory.NewTransactionRepository(store),
		store,
		nil,
		nil,
		log,
	)

	return &fixtures{
		store:         store,
		createInvoice: NewCreateInvoiceUseCase(invoiceRepo, log),
		createBill:    NewCreateBillSplitUseCase(billRepo, log),
		createGift:    NewCreateGiftUseCase(giftRepo, log),
		createPayment: NewCreateMerchantPaymentUseCase(merchantRepo, log),
		get:           NewGetObligationsUseCase(invoiceRepo, billRepo, giftRepo, merchantRepo),
		cancel:        NewCancelObligationUseCase(engine, log),
		giftRepo:      giftRepo,
	}
}

func TestCreateInvoice_PersistsAndLists(t *testing.T) {
	f := newFixtures()
	ctx := context.Background()

	result, err := f.createInvoice.Execute(ctx, CreateInvoiceCommand{
		Title:         "Design work",
		AmountNano:    5_000_000_000,
		IssuerAddress: creatorAddr,
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", result.Status)
	assert.Contains(t, result.ID, "inv_")

	fetched, err := f.get.GetInvoice(ctx, result.ID)
	require.NoError(t, err)
	assert.Equal(t, result.ID, fetched.ID)
	assert.Equal(t, int64(5_000_000_000), fetched.AmountNano)

	listed, err := f.get.ListInvoicesByIssuer(ctx, creatorAddr)
	require.NoError(t, err)
	require.Len(t, listed, 1)
}

func TestCreateInvoice_RejectsInvalidInput(t *testing.T) {
	f := newFixtures()

	_, err := f.createInvoice.Execute(context.Background(), CreateInvoiceCommand{
		Title:         "",
		AmountNano:    100,
		IssuerAddress: creatorAddr,
	})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestCreateBillSplit_EqualSplit(t *testing.T) {
	f := newFixtures()

	result, err := f.createBill.Execute(context.Background(), CreateBillSplitCommand{
		Title:           "Dinner",
		TotalAmountNano: 3_000_000_000,
		CreatorAddress:  creatorAddr,
		Participants:    []string{creatorAddr, aliceAddr, bobAddr},
	})
	require.NoError(t, err)
	assert.Equal(t, "active", result.Status)
	require.Len(t, result.Participants, 3)
	for _, p := range result.Participants {
		assert.Equal(t, int64(1_000_000_000), p.ShareNano)
		assert.False(t, p.Paid)
	}
}

func TestCreateBillSplit_ExplicitSharesMustSumToTotal(t *testing.T) {
	f := newFixtures()

	_, err := f.createBill.Execute(context.Background(), CreateBillSplitCommand{
		Title:           "Dinner",
		TotalAmountNano: 3_000_000_000,
		CreatorAddress:  creatorAddr,
		Shares: []BillShareInput{
			{Address: aliceAddr, ShareNano: 1_000_000_000},
			{Address: bobAddr, ShareNano: 1_000_000_000},
		},
	})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestCreateGift_StoresOnlyDigest(t *testing.T) {
	f := newFixtures()
	ctx := context.Background()

	result, err := f.createGift.Execute(ctx, CreateGiftCommand{
		AmountNano:    2_000_000_000,
		SenderAddress: creatorAddr,
		Secret:        "birthday-surprise",
	})
	require.NoError(t, err)
	assert.False(t, result.IsClaimed)

	stored, err := f.giftRepo.GetByID(ctx, result.ID)
	require.NoError(t, err)
	assert.Equal(t, gift.HashSecret("birthday-surprise"), stored.SecretHash())
	assert.NotContains(t, stored.SecretHash(), "birthday")
}

func TestCreateMerchantPayment_LookupByOrder(t *testing.T) {
	f := newFixtures()
	ctx := context.Background()

	expires := time.Now().UTC().Add(time.Hour)
	result, err := f.createPayment.Execute(ctx, CreateMerchantPaymentCommand{
		MerchantName:    "Coffee Shop",
		MerchantAddress: creatorAddr,
		AmountNano:      750_000_000,
		OrderID:         "order-42",
		ExpiresAt:       &expires,
	})
	require.NoError(t, err)

	byOrder, err := f.get.GetMerchantPaymentByOrder(ctx, "order-42")
	require.NoError(t, err)
	assert.Equal(t, result.ID, byOrder.ID)
}

func TestCancelInvoice_IssuerOnly(t *testing.T) {
	f := newFixtures()
	ctx := context.Background()

	created, err := f.createInvoice.Execute(ctx, CreateInvoiceCommand{
		Title:         "Design work",
		AmountNano:    100,
		IssuerAddress: creatorAddr,
	})
	require.NoError(t, err)

	_, err = f.cancel.CancelInvoice(ctx, created.ID, aliceAddr)
	assert.True(t, apperrors.IsUnauthorizedError(err))

	cancelled, err := f.cancel.CancelInvoice(ctx, created.ID, creatorAddr)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
}

func TestCancelBill_CreatorOnly(t *testing.T) {
	f := newFixtures()
	ctx := context.Background()

	created, err := f.createBill.Execute(ctx, CreateBillSplitCommand{
		Title:           "Dinner",
		TotalAmountNano: 2_000_000_000,
		CreatorAddress:  creatorAddr,
		Participants:    []string{aliceAddr, bobAddr},
	})
	require.NoError(t, err)

	_, err = f.cancel.CancelBill(ctx, created.ID, bobAddr)
	assert.True(t, apperrors.IsUnauthorizedError(err))

	cancelled, err := f.cancel.CancelBill(ctx, created.ID, creatorAddr)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
}
