// Package settlement implements the core of the system: validating a
// settlement attempt against an obligation's current state and, if valid,
// atomically transitioning the obligation and moving funds on the ledger.
// All four obligation kinds go through the same template: acquire the
// per-obligation lock, validate, commit the obligation and ledger writes as
// one transaction, release the lock, then notify.
package settlement

import (
	"context"
	"fmt"

	"tonpay/internal/domain/bill"
	"tonpay/internal/domain/gift"
	"tonpay/internal/domain/invoice"
	"tonpay/internal/domain/ledger"
	"tonpay/internal/domain/merchant"
	vo "tonpay/internal/domain/shared/valueobjects"
	apperrors "tonpay/internal/shared/errors"
	"tonpay/internal/shared/goroutine"
	"tonpay/internal/shared/lock"
	"tonpay/internal/shared/logger"
)

// Recorder observes settlement outcomes for monitoring. Implementations
// must be cheap and must not fail.
type Recorder interface {
	RecordSettlement(kind, outcome string)
}

type noopRecorder struct{}

func (noopRecorder) RecordSettlement(kind, outcome string) {}

// Engine orchestrates settlements. It owns no persistent state; obligations
// and the ledger belong to their repositories, and the engine only drives
// the transitions between them.
type Engine struct {
	invoiceRepo  invoice.Repository
	billRepo     bill.Repository
	giftRepo     gift.Repository
	merchantRepo merchant.Repository
	walletRepo   ledger.WalletRepository
	txRepo       ledger.TransactionRepository
	txRunner     TxRunner
	locks        *lock.KeyedMutex
	notifier     Notifier
	recorder     Recorder
	logger       logger.Interface
}

// NewEngine creates a settlement engine. Pass nil for notifier or recorder
// to disable them.
func NewEngine(
	invoiceRepo invoice.Repository,
	billRepo bill.Repository,
	giftRepo gift.Repository,
	merchantRepo merchant.Repository,
	walletRepo ledger.WalletRepository,
	txRepo ledger.TransactionRepository,
	txRunner TxRunner,
	notifier Notifier,
	recorder Recorder,
	log logger.Interface,
) *Engine {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Engine{
		invoiceRepo:  invoiceRepo,
		billRepo:     billRepo,
		giftRepo:     giftRepo,
		merchantRepo: merchantRepo,
		walletRepo:   walletRepo,
		txRepo:       txRepo,
		txRunner:     txRunner,
		locks:        lock.NewKeyedMutex(),
		notifier:     notifier,
		recorder:     recorder,
		logger:       log,
	}
}

// withObligation runs fn under the obligation's lock, inside one
// transaction. The lock key combines kind and id so ids from different
// obligation kinds never collide. Every state transition of an obligation,
// settlement or cancellation, goes through here and is therefore strictly
// ordered against every other transition of the same obligation.
func (e *Engine) withObligation(ctx context.Context, kind, obligationID string, fn func(ctx context.Context) error) error {
	unlock := e.locks.Lock(kind + ":" + obligationID)
	defer unlock()
	return e.txRunner.RunInTransaction(ctx, fn)
}

// settle runs one settlement attempt. op performs validation and all store
// writes; everything it does through the context commits or rolls back as
// one unit.
func (e *Engine) settle(ctx context.Context, kind, obligationID string, op func(ctx context.Context) ([]Event, error)) error {
	var events []Event
	err := e.withObligation(ctx, kind, obligationID, func(txCtx context.Context) error {
		evs, opErr := op(txCtx)
		if opErr != nil {
			return opErr
		}
		events = evs
		return nil
	})
	if err != nil {
		e.recorder.RecordSettlement(kind, outcomeOf(err))
		return err
	}
	e.recorder.RecordSettlement(kind, "success")

	// The notifier runs after the lock releases and off the request path;
	// its failure never reaches the caller.
	e.dispatch(events)
	return nil
}

func (e *Engine) dispatch(events []Event) {
	if len(events) == 0 {
		return
	}
	goroutine.SafeGo(e.logger, "settlement-notify", func() {
		for _, ev := range events {
			e.notifier.Notify(context.Background(), ev)
		}
	})
}

func outcomeOf(err error) string {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return string(appErr.Type)
	}
	return "internal_error"
}

// transfer appends the confirmed ledger entry and applies both balance legs.
// Unknown wallets are created with a zero starting balance, so the debit and
// credit are always both applied.
func (e *Engine) transfer(ctx context.Context, from, to string, amount vo.Amount, kind ledger.TransactionKind, description string) (*ledger.Transaction, error) {
	entry, err := ledger.NewConfirmedTransaction(from, to, amount, kind, description)
	if err != nil {
		return nil, err
	}
	if err := e.txRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}
	if err := e.walletRepo.AdjustBalance(ctx, from, amount.Neg()); err != nil {
		return nil, fmt.Errorf("failed to debit %s: %w", from, err)
	}
	if err := e.walletRepo.AdjustBalance(ctx, to, amount); err != nil {
		return nil, fmt.Errorf("failed to credit %s: %w", to, err)
	}
	return entry, nil
}

// SettleInvoice pays an invoice in full. The payment must match the invoice
// amount exactly; partial payment is never accepted.
func (e *Engine) SettleInvoice(ctx context.Context, invoiceID, payerAddress string, amount vo.Amount) error {
	return e.settle(ctx, "invoice", invoiceID, func(txCtx context.Context) ([]Event, error) {
		inv, err := e.invoiceRepo.GetByID(txCtx, invoiceID)
		if err != nil {
			return nil, err
		}
		if !vo.ValidAddress(payerAddress) {
			return nil, apperrors.NewValidationError("invalid payer address", payerAddress)
		}
		if err := inv.ValidatePayment(payerAddress, amount); err != nil {
			e.logger.Debugw("invoice settlement rejected",
				"invoice_id", invoiceID,
				"payer", payerAddress,
				"error", err)
			return nil, err
		}
		if err := inv.MarkAsPaid(); err != nil {
			return nil, err
		}
		if err := e.invoiceRepo.Update(txCtx, inv); err != nil {
			return nil, fmt.Errorf("failed to update invoice: %w", err)
		}
		entry, err := e.transfer(txCtx, payerAddress, inv.IssuerAddress(), amount, ledger.KindInvoice, "invoice payment: "+inv.Title())
		if err != nil {
			return nil, err
		}
		e.logger.Infow("invoice settled",
			"invoice_id", invoiceID,
			"payer", payerAddress,
			"amount", amount.String())
		return []Event{{
			Kind:          EventInvoicePaid,
			ObligationID:  invoiceID,
			PayerAddress:  payerAddress,
			PayeeAddress:  inv.IssuerAddress(),
			AmountNano:    amount.Nano(),
			TransactionID: entry.ID(),
		}}, nil
	})
}

// SettleBillParticipant pays one participant's share of a bill. When the
// last share is paid the bill transitions to settled inside the same
// critical section, so two concurrent last payers cannot both flip it.
func (e *Engine) SettleBillParticipant(ctx context.Context, billID, participantAddress string, amount vo.Amount) error {
	return e.settle(ctx, "bill", billID, func(txCtx context.Context) ([]Event, error) {
		b, err := e.billRepo.GetByID(txCtx, billID)
		if err != nil {
			return nil, err
		}
		if !vo.ValidAddress(participantAddress) {
			return nil, apperrors.NewValidationError("invalid participant address", participantAddress)
		}
		if err := b.ValidatePayment(participantAddress, amount); err != nil {
			e.logger.Debugw("bill settlement rejected",
				"bill_id", billID,
				"participant", participantAddress,
				"error", err)
			return nil, err
		}
		settled, err := b.MarkParticipantPaid(participantAddress)
		if err != nil {
			return nil, err
		}
		if err := e.billRepo.Update(txCtx, b); err != nil {
			return nil, fmt.Errorf("failed to update bill: %w", err)
		}
		entry, err := e.transfer(txCtx, participantAddress, b.CreatorAddress(), amount, ledger.KindSplit, "bill share: "+b.Title())
		if err != nil {
			return nil, err
		}
		e.logger.Infow("bill share settled",
			"bill_id", billID,
			"participant", participantAddress,
			"amount", amount.String(),
			"bill_settled", settled)
		events := []Event{{
			Kind:          EventBillParticipantPaid,
			ObligationID:  billID,
			PayerAddress:  participantAddress,
			PayeeAddress:  b.CreatorAddress(),
			AmountNano:    amount.Nano(),
			TransactionID: entry.ID(),
		}}
		if settled {
			events = append(events, Event{
				Kind:         EventBillSettled,
				ObligationID: billID,
				PayeeAddress: b.CreatorAddress(),
				AmountNano:   b.TotalAmount().Nano(),
			})
		}
		return events, nil
	})
}

// ClaimGift claims a gift by presenting its secret. N concurrent claimers
// with the correct secret serialize on the gift's lock; exactly one
// succeeds, the rest observe the claimed state.
func (e *Engine) ClaimGift(ctx context.Context, giftID, recipientAddress, secret string) error {
	return e.settle(ctx, "gift", giftID, func(txCtx context.Context) ([]Event, error) {
		g, err := e.giftRepo.GetByID(txCtx, giftID)
		if err != nil {
			return nil, err
		}
		if !vo.ValidAddress(recipientAddress) {
			return nil, apperrors.NewValidationError("invalid recipient address", recipientAddress)
		}
		if err := g.ValidateClaim(recipientAddress, secret); err != nil {
			e.logger.Debugw("gift claim rejected",
				"gift_id", giftID,
				"recipient", recipientAddress,
				"error", err)
			return nil, err
		}
		if err := g.MarkAsClaimed(); err != nil {
			return nil, err
		}
		if err := e.giftRepo.Update(txCtx, g); err != nil {
			return nil, fmt.Errorf("failed to update gift: %w", err)
		}
		entry, err := e.transfer(txCtx, g.SenderAddress(), recipientAddress, g.Amount(), ledger.KindGift, "gift claim")
		if err != nil {
			return nil, err
		}
		e.logger.Infow("gift claimed",
			"gift_id", giftID,
			"recipient", recipientAddress,
			"amount", g.Amount().String())
		return []Event{{
			Kind:          EventGiftClaimed,
			ObligationID:  giftID,
			PayerAddress:  g.SenderAddress(),
			PayeeAddress:  recipientAddress,
			AmountNano:    g.Amount().Nano(),
			TransactionID: entry.ID(),
		}}, nil
	})
}

// SettleMerchantPayment pays a merchant checkout request in full.
func (e *Engine) SettleMerchantPayment(ctx context.Context, paymentID, payerAddress string, amount vo.Amount) error {
	return e.settle(ctx, "merchant", paymentID, func(txCtx context.Context) ([]Event, error) {
		p, err := e.merchantRepo.GetByID(txCtx, paymentID)
		if err != nil {
			return nil, err
		}
		if !vo.ValidAddress(payerAddress) {
			return nil, apperrors.NewValidationError("invalid payer address", payerAddress)
		}
		if err := p.ValidatePayment(amount); err != nil {
			e.logger.Debugw("merchant settlement rejected",
				"payment_id", paymentID,
				"payer", payerAddress,
				"error", err)
			return nil, err
		}
		if err := p.MarkAsPaid(); err != nil {
			return nil, err
		}
		if err := e.merchantRepo.Update(txCtx, p); err != nil {
			return nil, fmt.Errorf("failed to update merchant payment: %w", err)
		}
		entry, err := e.transfer(txCtx, payerAddress, p.MerchantAddress(), amount, ledger.KindMerchant, "merchant payment: "+p.MerchantName())
		if err != nil {
			return nil, err
		}
		e.logger.Infow("merchant payment settled",
			"payment_id", paymentID,
			"payer", payerAddress,
			"order_id", p.OrderID(),
			"amount", amount.String())
		return []Event{{
			Kind:          EventMerchantPaid,
			ObligationID:  paymentID,
			PayerAddress:  payerAddress,
			PayeeAddress:  p.MerchantAddress(),
			AmountNano:    amount.Nano(),
			TransactionID: entry.ID(),
		}}, nil
	})
}
