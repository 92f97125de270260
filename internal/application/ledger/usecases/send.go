package usecases

import (
	"context"
	"fmt"

	"tonpay/internal/application/settlement"
	"tonpay/internal/domain/ledger"
	vo "tonpay/internal/domain/shared/valueobjects"
	"tonpay/internal/shared/biztime"
	"tonpay/internal/shared/goroutine"
	"tonpay/internal/shared/logger"
)

// SendCommand represents the input for a direct wallet-to-wallet transfer.
type SendCommand struct {
	FromAddress string
	ToAddress   string
	AmountNano  int64
	Description string
}

// TransactionResult is the transport representation of a ledger entry.
type TransactionResult struct {
	ID           string  `json:"id"`
	FromAddress  string  `json:"from_address"`
	ToAddress    string  `json:"to_address"`
	AmountNano   int64   `json:"amount_nano"`
	Kind         string  `json:"kind"`
	Status       string  `json:"status"`
	Description  string  `json:"description,omitempty"`
	ExternalHash *string `json:"external_hash,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func toTransactionResult(tx *ledger.Transaction) *TransactionResult {
	return &TransactionResult{
		ID:           tx.ID(),
		FromAddress:  tx.FromAddress(),
		ToAddress:    tx.ToAddress(),
		AmountNano:   tx.Amount().Nano(),
		Kind:         tx.Kind().String(),
		Status:       tx.Status().String(),
		Description:  tx.Description(),
		ExternalHash: tx.ExternalHash(),
		CreatedAt:    biztime.FormatRFC3339(tx.CreatedAt()),
	}
}

// SendUseCase performs a direct transfer between two wallets: one confirmed
// ledger entry plus both balance legs, committed as one unit. No obligation
// is involved, so no obligation lock is taken.
type SendUseCase struct {
	walletRepo ledger.WalletRepository
	txRepo     ledger.TransactionRepository
	txRunner   settlement.TxRunner
	notifier   settlement.Notifier
	logger     logger.Interface
}

// NewSendUseCase creates a new SendUseCase.
func NewSendUseCase(
	walletRepo ledger.WalletRepository,
	txRepo ledger.TransactionRepository,
	txRunner settlement.TxRunner,
	notifier settlement.Notifier,
	logger logger.Interface,
) *SendUseCase {
	if notifier == nil {
		notifier = settlement.NoopNotifier{}
	}
	return &SendUseCase{
		walletRepo: walletRepo,
		txRepo:     txRepo,
		txRunner:   txRunner,
		notifier:   notifier,
		logger:     logger,
	}
}

// Execute records the transfer.
func (uc *SendUseCase) Execute(ctx context.Context, cmd SendCommand) (*TransactionResult, error) {
	amount := vo.NewAmount(cmd.AmountNano)
	entry, err := ledger.NewConfirmedTransaction(cmd.FromAddress, cmd.ToAddress, amount, ledger.KindSend, cmd.Description)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.txRepo.Create(txCtx, entry); err != nil {
			return fmt.Errorf("failed to record transaction: %w", err)
		}
		if err := uc.walletRepo.AdjustBalance(txCtx, cmd.FromAddress, amount.Neg()); err != nil {
			return fmt.Errorf("failed to debit %s: %w", cmd.FromAddress, err)
		}
		if err := uc.walletRepo.AdjustBalance(txCtx, cmd.ToAddress, amount); err != nil {
			return fmt.Errorf("failed to credit %s: %w", cmd.ToAddress, err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("direct transfer failed", "from", cmd.FromAddress, "to", cmd.ToAddress, "error", err)
		return nil, err
	}

	uc.logger.Infow("direct transfer recorded",
		"transaction_id", entry.ID(),
		"from", cmd.FromAddress,
		"to", cmd.ToAddress,
		"amount", amount.String())

	goroutine.SafeGo(uc.logger, "send-notify", func() {
		uc.notifier.Notify(context.Background(), settlement.Event{
			Kind:          settlement.EventTransferSent,
			PayerAddress:  cmd.FromAddress,
			PayeeAddress:  cmd.ToAddress,
			AmountNano:    amount.Nano(),
			TransactionID: entry.ID(),
		})
	})

	return toTransactionResult(entry), nil
}

// ListTransactionsUseCase provides read access to the audit trail.
type ListTransactionsUseCase struct {
	txRepo ledger.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase.
func NewListTransactionsUseCase(txRepo ledger.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{txRepo: txRepo}
}

// ByAddress returns entries where the address is sender or recipient,
// newest first.
func (uc *ListTransactionsUseCase) ByAddress(ctx context.Context, address string) ([]*TransactionResult, error) {
	txs, err := uc.txRepo.ListByAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	out := make([]*TransactionResult, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResult(tx))
	}
	return out, nil
}

// GetByID returns one entry.
func (uc *ListTransactionsUseCase) GetByID(ctx context.Context, id string) (*TransactionResult, error) {
	tx, err := uc.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTransactionResult(tx), nil
}
