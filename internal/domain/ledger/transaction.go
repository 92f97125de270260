package ledger

import (
	"time"

	"github.com/google/uuid"

	vo "tonpay/internal/domain/shared/valueobjects"
	apperrors "tonpay/internal/shared/errors"
	"tonpay/internal/shared/biztime"
)

// TransactionKind tags a ledger entry with the operation that produced it.
type TransactionKind string

const (
	KindSend     TransactionKind = "send"
	KindSplit    TransactionKind = "split"
	KindInvoice  TransactionKind = "invoice"
	KindGift     TransactionKind = "gift"
	KindMerchant TransactionKind = "merchant"
)

func (k TransactionKind) IsValid() bool {
	switch k {
	case KindSend, KindSplit, KindInvoice, KindGift, KindMerchant:
		return true
	default:
		return false
	}
}

func (k TransactionKind) String() string {
	return string(k)
}

// TransactionStatus is the lifecycle of a ledger entry. Settlements record
// entries as confirmed directly; pending is only used for transfers that
// wait on an external broadcast.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusConfirmed TransactionStatus = "confirmed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusConfirmed, TransactionStatusFailed:
		return true
	default:
		return false
	}
}

func (s TransactionStatus) String() string {
	return string(s)
}

// Transaction is one append-only ledger entry. Every successful settlement
// creates exactly one. Once confirmed only the status/hash patch is allowed.
type Transaction struct {
	id           string
	fromAddress  string
	toAddress    string
	amount       vo.Amount
	kind         TransactionKind
	status       TransactionStatus
	description  string
	externalHash *string
	createdAt    time.Time
}

// NewTransaction creates a pending ledger entry for an externally broadcast
// transfer.
func NewTransaction(from, to string, amount vo.Amount, kind TransactionKind, description string) (*Transaction, error) {
	return newTransaction(from, to, amount, kind, TransactionStatusPending, description)
}

// NewConfirmedTransaction creates a confirmed ledger entry, the form every
// settlement records.
func NewConfirmedTransaction(from, to string, amount vo.Amount, kind TransactionKind, description string) (*Transaction, error) {
	return newTransaction(from, to, amount, kind, TransactionStatusConfirmed, description)
}

func newTransaction(from, to string, amount vo.Amount, kind TransactionKind, status TransactionStatus, description string) (*Transaction, error) {
	if !vo.ValidAddress(from) {
		return nil, apperrors.NewValidationError("invalid sender address", from)
	}
	if !vo.ValidAddress(to) {
		return nil, apperrors.NewValidationError("invalid recipient address", to)
	}
	if !amount.IsPositive() {
		return nil, apperrors.NewValidationError("transaction amount must be positive")
	}
	if !kind.IsValid() {
		return nil, apperrors.NewValidationError("invalid transaction kind", kind.String())
	}
	return &Transaction{
		id:          uuid.NewString(),
		fromAddress: from,
		toAddress:   to,
		amount:      amount,
		kind:        kind,
		status:      status,
		description: description,
		createdAt:   biztime.NowUTC(),
	}, nil
}

// Confirm patches a pending entry to confirmed, optionally attaching the
// external chain hash.
func (t *Transaction) Confirm(externalHash string) error {
	if t.status == TransactionStatusConfirmed {
		return nil
	}
	if t.status != TransactionStatusPending {
		return apperrors.NewInvalidStateError("cannot confirm transaction", t.status.String())
	}
	t.status = TransactionStatusConfirmed
	if externalHash != "" {
		t.externalHash = &externalHash
	}
	return nil
}

// Fail patches a pending entry to failed.
func (t *Transaction) Fail() error {
	if t.status == TransactionStatusFailed {
		return nil
	}
	if t.status != TransactionStatusPending {
		return apperrors.NewInvalidStateError("cannot fail transaction", t.status.String())
	}
	t.status = TransactionStatusFailed
	return nil
}

func (t *Transaction) ID() string {
	return t.id
}

func (t *Transaction) FromAddress() string {
	return t.fromAddress
}

func (t *Transaction) ToAddress() string {
	return t.toAddress
}

func (t *Transaction) Amount() vo.Amount {
	return t.amount
}

func (t *Transaction) Kind() TransactionKind {
	return t.kind
}

func (t *Transaction) Status() TransactionStatus {
	return t.status
}

func (t *Transaction) Description() string {
	return t.description
}

func (t *Transaction) ExternalHash() *string {
	return t.externalHash
}

func (t *Transaction) CreatedAt() time.Time {
	return t.createdAt
}

// ReconstructTransaction creates a Transaction instance from persistence.
func ReconstructTransaction(
	id string,
	fromAddress, toAddress string,
	amount vo.Amount,
	kind TransactionKind,
	status TransactionStatus,
	description string,
	externalHash *string,
	createdAt time.Time,
) *Transaction {
	return &Transaction{
		id:           id,
		fromAddress:  fromAddress,
		toAddress:    toAddress,
		amount:       amount,
		kind:         kind,
		status:       status,
		description:  description,
		externalHash: externalHash,
		createdAt:    createdAt,
	}
}
