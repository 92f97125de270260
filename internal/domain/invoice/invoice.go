// Package invoice holds the payment-request aggregate. An invoice is an
// obligation issued by one wallet that a payer settles with a single exact
// payment.
package invoice

import (
	"fmt"
	"time"

	vo "tonpay/internal/domain/shared/valueobjects"
	"tonpay/internal/shared/biztime"
	apperrors "tonpay/internal/shared/errors"
	"tonpay/internal/shared/id"
)

// Status represents the invoice lifecycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusExpired, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

// Invoice is a payment request with an exact amount and an optional
// designated payer. It settles at most once.
type Invoice struct {
	id            string
	title         string
	description   string
	amount        vo.Amount
	issuerAddress string
	allowedPayer  *string
	status        Status
	dueDate       *time.Time
	expiresAt     *time.Time
	paidAt        *time.Time
	createdAt     time.Time
}

// NewInvoice creates a pending invoice. allowedPayer nil means anyone may
// pay.
func NewInvoice(title, description string, amount vo.Amount, issuerAddress string, allowedPayer *string, dueDate, expiresAt *time.Time) (*Invoice, error) {
	if title == "" {
		return nil, apperrors.NewValidationError("invoice title is required")
	}
	if !amount.IsPositive() {
		return nil, apperrors.NewValidationError("invoice amount must be positive")
	}
	if !vo.ValidAddress(issuerAddress) {
		return nil, apperrors.NewValidationError("invalid issuer address", issuerAddress)
	}
	if allowedPayer != nil && !vo.ValidAddress(*allowedPayer) {
		return nil, apperrors.NewValidationError("invalid payer address", *allowedPayer)
	}
	return &Invoice{
		id:            id.NewInvoiceID(),
		title:         title,
		description:   description,
		amount:        amount,
		issuerAddress: issuerAddress,
		allowedPayer:  allowedPayer,
		status:        StatusPending,
		dueDate:       dueDate,
		expiresAt:     expiresAt,
		createdAt:     biztime.NowUTC(),
	}, nil
}

// ValidatePayment checks a settlement attempt against the invoice state.
// Checks run in a fixed order so a caller always sees the most specific
// failure first.
func (i *Invoice) ValidatePayment(payerAddress string, amount vo.Amount) error {
	if i.status != StatusPending {
		if i.status == StatusPaid {
			return apperrors.NewAlreadySettledError("invoice already paid")
		}
		return apperrors.NewInvalidStateError("invoice is not payable", i.status.String())
	}
	if biztime.IsExpired(i.expiresAt) {
		return apperrors.NewExpiredError("invoice expired")
	}
	if i.allowedPayer != nil && *i.allowedPayer != payerAddress {
		return apperrors.NewUnauthorizedError("invoice is restricted to a different payer")
	}
	if !amount.Equals(i.amount) {
		return apperrors.NewAmountMismatchError("payment amount does not match invoice amount",
			fmt.Sprintf("expected %s, got %s", i.amount, amount))
	}
	return nil
}

// MarkAsPaid transitions the invoice to paid. The caller must have run
// ValidatePayment under the obligation lock first.
func (i *Invoice) MarkAsPaid() error {
	if i.status != StatusPending {
		return apperrors.NewInvalidStateError("invoice is not pending", i.status.String())
	}
	now := biztime.NowUTC()
	i.status = StatusPaid
	i.paidAt = &now
	return nil
}

// Cancel marks a pending invoice as cancelled.
func (i *Invoice) Cancel() error {
	if i.status != StatusPending {
		return apperrors.NewInvalidStateError("only pending invoices can be cancelled", i.status.String())
	}
	i.status = StatusCancelled
	return nil
}

// IsExpired reports whether the expiry, if any, has passed.
func (i *Invoice) IsExpired() bool {
	return biztime.IsExpired(i.expiresAt)
}

func (i *Invoice) ID() string {
	return i.id
}

func (i *Invoice) Title() string {
	return i.title
}

func (i *Invoice) Description() string {
	return i.description
}

func (i *Invoice) Amount() vo.Amount {
	return i.amount
}

func (i *Invoice) IssuerAddress() string {
	return i.issuerAddress
}

func (i *Invoice) AllowedPayer() *string {
	return i.allowedPayer
}

func (i *Invoice) Status() Status {
	return i.status
}

func (i *Invoice) DueDate() *time.Time {
	return i.dueDate
}

func (i *Invoice) ExpiresAt() *time.Time {
	return i.expiresAt
}

func (i *Invoice) PaidAt() *time.Time {
	return i.paidAt
}

func (i *Invoice) CreatedAt() time.Time {
	return i.createdAt
}

// ReconstructInvoice creates an Invoice instance from persistence.
func ReconstructInvoice(
	invoiceID string,
	title, description string,
	amount vo.Amount,
	issuerAddress string,
	allowedPayer *string,
	status Status,
	dueDate, expiresAt, paidAt *time.Time,
	createdAt time.Time,
) *Invoice {
	return &Invoice{
		id:            invoiceID,
		title:         title,
		description:   description,
		amount:        amount,
		issuerAddress: issuerAddress,
		allowedPayer:  allowedPayer,
		status:        status,
		dueDate:       dueDate,
		expiresAt:     expiresAt,
		paidAt:        paidAt,
		createdAt:     createdAt,
	}
}
