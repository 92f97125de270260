// Package merchant holds the merchant-payment aggregate: a checkout request
// correlated to an external order that a customer settles with one exact
// payment.
package merchant

import (
	"fmt"
	"time"

	vo "tonpay/internal/domain/shared/valueobjects"
	"tonpay/internal/shared/biztime"
	apperrors "tonpay/internal/shared/errors"
	"tonpay/internal/shared/id"
)

// Status represents the merchant payment lifecycle.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

// Payment is a checkout obligation issued by a merchant. It settles at most
// once and carries the merchant's order id for correlation.
type Payment struct {
	id              string
	merchantName    string
	merchantAddress string
	amount          vo.Amount
	orderID         string
	description     string
	status          Status
	expiresAt       *time.Time
	paidAt          *time.Time
	createdAt       time.Time
}

// NewPayment creates a pending merchant payment.
func NewPayment(merchantName, merchantAddress string, amount vo.Amount, orderID, description string, expiresAt *time.Time) (*Payment, error) {
	if merchantName == "" {
		return nil, apperrors.NewValidationError("merchant name is required")
	}
	if !vo.ValidAddress(merchantAddress) {
		return nil, apperrors.NewValidationError("invalid merchant address", merchantAddress)
	}
	if !amount.IsPositive() {
		return nil, apperrors.NewValidationError("payment amount must be positive")
	}
	if orderID == "" {
		return nil, apperrors.NewValidationError("order id is required")
	}
	return &Payment{
		id:              id.NewMerchantPaymentID(),
		merchantName:    merchantName,
		merchantAddress: merchantAddress,
		amount:          amount,
		orderID:         orderID,
		description:     description,
		status:          StatusPending,
		expiresAt:       expiresAt,
		createdAt:       biztime.NowUTC(),
	}, nil
}

// ValidatePayment checks a settlement attempt against the payment state.
// Checks run in a fixed order so a caller always sees the most specific
// failure first.
func (p *Payment) ValidatePayment(amount vo.Amount) error {
	if p.status != StatusPending {
		if p.status == StatusPaid {
			return apperrors.NewAlreadySettledError("merchant payment already paid")
		}
		return apperrors.NewInvalidStateError("merchant payment is not payable", p.status.String())
	}
	if biztime.IsExpired(p.expiresAt) {
		return apperrors.NewExpiredError("merchant payment expired")
	}
	if !amount.Equals(p.amount) {
		return apperrors.NewAmountMismatchError("payment amount does not match requested amount",
			fmt.Sprintf("expected %s, got %s", p.amount, amount))
	}
	return nil
}

// MarkAsPaid transitions the payment to paid. The caller must have run
// ValidatePayment under the obligation lock first.
func (p *Payment) MarkAsPaid() error {
	if p.status != StatusPending {
		return apperrors.NewInvalidStateError("merchant payment is not pending", p.status.String())
	}
	now := biztime.NowUTC()
	p.status = StatusPaid
	p.paidAt = &now
	return nil
}

// IsExpired reports whether the expiry, if any, has passed.
func (p *Payment) IsExpired() bool {
	return biztime.IsExpired(p.expiresAt)
}

func (p *Payment) ID() string {
	return p.id
}

func (p *Payment) MerchantName() string {
	return p.merchantName
}

func (p *Payment) MerchantAddress() string {
	return p.merchantAddress
}

func (p *Payment) Amount() vo.Amount {
	return p.amount
}

func (p *Payment) OrderID() string {
	return p.orderID
}

func (p *Payment) Description() string {
	return p.description
}

func (p *Payment) Status() Status {
	return p.status
}

func (p *Payment) ExpiresAt() *time.Time {
	return p.expiresAt
}

func (p *Payment) PaidAt() *time.Time {
	return p.paidAt
}

func (p *Payment) CreatedAt() time.Time {
	return p.createdAt
}

// ReconstructPayment creates a Payment instance from persistence.
func ReconstructPayment(
	paymentID string,
	merchantName, merchantAddress string,
	amount vo.Amount,
	orderID, description string,
	status Status,
	expiresAt, paidAt *time.Time,
	createdAt time.Time,
) *Payment {
	return &Payment{
		id:              paymentID,
		merchantName:    merchantName,
		merchantAddress: merchantAddress,
		amount:          amount,
		orderID:         orderID,
		description:     description,
		status:          status,
		expiresAt:       expiresAt,
		paidAt:          paidAt,
		createdAt:       createdAt,
	}
}
