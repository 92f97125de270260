package merchant

import (
	"testing"
	"time"

	vo "tonpay/internal/domain/shared/valueobjects"
	apperrors "tonpay/internal/shared/errors"
)

const merchantAddr = "EQAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

func newTestPayment(t *testing.T, expiresAt *time.Time) *Payment {
	t.Helper()
	p, err := NewPayment("Coffee Shop", merchantAddr, vo.NewAmount(250_000_000), "order-42", "", expiresAt)
	if err != nil {
		t.Fatalf("NewPayment() error = %v, want nil", err)
	}
	return p
}

func TestNewPayment_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		merchant string
		address  string
		amount   int64
		orderID  string
	}{
		{"empty merchant name", "", merchantAddr, 100, "o1"},
		{"bad address", "Shop", "bad", 100, "o1"},
		{"zero amount", "Shop", merchantAddr, 0, "o1"},
		{"empty order id", "Shop", merchantAddr, 100, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPayment(tt.merchant, tt.address, vo.NewAmount(tt.amount), tt.orderID, "", nil)
			if !apperrors.IsValidationError(err) {
				t.Errorf("NewPayment() error = %v, want validation error", err)
			}
		})
	}
}

func TestPayment_ValidatePayment(t *testing.T) {
	past := time.Now().UTC().Add(-time.Second)

	t.Run("exact amount succeeds", func(t *testing.T) {
		p := newTestPayment(t, nil)
		if err := p.ValidatePayment(vo.NewAmount(250_000_000)); err != nil {
			t.Errorf("ValidatePayment() error = %v, want nil", err)
		}
	})

	t.Run("paid reports already settled", func(t *testing.T) {
		p := newTestPayment(t, nil)
		if err := p.MarkAsPaid(); err != nil {
			t.Fatalf("MarkAsPaid() error = %v", err)
		}
		err := p.ValidatePayment(vo.NewAmount(250_000_000))
		if !apperrors.IsAlreadySettledError(err) {
			t.Errorf("ValidatePayment() error = %v, want already settled", err)
		}
	})

	t.Run("expired stays pending", func(t *testing.T) {
		p := newTestPayment(t, &past)
		err := p.ValidatePayment(vo.NewAmount(250_000_000))
		if !apperrors.IsExpiredError(err) {
			t.Errorf("ValidatePayment() error = %v, want expired", err)
		}
		if p.Status() != StatusPending {
			t.Errorf("Status() = %v after failed validation, want pending", p.Status())
		}
	})

	t.Run("wrong amount", func(t *testing.T) {
		p := newTestPayment(t, nil)
		err := p.ValidatePayment(vo.NewAmount(999))
		if !apperrors.IsAmountMismatchError(err) {
			t.Errorf("ValidatePayment() error = %v, want amount mismatch", err)
		}
	})
}

func TestPayment_MarkAsPaid_Once(t *testing.T) {
	p := newTestPayment(t, nil)
	if err := p.MarkAsPaid(); err != nil {
		t.Fatalf("MarkAsPaid() error = %v, want nil", err)
	}
	if p.Status() != StatusPaid || p.PaidAt() == nil {
		t.Error("paid state not recorded")
	}
	if err := p.MarkAsPaid(); !apperrors.IsInvalidStateError(err) {
		t.Errorf("second MarkAsPaid() error = %v, want invalid state", err)
	}
}
