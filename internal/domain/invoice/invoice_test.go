package invoice

import (
	"testing"
	"time"

	vo "tonpay/internal/domain/shared/valueobjects"
	apperrors "tonpay/internal/shared/errors"
)

const (
	issuerAddr = "EQAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	payerAddr  = "UQBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB"
	otherAddr  = "EQCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCC"
)

func newTestInvoice(t *testing.T, allowedPayer *string, expiresAt *time.Time) *Invoice {
	t.Helper()
	inv, err := NewInvoice("Lunch", "", vo.NewAmount(1_500_000_000), issuerAddr, allowedPayer, nil, expiresAt)
	if err != nil {
		t.Fatalf("NewInvoice() error = %v, want nil", err)
	}
	return inv
}

func TestNewInvoice_Invalid(t *testing.T) {
	badPayer := "not-an-address"
	tests := []struct {
		name         string
		title        string
		amount       int64
		issuer       string
		allowedPayer *string
	}{
		{"empty title", "", 100, issuerAddr, nil},
		{"zero amount", "Lunch", 0, issuerAddr, nil},
		{"negative amount", "Lunch", -5, issuerAddr, nil},
		{"bad issuer", "Lunch", 100, "xyz", nil},
		{"bad allowed payer", "Lunch", 100, issuerAddr, &badPayer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInvoice(tt.title, "", vo.NewAmount(tt.amount), tt.issuer, tt.allowedPayer, nil, nil)
			if !apperrors.IsValidationError(err) {
				t.Errorf("NewInvoice() error = %v, want validation error", err)
			}
		})
	}
}

func TestInvoice_ValidatePayment_Order(t *testing.T) {
	past := time.Now().UTC().Add(-time.Hour)
	allowed := payerAddr

	t.Run("exact match succeeds", func(t *testing.T) {
		inv := newTestInvoice(t, nil, nil)
		if err := inv.ValidatePayment(payerAddr, vo.NewAmount(1_500_000_000)); err != nil {
			t.Errorf("ValidatePayment() error = %v, want nil", err)
		}
	})

	t.Run("paid invoice reports already settled", func(t *testing.T) {
		inv := newTestInvoice(t, nil, nil)
		if err := inv.MarkAsPaid(); err != nil {
			t.Fatalf("MarkAsPaid() error = %v", err)
		}
		err := inv.ValidatePayment(payerAddr, vo.NewAmount(1_500_000_000))
		if !apperrors.IsAlreadySettledError(err) {
			t.Errorf("ValidatePayment() error = %v, want already settled", err)
		}
	})

	t.Run("cancelled invoice reports invalid state", func(t *testing.T) {
		inv := newTestInvoice(t, nil, nil)
		if err := inv.Cancel(); err != nil {
			t.Fatalf("Cancel() error = %v", err)
		}
		err := inv.ValidatePayment(payerAddr, vo.NewAmount(1_500_000_000))
		if !apperrors.IsInvalidStateError(err) {
			t.Errorf("ValidatePayment() error = %v, want invalid state", err)
		}
	})

	t.Run("expired before unauthorized", func(t *testing.T) {
		inv := newTestInvoice(t, &allowed, &past)
		err := inv.ValidatePayment(otherAddr, vo.NewAmount(1_500_000_000))
		if !apperrors.IsExpiredError(err) {
			t.Errorf("ValidatePayment() error = %v, want expired", err)
		}
	})

	t.Run("wrong payer unauthorized", func(t *testing.T) {
		inv := newTestInvoice(t, &allowed, nil)
		err := inv.ValidatePayment(otherAddr, vo.NewAmount(1_500_000_000))
		if !apperrors.IsUnauthorizedError(err) {
			t.Errorf("ValidatePayment() error = %v, want unauthorized", err)
		}
	})

	t.Run("partial payment rejected", func(t *testing.T) {
		inv := newTestInvoice(t, nil, nil)
		err := inv.ValidatePayment(payerAddr, vo.NewAmount(999))
		if !apperrors.IsAmountMismatchError(err) {
			t.Errorf("ValidatePayment() error = %v, want amount mismatch", err)
		}
	})
}

func TestInvoice_ExpiryBoundary(t *testing.T) {
	// Expired strictly after expiresAt, not at it.
	future := time.Now().UTC().Add(time.Hour)
	inv := newTestInvoice(t, nil, &future)
	if inv.IsExpired() {
		t.Error("IsExpired() = true before expiry")
	}
	if err := inv.ValidatePayment(payerAddr, vo.NewAmount(1_500_000_000)); err != nil {
		t.Errorf("ValidatePayment() error = %v, want nil", err)
	}
}

func TestInvoice_MarkAsPaid_Once(t *testing.T) {
	inv := newTestInvoice(t, nil, nil)
	if err := inv.MarkAsPaid(); err != nil {
		t.Fatalf("MarkAsPaid() error = %v, want nil", err)
	}
	if inv.Status() != StatusPaid {
		t.Errorf("Status() = %v, want paid", inv.Status())
	}
	if inv.PaidAt() == nil {
		t.Error("PaidAt() = nil after MarkAsPaid")
	}
	if err := inv.MarkAsPaid(); !apperrors.IsInvalidStateError(err) {
		t.Errorf("second MarkAsPaid() error = %v, want invalid state", err)
	}
}
