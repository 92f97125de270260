package gift

import (
	"testing"
	"time"

	vo "tonpay/internal/domain/shared/valueobjects"
	apperrors "tonpay/internal/shared/errors"
)

const (
	senderAddr    = "EQAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	recipientAddr = "UQBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB"
	strangerAddr  = "EQCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCC"
)

func newTestGift(t *testing.T, recipient *string, expiresAt *time.Time) *Gift {
	t.Helper()
	g, err := NewGift(vo.NewAmount(500_000_000), senderAddr, recipient, "s3cret", "", expiresAt)
	if err != nil {
		t.Fatalf("NewGift() error = %v, want nil", err)
	}
	return g
}

func TestHashSecret_Deterministic(t *testing.T) {
	a := HashSecret("s3cret")
	b := HashSecret("s3cret")
	if a != b {
		t.Errorf("HashSecret() not deterministic: %s != %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("HashSecret() length = %d, want 64 hex chars", len(a))
	}
	if a == HashSecret("other") {
		t.Error("HashSecret() collided for different secrets")
	}
}

func TestNewGift_HashesSecret(t *testing.T) {
	g := newTestGift(t, nil, nil)
	if g.SecretHash() != HashSecret("s3cret") {
		t.Errorf("SecretHash() = %s, want digest of the secret", g.SecretHash())
	}
	if g.IsClaimed() {
		t.Error("IsClaimed() = true on a fresh gift")
	}
}

func TestNewGift_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		sender string
		secret string
	}{
		{"zero amount", 0, senderAddr, "s"},
		{"bad sender", 100, "nope", "s"},
		{"empty secret", 100, senderAddr, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGift(vo.NewAmount(tt.amount), tt.sender, nil, tt.secret, "", nil)
			if !apperrors.IsValidationError(err) {
				t.Errorf("NewGift() error = %v, want validation error", err)
			}
		})
	}
}

func TestGift_ValidateClaim(t *testing.T) {
	past := time.Now().UTC().Add(-time.Minute)
	fixed := recipientAddr

	t.Run("correct secret succeeds", func(t *testing.T) {
		g := newTestGift(t, nil, nil)
		if err := g.ValidateClaim(recipientAddr, "s3cret"); err != nil {
			t.Errorf("ValidateClaim() error = %v, want nil", err)
		}
	})

	t.Run("claimed gift reported first", func(t *testing.T) {
		g := newTestGift(t, nil, &past)
		if err := g.MarkAsClaimed(); err != nil {
			t.Fatalf("MarkAsClaimed() error = %v", err)
		}
		err := g.ValidateClaim(recipientAddr, "wrong")
		if !apperrors.IsAlreadyClaimedError(err) {
			t.Errorf("ValidateClaim() error = %v, want already claimed", err)
		}
	})

	t.Run("expired gift", func(t *testing.T) {
		g := newTestGift(t, nil, &past)
		err := g.ValidateClaim(recipientAddr, "s3cret")
		if !apperrors.IsExpiredError(err) {
			t.Errorf("ValidateClaim() error = %v, want expired", err)
		}
	})

	t.Run("fixed recipient mismatch", func(t *testing.T) {
		g := newTestGift(t, &fixed, nil)
		err := g.ValidateClaim(strangerAddr, "s3cret")
		if !apperrors.IsUnauthorizedError(err) {
			t.Errorf("ValidateClaim() error = %v, want unauthorized", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		g := newTestGift(t, nil, nil)
		err := g.ValidateClaim(recipientAddr, "guess")
		if !apperrors.IsInvalidSecretError(err) {
			t.Errorf("ValidateClaim() error = %v, want invalid secret", err)
		}
	})
}

func TestGift_MarkAsClaimed_Once(t *testing.T) {
	g := newTestGift(t, nil, nil)
	if err := g.MarkAsClaimed(); err != nil {
		t.Fatalf("MarkAsClaimed() error = %v, want nil", err)
	}
	if !g.IsClaimed() || g.ClaimedAt() == nil {
		t.Error("claim state not recorded")
	}
	if err := g.MarkAsClaimed(); !apperrors.IsAlreadyClaimedError(err) {
		t.Errorf("second MarkAsClaimed() error = %v, want already claimed", err)
	}
}
