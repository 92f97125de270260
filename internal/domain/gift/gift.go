// Package gift holds the claimable-gift aggregate. A gift locks an amount
// behind a shared secret; whoever presents the secret first claims it. The
// claim transition is the most contended operation in the system and must
// run under the obligation lock.
package gift

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"

	vo "tonpay/internal/domain/shared/valueobjects"
	"tonpay/internal/shared/biztime"
	apperrors "tonpay/internal/shared/errors"
	"tonpay/internal/shared/id"
)

// HashSecret produces the hex-encoded SHA-256 digest stored on the gift.
// Creation and claim must use this same function.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// Gift is an amount claimable once by presenting the matching secret.
// recipientAddress nil means anyone with the secret may claim.
type Gift struct {
	id               string
	amount           vo.Amount
	senderAddress    string
	recipientAddress *string
	secretHash       string
	description      string
	isClaimed        bool
	claimedAt        *time.Time
	expiresAt        *time.Time
	createdAt        time.Time
}

// NewGift creates an unclaimed gift from a plaintext secret. The secret is
// hashed immediately and never stored.
func NewGift(amount vo.Amount, senderAddress string, recipientAddress *string, secret, description string, expiresAt *time.Time) (*Gift, error) {
	if !amount.IsPositive() {
		return nil, apperrors.NewValidationError("gift amount must be positive")
	}
	if !vo.ValidAddress(senderAddress) {
		return nil, apperrors.NewValidationError("invalid sender address", senderAddress)
	}
	if recipientAddress != nil && !vo.ValidAddress(*recipientAddress) {
		return nil, apperrors.NewValidationError("invalid recipient address", *recipientAddress)
	}
	if secret == "" {
		return nil, apperrors.NewValidationError("gift secret is required")
	}
	return &Gift{
		id:               id.NewGiftID(),
		amount:           amount,
		senderAddress:    senderAddress,
		recipientAddress: recipientAddress,
		secretHash:       HashSecret(secret),
		description:      description,
		expiresAt:        expiresAt,
		createdAt:        biztime.NowUTC(),
	}, nil
}

// ValidateClaim checks a claim attempt against the gift state. The secret
// comparison is constant time so a mismatch leaks nothing about the stored
// digest. Checks run in a fixed order so a caller always sees the most
// specific failure first.
func (g *Gift) ValidateClaim(recipientAddress, secret string) error {
	if g.isClaimed {
		return apperrors.NewAlreadyClaimedError("gift already claimed")
	}
	if biztime.IsExpired(g.expiresAt) {
		return apperrors.NewExpiredError("gift expired")
	}
	if g.recipientAddress != nil && *g.recipientAddress != recipientAddress {
		return apperrors.NewUnauthorizedError("gift is restricted to a different recipient")
	}
	digest := HashSecret(secret)
	if subtle.ConstantTimeCompare([]byte(digest), []byte(g.secretHash)) != 1 {
		return apperrors.NewInvalidSecretError("gift secret does not match")
	}
	return nil
}

// MarkAsClaimed transitions the gift to claimed. The caller must have run
// ValidateClaim under the obligation lock first.
func (g *Gift) MarkAsClaimed() error {
	if g.isClaimed {
		return apperrors.NewAlreadyClaimedError("gift already claimed")
	}
	now := biztime.NowUTC()
	g.isClaimed = true
	g.claimedAt = &now
	return nil
}

// IsExpired reports whether the expiry, if any, has passed.
func (g *Gift) IsExpired() bool {
	return biztime.IsExpired(g.expiresAt)
}

func (g *Gift) ID() string {
	return g.id
}

func (g *Gift) Amount() vo.Amount {
	return g.amount
}

func (g *Gift) SenderAddress() string {
	return g.senderAddress
}

func (g *Gift) RecipientAddress() *string {
	return g.recipientAddress
}

func (g *Gift) SecretHash() string {
	return g.secretHash
}

func (g *Gift) Description() string {
	return g.description
}

func (g *Gift) IsClaimed() bool {
	return g.isClaimed
}

func (g *Gift) ClaimedAt() *time.Time {
	return g.claimedAt
}

func (g *Gift) ExpiresAt() *time.Time {
	return g.expiresAt
}

func (g *Gift) CreatedAt() time.Time {
	return g.createdAt
}

// ReconstructGift creates a Gift instance from persistence.
func ReconstructGift(
	giftID string,
	amount vo.Amount,
	senderAddress string,
	recipientAddress *string,
	secretHash, description string,
	isClaimed bool,
	claimedAt, expiresAt *time.Time,
	createdAt time.Time,
) *Gift {
	return &Gift{
		id:               giftID,
		amount:           amount,
		senderAddress:    senderAddress,
		recipientAddress: recipientAddress,
		secretHash:       secretHash,
		description:      description,
		isClaimed:        isClaimed,
		claimedAt:        claimedAt,
		expiresAt:        expiresAt,
		createdAt:        createdAt,
	}
}
