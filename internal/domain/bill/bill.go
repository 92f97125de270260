// Package bill holds the bill-split aggregate: a total amount owed to a
// creator, divided into per-participant shares that are settled one by one.
// The bill's settled status is derived from participant state, never set on
// its own.
package bill

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	vo "tonpay/internal/domain/shared/valueobjects"
	"tonpay/internal/shared/biztime"
	apperrors "tonpay/internal/shared/errors"
	"tonpay/internal/shared/id"
)

// Status represents the bill lifecycle.
type Status string

const (
	StatusActive    Status = "active"
	StatusSettled   Status = "settled"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusSettled, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

// Participant is one share of a bill. A given address appears at most once
// per bill.
type Participant struct {
	id      string
	billID  string
	address string
	share   vo.Amount
	paid    bool
	paidAt  *time.Time
}

func (p *Participant) ID() string {
	return p.id
}

func (p *Participant) BillID() string {
	return p.billID
}

func (p *Participant) Address() string {
	return p.address
}

func (p *Participant) Share() vo.Amount {
	return p.share
}

func (p *Participant) Paid() bool {
	return p.paid
}

func (p *Participant) PaidAt() *time.Time {
	return p.paidAt
}

// ReconstructParticipant creates a Participant instance from persistence.
func ReconstructParticipant(participantID, billID, address string, share vo.Amount, paid bool, paidAt *time.Time) *Participant {
	return &Participant{
		id:      participantID,
		billID:  billID,
		address: address,
		share:   share,
		paid:    paid,
		paidAt:  paidAt,
	}
}

// ParticipantShare is the creation-time input for one participant.
type ParticipantShare struct {
	Address string
	Share   vo.Amount
}

// BillSplit is a bill divided among participants. Shares must sum exactly to
// the total at creation; partial or over payment of a share is rejected at
// settlement.
type BillSplit struct {
	id             string
	title          string
	description    string
	totalAmount    vo.Amount
	creatorAddress string
	status         Status
	participants   []*Participant
	createdAt      time.Time
}

// NewBillSplit creates an active bill. The strict creation rule applies:
// at least two participants, no duplicate addresses, and shares summing
// exactly to the total.
func NewBillSplit(title, description string, totalAmount vo.Amount, creatorAddress string, shares []ParticipantShare) (*BillSplit, error) {
	if title == "" {
		return nil, apperrors.NewValidationError("bill title is required")
	}
	if !totalAmount.IsPositive() {
		return nil, apperrors.NewValidationError("bill total must be positive")
	}
	if !vo.ValidAddress(creatorAddress) {
		return nil, apperrors.NewValidationError("invalid creator address", creatorAddress)
	}
	if len(shares) < 2 {
		return nil, apperrors.NewValidationError("a bill split needs at least two participants")
	}

	billID := id.NewBillID()
	seen := make(map[string]struct{}, len(shares))
	sum := vo.NewAmount(0)
	participants := make([]*Participant, 0, len(shares))
	for _, s := range shares {
		if !vo.ValidAddress(s.Address) {
			return nil, apperrors.NewValidationError("invalid participant address", s.Address)
		}
		if _, dup := seen[s.Address]; dup {
			return nil, apperrors.NewValidationError("duplicate participant address", s.Address)
		}
		seen[s.Address] = struct{}{}
		if !s.Share.IsPositive() {
			return nil, apperrors.NewValidationError("participant share must be positive", s.Address)
		}
		sum = sum.Add(s.Share)
		participants = append(participants, &Participant{
			id:      uuid.NewString(),
			billID:  billID,
			address: s.Address,
			share:   s.Share,
		})
	}
	if !sum.Equals(totalAmount) {
		return nil, apperrors.NewValidationError("participant shares must sum to the bill total",
			fmt.Sprintf("total %s, shares %s", totalAmount, sum))
	}

	return &BillSplit{
		id:             billID,
		title:          title,
		description:    description,
		totalAmount:    totalAmount,
		creatorAddress: creatorAddress,
		status:         StatusActive,
		participants:   participants,
		createdAt:      biztime.NowUTC(),
	}, nil
}

// NewEqualBillSplit creates a bill where the total is divided evenly among
// the addresses. Totals that do not divide evenly are rejected.
func NewEqualBillSplit(title, description string, totalAmount vo.Amount, creatorAddress string, addresses []string) (*BillSplit, error) {
	share, err := totalAmount.SplitEqually(len(addresses))
	if err != nil {
		return nil, apperrors.NewValidationError("cannot split bill evenly", err.Error())
	}
	shares := make([]ParticipantShare, 0, len(addresses))
	for _, addr := range addresses {
		shares = append(shares, ParticipantShare{Address: addr, Share: share})
	}
	return NewBillSplit(title, description, totalAmount, creatorAddress, shares)
}

// FindParticipant returns the participant with the given address, or nil.
func (b *BillSplit) FindParticipant(address string) *Participant {
	for _, p := range b.participants {
		if p.address == address {
			return p
		}
	}
	return nil
}

// ValidatePayment checks a participant's settlement attempt. The checks run
// in a fixed order so a caller always sees the most specific failure first.
func (b *BillSplit) ValidatePayment(participantAddress string, amount vo.Amount) error {
	if b.status != StatusActive {
		return apperrors.NewInvalidStateError("bill is not active", b.status.String())
	}
	p := b.FindParticipant(participantAddress)
	if p == nil {
		return apperrors.NewUnauthorizedError("address is not a participant of this bill", participantAddress)
	}
	if p.paid {
		return apperrors.NewAlreadySettledError("participant share already paid")
	}
	if !amount.Equals(p.share) {
		return apperrors.NewAmountMismatchError("payment amount does not match participant share",
			fmt.Sprintf("expected %s, got %s", p.share, amount))
	}
	return nil
}

// MarkParticipantPaid flags the participant's share as paid and, when every
// share is paid, transitions the bill to settled. It reports whether the
// bill just settled. The caller must hold the obligation lock across the
// flag write and this derived check.
func (b *BillSplit) MarkParticipantPaid(participantAddress string) (settled bool, err error) {
	if b.status != StatusActive {
		return false, apperrors.NewInvalidStateError("bill is not active", b.status.String())
	}
	p := b.FindParticipant(participantAddress)
	if p == nil {
		return false, apperrors.NewUnauthorizedError("address is not a participant of this bill", participantAddress)
	}
	if p.paid {
		return false, apperrors.NewAlreadySettledError("participant share already paid")
	}
	now := biztime.NowUTC()
	p.paid = true
	p.paidAt = &now
	if b.AllParticipantsPaid() {
		b.status = StatusSettled
		return true, nil
	}
	return false, nil
}

// AllParticipantsPaid recomputes settled-ness by scanning every participant.
// It is never cached.
func (b *BillSplit) AllParticipantsPaid() bool {
	for _, p := range b.participants {
		if !p.paid {
			return false
		}
	}
	return true
}

// Cancel marks an active bill as cancelled.
func (b *BillSplit) Cancel() error {
	if b.status != StatusActive {
		return apperrors.NewInvalidStateError("only active bills can be cancelled", b.status.String())
	}
	b.status = StatusCancelled
	return nil
}

func (b *BillSplit) ID() string {
	return b.id
}

func (b *BillSplit) Title() string {
	return b.title
}

func (b *BillSplit) Description() string {
	return b.description
}

func (b *BillSplit) TotalAmount() vo.Amount {
	return b.totalAmount
}

func (b *BillSplit) CreatorAddress() string {
	return b.creatorAddress
}

func (b *BillSplit) Status() Status {
	return b.status
}

// Participants returns the bill's participants in creation order.
func (b *BillSplit) Participants() []*Participant {
	return b.participants
}

func (b *BillSplit) CreatedAt() time.Time {
	return b.createdAt
}

// ReconstructBillSplit creates a BillSplit instance from persistence.
func ReconstructBillSplit(
	billID string,
	title, description string,
	totalAmount vo.Amount,
	creatorAddress string,
	status Status,
	participants []*Participant,
	createdAt time.Time,
) *BillSplit {
	return &BillSplit{
		id:             billID,
		title:          title,
		description:    description,
		totalAmount:    totalAmount,
		creatorAddress: creatorAddress,
		status:         status,
		participants:   participants,
		createdAt:      createdAt,
	}
}
