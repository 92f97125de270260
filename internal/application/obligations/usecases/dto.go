// Package usecases contains the application services for creating, reading
// and cancelling obligations. Settlement itself lives in the settlement
// package; these use cases never move funds.
package usecases

import (
	"time"

	"tonpay/internal/domain/bill"
	"tonpay/internal/domain/gift"
	"tonpay/internal/domain/invoice"
	"tonpay/internal/domain/merchant"
	"tonpay/internal/shared/biztime"
)

// InvoiceResult is the transport representation of an invoice.
type InvoiceResult struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	AmountNano    int64   `json:"amount_nano"`
	IssuerAddress string  `json:"issuer_address"`
	AllowedPayer  *string `json:"allowed_payer,omitempty"`
	Status        string  `json:"status"`
	DueDate       *string `json:"due_date,omitempty"`
	ExpiresAt     *string `json:"expires_at,omitempty"`
	PaidAt        *string `json:"paid_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// ParticipantResult is the transport representation of a bill participant.
type ParticipantResult struct {
	ID        string  `json:"id"`
	Address   string  `json:"address"`
	ShareNano int64   `json:"share_nano"`
	Paid      bool    `json:"paid"`
	PaidAt    *string `json:"paid_at,omitempty"`
}

// BillResult is the transport representation of a bill split.
type BillResult struct {
	ID              string              `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description,omitempty"`
	TotalAmountNano int64               `json:"total_amount_nano"`
	CreatorAddress  string              `json:"creator_address"`
	Status          string              `json:"status"`
	Participants    []ParticipantResult `json:"participants"`
	CreatedAt       string              `json:"created_at"`
}

// GiftResult is the transport representation of a gift. The secret hash is
// deliberately absent.
type GiftResult struct {
	ID               string  `json:"id"`
	AmountNano       int64   `json:"amount_nano"`
	SenderAddress    string  `json:"sender_address"`
	RecipientAddress *string `json:"recipient_address,omitempty"`
	Description      string  `json:"description,omitempty"`
	IsClaimed        bool    `json:"is_claimed"`
	ClaimedAt        *string `json:"claimed_at,omitempty"`
	ExpiresAt        *string `json:"expires_at,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

// MerchantPaymentResult is the transport representation of a merchant
// payment.
type MerchantPaymentResult struct {
	ID              string  `json:"id"`
	MerchantName    string  `json:"merchant_name"`
	MerchantAddress string  `json:"merchant_address"`
	AmountNano      int64   `json:"amount_nano"`
	OrderID         string  `json:"order_id"`
	Description     string  `json:"description,omitempty"`
	Status          string  `json:"status"`
	ExpiresAt       *string `json:"expires_at,omitempty"`
	PaidAt          *string `json:"paid_at,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := biztime.FormatRFC3339(*t)
	return &s
}

func toInvoiceResult(inv *invoice.Invoice) *InvoiceResult {
	return &InvoiceResult{
		ID:            inv.ID(),
		Title:         inv.Title(),
		Description:   inv.Description(),
		AmountNano:    inv.Amount().Nano(),
		IssuerAddress: inv.IssuerAddress(),
		AllowedPayer:  inv.AllowedPayer(),
		Status:        inv.Status().String(),
		DueDate:       formatOptional(inv.DueDate()),
		ExpiresAt:     formatOptional(inv.ExpiresAt()),
		PaidAt:        formatOptional(inv.PaidAt()),
		CreatedAt:     biztime.FormatRFC3339(inv.CreatedAt()),
	}
}

func toBillResult(b *bill.BillSplit) *BillResult {
	participants := make([]ParticipantResult, 0, len(b.Participants()))
	for _, p := range b.Participants() {
		participants = append(participants, ParticipantResult{
			ID:        p.ID(),
			Address:   p.Address(),
			ShareNano: p.Share().Nano(),
			Paid:      p.Paid(),
			PaidAt:    formatOptional(p.PaidAt()),
		})
	}
	return &BillResult{
		ID:              b.ID(),
		Title:           b.Title(),
		Description:     b.Description(),
		TotalAmountNano: b.TotalAmount().Nano(),
		CreatorAddress:  b.CreatorAddress(),
		Status:          b.Status().String(),
		Participants:    participants,
		CreatedAt:       biztime.FormatRFC3339(b.CreatedAt()),
	}
}

func toGiftResult(g *gift.Gift) *GiftResult {
	return &GiftResult{
		ID:               g.ID(),
		AmountNano:       g.Amount().Nano(),
		SenderAddress:    g.SenderAddress(),
		RecipientAddress: g.RecipientAddress(),
		Description:      g.Description(),
		IsClaimed:        g.IsClaimed(),
		ClaimedAt:        formatOptional(g.ClaimedAt()),
		ExpiresAt:        formatOptional(g.ExpiresAt()),
		CreatedAt:        biztime.FormatRFC3339(g.CreatedAt()),
	}
}

func toMerchantPaymentResult(p *merchant.Payment) *MerchantPaymentResult {
	return &MerchantPaymentResult{
		ID:              p.ID(),
		MerchantName:    p.MerchantName(),
		MerchantAddress: p.MerchantAddress(),
		AmountNano:      p.Amount().Nano(),
		OrderID:         p.OrderID(),
		Description:     p.Description(),
		Status:          p.Status().String(),
		ExpiresAt:       formatOptional(p.ExpiresAt()),
		PaidAt:          formatOptional(p.PaidAt()),
		CreatedAt:       biztime.FormatRFC3339(p.CreatedAt()),
	}
}
