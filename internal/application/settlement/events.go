package settlement

// EventKind identifies a post-commit settlement event.
type EventKind string

const (
	EventInvoicePaid         EventKind = "invoice:paid"
	EventBillParticipantPaid EventKind = "bill:participant_paid"
	EventBillSettled         EventKind = "bill:settled"
	EventGiftClaimed         EventKind = "gift:claimed"
	EventMerchantPaid        EventKind = "merchant:paid"
	EventTransferSent        EventKind = "transfer:sent"
)

// Event is the payload delivered to the notifier after a settlement commits.
type Event struct {
	Kind          EventKind `json:"kind"`
	ObligationID  string    `json:"obligation_id"`
	PayerAddress  string    `json:"payer_address,omitempty"`
	PayeeAddress  string    `json:"payee_address,omitempty"`
	AmountNano    int64     `json:"amount_nano"`
	TransactionID string    `json:"transaction_id,omitempty"`
}
