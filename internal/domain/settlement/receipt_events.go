package settlement

import (
	"github.com/google/uuid"
	"github.com/revenda/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeReceipt = "Receipt"

// Event type constants
const (
	EventTypePaymentConfirmed = "PaymentConfirmed"
	EventTypeReceiptReversed  = "ReceiptReversed"
)

// PaymentConfirmedEvent is raised when an installment payment is confirmed
// and its receipt created
type PaymentConfirmedEvent struct {
	shared.BaseDomainEvent
	ReceiptID          uuid.UUID       `json:"receipt_id"`
	ReceiptNumber      int64           `json:"receipt_number"`
	DocumentID         uuid.UUID       `json:"document_id"`
	InstallmentOrdinal int             `json:"installment_ordinal"`
	Amount             decimal.Decimal `json:"amount"`
}

// NewPaymentConfirmedEvent creates a new PaymentConfirmedEvent
func NewPaymentConfirmedEvent(receipt *Receipt) *PaymentConfirmedEvent {
	return &PaymentConfirmedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventTypePaymentConfirmed, AggregateTypeReceipt, receipt.ID),
		ReceiptID:          receipt.ID,
		ReceiptNumber:      receipt.Number,
		DocumentID:         receipt.DocumentID,
		InstallmentOrdinal: receipt.InstallmentOrdinal,
		Amount:             receipt.Amount,
	}
}

// EventType returns the event type name
func (e *PaymentConfirmedEvent) EventType() string {
	return EventTypePaymentConfirmed
}

// ReceiptReversedEvent is raised when a receipt is deleted and the linked
// installment reverts to pending
type ReceiptReversedEvent struct {
	shared.BaseDomainEvent
	ReceiptID          uuid.UUID       `json:"receipt_id"`
	ReceiptNumber      int64           `json:"receipt_number"`
	DocumentID         uuid.UUID       `json:"document_id"`
	InstallmentOrdinal int             `json:"installment_ordinal"`
	Amount             decimal.Decimal `json:"amount"`
}

// NewReceiptReversedEvent creates a new ReceiptReversedEvent
func NewReceiptReversedEvent(receipt *Receipt) *ReceiptReversedEvent {
	return &ReceiptReversedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventTypeReceiptReversed, AggregateTypeReceipt, receipt.ID),
		ReceiptID:          receipt.ID,
		ReceiptNumber:      receipt.Number,
		DocumentID:         receipt.DocumentID,
		InstallmentOrdinal: receipt.InstallmentOrdinal,
		Amount:             receipt.Amount,
	}
}

// EventType returns the event type name
func (e *ReceiptReversedEvent) EventType() string {
	return EventTypeReceiptReversed
}
