package settlement

import (
	"time"

	"github.com/google/uuid"
	"github.com/revenda/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Receipt is the proof-of-payment record for exactly one installment of a
// document. It snapshots customer and product details so it keeps rendering
// after the source records change. A receipt exists iff the linked
// installment is paid; deleting it reverses the confirmation.
type Receipt struct {
	shared.BaseAggregateRoot
	Number             int64
	DocumentID         uuid.UUID
	DocumentNumber     int64
	InstallmentOrdinal int
	InstallmentLabel   string
	CustomerName       string
	CustomerIDNumber   string
	CustomerPhone      string
	ProductDescription string
	Amount             decimal.Decimal
	PaidAt             time.Time
}

// NewReceipt creates a receipt for one installment payment
func NewReceipt(number int64, documentID uuid.UUID, documentNumber int64, installmentOrdinal int, installmentLabel, customerName, customerIDNumber, customerPhone, productDescription string, amount decimal.Decimal, paidAt time.Time) (*Receipt, error) {
	if number <= 0 {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Receipt number must be positive")
	}
	if documentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DOCUMENT", "Document ID cannot be empty")
	}
	if installmentOrdinal <= 0 {
		return nil, shared.NewDomainError("INVALID_ORDINAL", "Installment ordinal must be positive")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Receipt amount cannot be negative")
	}

	receipt := &Receipt{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		Number:             number,
		DocumentID:         documentID,
		DocumentNumber:     documentNumber,
		InstallmentOrdinal: installmentOrdinal,
		InstallmentLabel:   installmentLabel,
		CustomerName:       customerName,
		CustomerIDNumber:   customerIDNumber,
		CustomerPhone:      customerPhone,
		ProductDescription: productDescription,
		Amount:             amount,
		PaidAt:             paidAt,
	}

	receipt.AddDomainEvent(NewPaymentConfirmedEvent(receipt))

	return receipt, nil
}
