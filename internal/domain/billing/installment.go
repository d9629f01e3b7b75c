package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/revenda/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InstallmentStatus represents the payment status of an installment
type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "PENDING"
	InstallmentPaid    InstallmentStatus = "PAID"
)

// IsValid checks if the status is a valid InstallmentStatus
func (s InstallmentStatus) IsValid() bool {
	return s == InstallmentPending || s == InstallmentPaid
}

// String returns the string representation of InstallmentStatus
func (s InstallmentStatus) String() string {
	return string(s)
}

// Installment is one scheduled payment line inside a document
// Installments are owned by the document and not addressable on their own
type Installment struct {
	ID            uuid.UUID
	DocumentID    uuid.UUID
	Ordinal       int
	Label         string
	DueDate       time.Time
	Amount        decimal.Decimal
	Status        InstallmentStatus
	PaidAt        *time.Time
	ReceiptNumber *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides the table name used by GORM
func (Installment) TableName() string {
	return "document_installments"
}

// IsPaid returns true if the installment has been settled
func (i *Installment) IsPaid() bool {
	return i.Status == InstallmentPaid
}

// MarkPaid settles the installment, linking it to the receipt that proves it
func (i *Installment) MarkPaid(receiptNumber int64, paidAt time.Time) error {
	if i.Status == InstallmentPaid {
		return shared.ErrAlreadyPaid
	}
	i.Status = InstallmentPaid
	i.PaidAt = &paidAt
	i.ReceiptNumber = &receiptNumber
	i.UpdatedAt = time.Now()
	return nil
}

// Revert returns a paid installment to pending, clearing the receipt link
// Used when the backing receipt is deleted to reverse a mistaken confirmation
func (i *Installment) Revert() error {
	if i.Status != InstallmentPaid {
		return shared.NewDomainError("NOT_PAID", "Installment is not paid")
	}
	i.Status = InstallmentPending
	i.PaidAt = nil
	i.ReceiptNumber = nil
	i.UpdatedAt = time.Now()
	return nil
}
