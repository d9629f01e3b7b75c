package settlement

import (
	"time"

	"github.com/google/uuid"
	"github.com/revenda/backend/internal/domain/settlement"
	"github.com/shopspring/decimal"
)

// ReceiptListFilter filters receipt listings
type ReceiptListFilter struct {
	Page       int
	PageSize   int
	OrderBy    string
	OrderDir   string
	Search     string
	DocumentID *uuid.UUID
}

// ReceiptResponse is the API representation of a receipt
type ReceiptResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Number             int64           `json:"number"`
	DocumentID         uuid.UUID       `json:"document_id"`
	DocumentNumber     int64           `json:"document_number"`
	InstallmentOrdinal int             `json:"installment_ordinal"`
	InstallmentLabel   string          `json:"installment_label"`
	CustomerName       string          `json:"customer_name"`
	CustomerIDNumber   string          `json:"customer_id_number"`
	CustomerPhone      string          `json:"customer_phone"`
	ProductDescription string          `json:"product_description"`
	Amount             decimal.Decimal `json:"amount"`
	PaidAt             time.Time       `json:"paid_at"`
	CreatedAt          time.Time       `json:"created_at"`
}

// ToReceiptResponse maps a receipt aggregate to its API representation
func ToReceiptResponse(receipt *settlement.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ID:                 receipt.ID,
		Number:             receipt.Number,
		DocumentID:         receipt.DocumentID,
		DocumentNumber:     receipt.DocumentNumber,
		InstallmentOrdinal: receipt.InstallmentOrdinal,
		InstallmentLabel:   receipt.InstallmentLabel,
		CustomerName:       receipt.CustomerName,
		CustomerIDNumber:   receipt.CustomerIDNumber,
		CustomerPhone:      receipt.CustomerPhone,
		ProductDescription: receipt.ProductDescription,
		Amount:             receipt.Amount,
		PaidAt:             receipt.PaidAt,
		CreatedAt:          receipt.CreatedAt,
	}
}
