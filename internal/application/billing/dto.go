package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/revenda/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// IssueDocumentRequest carries the data needed to issue a new document
type IssueDocumentRequest struct {
	CustomerName     string
	CustomerIDNumber string
	CustomerPhone    string
	ItemID           uuid.UUID
	ContractType     billing.ContractType
	BasePrice        decimal.Decimal
	Discount         decimal.Decimal
	IsFinal          bool
}

// UpdateDocumentRequest carries the editable fields of a document.
// Setting IsFinal on a proforma finalizes it in place.
type UpdateDocumentRequest struct {
	CustomerName     string
	CustomerIDNumber string
	CustomerPhone    string
	ItemID           uuid.UUID
	ContractType     billing.ContractType
	BasePrice        decimal.Decimal
	Discount         decimal.Decimal
	IsFinal          bool
}

// DocumentListFilter filters document listings
type DocumentListFilter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Kind     *billing.DocumentKind
}

// InstallmentResponse is the API representation of an installment
type InstallmentResponse struct {
	Ordinal       int             `json:"ordinal"`
	Label         string          `json:"label"`
	DueDate       time.Time       `json:"due_date"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	ReceiptNumber *int64          `json:"receipt_number,omitempty"`
}

// ProductSnapshotResponse is the API representation of the product snapshot
type ProductSnapshotResponse struct {
	DeviceType  string `json:"device_type"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Storage     string `json:"storage"`
	Color       string `json:"color"`
	Condition   string `json:"condition"`
	Description string `json:"description"`
}

// DocumentResponse is the API representation of a document
type DocumentResponse struct {
	ID               uuid.UUID               `json:"id"`
	Number           int64                   `json:"number"`
	Kind             billing.DocumentKind    `json:"kind"`
	CustomerName     string                  `json:"customer_name"`
	CustomerIDNumber string                  `json:"customer_id_number"`
	CustomerPhone    string                  `json:"customer_phone"`
	ItemID           uuid.UUID               `json:"item_id"`
	Product          ProductSnapshotResponse `json:"product"`
	ContractType     billing.ContractType    `json:"contract_type"`
	BasePrice        decimal.Decimal         `json:"base_price"`
	Discount         decimal.Decimal         `json:"discount"`
	PayableAmount    decimal.Decimal         `json:"payable_amount"`
	IssueDate        time.Time               `json:"issue_date"`
	ConvertedToFinal bool                    `json:"converted_to_final"`
	ConvertedAt      *time.Time              `json:"converted_at,omitempty"`
	Installments     []InstallmentResponse   `json:"installments"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// ToDocumentResponse maps a document aggregate to its API representation
func ToDocumentResponse(doc *billing.Document) DocumentResponse {
	installments := make([]InstallmentResponse, len(doc.Installments))
	for idx := range doc.Installments {
		inst := &doc.Installments[idx]
		installments[idx] = InstallmentResponse{
			Ordinal:       inst.Ordinal,
			Label:         inst.Label,
			DueDate:       inst.DueDate,
			Amount:        inst.Amount,
			Status:        inst.Status.String(),
			PaidAt:        inst.PaidAt,
			ReceiptNumber: inst.ReceiptNumber,
		}
	}

	return DocumentResponse{
		ID:               doc.ID,
		Number:           doc.Number,
		Kind:             doc.Kind,
		CustomerName:     doc.CustomerName,
		CustomerIDNumber: doc.CustomerIDNumber,
		CustomerPhone:    doc.CustomerPhone,
		ItemID:           doc.ItemID,
		Product: ProductSnapshotResponse{
			DeviceType:  doc.Product.DeviceType,
			Brand:       doc.Product.Brand,
			Model:       doc.Product.Model,
			Storage:     doc.Product.Storage,
			Color:       doc.Product.Color,
			Condition:   doc.Product.Condition,
			Description: doc.Product.Description(),
		},
		ContractType:     doc.ContractType,
		BasePrice:        doc.BasePrice,
		Discount:         doc.Discount,
		PayableAmount:    doc.PayableAmount,
		IssueDate:        doc.IssueDate,
		ConvertedToFinal: doc.ConvertedToFinal,
		ConvertedAt:      doc.ConvertedAt,
		Installments:     installments,
		CreatedAt:        doc.CreatedAt,
		UpdatedAt:        doc.UpdatedAt,
	}
}
