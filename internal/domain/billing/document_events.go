package billing

import (
	"github.com/google/uuid"
	"github.com/revenda/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeDocument = "Document"

// Event type constants
const (
	EventTypeDocumentIssued    = "DocumentIssued"
	EventTypeDocumentUpdated   = "DocumentUpdated"
	EventTypeDocumentConverted = "DocumentConverted"
	EventTypeDocumentDeleted   = "DocumentDeleted"
)

// DocumentIssuedEvent is raised when a new document (proforma or final) is issued
type DocumentIssuedEvent struct {
	shared.BaseDomainEvent
	DocumentID    uuid.UUID       `json:"document_id"`
	Number        int64           `json:"number"`
	Kind          DocumentKind    `json:"kind"`
	CustomerName  string          `json:"customer_name"`
	ItemID        uuid.UUID       `json:"item_id"`
	ContractType  ContractType    `json:"contract_type"`
	PayableAmount decimal.Decimal `json:"payable_amount"`
}

// NewDocumentIssuedEvent creates a new DocumentIssuedEvent
func NewDocumentIssuedEvent(doc *Document) *DocumentIssuedEvent {
	return &DocumentIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentIssued, AggregateTypeDocument, doc.ID),
		DocumentID:      doc.ID,
		Number:          doc.Number,
		Kind:            doc.Kind,
		CustomerName:    doc.CustomerName,
		ItemID:          doc.ItemID,
		ContractType:    doc.ContractType,
		PayableAmount:   doc.PayableAmount,
	}
}

// EventType returns the event type name
func (e *DocumentIssuedEvent) EventType() string {
	return EventTypeDocumentIssued
}

// DocumentUpdatedEvent is raised when a document's commercial terms change
type DocumentUpdatedEvent struct {
	shared.BaseDomainEvent
	DocumentID    uuid.UUID       `json:"document_id"`
	Number        int64           `json:"number"`
	Kind          DocumentKind    `json:"kind"`
	PayableAmount decimal.Decimal `json:"payable_amount"`
}

// NewDocumentUpdatedEvent creates a new DocumentUpdatedEvent
func NewDocumentUpdatedEvent(doc *Document) *DocumentUpdatedEvent {
	return &DocumentUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentUpdated, AggregateTypeDocument, doc.ID),
		DocumentID:      doc.ID,
		Number:          doc.Number,
		Kind:            doc.Kind,
		PayableAmount:   doc.PayableAmount,
	}
}

// EventType returns the event type name
func (e *DocumentUpdatedEvent) EventType() string {
	return EventTypeDocumentUpdated
}

// DocumentConvertedEvent is raised on the source proforma when a final
// document has been created from it
type DocumentConvertedEvent struct {
	shared.BaseDomainEvent
	DocumentID uuid.UUID `json:"document_id"`
	Number     int64     `json:"number"`
	ItemID     uuid.UUID `json:"item_id"`
}

// NewDocumentConvertedEvent creates a new DocumentConvertedEvent
func NewDocumentConvertedEvent(doc *Document) *DocumentConvertedEvent {
	return &DocumentConvertedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentConverted, AggregateTypeDocument, doc.ID),
		DocumentID:      doc.ID,
		Number:          doc.Number,
		ItemID:          doc.ItemID,
	}
}

// EventType returns the event type name
func (e *DocumentConvertedEvent) EventType() string {
	return EventTypeDocumentConverted
}

// DocumentDeletedEvent is raised when a document is removed
type DocumentDeletedEvent struct {
	shared.BaseDomainEvent
	DocumentID uuid.UUID    `json:"document_id"`
	Number     int64        `json:"number"`
	Kind       DocumentKind `json:"kind"`
	ItemID     uuid.UUID    `json:"item_id"`
}

// NewDocumentDeletedEvent creates a new DocumentDeletedEvent
func NewDocumentDeletedEvent(doc *Document) *DocumentDeletedEvent {
	return &DocumentDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentDeleted, AggregateTypeDocument, doc.ID),
		DocumentID:      doc.ID,
		Number:          doc.Number,
		Kind:            doc.Kind,
		ItemID:          doc.ItemID,
	}
}

// EventType returns the event type name
func (e *DocumentDeletedEvent) EventType() string {
	return EventTypeDocumentDeleted
}
