package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/revenda/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DocumentKind distinguishes the two lifecycle roles a document can play
type DocumentKind string

const (
	// KindProforma is a non-binding price quote; it never reserves inventory
	KindProforma DocumentKind = "PROFORMA"
	// KindFinal is a binding sale invoice; it reserves the referenced item
	KindFinal DocumentKind = "FINAL"
)

// IsValid checks if the kind is a valid DocumentKind
func (k DocumentKind) IsValid() bool {
	return k == KindProforma || k == KindFinal
}

// String returns the string representation of DocumentKind
func (k DocumentKind) String() string {
	return string(k)
}

// CustomerInfo identifies the customer on a document
type CustomerInfo struct {
	Name     string
	IDNumber string
	Phone    string
}

// ProductSnapshot captures the device details at issue time so documents and
// reports keep rendering even if the inventory record is later deleted
type ProductSnapshot struct {
	DeviceType string
	Brand      string
	Model      string
	Storage    string
	Color      string
	Condition  string
}

// Description returns a human-readable device description
func (p ProductSnapshot) Description() string {
	desc := p.Brand + " " + p.Model
	if p.Storage != "" {
		desc += " " + p.Storage
	}
	if p.Color != "" {
		desc += " " + p.Color
	}
	return desc
}

// Document represents a commercial document aggregate root: a proforma
// (quote) or a final sale invoice. Proformas and finals share the shape but
// draw numbers from independent sequences.
type Document struct {
	shared.BaseAggregateRoot
	Number           int64
	Kind             DocumentKind
	CustomerName     string
	CustomerIDNumber string
	CustomerPhone    string
	ItemID           uuid.UUID
	Product          ProductSnapshot `gorm:"embedded;embeddedPrefix:product_"`
	ContractType     ContractType
	BasePrice        decimal.Decimal
	Discount         decimal.Decimal
	PayableAmount    decimal.Decimal
	IssueDate        time.Time
	ConvertedToFinal bool
	ConvertedAt      *time.Time
	Installments     []Installment `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE"`
}

// NewDocument issues a new document. The payable amount is derived from the
// pricing rules and the installment schedule is generated immediately, also
// for proformas, so a quote can be previewed with its plan.
func NewDocument(kind DocumentKind, number int64, customer CustomerInfo, itemID uuid.UUID, product ProductSnapshot, contractType ContractType, basePrice, discount decimal.Decimal) (*Document, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown document kind")
	}
	if number <= 0 {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number must be positive")
	}
	if customer.Name == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("NO_ITEM_SELECTED", "An inventory item must be selected")
	}
	if !contractType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CONTRACT_TYPE", "Unknown contract type")
	}
	if basePrice.IsNegative() {
		basePrice = decimal.Zero
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}

	doc := &Document{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Kind:              kind,
		CustomerName:      customer.Name,
		CustomerIDNumber:  customer.IDNumber,
		CustomerPhone:     customer.Phone,
		ItemID:            itemID,
		Product:           product,
		ContractType:      contractType,
		BasePrice:         basePrice,
		Discount:          discount,
		IssueDate:         time.Now(),
	}
	doc.recalculate()

	doc.AddDomainEvent(NewDocumentIssuedEvent(doc))

	return doc, nil
}

// NewFinalFromProforma creates the binding final document out of a proforma,
// carrying customer, item and pricing over. The schedule is regenerated
// against the current date and the final sequence supplies the number; the
// proforma's own number is never reused.
func NewFinalFromProforma(proforma *Document, finalNumber int64) (*Document, error) {
	if proforma.Kind != KindProforma {
		return nil, shared.NewDomainError("NOT_PROFORMA", "Only a proforma can be converted")
	}
	if proforma.ConvertedToFinal {
		return nil, shared.ErrAlreadyConverted
	}
	if finalNumber <= 0 {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number must be positive")
	}

	doc := &Document{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            finalNumber,
		Kind:              KindFinal,
		CustomerName:      proforma.CustomerName,
		CustomerIDNumber:  proforma.CustomerIDNumber,
		CustomerPhone:     proforma.CustomerPhone,
		ItemID:            proforma.ItemID,
		Product:           proforma.Product,
		ContractType:      proforma.ContractType,
		BasePrice:         proforma.BasePrice,
		Discount:          proforma.Discount,
		IssueDate:         time.Now(),
	}
	doc.recalculate()

	doc.AddDomainEvent(NewDocumentIssuedEvent(doc))

	return doc, nil
}

// IsFinal returns true for binding sale invoices
func (d *Document) IsFinal() bool {
	return d.Kind == KindFinal
}

// IsProforma returns true for non-binding quotes
func (d *Document) IsProforma() bool {
	return d.Kind == KindProforma
}

// CanModify returns true while the document may still be edited
func (d *Document) CanModify() bool {
	return !d.ConvertedToFinal && !d.HasPaidInstallments()
}

// HasPaidInstallments returns true if any installment has been settled
func (d *Document) HasPaidInstallments() bool {
	for idx := range d.Installments {
		if d.Installments[idx].IsPaid() {
			return true
		}
	}
	return false
}

// Update edits the commercial terms of the document. The payable amount and
// the installment schedule are recomputed; not allowed once the proforma has
// been converted or any installment has been paid.
func (d *Document) Update(customer CustomerInfo, contractType ContractType, basePrice, discount decimal.Decimal) error {
	if d.ConvertedToFinal {
		return shared.ErrAlreadyConverted
	}
	if d.HasPaidInstallments() {
		return shared.NewDomainError("HAS_PAYMENTS", "Cannot edit a document with settled installments")
	}
	if customer.Name == "" {
		return shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if !contractType.IsValid() {
		return shared.NewDomainError("INVALID_CONTRACT_TYPE", "Unknown contract type")
	}
	if basePrice.IsNegative() {
		basePrice = decimal.Zero
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}

	d.CustomerName = customer.Name
	d.CustomerIDNumber = customer.IDNumber
	d.CustomerPhone = customer.Phone
	d.ContractType = contractType
	d.BasePrice = basePrice
	d.Discount = discount
	d.recalculate()
	d.UpdatedAt = time.Now()

	d.AddDomainEvent(NewDocumentUpdatedEvent(d))

	return nil
}

// ChangeItem points the document at a different inventory item, refreshing
// the product snapshot. Subject to the same edit rules as Update.
func (d *Document) ChangeItem(itemID uuid.UUID, product ProductSnapshot) error {
	if d.ConvertedToFinal {
		return shared.ErrAlreadyConverted
	}
	if d.HasPaidInstallments() {
		return shared.NewDomainError("HAS_PAYMENTS", "Cannot edit a document with settled installments")
	}
	if itemID == uuid.Nil {
		return shared.NewDomainError("NO_ITEM_SELECTED", "An inventory item must be selected")
	}

	d.ItemID = itemID
	d.Product = product
	d.UpdatedAt = time.Now()

	return nil
}

// MakeFinal flips an edited proforma into a final invoice in place, pulling
// the next number of the final sequence. Unlike conversion, no proforma copy
// is retained.
func (d *Document) MakeFinal(finalNumber int64) error {
	if d.Kind == KindFinal {
		return shared.NewDomainError("ALREADY_FINAL", "Document is already final")
	}
	if d.ConvertedToFinal {
		return shared.ErrAlreadyConverted
	}
	if finalNumber <= 0 {
		return shared.NewDomainError("INVALID_NUMBER", "Document number must be positive")
	}

	d.Kind = KindFinal
	d.Number = finalNumber
	d.recalculate()
	d.UpdatedAt = time.Now()

	return nil
}

// MarkConverted flags the proforma as converted so it cannot be converted or
// edited again. The proforma itself is retained for consultation.
func (d *Document) MarkConverted() error {
	if d.Kind != KindProforma {
		return shared.NewDomainError("NOT_PROFORMA", "Only a proforma can be marked converted")
	}
	if d.ConvertedToFinal {
		return shared.ErrAlreadyConverted
	}

	now := time.Now()
	d.ConvertedToFinal = true
	d.ConvertedAt = &now
	d.UpdatedAt = now

	d.AddDomainEvent(NewDocumentConvertedEvent(d))

	return nil
}

// Installment returns the installment with the given 1-based ordinal
func (d *Document) Installment(ordinal int) (*Installment, error) {
	for idx := range d.Installments {
		if d.Installments[idx].Ordinal == ordinal {
			return &d.Installments[idx], nil
		}
	}
	return nil, shared.NewDomainError("INSTALLMENT_NOT_FOUND", "Installment not found")
}

// ConfirmInstallment settles one installment against a receipt number
func (d *Document) ConfirmInstallment(ordinal int, receiptNumber int64, paidAt time.Time) error {
	inst, err := d.Installment(ordinal)
	if err != nil {
		return err
	}
	if err := inst.MarkPaid(receiptNumber, paidAt); err != nil {
		return err
	}
	d.UpdatedAt = time.Now()
	return nil
}

// RevertInstallment reverses a settled installment back to pending
func (d *Document) RevertInstallment(ordinal int) error {
	inst, err := d.Installment(ordinal)
	if err != nil {
		return err
	}
	if err := inst.Revert(); err != nil {
		return err
	}
	d.UpdatedAt = time.Now()
	return nil
}

// OutstandingAmount returns the sum of pending installment amounts
func (d *Document) OutstandingAmount() decimal.Decimal {
	total := decimal.Zero
	for idx := range d.Installments {
		if !d.Installments[idx].IsPaid() {
			total = total.Add(d.Installments[idx].Amount)
		}
	}
	return total
}

// recalculate rederives the payable amount and regenerates the schedule.
// Only callable while no installment is paid.
func (d *Document) recalculate() {
	d.PayableAmount = CalculatePayable(d.BasePrice, d.ContractType, d.Discount)
	d.Installments = GenerateSchedule(d.ID, d.PayableAmount, d.ContractType, d.IssueDate)
}
