package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/revenda/backend/internal/domain/billing"
	"github.com/revenda/backend/internal/domain/inventory"
	"github.com/revenda/backend/internal/domain/shared"
)

// DocumentService orchestrates the document lifecycle: issuing, editing,
// proforma-to-final conversion and deletion. Every mutation reconciles the
// reservation flag of the referenced inventory item with the set of
// undeleted final documents, so the flag is never toggled ad hoc.
type DocumentService struct {
	docRepo        billing.DocumentRepository
	itemRepo       inventory.InventoryItemRepository
	eventPublisher shared.EventPublisher
	txManager      shared.TransactionManager
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(docRepo billing.DocumentRepository, itemRepo inventory.InventoryItemRepository) *DocumentService {
	return &DocumentService{
		docRepo:  docRepo,
		itemRepo: itemRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *DocumentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetTransactionManager sets the transaction manager that keeps
// multi-document writes atomic
func (s *DocumentService) SetTransactionManager(txManager shared.TransactionManager) {
	s.txManager = txManager
}

// inTransaction runs fn through the transaction manager when one is
// configured, directly otherwise
func (s *DocumentService) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.txManager == nil {
		return fn(ctx)
	}
	return s.txManager.WithinTransaction(ctx, fn)
}

// Issue creates a new document (proforma or final invoice). The referenced
// item must exist and be unreserved; sold stock cannot be quoted or sold
// again. Numbers come from the sequence of the requested kind.
func (s *DocumentService) Issue(ctx context.Context, req IssueDocumentRequest) (*DocumentResponse, error) {
	if req.ItemID == uuid.Nil {
		return nil, shared.NewDomainError("NO_ITEM_SELECTED", "An inventory item must be selected")
	}

	item, err := s.itemRepo.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if item.Reserved {
		return nil, shared.ErrItemReserved
	}

	kind := billing.KindProforma
	if req.IsFinal {
		kind = billing.KindFinal
	}

	number, err := s.docRepo.NextNumber(ctx, kind)
	if err != nil {
		return nil, err
	}

	doc, err := billing.NewDocument(
		kind,
		number,
		billing.CustomerInfo{Name: req.CustomerName, IDNumber: req.CustomerIDNumber, Phone: req.CustomerPhone},
		item.ID,
		productSnapshot(item),
		req.ContractType,
		req.BasePrice,
		req.Discount,
	)
	if err != nil {
		return nil, err
	}

	if err := s.docRepo.Save(ctx, doc); err != nil {
		return nil, err
	}

	if doc.IsFinal() {
		if err := s.reconcileReservation(ctx, doc.ItemID); err != nil {
			return nil, err
		}
	}

	s.publishEvents(ctx, doc)

	response := ToDocumentResponse(doc)
	return &response, nil
}

// Update edits a document's customer, item and commercial terms. The payable
// amount and schedule are recomputed. Flipping IsFinal on a proforma
// finalizes it in place with the next final number; a final document cannot
// revert to proforma.
func (s *DocumentService) Update(ctx context.Context, documentID uuid.UUID, req UpdateDocumentRequest) (*DocumentResponse, error) {
	doc, err := s.docRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.IsFinal() && !req.IsFinal {
		return nil, shared.NewDomainError("INVALID_STATE", "A final document cannot revert to proforma")
	}
	if req.ItemID == uuid.Nil {
		return nil, shared.NewDomainError("NO_ITEM_SELECTED", "An inventory item must be selected")
	}

	previousItemID := doc.ItemID
	if req.ItemID != doc.ItemID {
		item, err := s.itemRepo.FindByID(ctx, req.ItemID)
		if err != nil {
			return nil, err
		}
		if item.Reserved {
			return nil, shared.ErrItemReserved
		}
		if err := doc.ChangeItem(item.ID, productSnapshot(item)); err != nil {
			return nil, err
		}
	}

	if err := doc.Update(
		billing.CustomerInfo{Name: req.CustomerName, IDNumber: req.CustomerIDNumber, Phone: req.CustomerPhone},
		req.ContractType,
		req.BasePrice,
		req.Discount,
	); err != nil {
		return nil, err
	}

	if req.IsFinal && doc.IsProforma() {
		number, err := s.docRepo.NextNumber(ctx, billing.KindFinal)
		if err != nil {
			return nil, err
		}
		if err := doc.MakeFinal(number); err != nil {
			return nil, err
		}
	}

	if err := s.docRepo.Save(ctx, doc); err != nil {
		return nil, err
	}

	if err := s.reconcileReservation(ctx, doc.ItemID); err != nil {
		return nil, err
	}
	if previousItemID != doc.ItemID {
		if err := s.reconcileReservation(ctx, previousItemID); err != nil {
			return nil, err
		}
	}

	s.publishEvents(ctx, doc)

	response := ToDocumentResponse(doc)
	return &response, nil
}

// ConvertToFinal creates a new final document from a proforma. The proforma
// is retained and marked converted; its number is never reused. The
// installment schedule is regenerated against the current date.
func (s *DocumentService) ConvertToFinal(ctx context.Context, proformaID uuid.UUID) (*DocumentResponse, error) {
	proforma, err := s.docRepo.FindByID(ctx, proformaID)
	if err != nil {
		return nil, err
	}
	if proforma.ConvertedToFinal {
		return nil, shared.ErrAlreadyConverted
	}

	item, err := s.itemRepo.FindByID(ctx, proforma.ItemID)
	if err != nil {
		return nil, err
	}
	if item.Reserved {
		return nil, shared.ErrItemReserved
	}

	number, err := s.docRepo.NextNumber(ctx, billing.KindFinal)
	if err != nil {
		return nil, err
	}

	finalDoc, err := billing.NewFinalFromProforma(proforma, number)
	if err != nil {
		return nil, err
	}
	if err := proforma.MarkConverted(); err != nil {
		return nil, err
	}

	if err := s.inTransaction(ctx, func(txCtx context.Context) error {
		if err := s.docRepo.Save(txCtx, finalDoc); err != nil {
			return err
		}
		return s.docRepo.Save(txCtx, proforma)
	}); err != nil {
		return nil, err
	}

	if err := s.reconcileReservation(ctx, finalDoc.ItemID); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, finalDoc)
	s.publishEvents(ctx, proforma)

	response := ToDocumentResponse(finalDoc)
	return &response, nil
}

// Delete removes a document. The referenced item's reservation is
// reconciled afterwards: it stays reserved only while another undeleted
// final document references it.
func (s *DocumentService) Delete(ctx context.Context, documentID uuid.UUID) error {
	doc, err := s.docRepo.FindByID(ctx, documentID)
	if err != nil {
		return err
	}

	if err := s.docRepo.Delete(ctx, doc.ID); err != nil {
		return err
	}

	if doc.IsFinal() {
		if err := s.reconcileReservation(ctx, doc.ItemID); err != nil {
			return err
		}
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, billing.NewDocumentDeletedEvent(doc))
	}

	return nil
}

// GetByID retrieves a document by ID
func (s *DocumentService) GetByID(ctx context.Context, documentID uuid.UUID) (*DocumentResponse, error) {
	doc, err := s.docRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	response := ToDocumentResponse(doc)
	return &response, nil
}

// List retrieves documents with filtering and pagination
func (s *DocumentService) List(ctx context.Context, filter DocumentListFilter) ([]DocumentResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	var docs []billing.Document
	var err error
	if filter.Kind != nil {
		domainFilter.Filters["kind"] = *filter.Kind
		docs, err = s.docRepo.FindByKind(ctx, *filter.Kind, domainFilter)
	} else {
		docs, err = s.docRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.docRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]DocumentResponse, len(docs))
	for idx := range docs {
		responses[idx] = ToDocumentResponse(&docs[idx])
	}
	return responses, total, nil
}

// reconcileReservation recomputes the reservation flag of an item from the
// undeleted final documents referencing it. A missing item is not an error:
// documents keep their product snapshot and must survive inventory deletion.
func (s *DocumentService) reconcileReservation(ctx context.Context, itemID uuid.UUID) error {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}

	finals, err := s.docRepo.FindFinalsByItem(ctx, itemID)
	if err != nil {
		return err
	}

	shouldReserve := len(finals) > 0
	if shouldReserve == item.Reserved {
		return nil
	}

	if shouldReserve {
		item.Reserve()
	} else {
		item.Release()
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return err
	}

	s.publishEvents(ctx, item)
	return nil
}

// publishEvents publishes and clears an aggregate's pending domain events
func (s *DocumentService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	aggregate.ClearDomainEvents()
}

// productSnapshot captures the item's details onto a document
func productSnapshot(item *inventory.InventoryItem) billing.ProductSnapshot {
	return billing.ProductSnapshot{
		DeviceType: item.DeviceType,
		Brand:      item.Brand,
		Model:      item.Model,
		Storage:    item.Storage,
		Color:      item.Color,
		Condition:  item.Condition.String(),
	}
}
