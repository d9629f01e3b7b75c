package report

import (
	"context"
	"sync"

	"github.com/revenda/backend/internal/domain/billing"
	"github.com/revenda/backend/internal/domain/inventory"
	"github.com/revenda/backend/internal/domain/settlement"
	"github.com/revenda/backend/internal/domain/shared"
	"github.com/revenda/backend/internal/domain/shared/valueobject"
)

// Summary holds the business aggregates shown on the reports screen.
// Monetary figures are in kwanza, the system's operating currency.
type Summary struct {
	Revenue        valueobject.Money `json:"revenue"`
	Collected      valueobject.Money `json:"collected"`
	Outstanding    valueobject.Money `json:"outstanding"`
	FinalDocuments int64             `json:"final_documents"`
	Proformas      int64             `json:"proformas"`
	Receipts       int64             `json:"receipts"`
	ItemsInStock   int64             `json:"items_in_stock"`
	ItemsReserved  int64             `json:"items_reserved"`
}

// ReportService computes revenue, collected-cash and outstanding-debt
// aggregates. Results are cached and the cache is invalidated whenever a
// billing or settlement event arrives on the bus, so report consumers
// re-read instead of receiving deltas.
type ReportService struct {
	docRepo     billing.DocumentRepository
	receiptRepo settlement.ReceiptRepository
	itemRepo    inventory.InventoryItemRepository

	mu     sync.Mutex
	cached *Summary
}

// NewReportService creates a new ReportService
func NewReportService(docRepo billing.DocumentRepository, receiptRepo settlement.ReceiptRepository, itemRepo inventory.InventoryItemRepository) *ReportService {
	return &ReportService{
		docRepo:     docRepo,
		receiptRepo: receiptRepo,
		itemRepo:    itemRepo,
	}
}

// Handle invalidates the cached summary when any observed event arrives
func (s *ReportService) Handle(ctx context.Context, event shared.DomainEvent) error {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
	return nil
}

// EventTypes returns the event types that invalidate the summary
func (s *ReportService) EventTypes() []string {
	return []string{
		billing.EventTypeDocumentIssued,
		billing.EventTypeDocumentUpdated,
		billing.EventTypeDocumentConverted,
		billing.EventTypeDocumentDeleted,
		settlement.EventTypePaymentConfirmed,
		settlement.EventTypeReceiptReversed,
		inventory.EventTypeItemRegistered,
		inventory.EventTypeItemReserved,
		inventory.EventTypeItemReleased,
	}
}

// GetSummary returns the current business summary, recomputing it if a
// mutation occurred since the last read
func (s *ReportService) GetSummary(ctx context.Context) (*Summary, error) {
	s.mu.Lock()
	cached := s.cached
	s.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	revenue, err := s.docRepo.SumPayableByKind(ctx, billing.KindFinal)
	if err != nil {
		return nil, err
	}
	collected, err := s.receiptRepo.SumAmounts(ctx)
	if err != nil {
		return nil, err
	}

	finalFilter := shared.DefaultFilter()
	finalFilter.Filters["kind"] = billing.KindFinal
	finals, err := s.docRepo.Count(ctx, finalFilter)
	if err != nil {
		return nil, err
	}

	proformaFilter := shared.DefaultFilter()
	proformaFilter.Filters["kind"] = billing.KindProforma
	proformas, err := s.docRepo.Count(ctx, proformaFilter)
	if err != nil {
		return nil, err
	}

	receipts, err := s.receiptRepo.Count(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	stockFilter := shared.DefaultFilter()
	stockFilter.Filters["reserved"] = false
	inStock, err := s.itemRepo.Count(ctx, stockFilter)
	if err != nil {
		return nil, err
	}

	reservedFilter := shared.DefaultFilter()
	reservedFilter.Filters["reserved"] = true
	reserved, err := s.itemRepo.Count(ctx, reservedFilter)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Revenue:        valueobject.NewMoneyAOA(revenue),
		Collected:      valueobject.NewMoneyAOA(collected),
		Outstanding:    valueobject.NewMoneyAOA(revenue.Sub(collected)),
		FinalDocuments: finals,
		Proformas:      proformas,
		Receipts:       receipts,
		ItemsInStock:   inStock,
		ItemsReserved:  reserved,
	}

	s.mu.Lock()
	s.cached = summary
	s.mu.Unlock()

	return summary, nil
}

// Ensure ReportService can subscribe to the event bus
var _ shared.EventHandler = (*ReportService)(nil)
