package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/revenda/backend/internal/domain/inventory"
	"github.com/revenda/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CatalogService manages the device stock and exposes the selectable
// catalog to the billing screens: unreserved items, plus the one item
// already tied to a document being edited.
type CatalogService struct {
	itemRepo       inventory.InventoryItemRepository
	eventPublisher shared.EventPublisher
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(itemRepo inventory.InventoryItemRepository) *CatalogService {
	return &CatalogService{itemRepo: itemRepo}
}

// SetEventPublisher sets the event publisher for domain events
func (s *CatalogService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// RegisterItemRequest carries the data needed to register a device
type RegisterItemRequest struct {
	DeviceType string
	Brand      string
	Model      string
	Storage    string
	Color      string
	Condition  inventory.DeviceCondition
	Specs      string
	TotalCost  decimal.Decimal
}

// ItemResponse is the API representation of an inventory item
type ItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	DeviceType  string          `json:"device_type"`
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
	Storage     string          `json:"storage"`
	Color       string          `json:"color"`
	Condition   string          `json:"condition"`
	Specs       string          `json:"specs,omitempty"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	Reserved    bool            `json:"reserved"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToItemResponse maps an inventory item to its API representation
func ToItemResponse(item *inventory.InventoryItem) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		DeviceType:  item.DeviceType,
		Brand:       item.Brand,
		Model:       item.Model,
		Storage:     item.Storage,
		Color:       item.Color,
		Condition:   item.Condition.String(),
		Specs:       item.Specs,
		TotalCost:   item.TotalCost,
		Reserved:    item.Reserved,
		Description: item.Description(),
		CreatedAt:   item.CreatedAt,
	}
}

// ListAvailable returns the unreserved items. When includeItemID is non-nil
// that item is included even if reserved, so an edit screen can keep showing
// the item the document already references.
func (s *CatalogService) ListAvailable(ctx context.Context, includeItemID *uuid.UUID) ([]ItemResponse, error) {
	items, err := s.itemRepo.FindAvailable(ctx, includeItemID)
	if err != nil {
		return nil, err
	}

	responses := make([]ItemResponse, len(items))
	for idx := range items {
		responses[idx] = ToItemResponse(&items[idx])
	}
	return responses, nil
}

// List returns all items with filtering
func (s *CatalogService) List(ctx context.Context, filter shared.Filter) ([]ItemResponse, int64, error) {
	items, err := s.itemRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.itemRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ItemResponse, len(items))
	for idx := range items {
		responses[idx] = ToItemResponse(&items[idx])
	}
	return responses, total, nil
}

// GetByID retrieves a single item
func (s *CatalogService) GetByID(ctx context.Context, itemID uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// Register adds a device to the stock
func (s *CatalogService) Register(ctx context.Context, req RegisterItemRequest) (*ItemResponse, error) {
	item, err := inventory.NewInventoryItem(
		req.DeviceType,
		req.Brand,
		req.Model,
		req.Storage,
		req.Color,
		req.Condition,
		req.TotalCost,
	)
	if err != nil {
		return nil, err
	}
	if req.Specs != "" {
		item.SetSpecs(req.Specs)
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, item)

	response := ToItemResponse(item)
	return &response, nil
}

// Remove deletes a device from the stock. Reserved items cannot be removed
// while a final document still references them.
func (s *CatalogService) Remove(ctx context.Context, itemID uuid.UUID) error {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.Reserved {
		return shared.ErrItemReserved
	}
	return s.itemRepo.Delete(ctx, itemID)
}

// publishEvents publishes domain events from the aggregate
func (s *CatalogService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
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
