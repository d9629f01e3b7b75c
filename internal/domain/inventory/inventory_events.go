package inventory

import (
	"github.com/google/uuid"
	"github.com/revenda/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeInventoryItem = "InventoryItem"

// Event type constants
const (
	EventTypeItemRegistered = "InventoryItemRegistered"
	EventTypeItemReserved   = "InventoryItemReserved"
	EventTypeItemReleased   = "InventoryItemReleased"
)

// ItemRegisteredEvent is raised when a new item enters the catalog
type ItemRegisteredEvent struct {
	shared.BaseDomainEvent
	ItemID     uuid.UUID `json:"item_id"`
	DeviceType string    `json:"device_type"`
	Brand      string    `json:"brand"`
	Model      string    `json:"model"`
}

// NewItemRegisteredEvent creates a new ItemRegisteredEvent
func NewItemRegisteredEvent(item *InventoryItem) *ItemRegisteredEvent {
	return &ItemRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemRegistered, AggregateTypeInventoryItem, item.ID),
		ItemID:          item.ID,
		DeviceType:      item.DeviceType,
		Brand:           item.Brand,
		Model:           item.Model,
	}
}

// EventType returns the event type name
func (e *ItemRegisteredEvent) EventType() string {
	return EventTypeItemRegistered
}

// ItemReservedEvent is raised when an item is committed to a sale
type ItemReservedEvent struct {
	shared.BaseDomainEvent
	ItemID uuid.UUID `json:"item_id"`
}

// NewItemReservedEvent creates a new ItemReservedEvent
func NewItemReservedEvent(item *InventoryItem) *ItemReservedEvent {
	return &ItemReservedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemReserved, AggregateTypeInventoryItem, item.ID),
		ItemID:          item.ID,
	}
}

// EventType returns the event type name
func (e *ItemReservedEvent) EventType() string {
	return EventTypeItemReserved
}

// ItemReleasedEvent is raised when an item returns to the catalog
type ItemReleasedEvent struct {
	shared.BaseDomainEvent
	ItemID uuid.UUID `json:"item_id"`
}

// NewItemReleasedEvent creates a new ItemReleasedEvent
func NewItemReleasedEvent(item *InventoryItem) *ItemReleasedEvent {
	return &ItemReleasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemReleased, AggregateTypeInventoryItem, item.ID),
		ItemID:          item.ID,
	}
}

// EventType returns the event type name
func (e *ItemReleasedEvent) EventType() string {
	return EventTypeItemReleased
}
