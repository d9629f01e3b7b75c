package inventory

import (
	"time"

	"github.com/revenda/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DeviceCondition represents the physical condition of a device
type DeviceCondition string

const (
	ConditionNew       DeviceCondition = "NEW"
	ConditionOpenBox   DeviceCondition = "OPEN_BOX"
	ConditionExcellent DeviceCondition = "EXCELLENT"
	ConditionVeryGood  DeviceCondition = "VERY_GOOD"
	ConditionGood      DeviceCondition = "GOOD"
	ConditionUsed      DeviceCondition = "USED"
)

// IsValid checks if the condition is a valid DeviceCondition
func (c DeviceCondition) IsValid() bool {
	switch c {
	case ConditionNew, ConditionOpenBox, ConditionExcellent, ConditionVeryGood, ConditionGood, ConditionUsed:
		return true
	}
	return false
}

// String returns the string representation of DeviceCondition
func (c DeviceCondition) String() string {
	return string(c)
}

// InventoryItem represents a single sellable device
// TotalCost is the landed acquisition cost computed by the import calculator
// and is opaque to the billing engine
type InventoryItem struct {
	shared.BaseAggregateRoot
	DeviceType string
	Brand      string
	Model      string
	Storage    string
	Color      string
	Condition  DeviceCondition
	Specs      string
	TotalCost  decimal.Decimal
	Reserved   bool
}

// NewInventoryItem creates a new inventory item
func NewInventoryItem(deviceType, brand, model, storage, color string, condition DeviceCondition, totalCost decimal.Decimal) (*InventoryItem, error) {
	if deviceType == "" {
		return nil, shared.NewDomainError("INVALID_DEVICE_TYPE", "Device type cannot be empty")
	}
	if brand == "" {
		return nil, shared.NewDomainError("INVALID_BRAND", "Brand cannot be empty")
	}
	if model == "" {
		return nil, shared.NewDomainError("INVALID_MODEL", "Model cannot be empty")
	}
	if !condition.IsValid() {
		return nil, shared.NewDomainError("INVALID_CONDITION", "Unknown device condition")
	}
	if totalCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Total cost cannot be negative")
	}

	item := &InventoryItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		DeviceType:        deviceType,
		Brand:             brand,
		Model:             model,
		Storage:           storage,
		Color:             color,
		Condition:         condition,
		TotalCost:         totalCost,
		Reserved:          false,
	}

	item.AddDomainEvent(NewItemRegisteredEvent(item))

	return item, nil
}

// SetSpecs sets the free-form specs text
func (i *InventoryItem) SetSpecs(specs string) {
	i.Specs = specs
	i.UpdatedAt = time.Now()
}

// Reserve marks the item as committed to a sale
// Idempotent: reserving an already reserved item is a no-op
func (i *InventoryItem) Reserve() {
	if i.Reserved {
		return
	}
	i.Reserved = true
	i.UpdatedAt = time.Now()
	i.AddDomainEvent(NewItemReservedEvent(i))
}

// Release clears the reservation, returning the item to the catalog
// Idempotent: releasing an unreserved item is a no-op
func (i *InventoryItem) Release() {
	if !i.Reserved {
		return
	}
	i.Reserved = false
	i.UpdatedAt = time.Now()
	i.AddDomainEvent(NewItemReleasedEvent(i))
}

// IsAvailable returns true if the item can back a new document
func (i *InventoryItem) IsAvailable() bool {
	return !i.Reserved
}

// Description returns a human-readable device description
func (i *InventoryItem) Description() string {
	desc := i.Brand + " " + i.Model
	if i.Storage != "" {
		desc += " " + i.Storage
	}
	if i.Color != "" {
		desc += " " + i.Color
	}
	return desc
}
