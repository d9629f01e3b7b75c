package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/revenda/backend/internal/domain/shared"
)

// InventoryItemRepository defines persistence operations for inventory items
type InventoryItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]InventoryItem, error)
	// FindAvailable returns unreserved items; includeID, when non-nil,
	// is also returned regardless of its reservation state
	FindAvailable(ctx context.Context, includeID *uuid.UUID) ([]InventoryItem, error)
	Save(ctx context.Context, item *InventoryItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
