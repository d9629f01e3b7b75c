package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is anything with a stable identity in the engine.
type Entity interface {
	GetID() uuid.UUID
}

// BaseEntity carries the identity and audit stamps shared by every
// persisted record. The ID is assigned at construction, not by the store,
// so documents and receipts can reference each other before the first save.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// NewBaseEntity creates a base entity with a fresh ID and audit stamps
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
