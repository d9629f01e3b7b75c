package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/revenda/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DocumentRepository defines persistence operations for documents
type DocumentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Document, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Document, error)
	FindByKind(ctx context.Context, kind DocumentKind, filter shared.Filter) ([]Document, error)
	// FindFinalsByItem returns the undeleted final documents referencing an item;
	// used to reconcile the item's reservation flag
	FindFinalsByItem(ctx context.Context, itemID uuid.UUID) ([]Document, error)
	// NextNumber allocates the next sequence number within the given kind
	NextNumber(ctx context.Context, kind DocumentKind) (int64, error)
	// SumPayableByKind totals the payable amounts of all documents of a kind;
	// over finals this is the recognized revenue
	SumPayableByKind(ctx context.Context, kind DocumentKind) (decimal.Decimal, error)
	Save(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
