package settlement

import (
	"context"

	"github.com/google/uuid"
	"github.com/revenda/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ReceiptRepository defines persistence operations for receipts
type ReceiptRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Receipt, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Receipt, error)
	FindByDocument(ctx context.Context, documentID uuid.UUID) ([]Receipt, error)
	// NextNumber allocates the next receipt sequence number
	NextNumber(ctx context.Context) (int64, error)
	Save(ctx context.Context, receipt *Receipt) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// SumAmounts returns the total of all receipt amounts (collected cash)
	SumAmounts(ctx context.Context) (decimal.Decimal, error)
}
