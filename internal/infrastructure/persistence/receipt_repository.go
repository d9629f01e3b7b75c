package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/revenda/backend/internal/domain/settlement"
	"github.com/revenda/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReceiptRepository implements ReceiptRepository using GORM
type GormReceiptRepository struct {
	db *gorm.DB
}

// NewGormReceiptRepository creates a new GormReceiptRepository
func NewGormReceiptRepository(db *gorm.DB) *GormReceiptRepository {
	return &GormReceiptRepository{db: db}
}

// conn joins the transaction carried by ctx, if any
func (r *GormReceiptRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds a receipt by its ID
func (r *GormReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*settlement.Receipt, error) {
	var receipt settlement.Receipt
	if err := r.conn(ctx).First(&receipt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

// FindAll finds all receipts with filtering
func (r *GormReceiptRepository) FindAll(ctx context.Context, filter shared.Filter) ([]settlement.Receipt, error) {
	var receipts []settlement.Receipt
	query := r.applyFilter(
		r.conn(ctx).Model(&settlement.Receipt{}),
		filter,
	)

	if err := query.Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

// FindByDocument finds the receipts issued against a document
func (r *GormReceiptRepository) FindByDocument(ctx context.Context, documentID uuid.UUID) ([]settlement.Receipt, error) {
	var receipts []settlement.Receipt
	if err := r.conn(ctx).
		Where("document_id = ?", documentID).
		Order("installment_ordinal ASC").
		Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

// NextNumber allocates the next receipt sequence number, starting at 1
func (r *GormReceiptRepository) NextNumber(ctx context.Context) (int64, error) {
	var max int64
	if err := r.conn(ctx).
		Model(&settlement.Receipt{}).
		Select("COALESCE(MAX(number), 0)").
		Row().Scan(&max); err != nil {
		return 0, err
	}
	return max + 1, nil
}

// Save creates or updates a receipt
func (r *GormReceiptRepository) Save(ctx context.Context, receipt *settlement.Receipt) error {
	return r.conn(ctx).Save(receipt).Error
}

// Delete deletes a receipt
func (r *GormReceiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&settlement.Receipt{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts receipts with optional filters
func (r *GormReceiptRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.conn(ctx).Model(&settlement.Receipt{}),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumAmounts totals every receipt amount, the cash collected so far
func (r *GormReceiptRepository) SumAmounts(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.conn(ctx).
		Model(&settlement.Receipt{}).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// applyFilter applies filter options to the query
func (r *GormReceiptRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, ReceiptSortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormReceiptRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(customer_name) LIKE ? OR LOWER(product_description) LIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "document_id":
			query = query.Where("document_id = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("paid_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("paid_at <= ?", t)
			}
		}
	}

	return query
}
