package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/revenda/backend/internal/domain/billing"
	"github.com/revenda/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormDocumentRepository implements DocumentRepository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// conn joins the transaction carried by ctx, if any
func (r *GormDocumentRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds a document by its ID, installments included
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Document, error) {
	var doc billing.Document
	if err := r.conn(ctx).
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("ordinal ASC")
		}).
		First(&doc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// FindAll finds all documents with filtering
func (r *GormDocumentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Document, error) {
	var docs []billing.Document
	query := r.applyFilter(
		r.conn(ctx).Model(&billing.Document{}),
		filter,
	)

	if err := query.
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("ordinal ASC")
		}).
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// FindByKind finds documents of a single kind with filtering
func (r *GormDocumentRepository) FindByKind(ctx context.Context, kind billing.DocumentKind, filter shared.Filter) ([]billing.Document, error) {
	var docs []billing.Document
	query := r.applyFilter(
		r.conn(ctx).Model(&billing.Document{}).Where("kind = ?", kind),
		filter,
	)

	if err := query.
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("ordinal ASC")
		}).
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// FindFinalsByItem finds the final documents referencing an inventory item
func (r *GormDocumentRepository) FindFinalsByItem(ctx context.Context, itemID uuid.UUID) ([]billing.Document, error) {
	var docs []billing.Document
	if err := r.conn(ctx).
		Where("kind = ? AND item_id = ?", billing.KindFinal, itemID).
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// NextNumber allocates the next sequence number within a document kind.
// Each kind counts independently, starting at 1.
func (r *GormDocumentRepository) NextNumber(ctx context.Context, kind billing.DocumentKind) (int64, error) {
	var max int64
	if err := r.conn(ctx).
		Model(&billing.Document{}).
		Where("kind = ?", kind).
		Select("COALESCE(MAX(number), 0)").
		Row().Scan(&max); err != nil {
		return 0, err
	}
	return max + 1, nil
}

// SumPayableByKind totals the payable amounts of all documents of a kind
func (r *GormDocumentRepository) SumPayableByKind(ctx context.Context, kind billing.DocumentKind) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.conn(ctx).
		Model(&billing.Document{}).
		Where("kind = ?", kind).
		Select("COALESCE(SUM(payable_amount), 0)").
		Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// Save creates or updates a document together with its installment rows
func (r *GormDocumentRepository) Save(ctx context.Context, doc *billing.Document) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(doc).Error; err != nil {
			return err
		}

		// Handle installments: delete removed rows and save/update existing ones
		if doc.ID != uuid.Nil {
			currentIDs := make([]uuid.UUID, len(doc.Installments))
			for i, inst := range doc.Installments {
				currentIDs[i] = inst.ID
			}

			if len(currentIDs) > 0 {
				if err := tx.Where("document_id = ? AND id NOT IN ?", doc.ID, currentIDs).
					Delete(&billing.Installment{}).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Where("document_id = ?", doc.ID).
					Delete(&billing.Installment{}).Error; err != nil {
					return err
				}
			}

			for i := range doc.Installments {
				doc.Installments[i].DocumentID = doc.ID
				if err := tx.Save(&doc.Installments[i]).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// Delete deletes a document and its installment rows
func (r *GormDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", id).Delete(&billing.Installment{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&billing.Document{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts documents with optional filters
func (r *GormDocumentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.conn(ctx).Model(&billing.Document{}),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormDocumentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering
	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, DocumentSortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormDocumentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(customer_name) LIKE ? OR LOWER(product_brand) LIKE ? OR LOWER(product_model) LIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "kind":
			query = query.Where("kind = ?", value)
		case "item_id":
			query = query.Where("item_id = ?", value)
		case "contract_type":
			query = query.Where("contract_type = ?", value)
		case "converted":
			query = query.Where("converted_to_final = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("issue_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("issue_date <= ?", t)
			}
		}
	}

	return query
}
