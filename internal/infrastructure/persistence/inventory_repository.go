package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/revenda/backend/internal/domain/inventory"
	"github.com/revenda/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInventoryItemRepository implements InventoryItemRepository using GORM
type GormInventoryItemRepository struct {
	db *gorm.DB
}

// NewGormInventoryItemRepository creates a new GormInventoryItemRepository
func NewGormInventoryItemRepository(db *gorm.DB) *GormInventoryItemRepository {
	return &GormInventoryItemRepository{db: db}
}

// conn joins the transaction carried by ctx, if any
func (r *GormInventoryItemRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds an inventory item by its ID
func (r *GormInventoryItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	var item inventory.InventoryItem
	if err := r.conn(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAll finds all inventory items with filtering
func (r *GormInventoryItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.InventoryItem, error) {
	var items []inventory.InventoryItem
	query := r.applyFilter(
		r.conn(ctx).Model(&inventory.InventoryItem{}),
		filter,
	)

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindAvailable finds the unreserved items. When includeID is non-nil that
// item is included even if reserved, so an edit form can keep showing the
// item currently attached to the document being edited.
func (r *GormInventoryItemRepository) FindAvailable(ctx context.Context, includeID *uuid.UUID) ([]inventory.InventoryItem, error) {
	var items []inventory.InventoryItem
	query := r.conn(ctx).Model(&inventory.InventoryItem{})

	if includeID != nil {
		query = query.Where("reserved = ? OR id = ?", false, *includeID)
	} else {
		query = query.Where("reserved = ?", false)
	}

	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates an inventory item
func (r *GormInventoryItemRepository) Save(ctx context.Context, item *inventory.InventoryItem) error {
	return r.conn(ctx).Save(item).Error
}

// Delete deletes an inventory item
func (r *GormInventoryItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&inventory.InventoryItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts inventory items with optional filters
func (r *GormInventoryItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.conn(ctx).Model(&inventory.InventoryItem{}),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormInventoryItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, InventoryItemSortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormInventoryItemRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(brand) LIKE ? OR LOWER(model) LIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "reserved":
			query = query.Where("reserved = ?", value)
		case "device_type":
			query = query.Where("device_type = ?", value)
		case "brand":
			query = query.Where("brand = ?", value)
		case "condition":
			query = query.Where("condition = ?", value)
		}
	}

	return query
}
