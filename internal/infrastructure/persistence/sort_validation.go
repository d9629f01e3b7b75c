package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// DocumentSortFields contains allowed sort fields for billing documents
var DocumentSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"number":         true,
	"kind":           true,
	"customer_name":  true,
	"issue_date":     true,
	"payable_amount": true,
}

// InventoryItemSortFields contains allowed sort fields for inventory items
var InventoryItemSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"brand":       true,
	"model":       true,
	"device_type": true,
	"condition":   true,
	"total_cost":  true,
}

// ReceiptSortFields contains allowed sort fields for payment receipts
var ReceiptSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"number":     true,
	"paid_at":    true,
	"amount":     true,
}
