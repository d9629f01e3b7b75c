package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// ErrCodeItemReserved is used when the chosen device is tied to another sale
	ErrCodeItemReserved = "ERR_ITEM_RESERVED"
	// ErrCodeAlreadyConverted is used when a proforma was already turned into a sale
	ErrCodeAlreadyConverted = "ERR_ALREADY_CONVERTED"
	// ErrCodeAlreadyPaid is used when an installment already has a receipt
	ErrCodeAlreadyPaid = "ERR_ALREADY_PAID"
	// ErrCodeNoItemSelected is used when a document names no device
	ErrCodeNoItemSelected = "ERR_NO_ITEM_SELECTED"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation: http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound: http.StatusNotFound,
	ErrCodeConflict: http.StatusConflict,

	// Business rule errors
	ErrCodeInvalidState:     http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:     http.StatusUnprocessableEntity,
	ErrCodeItemReserved:     http.StatusConflict,
	ErrCodeAlreadyConverted: http.StatusConflict,
	ErrCodeAlreadyPaid:      http.StatusConflict,
	ErrCodeNoItemSelected:   http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to standardized API codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":             ErrCodeNotFound,
	"INSTALLMENT_NOT_FOUND": ErrCodeNotFound,
	"ITEM_RESERVED":         ErrCodeItemReserved,
	"ALREADY_CONVERTED":     ErrCodeAlreadyConverted,
	"ALREADY_FINAL":         ErrCodeAlreadyConverted,
	"ALREADY_PAID":          ErrCodeAlreadyPaid,
	"NO_ITEM_SELECTED":      ErrCodeNoItemSelected,
	"NOT_PAID":              ErrCodeInvalidState,
	"NOT_PROFORMA":          ErrCodeInvalidState,
	"HAS_PAYMENTS":          ErrCodeInvalidState,
	"INVALID_STATE":         ErrCodeInvalidState,
	"INVALID_INPUT":         ErrCodeInvalidInput,
	"BAD_REQUEST":           ErrCodeBadRequest,
	"INTERNAL_ERROR":        ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the standardized format.
// Unmapped INVALID_* codes collapse to ERR_INVALID_INPUT; anything else
// passes through unchanged.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	if len(code) > 8 && code[:8] == "INVALID_" {
		return ErrCodeInvalidInput
	}
	return code
}
