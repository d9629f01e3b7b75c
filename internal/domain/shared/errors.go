package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound         = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput     = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState     = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrItemReserved     = NewDomainError("ITEM_RESERVED", "Inventory item is already reserved")
	ErrAlreadyConverted = NewDomainError("ALREADY_CONVERTED", "Proforma has already been converted")
	ErrAlreadyPaid      = NewDomainError("ALREADY_PAID", "Installment has already been paid")
)
