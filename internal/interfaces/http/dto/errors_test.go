package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeUnknown, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeConflict, http.StatusConflict},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeBusinessRule, http.StatusUnprocessableEntity},
		{ErrCodeItemReserved, http.StatusConflict},
		{ErrCodeAlreadyConverted, http.StatusConflict},
		{ErrCodeAlreadyPaid, http.StatusConflict},
		{ErrCodeNoItemSelected, http.StatusUnprocessableEntity},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeInvalidJSON, http.StatusBadRequest},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Domain codes should be normalized
		{"NOT_FOUND", ErrCodeNotFound},
		{"INSTALLMENT_NOT_FOUND", ErrCodeNotFound},
		{"ITEM_RESERVED", ErrCodeItemReserved},
		{"ALREADY_CONVERTED", ErrCodeAlreadyConverted},
		{"ALREADY_FINAL", ErrCodeAlreadyConverted},
		{"ALREADY_PAID", ErrCodeAlreadyPaid},
		{"NO_ITEM_SELECTED", ErrCodeNoItemSelected},
		{"NOT_PAID", ErrCodeInvalidState},
		{"NOT_PROFORMA", ErrCodeInvalidState},
		{"HAS_PAYMENTS", ErrCodeInvalidState},
		{"INVALID_STATE", ErrCodeInvalidState},
		// Validation codes from aggregate constructors collapse to invalid input
		{"INVALID_KIND", ErrCodeInvalidInput},
		{"INVALID_CUSTOMER_NAME", ErrCodeInvalidInput},
		{"INVALID_CONTRACT_TYPE", ErrCodeInvalidInput},
		{"INVALID_CONDITION", ErrCodeInvalidInput},
		// Normalized codes should pass through unchanged
		{ErrCodeNotFound, ErrCodeNotFound},
		{ErrCodeItemReserved, ErrCodeItemReserved},
		// Unknown codes should pass through unchanged
		{"CUSTOM_ERROR", "CUSTOM_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestErrorCodeConstants(t *testing.T) {
	// Ensure all error codes are in the HTTP status map
	allCodes := []string{
		ErrCodeUnknown,
		ErrCodeInternal,
		ErrCodeValidation,
		ErrCodeNotFound,
		ErrCodeConflict,
		ErrCodeInvalidState,
		ErrCodeBusinessRule,
		ErrCodeItemReserved,
		ErrCodeAlreadyConverted,
		ErrCodeAlreadyPaid,
		ErrCodeNoItemSelected,
		ErrCodeBadRequest,
		ErrCodeInvalidInput,
		ErrCodeInvalidJSON,
	}

	for _, code := range allCodes {
		_, ok := ErrorCodeHTTPStatus[code]
		assert.True(t, ok, "error code %s missing from ErrorCodeHTTPStatus", code)
	}
}

func TestDomainErrorCodeMapping_TargetsAreMapped(t *testing.T) {
	// Every normalized code must resolve to a concrete HTTP status
	for domainCode, apiCode := range DomainErrorCodeMapping {
		_, ok := ErrorCodeHTTPStatus[apiCode]
		assert.True(t, ok, "domain code %s maps to unmapped api code %s", domainCode, apiCode)
	}
}
