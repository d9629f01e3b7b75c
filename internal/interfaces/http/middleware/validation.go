package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/revenda/backend/internal/interfaces/http/dto"
)

// SetupValidator configures gin's binding validator to report field names
// from json/form tags instead of Go struct field names.
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
	}
}

// HandleValidationError writes a 400 response carrying per-field details
// for binding failures
func HandleValidationError(c *gin.Context, err error) {
	requestID := c.GetString("request_id")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-ID")
	}
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, requestID))
}

// FormatValidationErrors maps validator errors onto the standard response
// envelope, one detail per failed field
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   e.Field(),
				Message: validationMessage(e),
			})
		}
	}

	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// validationMessage returns a human-readable message for a field error
func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "min":
		if e.Type().Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "gt":
		return "Must be greater than " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	default:
		return "Invalid value"
	}
}
