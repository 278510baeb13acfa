package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes form a closed set; every failure that crosses the store or
// service boundary carries exactly one of them.
const (
	CodeNotFound       = "NOT_FOUND"
	CodeValidation     = "VALIDATION_ERROR"
	CodeAuthentication = "AUTHENTICATION_ERROR"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeRegistration   = "REGISTRATION_ERROR"
	CodeInternal       = "INTERNAL_ERROR"
)

// statusByCode is the single mapping from error code to HTTP status used at
// the boundary.
var statusByCode = map[string]int{
	CodeNotFound:       fiber.StatusNotFound,
	CodeValidation:     fiber.StatusBadRequest,
	CodeAuthentication: fiber.StatusUnauthorized,
	CodeUnauthorized:   fiber.StatusUnauthorized,
	CodeRegistration:   fiber.StatusConflict,
	CodeInternal:       fiber.StatusInternalServerError,
}

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status mapped to the error's code.
func (e *AppError) Status() int {
	if s, ok := statusByCode[e.Code]; ok {
		return s
	}
	return fiber.StatusInternalServerError
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

// NewAuthenticationError covers bad credentials on login.
func NewAuthenticationError(message string) *AppError {
	return &AppError{
		Code:    CodeAuthentication,
		Message: message,
	}
}

// NewUnauthorizedError covers missing/invalid tokens and insufficient ownership.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

// NewRegistrationError covers duplicate-username registration attempts.
func NewRegistrationError(message string) *AppError {
	return &AppError{
		Code:    CodeRegistration,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondWithError writes the standardized error response, deriving the
// status from the code mapping. Non-AppError values map to 500.
func RespondWithError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*AppError); ok {
		response := ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
		return c.Status(appErr.Status()).JSON(response)
	}

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: err.Error(),
	})
}
