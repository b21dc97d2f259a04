package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes used across the application. Each code has a canonical HTTP
// status; handlers resolve it through StatusForError.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeAuth       = "AUTH_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
	CodeState      = "STATE_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

// ErrorResponse is the JSON error envelope. Domain errors carry a message;
// field-level validation failures additionally carry an errors map.
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// AppError is a domain error with a machine-readable code.
type AppError struct {
	Code    string
	Message string
	Fields  map[string][]string
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

// NewValidationError reports malformed or rejected input.
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

// NewFieldValidationError reports per-field validation failures.
func NewFieldValidationError(fields map[string][]string) *AppError {
	return &AppError{Code: CodeValidation, Message: "Validation failed", Fields: fields}
}

// NewAuthError reports missing or invalid credentials.
func NewAuthError(message string) *AppError {
	return &AppError{Code: CodeAuth, Message: message}
}

// NewNotFoundError reports an absent entity using the given message verbatim.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

// NewConflictError reports a duplicate or integrity violation.
func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

// NewStateError reports an invalid activation-state transition or an
// operation attempted in the wrong state.
func NewStateError(message string) *AppError {
	return &AppError{Code: CodeState, Message: message}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "Internal server error", Err: err}
}

// StatusForError maps an error to its HTTP status code. Unknown errors map
// to 500 so nothing leaks as an unhandled fault.
func StatusForError(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidation, CodeConflict, CodeState:
		return fiber.StatusBadRequest
	case CodeAuth:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError writes the standardized error envelope.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return c.Status(status).JSON(ErrorResponse{
			Message: appErr.Message,
			Errors:  appErr.Fields,
		})
	}
	return c.Status(status).JSON(ErrorResponse{Message: err.Error()})
}

// RespondWithAppError resolves the status from the error itself.
func RespondWithAppError(c *fiber.Ctx, err error) error {
	return RespondWithError(c, StatusForError(err), err)
}
