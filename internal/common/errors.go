package common

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents application-specific errors carried from the
// intake pipeline to the HTTP error envelope.
type AppError struct {
	Code    string
	Status  int
	Message string
	Fields  map[string]string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrAuthMissing = errors.New("store credentials missing or unrefreshable")
	ErrNotFound    = errors.New("resource not found")
	ErrInternal    = errors.New("internal error")
)

// Error constructors

// NewValidationError reports one or more failing form fields in a single
// response. The fields map is returned to the submitter as-is.
func NewValidationError(fields map[string]string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Status:  http.StatusUnprocessableEntity,
		Message: "Invalid request data",
		Fields:  fields,
	}
}

// NewFieldError is a single-field validation failure.
func NewFieldError(field, message string) *AppError {
	return NewValidationError(map[string]string{field: message})
}

func NewFileRequiredError() *AppError {
	return &AppError{
		Code:    "FILE_REQUIRED",
		Status:  http.StatusBadRequest,
		Message: "A resume file is required to complete this submission.",
	}
}

// NewExtractionError covers documents that decode to nothing usable.
func NewExtractionError(cause error) *AppError {
	return &AppError{
		Code:    "EXTRACTION_FAILED",
		Status:  http.StatusBadRequest,
		Message: "PDF parsing failed: no text extracted",
		Cause:   cause,
	}
}

func NewProcessingError(cause error) *AppError {
	return &AppError{
		Code:    "PROCESSING_FAILED",
		Status:  http.StatusInternalServerError,
		Message: "We hit a snag while processing your submission. Please try again or reach out to support.",
		Cause:   cause,
	}
}

// AsAppError unwraps err into an *AppError when one is in the chain.
func AsAppError(err error) (*AppError, bool) {
	var app *AppError
	if errors.As(err, &app) {
		return app, true
	}
	return nil, false
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
