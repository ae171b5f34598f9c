package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeUnauthenticated indicates missing or invalid credentials
	ErrorTypeUnauthenticated ErrorType = "UNAUTHENTICATED"

	// ErrorTypeForbidden indicates the caller lacks rights for the operation
	ErrorTypeForbidden ErrorType = "FORBIDDEN"

	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeInvalidInput indicates missing or malformed structural fields
	ErrorTypeInvalidInput ErrorType = "INVALID_INPUT"

	// ErrorTypeContentRejected indicates a moderation, phone or price failure
	ErrorTypeContentRejected ErrorType = "CONTENT_REJECTED"

	// ErrorTypeInvalidImage indicates an image size/type/count violation
	ErrorTypeInvalidImage ErrorType = "INVALID_IMAGE"

	// ErrorTypeUploadFailed indicates a blob store collaborator failure
	ErrorTypeUploadFailed ErrorType = "UPLOAD_FAILED"

	// ErrorTypeInternal indicates an unexpected internal failure
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Field   string // set for CONTENT_REJECTED: the rejected field
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	case e.Field != "":
		return fmt.Sprintf("%s: %s: %s", e.Type, e.Field, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// TypeOf returns the error type of err, or ErrorTypeInternal for
// anything that is not an AppError.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	return TypeOf(err) == t
}

// NewUnauthenticatedError creates a new unauthenticated error
func NewUnauthenticatedError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnauthenticated,
		Message: message,
	}
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeForbidden,
		Message: message,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: message,
	}
}

// NewContentRejectedError creates a new content rejected error for a field
func NewContentRejectedError(field, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeContentRejected,
		Field:   field,
		Message: reason,
	}
}

// NewInvalidImageError creates a new invalid image error
func NewInvalidImageError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidImage,
		Message: message,
	}
}

// NewUploadFailedError creates a new upload failed error
func NewUploadFailedError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeUploadFailed,
		Message: message,
		Err:     err,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}
