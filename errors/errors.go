package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// Filesystem creates an AppError for an unreadable directory or file.
func Filesystem(path string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeFilesystem, Message: fmt.Sprintf("Unable to read %s.", path),
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Details: map[string]any{"path": path},
		Cause:   cause,
	}
}

// Parse creates an AppError for malformed fixture content.
func Parse(fixture string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeParse, Message: fmt.Sprintf("Fixture %s contains malformed JSON.", fixture),
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Details: map[string]any{"fixture": fixture},
		Cause:   cause,
	}
}

// NotFound creates an AppError for a fixture that was not found.
func NotFound(resource, name string) *AppError {
	details := map[string]any{"resource": resource}
	if name != "" {
		details["name"] = name
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound, Retryable: false, Details: details,
	}
}

// ModelNotFound creates an AppError for a missing model registration.
func ModelNotFound(name string) *AppError {
	return &AppError{
		Code: ErrCodeModelNotFound, Message: fmt.Sprintf("No model is registered under %q.", name),
		HTTPStatus: http.StatusNotFound, Retryable: false,
		Details: map[string]any{"model": name},
	}
}

// Insert creates an AppError for a rejected bulk-create operation.
func Insert(model string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeInsert, Message: fmt.Sprintf("Inserting records into %s failed.", model),
		HTTPStatus: http.StatusInternalServerError, Retryable: true,
		Details: map[string]any{"model": model},
		Cause:   cause,
	}
}

// Migration creates an AppError for a failed auto-migrate operation.
func Migration(source string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeMigration, Message: fmt.Sprintf("Re-synchronizing data source %s failed.", source),
		HTTPStatus: http.StatusInternalServerError, Retryable: true,
		Details: map[string]any{"source": source},
		Cause:   cause,
	}
}

// InvalidInput creates an AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false, Details: details,
	}
}

// Internal creates an AppError wrapping an unexpected error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An internal error occurred.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Cause: cause,
	}
}
