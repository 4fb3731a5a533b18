package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Filesystem and parsing errors
const (
	// ErrCodeFilesystem indicates a directory or file could not be read.
	ErrCodeFilesystem ErrorCode = "FILESYSTEM_ERROR"
	// ErrCodeParse indicates fixture content is malformed.
	ErrCodeParse ErrorCode = "PARSE_ERROR"
)

// Resource errors
const (
	// ErrCodeNotFound indicates a fixture file was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeModelNotFound indicates no model is registered under a name.
	ErrCodeModelNotFound ErrorCode = "MODEL_NOT_FOUND"
)

// Storage errors
const (
	// ErrCodeInsert indicates the underlying create operation rejected records.
	ErrCodeInsert ErrorCode = "INSERT_ERROR"
	// ErrCodeMigration indicates the underlying auto-migrate operation failed.
	ErrCodeMigration ErrorCode = "MIGRATION_ERROR"
)

// General errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeInsert:    true,
	ErrCodeMigration: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
