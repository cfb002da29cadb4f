package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeUnavailable   = "UNAVAILABLE"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Source errors. Both are fatal to ingestion and must surface before any
// indexing happens.
var (
	ErrSourceNotFound       = NewDomainError(ErrCodeNotFound, "knowledge source directory not found")
	ErrSourceNotADirectory  = NewDomainError(ErrCodeValidation, "knowledge source path is not a directory")
	ErrNoDocumentsExtracted = NewDomainError(ErrCodeNotFound, "no documents matched the source pattern")
)

// Input validation errors
var (
	ErrEmptyMessage   = NewDomainError(ErrCodeValidation, "message cannot be empty")
	ErrMessageTooLong = NewDomainError(ErrCodeValidation, fmt.Sprintf("message exceeds maximum length of %d", MaxMessageLength))
)

// Configuration errors
var (
	ErrInvalidChunkConfig = NewDomainError(ErrCodeValidation, "chunk overlap must be smaller than chunk target size")
	ErrInvalidDimension   = NewDomainError(ErrCodeValidation, "vector dimension must be positive")
	ErrInvalidIndexName   = NewDomainError(ErrCodeValidation, "index name must be a lowercase identifier")
)

// Embedding and index errors
var (
	ErrEmptyText        = NewDomainError(ErrCodeValidation, "text to embed cannot be empty")
	ErrWrongDimensions  = NewDomainError(ErrCodeInternalError, "embedding has wrong dimensions")
	ErrIndexUnavailable = NewDomainError(ErrCodeUnavailable, "vector index is unavailable")
)

// MaxMessageLength bounds user messages before any pipeline work happens.
const MaxMessageLength = 2000
