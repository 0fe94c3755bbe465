package domain

import "errors"

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (media, link, favourite)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// StorageError replaces an upstream provider failure (object store, database)
// with a fixed operation-level message. The underlying error stays attached
// for logging but is never serialized to clients.
type StorageError struct {
	Op  string // fixed user-facing message, e.g. "upload failed"
	Err error  // underlying provider error
}

// Error returns only the operation message, never provider detail
func (e *StorageError) Error() string {
	return e.Op
}

// Unwrap exposes the underlying error for logging
func (e *StorageError) Unwrap() error {
	return e.Err
}
