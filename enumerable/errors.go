package enumerable

import "errors"

// Error codes reported by sequences and collections
const (
	// ErrorCodeConcurrentModification indicates the underlying collection changed size during iteration
	ErrorCodeConcurrentModification = "CONCURRENT_MODIFICATION"

	// ErrorCodeEmptyCollection indicates a positional operation on a sequence without elements
	ErrorCodeEmptyCollection = "EMPTY_COLLECTION"

	// ErrorCodeNoMatch indicates a predicated operation found no matching element
	ErrorCodeNoMatch = "NO_MATCH"

	// ErrorCodeInvalidState indicates a cursor value was read before a successful MoveNext
	ErrorCodeInvalidState = "INVALID_STATE"

	// ErrorCodeDuplicateKey indicates a dictionary already holds the key being added
	ErrorCodeDuplicateKey = "DUPLICATE_KEY"

	// ErrorCodeIndexConflict indicates a list append hit an already declared slot
	ErrorCodeIndexConflict = "INDEX_CONFLICT"
)

// Sentinels for use with errors.Is
var (
	ErrConcurrentModification = &Error{Code: ErrorCodeConcurrentModification, Message: "collection was modified, enumeration operation may not execute"}
	ErrEmptyCollection        = &Error{Code: ErrorCodeEmptyCollection, Message: "collection contains no elements"}
	ErrNoMatch                = &Error{Code: ErrorCodeNoMatch, Message: "collection contains no matching element"}
	ErrInvalidState           = &Error{Code: ErrorCodeInvalidState, Message: "current value accessed outside of an active iteration"}
	ErrDuplicateKey           = &Error{Code: ErrorCodeDuplicateKey, Message: "key is already present in the dictionary"}
	ErrIndexConflict          = &Error{Code: ErrorCodeIndexConflict, Message: "index already declared"}
)

// Error provides structured error information for sequence operations
type Error struct {
	Code    string `json:"code"`              // e.g., "NO_MATCH"
	Message string `json:"message"`           // Human-readable error message
	Details string `json:"details,omitempty"` // Additional error context
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Details != "" {
		return e.Code + ": " + e.Message + " - " + e.Details
	}
	return e.Code + ": " + e.Message
}

// Is matches any *Error carrying the same code, so sentinels work with errors.Is
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// withDetails copies a sentinel and attaches context
func withDetails(sentinel *Error, details string) *Error {
	return &Error{
		Code:    sentinel.Code,
		Message: sentinel.Message,
		Details: details,
	}
}
