package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrCartEmpty is returned when checkout is attempted without items.
	ErrCartEmpty = errors.New("cart is empty")
)

// ValidationError describes user input that was incomplete or invalid. It is
// recovered locally and shown next to the offending fields.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return e.Message + " (" + strings.Join(parts, ", ") + ")"
}

// RemoteOperationError wraps any failed call to the order API. StatusCode is
// zero when no response was received.
type RemoteOperationError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *RemoteOperationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: remote returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteOperationError) Unwrap() error {
	return e.Err
}

// DataConsistencyError reports catalog or pricing data that references
// something the pricing table does not define.
type DataConsistencyError struct {
	Entity string
	Key    string
}

func (e *DataConsistencyError) Error() string {
	return fmt.Sprintf("data consistency: %s %q is not defined", e.Entity, e.Key)
}

// NotFoundError is returned by order lookups; it matches ErrNotFound.
type NotFoundError struct {
	Entity string
	ID     string
	Err    error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}
