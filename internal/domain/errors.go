package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrConcurrency is returned when an optimistic version check fails,
	// i.e. another writer updated the rental between read and write.
	ErrConcurrency = errors.New("concurrent modification detected")
)

// ValidationError rejects a bad quantity/condition input before any state
// is touched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// InsufficientStockError rejects an issuance that exceeds the category's
// available quantity.
type InsufficientStockError struct {
	CategoryID int32
	Requested  int32
	Available  int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for category %d: requested %d, available %d",
		e.CategoryID, e.Requested, e.Available)
}

// StoreError wraps a persistence or read failure from the record store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}
