// Package errors defines the typed error taxonomy of the record store.
// Validation and uniqueness failures are recoverable (the caller re-prompts);
// not-found aborts one operation; storage errors are surfaced but never
// terminate the run loop.
package errors

import (
	"fmt"
	"strings"
)

// ValidationError is a rejected field value.
type ValidationError struct {
	Field  string
	Value  string // raw input text (may be empty)
	Reason string // human-readable explanation
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid value for %s", e.Field)
}

// UniquenessError is a duplicate ID or Roll Number.
type UniquenessError struct {
	Column string
	Value  any
}

func (e *UniquenessError) Error() string {
	return fmt.Sprintf("duplicate value for %s - value=%v already exists", e.Column, e.Value)
}

// NotFoundError means an operation referenced an unknown record ID.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no record found with ID %s", e.ID)
}

// ColumnNotFoundError means a schema operation referenced an unknown column.
type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q does not exist", e.Column)
}

// ProtectedColumnError means a schema operation targeted a protected column.
type ProtectedColumnError struct {
	Column    string
	Operation string // "delete" or "replace"
}

func (e *ProtectedColumnError) Error() string {
	return fmt.Sprintf("cannot %s the %q column - it is required for record identification", e.Operation, e.Column)
}

// StorageError is an I/O failure on load or save.
type StorageError struct {
	Path string
	Op   string // "load" or "save"
	Err  error
}

func (e *StorageError) Error() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("storage %s failed", e.Op))
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, " - ")
}

func (e *StorageError) Unwrap() error { return e.Err }

// MalformedRecordError is a decode failure on a single stored record.
// Loading skips the record and continues.
type MalformedRecordError struct {
	ID  string
	Err error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("invalid JSON payload for record ID %s: %v", e.ID, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }
