package store

import (
	"strings"

	"github.com/leengari/studentdb/internal/domain/schema"
	"github.com/leengari/studentdb/internal/validation"
)

// ValueSource supplies raw field input during add/update and schema
// operations. The store does not know whether answers come from a terminal,
// a file or a test harness. Returning io.EOF (or any other error) from
// Value aborts the operation in progress.
type ValueSource interface {
	// Value asks for raw text for the given field.
	Value(field string, typ schema.ColumnType) (string, error)

	// Reject reports a rejected value before the field is asked again.
	Reject(field string, err error)
}

// SourceFunc adapts a function to a ValueSource with a no-op Reject.
type SourceFunc func(field string, typ schema.ColumnType) (string, error)

func (f SourceFunc) Value(field string, typ schema.ColumnType) (string, error) {
	return f(field, typ)
}

func (f SourceFunc) Reject(string, error) {}

// collect asks src for a value until one passes validation. Errors from the
// source itself (end of input) are returned as-is.
func collect(src ValueSource, field string, typ schema.ColumnType) (any, error) {
	for {
		raw, err := src.Value(field, typ)
		if err != nil {
			return nil, err
		}
		value, verr := validation.Validate(field, strings.TrimSpace(raw), typ)
		if verr != nil {
			src.Reject(field, verr)
			continue
		}
		return value, nil
	}
}
