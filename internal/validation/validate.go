// Package validation checks raw field input against a declared column type
// plus per-field refinement rules. It is pure: no state, no side effects,
// same inputs always yield the same result.
package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leengari/studentdb/internal/domain/errors"
	"github.com/leengari/studentdb/internal/domain/schema"
)

// Validate converts raw input text into a typed value for the given column,
// or returns a *errors.ValidationError describing the rejection. Typed
// values are int64 for INT, float64 for FLOAT and string for TEXT.
func Validate(field, raw string, typ schema.ColumnType) (any, error) {
	if raw == "" {
		return nil, reject(field, raw, fmt.Sprintf("%s cannot be empty. Please try again.", field))
	}

	switch typ {
	case schema.ColumnTypeInt:
		return validateInt(field, raw)
	case schema.ColumnTypeFloat:
		return validateFloat(field, raw)
	case schema.ColumnTypeText:
		return validateText(field, raw)
	default:
		return nil, reject(field, raw, fmt.Sprintf("Unsupported type %s for column %s. Please try again.", typ, field))
	}
}

func validateInt(field, raw string) (any, error) {
	if !isDigits(raw) {
		return nil, reject(field, raw, fmt.Sprintf("Invalid input for %s. Expected a positive integer. Please try again.", field))
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, reject(field, raw, fmt.Sprintf("Invalid input for %s. Expected a positive integer. Please try again.", field))
	}
	if rule, ok := intRules[normalize(field)]; ok {
		if reason := rule(value); reason != "" {
			return nil, reject(field, raw, reason)
		}
	}
	return value, nil
}

func validateFloat(field, raw string) (any, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, reject(field, raw, fmt.Sprintf("Invalid input for %s. Expected a valid number. Please try again.", field))
	}
	if value < 0 {
		return nil, reject(field, raw, fmt.Sprintf("Invalid input for %s. Expected a positive number. Please try again.", field))
	}
	return value, nil
}

func validateText(field, raw string) (any, error) {
	if rule, ok := textRules[normalize(field)]; ok {
		if reason := rule(raw); reason != "" {
			return nil, reject(field, raw, reason)
		}
	}
	return raw, nil
}

// normalize folds a field name to its rule-table key.
func normalize(field string) string {
	return strings.ToLower(field)
}

func reject(field, raw, reason string) *errors.ValidationError {
	return &errors.ValidationError{Field: field, Value: raw, Reason: reason}
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
