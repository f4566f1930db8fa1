package schema

import "strings"

type ColumnType string

const (
	ColumnTypeInt   ColumnType = "INT"
	ColumnTypeFloat ColumnType = "FLOAT"
	ColumnTypeText  ColumnType = "TEXT"
)

// Column is a single named, typed field definition.
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// ParseColumnType maps user-facing type spellings ("int", "float", "str")
// to a ColumnType. The second return is false for unknown spellings.
func ParseColumnType(s string) (ColumnType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "int", "integer":
		return ColumnTypeInt, true
	case "float", "number":
		return ColumnTypeFloat, true
	case "str", "string", "text":
		return ColumnTypeText, true
	default:
		return "", false
	}
}

// Valid reports whether t is one of the supported column types.
func (t ColumnType) Valid() bool {
	switch t {
	case ColumnTypeInt, ColumnTypeFloat, ColumnTypeText:
		return true
	}
	return false
}
