package validation

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/leengari/studentdb/internal/domain/errors"
	"github.com/leengari/studentdb/internal/domain/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInt(t *testing.T) {
	tests := []struct {
		name  string
		field string
		input string
		want  int64
		ok    bool
	}{
		{"plain integer", "Marks", "42", 42, true},
		{"rejects sign", "Marks", "+42", 0, false},
		{"rejects negative", "Marks", "-1", 0, false},
		{"rejects decimal", "Marks", "4.2", 0, false},
		{"rejects letters", "Marks", "4a", 0, false},
		{"rejects whitespace", "Marks", " 42", 0, false},
		{"age lower bound", "Age", "5", 5, true},
		{"age upper bound", "Age", "100", 100, true},
		{"age too low", "Age", "4", 0, false},
		{"age too high", "Age", "101", 0, false},
		{"age rule is case-insensitive", "AGE", "3", 0, false},
		{"roll number minimum", "Roll Number", "1", 1, true},
		{"roll number zero rejected", "Roll Number", "0", 0, false},
		{"roll number ten digits", "Roll Number", "1234567890", 1234567890, true},
		{"roll number eleven digits rejected", "Roll Number", "12345678901", 0, false},
		{"grades in range", "Grades", "100", 100, true},
		{"grades above range", "Grades", "101", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.field, tt.input, schema.ColumnTypeInt)
			if !tt.ok {
				require.Error(t, err)
				var vErr *errors.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tt.field, vErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateFloat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{"whole number", "20", 20, true},
		{"decimal", "3.75", 3.75, true},
		{"zero", "0", 0, true},
		{"negative rejected", "-0.5", 0, false},
		{"not a number", "abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate("GPA", tt.input, schema.ColumnTypeFloat)
			if !tt.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateText(t *testing.T) {
	tests := []struct {
		name  string
		field string
		input string
		ok    bool
	}{
		{"name letters and spaces", "Name", "Ann Lee", true},
		{"name with digits rejected", "Name", "Ann3", false},
		{"name too short", "Name", "A", false},
		{"phone ten digits", "Phone", "0712345678", true},
		{"phone too short", "Phone", "012345678", false},
		{"phone sixteen digits rejected", "Phone", "0123456789012345", false},
		{"phone with dash rejected", "Phone", "0712-345678", false},
		{"address complete", "Address", "12 Elm Street", true},
		{"address without digit", "Address", "Elm Street West", false},
		{"address too short", "Address", "1 Elm St", false},
		{"class alphanumeric", "Class", "10B", true},
		{"class with space rejected", "Class", "10 B", false},
		{"class too long", "Class", "Year10Beta2", false},
		{"unconstrained field accepted", "Notes", "anything at all!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.field, tt.input, schema.ColumnTypeText)
			if !tt.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, got)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"gmail accepted", "a.b@gmail.com", true},
		{"domain case-insensitive", "a.b@GMAIL.com", true},
		{"all allowed specials", "a_b%c+d-e.f@yahoo.com", true},
		{"unknown domain rejected", "a@unknown-domain.io", false},
		{"not an email", "notanemail", false},
		{"missing local part", "@gmail.com", false},
		{"too short", "a@g", false},
		{"local part too long", strings.Repeat("a", 65) + "@gmail.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate("Email", tt.input, schema.ColumnTypeText)
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestValidateRejectsEmptyInput(t *testing.T) {
	for _, typ := range []schema.ColumnType{schema.ColumnTypeInt, schema.ColumnTypeFloat, schema.ColumnTypeText} {
		t.Run(string(typ), func(t *testing.T) {
			_, err := Validate("Name", "", typ)
			require.Error(t, err)
		})
	}
}

func TestValidateUnknownType(t *testing.T) {
	_, err := Validate("Name", "x", schema.ColumnType("BLOB"))
	require.Error(t, err)
}

// Validating the text form of a successful result yields the same value.
func TestValidateIdempotent(t *testing.T) {
	cases := []struct {
		field string
		input string
		typ   schema.ColumnType
	}{
		{"Age", "20", schema.ColumnTypeInt},
		{"Roll Number", "10", schema.ColumnTypeInt},
		{"GPA", "3.5", schema.ColumnTypeFloat},
		{"Name", "Ann Lee", schema.ColumnTypeText},
		{"Email", "a.b@gmail.com", schema.ColumnTypeText},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			first, err := Validate(tc.field, tc.input, tc.typ)
			require.NoError(t, err)

			var text string
			switch v := first.(type) {
			case int64:
				text = strconv.FormatInt(v, 10)
			case float64:
				text = strconv.FormatFloat(v, 'f', -1, 64)
			case string:
				text = v
			default:
				t.Fatalf("unexpected value type %T", first)
			}

			second, err := Validate(tc.field, text, tc.typ)
			require.NoError(t, err)
			assert.Equal(t, first, second, fmt.Sprintf("re-validating %q changed the value", text))
		})
	}
}
