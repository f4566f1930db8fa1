package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertPositions(t *testing.T) {
	base := []Column{
		{Name: "Name", Type: ColumnTypeText},
		{Name: RollColumn, Type: ColumnTypeInt},
	}

	t.Run("at start", func(t *testing.T) {
		s := New(base)
		require.NoError(t, s.Insert(Column{Name: "GPA", Type: ColumnTypeFloat}, AtStart()))
		assert.Equal(t, []string{"GPA", "Name", RollColumn}, s.Names())
	})

	t.Run("at end", func(t *testing.T) {
		s := New(base)
		require.NoError(t, s.Insert(Column{Name: "GPA", Type: ColumnTypeFloat}, AtEnd()))
		assert.Equal(t, []string{"Name", RollColumn, "GPA"}, s.Names())
	})

	t.Run("at index", func(t *testing.T) {
		s := New(base)
		require.NoError(t, s.Insert(Column{Name: "GPA", Type: ColumnTypeFloat}, AtIndex(2)))
		assert.Equal(t, []string{"Name", "GPA", RollColumn}, s.Names())
	})

	t.Run("index one past end", func(t *testing.T) {
		s := New(base)
		require.NoError(t, s.Insert(Column{Name: "GPA", Type: ColumnTypeFloat}, AtIndex(3)))
		assert.Equal(t, []string{"Name", RollColumn, "GPA"}, s.Names())
	})

	t.Run("index out of range", func(t *testing.T) {
		s := New(base)
		assert.Error(t, s.Insert(Column{Name: "GPA", Type: ColumnTypeFloat}, AtIndex(0)))
		assert.Error(t, s.Insert(Column{Name: "GPA", Type: ColumnTypeFloat}, AtIndex(4)))
	})
}

func TestRemoveAndReplace(t *testing.T) {
	s := New([]Column{
		{Name: "Name", Type: ColumnTypeText},
		{Name: "Grades", Type: ColumnTypeText},
	})

	require.NoError(t, s.Replace("Grades", Column{Name: "Marks", Type: ColumnTypeInt}))
	assert.Equal(t, []string{"Name", "Marks"}, s.Names())
	assert.Equal(t, ColumnTypeInt, s.TypeOf("Marks"))

	require.NoError(t, s.Remove("Marks"))
	assert.Equal(t, []string{"Name"}, s.Names())

	assert.Error(t, s.Remove("Marks"))
	assert.Error(t, s.Replace("Marks", Column{Name: "X", Type: ColumnTypeText}))
}

func TestFromNamesAssignsDefaultTypes(t *testing.T) {
	s := FromNames([]string{"Name", "Age", RollColumn, "Nickname"})
	assert.Equal(t, ColumnTypeText, s.TypeOf("Name"))
	assert.Equal(t, ColumnTypeInt, s.TypeOf("Age"))
	assert.Equal(t, ColumnTypeInt, s.TypeOf(RollColumn))
	// Unknown columns fall back to text.
	assert.Equal(t, ColumnTypeText, s.TypeOf("Nickname"))
}

func TestParseColumnType(t *testing.T) {
	for input, want := range map[string]ColumnType{
		"int":   ColumnTypeInt,
		"INT":   ColumnTypeInt,
		"float": ColumnTypeFloat,
		"str":   ColumnTypeText,
		" str ": ColumnTypeText,
	} {
		got, ok := ParseColumnType(input)
		require.True(t, ok, input)
		assert.Equal(t, want, got)
	}

	_, ok := ParseColumnType("bool")
	assert.False(t, ok)
}

func TestProtectionSets(t *testing.T) {
	// Delete protects both identity columns; replace only protects ID.
	// The asymmetry is deliberate: Roll Number may be renamed or retyped
	// but never deleted.
	assert.True(t, DeleteProtected[IDColumn])
	assert.True(t, DeleteProtected[RollColumn])
	assert.True(t, ReplaceProtected[IDColumn])
	assert.False(t, ReplaceProtected[RollColumn])
}
