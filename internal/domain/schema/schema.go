package schema

import "fmt"

// Identity columns. IDColumn is supplied by the caller and never stored in
// the per-record field map on disk; RollColumn is an app-enforced unique
// integer identifier.
const (
	IDColumn   = "ID"
	RollColumn = "Roll Number"

	// LegacyRollColumn is the spelling older data files used for RollColumn.
	// The codec normalizes it on load.
	LegacyRollColumn = "RollNo"
)

// Protection sets. Delete and replace intentionally protect different
// columns: RollColumn may be renamed or retyped through a replace, but
// never deleted outright.
var (
	DeleteProtected  = map[string]bool{IDColumn: true, RollColumn: true}
	ReplaceProtected = map[string]bool{IDColumn: true}
)

// DefaultColumns is the column set offered when a new data file is created,
// in display order.
var DefaultColumns = []Column{
	{Name: "Name", Type: ColumnTypeText},
	{Name: RollColumn, Type: ColumnTypeInt},
	{Name: "Age", Type: ColumnTypeInt},
	{Name: "Email", Type: ColumnTypeText},
	{Name: "Phone", Type: ColumnTypeText},
	{Name: "Address", Type: ColumnTypeText},
	{Name: "Class", Type: ColumnTypeText},
	{Name: "Grades", Type: ColumnTypeText},
}

// DefaultTypeFor returns the well-known type for a column name. Column types
// are not persisted in the data file, so loading reassigns them from this
// table; unknown names fall back to TEXT.
func DefaultTypeFor(name string) ColumnType {
	for _, col := range DefaultColumns {
		if col.Name == name {
			return col.Type
		}
	}
	return ColumnTypeText
}

// Schema is an ordered list of column definitions. Order is significant: it
// defines display order and the prompt order for record entry.
type Schema struct {
	Columns []Column
}

// New builds a Schema from the given columns.
func New(cols []Column) *Schema {
	s := &Schema{Columns: make([]Column, len(cols))}
	copy(s.Columns, cols)
	return s
}

// FromNames rebuilds a Schema from bare column names (as read from disk),
// assigning each its default type.
func FromNames(names []string) *Schema {
	cols := make([]Column, 0, len(names))
	for _, n := range names {
		cols = append(cols, Column{Name: n, Type: DefaultTypeFor(n)})
	}
	return &Schema{Columns: cols}
}

// Names returns the column names in schema order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		names[i] = col.Name
	}
	return names
}

// Has reports whether the schema contains a column with the given name.
func (s *Schema) Has(name string) bool {
	return s.indexOf(name) >= 0
}

// TypeOf returns the declared type of a column. Unknown columns report TEXT
// so that stray fields degrade to plain-string handling.
func (s *Schema) TypeOf(name string) ColumnType {
	if i := s.indexOf(name); i >= 0 {
		return s.Columns[i].Type
	}
	return ColumnTypeText
}

// Len returns the number of columns.
func (s *Schema) Len() int { return len(s.Columns) }

func (s *Schema) indexOf(name string) int {
	for i, col := range s.Columns {
		if col.Name == name {
			return i
		}
	}
	return -1
}

// Insert adds a column at the position described by pos.
func (s *Schema) Insert(col Column, pos Position) error {
	idx, err := pos.resolve(len(s.Columns))
	if err != nil {
		return err
	}
	s.Columns = append(s.Columns, Column{})
	copy(s.Columns[idx+1:], s.Columns[idx:])
	s.Columns[idx] = col
	return nil
}

// Remove deletes the named column. It does not consult the protection sets;
// that policy belongs to the store.
func (s *Schema) Remove(name string) error {
	i := s.indexOf(name)
	if i < 0 {
		return fmt.Errorf("column %q does not exist", name)
	}
	s.Columns = append(s.Columns[:i], s.Columns[i+1:]...)
	return nil
}

// Replace renames (and possibly retypes) the column at old's position,
// keeping its place in the order.
func (s *Schema) Replace(old string, col Column) error {
	i := s.indexOf(old)
	if i < 0 {
		return fmt.Errorf("column %q does not exist", old)
	}
	s.Columns[i] = col
	return nil
}

// Copy returns an independent copy of the schema.
func (s *Schema) Copy() *Schema {
	return New(s.Columns)
}
