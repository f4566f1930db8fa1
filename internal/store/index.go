package store

// index is an in-memory unique index on a single column.
// value → record positions
type index struct {
	column string
	data   map[any][]int
}

func newIndex(column string) *index {
	return &index{column: column, data: make(map[any][]int)}
}

// add records that value appears at position pos.
func (ix *index) add(value any, pos int) {
	ix.data[value] = append(ix.data[value], pos)
}

// positions returns the record positions holding value.
func (ix *index) positions(value any) []int {
	return ix.data[value]
}

// taken reports whether value is held by any record other than exclude
// (pass -1 to check against all records).
func (ix *index) taken(value any, exclude int) bool {
	for _, pos := range ix.data[value] {
		if pos != exclude {
			return true
		}
	}
	return false
}
