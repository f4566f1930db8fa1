package schema

import "fmt"

// Position describes where a new column is inserted.
type Position struct {
	kind  positionKind
	index int
}

type positionKind int

const (
	posStart positionKind = iota
	posEnd
	posIndex
)

// AtStart inserts before the first column.
func AtStart() Position { return Position{kind: posStart} }

// AtEnd inserts after the last column.
func AtEnd() Position { return Position{kind: posEnd} }

// AtIndex inserts at the 1-based position i; valid values are 1..len+1.
func AtIndex(i int) Position { return Position{kind: posIndex, index: i} }

// resolve converts the position to a 0-based insertion offset for a schema
// with n columns.
func (p Position) resolve(n int) (int, error) {
	switch p.kind {
	case posStart:
		return 0, nil
	case posEnd:
		return n, nil
	default:
		if p.index < 1 || p.index > n+1 {
			return 0, fmt.Errorf("position %d out of range [1, %d]", p.index, n+1)
		}
		return p.index - 1, nil
	}
}
