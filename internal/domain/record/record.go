// Package record defines the in-memory representation of one student entry.
package record

// Record holds one student's field values keyed by column name. ID is the
// immutable identity key and is kept outside the field map; field values are
// int64, float64 or string, as produced by the validator or the codec.
type Record struct {
	ID     string
	Fields map[string]any
}

// New creates a Record with an empty field map.
func New(id string) *Record {
	return &Record{ID: id, Fields: make(map[string]any)}
}

// Copy creates a deep copy of the record to prevent mutation
func (r *Record) Copy() *Record {
	fields := make(map[string]any, len(r.Fields))
	for k, v := range r.Fields {
		fields[k] = v
	}
	return &Record{ID: r.ID, Fields: fields}
}
