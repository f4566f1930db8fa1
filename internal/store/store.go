// Package store owns the schema and the record collection. It enforces the
// ID and Roll Number uniqueness invariants, applies schema changes across
// all records before a single terminal save, and rewrites the backing file
// after every mutation.
package store

import (
	"log/slog"
	"strings"

	dberrors "github.com/leengari/studentdb/internal/domain/errors"
	"github.com/leengari/studentdb/internal/domain/op"
	"github.com/leengari/studentdb/internal/domain/record"
	"github.com/leengari/studentdb/internal/domain/schema"
	"github.com/leengari/studentdb/internal/storage"
)

// Store is the validated record store backed by a single data file.
// It is single-threaded: every operation runs to completion before the
// next is accepted.
type Store struct {
	path    string
	logger  *slog.Logger
	schema  *schema.Schema
	records []*record.Record
	indexes map[string]*index
}

// Open loads the store from path. A missing file yields an empty store; a
// load failure yields whatever partial state could be read, with the error
// surfaced to the caller alongside the usable store.
func Open(path string, logger *slog.Logger) (*Store, error) {
	sch, records, err := storage.Load(path, logger)
	s := &Store{
		path:    path,
		logger:  logger,
		schema:  sch,
		records: records,
	}
	s.rebuildIndexes()
	return s, err
}

// Path returns the current backing file path.
func (s *Store) Path() string { return s.path }

// Schema returns a copy of the current schema.
func (s *Store) Schema() *schema.Schema { return s.schema.Copy() }

// HasSchema reports whether any columns are defined yet.
func (s *Store) HasSchema() bool { return s.schema.Len() > 0 }

// Len returns the number of records.
func (s *Store) Len() int { return len(s.records) }

// Records returns copies of all records in insertion order.
func (s *Store) Records() []*record.Record {
	out := make([]*record.Record, len(s.records))
	for i, rec := range s.records {
		out[i] = rec.Copy()
	}
	return out
}

// InitSchema sets up the column definitions for a fresh store and persists
// the (empty) record set. The Roll Number column is always included:
// uniqueness enforcement depends on it.
func (s *Store) InitSchema(cols []schema.Column) error {
	hasRoll := false
	for _, col := range cols {
		if col.Name == schema.RollColumn {
			hasRoll = true
		}
	}
	if !hasRoll {
		cols = append(cols, schema.Column{Name: schema.RollColumn, Type: schema.ColumnTypeInt})
	}
	s.schema = schema.New(cols)
	s.rebuildIndexes()
	s.logger.Info("schema initialized",
		slog.String("path", s.path),
		slog.Any("columns", s.schema.Names()),
	)
	return s.save()
}

// Add creates a new record under id. The id must be digits-only and unused.
// Field values are collected from src in schema order; a Roll Number value
// is re-asked until it is unique across the store.
func (s *Store) Add(id string, src ValueSource) error {
	o := op.New(op.KindAdd)

	id = strings.TrimSpace(id)
	if !digitsOnly(id) {
		return &dberrors.ValidationError{
			Field:  schema.IDColumn,
			Value:  id,
			Reason: "Student ID must contain only numbers. Please try again.",
		}
	}
	if s.indexes[schema.IDColumn].taken(id, -1) {
		return &dberrors.UniquenessError{Column: schema.IDColumn, Value: id}
	}

	rec := record.New(id)
	for _, col := range s.schema.Columns {
		if col.Name == schema.IDColumn {
			continue
		}
		value, err := s.collectFor(col, src, -1)
		if err != nil {
			return err
		}
		rec.Fields[col.Name] = value
	}

	s.records = append(s.records, rec)
	s.rebuildIndexes()
	s.logger.Debug("record added",
		slog.String("op_id", o.ID),
		slog.String("id", id),
		slog.Duration("took", o.Elapsed()),
	)
	return s.save()
}

// Update re-collects every field except ID for the record with the given
// id. A Roll Number value is checked for uniqueness against all other
// records; keeping the record's current value is always allowed.
func (s *Store) Update(id string, src ValueSource) error {
	o := op.New(op.KindUpdate)

	pos := s.findRecord(id)
	if pos < 0 {
		return &dberrors.NotFoundError{ID: id}
	}
	rec := s.records[pos]

	for _, col := range s.schema.Columns {
		if col.Name == schema.IDColumn {
			continue
		}
		value, err := s.collectFor(col, src, pos)
		if err != nil {
			return err
		}
		rec.Fields[col.Name] = value
	}

	s.rebuildIndexes()
	s.logger.Debug("record updated",
		slog.String("op_id", o.ID),
		slog.String("id", id),
		slog.Duration("took", o.Elapsed()),
	)
	return s.save()
}

// Delete removes the record with the given id.
func (s *Store) Delete(id string) error {
	o := op.New(op.KindDelete)

	pos := s.findRecord(id)
	if pos < 0 {
		return &dberrors.NotFoundError{ID: id}
	}
	s.records = append(s.records[:pos], s.records[pos+1:]...)
	s.rebuildIndexes()
	s.logger.Debug("record deleted",
		slog.String("op_id", o.ID),
		slog.String("id", id),
	)
	return s.save()
}

// collectFor obtains one validated value for col. For the Roll Number
// column it loops until the value is unique among all records except the
// one at exclude (-1 for none).
func (s *Store) collectFor(col schema.Column, src ValueSource, exclude int) (any, error) {
	for {
		value, err := collect(src, col.Name, col.Type)
		if err != nil {
			return nil, err
		}
		if col.Name != schema.RollColumn {
			return value, nil
		}
		ix, ok := s.indexes[schema.RollColumn]
		if !ok || !ix.taken(value, exclude) {
			return value, nil
		}
		src.Reject(col.Name, &dberrors.UniquenessError{Column: schema.RollColumn, Value: value})
	}
}

// findRecord returns the position of the record with the given id, or -1.
func (s *Store) findRecord(id string) int {
	if positions := s.indexes[schema.IDColumn].positions(id); len(positions) > 0 {
		return positions[0]
	}
	return -1
}

// rebuildIndexes recomputes the unique indexes from the current records.
// The ID index always exists; the roll index only while the schema carries
// the Roll Number column.
func (s *Store) rebuildIndexes() {
	indexes := map[string]*index{
		schema.IDColumn: newIndex(schema.IDColumn),
	}
	if s.schema.Has(schema.RollColumn) {
		indexes[schema.RollColumn] = newIndex(schema.RollColumn)
	}
	for pos, rec := range s.records {
		indexes[schema.IDColumn].add(rec.ID, pos)
		if ix, ok := indexes[schema.RollColumn]; ok {
			if value, exists := rec.Fields[schema.RollColumn]; exists {
				ix.add(value, pos)
			}
		}
	}
	s.indexes = indexes
}

// save rewrites the whole backing file. On failure the in-memory state is
// ahead of disk; the error is surfaced but the state is kept.
func (s *Store) save() error {
	if err := storage.Save(s.path, s.schema, s.records, s.logger); err != nil {
		s.logger.Error("save failed - in-memory state is ahead of disk",
			slog.String("path", s.path),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
