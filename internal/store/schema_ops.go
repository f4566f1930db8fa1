package store

import (
	"fmt"
	"log/slog"
	"strings"

	dberrors "github.com/leengari/studentdb/internal/domain/errors"
	"github.com/leengari/studentdb/internal/domain/op"
	"github.com/leengari/studentdb/internal/domain/schema"
	"github.com/leengari/studentdb/internal/storage"
)

// Schema mutations collect every required record value up front, then apply
// the change to the schema and all records, then save once. A reload can
// never observe some records updated and others not.

// AddColumn inserts a new column at pos and collects a validated value for
// it from src for every existing record.
func (s *Store) AddColumn(name string, typ schema.ColumnType, pos schema.Position, src ValueSource) error {
	o := op.New(op.KindAddColumn)

	name = strings.TrimSpace(name)
	if name == "" {
		return &dberrors.ValidationError{Field: "column name", Reason: "Column name cannot be empty."}
	}
	if name == schema.IDColumn || s.schema.Has(name) {
		return fmt.Errorf("column %q already exists", name)
	}
	if !typ.Valid() {
		return &dberrors.ValidationError{Field: name, Reason: fmt.Sprintf("Unsupported type %s for column %s.", typ, name)}
	}

	// Collect all values before touching any state.
	values := make([]any, len(s.records))
	for i := range s.records {
		value, err := collect(src, name, typ)
		if err != nil {
			return err
		}
		values[i] = value
	}

	if err := s.schema.Insert(schema.Column{Name: name, Type: typ}, pos); err != nil {
		return err
	}
	for i, rec := range s.records {
		rec.Fields[name] = values[i]
	}

	s.rebuildIndexes()
	s.logger.Info("column added",
		slog.String("op_id", o.ID),
		slog.String("column", name),
		slog.String("type", string(typ)),
		slog.Int("records_updated", len(s.records)),
	)
	return s.save()
}

// DeleteColumn removes a column and strips its field from every record.
// ID and Roll Number are protected from deletion.
func (s *Store) DeleteColumn(name string) error {
	o := op.New(op.KindDeleteColumn)

	if schema.DeleteProtected[name] {
		return &dberrors.ProtectedColumnError{Column: name, Operation: "delete"}
	}
	if !s.schema.Has(name) {
		return &dberrors.ColumnNotFoundError{Column: name}
	}

	if err := s.schema.Remove(name); err != nil {
		return err
	}
	for _, rec := range s.records {
		delete(rec.Fields, name)
	}

	s.rebuildIndexes()
	s.logger.Info("column deleted",
		slog.String("op_id", o.ID),
		slog.String("column", name),
	)
	return s.save()
}

// ReplaceColumn renames oldName to newName, optionally changing its type.
// Only ID is protected here: Roll Number may be renamed or retyped, though
// it can never be deleted. When the type changes, every record's value is
// re-collected from src under the new type rather than silently converted;
// an unchanged type carries the existing values over.
func (s *Store) ReplaceColumn(oldName, newName string, newType schema.ColumnType, src ValueSource) error {
	o := op.New(op.KindReplaceColumn)

	if schema.ReplaceProtected[oldName] {
		return &dberrors.ProtectedColumnError{Column: oldName, Operation: "replace"}
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return &dberrors.ValidationError{Field: "column name", Reason: "Column name cannot be empty."}
	}
	if newName == schema.IDColumn || (newName != oldName && s.schema.Has(newName)) {
		return fmt.Errorf("column %q already exists", newName)
	}
	if !s.schema.Has(oldName) {
		return &dberrors.ColumnNotFoundError{Column: oldName}
	}
	if !newType.Valid() {
		return &dberrors.ValidationError{Field: newName, Reason: fmt.Sprintf("Unsupported type %s for column %s.", newType, newName)}
	}

	oldType := s.schema.TypeOf(oldName)

	var values []any
	if newType != oldType {
		values = make([]any, len(s.records))
		for i := range s.records {
			value, err := collect(src, newName, newType)
			if err != nil {
				return err
			}
			values[i] = value
		}
	}

	if err := s.schema.Replace(oldName, schema.Column{Name: newName, Type: newType}); err != nil {
		return err
	}
	for i, rec := range s.records {
		if newType != oldType {
			rec.Fields[newName] = values[i]
		} else if old, exists := rec.Fields[oldName]; exists {
			rec.Fields[newName] = old
		}
		if newName != oldName {
			delete(rec.Fields, oldName)
		}
	}

	s.rebuildIndexes()
	s.logger.Info("column replaced",
		slog.String("op_id", o.ID),
		slog.String("old", oldName),
		slog.String("new", newName),
		slog.String("type", string(newType)),
	)
	return s.save()
}

// SwitchPath saves the current state to the old path, then repoints the
// store at newPath and loads it. It returns true if the new path held any
// schema data. On a load failure the store reverts to the old path.
func (s *Store) SwitchPath(newPath string) (bool, error) {
	o := op.New(op.KindSwitchPath)

	if s.HasSchema() {
		if err := s.save(); err != nil {
			return false, err
		}
	}

	oldPath := s.path
	sch, records, err := storage.Load(newPath, s.logger)
	if err != nil {
		s.logger.Error("could not load new data file, keeping current path",
			slog.String("op_id", o.ID),
			slog.String("path", newPath),
			slog.Any("error", err),
		)
		return false, err
	}

	s.path = newPath
	s.schema = sch
	s.records = records
	s.rebuildIndexes()
	s.logger.Info("data file path changed",
		slog.String("op_id", o.ID),
		slog.String("from", oldPath),
		slog.String("to", newPath),
		slog.Int("records", len(records)),
	)
	return s.HasSchema(), nil
}
