// Package storage encodes and decodes the backing store file. The format is
// a CSV container: the first row holds the column list as embedded JSON
// (["Columns", <JSON array of names>]) and every following row holds one
// record ([<id>, <JSON object of fields excluding ID>]).
package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	dberrors "github.com/leengari/studentdb/internal/domain/errors"
	"github.com/leengari/studentdb/internal/domain/record"
	"github.com/leengari/studentdb/internal/domain/schema"
)

// Load reads the backing store at path and reconstructs the schema and
// records. A missing file is not an error: it yields an empty schema and no
// records so the caller can drive first-time setup. A structurally invalid
// header aborts the load with an empty result and a StorageError; a
// malformed individual record is skipped with a diagnostic and loading
// continues.
func Load(path string, logger *slog.Logger) (*schema.Schema, []*record.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("data file does not exist, starting empty", slog.String("path", path))
			return schema.New(nil), nil, nil
		}
		return schema.New(nil), nil, &dberrors.StorageError{Path: path, Op: "load", Err: err}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // record rows and the header differ in shape

	header, err := reader.Read()
	if err != nil || len(header) < 2 {
		logger.Error("data file has no valid column header", slog.String("path", path))
		return schema.New(nil), nil, &dberrors.StorageError{Path: path, Op: "load", Err: err}
	}

	var columns []string
	if err := json.Unmarshal([]byte(header[1]), &columns); err != nil {
		logger.Error("column header is not valid JSON", slog.String("path", path), slog.Any("error", err))
		return schema.New(nil), nil, &dberrors.StorageError{Path: path, Op: "load", Err: err}
	}
	columns = normalizeColumns(columns)

	sch := schema.FromNames(columns)

	var records []*record.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warn("skipping unreadable row", slog.String("path", path), slog.Any("error", err))
			continue
		}
		if len(row) < 2 {
			continue
		}

		rec, err := decodeRecord(row[0], row[1], sch)
		if err != nil {
			logger.Warn("skipping malformed record", slog.Any("error", err))
			continue
		}
		records = append(records, rec)
	}

	logger.Info("data file loaded",
		slog.String("path", path),
		slog.Int("columns", sch.Len()),
		slog.Int("records", len(records)),
	)
	return sch, records, nil
}

// decodeRecord parses one stored row into a typed Record, converting values
// to match the schema's declared column types.
func decodeRecord(id, payload string, sch *schema.Schema) (*record.Record, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return nil, &dberrors.MalformedRecordError{ID: id, Err: err}
	}

	// Legacy files spell the roll column "RollNo".
	if v, ok := fields[schema.LegacyRollColumn]; ok {
		if _, exists := fields[schema.RollColumn]; !exists {
			fields[schema.RollColumn] = v
		}
		delete(fields, schema.LegacyRollColumn)
	}

	// The ID lives in the row key, not the field map.
	delete(fields, schema.IDColumn)

	rec := record.New(id)
	for name, value := range fields {
		rec.Fields[name] = coerce(value, sch.TypeOf(name))
	}
	return rec, nil
}

// coerce converts a decoded JSON value to the declared column type where the
// conversion is lossless. JSON numbers arrive as float64; INT columns store
// int64 in memory.
func coerce(value any, typ schema.ColumnType) any {
	if typ != schema.ColumnTypeInt {
		return value
	}
	switch v := value.(type) {
	case float64:
		if v == float64(int64(v)) {
			return int64(v)
		}
	case int64:
		return v
	case int:
		return int64(v)
	}
	return value
}

// normalizeColumns applies the RollNo legacy spelling fix to the header.
func normalizeColumns(columns []string) []string {
	hasRoll := false
	for _, c := range columns {
		if c == schema.RollColumn {
			hasRoll = true
		}
	}
	if hasRoll {
		return columns
	}
	for i, c := range columns {
		if c == schema.LegacyRollColumn {
			columns[i] = schema.RollColumn
		}
	}
	return columns
}
