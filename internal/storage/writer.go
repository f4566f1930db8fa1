package storage

import (
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	dberrors "github.com/leengari/studentdb/internal/domain/errors"
	"github.com/leengari/studentdb/internal/domain/record"
	"github.com/leengari/studentdb/internal/domain/schema"
)

// Save writes the full schema and record set to path using a temp file and
// an atomic rename. The whole file is rewritten on every call.
func Save(path string, sch *schema.Schema, records []*record.Record, logger *slog.Logger) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &dberrors.StorageError{Path: path, Op: "save", Err: err}
		}
	}

	header, err := json.Marshal(sch.Names())
	if err != nil {
		return &dberrors.StorageError{Path: path, Op: "save", Err: err}
	}

	var buf strings.Builder
	writer := csv.NewWriter(&buf)
	if err := writer.Write([]string{"Columns", string(header)}); err != nil {
		return &dberrors.StorageError{Path: path, Op: "save", Err: err}
	}

	for _, rec := range records {
		payload, err := json.Marshal(rec.Fields)
		if err != nil {
			return &dberrors.StorageError{Path: path, Op: "save", Err: err}
		}
		if err := writer.Write([]string{rec.ID, string(payload)}); err != nil {
			return &dberrors.StorageError{Path: path, Op: "save", Err: err}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return &dberrors.StorageError{Path: path, Op: "save", Err: err}
	}

	// Write to temp, then atomic replace.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(buf.String()), 0644); err != nil {
		return &dberrors.StorageError{Path: path, Op: "save", Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &dberrors.StorageError{Path: path, Op: "save", Err: err}
	}

	logger.Debug("data file saved",
		slog.String("path", path),
		slog.Int("records", len(records)),
	)
	return nil
}
