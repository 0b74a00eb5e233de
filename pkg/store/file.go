package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	schemasFile     = "schemas.json"
	submissionsFile = "submissions.json"
)

// File is a Store that mirrors every mutation to JSON files under a data
// directory, reloading them on open. Persistence is best effort: a failed
// save is logged and the in-memory state stays authoritative for the life of
// the process.
type File struct {
	mem    *Memory
	dir    string
	logger *slog.Logger
}

// OpenFile loads any existing records from dir and returns a file-backed
// store. Missing files mean a fresh start, not an error.
func OpenFile(dir string, logger *slog.Logger) (*File, error) {
	if dir == "" {
		return nil, errors.New("store: data directory is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	st := &File{mem: NewMemory(), dir: dir, logger: logger}

	var schemas []Schema
	if err := readJSONFile(filepath.Join(dir, schemasFile), &schemas); err != nil {
		return nil, fmt.Errorf("store: load schemas: %w", err)
	}
	var submissions []Submission
	if err := readJSONFile(filepath.Join(dir, submissionsFile), &submissions); err != nil {
		return nil, fmt.Errorf("store: load submissions: %w", err)
	}
	st.mem.replaceAll(schemas, submissions)

	logger.Info("store opened", "dir", dir, "schemas", len(schemas), "submissions", len(submissions))
	return st, nil
}

func (f *File) PutSchema(ctx context.Context, record Schema) error {
	if err := f.mem.PutSchema(ctx, record); err != nil {
		return err
	}
	f.save()
	return nil
}

func (f *File) GetSchema(ctx context.Context, id string) (Schema, error) {
	return f.mem.GetSchema(ctx, id)
}

func (f *File) ListSchemas(ctx context.Context) ([]Schema, error) {
	return f.mem.ListSchemas(ctx)
}

func (f *File) DeleteSchema(ctx context.Context, id string) error {
	if err := f.mem.DeleteSchema(ctx, id); err != nil {
		return err
	}
	f.save()
	return nil
}

func (f *File) PutSubmission(ctx context.Context, record Submission) error {
	if err := f.mem.PutSubmission(ctx, record); err != nil {
		return err
	}
	f.save()
	return nil
}

func (f *File) ListSubmissions(ctx context.Context, schemaID string) ([]Submission, error) {
	return f.mem.ListSubmissions(ctx, schemaID)
}

func (f *File) ListAllSubmissions(ctx context.Context) ([]Submission, error) {
	return f.mem.ListAllSubmissions(ctx)
}

func (f *File) DeleteSubmissionsBySchema(ctx context.Context, schemaID string) error {
	if err := f.mem.DeleteSubmissionsBySchema(ctx, schemaID); err != nil {
		return err
	}
	f.save()
	return nil
}

func (f *File) save() {
	schemas, submissions := f.mem.snapshot()
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		f.logger.Error("store save failed", "dir", f.dir, "error", err)
		return
	}
	if err := writeJSONFile(filepath.Join(f.dir, schemasFile), schemas); err != nil {
		f.logger.Error("store save failed", "file", schemasFile, "error", err)
	}
	if err := writeJSONFile(filepath.Join(f.dir, submissionsFile), submissions); err != nil {
		f.logger.Error("store save failed", "file", submissionsFile, "error", err)
	}
}

func readJSONFile(path string, out any) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func writeJSONFile(path string, value any) error {
	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, encoded, 0o644)
}
