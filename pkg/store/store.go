// Package store abstracts persistence for schemas and submissions. The core
// never owns process-wide state; callers inject a Store implementation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound reports that the referenced schema or submission id does not
// exist.
var ErrNotFound = errors.New("store: not found")

// Schema is one stored JSON Schema document with its metadata. The Schema
// payload is kept as raw bytes so the literal document survives untouched.
type Schema struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Schema    json.RawMessage `json:"schema"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Submission is one accepted, persisted instance of form data tied to a
// schema.
type Submission struct {
	ID          string         `json:"id"`
	SchemaID    string         `json:"schemaId"`
	Data        map[string]any `json:"data"`
	SubmittedAt time.Time      `json:"submittedAt"`
}

// SchemaStore persists schema records in creation order.
type SchemaStore interface {
	PutSchema(ctx context.Context, record Schema) error
	GetSchema(ctx context.Context, id string) (Schema, error)
	ListSchemas(ctx context.Context) ([]Schema, error)
	DeleteSchema(ctx context.Context, id string) error
}

// SubmissionStore persists submission records in creation order.
type SubmissionStore interface {
	PutSubmission(ctx context.Context, record Submission) error
	ListSubmissions(ctx context.Context, schemaID string) ([]Submission, error)
	ListAllSubmissions(ctx context.Context) ([]Submission, error)
	DeleteSubmissionsBySchema(ctx context.Context, schemaID string) error
}

// Store combines both record kinds behind one collaborator.
type Store interface {
	SchemaStore
	SubmissionStore
}
