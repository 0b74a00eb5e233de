package store

import (
	"context"
	"sync"
)

// Memory is an in-memory Store. Records keep creation order. Safe for
// concurrent use; the HTTP layer shares one instance across requests.
type Memory struct {
	mu          sync.RWMutex
	schemas     []Schema
	submissions []Submission
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) PutSchema(_ context.Context, record Schema) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schemas = append(m.schemas, record)
	return nil
}

func (m *Memory) GetSchema(_ context.Context, id string) (Schema, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, record := range m.schemas {
		if record.ID == id {
			return record, nil
		}
	}
	return Schema{}, ErrNotFound
}

func (m *Memory) ListSchemas(_ context.Context) ([]Schema, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Schema(nil), m.schemas...), nil
}

func (m *Memory) DeleteSchema(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, record := range m.schemas {
		if record.ID == id {
			m.schemas = append(m.schemas[:i], m.schemas[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) PutSubmission(_ context.Context, record Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions = append(m.submissions, record)
	return nil
}

func (m *Memory) ListSubmissions(_ context.Context, schemaID string) ([]Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Submission, 0)
	for _, record := range m.submissions {
		if record.SchemaID == schemaID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (m *Memory) ListAllSubmissions(_ context.Context) ([]Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Submission(nil), m.submissions...), nil
}

func (m *Memory) DeleteSubmissionsBySchema(_ context.Context, schemaID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.submissions[:0]
	for _, record := range m.submissions {
		if record.SchemaID != schemaID {
			kept = append(kept, record)
		}
	}
	m.submissions = kept
	return nil
}

// replaceAll swaps both record sets wholesale. Used by the file store when
// loading persisted data.
func (m *Memory) replaceAll(schemas []Schema, submissions []Submission) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schemas = append([]Schema(nil), schemas...)
	m.submissions = append([]Submission(nil), submissions...)
}

// snapshot copies both record sets for persistence.
func (m *Memory) snapshot() ([]Schema, []Submission) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Schema(nil), m.schemas...), append([]Submission(nil), m.submissions...)
}
