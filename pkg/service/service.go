// Package service implements the boundary operations over stored schemas and
// submissions: schema lifecycle, authoritative submission validation, and
// field derivation for stored schemas.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-schemaform/pkg/form"
	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/store"
	"github.com/goliatone/go-schemaform/pkg/validation"
)

// Option customises a Service.
type Option func(*Service)

// WithClock overrides the time source. Useful for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the record id source. Useful for tests.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// Service coordinates the store with schema compilation and document
// validation. Only documents the validator accepts are ever persisted.
type Service struct {
	store store.Store
	now   func() time.Time
	newID func() string
}

// New constructs a Service over the supplied store.
func New(st store.Store, options ...Option) *Service {
	svc := &Service{
		store: st,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(svc)
	}
	return svc
}

// CreateSchema compiles and stores a named JSON Schema document. A document
// that does not compile is rejected and nothing persists.
func (s *Service) CreateSchema(ctx context.Context, name string, schemaJSON []byte) (store.Schema, error) {
	if strings.TrimSpace(name) == "" {
		return store.Schema{}, errors.New("service: schema name is required")
	}
	if len(schemaJSON) == 0 {
		return store.Schema{}, errors.New("service: schema document is required")
	}

	if _, err := validation.Compile(schemaJSON); err != nil {
		return store.Schema{}, err
	}
	// The typed parse enforces the supported subset (flat scalar properties)
	// before the schema is accepted for form derivation.
	if _, err := schema.Parse(schemaJSON); err != nil {
		return store.Schema{}, err
	}

	record := store.Schema{
		ID:        s.newID(),
		Name:      name,
		Schema:    append(json.RawMessage(nil), schemaJSON...),
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.PutSchema(ctx, record); err != nil {
		return store.Schema{}, fmt.Errorf("service: store schema: %w", err)
	}
	return record, nil
}

// GetSchemas lists stored schemas in creation order.
func (s *Service) GetSchemas(ctx context.Context) ([]store.Schema, error) {
	return s.store.ListSchemas(ctx)
}

// GetSchema fetches one stored schema.
func (s *Service) GetSchema(ctx context.Context, id string) (store.Schema, error) {
	return s.store.GetSchema(ctx, id)
}

// DeleteSchema removes a schema and cascades deletion of every submission
// that references it.
func (s *Service) DeleteSchema(ctx context.Context, id string) error {
	if err := s.store.DeleteSchema(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteSubmissionsBySchema(ctx, id); err != nil {
		return fmt.Errorf("service: cascade submissions: %w", err)
	}
	return nil
}

// Fields derives the ordered field descriptors for a stored schema.
func (s *Service) Fields(ctx context.Context, schemaID string) ([]form.Field, error) {
	record, err := s.store.GetSchema(ctx, schemaID)
	if err != nil {
		return nil, err
	}
	parsed, err := schema.Parse(record.Schema)
	if err != nil {
		return nil, err
	}
	return form.Map(parsed)
}

// Submit runs authoritative validation of data against the literal stored
// schema and persists the submission only when the document is accepted. A
// rejection returns *ValidationError with the structured issue list.
func (s *Service) Submit(ctx context.Context, schemaID string, data map[string]any) (store.Submission, error) {
	record, err := s.store.GetSchema(ctx, schemaID)
	if err != nil {
		return store.Submission{}, err
	}

	doc, err := validation.Compile(record.Schema)
	if err != nil {
		return store.Submission{}, err
	}

	normalized, err := normalize(data)
	if err != nil {
		return store.Submission{}, err
	}
	if issues := doc.Validate(normalized); len(issues) > 0 {
		return store.Submission{}, &ValidationError{Issues: issues}
	}

	// The stored record gets its own copy so later caller mutations of the
	// map cannot reach into persisted state.
	submission := store.Submission{
		ID:          s.newID(),
		SchemaID:    schemaID,
		Data:        cloneData(data),
		SubmittedAt: s.now().UTC(),
	}
	if err := s.store.PutSubmission(ctx, submission); err != nil {
		return store.Submission{}, fmt.Errorf("service: store submission: %w", err)
	}
	return submission, nil
}

// SubmitFunc adapts Submit for a session collaborator bound to one schema.
func (s *Service) SubmitFunc(schemaID string) func(ctx context.Context, data map[string]any) ([]validation.Issue, error) {
	return func(ctx context.Context, data map[string]any) ([]validation.Issue, error) {
		_, err := s.Submit(ctx, schemaID, data)
		var rejected *ValidationError
		if errors.As(err, &rejected) {
			return rejected.Issues, nil
		}
		if err != nil {
			return nil, err
		}
		return nil, nil
	}
}

// GetSubmissions lists submissions for one schema in creation order.
func (s *Service) GetSubmissions(ctx context.Context, schemaID string) ([]store.Submission, error) {
	return s.store.ListSubmissions(ctx, schemaID)
}

// GetAllSubmissions lists every submission in creation order.
func (s *Service) GetAllSubmissions(ctx context.Context) ([]store.Submission, error) {
	return s.store.ListAllSubmissions(ctx)
}

func cloneData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for name, value := range data {
		out[name] = value
	}
	return out
}

// normalize round-trips the value map through JSON so the evaluator sees the
// same representation it would receive over the wire.
func normalize(data map[string]any) (any, error) {
	if data == nil {
		data = map[string]any{}
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("service: encode submission: %w", err)
	}
	var out any
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, fmt.Errorf("service: decode submission: %w", err)
	}
	return out, nil
}
