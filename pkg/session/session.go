// Package session holds the transient state of one form being filled: the
// current value map, per-field error state, and the submit lifecycle. One
// session serves one schema; sessions never share mutable state, and all
// mutations run synchronously on the caller's goroutine. The authoritative
// validation round trip during Submit is the only suspension point.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-schemaform/pkg/form"
	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/validation"
)

// State enumerates the session lifecycle.
type State string

const (
	StateEmpty      State = "empty"
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
)

var (
	// ErrSubmitInFlight guards against a second submit while the first
	// authoritative round trip is still outstanding.
	ErrSubmitInFlight = errors.New("session: submit already in flight")
	// ErrFieldErrors reports that submit was aborted locally; no call to the
	// authoritative collaborator was made.
	ErrFieldErrors = errors.New("session: field validation failed")
	// ErrRejected reports an authoritative rejection; the issue list is
	// available via DocumentIssues.
	ErrRejected = errors.New("session: document validation rejected")
)

// SubmitFunc hands a snapshot of the value map to the authoritative
// collaborator. A non-empty issue list is a rejection; an error is a
// transport or collaborator failure.
type SubmitFunc func(ctx context.Context, data map[string]any) ([]validation.Issue, error)

// Session is the form state machine. Not safe for concurrent use; a session
// belongs to a single goroutine.
type Session struct {
	sch         schema.Schema
	fields      []form.Field
	values      map[string]any
	fieldErrors map[string]string
	docIssues   []validation.Issue
	state       State
	inFlight    bool
	mapOptions  []form.MapOption
}

// New derives field descriptors from the schema and starts an empty session.
func New(sch schema.Schema, options ...form.MapOption) (*Session, error) {
	fields, err := form.Map(sch, options...)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return &Session{
		sch:         sch,
		fields:      fields,
		values:      make(map[string]any),
		fieldErrors: make(map[string]string),
		state:       StateEmpty,
		mapOptions:  options,
	}, nil
}

// Fields returns the derived field descriptors in display order.
func (s *Session) Fields() []form.Field {
	return append([]form.Field(nil), s.fields...)
}

// State reports the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// SetValue stores a field value, clears any existing error for that field,
// and re-validates only that field.
func (s *Session) SetValue(name string, value any) error {
	field, ok := s.field(name)
	if !ok {
		return fmt.Errorf("session: unknown field %q", name)
	}

	s.values[name] = value
	delete(s.fieldErrors, name)
	if message := form.ValidateField(value, field); message != "" {
		s.fieldErrors[name] = message
	}
	if s.state == StateEmpty || s.state == StateSubmitted {
		s.state = StateEditing
	}
	return nil
}

// Value returns the current value for a field.
func (s *Session) Value(name string) (any, bool) {
	value, ok := s.values[name]
	return value, ok
}

// Values returns a copy of the current value map.
func (s *Session) Values() map[string]any {
	return cloneValues(s.values)
}

// FieldErrors returns a copy of the current per-field error state.
func (s *Session) FieldErrors() map[string]string {
	out := make(map[string]string, len(s.fieldErrors))
	for name, message := range s.fieldErrors {
		out[name] = message
	}
	return out
}

// DocumentIssues returns the issue list from the last authoritative
// rejection, if any.
func (s *Session) DocumentIssues() []validation.Issue {
	return append([]validation.Issue(nil), s.docIssues...)
}

// Submit re-validates every field; if any fails, all errors are surfaced and
// no collaborator call is made. Otherwise a snapshot of the value map goes to
// the collaborator and its verdict is applied when it resolves.
func (s *Session) Submit(ctx context.Context, submit SubmitFunc) error {
	if submit == nil {
		return errors.New("session: submit func is required")
	}
	if s.inFlight {
		return ErrSubmitInFlight
	}

	s.fieldErrors = make(map[string]string)
	for _, field := range s.fields {
		if message := form.ValidateField(s.values[field.Name], field); message != "" {
			s.fieldErrors[field.Name] = message
		}
	}
	if len(s.fieldErrors) > 0 {
		s.state = StateEditing
		return ErrFieldErrors
	}

	// The snapshot protects the pending submission from value mutations that
	// arrive while the verdict is outstanding.
	snapshot := cloneValues(s.values)

	s.inFlight = true
	s.state = StateSubmitting
	issues, err := submit(ctx, snapshot)
	s.inFlight = false

	if err != nil {
		s.state = StateEditing
		return fmt.Errorf("session: submit: %w", err)
	}
	if len(issues) > 0 {
		s.docIssues = append([]validation.Issue(nil), issues...)
		s.state = StateEditing
		return ErrRejected
	}

	s.docIssues = nil
	s.state = StateSubmitted
	return nil
}

// Acknowledge reverts the transient Submitted state back to Editing once the
// UI's confirmation display window has elapsed.
func (s *Session) Acknowledge() {
	if s.state == StateSubmitted {
		s.state = StateEditing
	}
}

// Reset replaces the active schema: field descriptors are regenerated from
// scratch and the value map resets to empty.
func (s *Session) Reset(sch schema.Schema) error {
	fields, err := form.Map(sch, s.mapOptions...)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	s.sch = sch
	s.fields = fields
	s.values = make(map[string]any)
	s.fieldErrors = make(map[string]string)
	s.docIssues = nil
	s.state = StateEmpty
	return nil
}

func (s *Session) field(name string) (form.Field, bool) {
	for _, field := range s.fields {
		if field.Name == name {
			return field, true
		}
	}
	return form.Field{}, false
}

func cloneValues(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for name, value := range values {
		out[name] = value
	}
	return out
}
