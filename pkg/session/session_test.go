package session

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/validation"
)

const signupSchema = `{
  "type": "object",
  "title": "Signup",
  "properties": {
    "email": { "type": "string", "format": "email" },
    "age": { "type": "integer", "minimum": 18 }
  },
  "required": ["email"]
}`

func newSession(t *testing.T, raw string) *Session {
	t.Helper()
	parsed, err := schema.Parse([]byte(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	sess, err := New(parsed)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return sess
}

func acceptAll(_ context.Context, _ map[string]any) ([]validation.Issue, error) {
	return nil, nil
}

func TestSession_Lifecycle(t *testing.T) {
	sess := newSession(t, signupSchema)

	if sess.State() != StateEmpty {
		t.Fatalf("expected empty state, got %s", sess.State())
	}

	if err := sess.SetValue("email", "ada@example.com"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if sess.State() != StateEditing {
		t.Fatalf("expected editing after first value, got %s", sess.State())
	}

	if err := sess.Submit(context.Background(), acceptAll); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sess.State() != StateSubmitted {
		t.Fatalf("expected submitted, got %s", sess.State())
	}

	sess.Acknowledge()
	if sess.State() != StateEditing {
		t.Fatalf("expected editing after acknowledge, got %s", sess.State())
	}
}

func TestSession_SetValueValidatesField(t *testing.T) {
	sess := newSession(t, signupSchema)

	if err := sess.SetValue("age", 17); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if got := sess.FieldErrors()["age"]; got != "Value must be at least 18" {
		t.Fatalf("expected age error, got %q", got)
	}

	if err := sess.SetValue("age", 21); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if _, present := sess.FieldErrors()["age"]; present {
		t.Fatalf("expected age error to clear")
	}
}

func TestSession_SetValueUnknownField(t *testing.T) {
	sess := newSession(t, signupSchema)
	if err := sess.SetValue("nope", "x"); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestSession_SubmitFieldErrorsAbortLocally(t *testing.T) {
	sess := newSession(t, signupSchema)
	called := false

	err := sess.Submit(context.Background(), func(_ context.Context, _ map[string]any) ([]validation.Issue, error) {
		called = true
		return nil, nil
	})
	if !errors.Is(err, ErrFieldErrors) {
		t.Fatalf("expected ErrFieldErrors, got %v", err)
	}
	if called {
		t.Fatalf("collaborator must not be called when field validation fails")
	}
	if got := sess.FieldErrors()["email"]; got != "Email is required" {
		t.Fatalf("expected required error for email, got %q", got)
	}
	if sess.State() != StateEditing {
		t.Fatalf("expected editing after local abort, got %s", sess.State())
	}
}

func TestSession_SubmitSnapshotsValues(t *testing.T) {
	sess := newSession(t, signupSchema)
	if err := sess.SetValue("email", "ada@example.com"); err != nil {
		t.Fatalf("set value: %v", err)
	}

	var seen map[string]any
	err := sess.Submit(context.Background(), func(_ context.Context, data map[string]any) ([]validation.Issue, error) {
		// A mutation racing the in-flight submit must not leak into the
		// payload the collaborator received.
		if err := sess.SetValue("email", "mallory@example.com"); err != nil {
			return nil, err
		}
		seen = data
		return nil, nil
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	want := map[string]any{"email": "ada@example.com"}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_SubmitWhileInFlight(t *testing.T) {
	sess := newSession(t, signupSchema)
	if err := sess.SetValue("email", "ada@example.com"); err != nil {
		t.Fatalf("set value: %v", err)
	}

	var inner error
	err := sess.Submit(context.Background(), func(ctx context.Context, _ map[string]any) ([]validation.Issue, error) {
		inner = sess.Submit(ctx, acceptAll)
		return nil, nil
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !errors.Is(inner, ErrSubmitInFlight) {
		t.Fatalf("expected ErrSubmitInFlight from reentrant submit, got %v", inner)
	}
}

func TestSession_SubmitRejected(t *testing.T) {
	sess := newSession(t, signupSchema)
	if err := sess.SetValue("email", "ada@example.com"); err != nil {
		t.Fatalf("set value: %v", err)
	}

	rejection := []validation.Issue{{Path: "/email", Keyword: "format", Message: "not an email"}}
	err := sess.Submit(context.Background(), func(_ context.Context, _ map[string]any) ([]validation.Issue, error) {
		return rejection, nil
	})
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
	if diff := cmp.Diff(rejection, sess.DocumentIssues()); diff != "" {
		t.Fatalf("issue mismatch (-want +got):\n%s", diff)
	}
	if sess.State() != StateEditing {
		t.Fatalf("expected editing after rejection, got %s", sess.State())
	}

	// A later acceptance clears the stored issues.
	if err := sess.Submit(context.Background(), acceptAll); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(sess.DocumentIssues()) != 0 {
		t.Fatalf("expected issues to clear on acceptance")
	}
}

func TestSession_SubmitCollaboratorError(t *testing.T) {
	sess := newSession(t, signupSchema)
	if err := sess.SetValue("email", "ada@example.com"); err != nil {
		t.Fatalf("set value: %v", err)
	}

	boom := errors.New("boom")
	err := sess.Submit(context.Background(), func(_ context.Context, _ map[string]any) ([]validation.Issue, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped collaborator error, got %v", err)
	}
	if sess.State() != StateEditing {
		t.Fatalf("expected editing after failure, got %s", sess.State())
	}

	// The guard released; a retry can succeed.
	if err := sess.Submit(context.Background(), acceptAll); err != nil {
		t.Fatalf("retry submit: %v", err)
	}
}

func TestSession_Reset(t *testing.T) {
	sess := newSession(t, signupSchema)
	if err := sess.SetValue("email", "ada@example.com"); err != nil {
		t.Fatalf("set value: %v", err)
	}

	replacement, err := schema.Parse([]byte(`{
  "properties": { "nickname": { "type": "string" } }
}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := sess.Reset(replacement); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if sess.State() != StateEmpty {
		t.Fatalf("expected empty state after reset, got %s", sess.State())
	}
	if len(sess.Values()) != 0 {
		t.Fatalf("expected values to clear, got %v", sess.Values())
	}
	fields := sess.Fields()
	if len(fields) != 1 || fields[0].Name != "nickname" {
		t.Fatalf("expected regenerated fields, got %v", fields)
	}
}
