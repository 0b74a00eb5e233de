// Package validation wraps a general-purpose JSON Schema evaluator to provide
// the authoritative document check run before any submission persists. The
// lenient per-field checks in pkg/form exist purely for responsive feedback
// and must never substitute for this gate.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Issue is one structured validation failure from evaluating a document
// against the original, unmodified schema.
type Issue struct {
	Path    string `json:"path"`
	Keyword string `json:"keyword"`
	Message string `json:"message"`
}

// CompileError reports that the schema itself does not compile. This is a
// distinct condition from a document failing validation.
type CompileError struct {
	Err error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("validation: compile schema: %v", e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Document holds a compiled schema ready to evaluate submissions.
type Document struct {
	compiled *jsonschema.Schema
}

// Compile parses and compiles the literal schema bytes. Format assertions
// are enabled so declared formats such as "email" reject non-conforming
// values, matching the strict document layer the form layer defers to.
func Compile(raw []byte) (*Document, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	const resource = "schema.json"
	if err := compiler.AddResource(resource, bytes.NewReader(raw)); err != nil {
		return nil, &CompileError{Err: err}
	}
	compiled, err := compiler.Compile(resource)
	if err != nil {
		return nil, &CompileError{Err: err}
	}
	return &Document{compiled: compiled}, nil
}

// Validate evaluates a decoded JSON document against the compiled schema and
// returns the ordered issue list, or nil when the document is accepted.
func (d *Document) Validate(data any) []Issue {
	err := d.compiled.Validate(data)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return []Issue{{Message: err.Error()}}
	}
	return flatten(verr)
}

// ValidateJSON unmarshals raw JSON and validates it.
func (d *Document) ValidateJSON(raw []byte) ([]Issue, error) {
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("validation: parse document: %w", err)
	}
	return d.Validate(data), nil
}

// flatten walks the cause tree and keeps leaf failures in evaluation order.
// Branch nodes only restate their children.
func flatten(verr *jsonschema.ValidationError) []Issue {
	if len(verr.Causes) == 0 {
		return []Issue{{
			Path:    verr.InstanceLocation,
			Keyword: keywordFromLocation(verr.KeywordLocation),
			Message: verr.Message,
		}}
	}

	var issues []Issue
	for _, cause := range verr.Causes {
		issues = append(issues, flatten(cause)...)
	}
	return issues
}

// keywordFromLocation extracts the failing keyword from a keyword location
// pointer such as "/properties/age/minimum".
func keywordFromLocation(location string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(location), "#")
	if trimmed == "" {
		return ""
	}
	segments := strings.Split(strings.TrimPrefix(trimmed, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] == "" || isIndex(segments[i]) {
			continue
		}
		return segments[i]
	}
	return ""
}

func isIndex(segment string) bool {
	if segment == "" {
		return false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
