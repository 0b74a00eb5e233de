// Package schemaform derives form field descriptors from JSON Schema
// documents and validates submissions against them. The root package exposes
// convenience entry points; the pkg tree holds the composable pieces.
package schemaform

import (
	"context"

	"github.com/goliatone/go-schemaform/pkg/form"
	"github.com/goliatone/go-schemaform/pkg/render"
	"github.com/goliatone/go-schemaform/pkg/renderers/vanilla"
	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/validation"
)

// Field aliases the descriptor type for callers that only need the root
// package.
type Field = form.Field

// Issue aliases the document validation issue type.
type Issue = validation.Issue

// Parse builds the typed schema view from raw JSON.
func Parse(raw []byte) (schema.Schema, error) {
	return schema.Parse(raw)
}

// Fields maps a parsed schema to its ordered field descriptors.
func Fields(s schema.Schema, options ...form.MapOption) ([]form.Field, error) {
	return form.Map(s, options...)
}

// FieldsFromJSON parses raw schema bytes and maps them in one step.
func FieldsFromJSON(raw []byte, options ...form.MapOption) ([]form.Field, error) {
	parsed, err := schema.Parse(raw)
	if err != nil {
		return nil, err
	}
	return form.Map(parsed, options...)
}

// ValidateField runs the lenient per-field check used for incremental
// feedback.
func ValidateField(value any, field form.Field) string {
	return form.ValidateField(value, field)
}

// ValidateDocument runs the authoritative check of data against the literal
// schema bytes. A compile failure of the schema itself is returned as an
// error; a rejection of the data comes back as a non-empty issue list.
func ValidateDocument(raw []byte, data any) ([]validation.Issue, error) {
	doc, err := validation.Compile(raw)
	if err != nil {
		return nil, err
	}
	return doc.Validate(data), nil
}

// RenderHTML maps a schema and renders it with the vanilla HTML renderer.
func RenderHTML(ctx context.Context, s schema.Schema, options ...vanilla.Option) ([]byte, error) {
	fields, err := form.Map(s)
	if err != nil {
		return nil, err
	}
	renderer, err := vanilla.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, render.Form{
		Title:       s.Title,
		Description: s.Description,
		Fields:      fields,
	}, render.Options{})
}
