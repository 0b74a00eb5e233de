// Package openapi extracts component schemas from OpenAPI 3 documents so an
// existing API description can seed a form without hand-writing the JSON
// Schema again. Property order follows the marshaled component, which sorts
// keys alphabetically.
package openapi

import (
	"context"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

// ComponentNames lists the schema components declared by the document.
func ComponentNames(ctx context.Context, raw []byte) ([]string, error) {
	doc, err := load(ctx, raw)
	if err != nil {
		return nil, err
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ExtractSchema returns the named component as a standalone JSON Schema
// document.
func ExtractSchema(ctx context.Context, raw []byte, component string) ([]byte, error) {
	doc, err := load(ctx, raw)
	if err != nil {
		return nil, err
	}
	if doc.Components == nil {
		return nil, fmt.Errorf("openapi: document declares no components")
	}
	ref, ok := doc.Components.Schemas[component]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("openapi: component schema %q not found", component)
	}

	encoded, err := ref.Value.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("openapi: encode component %q: %w", component, err)
	}
	return encoded, nil
}

// ExtractParsed extracts a component and parses it into the typed view.
func ExtractParsed(ctx context.Context, raw []byte, component string) (schema.Schema, error) {
	encoded, err := ExtractSchema(ctx, raw, component)
	if err != nil {
		return schema.Schema{}, err
	}
	return schema.Parse(encoded)
}

func load(ctx context.Context, raw []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: parse document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}
	return doc, nil
}
