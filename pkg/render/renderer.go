// Package render defines the contract renderers implement to turn field
// descriptors into a byte representation (HTML, terminal transcript, etc.).
package render

import (
	"context"

	"github.com/goliatone/go-schemaform/pkg/form"
)

// Form is the renderer input: the derived descriptors plus the document
// metadata a form chrome needs.
type Form struct {
	Title       string
	Description string
	Action      string
	Fields      []form.Field
}

// Options carries per-request overrides: current values to prefill and
// per-field errors to surface next to their inputs.
type Options struct {
	Values map[string]any
	Errors map[string]string
}

// Renderer converts a form into bytes.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form Form, options Options) ([]byte, error)
}
