// Package template defines the engine contract HTML renderers draw on.
package template

import "io"

// TemplateRenderer renders a named template with the supplied data.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
