// Package form derives renderable field descriptors from a JSON Schema and
// provides the lenient per-field validation used for incremental feedback.
// The descriptors are UI-agnostic: renderers decide how a Kind becomes an
// actual input control.
package form

// Kind is the simplified enum of form-friendly input kinds.
type Kind string

const (
	KindText     Kind = "text"
	KindNumber   Kind = "number"
	KindCheckbox Kind = "checkbox"
	KindSelect   Kind = "select"
	KindEmail    Kind = "email"
	KindDate     Kind = "date"
	KindDatetime Kind = "datetime"
	KindTime     Kind = "time"
	KindURL      Kind = "url"
	KindPassword Kind = "password"
)

// Field models one input control needed to collect one schema property.
// Constraint fields are copied verbatim from the property spec and stay nil
// when the property declares no constraint, so "no constraint" and
// "constraint = 0" remain distinguishable. Struct fields are annotated so
// the HTTP layer can serialise descriptors directly.
type Field struct {
	Name        string   `json:"name"`
	Kind        Kind     `json:"kind"`
	Label       string   `json:"label"`
	Required    bool     `json:"required"`
	Description string   `json:"description,omitempty"`
	Options     []any    `json:"options,omitempty"`
	Format      string   `json:"format,omitempty"`
	Minimum     *float64 `json:"minimum,omitempty"`
	Maximum     *float64 `json:"maximum,omitempty"`
	MinLength   *int     `json:"minLength,omitempty"`
	MaxLength   *int     `json:"maxLength,omitempty"`
	Pattern     string   `json:"pattern,omitempty"`
}
