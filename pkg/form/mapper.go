package form

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

// Labeler converts a property name into a display label when the property
// declares no title.
type Labeler func(name string) string

// MapOption customises mapping behaviour.
type MapOption func(*mapConfig)

type mapConfig struct {
	labeler Labeler
}

// WithLabeler overrides the fallback labeler applied to untitled properties.
func WithLabeler(labeler Labeler) MapOption {
	return func(cfg *mapConfig) {
		if labeler != nil {
			cfg.labeler = labeler
		}
	}
}

// Map converts a schema's properties into an ordered field descriptor
// sequence, one descriptor per property in declaration order. A schema
// without properties maps to an empty sequence. Duplicate property names can
// only occur on programmatically constructed schemas and are rejected rather
// than silently collapsed.
func Map(s schema.Schema, options ...MapOption) ([]Field, error) {
	cfg := mapConfig{labeler: CapitalizeLabeler}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if len(s.Properties) == 0 {
		return []Field{}, nil
	}

	seen := make(map[string]struct{}, len(s.Properties))
	fields := make([]Field, 0, len(s.Properties))
	for _, prop := range s.Properties {
		if _, dup := seen[prop.Name]; dup {
			return nil, fmt.Errorf("form: duplicate field name %q", prop.Name)
		}
		seen[prop.Name] = struct{}{}
		fields = append(fields, fieldFromProperty(prop, s, cfg.labeler))
	}
	return fields, nil
}

func fieldFromProperty(prop schema.NamedProperty, s schema.Schema, labeler Labeler) Field {
	field := Field{
		Name:        prop.Name,
		Kind:        kindFor(prop.Property),
		Label:       labelFor(prop, labeler),
		Required:    s.IsRequired(prop.Name),
		Description: prop.Description,
		Format:      prop.Format,
		Pattern:     prop.Pattern,
	}

	if len(prop.Enum) > 0 {
		field.Options = append([]any(nil), prop.Enum...)
	}
	if prop.Minimum != nil {
		value := *prop.Minimum
		field.Minimum = &value
	}
	if prop.Maximum != nil {
		value := *prop.Maximum
		field.Maximum = &value
	}
	if prop.MinLength != nil {
		value := *prop.MinLength
		field.MinLength = &value
	}
	if prop.MaxLength != nil {
		value := *prop.MaxLength
		field.MaxLength = &value
	}

	return field
}

// kindFor resolves the input kind. An enum forces a select regardless of the
// declared type or format; otherwise a recognized format wins over the type.
func kindFor(prop schema.Property) Kind {
	if len(prop.Enum) > 0 {
		return KindSelect
	}
	if kind, ok := kindFromFormat(prop.Format); ok {
		return kind
	}
	return kindFromType(prop.Type)
}

func kindFromFormat(format string) (Kind, bool) {
	switch format {
	case "email":
		return KindEmail, true
	case "date":
		return KindDate, true
	case "date-time":
		return KindDatetime, true
	case "time":
		return KindTime, true
	case "uri":
		return KindURL, true
	case "password":
		return KindPassword, true
	default:
		return "", false
	}
}

func kindFromType(typ string) Kind {
	switch typ {
	case "number", "integer":
		return KindNumber
	case "boolean":
		return KindCheckbox
	default:
		// string, array, object, and anything unrecognized all collect as
		// plain text. Structured array/object editing is a known gap.
		return KindText
	}
}

func labelFor(prop schema.NamedProperty, labeler Labeler) string {
	if prop.Title != "" {
		return prop.Title
	}
	if labeler == nil {
		return CapitalizeLabeler(prop.Name)
	}
	return labeler(prop.Name)
}

// CapitalizeLabeler upper-cases the first rune of the property name and
// leaves the rest unchanged.
func CapitalizeLabeler(name string) string {
	if name == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(name)
	if first == utf8.RuneError && size <= 1 {
		return name
	}
	return string(unicode.ToUpper(first)) + name[size:]
}

var wordSplitPattern = strings.NewReplacer("_", " ", "-", " ")

// HumanizeLabeler splits snake_case, kebab-case, and camelCase names into
// title-cased words. Not the default; opt in via WithLabeler.
func HumanizeLabeler(name string) string {
	if name == "" {
		return ""
	}
	spaced := wordSplitPattern.Replace(name)
	var words []string
	for _, word := range strings.Fields(spaced) {
		words = append(words, titleCase(splitCamel(word))...)
	}
	return strings.Join(words, " ")
}

func splitCamel(input string) string {
	var out strings.Builder
	runes := []rune(input)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func titleCase(input string) []string {
	var out []string
	for _, word := range strings.Fields(input) {
		lower := strings.ToLower(word)
		out = append(out, CapitalizeLabeler(lower))
	}
	return out
}
