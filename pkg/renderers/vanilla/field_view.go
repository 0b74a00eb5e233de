package vanilla

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/goliatone/go-schemaform/pkg/form"
)

// fieldView flattens one descriptor plus its current value and error into
// the shape the template consumes. Attribute strings are pre-escaped in Go
// so the template can emit them verbatim.
func fieldView(field form.Field, value any, errMessage string) map[string]any {
	view := map[string]any{
		"name":        field.Name,
		"label":       field.Label,
		"required":    field.Required,
		"control":     controlFor(field.Kind),
		"input_type":  inputTypeFor(field.Kind),
		"value":       displayValue(value),
		"checked":     isChecked(value),
		"attrs":       constraintAttrs(field),
		"description": sanitizeDescription(field.Description),
		"error":       errMessage,
	}

	if field.Kind == form.KindSelect {
		options := make([]map[string]any, 0, len(field.Options))
		current := displayValue(value)
		for _, option := range field.Options {
			optionValue := displayValue(option)
			options = append(options, map[string]any{
				"value":    optionValue,
				"label":    optionValue,
				"selected": current != "" && current == optionValue,
			})
		}
		view["options"] = options
	}

	return view
}

func controlFor(kind form.Kind) string {
	switch kind {
	case form.KindSelect:
		return "select"
	case form.KindCheckbox:
		return "checkbox"
	default:
		return "input"
	}
}

func inputTypeFor(kind form.Kind) string {
	switch kind {
	case form.KindNumber:
		return "number"
	case form.KindEmail:
		return "email"
	case form.KindDate:
		return "date"
	case form.KindDatetime:
		return "datetime-local"
	case form.KindTime:
		return "time"
	case form.KindURL:
		return "url"
	case form.KindPassword:
		return "password"
	default:
		return "text"
	}
}

func displayValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(v)
	}
}

func isChecked(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "on"
	default:
		return false
	}
}

// constraintAttrs renders the copied-through constraints as HTML attributes.
// Absent constraints produce no attribute at all, keeping "no constraint"
// and "constraint = 0" distinguishable in the markup.
func constraintAttrs(field form.Field) string {
	var attrs []string
	if field.Required {
		attrs = append(attrs, "required")
	}
	if field.Minimum != nil {
		attrs = append(attrs, fmt.Sprintf("min=%q", strconv.FormatFloat(*field.Minimum, 'f', -1, 64)))
	}
	if field.Maximum != nil {
		attrs = append(attrs, fmt.Sprintf("max=%q", strconv.FormatFloat(*field.Maximum, 'f', -1, 64)))
	}
	if field.MinLength != nil {
		attrs = append(attrs, fmt.Sprintf("minlength=%q", strconv.Itoa(*field.MinLength)))
	}
	if field.MaxLength != nil {
		attrs = append(attrs, fmt.Sprintf("maxlength=%q", strconv.Itoa(*field.MaxLength)))
	}
	if field.Pattern != "" {
		attrs = append(attrs, fmt.Sprintf("pattern=%q", html.EscapeString(field.Pattern)))
	}
	return strings.Join(attrs, " ")
}
