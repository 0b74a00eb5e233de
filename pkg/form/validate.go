package form

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"unicode/utf8"
)

// emailPattern accepts "local@domain" where neither side contains whitespace
// or a second "@" and the domain has at least one dot.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateField checks one candidate value against one field descriptor and
// returns a human-readable message, or "" when the value passes. The check
// is deliberately lenient: an empty optional value always passes even when
// the underlying schema would constrain its type or format, so a form can be
// filled progressively. Authoritative validation happens at the document
// layer, never here.
//
// The function is pure and sees only the field's own candidate value; there
// is no cross-field validation.
func ValidateField(value any, field Field) string {
	if isEmpty(value) {
		if field.Required {
			return field.Label + " is required"
		}
		return ""
	}

	switch field.Kind {
	case KindEmail:
		if !emailPattern.MatchString(valueString(value)) {
			return "Please enter a valid email address"
		}
	case KindNumber:
		number, ok := toNumber(value)
		if !ok {
			return "Please enter a valid number"
		}
		if field.Minimum != nil && number < *field.Minimum {
			return "Value must be at least " + formatNumber(*field.Minimum)
		}
		if field.Maximum != nil && number > *field.Maximum {
			return "Value must be at most " + formatNumber(*field.Maximum)
		}
	case KindText:
		text := valueString(value)
		length := utf8.RuneCountInString(text)
		if field.MinLength != nil && length < *field.MinLength {
			return fmt.Sprintf("Must be at least %d characters", *field.MinLength)
		}
		if field.MaxLength != nil && length > *field.MaxLength {
			return fmt.Sprintf("Must be at most %d characters", *field.MaxLength)
		}
		if field.Pattern != "" && !matchesPattern(field.Pattern, text) {
			return "Please enter a valid format"
		}
	case KindURL:
		if !isAbsoluteURL(valueString(value)) {
			return "Please enter a valid URL"
		}
	}

	// checkbox, select, date, datetime, time, password: nothing beyond the
	// required check at this layer.
	return ""
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	str, ok := value.(string)
	return ok && str == ""
}

func valueString(value any) string {
	if str, ok := value.(string); ok {
		return str
	}
	return fmt.Sprint(value)
}

func toNumber(value any) (float64, bool) {
	var number float64
	switch v := value.(type) {
	case float64:
		number = v
	case float32:
		number = float64(v)
	case int:
		number = float64(v)
	case int64:
		number = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		number = parsed
	default:
		return 0, false
	}
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, false
	}
	return number, true
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func matchesPattern(pattern, text string) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		// An uncompilable pattern can never be satisfied; the document layer
		// reports the schema problem with full detail.
		return false
	}
	return re.MatchString(text)
}

func isAbsoluteURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}
