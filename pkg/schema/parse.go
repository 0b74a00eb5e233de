package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

// Parse builds the typed view over a raw JSON Schema document. The document
// is kept verbatim; only the subset of keywords the form layer understands is
// lifted into the typed view. A document without "properties" parses to a
// schema with no properties, which is not an error.
func Parse(raw []byte) (Schema, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Schema{}, fmt.Errorf("schema: raw document is empty")
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return Schema{}, fmt.Errorf("schema: parse document: %w", err)
	}

	out := Schema{raw: append([]byte(nil), raw...)}
	out.Type = rawString(top, "type")
	out.Title = rawString(top, "title")
	out.Description = rawString(top, "description")

	if requiredRaw, ok := top["required"]; ok {
		var required []string
		if err := json.Unmarshal(requiredRaw, &required); err != nil {
			return Schema{}, fmt.Errorf("schema: required must be an array of strings: %w", err)
		}
		out.Required = required
	}

	propsRaw, ok := top["properties"]
	if !ok {
		return out, nil
	}

	var props map[string]json.RawMessage
	if err := json.Unmarshal(propsRaw, &props); err != nil {
		return Schema{}, fmt.Errorf("schema: properties must be an object: %w", err)
	}

	order, err := objectKeyOrder(propsRaw)
	if err != nil {
		return Schema{}, fmt.Errorf("schema: read property order: %w", err)
	}

	seen := make(map[string]struct{}, len(order))
	out.Properties = make([]NamedProperty, 0, len(order))
	for _, name := range order {
		if _, dup := seen[name]; dup {
			return Schema{}, fmt.Errorf("schema: duplicate property %q at #/properties", name)
		}
		seen[name] = struct{}{}

		prop, err := parseProperty(props[name], joinPointer("#/properties", name))
		if err != nil {
			return Schema{}, err
		}
		out.Properties = append(out.Properties, NamedProperty{Name: name, Property: prop})
	}

	return out, nil
}

// ParseDocument parses the wrapped payload of a Document, picking the YAML
// front end when the source location carries a YAML extension.
func ParseDocument(doc Document) (Schema, error) {
	switch strings.ToLower(filepath.Ext(doc.Location())) {
	case ".yaml", ".yml":
		return ParseYAML(doc.Raw())
	default:
		return Parse(doc.Raw())
	}
}

func parseProperty(raw json.RawMessage, path string) (Property, error) {
	if raw == nil {
		return Property{}, fmt.Errorf("schema: property is missing at %s", path)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Property{}, fmt.Errorf("schema: property must be an object at %s: %w", path, err)
	}

	out := Property{
		Type:        readString(payload, "type"),
		Format:      readString(payload, "format"),
		Title:       readString(payload, "title"),
		Description: readString(payload, "description"),
	}

	if enumRaw, ok := payload["enum"]; ok {
		list, ok := enumRaw.([]any)
		if !ok {
			return Property{}, fmt.Errorf("schema: enum must be an array at %s", path)
		}
		out.Enum = append([]any(nil), list...)
	}

	if minRaw, ok := payload["minimum"]; ok {
		value, ok := toFloat(minRaw)
		if !ok {
			return Property{}, fmt.Errorf("schema: minimum must be a number at %s", path)
		}
		out.Minimum = &value
	}

	if maxRaw, ok := payload["maximum"]; ok {
		value, ok := toFloat(maxRaw)
		if !ok {
			return Property{}, fmt.Errorf("schema: maximum must be a number at %s", path)
		}
		out.Maximum = &value
	}

	if minLenRaw, ok := payload["minLength"]; ok {
		value, ok := toInt(minLenRaw)
		if !ok {
			return Property{}, fmt.Errorf("schema: minLength must be an integer at %s", path)
		}
		out.MinLength = &value
	}

	if maxLenRaw, ok := payload["maxLength"]; ok {
		value, ok := toInt(maxLenRaw)
		if !ok {
			return Property{}, fmt.Errorf("schema: maxLength must be an integer at %s", path)
		}
		out.MaxLength = &value
	}

	if patternRaw, ok := payload["pattern"]; ok {
		pattern, ok := patternRaw.(string)
		if !ok {
			return Property{}, fmt.Errorf("schema: pattern must be a string at %s", path)
		}
		out.Pattern = pattern
	}

	return out, nil
}

// objectKeyOrder scans a JSON object and returns its keys in declaration
// order. encoding/json maps discard ordering, so the order is recovered from
// the token stream instead.
func objectKeyOrder(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var keys []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", keyTok)
		}
		keys = append(keys, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

func rawString(payload map[string]json.RawMessage, key string) string {
	raw, ok := payload[key]
	if !ok {
		return ""
	}
	var out string
	if err := json.Unmarshal(raw, &out); err != nil {
		return ""
	}
	return out
}

func readString(payload map[string]any, key string) string {
	value, ok := payload[key]
	if !ok {
		return ""
	}
	str, ok := value.(string)
	if !ok {
		return ""
	}
	return str
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case float64:
		if v == math.Trunc(v) {
			return int(v), true
		}
		return 0, false
	case int:
		return v, true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}

func joinPointer(path string, segments ...string) string {
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		path = path + "/" + escapePointer(segment)
	}
	return path
}

func escapePointer(value string) string {
	replacer := strings.NewReplacer("~", "~0", "/", "~1")
	return replacer.Replace(value)
}
