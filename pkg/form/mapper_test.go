package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

func mustParse(t *testing.T, raw string) schema.Schema {
	t.Helper()
	parsed, err := schema.Parse([]byte(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return parsed
}

func TestMap_DeclarationOrderAndRequired(t *testing.T) {
	parsed := mustParse(t, `{
  "type": "object",
  "properties": {
    "email": { "type": "string", "format": "email" },
    "age": { "type": "integer" },
    "nickname": { "type": "string" }
  },
  "required": ["email", "age"]
}`)

	fields, err := Map(parsed)
	if err != nil {
		t.Fatalf("map: %v", err)
	}

	var names []string
	for _, field := range fields {
		names = append(names, field.Name)
	}
	if diff := cmp.Diff([]string{"email", "age", "nickname"}, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	if !fields[0].Required || !fields[1].Required {
		t.Fatalf("expected email and age to be required")
	}
	if fields[2].Required {
		t.Fatalf("expected nickname to be optional")
	}
}

func TestMap_KindPrecedence(t *testing.T) {
	cases := []struct {
		name string
		prop string
		want Kind
	}{
		{"string", `{"type":"string"}`, KindText},
		{"number", `{"type":"number"}`, KindNumber},
		{"integer", `{"type":"integer"}`, KindNumber},
		{"boolean", `{"type":"boolean"}`, KindCheckbox},
		{"array falls back to text", `{"type":"array"}`, KindText},
		{"object falls back to text", `{"type":"object"}`, KindText},
		{"email format", `{"type":"string","format":"email"}`, KindEmail},
		{"date format", `{"type":"string","format":"date"}`, KindDate},
		{"date-time format", `{"type":"string","format":"date-time"}`, KindDatetime},
		{"time format", `{"type":"string","format":"time"}`, KindTime},
		{"uri format", `{"type":"string","format":"uri"}`, KindURL},
		{"password format", `{"type":"string","format":"password"}`, KindPassword},
		{"unknown format", `{"type":"string","format":"hostname"}`, KindText},
		{"enum beats type", `{"type":"string","enum":["a","b"]}`, KindSelect},
		{"enum beats format", `{"type":"string","format":"email","enum":["a@x.io"]}`, KindSelect},
	}

	for _, tc := range cases {
		parsed := mustParse(t, `{"properties":{"value":`+tc.prop+`}}`)
		fields, err := Map(parsed)
		if err != nil {
			t.Fatalf("%s: map: %v", tc.name, err)
		}
		if fields[0].Kind != tc.want {
			t.Fatalf("%s: expected kind %s, got %s", tc.name, tc.want, fields[0].Kind)
		}
	}
}

func TestMap_EnumBecomesOptions(t *testing.T) {
	parsed := mustParse(t, `{
  "properties": {
    "role": { "type": "string", "enum": ["admin", "editor"], "title": "Role" }
  }
}`)

	fields, err := Map(parsed)
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	if diff := cmp.Diff([]any{"admin", "editor"}, fields[0].Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestMap_LabelFallback(t *testing.T) {
	parsed := mustParse(t, `{
  "properties": {
    "firstName": { "type": "string" },
    "email": { "type": "string", "title": "Work Email" }
  }
}`)

	fields, err := Map(parsed)
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	if fields[0].Label != "FirstName" {
		t.Fatalf("expected capitalized fallback label, got %q", fields[0].Label)
	}
	if fields[1].Label != "Work Email" {
		t.Fatalf("expected title to win, got %q", fields[1].Label)
	}
}

func TestMap_WithHumanizeLabeler(t *testing.T) {
	parsed := mustParse(t, `{
  "properties": {
    "first_name": { "type": "string" },
    "homeAddress": { "type": "string" }
  }
}`)

	fields, err := Map(parsed, WithLabeler(HumanizeLabeler))
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	if fields[0].Label != "First Name" {
		t.Fatalf("expected humanized snake_case label, got %q", fields[0].Label)
	}
	if fields[1].Label != "Home Address" {
		t.Fatalf("expected humanized camelCase label, got %q", fields[1].Label)
	}
}

func TestMap_ConstraintsCopyThrough(t *testing.T) {
	parsed := mustParse(t, `{
  "properties": {
    "age": { "type": "integer", "minimum": 18, "maximum": 120 },
    "name": { "type": "string", "minLength": 2, "maxLength": 40, "pattern": "^[A-Z]" },
    "bio": { "type": "string" }
  }
}`)

	fields, err := Map(parsed)
	if err != nil {
		t.Fatalf("map: %v", err)
	}

	age := fields[0]
	if age.Minimum == nil || *age.Minimum != 18 || age.Maximum == nil || *age.Maximum != 120 {
		t.Fatalf("expected age constraints to copy through, got %+v", age)
	}

	name := fields[1]
	if name.MinLength == nil || *name.MinLength != 2 || name.MaxLength == nil || *name.MaxLength != 40 {
		t.Fatalf("expected name length constraints, got %+v", name)
	}
	if name.Pattern != "^[A-Z]" {
		t.Fatalf("expected pattern to copy through, got %q", name.Pattern)
	}

	bio := fields[2]
	if bio.Minimum != nil || bio.MinLength != nil || bio.Pattern != "" {
		t.Fatalf("expected bio to have no constraints, got %+v", bio)
	}
}

func TestMap_EmptySchema(t *testing.T) {
	parsed := mustParse(t, `{"type":"object"}`)
	fields, err := Map(parsed)
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	if fields == nil || len(fields) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", fields)
	}
}

func TestMap_Deterministic(t *testing.T) {
	parsed := mustParse(t, `{
  "properties": {
    "b": { "type": "string" },
    "a": { "type": "number" }
  },
  "required": ["b"]
}`)

	first, err := Map(parsed)
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	second, err := Map(parsed)
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("expected identical output across runs (-first +second):\n%s", diff)
	}
}

func TestMap_DuplicateFieldName(t *testing.T) {
	dup := schema.Schema{
		Properties: []schema.NamedProperty{
			{Name: "name", Property: schema.Property{Type: "string"}},
			{Name: "name", Property: schema.Property{Type: "number"}},
		},
	}
	if _, err := Map(dup); err == nil {
		t.Fatalf("expected duplicate field name error")
	}
}
