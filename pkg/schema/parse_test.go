package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_OrderedProperties(t *testing.T) {
	raw := []byte(`{
  "type": "object",
  "title": "Profile",
  "properties": {
    "zeta": { "type": "string" },
    "alpha": { "type": "number" },
    "mike": { "type": "boolean" }
  },
  "required": ["alpha"]
}`)

	parsed, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var names []string
	for _, prop := range parsed.Properties {
		names = append(names, prop.Name)
	}
	want := []string{"zeta", "alpha", "mike"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("property order mismatch (-want +got):\n%s", diff)
	}

	if parsed.Title != "Profile" {
		t.Fatalf("expected title Profile, got %q", parsed.Title)
	}
	if !parsed.IsRequired("alpha") {
		t.Fatalf("expected alpha to be required")
	}
	if parsed.IsRequired("zeta") {
		t.Fatalf("expected zeta to be optional")
	}
}

func TestParse_ConstraintsKeepAbsenceDistinct(t *testing.T) {
	raw := []byte(`{
  "properties": {
    "age": { "type": "integer", "minimum": 0, "maximum": 120 },
    "name": { "type": "string", "minLength": 0 },
    "bio": { "type": "string" }
  }
}`)

	parsed, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	age, ok := parsed.Property("age")
	if !ok {
		t.Fatalf("missing age property")
	}
	if age.Minimum == nil || *age.Minimum != 0 {
		t.Fatalf("expected minimum 0, got %v", age.Minimum)
	}
	if age.Maximum == nil || *age.Maximum != 120 {
		t.Fatalf("expected maximum 120, got %v", age.Maximum)
	}

	name, _ := parsed.Property("name")
	if name.MinLength == nil || *name.MinLength != 0 {
		t.Fatalf("expected minLength 0 to be present, got %v", name.MinLength)
	}

	bio, _ := parsed.Property("bio")
	if bio.MinLength != nil || bio.Minimum != nil {
		t.Fatalf("expected bio to carry no constraints")
	}
}

func TestParse_NoProperties(t *testing.T) {
	parsed, err := Parse([]byte(`{"type":"object"}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(parsed.Properties) != 0 {
		t.Fatalf("expected no properties, got %d", len(parsed.Properties))
	}
}

func TestParse_DuplicateProperty(t *testing.T) {
	raw := []byte(`{"properties":{"name":{"type":"string"},"name":{"type":"number"}}}`)
	if _, err := Parse(raw); err == nil {
		t.Fatalf("expected duplicate property error")
	}
}

func TestParse_EnumAndPattern(t *testing.T) {
	raw := []byte(`{
  "properties": {
    "role": { "type": "string", "enum": ["admin", "editor", "viewer"] },
    "slug": { "type": "string", "pattern": "^[a-z-]+$" }
  }
}`)

	parsed, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	role, _ := parsed.Property("role")
	if diff := cmp.Diff([]any{"admin", "editor", "viewer"}, role.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}

	slug, _ := parsed.Property("slug")
	if slug.Pattern != "^[a-z-]+$" {
		t.Fatalf("expected pattern to copy through, got %q", slug.Pattern)
	}
}

func TestParse_RawRoundTrip(t *testing.T) {
	raw := []byte(`{"properties":{"a":{"type":"string"}}}`)
	parsed, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if string(parsed.Raw()) != string(raw) {
		t.Fatalf("expected raw bytes to survive verbatim")
	}
}

func TestParse_InvalidDocuments(t *testing.T) {
	cases := map[string]string{
		"empty":          ``,
		"not json":       `{"properties":`,
		"bad properties": `{"properties": 42}`,
		"bad minimum":    `{"properties":{"age":{"minimum":"ten"}}}`,
		"bad minLength":  `{"properties":{"name":{"minLength":1.5}}}`,
		"bad pattern":    `{"properties":{"name":{"pattern":7}}}`,
	}
	for name, raw := range cases {
		if _, err := Parse([]byte(raw)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestParseYAML_PreservesOrder(t *testing.T) {
	raw := []byte(`
type: object
properties:
  last:
    type: string
  first:
    type: string
  age:
    type: integer
    minimum: 18
required:
  - first
`)

	parsed, err := ParseYAML(raw)
	if err != nil {
		t.Fatalf("parse yaml: %v", err)
	}

	var names []string
	for _, prop := range parsed.Properties {
		names = append(names, prop.Name)
	}
	if diff := cmp.Diff([]string{"last", "first", "age"}, names); diff != "" {
		t.Fatalf("property order mismatch (-want +got):\n%s", diff)
	}

	age, _ := parsed.Property("age")
	if age.Minimum == nil || *age.Minimum != 18 {
		t.Fatalf("expected minimum 18, got %v", age.Minimum)
	}
	if !parsed.IsRequired("first") {
		t.Fatalf("expected first to be required")
	}
}

func TestDocument_DefensiveCopies(t *testing.T) {
	raw := []byte(`{"type":"object"}`)
	doc, err := NewDocument(SourceFromFile("schema.json"), raw)
	if err != nil {
		t.Fatalf("new document: %v", err)
	}

	raw[0] = 'X'
	if string(doc.Raw()) != `{"type":"object"}` {
		t.Fatalf("expected document to keep its own copy")
	}
	if doc.Location() != "schema.json" {
		t.Fatalf("unexpected location %q", doc.Location())
	}
}
