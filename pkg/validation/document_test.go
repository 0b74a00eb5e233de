package validation

import (
	"errors"
	"testing"
)

const personSchema = `{
  "type": "object",
  "properties": {
    "name": { "type": "string", "minLength": 2 },
    "email": { "type": "string", "format": "email" },
    "age": { "type": "integer", "minimum": 18 }
  },
  "required": ["name", "email"]
}`

func TestCompile_InvalidSchema(t *testing.T) {
	_, err := Compile([]byte(`{"type": 42}`))
	if err == nil {
		t.Fatalf("expected compile error")
	}
	var compileErr *CompileError
	if !errors.As(err, &compileErr) {
		t.Fatalf("expected *CompileError, got %T", err)
	}
}

func TestCompile_MalformedJSON(t *testing.T) {
	var compileErr *CompileError
	if _, err := Compile([]byte(`{`)); !errors.As(err, &compileErr) {
		t.Fatalf("expected *CompileError, got %v", err)
	}
}

func TestValidate_AcceptedDocument(t *testing.T) {
	doc, err := Compile([]byte(personSchema))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	issues := doc.Validate(map[string]any{
		"name":  "Ada",
		"email": "ada@example.com",
		"age":   float64(30),
	})
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestValidate_RequiredAndMinimum(t *testing.T) {
	doc, err := Compile([]byte(personSchema))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	issues := doc.Validate(map[string]any{
		"name":  "Ada",
		"email": "ada@example.com",
		"age":   float64(17),
	})
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %v", issues)
	}
	if issues[0].Path != "/age" {
		t.Fatalf("expected path /age, got %q", issues[0].Path)
	}
	if issues[0].Keyword != "minimum" {
		t.Fatalf("expected keyword minimum, got %q", issues[0].Keyword)
	}

	issues = doc.Validate(map[string]any{"name": "Ada"})
	if len(issues) == 0 {
		t.Fatalf("expected missing required email to be reported")
	}
	found := false
	for _, issue := range issues {
		if issue.Keyword == "required" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a required issue, got %v", issues)
	}
}

func TestValidate_FormatAssertionsEnabled(t *testing.T) {
	// The strict layer rejects an empty string for a format-constrained
	// property even though the lenient field layer lets an empty optional
	// value through. The asymmetry is intentional.
	doc, err := Compile([]byte(`{
  "properties": { "email": { "type": "string", "format": "email" } }
}`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	issues := doc.Validate(map[string]any{"email": ""})
	if len(issues) == 0 {
		t.Fatalf("expected empty email to fail format assertion")
	}
	if issues[0].Keyword != "format" {
		t.Fatalf("expected keyword format, got %q", issues[0].Keyword)
	}
}

func TestValidate_MultipleIssuesFlattened(t *testing.T) {
	doc, err := Compile([]byte(personSchema))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	issues := doc.Validate(map[string]any{
		"name":  "A",
		"email": "not-an-email",
	})
	if len(issues) < 2 {
		t.Fatalf("expected issues for both name and email, got %v", issues)
	}
	for _, issue := range issues {
		if issue.Message == "" {
			t.Fatalf("expected every issue to carry a message: %+v", issue)
		}
	}
}

func TestValidateJSON(t *testing.T) {
	doc, err := Compile([]byte(personSchema))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	issues, err := doc.ValidateJSON([]byte(`{"name":"Ada","email":"ada@example.com"}`))
	if err != nil {
		t.Fatalf("validate json: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}

	if _, err := doc.ValidateJSON([]byte(`{`)); err == nil {
		t.Fatalf("expected parse error for malformed document")
	}
}

func TestKeywordFromLocation(t *testing.T) {
	cases := map[string]string{
		"#/properties/age/minimum":       "minimum",
		"#/properties/email/format":      "format",
		"#/required":                     "required",
		"#/properties/tags/items/0/type": "type",
		"#":                              "",
		"":                               "",
	}
	for location, want := range cases {
		if got := keywordFromLocation(location); got != want {
			t.Fatalf("%q: expected %q, got %q", location, want, got)
		}
	}
}
