package schema

// Property is the typed view over one entry of a schema's "properties"
// object. Constraint fields use pointers so an absent constraint and a
// constraint whose value is zero stay distinguishable.
type Property struct {
	Type        string
	Format      string
	Title       string
	Description string
	Pattern     string
	Enum        []any
	Minimum     *float64
	Maximum     *float64
	MinLength   *int
	MaxLength   *int
}

// NamedProperty pairs a property with its key inside "properties".
type NamedProperty struct {
	Name string
	Property
}

// Schema is the typed view over a JSON Schema document restricted to the
// subset this module supports: a flat set of scalar properties at the top
// level. Properties preserve their declaration order in the raw document,
// which is also the display order for derived form fields.
type Schema struct {
	Type        string
	Title       string
	Description string
	Properties  []NamedProperty
	Required    []string

	raw []byte
}

// Raw returns the literal document the schema was parsed from. Authoritative
// document validation must run against these bytes.
func (s Schema) Raw() []byte {
	return append([]byte(nil), s.raw...)
}

// Property looks up a property by name.
func (s Schema) Property(name string) (Property, bool) {
	for _, prop := range s.Properties {
		if prop.Name == name {
			return prop.Property, true
		}
	}
	return Property{}, false
}

// IsRequired reports whether name appears in the schema's required set.
func (s Schema) IsRequired(name string) bool {
	for _, item := range s.Required {
		if item == name {
			return true
		}
	}
	return false
}
