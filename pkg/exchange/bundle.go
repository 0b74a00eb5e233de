// Package exchange builds and reads export bundles: a schema plus either the
// form data captured at export time or the submission list. Bundles are
// plain JSON files a user can carry between installations.
package exchange

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-schemaform/pkg/store"
)

// ErrMalformedBundle reports an import payload missing the required keys.
var ErrMalformedBundle = errors.New("exchange: malformed bundle")

// Bundle is the export/import envelope. FormData and Submissions are
// mutually exclusive by construction; import requires schema and formData.
type Bundle struct {
	Schema      json.RawMessage    `json:"schema"`
	SchemaID    string             `json:"schemaId,omitempty"`
	SchemaName  string             `json:"schemaName,omitempty"`
	FormData    map[string]any     `json:"formData,omitempty"`
	Submissions []store.Submission `json:"submissions,omitempty"`
	ExportedAt  time.Time          `json:"exportedAt"`
}

// ExportFormData captures a schema and the current value map.
func ExportFormData(record store.Schema, formData map[string]any, exportedAt time.Time) Bundle {
	if formData == nil {
		formData = map[string]any{}
	}
	return Bundle{
		Schema:     append(json.RawMessage(nil), record.Schema...),
		SchemaID:   record.ID,
		SchemaName: record.Name,
		FormData:   formData,
		ExportedAt: exportedAt.UTC(),
	}
}

// ExportSubmissions captures a schema and its submission list.
func ExportSubmissions(record store.Schema, submissions []store.Submission, exportedAt time.Time) Bundle {
	return Bundle{
		Schema:      append(json.RawMessage(nil), record.Schema...),
		SchemaID:    record.ID,
		SchemaName:  record.Name,
		Submissions: append([]store.Submission(nil), submissions...),
		ExportedAt:  exportedAt.UTC(),
	}
}

// Encode serialises the bundle the way the export download writes it.
func (b Bundle) Encode() ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

// Import parses an export file. At minimum the schema and formData keys must
// be present; anything else is rejected as malformed. The schema bytes pass
// through verbatim, so mapping the imported schema yields fields identical
// to mapping the original.
func Import(raw []byte) (Bundle, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return Bundle{}, fmt.Errorf("%w: %v", ErrMalformedBundle, err)
	}
	if _, ok := keys["schema"]; !ok {
		return Bundle{}, fmt.Errorf("%w: missing schema", ErrMalformedBundle)
	}
	if _, ok := keys["formData"]; !ok {
		return Bundle{}, fmt.Errorf("%w: missing formData", ErrMalformedBundle)
	}

	var bundle Bundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return Bundle{}, fmt.Errorf("%w: %v", ErrMalformedBundle, err)
	}
	return bundle, nil
}
