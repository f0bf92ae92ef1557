package document

import (
	"encoding/json"

	yaml "go.yaml.in/yaml/v4"
)

// EncodeJSON marshals a generic document tree to indented JSON, the
// counterpart of DecodeJSON for writing out a graded or translated
// document. Key order follows encoding/json's own (alphabetical) ordering,
// consistent with the data model's "keys unique, insertion order
// irrelevant" contract (§3).
func EncodeJSON(doc any) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// EncodeYAML marshals a generic document tree to YAML.
func EncodeYAML(doc any) ([]byte, error) {
	return yaml.Marshal(doc)
}
