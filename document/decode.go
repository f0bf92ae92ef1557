package document

import (
	"encoding/json"
	"io"

	yaml "go.yaml.in/yaml/v4"
)

// DecodeYAML decodes a single YAML document from r into the generic tree
// representation (map[string]any / []any / scalars). Mapping keys that are
// not already strings are rejected rather than silently stringified, since a
// non-string key cannot be addressed by the field-path DSL (§4.1).
func DecodeYAML(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var node any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	return normalizeYAML(node)
}

// DecodeJSON decodes a single JSON document from r into the generic tree
// representation. encoding/json already produces map[string]any / []any /
// scalars for an `any` target; only numbers get a further pass (denumber).
func DecodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var node any
	if err := dec.Decode(&node); err != nil {
		return nil, err
	}
	return denumber(node), nil
}

// denumber converts json.Number scalars (produced by UseNumber, which keeps
// large integers from losing precision as float64) into int64 when the
// number is an integer that fits, float64 otherwise. DecodeYAML gives
// integers as int, not int64.
func denumber(v any) any {
	switch n := v.(type) {
	case map[string]any:
		for k, child := range n {
			n[k] = denumber(child)
		}
		return n
	case []any:
		for i, child := range n {
			n[i] = denumber(child)
		}
		return n
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		f, _ := n.Float64()
		return f
	default:
		return v
	}
}

// normalizeYAML walks a yaml.Unmarshal result and rejects non-string mapping
// keys. go.yaml.in/yaml/v4 decodes mappings into map[string]any directly
// when the target is `any` with default options, but defensively re-checks
// since a YAML document may use non-scalar or non-string keys.
func normalizeYAML(v any) (any, error) {
	switch n := v.(type) {
	case map[string]any:
		for k, child := range n {
			norm, err := normalizeYAML(child)
			if err != nil {
				return nil, err
			}
			n[k] = norm
		}
		return n, nil
	case map[any]any:
		out := make(map[string]any, len(n))
		for k, child := range n {
			ks, ok := k.(string)
			if !ok {
				return nil, &NonStringKeyError{Key: k}
			}
			norm, err := normalizeYAML(child)
			if err != nil {
				return nil, err
			}
			out[ks] = norm
		}
		return out, nil
	case []any:
		for i, child := range n {
			norm, err := normalizeYAML(child)
			if err != nil {
				return nil, err
			}
			n[i] = norm
		}
		return n, nil
	default:
		return v, nil
	}
}

// NonStringKeyError reports a mapping key that cannot be addressed by the
// field-path DSL because it is not a string.
type NonStringKeyError struct {
	Key any
}

func (e *NonStringKeyError) Error() string {
	return "document: mapping key is not a string: " + toDebugString(e.Key)
}

func toDebugString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "?"
	}
	return string(b)
}
