package translate

import (
	"text/template"

	"github.com/sbomgrader/sbomgrader/document"
)

// funcMap supplies the template helpers a Chunk's rendering template can
// call, grounded on oastools/generator's custom template.FuncMap pattern
// (string helpers registered alongside text/template's builtins).
var funcMap = template.FuncMap{
	"unwrap":   unwrap,
	"slice":    toSlice,
	"fallback": fallback,
}

// unwrap returns v[0] when v is a single-element slice, v unchanged
// otherwise. Templates addressing a scalar field use this to avoid
// indexing a single-element sequence by hand.
func unwrap(v any) any {
	s, ok := v.([]any)
	if !ok {
		return v
	}
	if len(s) == 1 {
		return s[0]
	}
	return v
}

// toSlice wraps a non-slice value into a one-element slice, the inverse of
// unwrap, for templates that need to range over a field regardless of
// whether the source document gave it as a scalar or a sequence.
func toSlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return []any{v}
}

// fallback returns v unless it is nil, the document.Missing sentinel, or an
// empty string, in which case it returns def.
func fallback(v, def any) any {
	if v == nil {
		return def
	}
	if s, ok := v.(string); ok && s == "" {
		return def
	}
	if document.IsMissing(v) {
		return def
	}
	return v
}
