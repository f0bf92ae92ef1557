package document

// missingType is the concrete type behind Missing. It has no exported fields
// or methods; the only useful thing about a value of this type is that it
// compares equal to Missing and to nothing else.
type missingType struct{}

// Missing is the sentinel value returned by field access when a key is
// absent from a mapping. It is distinct from a field explicitly set to nil:
// a mapping entry with value nil is present and nil; a mapping entry that
// does not exist is Missing.
//
// Missing propagates through further access: indexing or field-descending
// into Missing yields Missing again, so callers can chain lookups without
// nil-checking at every step.
var Missing any = missingType{}

// IsMissing reports whether v is the Missing sentinel.
func IsMissing(v any) bool {
	_, ok := v.(missingType)
	return ok
}

// Field returns node[key] if node is a mapping and key is present, Missing
// otherwise (including when node is itself Missing or not a mapping).
func Field(node any, key string) any {
	m, ok := node.(map[string]any)
	if !ok {
		return Missing
	}
	v, ok := m[key]
	if !ok {
		return Missing
	}
	return v
}

// HasField reports whether node is a mapping containing key.
func HasField(node any, key string) bool {
	m, ok := node.(map[string]any)
	if !ok {
		return false
	}
	_, ok = m[key]
	return ok
}

// Index returns the i-th element of node if node is a sequence and i is in
// range, Missing otherwise.
func Index(node any, i int) any {
	s, ok := node.([]any)
	if !ok {
		return Missing
	}
	if i < 0 || i >= len(s) {
		return Missing
	}
	return s[i]
}

// IsMap reports whether node is a mapping.
func IsMap(node any) bool {
	_, ok := node.(map[string]any)
	return ok
}

// IsSeq reports whether node is a sequence.
func IsSeq(node any) bool {
	_, ok := node.([]any)
	return ok
}
