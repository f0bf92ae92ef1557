package fieldpath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sbomgrader/sbomgrader/sbomerrors"
)

// parseConfig holds the options Parse accepts.
type parseConfig struct {
	base []Step
}

// ParseOption configures a single Parse call.
type ParseOption func(*parseConfig)

// WithBase supplies the step sequence a relative-path anchor ('@') expands
// to. Paths that use '@' without a supplied base fail to parse; callers
// resolving variables check IsRelative first and skip such variables
// instead of reaching this error (§4.3.2).
func WithBase(base *Path) ParseOption {
	return func(c *parseConfig) {
		if base != nil {
			c.base = base.steps
		}
	}
}

// Parse compiles a field-path expression into an immutable Path (§4.1). The
// whole expression either parses or it doesn't: Parse never returns a
// partially-built Path alongside an error.
func Parse(raw string, opts ...ParseOption) (*Path, error) {
	cfg := parseConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	steps, err := parseSteps(raw, cfg.base)
	if err != nil {
		return nil, err
	}
	return &Path{raw: raw, steps: steps}, nil
}

func syntaxErr(raw string, pos int, msg string) error {
	return &sbomerrors.PathSyntaxError{Raw: raw, Pos: pos, Message: msg}
}

// parseSteps tokenizes raw into Steps, expanding '@' anchors against base
// inline. It is also used to parse the nested field_path of a Query, so
// relative anchors inside bracketed steps ("[@]") resolve against the same
// base as the enclosing path.
func parseSteps(raw string, base []Step) ([]Step, error) {
	var steps []Step
	i, n := 0, len(raw)
	for i < n {
		switch raw[i] {
		case '.':
			i++
		case '[':
			depth := 1
			j := i + 1
			for j < n && depth > 0 {
				switch raw[j] {
				case '[':
					depth++
				case ']':
					depth--
				}
				if depth > 0 {
					j++
				}
			}
			if depth != 0 {
				return nil, syntaxErr(raw, i, "unmatched '['")
			}
			content := raw[i+1 : j]
			if strings.TrimSpace(content) == "@" {
				if base == nil {
					return nil, syntaxErr(raw, i, "relative anchor '[@]' used with no base path")
				}
				steps = append(steps, base...)
				i = j + 1
				continue
			}
			queries, err := parseQueries(raw, content, base)
			if err != nil {
				return nil, err
			}
			steps = append(steps, QueryBlockStep{Queries: queries})
			i = j + 1
		default:
			start := i
			optional := false
			if raw[i] == '?' {
				optional = true
				i++
				start = i
				if i >= n {
					return nil, syntaxErr(raw, start, "'?' with no following field name")
				}
			}
			if raw[i] == '@' {
				if optional {
					return nil, syntaxErr(raw, start, "'?' cannot prefix the relative anchor '@'")
				}
				if base == nil {
					return nil, syntaxErr(raw, i, "relative anchor '@' used with no base path")
				}
				i++
				steps = append(steps, base...)
				continue
			}
			for i < n && raw[i] != '.' && raw[i] != '[' {
				i++
			}
			name := raw[start:i]
			if name == "" {
				return nil, syntaxErr(raw, start, "empty path segment")
			}
			steps = append(steps, FieldStep{Name: name, Optional: optional})
		}
	}
	return steps, nil
}

// parseQueries parses the comma-separated content of one bracketed step into
// its intersected Queries (§4.1's qexpr grammar). raw and base are threaded
// through purely for error context and relative-anchor expansion in a
// nested field_path.
func parseQueries(raw, content string, base []Step) ([]Query, error) {
	parts := splitTopLevel(content, ',')
	queries := make([]Query, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, syntaxErr(raw, 0, "empty query expression")
		}
		q, err := parseOneQuery(raw, part, base)
		if err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	return queries, nil
}

func parseOneQuery(raw, part string, base []Step) (Query, error) {
	switch part {
	case "&":
		return Query{Type: QueryEach}, nil
	case "|":
		return Query{Type: QueryAny}, nil
	}
	if idx, ok := parseNonNegativeInt(part); ok {
		return Query{Type: QueryIndex, Index: idx}, nil
	}

	opStart, opEnd, opType, ok := findOperator(part)
	if !ok {
		return Query{}, syntaxErr(raw, 0, fmt.Sprintf("query expression %q has no recognized operator", part))
	}
	fieldPathStr := strings.TrimSpace(part[:opStart])
	valueStr := strings.TrimSpace(part[opEnd:])

	var fp *Path
	if fieldPathStr != "" {
		steps, err := parseSteps(fieldPathStr, base)
		if err != nil {
			return Query{}, err
		}
		fp = &Path{raw: fieldPathStr, steps: steps}
	}

	return Query{Type: opType, FieldPath: fp, Value: parseValue(valueStr)}, nil
}

func parseNonNegativeInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// operator tokens, ordered so a longer token is always tried before any
// shorter token it has as a prefix (e.g. "!~=" before "!=").
var queryOperators = []struct {
	token string
	typ   QueryType
}{
	{"!~=", QueryNotContains},
	{"~=", QueryContains},
	{"!=", QueryNeq},
	{"%=", QueryStartsWith},
	{"=%", QueryEndsWith},
	{"=", QueryEq},
}

// findOperator locates the first operator token in s that occurs outside
// any nested bracket, so a comparison's own field_path may itself contain a
// bracketed step (e.g. "tags[&].key=license") without its brackets being
// mistaken for the enclosing query's delimiters.
func findOperator(s string) (start, end int, typ QueryType, ok bool) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
			continue
		case ']':
			depth--
			continue
		}
		if depth > 0 {
			continue
		}
		for _, op := range queryOperators {
			if strings.HasPrefix(s[i:], op.token) {
				return i, i + len(op.token), op.typ, true
			}
		}
	}
	return 0, 0, 0, false
}

func parseValue(s string) QueryValue {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") && len(s) > 3 {
		return QueryValue{IsVariable: true, VarName: s[2 : len(s)-1]}
	}
	return QueryValue{Literal: s}
}

// splitTopLevel splits s on sep, ignoring occurrences nested inside a
// bracketed substring.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
