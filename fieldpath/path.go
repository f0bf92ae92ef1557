package fieldpath

import "strings"

// Path is a parsed field-path expression: an ordered, immutable list of
// Steps. Construct one with Parse; a Path and everything it points to is
// read-only once returned.
type Path struct {
	raw   string
	steps []Step
}

// String returns the original expression Parse was called with.
func (p *Path) String() string { return p.raw }

// Steps returns the parsed step list. The returned slice shares storage with
// the Path and must not be mutated.
func (p *Path) Steps() []Step { return p.steps }

// Empty reports whether the path has no steps, i.e. it addresses the
// document root itself (the empty-path case used by insert-at-root, §4.2
// case 4).
func (p *Path) Empty() bool { return len(p.steps) == 0 }

// StepKind identifies which concrete Step variant a Step value holds.
type StepKind int

const (
	// StepField addresses a named key in a mapping.
	StepField StepKind = iota
	// StepIndex addresses a fixed position in a sequence, constructed
	// programmatically (the textual grammar's bracketed integer form
	// compiles to a QueryBlock carrying a single Index query instead;
	// see QueryIndex).
	StepIndex
	// StepQueryBlock filters and descends into sequence elements via one
	// or more intersected Queries.
	StepQueryBlock
)

// Step is one segment of a parsed Path.
type Step interface {
	Kind() StepKind
}

// FieldStep descends into a mapping by key. Optional marks a step written
// with the '?' prefix in the grammar (e.g. "?annotations"): when the key is
// absent, a read walk silently yields no matches instead of raising
// FieldNotPresentError. A write walk ignores the marker and creates the key
// like any other field step.
type FieldStep struct {
	Name     string
	Optional bool
}

func (FieldStep) Kind() StepKind { return StepField }

// IndexStep descends into a sequence at a fixed, non-negative position.
type IndexStep struct {
	Index int
}

func (IndexStep) Kind() StepKind { return StepIndex }

// QueryBlockStep descends into a sequence, admitting only elements that
// satisfy every Query in Queries (intersection semantics, §4.2 case 5).
type QueryBlockStep struct {
	Queries []Query
}

func (QueryBlockStep) Kind() StepKind { return StepQueryBlock }

// QueryType identifies the comparison or selection a Query performs.
type QueryType int

const (
	// QueryEach requires every admitted element to satisfy the rest of
	// the path (strict: one failure fails the whole walk).
	QueryEach QueryType = iota
	// QueryAny requires at least one admitted element to satisfy the
	// rest of the path (tolerant: failures are collected, not fatal,
	// unless every element fails).
	QueryAny
	// QueryIndex admits exactly the element at a fixed position. This is
	// what a bare integer inside brackets ("[1]") compiles to.
	QueryIndex
	QueryEq
	QueryNeq
	QueryStartsWith
	QueryEndsWith
	QueryContains
	QueryNotContains
)

// String renders the operator token a QueryType parses from, for error
// messages and round-tripping.
func (t QueryType) String() string {
	switch t {
	case QueryEach:
		return "&"
	case QueryAny:
		return "|"
	case QueryIndex:
		return "<index>"
	case QueryEq:
		return "="
	case QueryNeq:
		return "!="
	case QueryStartsWith:
		return "%="
	case QueryEndsWith:
		return "=%"
	case QueryContains:
		return "~="
	case QueryNotContains:
		return "!~="
	default:
		return "?"
	}
}

// QueryValue is the right-hand side of a comparison Query: either a literal
// string or a reference to a named Variable (written "${name}" in the
// grammar), resolved against the current evaluation scope at walk time.
type QueryValue struct {
	IsVariable bool
	Literal    string
	VarName    string
}

// Query is one comma-separated clause inside a bracketed step. A
// QueryBlockStep intersects the admitted-index sets of all its Queries: an
// element survives only if every Query admits it.
//
// FieldPath is nil for QueryEach, QueryAny and QueryIndex (they test the
// element itself or its position, not a nested field). For the comparison
// types it names where, relative to each candidate element, the compared
// value lives; an empty FieldPath means the element itself.
type Query struct {
	Type      QueryType
	FieldPath *Path
	Value     QueryValue
	Index     int
}

// IndexStepsOf returns a Path containing only p's Index and QueryBlock
// steps, in order, dropping every Field step. It is used to reduce a
// matched location down to its purely positional component — its
// field names necessarily don't carry over when the matched value is
// being relocated into a document with a different shape, but which
// repeated-element index it came from often should.
func IndexStepsOf(p *Path) *Path {
	var steps []Step
	for _, s := range p.steps {
		switch s.Kind() {
		case StepIndex, StepQueryBlock:
			steps = append(steps, s)
		}
	}
	return &Path{raw: p.raw, steps: steps}
}

// IsRelative reports whether raw begins with the relative-path anchor
// ("@." prefix) or contains one nested inside a bracketed step ("[@]").
// Variable resolution uses this cheap, parse-free check to decide whether a
// variable needs a base path before it can be resolved at all (§4.3.2); a
// relative variable with no base supplied is dropped from scope rather than
// parsed.
func IsRelative(raw string) bool {
	return strings.HasPrefix(raw, "@.") || raw == "@" || strings.Contains(raw, "[@]") || strings.Contains(raw, "[@.")
}
