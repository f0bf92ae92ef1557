package fieldpath

import (
	"fmt"
	"strings"

	"github.com/sbomgrader/sbomgrader/document"
	"github.com/sbomgrader/sbomgrader/internal/pathtext"
	"github.com/sbomgrader/sbomgrader/sbomerrors"
)

// Scope maps variable names to their resolved values, as produced by the
// variable resolver (variables.go). A Query whose value is "${name}" looks
// itself up here at walk time.
type Scope map[string]any

// match pairs a matched leaf with the textual path the walk took to reach
// it, used by GetPaths and by diagnostics attached to assertion failures.
type match struct {
	value any
	path  string
}

// Diagnostic preview sizing for assertion messages (§4.2 case 1): long
// matched values are elided to a prefix and suffix around an ellipsis
// rather than dumped in full.
const (
	maxItemPreviewLength = 200
	startPreviewChars    = 80
	endPreviewChars      = 80
)

func previewOf(v any) string {
	s := fmt.Sprint(v)
	if len(s) <= maxItemPreviewLength {
		return s
	}
	return s[:startPreviewChars] + "..." + s[len(s)-endPreviewChars:]
}

// visitFn is invoked by readWalk at every matched leaf (§4.2 case 1). A
// non-nil return marks that leaf as failed; readWalk wraps it into an
// AssertionFailedError carrying a truncated preview of the matched value,
// and the enclosing QueryBlockStep (if any) decides whether that failure
// aborts the walk (strict, i.e. Each or no tolerance marker) or is merely
// counted while the walk continues (tolerant, i.e. Any present).
type visitFn func(value any, pathText string) error

// collectVisitor returns a visitFn that never fails, appending every
// visited leaf to collected; used by GetObjects and GetPaths, where there
// is no checker to apply and every reached leaf is, by definition, a match.
func collectVisitor(collected *[]match) visitFn {
	return func(value any, pathText string) error {
		*collected = append(*collected, match{value: value, path: pathText})
		return nil
	}
}

// GetObjects returns every value in doc matched by path.
func GetObjects(doc any, path *Path, scope Scope) ([]any, error) {
	collected := getMatchSlice()
	defer putMatchSlice(collected)
	var pb pathtext.Builder
	var matched int
	if err := readWalk(doc, path.steps, scope, &pb, collectVisitor(collected), false, &matched); err != nil {
		return nil, err
	}
	out := make([]any, len(*collected))
	for i, m := range *collected {
		out[i] = m.value
	}
	return out, nil
}

// GetPaths returns the textual path of every location in doc matched by
// path.
func GetPaths(doc any, path *Path, scope Scope) ([]string, error) {
	collected := getMatchSlice()
	defer putMatchSlice(collected)
	var pb pathtext.Builder
	var matched int
	if err := readWalk(doc, path.steps, scope, &pb, collectVisitor(collected), false, &matched); err != nil {
		return nil, err
	}
	out := make([]string, len(*collected))
	for i, m := range *collected {
		out[i] = m.path
	}
	return out, nil
}

// RunFunc walks doc, invoking fn at every location path matches. It is the
// entry point rules.Rule uses: fn returns a non-nil error to report that a
// matched value failed the check. A walk that matches fewer than minMatches
// locations fails with FieldNotPresentError regardless of what fn returns,
// since there was nothing to check.
//
// fn is invoked inline as the walk's visitor (rather than collected first
// and applied afterward), so Each-vs-Any tolerance inside a QueryBlockStep
// (§4.2 case 5) governs checker failures exactly the way it governs
// structural walk failures: an Each block aborts on its first failing
// element, an Any block succeeds as long as one admitted element's checker
// passes (§8 scenario 3).
//
// acceptMissing controls what happens when a field step's key is absent from
// its mapping (§7's "FieldNotPresent | accept_missing=false" row): with it
// false (the common case), a missing required field aborts the walk with
// FieldNotPresentError. With it true — set by rules.Rule for a checker built
// from a FIELD_NOT_PRESENT operand (§6) — a missing field instead yields the
// document.Missing sentinel as the matched leaf, letting the checker itself
// decide whether an absent field is the expected outcome.
func RunFunc(doc any, path *Path, scope Scope, minMatches int, acceptMissing bool, fn func(value any, pathText string) error) error {
	var pb pathtext.Builder
	var matched int
	err := readWalk(doc, path.steps, scope, &pb, visitFn(fn), acceptMissing, &matched)
	if err != nil {
		return err
	}
	if matched < minMatches {
		return &sbomerrors.FieldNotPresentError{PathTried: path.raw}
	}
	return nil
}

// InsertAtPath writes value at the location(s) path resolves to within doc,
// returning the (possibly new) root node. createMissing controls whether
// absent intermediate containers are created along the way; without it, a
// missing container is a no-op rather than an error, matching read-mode
// optional-step tolerance (§4.2 case 4).
func InsertAtPath(doc any, path *Path, scope Scope, value any, createMissing bool) (any, error) {
	return writeWalk(doc, path.steps, scope, value, createMissing)
}

func readWalk(node any, steps []Step, scope Scope, pb *pathtext.Builder, visit visitFn, acceptMissing bool, matched *int) error {
	if len(steps) == 0 {
		*matched++
		pathText := pb.String()
		if err := visit(node, pathText); err != nil {
			return &sbomerrors.AssertionFailedError{
				PathTried:   pathText,
				ItemPreview: previewOf(node),
				Messages:    []string{err.Error()},
				Cause:       err,
			}
		}
		return nil
	}
	step, rest := steps[0], steps[1:]
	switch s := step.(type) {
	case FieldStep:
		// Missing propagates through further field access unchanged (§3:
		// "MISSING.field == MISSING"); it is not itself a type mismatch,
		// it's the continuation of an absence already reported (or, under
		// acceptMissing, deliberately tolerated) higher up the walk.
		if !document.IsMissing(node) && !document.IsMap(node) {
			return &sbomerrors.TypeMismatchError{PathTried: pb.String(), Expected: "mapping", Got: node}
		}
		child := document.Field(node, s.Name)
		if document.IsMissing(child) {
			if s.Optional {
				return nil
			}
			if acceptMissing {
				pb.Push(s.Name)
				err := readWalk(document.Missing, rest, scope, pb, visit, acceptMissing, matched)
				pb.Pop()
				return err
			}
			pb.Push(s.Name)
			pathTried := pb.String()
			pb.Pop()
			return &sbomerrors.FieldNotPresentError{PathTried: pathTried}
		}
		pb.Push(s.Name)
		err := readWalk(child, rest, scope, pb, visit, acceptMissing, matched)
		pb.Pop()
		return err
	case IndexStep:
		if !document.IsSeq(node) {
			return &sbomerrors.TypeMismatchError{PathTried: pb.String(), Expected: "sequence", Got: node}
		}
		child := document.Index(node, s.Index)
		if document.IsMissing(child) {
			pb.PushIndex(s.Index)
			pathTried := pb.String()
			pb.Pop()
			return &sbomerrors.FieldNotPresentError{PathTried: pathTried}
		}
		pb.PushIndex(s.Index)
		err := readWalk(child, rest, scope, pb, visit, acceptMissing, matched)
		pb.Pop()
		return err
	case QueryBlockStep:
		seq, ok := node.([]any)
		if !ok {
			return &sbomerrors.TypeMismatchError{PathTried: pb.String(), Expected: "sequence", Got: node}
		}
		admitted, err := admittedIndices(seq, s.Queries, scope)
		if err != nil {
			return err
		}
		strict := !hasAnyMarker(s.Queries)
		var failures []error
		matchedAny := false
		for _, idx := range admitted {
			pb.PushIndex(idx)
			err := readWalk(seq[idx], rest, scope, pb, visit, acceptMissing, matched)
			pb.Pop()
			if err != nil {
				if strict {
					return err
				}
				failures = append(failures, err)
				continue
			}
			matchedAny = true
		}
		if !strict && !matchedAny {
			return &sbomerrors.AggregatedAssertionError{PathTried: pb.String(), Failures: failures}
		}
		return nil
	default:
		return fmt.Errorf("fieldpath: unknown step type %T", step)
	}
}

func writeWalk(node any, steps []Step, scope Scope, value any, createMissing bool) (any, error) {
	if len(steps) == 0 {
		return mergeOrReplace(node, value), nil
	}
	step, rest := steps[0], steps[1:]
	switch s := step.(type) {
	case FieldStep:
		m, ok := node.(map[string]any)
		if !ok {
			if !createMissing {
				return node, nil
			}
			m = map[string]any{}
		}
		if len(rest) == 0 {
			m[s.Name] = value
			return m, nil
		}
		child, exists := m[s.Name]
		if !exists && !createMissing {
			return m, nil
		}
		newChild, err := writeWalk(child, rest, scope, value, createMissing)
		if err != nil {
			return nil, err
		}
		m[s.Name] = newChild
		return m, nil
	case IndexStep:
		seq, ok := node.([]any)
		if !ok {
			if !createMissing {
				return node, nil
			}
			seq = []any{}
		}
		for len(seq) <= s.Index {
			if !createMissing {
				return seq, nil
			}
			seq = append(seq, nil)
		}
		newChild, err := writeWalk(seq[s.Index], rest, scope, value, createMissing)
		if err != nil {
			return nil, err
		}
		seq[s.Index] = newChild
		return seq, nil
	case QueryBlockStep:
		seq, ok := node.([]any)
		if !ok {
			if !createMissing {
				return node, nil
			}
			seq = []any{}
		}
		admitted, err := admittedIndices(seq, s.Queries, scope)
		if err != nil {
			return nil, err
		}
		if len(admitted) == 0 {
			if !createMissing {
				return seq, nil
			}
			newElem, err := writeWalk(map[string]any{}, rest, scope, value, true)
			if err != nil {
				return nil, err
			}
			return append(seq, newElem), nil
		}
		for _, idx := range admitted {
			newElem, err := writeWalk(seq[idx], rest, scope, value, createMissing)
			if err != nil {
				return nil, err
			}
			seq[idx] = newElem
		}
		return seq, nil
	default:
		return nil, fmt.Errorf("fieldpath: unknown step type %T", step)
	}
}

// mergeOrReplace implements the empty-path insert case (§4.2 case 4): if
// both the existing node and the new value are mappings, the value's keys
// are merged in; otherwise the node is replaced outright.
func mergeOrReplace(node, value any) any {
	nm, nok := node.(map[string]any)
	vm, vok := value.(map[string]any)
	if nok && vok {
		for k, v := range vm {
			nm[k] = v
		}
		return nm
	}
	return value
}

func hasAnyMarker(queries []Query) bool {
	for _, q := range queries {
		if q.Type == QueryAny {
			return true
		}
	}
	return false
}

func admittedIndices(seq []any, queries []Query, scope Scope) ([]int, error) {
	admitted := make([]int, len(seq))
	for i := range seq {
		admitted[i] = i
	}
	for _, q := range queries {
		switch q.Type {
		case QueryEach, QueryAny:
			continue
		case QueryIndex:
			admitted = intersectOne(admitted, q.Index)
		default:
			var next []int
			for _, idx := range admitted {
				ok, err := evalComparison(seq[idx], q, scope)
				if err != nil {
					return nil, err
				}
				if ok {
					next = append(next, idx)
				}
			}
			admitted = next
		}
	}
	return admitted, nil
}

func intersectOne(admitted []int, target int) []int {
	for _, idx := range admitted {
		if idx == target {
			return []int{idx}
		}
	}
	return nil
}

func evalComparison(elem any, q Query, scope Scope) (bool, error) {
	target := elem
	if q.FieldPath != nil && !q.FieldPath.Empty() {
		var collected []match
		var subPB pathtext.Builder
		var subMatched int
		if err := readWalk(elem, q.FieldPath.steps, scope, &subPB, collectVisitor(&collected), false, &subMatched); err != nil {
			return false, nil
		}
		if len(collected) == 0 {
			return false, nil
		}
		target = collected[0].value
	}
	if document.IsMissing(target) || target == nil {
		return false, nil
	}
	ts := fmt.Sprint(target)
	values, err := valuesFor(q.Value, scope)
	if err != nil {
		return false, err
	}
	switch q.Type {
	case QueryEq:
		return anyEquals(ts, values), nil
	case QueryNeq:
		return !anyEquals(ts, values), nil
	case QueryStartsWith:
		for _, v := range values {
			if strings.HasPrefix(ts, v) {
				return true, nil
			}
		}
		return false, nil
	case QueryEndsWith:
		for _, v := range values {
			if strings.HasSuffix(ts, v) {
				return true, nil
			}
		}
		return false, nil
	case QueryContains:
		for _, v := range values {
			if strings.Contains(ts, v) {
				return true, nil
			}
		}
		return false, nil
	case QueryNotContains:
		for _, v := range values {
			if strings.Contains(ts, v) {
				return false, nil
			}
		}
		return true, nil
	default:
		return false, nil
	}
}

func anyEquals(s string, values []string) bool {
	for _, v := range values {
		if s == v {
			return true
		}
	}
	return false
}

// valuesFor resolves a QueryValue to the set of strings it compares
// against: a single literal, or the (possibly multi-valued) variable it
// references. A variable resolving to a sequence makes the comparison a
// set-membership test rather than a single-value equality (§4.1).
//
// A variable absent from scope (dropped by the resolver, §4.3.2) resolves to
// the empty set rather than an error: every equality-style comparison then
// fails and every inequality-style comparison passes, per §9's documented
// behavior for queries that reference an unresolved variable.
func valuesFor(v QueryValue, scope Scope) ([]string, error) {
	if !v.IsVariable {
		return []string{v.Literal}, nil
	}
	val, ok := scope[v.VarName]
	if !ok {
		return nil, nil
	}
	return toStringSlice(val), nil
}

func toStringSlice(v any) []string {
	if seq, ok := v.([]any); ok {
		out := make([]string, len(seq))
		for i, e := range seq {
			out[i] = fmt.Sprint(e)
		}
		return out
	}
	return []string{fmt.Sprint(v)}
}
