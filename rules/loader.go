package rules

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/sbomgrader/sbomgrader/document"
	"github.com/sbomgrader/sbomgrader/fieldpath"
)

// FieldNotPresentToken is the special operand value a rule-file checker
// uses to mean "match the Missing sentinel" rather than a literal string
// (§6 "Rule file"). It is recognized both as a bare operand and as one
// member of an `in`/`not_in` list mixed with concrete values.
const FieldNotPresentToken = "FIELD_NOT_PRESENT"

// FuncNameLoader resolves a rule-file checker of the form {func_name: X}
// to a CheckerFunc, given the implementation name the rule is being loaded
// for and the operand X. The default used by LoadRuleFile compiles X as an
// expr-lang expression (rules.FuncName); a host that wants its own named
// predicate lookup (mirroring rule_loader.py's dynamic import by
// implementation + name) can supply its own.
type FuncNameLoader func(implementation, name string) (CheckerFunc, error)

// LoadRuleFile parses a decoded rule-file document (§6) into one RuleSet
// per implementation it names, keyed by implementation name (e.g.
// "spdx23", "cdx16"). This is the Go-native equivalent of rules.py's
// RuleSet.from_file: the document is already decoded (this package accepts
// no file paths, per spec.md's Non-goals), and "schema validation of the
// rule file" is intentionally not performed here — a structurally invalid
// document surfaces as a descriptive error from this function rather than
// from a JSON-schema validator.
func LoadRuleFile(doc any, funcLoader FuncNameLoader) (map[string]*RuleSet, error) {
	if funcLoader == nil {
		funcLoader = func(_, exprSrc string) (CheckerFunc, error) { return FuncName(exprSrc) }
	}

	top, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("rules: rule file root must be a mapping")
	}
	rawRules, ok := top["rules"].([]any)
	if !ok {
		return nil, fmt.Errorf("rules: rule file has no 'rules' list")
	}

	globalVars := loadGlobalVariables(top)
	out := map[string]*RuleSet{}

	for i, rawRule := range rawRules {
		ruleObj, ok := rawRule.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("rules: rules[%d] is not a mapping", i)
		}
		name, _ := ruleObj["name"].(string)
		if name == "" {
			return nil, fmt.Errorf("rules: rules[%d] has no name", i)
		}
		failureMessage, _ := ruleObj["failureMessage"].(string)

		implementations, ok := ruleObj["implementations"].([]any)
		if !ok {
			return nil, fmt.Errorf("rules: rule %q has no implementations list", name)
		}
		for j, rawImpl := range implementations {
			implObj, ok := rawImpl.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("rules: rule %q implementations[%d] is not a mapping", name, j)
			}
			implName, _ := implObj["name"].(string)
			if implName == "" {
				return nil, fmt.Errorf("rules: rule %q implementations[%d] has no name", name, j)
			}
			fieldPathStr, _ := implObj["fieldPath"].(string)
			msg := failureMessage
			if m, ok := implObj["failureMessage"].(string); ok && m != "" {
				msg = m
			}

			checkerObj, _ := implObj["checker"].(map[string]any)
			checker, err := buildChecker(checkerObj, implName, name, funcLoader)
			if err != nil {
				return nil, fmt.Errorf("rules: rule %q implementation %q: %w", name, implName, err)
			}

			vars, err := loadVariables(implObj["variables"])
			if err != nil {
				return nil, fmt.Errorf("rules: rule %q implementation %q: %w", name, implName, err)
			}
			vars = append(vars, globalVars[implName]...)

			minMatches := 1
			switch v := implObj["minimumTestedElements"].(type) {
			case int:
				minMatches = v
			case int64:
				minMatches = int(v)
			case float64:
				minMatches = int(v)
			}

			rule, err := NewRule(name, fieldPathStr, checker, msg, minMatches, vars...)
			if err != nil {
				return nil, fmt.Errorf("rules: rule %q implementation %q: %w", name, implName, err)
			}
			rule.AcceptMissing = checkerAcceptsMissing(checkerObj)

			rs, ok := out[implName]
			if !ok {
				rs = NewRuleSet(implName)
				out[implName] = rs
			}
			rs.Add(rule)
		}
	}
	return out, nil
}

func loadGlobalVariables(top map[string]any) map[string][]fieldpath.VariableDef {
	result := map[string][]fieldpath.VariableDef{}
	varsObj, ok := top["variables"].(map[string]any)
	if !ok {
		return result
	}
	implementations, ok := varsObj["implementations"].([]any)
	if !ok {
		return result
	}
	for _, raw := range implementations {
		obj, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		implName, _ := obj["name"].(string)
		defs, err := loadVariables(obj["variables"])
		if err == nil {
			result[implName] = defs
		}
	}
	return result
}

func loadVariables(raw any) ([]fieldpath.VariableDef, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, nil
	}
	defs := make([]fieldpath.VariableDef, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("variables[%d] is not a mapping", i)
		}
		name, _ := obj["name"].(string)
		path, _ := obj["fieldPath"].(string)
		if name == "" || path == "" {
			return nil, fmt.Errorf("variables[%d] missing name or fieldPath", i)
		}
		defs = append(defs, fieldpath.VariableDef{Name: name, Path: path})
	}
	return defs, nil
}

// buildChecker compiles a rule file's `checker: {op: operand}` mapping
// (§6) into a CheckerFunc. Exactly one key is expected; this mirrors
// rules.py's `next(iter(checker.keys()))`, which also only ever looks at
// the first key of the mapping.
func buildChecker(checkerObj map[string]any, implName, ruleName string, funcLoader FuncNameLoader) (CheckerFunc, error) {
	if len(checkerObj) == 0 {
		return nil, nil
	}
	op, operand := firstEntry(checkerObj)
	switch op {
	case "eq":
		if isFieldNotPresentToken(operand) {
			return IsFieldNotPresent(), nil
		}
		return Eq(operand), nil
	case "neq":
		if isFieldNotPresentToken(operand) {
			return Not(IsFieldNotPresent()), nil
		}
		return Neq(operand), nil
	case "in":
		set, allowMissing := splitSentinel(operand)
		return InAllowingMissing(set, allowMissing), nil
	case "not_in":
		set, allowMissing := splitSentinel(operand)
		return Not(InAllowingMissing(set, allowMissing)), nil
	case "str_startswith":
		s, _ := operand.(string)
		return StrStartsWith(s), nil
	case "str_endswith":
		s, _ := operand.(string)
		return StrEndsWith(s), nil
	case "str_contains":
		s, _ := operand.(string)
		return StrContains(s), nil
	case "str_matches_regex":
		s, _ := operand.(string)
		return StrMatchesRegex(s)
	case "length_eq":
		return LengthEq(toInt(operand)), nil
	case "length_gt":
		return LengthGt(toInt(operand)), nil
	case "length_lt":
		return LengthLt(toInt(operand)), nil
	case "func_name":
		s, _ := operand.(string)
		return funcLoader(implName, s)
	default:
		return nil, fmt.Errorf("unrecognized checker operator %q", op)
	}
}

func firstEntry(m map[string]any) (string, any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return "", nil
	}
	return keys[0], m[keys[0]]
}

func isFieldNotPresentToken(v any) bool {
	s, ok := v.(string)
	return ok && s == FieldNotPresentToken
}

// checkerAcceptsMissing reports whether checkerObj's operand is, or
// contains, the FIELD_NOT_PRESENT sentinel: true for {eq: FIELD_NOT_PRESENT},
// {neq: FIELD_NOT_PRESENT}, and an in/not_in list that includes it alongside
// concrete values. LoadRuleFile sets Rule.AcceptMissing from this so such a
// rule's walk yields the Missing sentinel to the checker instead of aborting
// with FieldNotPresentError (§4.4 item 3, §6).
func checkerAcceptsMissing(checkerObj map[string]any) bool {
	if len(checkerObj) == 0 {
		return false
	}
	op, operand := firstEntry(checkerObj)
	switch op {
	case "eq", "neq":
		return isFieldNotPresentToken(operand)
	case "in", "not_in":
		_, allowMissing := splitSentinel(operand)
		return allowMissing
	default:
		return false
	}
}

// splitSentinel separates FieldNotPresentToken out of a checker operand
// that may be a single value or a list, since §6 allows lists to "mix
// FIELD_NOT_PRESENT with concrete values".
func splitSentinel(operand any) (set []any, allowMissing bool) {
	list, ok := operand.([]any)
	if !ok {
		if isFieldNotPresentToken(operand) {
			return nil, true
		}
		return []any{operand}, false
	}
	for _, v := range list {
		if isFieldNotPresentToken(v) {
			allowMissing = true
			continue
		}
		set = append(set, v)
	}
	return set, allowMissing
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(n)
		return i
	default:
		return 0
	}
}

// IsFieldNotPresent is the CheckerFunc a rule-file `{eq: FIELD_NOT_PRESENT}`
// checker compiles to: it passes only when the matched value is the
// document.Missing sentinel.
func IsFieldNotPresent() CheckerFunc {
	return func(value any) error {
		if document.IsMissing(value) {
			return nil
		}
		return fmt.Errorf("expected field to be absent, got %v", value)
	}
}

// Not negates a CheckerFunc: it passes exactly when c fails.
func Not(c CheckerFunc) CheckerFunc {
	return func(value any) error {
		if c(value) != nil {
			return nil
		}
		return fmt.Errorf("value %v unexpectedly passed the negated check", value)
	}
}

// InAllowingMissing is In, generalized so a rule-file `in`/`not_in` operand
// list that mixes FIELD_NOT_PRESENT with concrete values treats a Missing
// matched value as passing independently of membership in set (§6).
func InAllowingMissing(set []any, allowMissing bool) CheckerFunc {
	in := In(set)
	return func(value any) error {
		if document.IsMissing(value) {
			if allowMissing {
				return nil
			}
			return fmt.Errorf("field not present, expected one of %v", set)
		}
		return in(value)
	}
}
