package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
)

// CheckerFunc is the predicate a Rule applies to each value its path
// matches. It returns nil when the value passes, a descriptive error
// otherwise; RunFunc wraps that error into an AssertionFailedError with the
// path and an item preview attached.
type CheckerFunc func(value any) error

// Eq checks value equality by fmt.Sprint comparison, the same loose
// string-shaped equality the field-path comparison operators use.
func Eq(want any) CheckerFunc {
	wantStr := fmt.Sprint(want)
	return func(value any) error {
		if fmt.Sprint(value) == wantStr {
			return nil
		}
		return fmt.Errorf("expected %v, got %v", want, value)
	}
}

// Neq is the negation of Eq.
func Neq(want any) CheckerFunc {
	eq := Eq(want)
	return func(value any) error {
		if eq(value) == nil {
			return fmt.Errorf("expected value other than %v", want)
		}
		return nil
	}
}

// In checks set membership.
func In(set []any) CheckerFunc {
	return func(value any) error {
		v := fmt.Sprint(value)
		for _, s := range set {
			if fmt.Sprint(s) == v {
				return nil
			}
		}
		return fmt.Errorf("%v not in %v", value, set)
	}
}

// NotIn is the negation of In.
func NotIn(set []any) CheckerFunc {
	in := In(set)
	return func(value any) error {
		if in(value) == nil {
			return fmt.Errorf("%v must not be in %v", value, set)
		}
		return nil
	}
}

// StrStartsWith checks a string prefix.
func StrStartsWith(prefix string) CheckerFunc {
	return func(value any) error {
		s := fmt.Sprint(value)
		if strings.HasPrefix(s, prefix) {
			return nil
		}
		return fmt.Errorf("%q does not start with %q", s, prefix)
	}
}

// StrEndsWith checks a string suffix.
func StrEndsWith(suffix string) CheckerFunc {
	return func(value any) error {
		s := fmt.Sprint(value)
		if strings.HasSuffix(s, suffix) {
			return nil
		}
		return fmt.Errorf("%q does not end with %q", s, suffix)
	}
}

// StrContains checks for a substring.
func StrContains(substr string) CheckerFunc {
	return func(value any) error {
		s := fmt.Sprint(value)
		if strings.Contains(s, substr) {
			return nil
		}
		return fmt.Errorf("%q does not contain %q", s, substr)
	}
}

// StrMatchesRegex checks a regular expression match.
func StrMatchesRegex(pattern string) (CheckerFunc, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("rules: invalid regex %q: %w", pattern, err)
	}
	return func(value any) error {
		s := fmt.Sprint(value)
		if re.MatchString(s) {
			return nil
		}
		return fmt.Errorf("%q does not match %q", s, pattern)
	}, nil
}

func sequenceLen(value any) (int, bool) {
	switch v := value.(type) {
	case []any:
		return len(v), true
	case string:
		return len(v), true
	case map[string]any:
		return len(v), true
	default:
		return 0, false
	}
}

// LengthEq checks that a sequence, string, or mapping has exactly n elements.
func LengthEq(n int) CheckerFunc {
	return func(value any) error {
		l, ok := sequenceLen(value)
		if !ok {
			return fmt.Errorf("value of type %T has no length", value)
		}
		if l == n {
			return nil
		}
		return fmt.Errorf("expected length %d, got %d", n, l)
	}
}

// LengthGt checks that length is strictly greater than n.
func LengthGt(n int) CheckerFunc {
	return func(value any) error {
		l, ok := sequenceLen(value)
		if !ok {
			return fmt.Errorf("value of type %T has no length", value)
		}
		if l > n {
			return nil
		}
		return fmt.Errorf("expected length > %d, got %d", n, l)
	}
}

// LengthLt checks that length is strictly less than n.
func LengthLt(n int) CheckerFunc {
	return func(value any) error {
		l, ok := sequenceLen(value)
		if !ok {
			return fmt.Errorf("value of type %T has no length", value)
		}
		if l < n {
			return nil
		}
		return fmt.Errorf("expected length < %d, got %d", n, l)
	}
}

// FuncName compiles an expr-lang expression into a CheckerFunc. The matched
// value is bound to "value" in the expression environment; the expression
// must evaluate to a bool. This is the Go-native equivalent of rules.py's
// func_name checker, which dynamically imports and calls a named Python
// function: rather than dynamic symbol lookup, a rule author writes the
// predicate inline as a compiled expression.
func FuncName(exprSrc string) (CheckerFunc, error) {
	env := map[string]any{"value": nil}
	program, err := expr.Compile(exprSrc, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("rules: compiling func_name expression %q: %w", exprSrc, err)
	}
	return func(value any) error {
		out, err := expr.Run(program, map[string]any{"value": value})
		if err != nil {
			return fmt.Errorf("rules: evaluating %q: %w", exprSrc, err)
		}
		ok, _ := out.(bool)
		if ok {
			return nil
		}
		return fmt.Errorf("%q did not hold for %v", exprSrc, value)
	}, nil
}
