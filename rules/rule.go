package rules

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sbomgrader/sbomgrader/fieldpath"
	"github.com/sbomgrader/sbomgrader/sbomerrors"
)

// Rule binds a field-path query to a checker predicate: evaluating it walks
// Path against a document, resolves Variables into scope first, and applies
// Checker to every matched value, requiring at least MinMatches of them.
type Rule struct {
	Name       string
	Message    string
	MinMatches int
	Checker    CheckerFunc
	Variables  []fieldpath.VariableDef

	// AcceptMissing marks a rule whose Checker is built to recognize the
	// document.Missing sentinel itself (a rule-file checker keyed on
	// FIELD_NOT_PRESENT, §6) rather than expecting Path to always resolve
	// to a present value. Set by rules.LoadRuleFile; zero value false
	// preserves the ordinary "missing required field fails the rule with
	// FieldNotPresentError" behavior (§4.4 item 3).
	AcceptMissing bool

	path *fieldpath.Path
}

// NewRule parses path and returns a ready-to-evaluate Rule. minMatches is
// used exactly as given: 0 is a valid, meaningful value (§8: "minimumTestedElements
// = 0 permits a rule to succeed even if no element matched the filter"), so
// it is only clamped when negative, which can't express a real threshold.
func NewRule(name, path string, checker CheckerFunc, message string, minMatches int, vars ...fieldpath.VariableDef) (*Rule, error) {
	p, err := fieldpath.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("rules: rule %q: %w", name, err)
	}
	if minMatches < 0 {
		minMatches = 0
	}
	return &Rule{
		Name:       name,
		Message:    message,
		MinMatches: minMatches,
		Checker:    checker,
		Variables:  vars,
		path:       p,
	}, nil
}

// Path returns the rule's parsed field-path expression.
func (r *Rule) Path() *fieldpath.Path { return r.path }

// Evaluate runs the rule against doc, classifying the outcome the way
// rules.py dispatches on exception type: a failed assertion or a missing
// required field is Failed, anything else that goes wrong evaluating the
// path or its variables is Errored, and a nil Checker marks the rule
// NotImplemented without attempting to run it.
func (r *Rule) Evaluate(doc any, base *fieldpath.Path, logger *slog.Logger) ResultDetail {
	if r.Checker == nil {
		return ResultDetail{RuleName: r.Name, Outcome: NotImplemented}
	}
	if logger == nil {
		logger = slog.Default()
	}

	scope, warnings := fieldpath.ResolveVariables(r.Variables, doc, base)
	for _, w := range warnings {
		logger.Warn("rule variable not resolved", "rule", r.Name, "variable", w.Variable, "err", w.Err)
	}

	err := fieldpath.RunFunc(doc, r.path, scope, r.MinMatches, r.AcceptMissing, func(value any, pathText string) error {
		if cerr := r.Checker(value); cerr != nil {
			if r.Message != "" {
				return fmt.Errorf("%s: %w", r.Message, cerr)
			}
			return cerr
		}
		return nil
	})
	if err == nil {
		return ResultDetail{RuleName: r.Name, Outcome: Success}
	}

	var fnp *sbomerrors.FieldNotPresentError
	if errors.As(err, &fnp) {
		return ResultDetail{RuleName: r.Name, Outcome: Failed, Message: err.Error(), Err: err}
	}
	if errors.Is(err, sbomerrors.ErrAssertionFailed) {
		return ResultDetail{RuleName: r.Name, Outcome: Failed, Message: err.Error(), Err: err}
	}
	return ResultDetail{RuleName: r.Name, Outcome: Errored, Message: err.Error(), Err: err}
}
