// Package sbomerrors provides the structured error taxonomy the field-path
// evaluator, rule engine, and variable resolver raise and classify.
//
// Each error type enables programmatic handling via errors.Is()/errors.As(),
// the same shape oastools/oaserrors uses for its own taxonomy: a sentinel Err*
// value for quick checks, and a concrete struct for callers that need the
// structured context (the path tried, the offending field, and so on).
package sbomerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrPathSyntax indicates a path DSL expression failed to parse.
	ErrPathSyntax = errors.New("path syntax error")

	// ErrFieldNotPresent indicates descent hit the Missing sentinel where
	// the step did not accept it.
	ErrFieldNotPresent = errors.New("field not present")

	// ErrTypeMismatch indicates a query ran against a non-sequence or a
	// field step ran against a non-mapping.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrAssertionFailed indicates a checker returned false or raised.
	ErrAssertionFailed = errors.New("assertion failed")

	// ErrCircularReference indicates variable resolution found no
	// zero-dependency variable to resolve next.
	ErrCircularReference = errors.New("circular variable reference")
)

// PathSyntaxError represents a malformed path DSL expression (§4.1).
// Parsing never succeeds partially: a PathSyntaxError means the whole
// expression is unusable.
type PathSyntaxError struct {
	Raw     string
	Pos     int
	Message string
}

func (e *PathSyntaxError) Error() string {
	return fmt.Sprintf("path syntax error in %q at position %d: %s", e.Raw, e.Pos, e.Message)
}

func (e *PathSyntaxError) Is(target error) bool { return target == ErrPathSyntax }

// FieldNotPresentError represents descent into the Missing sentinel during a
// walk that did not opt into accepting it (§4.2, §7).
type FieldNotPresentError struct {
	PathTried string
}

func (e *FieldNotPresentError) Error() string {
	return "field not present: " + e.PathTried
}

func (e *FieldNotPresentError) Is(target error) bool { return target == ErrFieldNotPresent }

// TypeMismatchError represents a step applied to a node of the wrong shape:
// a Field step on a non-mapping, an Index/QueryBlock step on a non-sequence.
type TypeMismatchError struct {
	PathTried string
	Expected  string
	Got       any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch at %s: expected %s, got %T", e.PathTried, e.Expected, e.Got)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// AssertionFailedError represents a checker that returned false or raised
// while visiting a matched leaf (§4.2 case 1, §7).
type AssertionFailedError struct {
	PathTried string
	ItemPreview string
	Messages    []string
	Cause       error
}

func (e *AssertionFailedError) Error() string {
	msg := fmt.Sprintf("check did not pass for item: %s at path: %s", e.ItemPreview, pathOrDot(e.PathTried))
	for _, m := range e.Messages {
		msg += "\n" + m
	}
	return msg
}

func (e *AssertionFailedError) Unwrap() error { return e.Cause }

func (e *AssertionFailedError) Is(target error) bool { return target == ErrAssertionFailed }

func pathOrDot(p string) string {
	if p == "" {
		return "."
	}
	return p
}

// AggregatedAssertionError wraps the per-element failures of a tolerant
// (Any) query block where every admitted element failed (§4.2 case 5).
type AggregatedAssertionError struct {
	PathTried string
	Failures  []error
}

func (e *AggregatedAssertionError) Error() string {
	msg := fmt.Sprintf("check did not pass for any fields, path: %s, assertions:", pathOrDot(e.PathTried))
	for _, f := range e.Failures {
		msg += "\n  - " + f.Error()
	}
	return msg
}

func (e *AggregatedAssertionError) Is(target error) bool { return target == ErrAssertionFailed }

// CircularReferenceError represents a variable dependency graph with no
// zero-dependency variable remaining (§4.3.1, §7). The resolver catches this
// per-variable: the variable is dropped from scope and a warning emitted,
// resolution of independent variables continues.
type CircularReferenceError struct {
	Variable string
}

func (e *CircularReferenceError) Error() string {
	return "circular variable reference found for variable " + e.Variable
}

func (e *CircularReferenceError) Is(target error) bool { return target == ErrCircularReference }
