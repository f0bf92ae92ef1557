// Package document defines the generic tree model that the field-path
// evaluator, rule engine, and translation engine all operate on.
//
// A Document is untyped: a tree of mappings (map[string]any, keys unique,
// order irrelevant), ordered sequences ([]any), and scalars (string, bool,
// nil, and numbers: int64 or float64 from DecodeJSON, int or float64 from
// DecodeYAML). The
// package adds one thing on top of that: the Missing sentinel, a value
// distinct from nil that marks "no such field" and propagates through
// further field access.
package document
