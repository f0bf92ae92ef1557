package fieldpath

import (
	"errors"
	"testing"

	"github.com/sbomgrader/sbomgrader/sbomerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string, opts ...ParseOption) *Path {
	t.Helper()
	p, err := Parse(raw, opts...)
	require.NoError(t, err)
	return p
}

func TestParseSimpleFieldPath(t *testing.T) {
	p := mustParse(t, "foo.bar[1].baz")
	steps := p.Steps()
	require.Len(t, steps, 4)
	assert.Equal(t, FieldStep{Name: "foo"}, steps[0])
	assert.Equal(t, FieldStep{Name: "bar"}, steps[1])
	qb, ok := steps[2].(QueryBlockStep)
	require.True(t, ok)
	require.Len(t, qb.Queries, 1)
	assert.Equal(t, QueryIndex, qb.Queries[0].Type)
	assert.Equal(t, 1, qb.Queries[0].Index)
	assert.Equal(t, FieldStep{Name: "baz"}, steps[3])
}

func TestParseOptionalField(t *testing.T) {
	p := mustParse(t, "?annotations.comment")
	steps := p.Steps()
	require.Len(t, steps, 2)
	assert.Equal(t, FieldStep{Name: "annotations", Optional: true}, steps[0])
}

func TestParseRelativeAnchorRequiresBase(t *testing.T) {
	_, err := Parse("@.name")
	require.Error(t, err)
	var syn *sbomerrors.PathSyntaxError
	require.ErrorAs(t, err, &syn)
}

func TestParseRelativeAnchorWithBase(t *testing.T) {
	base := mustParse(t, "a.b")
	p := mustParse(t, "@.x[k=${v}].y", WithBase(base))
	steps := p.Steps()
	require.Len(t, steps, 5)
	assert.Equal(t, FieldStep{Name: "a"}, steps[0])
	assert.Equal(t, FieldStep{Name: "b"}, steps[1])
	assert.Equal(t, FieldStep{Name: "x"}, steps[2])
	assert.Equal(t, FieldStep{Name: "y"}, steps[4])
}

func TestParseComparisonOperators(t *testing.T) {
	cases := map[string]QueryType{
		"[status=active]":      QueryEq,
		"[status!=active]":     QueryNeq,
		"[name%=lib]":          QueryStartsWith,
		"[name=%.so]":          QueryEndsWith,
		"[name~=ssl]":          QueryContains,
		"[name!~=ssl]":         QueryNotContains,
		"[&]":                  QueryEach,
		"[|]":                  QueryAny,
	}
	for raw, want := range cases {
		p := mustParse(t, raw)
		qb := p.Steps()[0].(QueryBlockStep)
		require.Len(t, qb.Queries, 1, raw)
		assert.Equal(t, want, qb.Queries[0].Type, raw)
	}
}

func TestParseVariableReferenceValue(t *testing.T) {
	p := mustParse(t, "[kind=${allowedKinds}]")
	qb := p.Steps()[0].(QueryBlockStep)
	assert.True(t, qb.Queries[0].Value.IsVariable)
	assert.Equal(t, "allowedKinds", qb.Queries[0].Value.VarName)
}

func TestParseNestedFieldPathInQuery(t *testing.T) {
	p := mustParse(t, "packages[externalRefs[&].referenceType=PURPOSE].name")
	qb := p.Steps()[1].(QueryBlockStep)
	require.Len(t, qb.Queries, 1)
	require.NotNil(t, qb.Queries[0].FieldPath)
	assert.Len(t, qb.Queries[0].FieldPath.Steps(), 3)
}

func TestParseUnmatchedBracket(t *testing.T) {
	_, err := Parse("foo[bar")
	require.Error(t, err)
}

func TestGetObjectsSimpleField(t *testing.T) {
	doc := map[string]any{"spdxVersion": "SPDX-2.3"}
	p := mustParse(t, "spdxVersion")
	vals, err := GetObjects(doc, p, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{"SPDX-2.3"}, vals)
}

func TestGetObjectsMissingFieldError(t *testing.T) {
	doc := map[string]any{}
	p := mustParse(t, "name")
	_, err := GetObjects(doc, p, nil)
	require.Error(t, err)
	var fnp *sbomerrors.FieldNotPresentError
	require.ErrorAs(t, err, &fnp)
}

func TestGetObjectsFieldOnNonMappingIsTypeMismatch(t *testing.T) {
	doc := map[string]any{"name": "curl"}
	p := mustParse(t, "name.inner")
	_, err := GetObjects(doc, p, nil)
	require.Error(t, err)
	var tme *sbomerrors.TypeMismatchError
	require.ErrorAs(t, err, &tme)
	var fnp *sbomerrors.FieldNotPresentError
	require.False(t, errors.As(err, &fnp))
}

func TestGetObjectsOptionalMissingFieldYieldsNoMatches(t *testing.T) {
	doc := map[string]any{}
	p := mustParse(t, "?name")
	vals, err := GetObjects(doc, p, nil)
	require.NoError(t, err)
	assert.Empty(t, vals)
}

func TestGetObjectsQueryFiltersSequence(t *testing.T) {
	doc := map[string]any{
		"packages": []any{
			map[string]any{"name": "curl", "versionInfo": "8.4.0"},
			map[string]any{"name": "openssl", "versionInfo": "3.1.4"},
		},
	}
	p := mustParse(t, "packages[name=openssl].versionInfo")
	vals, err := GetObjects(doc, p, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{"3.1.4"}, vals)
}

func TestGetPathsReportsIndices(t *testing.T) {
	doc := map[string]any{"packages": []any{
		map[string]any{"name": "a"},
		map[string]any{"name": "b"},
	}}
	p := mustParse(t, "packages[&].name")
	paths, err := GetPaths(doc, p, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"packages[0].name", "packages[1].name"}, paths)
}

func TestRunFuncStrictEachStopsOnFirstFailure(t *testing.T) {
	doc := map[string]any{"packages": []any{
		map[string]any{"name": "a"},
		map[string]any{"name": ""},
	}}
	p := mustParse(t, "packages[&].name")
	var visited int
	err := RunFunc(doc, p, nil, 1, false, func(v any, _ string) error {
		visited++
		if v == "" {
			return errors.New("must not be empty")
		}
		return nil
	})
	require.Error(t, err)
}

func TestRunFuncTolerantAnySurvivesPartialFailure(t *testing.T) {
	doc := map[string]any{"packages": []any{
		map[string]any{"name": "a"},
		map[string]any{"name": ""},
	}}
	p := mustParse(t, "packages[|].name")
	err := RunFunc(doc, p, nil, 1, false, func(v any, _ string) error {
		if v == "" {
			return errors.New("must not be empty")
		}
		return nil
	})
	assert.NoError(t, err)
}

func TestRunFuncMinMatchesEnforced(t *testing.T) {
	doc := map[string]any{"packages": []any{}}
	p := mustParse(t, "packages[&].name")
	err := RunFunc(doc, p, nil, 1, false, func(any, string) error { return nil })
	require.Error(t, err)
}

func TestInsertAtPathCreatesMissingContainers(t *testing.T) {
	doc := map[string]any{}
	p := mustParse(t, "metadata.license")
	out, err := InsertAtPath(doc, p, nil, "MIT", true)
	require.NoError(t, err)
	m := out.(map[string]any)
	meta := m["metadata"].(map[string]any)
	assert.Equal(t, "MIT", meta["license"])
}

func TestInsertAtPathEmptyPathMergesRoot(t *testing.T) {
	doc := map[string]any{"a": 1}
	p := mustParse(t, "")
	out, err := InsertAtPath(doc, p, nil, map[string]any{"b": 2}, true)
	require.NoError(t, err)
	m := out.(map[string]any)
	assert.Equal(t, 1, m["a"])
	assert.Equal(t, 2, m["b"])
}

func TestInsertAtPathAppendsNewSequenceElement(t *testing.T) {
	doc := map[string]any{"packages": []any{}}
	p := mustParse(t, "packages[name=curl].versionInfo")
	out, err := InsertAtPath(doc, p, nil, "8.4.0", true)
	require.NoError(t, err)
	m := out.(map[string]any)
	packages := m["packages"].([]any)
	require.Len(t, packages, 1)
	elem := packages[0].(map[string]any)
	assert.Equal(t, "8.4.0", elem["versionInfo"])
}

func TestResolveVariablesTopologicalOrder(t *testing.T) {
	doc := map[string]any{"kind": "library", "allowed": []any{"library", "application"}}
	defs := []VariableDef{
		{Name: "kind", Path: "kind"},
		{Name: "allowed", Path: "allowed"},
	}
	scope, warnings := ResolveVariables(defs, doc, nil)
	assert.Empty(t, warnings)
	assert.Equal(t, "library", scope["kind"])
}

func TestResolveVariablesSelfReferenceIsDropped(t *testing.T) {
	doc := map[string]any{"items": []any{"x"}}
	defs := []VariableDef{
		{Name: "items", Path: "items[name=${items}]"},
	}
	scope, warnings := ResolveVariables(defs, doc, nil)
	require.Len(t, warnings, 1)
	_, present := scope["items"]
	assert.False(t, present)
}

func TestResolveVariablesRelativeWithoutBaseIsDropped(t *testing.T) {
	doc := map[string]any{}
	defs := []VariableDef{{Name: "v", Path: "@.name"}}
	scope, warnings := ResolveVariables(defs, doc, nil)
	require.Len(t, warnings, 1)
	_, present := scope["v"]
	assert.False(t, present)
}

func TestSetMembershipComparisonAgainstVariable(t *testing.T) {
	doc := map[string]any{
		"packages": []any{
			map[string]any{"kind": "library"},
			map[string]any{"kind": "unknown"},
		},
	}
	scope := Scope{"allowedKinds": []any{"library", "application"}}
	p := mustParse(t, "packages[kind=${allowedKinds}].kind")
	vals, err := GetObjects(doc, p, scope)
	require.NoError(t, err)
	assert.Equal(t, []any{"library"}, vals)
}
