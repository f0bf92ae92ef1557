package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() map[string]any {
	return map[string]any{
		"packages": []any{
			map[string]any{"name": "curl", "versionInfo": "8.4.0", "licenseConcluded": "MIT"},
			map[string]any{"name": "openssl", "versionInfo": "3.1.4", "licenseConcluded": "Apache-2.0"},
		},
	}
}

func TestRuleSuccess(t *testing.T) {
	r, err := NewRule("has-name", "packages[&].name", func(v any) error {
		if v == "" {
			return assertErr("name must not be empty")
		}
		return nil
	}, "package name must not be empty", 1)
	require.NoError(t, err)

	detail := r.Evaluate(sampleDoc(), nil, nil)
	assert.Equal(t, Success, detail.Outcome)
}

func TestRuleFailed(t *testing.T) {
	r, err := NewRule("license-known", "packages[&].licenseConcluded", NotIn([]any{"Apache-2.0"}), "license must not be Apache-2.0", 1)
	require.NoError(t, err)

	detail := r.Evaluate(sampleDoc(), nil, nil)
	assert.Equal(t, Failed, detail.Outcome)
}

// Grounded on spec §8 scenario 3: an Any-qualified path tolerates a failing
// checker on some elements as long as at least one admitted element passes.
func TestRuleAnyToleratesPartialCheckerFailure(t *testing.T) {
	doc := map[string]any{"xs": []any{1, 2, 3}}
	greaterThanOne := func(v any) error {
		n, _ := v.(int)
		if n > 1 {
			return nil
		}
		return assertErr("value must be greater than 1")
	}

	each, err := NewRule("each-gt-one", "xs[&]", greaterThanOne, "every value must be > 1", 1)
	require.NoError(t, err)
	assert.Equal(t, Failed, each.Evaluate(doc, nil, nil).Outcome)

	any, err := NewRule("any-gt-one", "xs[|]", greaterThanOne, "some value must be > 1", 1)
	require.NoError(t, err)
	assert.Equal(t, Success, any.Evaluate(doc, nil, nil).Outcome)
}

// Grounded on spec §8 boundary behaviors: a QueryBlock on an empty sequence
// admits nothing; Each succeeds trivially, Any fails (nothing succeeded).
func TestRuleAnyOnEmptySequenceFails(t *testing.T) {
	doc := map[string]any{"xs": []any{}}
	pass := func(any) error { return nil }

	each, err := NewRule("each-empty", "xs[&]", pass, "n/a", 0)
	require.NoError(t, err)
	assert.Equal(t, Success, each.Evaluate(doc, nil, nil).Outcome)

	anyRule, err := NewRule("any-empty", "xs[|]", pass, "n/a", 0)
	require.NoError(t, err)
	assert.Equal(t, Failed, anyRule.Evaluate(doc, nil, nil).Outcome)
}

func TestRuleFieldNotPresentIsFailed(t *testing.T) {
	r, err := NewRule("has-download-location", "downloadLocation", Eq("NOASSERTION"), "downloadLocation required", 1)
	require.NoError(t, err)

	detail := r.Evaluate(map[string]any{}, nil, nil)
	assert.Equal(t, Failed, detail.Outcome)
}

func TestRuleSetMergeLastWriteWins(t *testing.T) {
	a := NewRuleSet("a")
	ra, _ := NewRule("shared", "name", Eq("x"), "", 1)
	a.Add(ra)

	b := NewRuleSet("b")
	rb, _ := NewRule("shared", "name", Eq("y"), "", 1)
	b.Add(rb)

	merged, err := a.Merge(b, CollisionLastWriteWins)
	require.NoError(t, err)
	assert.Same(t, rb, merged.Rules["shared"])
}

func TestRuleSetMergeFailOnConflict(t *testing.T) {
	a := NewRuleSet("a")
	ra, _ := NewRule("shared", "name", Eq("x"), "", 1)
	a.Add(ra)

	b := NewRuleSet("b")
	rb, _ := NewRule("shared", "name", Eq("y"), "", 1)
	b.Add(rb)

	_, err := a.Merge(b, CollisionFailOnConflict)
	require.Error(t, err)
}

func TestRuleSetEvaluateMarksUnimplementedRules(t *testing.T) {
	rs := NewRuleSet("cookbook")
	r, _ := NewRule("present-rule", "name", Eq("curl"), "", 1)
	rs.Add(r)

	result := rs.Evaluate(map[string]any{"name": "curl"}, nil, map[string]bool{
		"present-rule": true,
		"missing-rule": true,
	}, nil)

	assert.True(t, result.Ran["present-rule"])
	assert.True(t, result.NotImplemented["missing-rule"])
}

func TestChecker_LengthAndStringPredicates(t *testing.T) {
	assert.NoError(t, LengthEq(3)("abc"))
	assert.Error(t, LengthGt(5)("abc"))
	assert.NoError(t, StrStartsWith("lib")("libcurl"))
	assert.NoError(t, StrEndsWith(".so")("libcurl.so"))
	assert.NoError(t, StrContains("curl")("libcurl.so"))
}

func TestChecker_FuncName(t *testing.T) {
	checker, err := FuncName("value startsWith \"SPDXRef-\"")
	require.NoError(t, err)
	assert.NoError(t, checker("SPDXRef-Package-curl"))
	assert.Error(t, checker("curl"))
}

type simpleErr string

func (e simpleErr) Error() string { return string(e) }

func assertErr(msg string) error { return simpleErr(msg) }
