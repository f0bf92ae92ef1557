package grading

import (
	"testing"

	"github.com/sbomgrader/sbomgrader/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCookbookDoc() map[string]any {
	return map[string]any{
		"rulesets": []any{"base"},
		"MUST":     []any{"has-name"},
		"SHOULD":   []any{"has-desc"},
		"MAY":      []any{"has-comment"},
	}
}

func TestLoadCookbookResolvesRulesets(t *testing.T) {
	rs := rules.NewRuleSet("base")
	rs.Add(mustRule(t, "has-name", "name", rules.Eq("curl")))
	rs.Add(mustRule(t, "has-desc", "description", rules.Eq("x")))

	resolver := func(id string) (*rules.RuleSet, error) {
		require.Equal(t, "base", id)
		return rs, nil
	}

	cb, err := LoadCookbook("base-cookbook", sampleCookbookDoc(), resolver)
	require.NoError(t, err)
	assert.Equal(t, []string{"has-name"}, cb.Must)
	assert.Equal(t, []string{"has-desc"}, cb.Should)
	assert.Equal(t, []string{"has-comment"}, cb.May)

	res := cb.Evaluate(map[string]any{"name": "curl", "description": "x"}, nil, nil)
	assert.Equal(t, A, res.Grade)
}

func TestLoadCookbookMissingResolverErrors(t *testing.T) {
	_, err := LoadCookbook("base-cookbook", sampleCookbookDoc(), nil)
	assert.Error(t, err)
}

func TestLoadCookbookResolverErrorPropagates(t *testing.T) {
	resolver := func(id string) (*rules.RuleSet, error) {
		return nil, assertErrLoader("ruleset not found")
	}
	_, err := LoadCookbook("base-cookbook", sampleCookbookDoc(), resolver)
	assert.Error(t, err)
}

type assertErrLoader string

func (e assertErrLoader) Error() string { return string(e) }
