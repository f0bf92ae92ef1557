package grading

import (
	"testing"

	"github.com/sbomgrader/sbomgrader/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRule(t *testing.T, name, path string, checker rules.CheckerFunc) *rules.Rule {
	t.Helper()
	r, err := rules.NewRule(name, path, checker, name+" failed", 1)
	require.NoError(t, err)
	return r
}

func TestGradeLowerClampsAtF(t *testing.T) {
	assert.Equal(t, B, A.Lower())
	assert.Equal(t, F, F.Lower())
}

func TestWorst(t *testing.T) {
	assert.Equal(t, C, Worst(A, C))
	assert.Equal(t, F, Worst(F, A))
}

func TestCookbookMustFailureIsF(t *testing.T) {
	rs := rules.NewRuleSet("rs")
	rs.Add(mustRule(t, "has-name", "name", rules.Eq("curl")))

	cb := &Cookbook{Name: "base", Must: []string{"has-name"}, RuleSet: rs}
	res := cb.Evaluate(map[string]any{"name": "openssl"}, nil, nil)
	assert.Equal(t, F, res.Grade)
}

func TestCookbookShouldFailureDecrementsOneLetter(t *testing.T) {
	rs := rules.NewRuleSet("rs")
	rs.Add(mustRule(t, "has-name", "name", rules.Eq("curl")))
	rs.Add(mustRule(t, "has-desc", "description", rules.Eq("x")))

	cb := &Cookbook{Name: "base", Must: []string{"has-name"}, Should: []string{"has-desc"}, RuleSet: rs}
	res := cb.Evaluate(map[string]any{"name": "curl", "description": "y"}, nil, nil)
	assert.Equal(t, B, res.Grade)
}

func TestCookbookMayNeverAffectsGrade(t *testing.T) {
	rs := rules.NewRuleSet("rs")
	rs.Add(mustRule(t, "has-name", "name", rules.Eq("curl")))

	cb := &Cookbook{Name: "base", Must: []string{"has-name"}, May: []string{"missing-optional-rule"}, RuleSet: rs}
	res := cb.Evaluate(map[string]any{"name": "curl"}, nil, nil)
	assert.Equal(t, A, res.Grade)
}

func TestCookbookBundleDecisive(t *testing.T) {
	rsGood := rules.NewRuleSet("good")
	rsGood.Add(mustRule(t, "ok", "name", rules.Eq("curl")))
	goodBook := &Cookbook{Name: "good", Must: []string{"ok"}, RuleSet: rsGood}

	rsBad := rules.NewRuleSet("bad")
	rsBad.Add(mustRule(t, "ok", "name", rules.Eq("nope")))
	badBook := &Cookbook{Name: "bad", Must: []string{"ok"}, RuleSet: rsBad}

	doc := map[string]any{"name": "curl"}
	bundle := &CookbookBundle{Cookbooks: []*Cookbook{goodBook, badBook}, Decisive: "good"}
	res, err := bundle.Evaluate(doc, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, A, res.Grade)
}

func TestCookbookBundleWorstWithNoDecisive(t *testing.T) {
	rsGood := rules.NewRuleSet("good")
	rsGood.Add(mustRule(t, "ok", "name", rules.Eq("curl")))
	goodBook := &Cookbook{Name: "good", Must: []string{"ok"}, RuleSet: rsGood}

	rsBad := rules.NewRuleSet("bad")
	rsBad.Add(mustRule(t, "ok", "name", rules.Eq("nope")))
	badBook := &Cookbook{Name: "bad", Must: []string{"ok"}, RuleSet: rsBad}

	doc := map[string]any{"name": "curl"}
	bundle := &CookbookBundle{Cookbooks: []*Cookbook{goodBook, badBook}}
	res, err := bundle.Evaluate(doc, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, F, res.Grade)
}

func TestRenderMarkdownIncludesFailureMessage(t *testing.T) {
	rs := rules.NewRuleSet("rs")
	rs.Add(mustRule(t, "has-name", "name", rules.Eq("curl")))

	cb := &Cookbook{Name: "base cookbook", Must: []string{"has-name"}, RuleSet: rs}
	res := cb.Evaluate(map[string]any{"name": "openssl"}, nil, nil)
	md := RenderMarkdown(res, cb)
	assert.Contains(t, md, "Grade F")
	assert.Contains(t, md, "has-name")
}

func TestParseGrade(t *testing.T) {
	g, err := ParseGrade("b")
	require.NoError(t, err)
	assert.Equal(t, B, g)

	_, err = ParseGrade("Z")
	assert.Error(t, err)
}
