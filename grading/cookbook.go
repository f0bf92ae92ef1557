package grading

import (
	"log/slog"
	"sort"

	"github.com/sbomgrader/sbomgrader/fieldpath"
	"github.com/sbomgrader/sbomgrader/rules"
)

// Cookbook partitions a document's applicable rule names into three
// tiers — Must, Should, and May — and derives a Grade from how they came
// out, grounded on cookbooks.py's Cookbook class. Must failures are fatal
// (Grade F regardless of anything else); every unsuccessful Should rule
// knocks the grade down one letter; May rules are informational only and
// never affect the grade.
type Cookbook struct {
	Name   string
	Must   []string
	Should []string
	May    []string

	RuleSet *rules.RuleSet
}

// AllUsedRuleNames returns every rule name referenced by any tier, sorted
// and de-duplicated.
func (c *Cookbook) AllUsedRuleNames() []string {
	seen := map[string]bool{}
	for _, tier := range [][]string{c.Must, c.Should, c.May} {
		for _, name := range tier {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CookbookResult is the outcome of evaluating one Cookbook against a
// document.
type CookbookResult struct {
	CookbookName string
	Grade        Grade
	Rules        rules.Result
}

// isUnsuccessful reports whether o counts against a tier: per §4.5 and
// cookbooks.py's get_unsuccessful (unsuccessful = failed ∪ errors), only
// Failed and Errored disqualify a rule. Skipped and NotImplemented do not —
// a cookbook referencing a rule name the RuleSet doesn't implement must not
// collapse an otherwise-passing document's grade.
func isUnsuccessful(o rules.Outcome) bool {
	return o == rules.Failed || o == rules.Errored
}

// Evaluate runs every rule this cookbook references against doc and derives
// a Grade: F if any Must rule is Failed or Errored, otherwise A decremented
// once per Should rule that is Failed or Errored.
func (c *Cookbook) Evaluate(doc any, base *fieldpath.Path, logger *slog.Logger) CookbookResult {
	only := map[string]bool{}
	for _, name := range c.AllUsedRuleNames() {
		only[name] = true
	}
	result := c.RuleSet.Evaluate(doc, base, only, logger)

	grade := A
	for _, name := range c.Must {
		if isUnsuccessful(result.Classify(name)) {
			grade = F
			break
		}
	}
	if grade != F {
		for _, name := range c.Should {
			if isUnsuccessful(result.Classify(name)) {
				grade = grade.Lower()
			}
		}
	}

	return CookbookResult{CookbookName: c.Name, Grade: grade, Rules: result}
}
