package rules

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/sbomgrader/sbomgrader/fieldpath"
)

// CollisionStrategy controls what RuleSet.Merge does when both sides
// define a rule with the same name.
type CollisionStrategy int

const (
	// CollisionLastWriteWins keeps the other RuleSet's rule, matching
	// rules.py's RuleSet.__add__, which simply lets the right-hand dict
	// overwrite the left-hand one.
	CollisionLastWriteWins CollisionStrategy = iota
	// CollisionFailOnConflict returns an error naming every colliding
	// rule instead of silently picking one.
	CollisionFailOnConflict
)

// RuleSet is a named collection of Rules, addressed by name for grading
// tiers to reference without owning.
type RuleSet struct {
	Name  string
	Rules map[string]*Rule
}

// NewRuleSet returns an empty, named RuleSet.
func NewRuleSet(name string) *RuleSet {
	return &RuleSet{Name: name, Rules: map[string]*Rule{}}
}

// Add inserts r, overwriting any existing rule of the same name.
func (rs *RuleSet) Add(r *Rule) {
	rs.Rules[r.Name] = r
}

// Merge combines rs with other under strategy, returning a new RuleSet and
// leaving both inputs untouched. This generalizes rules.py's RuleSet.__add__
// ("+"), which always takes the right-hand side on a name collision; the
// CollisionFailOnConflict strategy is new, for callers composing rule sets
// from independently authored sources where a silent overwrite would hide a
// real naming conflict.
func (rs *RuleSet) Merge(other *RuleSet, strategy CollisionStrategy) (*RuleSet, error) {
	merged := NewRuleSet(rs.Name)
	for name, r := range rs.Rules {
		merged.Rules[name] = r
	}
	var conflicts []string
	for name, r := range other.Rules {
		if _, exists := merged.Rules[name]; exists && strategy == CollisionFailOnConflict {
			conflicts = append(conflicts, name)
			continue
		}
		merged.Rules[name] = r
	}
	if len(conflicts) > 0 {
		sort.Strings(conflicts)
		return nil, fmt.Errorf("rules: merge conflict on rule names: %v", conflicts)
	}
	return merged, nil
}

// Names returns every rule name in rs, sorted.
func (rs *RuleSet) Names() []string {
	names := make([]string, 0, len(rs.Rules))
	for name := range rs.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Evaluate runs every rule in only (or, if only is nil, every rule in rs)
// against doc and aggregates the outcomes into a Result. A name in only
// with no matching Rule in rs is recorded as NotImplemented, matching the
// Cookbook/RuleSet split: a cookbook may reference rules a particular rule
// set hasn't (yet) implemented.
func (rs *RuleSet) Evaluate(doc any, base *fieldpath.Path, only map[string]bool, logger *slog.Logger) Result {
	result := NewResult()
	names := rs.Names()
	if only != nil {
		names = make([]string, 0, len(only))
		for name := range only {
			names = append(names, name)
		}
		sort.Strings(names)
	}
	for _, name := range names {
		r, ok := rs.Rules[name]
		if !ok {
			result.Add(ResultDetail{RuleName: name, Outcome: NotImplemented})
			continue
		}
		result.Add(r.Evaluate(doc, base, logger))
	}
	return result
}
