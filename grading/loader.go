package grading

import (
	"fmt"

	"github.com/sbomgrader/sbomgrader/rules"
)

// RuleSetResolver looks up a named ruleset for LoadCookbook to merge into
// the Cookbook it builds. A ruleset identifier containing neither '/' nor
// '\\' names a built-in ruleset (resolved however the host catalogs those);
// anything else is a filesystem path, which this package does not read
// itself (file I/O is a host concern — see DESIGN.md's Non-goals note).
type RuleSetResolver func(identifier string) (*rules.RuleSet, error)

// LoadCookbook parses a decoded Cookbook-file document (§6) into a
// Cookbook, resolving its `rulesets` list via resolve and merging them with
// CollisionLastWriteWins, the same precedence cookbooks.py's Cookbook.initialize
// gives its own accumulating "+=" over RuleSet.from_file results. name is
// the cookbook's identifier; the original derives this from the rule file's
// own filename, which this package has no access to since it never reads a
// file itself.
func LoadCookbook(name string, doc any, resolve RuleSetResolver) (*Cookbook, error) {
	top, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("grading: cookbook file root must be a mapping")
	}

	rulesetIDs, err := stringList(top["rulesets"])
	if err != nil {
		return nil, fmt.Errorf("grading: cookbook %q: rulesets: %w", name, err)
	}

	merged := rules.NewRuleSet(name)
	for _, id := range rulesetIDs {
		if resolve == nil {
			return nil, fmt.Errorf("grading: cookbook %q: references ruleset %q but no resolver was supplied", name, id)
		}
		rs, err := resolve(id)
		if err != nil {
			return nil, fmt.Errorf("grading: cookbook %q: resolving ruleset %q: %w", name, id, err)
		}
		merged, err = merged.Merge(rs, rules.CollisionLastWriteWins)
		if err != nil {
			return nil, fmt.Errorf("grading: cookbook %q: merging ruleset %q: %w", name, id, err)
		}
	}

	must, err := stringList(top["MUST"])
	if err != nil {
		return nil, fmt.Errorf("grading: cookbook %q: MUST: %w", name, err)
	}
	should, err := stringList(top["SHOULD"])
	if err != nil {
		return nil, fmt.Errorf("grading: cookbook %q: SHOULD: %w", name, err)
	}
	may, err := stringList(top["MAY"])
	if err != nil {
		return nil, fmt.Errorf("grading: cookbook %q: MAY: %w", name, err)
	}

	return &Cookbook{
		Name:    name,
		Must:    must,
		Should:  should,
		May:     may,
		RuleSet: merged,
	}, nil
}

func stringList(raw any) ([]string, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", raw)
	}
	out := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("item %d is not a string", i)
		}
		out = append(out, s)
	}
	return out, nil
}
