package grading

import (
	"fmt"
	"log/slog"

	"github.com/sbomgrader/sbomgrader/fieldpath"
)

// CookbookBundle composes several Cookbooks into one grading pass,
// grounded on cookbook_bundles.py's CookbookBundle. Unlike the original
// (which auto-selects a decisive cookbook by inspecting the document's
// SPDX/CycloneDX shape — a domain predicate this module does not
// implement, see DESIGN.md), the caller supplies the Cookbooks and,
// optionally, names one of them as decisive directly.
type CookbookBundle struct {
	Cookbooks []*Cookbook
	// Decisive, if non-empty, names the one Cookbook whose Grade becomes
	// the bundle's Grade. Left empty, the bundle Grade is the worst
	// (closest to F) Grade among all Cookbooks.
	Decisive string
}

// CookbookBundleResult is the outcome of evaluating a CookbookBundle.
type CookbookBundleResult struct {
	Grade   Grade
	PerBook map[string]CookbookResult
}

// Evaluate runs every cookbook in the bundle against doc.
func (b *CookbookBundle) Evaluate(doc any, base *fieldpath.Path, logger *slog.Logger) (CookbookBundleResult, error) {
	perBook := make(map[string]CookbookResult, len(b.Cookbooks))
	for _, cb := range b.Cookbooks {
		perBook[cb.Name] = cb.Evaluate(doc, base, logger)
	}

	if b.Decisive != "" {
		decisive, ok := perBook[b.Decisive]
		if !ok {
			return CookbookBundleResult{}, fmt.Errorf("grading: decisive cookbook %q not in bundle", b.Decisive)
		}
		return CookbookBundleResult{Grade: decisive.Grade, PerBook: perBook}, nil
	}

	grade := A
	for _, res := range perBook {
		grade = Worst(grade, res.Grade)
	}
	if len(perBook) == 0 {
		grade = F
	}
	return CookbookBundleResult{Grade: grade, PerBook: perBook}, nil
}
