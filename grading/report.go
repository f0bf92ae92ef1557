package grading

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sbomgrader/sbomgrader/rules"
)

var titleCaser = cases.Title(language.English)

// RenderMarkdown renders a CookbookResult the way cookbooks.py's output()
// method does: a heading with the grade, then the Must/Should/May tiers in
// that order, each rule annotated with its outcome and, for a failure, the
// detail message.
func RenderMarkdown(res CookbookResult, cb *Cookbook) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s: Grade %s\n\n", titleCaser.String(cb.Name), res.Grade)

	renderTier(&b, "Must", cb.Must, res.Rules)
	renderTier(&b, "Should", cb.Should, res.Rules)
	renderTier(&b, "May", cb.May, res.Rules)

	return b.String()
}

func renderTier(b *strings.Builder, title string, names []string, result rules.Result) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", titleCaser.String(title))
	for _, name := range names {
		outcome := result.Classify(name)
		fmt.Fprintf(b, "- **%s**: %s\n", name, outcome)
		if detail, ok := result.Failed[name]; ok {
			fmt.Fprintf(b, "  - %s\n", detail.Message)
		}
		if detail, ok := result.Errors[name]; ok {
			fmt.Fprintf(b, "  - %s\n", detail.Message)
		}
	}
	b.WriteString("\n")
}

// RenderBundleMarkdown renders a CookbookBundleResult: the bundle's overall
// grade followed by each constituent cookbook's full report.
func RenderBundleMarkdown(res CookbookBundleResult, cookbooks []*Cookbook) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Bundle Grade: %s\n\n", res.Grade)
	for _, cb := range cookbooks {
		cbRes, ok := res.PerBook[cb.Name]
		if !ok {
			continue
		}
		b.WriteString(RenderMarkdown(cbRes, cb))
		b.WriteString("\n")
	}
	return b.String()
}
