// Package corpus embeds the built-in rule files, cookbooks, translation
// maps, and sample SBOM documents this module ships with, the way
// oastools/generator embeds its code-generation templates (see
// generator/templates.go's `//go:embed templates/*/*.tmpl`). Everything
// here is a fixture: a host application is free to load its own rule and
// cookbook files instead (§6's loaders accept any decoded document), but
// tests and the CLI/MCP default catalog use these so the module is usable
// out of the box.
package corpus

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"strings"

	"github.com/sbomgrader/sbomgrader/document"
	"github.com/sbomgrader/sbomgrader/grading"
	"github.com/sbomgrader/sbomgrader/rules"
	"github.com/sbomgrader/sbomgrader/translate"
)

//go:embed fixtures/rules/*.yaml fixtures/cookbooks/*.yaml fixtures/maps/*.yaml fixtures/samples/*.json
var fixturesFS embed.FS

func readFixture(dir, name, ext string) (any, error) {
	data, err := fixturesFS.ReadFile(path.Join("fixtures", dir, name+ext))
	if err != nil {
		return nil, fmt.Errorf("corpus: no built-in %s named %q", dir, name)
	}
	switch ext {
	case ".json":
		return document.DecodeJSON(bytes.NewReader(data))
	default:
		return document.DecodeYAML(bytes.NewReader(data))
	}
}

// RuleFile decodes and loads the named built-in rule file (§6), returning
// one RuleSet per format implementation it defines.
func RuleFile(name string) (map[string]*rules.RuleSet, error) {
	doc, err := readFixture("rules", name, ".yaml")
	if err != nil {
		return nil, err
	}
	return rules.LoadRuleFile(doc, nil)
}

// RuleSetResolver returns a grading.RuleSetResolver that resolves a rule
// file identifier to the RuleSet it defines for one specific format (e.g.
// "SPDX-2.3"), the way a host catalog picks the right per-format RuleSet
// out of LoadRuleFile's result before handing it to grading.LoadCookbook.
func RuleSetResolver(format string) grading.RuleSetResolver {
	return func(identifier string) (*rules.RuleSet, error) {
		if strings.ContainsAny(identifier, "/\\") {
			return nil, fmt.Errorf("corpus: %q looks like a filesystem path; the built-in catalog only resolves names", identifier)
		}
		byFormat, err := RuleFile(identifier)
		if err != nil {
			return nil, err
		}
		rs, ok := byFormat[format]
		if !ok {
			return nil, fmt.Errorf("corpus: rule file %q has no implementation for format %q", identifier, format)
		}
		return rs, nil
	}
}

// Cookbook loads the named built-in cookbook (§6) and resolves its
// rulesets against the built-in rule-file catalog for the given format.
func Cookbook(name, format string) (*grading.Cookbook, error) {
	doc, err := readFixture("cookbooks", name, ".yaml")
	if err != nil {
		return nil, err
	}
	return grading.LoadCookbook(name, doc, RuleSetResolver(format))
}

// TranslationMap loads the named built-in translation-map file (§6),
// returning both directions keyed "<source>-><target>".
func TranslationMap(name string) (map[string]*translate.TranslationMap, error) {
	doc, err := readFixture("maps", name, ".yaml")
	if err != nil {
		return nil, err
	}
	return translate.LoadTranslationMap(name, doc, nil)
}

// Sample decodes the named built-in sample SBOM document.
func Sample(name string) (any, error) {
	return readFixture("samples", name, ".json")
}
