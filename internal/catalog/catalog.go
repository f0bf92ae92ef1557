// Package catalog is the host-side lookup layer the CLI and MCP server
// share: it resolves a rule-file/cookbook/translation-map "identifier"
// (§6: "a ruleset identifier with no '/' or '\\' denotes a built-in rule
// file; otherwise it is a filesystem path") against either the embedded
// internal/corpus catalog or the local filesystem, and decodes whichever
// JSON or YAML bytes it finds. None of this lives in the core packages
// themselves (document, fieldpath, rules, grading, translate) because
// loading from disk is explicitly outside their scope (spec.md
// Non-goals); it is exactly the kind of host/catalog concern
// grading/loader.go's RuleSetResolver and translate/loader.go's
// HookResolver were designed to be supplied from the outside.
package catalog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sbomgrader/sbomgrader/document"
	"github.com/sbomgrader/sbomgrader/grading"
	"github.com/sbomgrader/sbomgrader/internal/corpus"
	"github.com/sbomgrader/sbomgrader/rules"
	"github.com/sbomgrader/sbomgrader/sbomformat"
	"github.com/sbomgrader/sbomgrader/translate"
)

// isPath reports whether identifier names a filesystem path rather than a
// built-in catalog entry, per §6's "no '/' or '\\'" rule.
func isPath(identifier string) bool {
	return strings.ContainsAny(identifier, "/\\")
}

// DecodeFile reads path (or stdin, if path is "-") and decodes it as JSON
// or YAML, sniffed by extension and falling back to trying both. This is
// where the CLI and the MCP server read input documents from disk.
func DecodeFile(path string) (any, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = readAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return Decode(data, path)
}

// Decode decodes data as JSON or YAML. ext (typically a file path, used
// only for its suffix) picks the decoder when unambiguous; otherwise JSON
// is tried first since it is a stricter grammar, falling back to YAML
// (a superset) so an unrecognized or missing extension still decodes.
func Decode(data []byte, ext string) (any, error) {
	switch strings.ToLower(filepath.Ext(ext)) {
	case ".json":
		return document.DecodeJSON(bytes.NewReader(data))
	case ".yaml", ".yml":
		return document.DecodeYAML(bytes.NewReader(data))
	}
	if doc, err := document.DecodeJSON(bytes.NewReader(data)); err == nil {
		return doc, nil
	}
	return document.DecodeYAML(bytes.NewReader(data))
}

// DetectFormat sniffs doc's SBOM format from the top-level fields every
// SPDX or CycloneDX document carries: SPDX documents name their own
// version in spdxVersion ("SPDX-2.2"/"SPDX-2.3"); CycloneDX documents pair
// bomFormat ("CycloneDX") with a separate specVersion ("1.5"/"1.6"). This
// sniffing is a host/CLI concern, not part of the sbomformat enum itself,
// since a document's own self-declared version is just one possible way a
// caller might determine its format.
func DetectFormat(doc any) (sbomformat.Format, error) {
	if v, ok := document.Field(doc, "spdxVersion").(string); ok {
		if f, err := sbomformat.Parse(v); err == nil {
			return f, nil
		}
		return sbomformat.Unknown, fmt.Errorf("catalog: unrecognized spdxVersion %q", v)
	}
	if bomFormat, ok := document.Field(doc, "bomFormat").(string); ok && bomFormat == "CycloneDX" {
		v, _ := document.Field(doc, "specVersion").(string)
		if f, err := sbomformat.Parse("CycloneDX-" + v); err == nil {
			return f, nil
		}
		return sbomformat.Unknown, fmt.Errorf("catalog: unrecognized CycloneDX specVersion %q", v)
	}
	return sbomformat.Unknown, fmt.Errorf("catalog: could not detect SBOM format: document has neither spdxVersion nor bomFormat")
}

func readAll(f *os.File) ([]byte, error) {
	var buf bytes.Buffer
	_, err := buf.ReadFrom(f)
	return buf.Bytes(), err
}

// RuleSetResolver resolves a rule-file identifier to the RuleSet it
// defines for format, checking the embedded corpus for a bare name and the
// filesystem for anything containing a path separator.
func RuleSetResolver(format string) grading.RuleSetResolver {
	return func(identifier string) (*rules.RuleSet, error) {
		if !isPath(identifier) {
			return corpus.RuleSetResolver(format)(identifier)
		}
		doc, err := DecodeFile(identifier)
		if err != nil {
			return nil, fmt.Errorf("catalog: reading rule file %q: %w", identifier, err)
		}
		byFormat, err := rules.LoadRuleFile(doc, nil)
		if err != nil {
			return nil, fmt.Errorf("catalog: loading rule file %q: %w", identifier, err)
		}
		rs, ok := byFormat[format]
		if !ok {
			return nil, fmt.Errorf("catalog: rule file %q has no implementation for format %q", identifier, format)
		}
		return rs, nil
	}
}

// LoadCookbook resolves nameOrPath as a built-in cookbook name or a
// filesystem path to a cookbook-file document, and builds the Cookbook for
// format.
func LoadCookbook(nameOrPath, format string) (*grading.Cookbook, error) {
	if !isPath(nameOrPath) {
		return corpus.Cookbook(nameOrPath, format)
	}
	doc, err := DecodeFile(nameOrPath)
	if err != nil {
		return nil, fmt.Errorf("catalog: reading cookbook %q: %w", nameOrPath, err)
	}
	name := strings.TrimSuffix(filepath.Base(nameOrPath), filepath.Ext(nameOrPath))
	return grading.LoadCookbook(name, doc, RuleSetResolver(format))
}

// LoadTranslationMap resolves nameOrPath as a built-in translation-map
// name or a filesystem path, returning both directions keyed
// "<source>-><target>". No preprocess/postprocess hooks are registered
// here (the catalog has no named-hook registry of its own); a translation
// map file that references one fails to load with a descriptive error.
func LoadTranslationMap(nameOrPath string) (map[string]*translate.TranslationMap, error) {
	if !isPath(nameOrPath) {
		return corpus.TranslationMap(nameOrPath)
	}
	doc, err := DecodeFile(nameOrPath)
	if err != nil {
		return nil, fmt.Errorf("catalog: reading translation map %q: %w", nameOrPath, err)
	}
	name := strings.TrimSuffix(filepath.Base(nameOrPath), filepath.Ext(nameOrPath))
	return translate.LoadTranslationMap(name, doc, nil)
}
