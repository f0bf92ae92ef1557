// Package sbomgrader provides tools for grading and translating Software
// Bill of Materials (SBOM) documents.
//
// sbomgrader offers five primary packages for describing, checking, and
// converting SBOM documents across the SPDX and CycloneDX families.
//
// # Overview
//
// The library consists of five primary packages:
//
//   - document: a generic, format-agnostic tree representation of a decoded
//     SBOM document, distinguishing an absent field from one set to null
//   - fieldpath: a small path DSL for addressing fields and array elements
//     inside a document, including filtered/aggregate array queries
//   - rules: individual checks (a field path plus a pass/fail function)
//     grouped into named, mergeable RuleSets
//   - grading: Cookbooks that partition rule names into MUST/SHOULD/MAY
//     tiers and derive a letter Grade (A-F) from evaluating them, plus
//     CookbookBundles that combine several Cookbooks into one verdict
//   - translate: TranslationMaps that move data between two SBOM formats
//     chunk by chunk, using text/template bodies for field reshaping
//
// All packages operate on documents decoded from SPDX 2.2, SPDX 2.3,
// CycloneDX 1.5, and CycloneDX 1.6, identified via the sbomformat package.
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/sbomgrader/sbomgrader
//
// # Quick Start
//
// The examples below use internal/catalog, which Go lets only code inside
// this module import. Code outside the module builds the same values with
// document.DecodeJSON, rules.LoadRuleFile, grading.LoadCookbook and
// translate.LoadTranslationMap.
//
// Decode a document and grade it against a cookbook:
//
//	import (
//		"github.com/sbomgrader/sbomgrader/document"
//		"github.com/sbomgrader/sbomgrader/internal/catalog"
//	)
//
//	doc, err := catalog.DecodeFile("bom.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	cookbook, err := catalog.LoadCookbook("default", "CycloneDX-1.6")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result := cookbook.Evaluate(doc, nil, nil)
//	fmt.Printf("Grade: %s\n", result.Grade)
//
// Translate a document from one format to another:
//
//	maps, err := catalog.LoadTranslationMap("spdx23-cdx16")
//	if err != nil {
//		log.Fatal(err)
//	}
//	tmap := maps["SPDX-2.3->CycloneDX-1.6"]
//	converted, err := tmap.Translate(doc)
//
// # Field Paths
//
// The fieldpath package compiles a small string DSL -- e.g.
// "packages[&].externalRefs[referenceType=purl].referenceLocator" -- into a
// Path that can be evaluated against a decoded document with the document
// package's Field/Index helpers. Query blocks support aggregate ("&", every
// element must match) and existential ("|", at least one element must
// match) semantics, plus single-index and equality/prefix/suffix/substring
// filters.
//
// # Rules and Grading
//
// A rules.Rule pairs a field path with a rules.CheckerFunc and a failure
// message. Rules are grouped into a rules.RuleSet, and a grading.Cookbook
// assigns rule names to MUST, SHOULD, and MAY tiers: any failed MUST rule
// grades the document F; each failed SHOULD rule lowers the grade by one
// letter from A; MAY rules are informational only. A grading.CookbookBundle
// combines multiple Cookbooks -- useful when a single SBOM must satisfy
// several independent policies -- reporting either the worst grade among
// them or a single named Cookbook's grade as decisive.
//
// # Translation
//
// A translate.TranslationMap is an ordered list of translate.Chunks, each
// moving one field or one filtered array slice from a source path to a
// target path through a text/template body. Chunks compose in both
// directions: a translation map loaded for "SPDX-2.3->CycloneDX-1.6" also
// yields its "CycloneDX-1.6->SPDX-2.3" counterpart from the same chunk
// definitions.
//
// # Command-Line Interface and MCP Server
//
// In addition to the library packages, sbomgrader provides a command-line
// interface and a Model Context Protocol server for the same grade/convert
// operations:
//
//	# Grade a document against the default cookbook
//	sbomgrader grade bom.json
//
//	# Convert between formats
//	sbomgrader convert -map spdx23-cdx16 -o bom.cdx.json bom.spdx.json
//
//	# Serve the same operations over MCP
//	sbomgrader mcp
//
// Install the CLI:
//
//	go install github.com/sbomgrader/sbomgrader/cmd/sbomgrader@latest
//
// # License
//
// This library is released under the MIT License. See the LICENSE file in
// the repository for full details.
package sbomgrader
