// Package translate implements the document translation engine: a
// TranslationMap is an ordered list of Chunks, each describing how to
// render one region of a target-format document from a matched region of
// a source-format document.
package translate

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/sbomgrader/sbomgrader/document"
	"github.com/sbomgrader/sbomgrader/fieldpath"
)

// Chunk describes one source-to-target region mapping: SourcePath selects
// zero or more locations in the source document; for each match, Template
// renders a text fragment (with the matched value and any resolved
// Variables available to it), which is parsed back into a document subtree
// and inserted at TargetPath in the output document.
type Chunk struct {
	Name       string
	SourcePath string
	TargetPath string
	Template   string
	Variables  []fieldpath.VariableDef

	srcPath *fieldpath.Path
	dstPath *fieldpath.Path
	tmpl    *template.Template
}

// compile parses the chunk's path expressions and template once, so
// TranslationMap.Translate can run the chunk any number of times without
// re-parsing.
func (c *Chunk) compile() error {
	var err error
	c.srcPath, err = fieldpath.Parse(c.SourcePath)
	if err != nil {
		return fmt.Errorf("translate: chunk %q source path: %w", c.Name, err)
	}
	c.dstPath, err = fieldpath.Parse(c.TargetPath)
	if err != nil {
		return fmt.Errorf("translate: chunk %q target path: %w", c.Name, err)
	}
	c.tmpl, err = template.New(c.Name).Funcs(funcMap).Parse(c.Template)
	if err != nil {
		return fmt.Errorf("translate: chunk %q template: %w", c.Name, err)
	}
	return nil
}

// templateData is what a Chunk's Template is rendered with.
type templateData struct {
	Value any
	Vars  map[string]any
}

// apply renders and inserts every match of this chunk's source path into
// dst, returning the (possibly new) dst root.
func (c *Chunk) apply(src, dst any, logger warner) (any, error) {
	matchPaths, err := fieldpath.GetPaths(src, c.srcPath, nil)
	if err != nil {
		if c.srcPath.Empty() {
			matchPaths = []string{""}
		} else {
			return dst, nil
		}
	}

	for _, matchPath := range matchPaths {
		base, err := fieldpath.Parse(matchPath)
		if err != nil {
			return nil, fmt.Errorf("translate: chunk %q: re-parsing matched path %q: %w", c.Name, matchPath, err)
		}

		scope, warnings := fieldpath.ResolveVariables(c.Variables, src, base)
		for _, w := range warnings {
			logger.warn(c.Name, w)
		}

		values, err := fieldpath.GetObjects(src, base, scope)
		if err != nil {
			return nil, fmt.Errorf("translate: chunk %q: re-fetching matched value at %q: %w", c.Name, matchPath, err)
		}
		var value any
		if len(values) > 0 {
			value = values[0]
		}

		var rendered strings.Builder
		if err := c.tmpl.Execute(&rendered, templateData{Value: value, Vars: scope}); err != nil {
			return nil, fmt.Errorf("translate: chunk %q: rendering template at %q: %w", c.Name, matchPath, err)
		}

		parsed, err := document.DecodeYAML(strings.NewReader(rendered.String()))
		if err != nil {
			return nil, fmt.Errorf("translate: chunk %q: parsing rendered fragment at %q: %w", c.Name, matchPath, err)
		}

		// '@' in a target path denotes positional correspondence with the
		// source match, not its full field path (source and target field
		// names necessarily differ across formats): only the index steps
		// of the matched source location are substituted in.
		positional := fieldpath.IndexStepsOf(base)
		targetPath, err := fieldpath.Parse(c.TargetPath, fieldpath.WithBase(positional))
		if err != nil {
			return nil, fmt.Errorf("translate: chunk %q: target path with base %q: %w", c.Name, matchPath, err)
		}

		dst, err = fieldpath.InsertAtPath(dst, targetPath, scope, parsed, true)
		if err != nil {
			return nil, fmt.Errorf("translate: chunk %q: inserting at %q: %w", c.Name, c.TargetPath, err)
		}
	}

	return dst, nil
}

type warner interface {
	warn(chunk string, w fieldpath.Warning)
}
