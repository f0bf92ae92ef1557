package translate

import (
	"fmt"
	"log/slog"

	"github.com/sbomgrader/sbomgrader/fieldpath"
	"github.com/sbomgrader/sbomgrader/sbomformat"
)

// Hook is a host-provided function that runs before or after a
// TranslationMap's chunks, identified by name rather than wired directly,
// so a caller can register format-specific fixups (e.g. computing a
// CycloneDX serialNumber, or stripping SPDX-only fields) without this
// package needing to know about any particular format pair.
type Hook func(doc any) (any, error)

// TranslationMap is an ordered list of Chunks translating a document from
// SourceFormat to TargetFormat, grounded on choose_map.py's TranslationMap
// (minus its format-selection graph, which is a host/catalog concern — see
// DESIGN.md).
type TranslationMap struct {
	Name          string
	SourceFormat  sbomformat.Format
	TargetFormat  sbomformat.Format
	Chunks        []Chunk
	Preprocess    []Hook
	Postprocess   []Hook

	logger *slog.Logger
}

// Compile parses every chunk's path expressions and template once. Call it
// before Translate; Translate calls it automatically on first use if it
// hasn't been called yet.
func (m *TranslationMap) Compile() error {
	for i := range m.Chunks {
		if err := m.Chunks[i].compile(); err != nil {
			return err
		}
	}
	return nil
}

// WithLogger sets the logger used for variable-resolution warnings raised
// while translating. Defaults to slog.Default().
func (m *TranslationMap) WithLogger(logger *slog.Logger) *TranslationMap {
	m.logger = logger
	return m
}

type slogWarner struct {
	logger *slog.Logger
	mapName string
}

func (w slogWarner) warn(chunk string, warning fieldpath.Warning) {
	w.logger.Warn("translation variable not resolved", "map", w.mapName, "chunk", chunk, "variable", warning.Variable, "err", warning.Err)
}

// Translate runs Preprocess hooks, every chunk in order, then Postprocess
// hooks, producing a new target-format document from src.
func (m *TranslationMap) Translate(src any) (any, error) {
	if len(m.Chunks) > 0 && m.Chunks[0].srcPath == nil {
		if err := m.Compile(); err != nil {
			return nil, err
		}
	}
	logger := m.logger
	if logger == nil {
		logger = slog.Default()
	}
	w := slogWarner{logger: logger, mapName: m.Name}

	for _, hook := range m.Preprocess {
		out, err := hook(src)
		if err != nil {
			return nil, fmt.Errorf("translate: map %q: preprocess hook failed: %w", m.Name, err)
		}
		src = out
	}

	var dst any = map[string]any{}
	var err error
	for i := range m.Chunks {
		dst, err = m.Chunks[i].apply(src, dst, w)
		if err != nil {
			return nil, err
		}
	}

	for _, hook := range m.Postprocess {
		out, err := hook(dst)
		if err != nil {
			return nil, fmt.Errorf("translate: map %q: postprocess hook failed: %w", m.Name, err)
		}
		dst = out
	}

	return dst, nil
}
