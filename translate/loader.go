package translate

import (
	"fmt"

	"github.com/sbomgrader/sbomgrader/fieldpath"
	"github.com/sbomgrader/sbomgrader/sbomformat"
)

// HookResolver looks up a host-registered Hook by name, for a
// Translation-map file's `firstPreprocessing`/`secondPreprocessing`/
// `firstPostprocessing`/`secondPostprocessing` hook-name lists (§6). Hooks
// are opaque to this package (§4.6/§9): it only looks them up by name and
// wires them into the TranslationMap it builds.
type HookResolver func(name string) (Hook, error)

// LoadTranslationMap parses a decoded Translation-map-file document (§6)
// into its two directions, keyed by "<source>-><target>" using the
// formats' canonical String() names. A translation map file describes a
// single bidirectional correspondence (`first`, `second`); this package's
// TranslationMap is unidirectional, so loading a file always produces
// exactly two TranslationMaps: one rendering `second` fragments from
// `first` matches (using each chunk's secondData as the render template),
// and one rendering `first` fragments from `second` matches (using
// firstData) — the same two-template-per-chunk shape choose_map.py's
// TranslationMap.convert selects between by inspecting the document's own
// format.
func LoadTranslationMap(name string, doc any, resolveHook HookResolver) (map[string]*TranslationMap, error) {
	top, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("translate: translation map file root must be a mapping")
	}

	firstStr, _ := top["first"].(string)
	secondStr, _ := top["second"].(string)
	first, err := sbomformat.Parse(firstStr)
	if err != nil {
		return nil, fmt.Errorf("translate: %q: first: %w", name, err)
	}
	second, err := sbomformat.Parse(secondStr)
	if err != nil {
		return nil, fmt.Errorf("translate: %q: second: %w", name, err)
	}

	firstVars, err := loadVariableDefs(top["firstVariables"])
	if err != nil {
		return nil, fmt.Errorf("translate: %q: firstVariables: %w", name, err)
	}
	secondVars, err := loadVariableDefs(top["secondVariables"])
	if err != nil {
		return nil, fmt.Errorf("translate: %q: secondVariables: %w", name, err)
	}

	rawChunks, ok := top["chunks"].([]any)
	if !ok {
		return nil, fmt.Errorf("translate: %q: has no 'chunks' list", name)
	}

	var forward, backward []Chunk
	for i, rawChunk := range rawChunks {
		c, ok := rawChunk.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("translate: %q: chunks[%d] is not a mapping", name, i)
		}
		chunkName, _ := c["name"].(string)
		if chunkName == "" {
			chunkName = fmt.Sprintf("chunk-%d", i)
		}
		firstFieldPath, _ := c["firstFieldPath"].(string)
		secondFieldPath, _ := c["secondFieldPath"].(string)
		firstData, _ := c["firstData"].(string)
		secondData, _ := c["secondData"].(string)

		chunkFirstVars, err := loadVariableDefs(c["firstVariables"])
		if err != nil {
			return nil, fmt.Errorf("translate: %q: chunks[%d]: firstVariables: %w", name, i, err)
		}
		chunkSecondVars, err := loadVariableDefs(c["secondVariables"])
		if err != nil {
			return nil, fmt.Errorf("translate: %q: chunks[%d]: secondVariables: %w", name, i, err)
		}

		if secondData != "" {
			forward = append(forward, Chunk{
				Name:       chunkName,
				SourcePath: firstFieldPath,
				TargetPath: secondFieldPath,
				Template:   secondData,
				Variables:  append(append([]fieldpath.VariableDef{}, firstVars...), chunkFirstVars...),
			})
		}
		if firstData != "" {
			backward = append(backward, Chunk{
				Name:       chunkName,
				SourcePath: secondFieldPath,
				TargetPath: firstFieldPath,
				Template:   firstData,
				Variables:  append(append([]fieldpath.VariableDef{}, secondVars...), chunkSecondVars...),
			})
		}
	}

	forwardMap := &TranslationMap{
		Name:         name,
		SourceFormat: first,
		TargetFormat: second,
		Chunks:       forward,
	}
	backwardMap := &TranslationMap{
		Name:         name,
		SourceFormat: second,
		TargetFormat: first,
		Chunks:       backward,
	}

	if err := wireHooks(forwardMap, top, "firstPreprocessing", "secondPostprocessing", resolveHook); err != nil {
		return nil, fmt.Errorf("translate: %q: %w", name, err)
	}
	if err := wireHooks(backwardMap, top, "secondPreprocessing", "firstPostprocessing", resolveHook); err != nil {
		return nil, fmt.Errorf("translate: %q: %w", name, err)
	}

	key := func(f sbomformat.Format) string { return f.String() }
	return map[string]*TranslationMap{
		key(first) + "->" + key(second): forwardMap,
		key(second) + "->" + key(first): backwardMap,
	}, nil
}

func wireHooks(m *TranslationMap, top map[string]any, preKey, postKey string, resolveHook HookResolver) error {
	pre, err := loadHooks(top[preKey], resolveHook)
	if err != nil {
		return fmt.Errorf("%s: %w", preKey, err)
	}
	post, err := loadHooks(top[postKey], resolveHook)
	if err != nil {
		return fmt.Errorf("%s: %w", postKey, err)
	}
	m.Preprocess = pre
	m.Postprocess = post
	return nil
}

func loadHooks(raw any, resolveHook HookResolver) ([]Hook, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, nil
	}
	hooks := make([]Hook, 0, len(list))
	for i, item := range list {
		hookName, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("item %d is not a string", i)
		}
		if resolveHook == nil {
			return nil, fmt.Errorf("hook %q referenced but no resolver was supplied", hookName)
		}
		h, err := resolveHook(hookName)
		if err != nil {
			return nil, fmt.Errorf("resolving hook %q: %w", hookName, err)
		}
		hooks = append(hooks, h)
	}
	return hooks, nil
}

func loadVariableDefs(raw any) ([]fieldpath.VariableDef, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, nil
	}
	defs := make([]fieldpath.VariableDef, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("item %d is not a mapping", i)
		}
		name, _ := obj["name"].(string)
		path, _ := obj["fieldPath"].(string)
		if name == "" || path == "" {
			return nil, fmt.Errorf("item %d missing name or fieldPath", i)
		}
		defs = append(defs, fieldpath.VariableDef{Name: name, Path: path})
	}
	return defs, nil
}
