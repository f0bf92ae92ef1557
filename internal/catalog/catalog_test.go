package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sbomgrader/sbomgrader/sbomformat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSniffsJSONAndYAML(t *testing.T) {
	doc, err := Decode([]byte(`{"name": "curl"}`), "spec.json")
	require.NoError(t, err)
	assert.Equal(t, "curl", doc.(map[string]any)["name"])

	doc, err = Decode([]byte("name: curl\n"), "spec.yaml")
	require.NoError(t, err)
	assert.Equal(t, "curl", doc.(map[string]any)["name"])

	doc, err = Decode([]byte(`{"name": "curl"}`), "")
	require.NoError(t, err)
	assert.Equal(t, "curl", doc.(map[string]any)["name"])
}

func TestLoadCookbookBuiltIn(t *testing.T) {
	cb, err := LoadCookbook("default", "SPDX-2.3")
	require.NoError(t, err)
	assert.Equal(t, "default", cb.Name)
}

func TestLoadCookbookFromFile(t *testing.T) {
	dir := t.TempDir()
	rulePath := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(rulePath, []byte(`
rules:
  - name: has-name
    failureMessage: must have a name
    implementations:
      - name: SPDX-2.3
        fieldPath: name
        checker:
          str_matches_regex: ".+"
`), 0o644))

	cookbookPath := filepath.Join(dir, "cookbook.yaml")
	require.NoError(t, os.WriteFile(cookbookPath, []byte(`
rulesets:
  - `+rulePath+`
MUST:
  - has-name
`), 0o644))

	cb, err := LoadCookbook(cookbookPath, "SPDX-2.3")
	require.NoError(t, err)

	res := cb.Evaluate(map[string]any{"name": "curl"}, nil, nil)
	assert.Equal(t, "success", res.Rules.Classify("has-name").String())
}

func TestLoadTranslationMapBuiltIn(t *testing.T) {
	maps, err := LoadTranslationMap("spdx23-cdx16")
	require.NoError(t, err)
	assert.Contains(t, maps, "SPDX-2.3->CycloneDX-1.6")
}

func TestDetectFormatSPDX(t *testing.T) {
	f, err := DetectFormat(map[string]any{"spdxVersion": "SPDX-2.3"})
	require.NoError(t, err)
	assert.Equal(t, sbomformat.SPDX23, f)
}

func TestDetectFormatCycloneDX(t *testing.T) {
	f, err := DetectFormat(map[string]any{"bomFormat": "CycloneDX", "specVersion": "1.6"})
	require.NoError(t, err)
	assert.Equal(t, sbomformat.CDX16, f)
}

func TestDetectFormatUnrecognized(t *testing.T) {
	_, err := DetectFormat(map[string]any{"foo": "bar"})
	assert.Error(t, err)
}
