package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRuleFileDoc() map[string]any {
	return map[string]any{
		"rules": []any{
			map[string]any{
				"name":           "license-declared",
				"failureMessage": "licenseDeclared must be a known SPDX license",
				"implementations": []any{
					map[string]any{
						"name":      "spdx23",
						"fieldPath": "packages[&].licenseDeclared",
						"checker": map[string]any{
							"not_in": []any{"NOASSERTION", "FIELD_NOT_PRESENT"},
						},
						"minimumTestedElements": int64(1),
					},
					map[string]any{
						"name":      "cdx16",
						"fieldPath": "components[&].licenses[&].license.id",
						"checker": map[string]any{
							"eq": "FIELD_NOT_PRESENT",
						},
					},
				},
			},
			map[string]any{
				"name": "download-location-present",
				"implementations": []any{
					map[string]any{
						"name":      "spdx23",
						"fieldPath": "packages[&].downloadLocation",
						"checker": map[string]any{
							"neq": "FIELD_NOT_PRESENT",
						},
					},
				},
			},
		},
	}
}

func TestLoadRuleFileGroupsByImplementation(t *testing.T) {
	sets, err := LoadRuleFile(sampleRuleFileDoc(), nil)
	require.NoError(t, err)
	require.Contains(t, sets, "spdx23")
	require.Contains(t, sets, "cdx16")
	assert.ElementsMatch(t, []string{"download-location-present", "license-declared"}, sets["spdx23"].Names())
	assert.ElementsMatch(t, []string{"license-declared"}, sets["cdx16"].Names())
}

func TestLoadRuleFileFieldNotPresentInMixedList(t *testing.T) {
	sets, err := LoadRuleFile(sampleRuleFileDoc(), nil)
	require.NoError(t, err)

	r := sets["spdx23"].Rules["license-declared"]
	require.NotNil(t, r)

	detail := r.Evaluate(map[string]any{
		"packages": []any{map[string]any{}},
	}, nil, nil)
	assert.Equal(t, Failed, detail.Outcome)

	detail = r.Evaluate(map[string]any{
		"packages": []any{map[string]any{"licenseDeclared": "NOASSERTION"}},
	}, nil, nil)
	assert.Equal(t, Failed, detail.Outcome)

	detail = r.Evaluate(map[string]any{
		"packages": []any{map[string]any{"licenseDeclared": "MIT"}},
	}, nil, nil)
	assert.Equal(t, Success, detail.Outcome)
}

func TestLoadRuleFileBareFieldNotPresentSentinel(t *testing.T) {
	sets, err := LoadRuleFile(sampleRuleFileDoc(), nil)
	require.NoError(t, err)

	r := sets["cdx16"].Rules["license-declared"]
	require.NotNil(t, r)

	detail := r.Evaluate(map[string]any{
		"components": []any{map[string]any{"licenses": []any{map[string]any{"license": map[string]any{}}}}},
	}, nil, nil)
	assert.Equal(t, Success, detail.Outcome)

	detail = r.Evaluate(map[string]any{
		"components": []any{map[string]any{"licenses": []any{map[string]any{"license": map[string]any{"id": "MIT"}}}}},
	}, nil, nil)
	assert.Equal(t, Failed, detail.Outcome)
}

func TestLoadRuleFileNeqFieldNotPresentRequiresField(t *testing.T) {
	sets, err := LoadRuleFile(sampleRuleFileDoc(), nil)
	require.NoError(t, err)

	r := sets["spdx23"].Rules["download-location-present"]
	require.NotNil(t, r)

	detail := r.Evaluate(map[string]any{
		"packages": []any{map[string]any{"downloadLocation": "https://example.com"}},
	}, nil, nil)
	assert.Equal(t, Success, detail.Outcome)

	detail = r.Evaluate(map[string]any{
		"packages": []any{map[string]any{}},
	}, nil, nil)
	assert.Equal(t, Failed, detail.Outcome)
}

func TestLoadRuleFileUnrecognizedOperator(t *testing.T) {
	doc := map[string]any{
		"rules": []any{
			map[string]any{
				"name": "bad",
				"implementations": []any{
					map[string]any{
						"name":      "spdx23",
						"fieldPath": "name",
						"checker":   map[string]any{"bogus_op": "x"},
					},
				},
			},
		},
	}
	_, err := LoadRuleFile(doc, nil)
	assert.Error(t, err)
}

func TestLoadRuleFileGlobalVariables(t *testing.T) {
	doc := map[string]any{
		"variables": map[string]any{
			"implementations": []any{
				map[string]any{
					"name": "spdx23",
					"variables": []any{
						map[string]any{"name": "rootName", "fieldPath": "name"},
					},
				},
			},
		},
		"rules": []any{
			map[string]any{
				"name": "uses-global-var",
				"implementations": []any{
					map[string]any{
						"name":      "spdx23",
						"fieldPath": "packages[&].supplier",
						"checker":   map[string]any{"eq": "${rootName}"},
					},
				},
			},
		},
	}
	sets, err := LoadRuleFile(doc, nil)
	require.NoError(t, err)
	r := sets["spdx23"].Rules["uses-global-var"]
	require.NotNil(t, r)
	require.Len(t, r.Variables, 1)
	assert.Equal(t, "rootName", r.Variables[0].Name)
}
