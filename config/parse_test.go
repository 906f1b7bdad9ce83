package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typedConfigDoc(typeURL string) map[string]any {
	return map[string]any{"type_url": typeURL, "config": map[string]any{"key": "name"}}
}

func TestParse_Minimal(t *testing.T) {
	doc := map[string]any{
		"matchers": []any{
			map[string]any{
				"predicate": map[string]any{
					"type":  "single",
					"input": typedConfigDoc("xuma.test.v1.StringInput"),
					"value_match": map[string]any{
						"Exact": "alice",
					},
				},
				"on_match": map[string]any{
					"type":   "action",
					"action": "greet",
				},
			},
		},
	}

	cfg, err := Parse(doc)
	require.NoError(t, err)
	require.Len(t, cfg.Matchers, 1)
	require.Nil(t, cfg.OnNoMatch)

	fm := cfg.Matchers[0]
	require.NotNil(t, fm.Predicate.Single)
	assert.Equal(t, "xuma.test.v1.StringInput", fm.Predicate.Single.Input.TypeURL)
	require.NotNil(t, fm.Predicate.Single.Matcher.BuiltIn)
	assert.Equal(t, "Exact", fm.Predicate.Single.Matcher.BuiltIn.Variant)
	assert.Equal(t, "alice", fm.Predicate.Single.Matcher.BuiltIn.Value)
	require.NotNil(t, fm.OnMatch.Action)
	assert.Equal(t, "greet", fm.OnMatch.Action.Action)
}

func TestParse_MissingMatchers(t *testing.T) {
	_, err := Parse(map[string]any{})
	require.Error(t, err)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestParse_AndOrNot(t *testing.T) {
	single := map[string]any{
		"type":        "single",
		"input":       typedConfigDoc("xuma.test.v1.StringInput"),
		"value_match": map[string]any{"Exact": "x"},
	}
	doc := map[string]any{
		"matchers": []any{
			map[string]any{
				"predicate": map[string]any{
					"type": "and",
					"predicates": []any{
						single,
						map[string]any{"type": "not", "predicate": single},
						map[string]any{"type": "or", "predicates": []any{single}},
					},
				},
				"on_match": map[string]any{"type": "action", "action": "a"},
			},
		},
	}

	cfg, err := Parse(doc)
	require.NoError(t, err)
	and := cfg.Matchers[0].Predicate.And
	require.NotNil(t, and)
	require.Len(t, and.Predicates, 3)
	assert.NotNil(t, and.Predicates[0].Single)
	assert.NotNil(t, and.Predicates[1].Not)
	assert.NotNil(t, and.Predicates[2].Or)
}

func TestParse_NestedOnMatch(t *testing.T) {
	single := map[string]any{
		"type":        "single",
		"input":       typedConfigDoc("xuma.test.v1.StringInput"),
		"value_match": map[string]any{"Exact": "x"},
	}
	nested := map[string]any{
		"matchers": []any{
			map[string]any{
				"predicate": single,
				"on_match":  map[string]any{"type": "action", "action": "inner"},
			},
		},
	}
	doc := map[string]any{
		"matchers": []any{
			map[string]any{
				"predicate": single,
				"on_match":  map[string]any{"type": "matcher", "matcher": nested},
			},
		},
		"on_no_match": map[string]any{"type": "action", "action": "fallback"},
	}

	cfg, err := Parse(doc)
	require.NoError(t, err)
	require.NotNil(t, cfg.Matchers[0].OnMatch.Matcher)
	assert.Len(t, cfg.Matchers[0].OnMatch.Matcher.Matcher.Matchers, 1)
	require.NotNil(t, cfg.OnNoMatch)
	assert.Equal(t, "fallback", cfg.OnNoMatch.Action.Action)
}

func TestParse_ValueMatchOneofViolation(t *testing.T) {
	doc := map[string]any{
		"matchers": []any{
			map[string]any{
				"predicate": map[string]any{
					"type":         "single",
					"input":        typedConfigDoc("x"),
					"value_match":  map[string]any{"Exact": "a"},
					"custom_match": typedConfigDoc("y"),
				},
				"on_match": map[string]any{"type": "action", "action": "a"},
			},
		},
	}
	_, err := Parse(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of")
}

func TestParse_UnknownPredicateType(t *testing.T) {
	doc := map[string]any{
		"matchers": []any{
			map[string]any{
				"predicate": map[string]any{"type": "xor"},
				"on_match":  map[string]any{"type": "action", "action": "a"},
			},
		},
	}
	_, err := Parse(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown predicate type")
}

func TestParse_CustomMatch(t *testing.T) {
	doc := map[string]any{
		"matchers": []any{
			map[string]any{
				"predicate": map[string]any{
					"type":         "single",
					"input":        typedConfigDoc("xuma.test.v1.StringInput"),
					"custom_match": typedConfigDoc("my.custom.matcher"),
				},
				"on_match": map[string]any{"type": "action", "action": "a"},
			},
		},
	}
	cfg, err := Parse(doc)
	require.NoError(t, err)
	custom := cfg.Matchers[0].Predicate.Single.Matcher.Custom
	require.NotNil(t, custom)
	assert.Equal(t, "my.custom.matcher", custom.TypedConfig.TypeURL)
}
