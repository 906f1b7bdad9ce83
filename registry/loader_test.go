package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mox-nexus/x.uma"
	"github.com/mox-nexus/x.uma/config"
	"github.com/mox-nexus/x.uma/xumatest"
)

func testRegistry() *Registry[map[string]string] {
	return xumatest.Register(NewBuilder[map[string]string]()).Build()
}

func singlePredicateDoc(field, variant, value string) map[string]any {
	return map[string]any{
		"type": "single",
		"input": map[string]any{
			"type_url": xumatest.TypeURL,
			"config":   map[string]any{"key": field},
		},
		"value_match": map[string]any{variant: value},
	}
}

func TestLoad_SimpleMatch(t *testing.T) {
	doc := map[string]any{
		"matchers": []any{
			map[string]any{
				"predicate": singlePredicateDoc("env", "Exact", "prod"),
				"on_match":  map[string]any{"type": "action", "action": "prod-action"},
			},
		},
		"on_no_match": map[string]any{"type": "action", "action": "default"},
	}
	cfg, err := config.Parse(doc)
	require.NoError(t, err)

	matcher, err := Load[map[string]string, string](context.Background(), testRegistry(), cfg, IdentityActionDecoder)
	require.NoError(t, err)

	action, ok := matcher.Evaluate(map[string]string{"env": "prod"})
	require.True(t, ok)
	assert.Equal(t, "prod-action", action)

	action, ok = matcher.Evaluate(map[string]string{"env": "dev"})
	require.True(t, ok)
	assert.Equal(t, "default", action)
}

func TestLoad_UnknownInputTypeURL(t *testing.T) {
	doc := map[string]any{
		"matchers": []any{
			map[string]any{
				"predicate": map[string]any{
					"type": "single",
					"input": map[string]any{
						"type_url": "xuma.nonexistent.v1.Input",
						"config":   map[string]any{},
					},
					"value_match": map[string]any{"Exact": "x"},
				},
				"on_match": map[string]any{"type": "action", "action": "a"},
			},
		},
	}
	cfg, err := config.Parse(doc)
	require.NoError(t, err)

	_, err = Load[map[string]string, string](context.Background(), testRegistry(), cfg, IdentityActionDecoder)
	require.Error(t, err)
	var unknownErr *UnknownTypeURLError
	assert.ErrorAs(t, err, &unknownErr)
}

func TestLoad_RejectsTooManyFieldMatchers(t *testing.T) {
	matchers := make([]any, MaxFieldMatchers+1)
	for i := range matchers {
		matchers[i] = map[string]any{
			"predicate": singlePredicateDoc("env", "Exact", "prod"),
			"on_match":  map[string]any{"type": "action", "action": "a"},
		}
	}
	cfg, err := config.Parse(map[string]any{"matchers": matchers})
	require.NoError(t, err)

	_, err = Load[map[string]string, string](context.Background(), testRegistry(), cfg, IdentityActionDecoder)
	require.Error(t, err)
	var tooMany *TooManyFieldMatchersConfigError
	assert.ErrorAs(t, err, &tooMany)
}

func TestLoad_RejectsOversizedRegexPattern(t *testing.T) {
	doc := map[string]any{
		"matchers": []any{
			map[string]any{
				"predicate": singlePredicateDoc("env", "Regex", makeLongPattern(MaxRegexPatternLength+1)),
				"on_match":  map[string]any{"type": "action", "action": "a"},
			},
		},
	}
	cfg, err := config.Parse(doc)
	require.NoError(t, err)

	_, err = Load[map[string]string, string](context.Background(), testRegistry(), cfg, IdentityActionDecoder)
	require.Error(t, err)
	var tooLong *xuma.PatternTooLongError
	assert.ErrorAs(t, err, &tooLong)
}

func makeLongPattern(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}

func TestLoad_NestedMatcher(t *testing.T) {
	nestedDoc := map[string]any{
		"matchers": []any{
			map[string]any{
				"predicate": singlePredicateDoc("region", "Exact", "us"),
				"on_match":  map[string]any{"type": "action", "action": "us-action"},
			},
		},
	}
	doc := map[string]any{
		"matchers": []any{
			map[string]any{
				"predicate": singlePredicateDoc("env", "Exact", "prod"),
				"on_match":  map[string]any{"type": "matcher", "matcher": nestedDoc},
			},
		},
	}
	cfg, err := config.Parse(doc)
	require.NoError(t, err)

	matcher, err := Load[map[string]string, string](context.Background(), testRegistry(), cfg, IdentityActionDecoder)
	require.NoError(t, err)

	action, ok := matcher.Evaluate(map[string]string{"env": "prod", "region": "us"})
	require.True(t, ok)
	assert.Equal(t, "us-action", action)

	_, ok = matcher.Evaluate(map[string]string{"env": "prod", "region": "eu"})
	assert.False(t, ok)
}
