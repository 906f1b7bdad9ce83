package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mox-nexus/x.uma"
)

func stringInputFactory(cfg map[string]any) (xuma.DataInput[map[string]string], error) {
	key, _ := cfg["key"].(string)
	return xuma.DataInputFunc[map[string]string](func(ctx map[string]string) xuma.MatchingData {
		v, ok := ctx[key]
		if !ok {
			return xuma.Absent
		}
		return xuma.StringData(v)
	}), nil
}

func TestBuilder_BuildIsImmutable(t *testing.T) {
	builder := NewBuilder[map[string]string]()
	builder.Input("xuma.test.v1.StringInput", stringInputFactory)

	reg := builder.Build()
	assert.True(t, reg.ContainsInput("xuma.test.v1.StringInput"))

	builder.Input("xuma.test.v2.Other", stringInputFactory)
	assert.False(t, reg.ContainsInput("xuma.test.v2.Other"), "registering on the builder after Build must not affect the frozen Registry")
}

func TestRegistry_Introspection(t *testing.T) {
	builder := NewBuilder[map[string]string]().
		Input("a", stringInputFactory).
		Input("b", stringInputFactory).
		Matcher("c", func(map[string]any) (xuma.InputMatcher, error) { return xuma.NewExactMatcher("x", false), nil })

	reg := builder.Build()
	assert.Equal(t, 2, reg.InputCount())
	assert.Equal(t, 1, reg.MatcherCount())
	assert.Equal(t, []string{"a", "b"}, reg.InputTypeURLs())
	assert.Equal(t, []string{"c"}, reg.MatcherTypeURLs())
}

func TestRegistry_UnknownTypeURL(t *testing.T) {
	reg := NewBuilder[map[string]string]().Input("known", stringInputFactory).Build()

	_, err := reg.resolveInput("missing")
	require.Error(t, err)
	var utErr *UnknownTypeURLError
	require.ErrorAs(t, err, &utErr)
	assert.Equal(t, "input", utErr.Kind)
	assert.Equal(t, []string{"known"}, utErr.Registered)
	assert.Contains(t, err.Error(), "known")
}

func TestRegistry_UnknownTypeURL_NoneRegistered(t *testing.T) {
	reg := NewBuilder[map[string]string]().Build()
	_, err := reg.resolveMatcherFactory("anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no matcher types are registered")
}
