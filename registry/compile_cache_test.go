package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_CompileRegex_CachesByPattern(t *testing.T) {
	reg := testRegistry()

	first, err := reg.compileRegex("^prod-.*$")
	require.NoError(t, err)
	second, err := reg.compileRegex("^prod-.*$")
	require.NoError(t, err)

	assert.Same(t, first, second, "repeated compileRegex for the same pattern must return the cached matcher")
}

func TestRegistry_CompileRegex_DistinctPatterns(t *testing.T) {
	reg := testRegistry()

	a, err := reg.compileRegex("^a$")
	require.NoError(t, err)
	b, err := reg.compileRegex("^b$")
	require.NoError(t, err)

	assert.NotSame(t, a, b)
}

func TestRegistry_CompileRegex_InvalidPattern(t *testing.T) {
	reg := testRegistry()
	_, err := reg.compileRegex(`(a)\1`)
	require.Error(t, err)
}
