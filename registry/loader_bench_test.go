package registry

import (
	"context"
	"testing"

	"github.com/mox-nexus/x.uma/config"
)

var benchmarkMatcherDepth int

func buildBenchConfig(b *testing.B, fieldMatcherCount int) config.MatcherConfig {
	b.Helper()
	matchers := make([]any, fieldMatcherCount)
	for i := range matchers {
		matchers[i] = map[string]any{
			"predicate": singlePredicateDoc("env", "Exact", "bucket-not-it"),
			"on_match":  map[string]any{"type": "action", "action": "miss"},
		}
	}
	cfg, err := config.Parse(map[string]any{
		"matchers":    matchers,
		"on_no_match": map[string]any{"type": "action", "action": "default"},
	})
	if err != nil {
		b.Fatal(err)
	}
	return cfg
}

// BenchmarkLoad_SmallConfig measures Load's construction-time cost
// for a minimal, single-FieldMatcher config.
func BenchmarkLoad_SmallConfig(b *testing.B) {
	reg := testRegistry()
	cfg := buildBenchConfig(b, 1)

	b.ResetTimer()
	var depth int
	for i := 0; i < b.N; i++ {
		matcher, err := Load[map[string]string, string](context.Background(), reg, cfg, IdentityActionDecoder)
		if err != nil {
			b.Fatal(err)
		}
		depth = matcher.Depth()
	}
	benchmarkMatcherDepth = depth
}

// BenchmarkLoad_WideConfig measures Load against a config near
// MaxFieldMatchers, the realistic upper bound for a single Matcher.
func BenchmarkLoad_WideConfig(b *testing.B) {
	reg := testRegistry()
	cfg := buildBenchConfig(b, MaxFieldMatchers)

	b.ResetTimer()
	var depth int
	for i := 0; i < b.N; i++ {
		matcher, err := Load[map[string]string, string](context.Background(), reg, cfg, IdentityActionDecoder)
		if err != nil {
			b.Fatal(err)
		}
		depth = matcher.Depth()
	}
	benchmarkMatcherDepth = depth
}

// BenchmarkCompileRegex_CacheHit measures the cache-hit path of the
// construction-time regex compile cache.
func BenchmarkCompileRegex_CacheHit(b *testing.B) {
	reg := testRegistry()
	if _, err := reg.compileRegex("^prod-.*$"); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := reg.compileRegex("^prod-.*$"); err != nil {
			b.Fatal(err)
		}
	}
}
