package registry

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mox-nexus/x.uma"
)

// compileCacheSize bounds the number of distinct regex patterns a single
// Registry will keep compiled across repeated Load calls. This is strictly
// a construction-time de-dup cache — it shortens repeated Load() calls over
// configs that reuse the same pattern, and is never consulted by
// Matcher.Evaluate, which only ever sees already-compiled *xuma.RegexMatcher
// values closed over inside the tree.
const compileCacheSize = 512

// compileCache memoizes RegexMatcher compilation by pattern string. It is
// created lazily on first use and lives for the Registry's lifetime.
type compileCache struct {
	regex *lru.Cache[string, *xuma.RegexMatcher]
}

func newCompileCache() *compileCache {
	cache, err := lru.New[string, *xuma.RegexMatcher](compileCacheSize)
	if err != nil {
		// Only returns an error for a non-positive size, which
		// compileCacheSize never is.
		panic(err)
	}
	return &compileCache{regex: cache}
}

// compileRegex returns a memoized *xuma.RegexMatcher for pattern, compiling
// it on first request for this Registry.
func (r *Registry[Ctx]) compileRegex(pattern string) (*xuma.RegexMatcher, error) {
	r.cacheMu.Lock()
	if r.cache == nil {
		r.cache = newCompileCache()
	}
	cache := r.cache
	r.cacheMu.Unlock()

	if cached, ok := cache.regex.Get(pattern); ok {
		return cached, nil
	}
	compiled, err := xuma.NewRegexMatcher(pattern)
	if err != nil {
		return nil, err
	}
	cache.regex.Add(pattern, compiled)
	return compiled, nil
}
