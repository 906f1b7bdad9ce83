// Package registry resolves type-URL-keyed configuration into runtime xuma
// types: DataInput factories keyed by input type URL, InputMatcher
// factories keyed by custom-matcher type URL, and Load, which walks a
// config.MatcherConfig into a constructed *xuma.Matcher[Ctx, A].
//
// A Registry is immutable once Build is called — registering a factory
// after Build has no effect on already-built Registry values, mirroring
// xuma's "no re-loading in place" invariant one level up.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mox-nexus/x.uma"
)

// InputFactory builds a xuma.DataInput[Ctx] from a type-specific config
// payload. It is called once per SinglePredicateConfig.Input at Load time,
// never during evaluation.
type InputFactory[Ctx any] func(cfg map[string]any) (xuma.DataInput[Ctx], error)

// MatcherFactory builds a xuma.InputMatcher from a type-specific config
// payload (a "custom_match"). Domain-agnostic, like xuma.InputMatcher
// itself: it never sees Ctx.
type MatcherFactory func(cfg map[string]any) (xuma.InputMatcher, error)

// UnknownTypeURLError reports that a config referenced a type URL with no
// registered factory of the requested kind. Registered carries the sorted
// list of type URLs that ARE registered for that kind, so the caller can
// spot a typo without a second round trip.
type UnknownTypeURLError struct {
	Kind       string // "input" or "matcher"
	URL        string
	Registered []string
}

func (e *UnknownTypeURLError) Error() string {
	if len(e.Registered) == 0 {
		return fmt.Sprintf("registry: unknown %s type_url: %s (no %s types are registered)", e.Kind, e.URL, e.Kind)
	}
	return fmt.Sprintf("registry: unknown %s type_url: %s (registered: %s)", e.Kind, e.URL, strings.Join(e.Registered, ", "))
}

// Builder accumulates input and matcher factories before being frozen into
// a Registry by Build. A Builder is not safe for concurrent registration;
// the Registry it produces is safe for concurrent read-only use.
type Builder[Ctx any] struct {
	inputs   map[string]InputFactory[Ctx]
	matchers map[string]MatcherFactory
}

// NewBuilder returns an empty Builder.
func NewBuilder[Ctx any]() *Builder[Ctx] {
	return &Builder[Ctx]{
		inputs:   make(map[string]InputFactory[Ctx]),
		matchers: make(map[string]MatcherFactory),
	}
}

// Input registers an InputFactory under typeURL, overwriting any existing
// registration for that URL. Returns the Builder for chaining.
func (b *Builder[Ctx]) Input(typeURL string, factory InputFactory[Ctx]) *Builder[Ctx] {
	b.inputs[typeURL] = factory
	return b
}

// Matcher registers a MatcherFactory under typeURL, overwriting any
// existing registration for that URL. Returns the Builder for chaining.
func (b *Builder[Ctx]) Matcher(typeURL string, factory MatcherFactory) *Builder[Ctx] {
	b.matchers[typeURL] = factory
	return b
}

// Build freezes the accumulated registrations into a Registry. The
// returned Registry shares no mutable state with the Builder that produced
// it — further calls to Builder methods do not affect it.
func (b *Builder[Ctx]) Build() *Registry[Ctx] {
	inputs := make(map[string]InputFactory[Ctx], len(b.inputs))
	for k, v := range b.inputs {
		inputs[k] = v
	}
	matchers := make(map[string]MatcherFactory, len(b.matchers))
	for k, v := range b.matchers {
		matchers[k] = v
	}
	return &Registry[Ctx]{inputs: inputs, matchers: matchers}
}

// Registry is an immutable, concurrency-safe set of type-URL-keyed
// factories, plus the Load entry point (loader.go) that consumes them.
type Registry[Ctx any] struct {
	inputs   map[string]InputFactory[Ctx]
	matchers map[string]MatcherFactory

	cacheMu sync.Mutex
	cache   *compileCache
}

// InputCount returns the number of registered input type URLs.
func (r *Registry[Ctx]) InputCount() int { return len(r.inputs) }

// MatcherCount returns the number of registered custom-matcher type URLs.
func (r *Registry[Ctx]) MatcherCount() int { return len(r.matchers) }

// ContainsInput reports whether typeURL has a registered InputFactory.
func (r *Registry[Ctx]) ContainsInput(typeURL string) bool {
	_, ok := r.inputs[typeURL]
	return ok
}

// ContainsMatcher reports whether typeURL has a registered MatcherFactory.
func (r *Registry[Ctx]) ContainsMatcher(typeURL string) bool {
	_, ok := r.matchers[typeURL]
	return ok
}

// InputTypeURLs returns the sorted list of registered input type URLs.
func (r *Registry[Ctx]) InputTypeURLs() []string { return sortedKeys(r.inputs) }

// MatcherTypeURLs returns the sorted list of registered custom-matcher type
// URLs.
func (r *Registry[Ctx]) MatcherTypeURLs() []string { return sortedKeys(r.matchers) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r *Registry[Ctx]) resolveInput(typeURL string) (InputFactory[Ctx], error) {
	factory, ok := r.inputs[typeURL]
	if !ok {
		return nil, &UnknownTypeURLError{Kind: "input", URL: typeURL, Registered: r.InputTypeURLs()}
	}
	return factory, nil
}

func (r *Registry[Ctx]) resolveMatcherFactory(typeURL string) (MatcherFactory, error) {
	factory, ok := r.matchers[typeURL]
	if !ok {
		return nil, &UnknownTypeURLError{Kind: "matcher", URL: typeURL, Registered: r.MatcherTypeURLs()}
	}
	return factory, nil
}
