package registry

import "fmt"

// TooManyFieldMatchersConfigError reports that a MatcherConfig's matcher
// list exceeds MaxFieldMatchers. Caught while still walking
// config.MatcherConfig, before a xuma.Matcher is built — width/length limits
// are a registry-level concern, never enforced by the core engine itself.
type TooManyFieldMatchersConfigError struct {
	Count int
	Max   int
}

func (e *TooManyFieldMatchersConfigError) Error() string {
	return fmt.Sprintf("registry: too many field matchers: %d exceeds maximum %d", e.Count, e.Max)
}

// TooManyPredicatesConfigError reports that an And/Or predicate config
// exceeds MaxPredicatesPerCompound.
type TooManyPredicatesConfigError struct {
	Count int
	Max   int
}

func (e *TooManyPredicatesConfigError) Error() string {
	return fmt.Sprintf("registry: too many predicates in compound: %d exceeds maximum %d", e.Count, e.Max)
}

// InvalidConfigError reports a structurally well-formed but semantically
// invalid config.MatcherConfig (e.g. a oneof with no variant set, which
// config.Parse should already have rejected — this is a defense-in-depth
// check for MatcherConfig values assembled directly by Go code rather than
// parsed from a document).
type InvalidConfigError struct {
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("registry: invalid config: %s", e.Reason)
}

// FactoryError wraps a failure from a registered InputFactory or
// MatcherFactory.
type FactoryError struct {
	Kind    string // "input" or "matcher"
	TypeURL string
	Cause   error
}

func (e *FactoryError) Error() string {
	return fmt.Sprintf("registry: %s factory for %s failed: %v", e.Kind, e.TypeURL, e.Cause)
}

func (e *FactoryError) Unwrap() error { return e.Cause }

// ActionDecodeError wraps a failure from an ActionDecoder.
type ActionDecodeError struct {
	Raw   string
	Cause error
}

func (e *ActionDecodeError) Error() string {
	return fmt.Sprintf("registry: could not decode action %q: %v", e.Raw, e.Cause)
}

func (e *ActionDecodeError) Unwrap() error { return e.Cause }
