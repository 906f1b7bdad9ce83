// Package config holds the untyped-document-to-typed-AST layer for matcher
// configuration. It mirrors the xDS TypedExtensionConfig shape: every
// extension point (inputs, custom matchers, actions) is a type URL plus an
// opaque payload, resolved later by a registry.Registry, never here.
//
// Parsing is purely structural — Parse never resolves a type URL
// against a registry and never compiles a regex; it only validates shape.
package config

// TypedConfig references a registered type (input, custom matcher, or
// action) together with its type-specific payload. Maps to xDS's
// TypedExtensionConfig.
type TypedConfig struct {
	TypeURL string
	Config  map[string]any
}

// BuiltInMatch is one of the five built-in string-matcher variants:
// Exact, Prefix, Suffix, Contains, Regex.
type BuiltInMatch struct {
	Variant string
	Value   string
}

// CustomMatch defers to a registry-resolved matcher factory instead of a
// built-in string match.
type CustomMatch struct {
	TypedConfig TypedConfig
}

// ValueMatch is the oneof over {BuiltInMatch, CustomMatch} a SinglePredicate
// resolves its InputMatcher from. Exactly one of BuiltIn/Custom is set.
type ValueMatch struct {
	BuiltIn *BuiltInMatch
	Custom  *CustomMatch
}

// SinglePredicateConfig configures a SinglePredicate: a data input plus the
// value match it's tested against.
type SinglePredicateConfig struct {
	Input   TypedConfig
	Matcher ValueMatch
}

// AndPredicateConfig configures a logical AND over its children, evaluated
// in declaration order.
type AndPredicateConfig struct {
	Predicates []PredicateConfig
}

// OrPredicateConfig configures a logical OR over its children, evaluated in
// declaration order.
type OrPredicateConfig struct {
	Predicates []PredicateConfig
}

// NotPredicateConfig configures a logical negation of its inner predicate.
type NotPredicateConfig struct {
	Predicate *PredicateConfig
}

// PredicateConfig is the oneof over {Single, And, Or, Not}. Exactly one
// field is set, discriminated by which pointer is non-nil.
type PredicateConfig struct {
	Single *SinglePredicateConfig
	And    *AndPredicateConfig
	Or     *OrPredicateConfig
	Not    *NotPredicateConfig
}

// ActionConfig configures a terminal action value.
type ActionConfig struct {
	Action string
}

// MatcherOnMatchConfig configures recursion into a nested MatcherConfig.
type MatcherOnMatchConfig struct {
	Matcher MatcherConfig
}

// OnMatchConfig is the oneof over {ActionConfig, MatcherOnMatchConfig}.
// Exactly one field is set.
type OnMatchConfig struct {
	Action  *ActionConfig
	Matcher *MatcherOnMatchConfig
}

// FieldMatcherConfig pairs a predicate config with the on_match config to
// resolve when it is satisfied.
type FieldMatcherConfig struct {
	Predicate PredicateConfig
	OnMatch   OnMatchConfig
}

// MatcherConfig is the root configuration for a Matcher: an ordered list of
// field matchers plus an optional fallback on_no_match.
type MatcherConfig struct {
	Matchers  []FieldMatcherConfig
	OnNoMatch *OnMatchConfig
}
