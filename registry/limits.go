package registry

// Width and length limits enforced at Load time, independent of MaxDepth
// (which xuma.NewMatcher enforces on the constructed tree itself). These
// bound the blast radius of a single untrusted config document: a document
// cannot fan a matcher out wider, nest a compound predicate deeper-but-wide,
// or embed a pattern longer than these limits allow.
const (
	// MaxFieldMatchers bounds the number of FieldMatcher entries in a
	// single matcher's list.
	MaxFieldMatchers = 256

	// MaxPredicatesPerCompound bounds the number of children of a single
	// And/Or predicate.
	MaxPredicatesPerCompound = 256

	// MaxPatternLength bounds Exact/Prefix/Suffix/Contains pattern length.
	MaxPatternLength = 8192

	// MaxRegexPatternLength bounds Regex pattern length. Tighter than
	// MaxPatternLength since regex compilation cost scales with pattern
	// size even under coregex's linear-time match guarantee.
	MaxRegexPatternLength = 4096
)
