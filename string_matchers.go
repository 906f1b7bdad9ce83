package xuma

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/coregx/coregex"
)

// foldCaser performs Unicode full case folding, the same normalization
// Python's str.casefold() applies. Using golang.org/x/text/cases instead of
// strings.ToLower keeps case-insensitive comparison correct for scripts
// where simple lowercasing and full case folding disagree (e.g. German ß).
var foldCaser = cases.Fold()

func foldString(s string) string {
	return foldCaser.String(s)
}

// ExactMatcher is an immutable string-equality InputMatcher. When
// IgnoreCase is set the comparison value is folded once at construction and
// the input is folded per call.
type ExactMatcher struct {
	value      string
	ignoreCase bool
	cmpValue   string
}

// NewExactMatcher builds an ExactMatcher for value, optionally folding case.
func NewExactMatcher(value string, ignoreCase bool) *ExactMatcher {
	m := &ExactMatcher{value: value, ignoreCase: ignoreCase}
	if ignoreCase {
		m.cmpValue = foldString(value)
	} else {
		m.cmpValue = value
	}
	return m
}

// Matches implements InputMatcher. Non-string values always return false.
func (m *ExactMatcher) Matches(value MatchingData) bool {
	s, ok := value.AsString()
	if !ok {
		return false
	}
	if m.ignoreCase {
		s = foldString(s)
	}
	return s == m.cmpValue
}

// PrefixMatcher is an immutable string-prefix InputMatcher (strings.HasPrefix).
type PrefixMatcher struct {
	prefix     string
	ignoreCase bool
	cmpPrefix  string
}

// NewPrefixMatcher builds a PrefixMatcher for prefix, optionally folding case.
func NewPrefixMatcher(prefix string, ignoreCase bool) *PrefixMatcher {
	m := &PrefixMatcher{prefix: prefix, ignoreCase: ignoreCase}
	if ignoreCase {
		m.cmpPrefix = foldString(prefix)
	} else {
		m.cmpPrefix = prefix
	}
	return m
}

// Matches implements InputMatcher. Non-string values always return false.
func (m *PrefixMatcher) Matches(value MatchingData) bool {
	s, ok := value.AsString()
	if !ok {
		return false
	}
	if m.ignoreCase {
		s = foldString(s)
	}
	return strings.HasPrefix(s, m.cmpPrefix)
}

// SuffixMatcher is an immutable string-suffix InputMatcher (strings.HasSuffix).
type SuffixMatcher struct {
	suffix     string
	ignoreCase bool
	cmpSuffix  string
}

// NewSuffixMatcher builds a SuffixMatcher for suffix, optionally folding case.
func NewSuffixMatcher(suffix string, ignoreCase bool) *SuffixMatcher {
	m := &SuffixMatcher{suffix: suffix, ignoreCase: ignoreCase}
	if ignoreCase {
		m.cmpSuffix = foldString(suffix)
	} else {
		m.cmpSuffix = suffix
	}
	return m
}

// Matches implements InputMatcher. Non-string values always return false.
func (m *SuffixMatcher) Matches(value MatchingData) bool {
	s, ok := value.AsString()
	if !ok {
		return false
	}
	if m.ignoreCase {
		s = foldString(s)
	}
	return strings.HasSuffix(s, m.cmpSuffix)
}

// ContainsMatcher is an immutable substring-search InputMatcher.
type ContainsMatcher struct {
	substring    string
	ignoreCase   bool
	cmpSubstring string
}

// NewContainsMatcher builds a ContainsMatcher for substring, optionally
// folding case.
func NewContainsMatcher(substring string, ignoreCase bool) *ContainsMatcher {
	m := &ContainsMatcher{substring: substring, ignoreCase: ignoreCase}
	if ignoreCase {
		m.cmpSubstring = foldString(substring)
	} else {
		m.cmpSubstring = substring
	}
	return m
}

// Matches implements InputMatcher. Non-string values always return false.
func (m *ContainsMatcher) Matches(value MatchingData) bool {
	s, ok := value.AsString()
	if !ok {
		return false
	}
	if m.ignoreCase {
		s = foldString(s)
	}
	return strings.Contains(s, m.cmpSubstring)
}

// RegexMatcher is an immutable regular-expression InputMatcher. The pattern
// is compiled once at construction via coregex, which guarantees
// linear-time matching (RE2 family) and rejects backreferences and
// lookaround at compile time. Matching is an unanchored search, consistent
// with the rest of the string-matcher algebra.
type RegexMatcher struct {
	pattern  string
	compiled *coregex.Regex
}

// NewRegexMatcher compiles pattern via coregex. It returns an
// *InvalidRegexError if the pattern is not valid RE2 syntax, in particular
// if it requires backtracking (backreferences, lookahead, lookbehind).
func NewRegexMatcher(pattern string) (*RegexMatcher, error) {
	compiled, err := coregex.Compile(pattern)
	if err != nil {
		return nil, &InvalidRegexError{Pattern: pattern, Cause: err}
	}
	return &RegexMatcher{pattern: pattern, compiled: compiled}, nil
}

// Matches implements InputMatcher. Non-string values always return false.
// Matching searches anywhere in the string; the pattern is used literally,
// with no anchors added.
func (m *RegexMatcher) Matches(value MatchingData) bool {
	s, ok := value.AsString()
	if !ok {
		return false
	}
	return m.compiled.MatchString(s)
}

// Pattern returns the source pattern this matcher was compiled from.
func (m *RegexMatcher) Pattern() string { return m.pattern }
