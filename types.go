// Package xuma implements the core of the xDS Unified Matcher API: a
// declarative, tree-shaped decision engine that classifies an opaque context
// into a user-defined action.
//
// The engine performs no I/O, no scheduling, and no caching across
// evaluations. A constructed Matcher is immutable and safe for concurrent
// use without synchronization. Construction-time errors (unknown type URLs,
// oversized configs, invalid regex, excessive nesting) are the only errors
// the engine produces; Matcher.Evaluate is total and infallible.
package xuma

import "fmt"

// DataKind discriminates the variants of MatchingData.
type DataKind int

const (
	// KindAbsent is the sentinel "not available" variant. A Single
	// predicate short-circuits to false without consulting its matcher
	// when extraction yields KindAbsent (the None -> false invariant).
	KindAbsent DataKind = iota
	KindString
	KindInt
	KindBool
	KindBytes
)

func (k DataKind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindBytes:
		return "bytes"
	default:
		return fmt.Sprintf("DataKind(%d)", int(k))
	}
}

// MatchingData is the type-erased value produced by a DataInput. It is a
// variant over {string, integer, boolean, byte-sequence, absent}; the zero
// value is the absent variant.
//
// MatchingData is immutable and comparable by value for the scalar variants;
// the Bytes variant should not be mutated through the slice returned by
// Bytes().
type MatchingData struct {
	kind  DataKind
	str   string
	num   int64
	boo   bool
	bytes []byte
}

// Absent is the zero-value sentinel meaning "no data available". It triggers
// the None -> false invariant when it reaches a Single predicate.
var Absent = MatchingData{kind: KindAbsent}

// StringData wraps a string value.
func StringData(v string) MatchingData { return MatchingData{kind: KindString, str: v} }

// IntData wraps an integer value.
func IntData(v int64) MatchingData { return MatchingData{kind: KindInt, num: v} }

// BoolData wraps a boolean value.
func BoolData(v bool) MatchingData { return MatchingData{kind: KindBool, boo: v} }

// BytesData wraps a byte-sequence value. The slice is retained, not copied;
// callers must not mutate it afterwards.
func BytesData(v []byte) MatchingData { return MatchingData{kind: KindBytes, bytes: v} }

// Kind reports which variant this value holds.
func (d MatchingData) Kind() DataKind { return d.kind }

// IsAbsent reports whether this value is the absent sentinel.
func (d MatchingData) IsAbsent() bool { return d.kind == KindAbsent }

// AsString returns the string payload and true if this value is the string
// variant; otherwise it returns ("", false).
func (d MatchingData) AsString() (string, bool) {
	if d.kind != KindString {
		return "", false
	}
	return d.str, true
}

// AsInt returns the integer payload and true if this value is the int
// variant; otherwise it returns (0, false).
func (d MatchingData) AsInt() (int64, bool) {
	if d.kind != KindInt {
		return 0, false
	}
	return d.num, true
}

// AsBool returns the boolean payload and true if this value is the bool
// variant; otherwise it returns (false, false).
func (d MatchingData) AsBool() (bool, bool) {
	if d.kind != KindBool {
		return false, false
	}
	return d.boo, true
}

// AsBytes returns the byte-sequence payload and true if this value is the
// bytes variant; otherwise it returns (nil, false).
func (d MatchingData) AsBytes() ([]byte, bool) {
	if d.kind != KindBytes {
		return nil, false
	}
	return d.bytes, true
}

// String renders a debug-friendly representation; it is not used for
// matching (string matchers only ever see the String variant via AsString).
func (d MatchingData) String() string {
	switch d.kind {
	case KindAbsent:
		return "<absent>"
	case KindString:
		return fmt.Sprintf("%q", d.str)
	case KindInt:
		return fmt.Sprintf("%d", d.num)
	case KindBool:
		return fmt.Sprintf("%t", d.boo)
	case KindBytes:
		return fmt.Sprintf("%x", d.bytes)
	default:
		return "<invalid>"
	}
}

// DataInput is a domain-specific port: a pure, side-effect-free projection
// from a context to an erased MatchingData. Returning Absent means the named
// data is not present in ctx; it never indicates an error.
//
// The same InputMatcher can be driven by any number of DataInput
// implementations — domain knowledge lives entirely in DataInput, never in
// InputMatcher. See xumatest.DictInput for a minimal example binding.
type DataInput[Ctx any] interface {
	Get(ctx Ctx) MatchingData
}

// InputMatcher is a domain-agnostic port over erased MatchingData. It must
// be total: every MatchingData variant produces a boolean without failure.
// Implementations that only understand certain variants return false for
// all others (in particular, all built-in string matchers return false for
// non-string variants).
type InputMatcher interface {
	Matches(value MatchingData) bool
}

// DataInputFunc adapts a plain function to the DataInput interface.
type DataInputFunc[Ctx any] func(ctx Ctx) MatchingData

// Get implements DataInput.
func (f DataInputFunc[Ctx]) Get(ctx Ctx) MatchingData { return f(ctx) }

// InputMatcherFunc adapts a plain function to the InputMatcher interface.
type InputMatcherFunc func(value MatchingData) bool

// Matches implements InputMatcher.
func (f InputMatcherFunc) Matches(value MatchingData) bool { return f(value) }
