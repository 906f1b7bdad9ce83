package xuma

// MaxDepth is the maximum allowed nesting depth of a Matcher tree,
// counting both the predicate tree inside each FieldMatcher and the
// nesting introduced by NestedMatcher on_match branches. Construction
// rejects any tree whose computed depth exceeds this bound.
const MaxDepth = 32

// Action is the terminal value a Matcher produces on a match: an opaque,
// user-supplied payload. The engine never inspects or validates it.
type Action[A any] struct {
	Value A
}

// NewAction wraps value as a terminal Action.
func NewAction[A any](value A) Action[A] { return Action[A]{Value: value} }

// NestedMatcher defers to an inner *Matcher rather than producing an Action
// directly. If the inner matcher fails to resolve an action for ctx (no
// FieldMatcher matched and it has no on_no_match), OnMatch.resolve reports
// that failure to its caller so the caller can fall through to the next
// sibling FieldMatcher — nested failure never reaches further than the
// FieldMatcher that owns it.
type NestedMatcher[Ctx any, A any] struct {
	Matcher *Matcher[Ctx, A]
}

// OnMatch is what a FieldMatcher (or a Matcher's on_no_match) evaluates to
// once its predicate is satisfied: exactly one of a terminal Action or a
// NestedMatcher to recurse into. The zero value is invalid; build one with
// OnMatchAction or OnMatchNested.
type OnMatch[Ctx any, A any] struct {
	action Action[A]
	nested *NestedMatcher[Ctx, A]
}

// OnMatchAction builds a terminal OnMatch.
func OnMatchAction[Ctx any, A any](action Action[A]) OnMatch[Ctx, A] {
	return OnMatch[Ctx, A]{action: action}
}

// OnMatchNested builds an OnMatch that recurses into a nested Matcher.
func OnMatchNested[Ctx any, A any](nested *Matcher[Ctx, A]) OnMatch[Ctx, A] {
	return OnMatch[Ctx, A]{nested: &NestedMatcher[Ctx, A]{Matcher: nested}}
}

// IsNested reports whether this OnMatch recurses into a nested matcher
// rather than producing a terminal action.
func (m OnMatch[Ctx, A]) IsNested() bool { return m.nested != nil }

// resolve evaluates ctx against this OnMatch. ok is false only when this is
// a nested OnMatch and the inner matcher could not resolve an action for
// ctx (local propagation: the caller must try the next sibling
// FieldMatcher, never its own on_no_match).
func (m OnMatch[Ctx, A]) resolve(ctx Ctx) (action A, ok bool) {
	if m.nested != nil {
		return m.nested.Matcher.Evaluate(ctx)
	}
	return m.action.Value, true
}

func (m OnMatch[Ctx, A]) depth() int {
	if m.nested != nil {
		return 1 + m.nested.Matcher.depth
	}
	return 1
}

// FieldMatcher pairs a Predicate with the OnMatch to resolve when it's
// satisfied. A Matcher scans its FieldMatcher list in order and uses the
// first one whose predicate is true.
type FieldMatcher[Ctx any, A any] struct {
	Predicate Predicate[Ctx]
	OnMatch   OnMatch[Ctx, A]
}

// NewFieldMatcher pairs predicate with onMatch.
func NewFieldMatcher[Ctx any, A any](predicate Predicate[Ctx], onMatch OnMatch[Ctx, A]) FieldMatcher[Ctx, A] {
	return FieldMatcher[Ctx, A]{Predicate: predicate, OnMatch: onMatch}
}

// Matcher is the core decision tree: an ordered list of FieldMatcher
// entries scanned first-match-wins, falling back to OnNoMatch when no
// predicate is satisfied (or when every matched FieldMatcher's nested
// matcher fails to resolve).
//
// A constructed Matcher is immutable: FieldMatchers and OnNoMatch are set
// once by NewMatcher and never mutated afterward. Evaluate is total —
// every call returns either a resolved action or ok=false, never a panic
// or error, and performs no I/O, no logging, no allocation beyond what its
// predicates/matchers themselves allocate.
type Matcher[Ctx any, A any] struct {
	FieldMatchers []FieldMatcher[Ctx, A]
	OnNoMatch     *OnMatch[Ctx, A]

	depth int
}

// NewMatcher validates and constructs a Matcher. It rejects trees whose
// depth exceeds MaxDepth via a *DepthExceededError. Width/length limits
// (MAX_FIELD_MATCHERS, MAX_PREDICATES_PER_COMPOUND, pattern length) are
// registry-level concerns enforced by registry.Load, not here —
// a Matcher built directly via NewMatcher is trusted caller code.
func NewMatcher[Ctx any, A any](fieldMatchers []FieldMatcher[Ctx, A], onNoMatch *OnMatch[Ctx, A]) (*Matcher[Ctx, A], error) {
	if len(fieldMatchers) == 0 && onNoMatch == nil {
		return nil, ErrEmptyContext
	}
	m := &Matcher[Ctx, A]{FieldMatchers: fieldMatchers, OnNoMatch: onNoMatch}
	m.depth = computeDepth(fieldMatchers, onNoMatch)
	if m.depth > MaxDepth {
		return nil, &DepthExceededError{Depth: m.depth, Max: MaxDepth}
	}
	return m, nil
}

func computeDepth[Ctx any, A any](fieldMatchers []FieldMatcher[Ctx, A], onNoMatch *OnMatch[Ctx, A]) int {
	max := 0
	for _, fm := range fieldMatchers {
		// predicate depth and on_match depth are independent branches of
		// the same FieldMatcher; its contribution is whichever is deeper.
		d := maxInt(fm.Predicate.depth(), fm.OnMatch.depth())
		if d > max {
			max = d
		}
	}
	if onNoMatch != nil {
		if d := onNoMatch.depth(); d > max {
			max = d
		}
	}
	return 1 + max
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Depth reports this Matcher's validated tree depth.
func (m *Matcher[Ctx, A]) Depth() int { return m.depth }

// Evaluate scans FieldMatchers in order and returns the action of the
// first whose Predicate is satisfied for ctx. If the matched entry's
// OnMatch is nested and its inner matcher fails to resolve (ok=false),
// evaluation continues to the next sibling FieldMatcher — it does NOT fall
// through to m.OnNoMatch. Only after the entire FieldMatchers list has
// been exhausted without a resolved action does Evaluate consult
// OnNoMatch; if that is absent or itself unresolved, ok is false.
func (m *Matcher[Ctx, A]) Evaluate(ctx Ctx) (action A, ok bool) {
	for _, fm := range m.FieldMatchers {
		if !fm.Predicate.Evaluate(ctx) {
			continue
		}
		if action, ok := fm.OnMatch.resolve(ctx); ok {
			return action, true
		}
		// Local propagation: this FieldMatcher's predicate matched but
		// its nested matcher had no answer. Try the next FieldMatcher
		// rather than falling back to OnNoMatch.
	}
	if m.OnNoMatch != nil {
		return m.OnNoMatch.resolve(ctx)
	}
	var zero A
	return zero, false
}
