package xuma

// MatcherFromPredicate builds a single-FieldMatcher convenience Matcher:
// when predicate is satisfied, action resolves; otherwise, if onNoMatch is
// non-nil, it resolves instead.
//
// This mirrors the matcher_from_predicate helper from the reference
// implementation — the common case of "one condition, one action" without
// hand-assembling a FieldMatcher slice.
func MatcherFromPredicate[Ctx any, A any](predicate Predicate[Ctx], action A, onNoMatch *OnMatch[Ctx, A]) (*Matcher[Ctx, A], error) {
	fieldMatchers := []FieldMatcher[Ctx, A]{
		NewFieldMatcher[Ctx, A](predicate, OnMatchAction[Ctx, A](NewAction(action))),
	}
	return NewMatcher(fieldMatchers, onNoMatch)
}
