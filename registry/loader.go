package registry

import (
	"context"
	"time"

	"github.com/mox-nexus/x.uma"
	"github.com/mox-nexus/x.uma/config"
)

// ActionDecoder turns the string payload carried by a config.ActionConfig
// into the caller's runtime action type A. Config documents only ever
// carry actions as strings (matching config.ActionConfig.Action); Load
// defers to ActionDecoder so a caller can target any A (an enum, a struct
// decoded from JSON embedded in the string, or just string itself via
// IdentityActionDecoder).
type ActionDecoder[A any] func(raw string) (A, error)

// IdentityActionDecoder is the ActionDecoder for A = string: the config
// payload is used verbatim.
func IdentityActionDecoder(raw string) (string, error) { return raw, nil }

// sharedMetrics is process-wide: every Registry[Ctx] shares one Metrics
// value so repeated Registry construction (e.g. in tests or config-reload
// loops) doesn't attempt to re-register Prometheus collectors under the
// same name, which would panic.
var sharedMetrics = NewMetrics()

// Load walks cfg into a constructed *xuma.Matcher[Ctx, A], resolving every
// TypedConfig input/custom-matcher reference against r and decoding action
// payloads via decodeAction. It is the only place type-URL resolution,
// regex compilation, and width/length limit enforcement happen; the
// resulting Matcher carries no reference back to r or cfg afterward.
//
// Load enforces, in addition to xuma.NewMatcher's depth check:
//   - len(matchers) <= MaxFieldMatchers at every level of nesting
//   - len(predicates) <= MaxPredicatesPerCompound for every And/Or
//   - pattern length <= MaxPatternLength (MaxRegexPatternLength for Regex)
func Load[Ctx any, A any](ctx context.Context, r *Registry[Ctx], cfg config.MatcherConfig, decodeAction ActionDecoder[A]) (*xuma.Matcher[Ctx, A], error) {
	start := time.Now()

	var result *xuma.Matcher[Ctx, A]
	err := traceLoad(ctx, len(cfg.Matchers), func(context.Context) (int, error) {
		m, loadErr := loadMatcherConfig(r, cfg, decodeAction)
		if loadErr != nil {
			return 0, loadErr
		}
		result = m
		return m.Depth(), nil
	})

	sharedMetrics.RecordLoad(err == nil, time.Since(start))
	if err != nil {
		return nil, err
	}
	sharedMetrics.RecordDepth(result.Depth())
	return result, nil
}

func loadMatcherConfig[Ctx any, A any](r *Registry[Ctx], cfg config.MatcherConfig, decodeAction ActionDecoder[A]) (*xuma.Matcher[Ctx, A], error) {
	if len(cfg.Matchers) > MaxFieldMatchers {
		sharedMetrics.RecordLimitRejection("field_matchers")
		return nil, &TooManyFieldMatchersConfigError{Count: len(cfg.Matchers), Max: MaxFieldMatchers}
	}

	fieldMatchers := make([]xuma.FieldMatcher[Ctx, A], 0, len(cfg.Matchers))
	for _, fmCfg := range cfg.Matchers {
		fm, err := loadFieldMatcher(r, fmCfg, decodeAction)
		if err != nil {
			return nil, err
		}
		fieldMatchers = append(fieldMatchers, fm)
	}

	var onNoMatch *xuma.OnMatch[Ctx, A]
	if cfg.OnNoMatch != nil {
		om, err := loadOnMatch(r, *cfg.OnNoMatch, decodeAction)
		if err != nil {
			return nil, err
		}
		onNoMatch = &om
	}

	return xuma.NewMatcher(fieldMatchers, onNoMatch)
}

func loadFieldMatcher[Ctx any, A any](r *Registry[Ctx], cfg config.FieldMatcherConfig, decodeAction ActionDecoder[A]) (xuma.FieldMatcher[Ctx, A], error) {
	predicate, err := loadPredicate(r, cfg.Predicate)
	if err != nil {
		return xuma.FieldMatcher[Ctx, A]{}, err
	}
	onMatch, err := loadOnMatch(r, cfg.OnMatch, decodeAction)
	if err != nil {
		return xuma.FieldMatcher[Ctx, A]{}, err
	}
	return xuma.NewFieldMatcher(predicate, onMatch), nil
}

func loadPredicate[Ctx any](r *Registry[Ctx], cfg config.PredicateConfig) (xuma.Predicate[Ctx], error) {
	switch {
	case cfg.Single != nil:
		return loadSinglePredicate(r, *cfg.Single)

	case cfg.And != nil:
		children, err := loadPredicateList(r, cfg.And.Predicates)
		if err != nil {
			return nil, err
		}
		return xuma.NewAndPredicate(children), nil

	case cfg.Or != nil:
		children, err := loadPredicateList(r, cfg.Or.Predicates)
		if err != nil {
			return nil, err
		}
		return xuma.NewOrPredicate(children), nil

	case cfg.Not != nil:
		inner, err := loadPredicate(r, *cfg.Not.Predicate)
		if err != nil {
			return nil, err
		}
		return xuma.NewNotPredicate(inner), nil

	default:
		return nil, &InvalidConfigError{Reason: "predicate config has no variant set"}
	}
}

func loadPredicateList[Ctx any](r *Registry[Ctx], cfgs []config.PredicateConfig) ([]xuma.Predicate[Ctx], error) {
	if len(cfgs) > MaxPredicatesPerCompound {
		sharedMetrics.RecordLimitRejection("predicates")
		return nil, &TooManyPredicatesConfigError{Count: len(cfgs), Max: MaxPredicatesPerCompound}
	}
	children := make([]xuma.Predicate[Ctx], 0, len(cfgs))
	for _, c := range cfgs {
		child, err := loadPredicate(r, c)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func loadSinglePredicate[Ctx any](r *Registry[Ctx], cfg config.SinglePredicateConfig) (xuma.Predicate[Ctx], error) {
	inputFactory, err := r.resolveInput(cfg.Input.TypeURL)
	if err != nil {
		return nil, err
	}
	input, err := inputFactory(cfg.Input.Config)
	if err != nil {
		return nil, &FactoryError{Kind: "input", TypeURL: cfg.Input.TypeURL, Cause: err}
	}

	matcher, err := loadValueMatch(r, cfg.Matcher)
	if err != nil {
		return nil, err
	}

	return xuma.NewSinglePredicate[Ctx](input, matcher), nil
}

func loadValueMatch[Ctx any](r *Registry[Ctx], cfg config.ValueMatch) (xuma.InputMatcher, error) {
	switch {
	case cfg.BuiltIn != nil:
		return compileBuiltIn(r, *cfg.BuiltIn)

	case cfg.Custom != nil:
		factory, err := r.resolveMatcherFactory(cfg.Custom.TypedConfig.TypeURL)
		if err != nil {
			return nil, err
		}
		matcher, err := factory(cfg.Custom.TypedConfig.Config)
		if err != nil {
			return nil, &FactoryError{Kind: "matcher", TypeURL: cfg.Custom.TypedConfig.TypeURL, Cause: err}
		}
		return matcher, nil

	default:
		return nil, &InvalidConfigError{Reason: "value_match config has no variant set"}
	}
}

func compileBuiltIn[Ctx any](r *Registry[Ctx], cfg config.BuiltInMatch) (xuma.InputMatcher, error) {
	if cfg.Variant == "Regex" {
		if len(cfg.Value) > MaxRegexPatternLength {
			sharedMetrics.RecordLimitRejection("regex_pattern_length")
			return nil, &xuma.PatternTooLongError{Variant: cfg.Variant, Length: len(cfg.Value), Max: MaxRegexPatternLength}
		}
		return r.compileRegex(cfg.Value)
	}

	if len(cfg.Value) > MaxPatternLength {
		sharedMetrics.RecordLimitRejection("pattern_length")
		return nil, &xuma.PatternTooLongError{Variant: cfg.Variant, Length: len(cfg.Value), Max: MaxPatternLength}
	}

	switch cfg.Variant {
	case "Exact":
		return xuma.NewExactMatcher(cfg.Value, false), nil
	case "Prefix":
		return xuma.NewPrefixMatcher(cfg.Value, false), nil
	case "Suffix":
		return xuma.NewSuffixMatcher(cfg.Value, false), nil
	case "Contains":
		return xuma.NewContainsMatcher(cfg.Value, false), nil
	default:
		return nil, &InvalidConfigError{Reason: "unknown built-in match variant: " + cfg.Variant}
	}
}

func loadOnMatch[Ctx any, A any](r *Registry[Ctx], cfg config.OnMatchConfig, decodeAction ActionDecoder[A]) (xuma.OnMatch[Ctx, A], error) {
	switch {
	case cfg.Action != nil:
		action, err := decodeAction(cfg.Action.Action)
		if err != nil {
			return xuma.OnMatch[Ctx, A]{}, &ActionDecodeError{Raw: cfg.Action.Action, Cause: err}
		}
		return xuma.OnMatchAction[Ctx, A](xuma.NewAction(action)), nil

	case cfg.Matcher != nil:
		nested, err := loadMatcherConfig(r, cfg.Matcher.Matcher, decodeAction)
		if err != nil {
			return xuma.OnMatch[Ctx, A]{}, err
		}
		return xuma.OnMatchNested[Ctx, A](nested), nil

	default:
		return xuma.OnMatch[Ctx, A]{}, &InvalidConfigError{Reason: "on_match config has no variant set"}
	}
}
