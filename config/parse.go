package config

import (
	"fmt"
	"sort"
)

// stringMatchVariants are the recognized value_match keys, matching the
// reference implementation's serde-style variant names.
var stringMatchVariants = map[string]bool{
	"Exact":    true,
	"Prefix":   true,
	"Suffix":   true,
	"Contains": true,
	"Regex":    true,
}

// ParseError reports a structural problem found while parsing a raw
// document into a MatcherConfig. Path is a dotted/bracketed JSON-pointer-ish
// location (e.g. "matchers[2].predicate.type") to help locate the offending
// node in a large document.
type ParseError struct {
	Path    string
	Message string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("config: %s", e.Message)
	}
	return fmt.Sprintf("config: %s: %s", e.Path, e.Message)
}

func errf(path, format string, args ...any) *ParseError {
	return &ParseError{Path: path, Message: fmt.Sprintf(format, args...)}
}

// Parse parses a decoded document (as produced by Decode, or handed in
// directly by a caller that already has a map[string]any) into a
// MatcherConfig. It performs no type-URL resolution and no regex
// compilation — those happen later, at registry.Load time.
func Parse(data map[string]any) (MatcherConfig, error) {
	return parseMatcherConfig(data, "")
}

func parseMatcherConfig(data map[string]any, path string) (MatcherConfig, error) {
	rawMatchers, ok := data["matchers"]
	if !ok {
		return MatcherConfig{}, errf(path, "missing required field 'matchers'")
	}
	list, ok := rawMatchers.([]any)
	if !ok {
		return MatcherConfig{}, errf(joinPath(path, "matchers"), "must be a list, got %T", rawMatchers)
	}

	matchers := make([]FieldMatcherConfig, 0, len(list))
	for i, raw := range list {
		itemPath := fmt.Sprintf("%s[%d]", joinPath(path, "matchers"), i)
		fm, err := parseFieldMatcher(raw, itemPath)
		if err != nil {
			return MatcherConfig{}, err
		}
		matchers = append(matchers, fm)
	}

	cfg := MatcherConfig{Matchers: matchers}
	if rawOnNoMatch, present := data["on_no_match"]; present {
		onNoMatch, err := parseOnMatch(rawOnNoMatch, joinPath(path, "on_no_match"))
		if err != nil {
			return MatcherConfig{}, err
		}
		cfg.OnNoMatch = &onNoMatch
	}
	return cfg, nil
}

func parseFieldMatcher(raw any, path string) (FieldMatcherConfig, error) {
	data, ok := raw.(map[string]any)
	if !ok {
		return FieldMatcherConfig{}, errf(path, "field_matcher must be a map, got %T", raw)
	}
	rawPredicate, ok := data["predicate"]
	if !ok {
		return FieldMatcherConfig{}, errf(path, "missing required field 'predicate'")
	}
	rawOnMatch, ok := data["on_match"]
	if !ok {
		return FieldMatcherConfig{}, errf(path, "missing required field 'on_match'")
	}

	predicate, err := parsePredicate(rawPredicate, joinPath(path, "predicate"))
	if err != nil {
		return FieldMatcherConfig{}, err
	}
	onMatch, err := parseOnMatch(rawOnMatch, joinPath(path, "on_match"))
	if err != nil {
		return FieldMatcherConfig{}, err
	}
	return FieldMatcherConfig{Predicate: predicate, OnMatch: onMatch}, nil
}

func parsePredicate(raw any, path string) (PredicateConfig, error) {
	data, ok := raw.(map[string]any)
	if !ok {
		return PredicateConfig{}, errf(path, "predicate must be a map, got %T", raw)
	}
	rawType, ok := data["type"]
	if !ok {
		return PredicateConfig{}, errf(path, "missing required field 'type'")
	}
	predType, ok := rawType.(string)
	if !ok {
		return PredicateConfig{}, errf(path, "'type' must be a string, got %T", rawType)
	}

	switch predType {
	case "single":
		single, err := parseSinglePredicate(data, path)
		if err != nil {
			return PredicateConfig{}, err
		}
		return PredicateConfig{Single: &single}, nil

	case "and":
		children, err := parsePredicateList(data, path)
		if err != nil {
			return PredicateConfig{}, err
		}
		return PredicateConfig{And: &AndPredicateConfig{Predicates: children}}, nil

	case "or":
		children, err := parsePredicateList(data, path)
		if err != nil {
			return PredicateConfig{}, err
		}
		return PredicateConfig{Or: &OrPredicateConfig{Predicates: children}}, nil

	case "not":
		rawInner, ok := data["predicate"]
		if !ok {
			return PredicateConfig{}, errf(path, "not predicate missing required field 'predicate'")
		}
		inner, err := parsePredicate(rawInner, joinPath(path, "predicate"))
		if err != nil {
			return PredicateConfig{}, err
		}
		return PredicateConfig{Not: &NotPredicateConfig{Predicate: &inner}}, nil

	default:
		return PredicateConfig{}, errf(path, "unknown predicate type: %q", predType)
	}
}

func parsePredicateList(data map[string]any, path string) ([]PredicateConfig, error) {
	raw, ok := data["predicates"]
	if !ok {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, errf(joinPath(path, "predicates"), "must be a list, got %T", raw)
	}
	children := make([]PredicateConfig, 0, len(list))
	for i, item := range list {
		itemPath := fmt.Sprintf("%s[%d]", joinPath(path, "predicates"), i)
		child, err := parsePredicate(item, itemPath)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func parseSinglePredicate(data map[string]any, path string) (SinglePredicateConfig, error) {
	rawInput, ok := data["input"]
	if !ok {
		return SinglePredicateConfig{}, errf(path, "single predicate missing required field 'input'")
	}
	input, err := parseTypedConfig(rawInput, joinPath(path, "input"))
	if err != nil {
		return SinglePredicateConfig{}, err
	}

	_, hasValueMatch := data["value_match"]
	_, hasCustomMatch := data["custom_match"]
	if hasValueMatch && hasCustomMatch {
		return SinglePredicateConfig{}, errf(path, "exactly one of 'value_match' or 'custom_match' must be set, got both")
	}
	if !hasValueMatch && !hasCustomMatch {
		return SinglePredicateConfig{}, errf(path, "one of 'value_match' or 'custom_match' is required")
	}

	var matcher ValueMatch
	if hasValueMatch {
		builtIn, err := parseValueMatch(data["value_match"], joinPath(path, "value_match"))
		if err != nil {
			return SinglePredicateConfig{}, err
		}
		matcher = ValueMatch{BuiltIn: &builtIn}
	} else {
		custom, err := parseTypedConfig(data["custom_match"], joinPath(path, "custom_match"))
		if err != nil {
			return SinglePredicateConfig{}, err
		}
		matcher = ValueMatch{Custom: &CustomMatch{TypedConfig: custom}}
	}

	return SinglePredicateConfig{Input: input, Matcher: matcher}, nil
}

func parseValueMatch(raw any, path string) (BuiltInMatch, error) {
	data, ok := raw.(map[string]any)
	if !ok {
		return BuiltInMatch{}, errf(path, "value_match must be a map, got %T", raw)
	}
	for variant := range stringMatchVariants {
		rawValue, ok := data[variant]
		if !ok {
			continue
		}
		value, ok := rawValue.(string)
		if !ok {
			return BuiltInMatch{}, errf(path, "value_match %s value must be a string, got %T", variant, rawValue)
		}
		return BuiltInMatch{Variant: variant, Value: value}, nil
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	expected := sortedVariants()
	return BuiltInMatch{}, errf(path, "value_match must contain one of %v, got keys: %v", expected, keys)
}

func sortedVariants() []string {
	variants := make([]string, 0, len(stringMatchVariants))
	for v := range stringMatchVariants {
		variants = append(variants, v)
	}
	sort.Strings(variants)
	return variants
}

func parseOnMatch(raw any, path string) (OnMatchConfig, error) {
	data, ok := raw.(map[string]any)
	if !ok {
		return OnMatchConfig{}, errf(path, "on_match must be a map, got %T", raw)
	}
	rawType, ok := data["type"]
	if !ok {
		return OnMatchConfig{}, errf(path, "missing required field 'type'")
	}
	omType, ok := rawType.(string)
	if !ok {
		return OnMatchConfig{}, errf(path, "'type' must be a string, got %T", rawType)
	}

	switch omType {
	case "action":
		rawAction, ok := data["action"]
		if !ok {
			return OnMatchConfig{}, errf(path, "action on_match missing required field 'action'")
		}
		action, ok := rawAction.(string)
		if !ok {
			return OnMatchConfig{}, errf(joinPath(path, "action"), "must be a string, got %T", rawAction)
		}
		return OnMatchConfig{Action: &ActionConfig{Action: action}}, nil

	case "matcher":
		rawMatcher, ok := data["matcher"]
		if !ok {
			return OnMatchConfig{}, errf(path, "matcher on_match missing required field 'matcher'")
		}
		nestedData, ok := rawMatcher.(map[string]any)
		if !ok {
			return OnMatchConfig{}, errf(joinPath(path, "matcher"), "must be a map, got %T", rawMatcher)
		}
		nested, err := parseMatcherConfig(nestedData, joinPath(path, "matcher"))
		if err != nil {
			return OnMatchConfig{}, err
		}
		return OnMatchConfig{Matcher: &MatcherOnMatchConfig{Matcher: nested}}, nil

	default:
		return OnMatchConfig{}, errf(path, "unknown on_match type: %q", omType)
	}
}

func parseTypedConfig(raw any, path string) (TypedConfig, error) {
	data, ok := raw.(map[string]any)
	if !ok {
		return TypedConfig{}, errf(path, "typed_config must be a map, got %T", raw)
	}
	rawTypeURL, ok := data["type_url"]
	if !ok {
		return TypedConfig{}, errf(path, "missing required field 'type_url'")
	}
	typeURL, ok := rawTypeURL.(string)
	if !ok {
		return TypedConfig{}, errf(joinPath(path, "type_url"), "must be a string, got %T", rawTypeURL)
	}

	config := map[string]any{}
	if rawConfig, present := data["config"]; present {
		m, ok := rawConfig.(map[string]any)
		if !ok {
			return TypedConfig{}, errf(joinPath(path, "config"), "must be a map, got %T", rawConfig)
		}
		config = m
	}

	return TypedConfig{TypeURL: typeURL, Config: config}, nil
}

func joinPath(base, segment string) string {
	if base == "" {
		return segment
	}
	return base + "." + segment
}
