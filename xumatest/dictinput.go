// Package xumatest provides convenience DataInput implementations for
// tests and examples. These are NOT domain adapters — they exist to
// reduce boilerplate when exploring xuma with dict-shaped contexts. For a
// real domain, implement xuma.DataInput against your own context type.
package xumatest

import (
	"fmt"

	"github.com/mox-nexus/x.uma"
	"github.com/mox-nexus/x.uma/registry"
)

// TypeURL is the registered type URL for DictInput, matching the
// rumi-test convention used across the reference implementations.
const TypeURL = "xuma.test.v1.StringInput"

// DictInput extracts a value by key from a map[string]string context. It
// is the simplest possible DataInput: useful for tests, examples, and
// quick exploration without defining a bespoke context type.
type DictInput struct {
	Key string
}

// Get implements xuma.DataInput[map[string]string].
func (d DictInput) Get(ctx map[string]string) xuma.MatchingData {
	value, ok := ctx[d.Key]
	if !ok {
		return xuma.Absent
	}
	return xuma.StringData(value)
}

// Register registers the DictInput factory on builder under TypeURL, with
// a single config field: {"key": "field_name"}.
func Register(builder *registry.Builder[map[string]string]) *registry.Builder[map[string]string] {
	return builder.Input(TypeURL, dictInputFactory)
}

func dictInputFactory(cfg map[string]any) (xuma.DataInput[map[string]string], error) {
	raw, ok := cfg["key"]
	if !ok {
		return nil, fmt.Errorf("xumatest: DictInput requires a 'key' field (string)")
	}
	key, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("xumatest: DictInput 'key' field must be a string, got %T", raw)
	}
	return DictInput{Key: key}, nil
}
