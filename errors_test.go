package xuma

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMatcher_EmptyContext(t *testing.T) {
	_, err := NewMatcher[map[string]string, string](nil, nil)
	assert.ErrorIs(t, err, ErrEmptyContext)
}

func TestDepthExceededError_Message(t *testing.T) {
	err := &DepthExceededError{Depth: 40, Max: 32}
	assert.Contains(t, err.Error(), "40")
	assert.Contains(t, err.Error(), "32")
}

func TestPatternTooLongError_Message(t *testing.T) {
	err := &PatternTooLongError{Variant: "Exact", Length: 10000, Max: 8192}
	assert.Contains(t, err.Error(), "Exact")
	assert.Contains(t, err.Error(), "10000")
}

func TestInvalidRegexError_Unwrap(t *testing.T) {
	cause := errors.New("backreference not supported")
	err := &InvalidRegexError{Pattern: `(a)\1`, Cause: cause}
	assert.ErrorIs(t, err, cause)
}
