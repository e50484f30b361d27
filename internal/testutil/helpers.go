package testutil

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
)

// NewTestRNG creates a deterministic random number generator for tests
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// ScriptedSource replays a fixed sequence of values. Each value is reduced
// modulo n. Once the script runs out it keeps returning Fallback % n.
type ScriptedSource struct {
	Values   []int
	Fallback int
	calls    int
}

// NewScriptedSource returns a source that replays values in order.
func NewScriptedSource(values ...int) *ScriptedSource {
	return &ScriptedSource{Values: values}
}

func (s *ScriptedSource) Intn(n int) int {
	v := s.Fallback
	if s.calls < len(s.Values) {
		v = s.Values[s.calls]
	}
	s.calls++
	return v % n
}

// Calls reports how many values have been drawn.
func (s *ScriptedSource) Calls() int { return s.calls }

// AssertPanic asserts that the given function panics
func AssertPanic(t *testing.T, f func(), msgAndArgs ...interface{}) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic but none occurred: %v", msgAndArgs)
		}
	}()
	f()
}
