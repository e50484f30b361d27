package core

import (
	"math/rand"
	"time"
)

// Source is the session-wide randomness provider used for combat rolls,
// card draws and setup shuffles. *rand.Rand satisfies it.
type Source interface {
	// Intn returns a non-negative random int in [0, n). n must be > 0.
	Intn(n int) int
}

// NewSessionSource returns a generator seeded once from the current time.
// Create it at session start and share it; never reseed mid-session.
func NewSessionSource() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Shuffle performs a Fisher-Yates shuffle of n elements using src.
func Shuffle(src Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		swap(i, j)
	}
}

// Chance reports whether a percent-chance roll succeeds.
func Chance(src Source, percent int) bool {
	return src.Intn(100) < percent
}
