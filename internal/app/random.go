package app

import (
	"math/rand/v2"
	"time"
)

// SystemRand draws from the runtime's shared, goroutine-safe generator.
type SystemRand struct{}

func (SystemRand) Float64() float64 { return rand.Float64() }
func (SystemRand) IntN(n int) int   { return rand.IntN(n) }

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// between returns a value in [lo, hi].
func between(r interface{ IntN(int) int }, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}

// uniform returns a value in [lo, hi).
func uniform(r interface{ Float64() float64 }, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

func pick[T any](r interface{ IntN(int) int }, xs []T) T {
	return xs[r.IntN(len(xs))]
}
