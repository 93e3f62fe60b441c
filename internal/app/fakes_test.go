package app_test

import (
	"time"
)

// ---- fakes ----

// fakeRand returns the same draw every time.
type fakeRand struct {
	f float64
	i int
}

func (r fakeRand) Float64() float64 { return r.f }
func (r fakeRand) IntN(n int) int   { return r.i % n }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var july = fixedClock{t: time.Date(2025, time.July, 14, 9, 0, 0, 0, time.UTC)}
