package transform

import (
	"math"
	"time"
)

// WaitFunc maps a 0-based retry attempt number to the duration to wait
// before the next attempt. It is never consulted before the first attempt.
type WaitFunc func(attempt int) time.Duration

// ExponentialBackoff returns the base^attempt seconds policy.
func ExponentialBackoff(base float64) WaitFunc {
	return func(attempt int) time.Duration {
		return time.Duration(math.Pow(base, float64(attempt)) * float64(time.Second))
	}
}

// NoWait is a zero-delay policy for tests.
func NoWait(int) time.Duration { return 0 }
