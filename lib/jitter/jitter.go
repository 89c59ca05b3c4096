package jitter

import (
	"math/rand"
	"time"
)

func powerOfTwo(n int) int {
	return 1 << n
}

// Jitter returns a random duration in [0, min(maxMs, baseMs * 2^attempts)).
func Jitter(baseMs, maxMs, attempts int) time.Duration {
	// https://aws.amazon.com/blogs/architecture/exponential-backoff-and-jitter/
	if maxMs <= 0 || baseMs <= 0 {
		return time.Duration(0)
	}

	// Cap the attempts so we don't have integer overflows.
	if attemptsMaxMs := baseMs * powerOfTwo(min(max(attempts, 0), 30)); attemptsMaxMs > 0 {
		maxMs = min(maxMs, attemptsMaxMs)
	}

	return time.Duration(rand.Intn(maxMs)) * time.Millisecond
}
