package service

import "math/rand/v2"

// Rand is the randomness source used for shuffling and sampling.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand uses the process-wide math/rand/v2 generator, safe for concurrent use.
var DefaultRand Rand = globalRand{}

// Shuffle returns a copy of items in uniformly random order. The input is not modified.
func Shuffle[T any](rng Rand, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)

	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}

	return out
}

// Sample returns up to n items drawn without replacement.
func Sample[T any](rng Rand, items []T, n int) []T {
	n = max(n, 0)
	n = min(n, len(items))
	return Shuffle(rng, items)[:n]
}
