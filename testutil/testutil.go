package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic test data
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Bools returns n booleans, each true with probability p.
func (r *RNG) Bools(n int, p float64) []bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]bool, n)
	for i := range out {
		out[i] = r.rand.Float64() < p
	}
	return out
}

// Slices returns n slices of random length in [0, maxLen], filled by gen.
func Slices[T any](r *RNG, n, maxLen int, gen func(*RNG) T) [][]T {
	out := make([][]T, n)
	for i := range out {
		item := make([]T, r.Intn(maxLen+1))
		for j := range item {
			item[j] = gen(r)
		}
		out[i] = item
	}
	return out
}

// Strings returns n random lowercase strings of length in [0, maxLen].
func (r *RNG) Strings(n, maxLen int) []string {
	items := Slices(r, n, maxLen, func(r *RNG) byte { return byte('a' + r.Intn(26)) })
	out := make([]string, n)
	for i, item := range items {
		out[i] = string(item)
	}
	return out
}
