// Package testutil provides testing utilities for colmem.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG and generators for the inputs the
// builders consume: boolean sequences, nullability masks and variable-length
// items.
//
//	rng := testutil.NewRNG(seed)
//	bits := rng.Bools(1000, 0.5)
//	items := testutil.Slices(rng, 100, 8, func(r *testutil.RNG) byte { return byte(r.Intn(256)) })
package testutil
