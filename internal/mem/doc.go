// Package mem provides memory allocation utilities.
//
// # Aligned Allocation
//
// Provides 64-byte aligned allocation (AVX-512 friendly). Every buffer in the
// module starts at an address divisible by Alignment, including empty ones,
// which share a single canonical zero-length view.
//
// # Layout
//
// Layout computes the byte size of n elements and panics when the product
// does not fit in an int. Callers treat that as an unrecoverable misuse.
package mem
