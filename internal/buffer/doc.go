// Package buffer provides Buffer, an owned, growable, 64-byte aligned block of
// fixed-size elements.
//
// # Ownership
//
// A Buffer exclusively owns its allocation. Only the construction routine
// holding it may grow, shrink or write it; once a Buffer is published inside
// a built value it is read through View only. Release hands the allocation
// back to the allocator that produced it.
//
// # Empty buffers
//
// A Buffer of length zero owns no allocation. View still returns a non-nil,
// aligned, zero-length slice (the canonical empty view), so readers never
// special-case empty buffers.
//
// # Adoption
//
// Adopt wraps a block obtained directly from an allocator. It is the only
// unchecked entry point and lives in an internal package so that only
// construction code inside this module can reach it.
package buffer
