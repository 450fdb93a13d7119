// Package bitmap provides Bitmap, an immutable bit-packed sequence of booleans.
//
// # Layout
//
// Bits are packed LSB-first: logical index i lives in bit i%8 of byte i/8.
// A bitmap of n bits owns exactly ceil(n/8) bytes and the padding bits of the
// last byte are always zero. This is the Arrow validity bitmap layout.
//
// # Construction
//
// A Bitmap is built in one pass from a source.Source[bool]:
//
//	bm, err := bitmap.New(source.Slice([]bool{true, false, true}))
//
// The builder pre-sizes its buffer from the source's size hint and grows
// (one byte at a time by default) when the hint under-predicts. An empty
// source yields the canonical empty bitmap without allocating.
//
// # Semantics
//
// Bitmap is raw bit storage. IsValid reports a set bit and IsNull a clear one,
// but NullCount is always 0 and ValidCount is always Len: deciding that a
// clear bit means "null" is the job of the structure owning the bitmap.
package bitmap
