// Package validity selects, at compile time, whether a buffer carries a
// validity bitmap.
//
// Plain[T] holds only values. Nullable[T] holds values plus a bitmap with one
// bit per logical element. Both satisfy Storage[T], so code written once
// against Storage compiles against either shape. The choice is made by naming
// the type: there is no runtime flag, and the Plain path contains no bitmap
// code at all.
//
//	plain, _ := validity.NewPlain(source.Of[int32](1, 2, 3))
//	nullable, _ := validity.NewNullable(source.Of(validity.Some[int32](1), validity.None[int32]()))
package validity
