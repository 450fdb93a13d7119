package colmem

import (
	"github.com/hupe1980/colmem/array"
	"github.com/hupe1980/colmem/bitmap"
	"github.com/hupe1980/colmem/offset"
	"github.com/hupe1980/colmem/validity"
)

// Length is implemented by every structure with a number of elements.
type Length interface {
	Len() int
}

// ArrayData is the read surface of a column.
type ArrayData interface {
	Length
	// IsNull reports whether element i is absent. It panics if i is out of range.
	IsNull(i int) bool
	// IsValid reports whether element i is present. It panics if i is out of range.
	IsValid(i int) bool
	// NullCount returns the number of absent elements.
	NullCount() int
	// ValidCount returns the number of present elements.
	ValidCount() int
}

// ValidityBitmap is implemented by structures that track validity with a bitmap.
type ValidityBitmap interface {
	ValidityBitmap() *bitmap.Bitmap
}

// OffsetBuffer is implemented by offset-based structures.
type OffsetBuffer[O offset.Element] interface {
	// OffsetBuffer returns the N+1 offsets; the first is 0.
	OffsetBuffer() []O
}

var (
	_ ArrayData = (*bitmap.Bitmap)(nil)

	_ Length         = validity.Plain[int32]{}
	_ ArrayData      = validity.Nullable[int32]{}
	_ ValidityBitmap = validity.Nullable[int32]{}

	_ Length              = (*offset.Offset[byte, int32])(nil)
	_ OffsetBuffer[int32] = (*offset.Offset[byte, int32])(nil)
	_ ArrayData           = (*offset.Nullable[byte, int64])(nil)
	_ ValidityBitmap      = (*offset.Nullable[byte, int64])(nil)
	_ OffsetBuffer[int64] = (*offset.Nullable[byte, int64])(nil)

	_ ArrayData           = (*array.Primitive[float64])(nil)
	_ ArrayData           = (*array.NullablePrimitive[int16])(nil)
	_ ValidityBitmap      = (*array.NullablePrimitive[int16])(nil)
	_ ArrayData           = (*array.String[int32])(nil)
	_ OffsetBuffer[int32] = (*array.String[int32])(nil)
	_ ArrayData           = (*array.NullableString[int64])(nil)
	_ ValidityBitmap      = (*array.NullableString[int64])(nil)
)
