package validity

import (
	"github.com/hupe1980/colmem/bitmap"
	"github.com/hupe1980/colmem/internal/buffer"
	"github.com/hupe1980/colmem/memory"
)

// Storage is the read surface shared by Plain and Nullable.
type Storage[T memory.Primitive] interface {
	// Len returns the number of stored values.
	Len() int
	// Values returns the stored values. The slice must not be modified.
	Values() []T
	// SizeBytes returns the number of bytes owned by the storage.
	SizeBytes() int
	// Release returns every buffer to its allocator.
	Release()
}

var (
	_ Storage[int32] = Plain[int32]{}
	_ Storage[int32] = Nullable[int32]{}
)

// Plain stores values without validity.
type Plain[T memory.Primitive] struct {
	buf *buffer.Buffer[T]
}

// Len implements Storage.
func (p Plain[T]) Len() int {
	return p.buf.Len()
}

// Values implements Storage.
func (p Plain[T]) Values() []T {
	return p.buf.View()
}

// Bytes returns the raw little-endian layout of the values.
func (p Plain[T]) Bytes() []byte {
	return p.buf.Bytes()
}

// SizeBytes implements Storage.
func (p Plain[T]) SizeBytes() int {
	return p.buf.SizeBytes()
}

// Release implements Storage.
func (p Plain[T]) Release() {
	p.buf.Release()
}

// Nullable stores values together with a validity bitmap holding one bit per
// logical element. For element buffers the bitmap has Len bits; for boundary
// buffers (offsets) it has Len-1.
type Nullable[T memory.Primitive] struct {
	Plain[T]
	validity *bitmap.Bitmap
}

// ValidityBitmap returns the validity bitmap.
func (n Nullable[T]) ValidityBitmap() *bitmap.Bitmap {
	if n.validity == nil {
		return &bitmap.Bitmap{}
	}
	return n.validity
}

// IsValid reports whether element i is present. It panics if i is out of range.
func (n Nullable[T]) IsValid(i int) bool {
	return n.ValidityBitmap().IsValid(i)
}

// IsNull reports whether element i is absent. It panics if i is out of range.
func (n Nullable[T]) IsNull(i int) bool {
	return n.ValidityBitmap().IsNull(i)
}

// NullCount returns the number of absent elements.
func (n Nullable[T]) NullCount() int {
	return n.ValidityBitmap().CountZeros()
}

// ValidCount returns the number of present elements.
func (n Nullable[T]) ValidCount() int {
	return n.ValidityBitmap().CountOnes()
}

// SizeBytes implements Storage.
func (n Nullable[T]) SizeBytes() int {
	return n.Plain.SizeBytes() + n.ValidityBitmap().SizeBytes()
}

// Release implements Storage.
func (n Nullable[T]) Release() {
	n.Plain.Release()
	if n.validity != nil {
		n.validity.Release()
	}
}
