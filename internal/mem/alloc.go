package mem

import (
	"fmt"
	"math"
	"math/bits"
	"unsafe"
)

// Alignment is the byte alignment required for AVX-512 (64 bytes).
const Alignment = 64

// anchor backs every canonical empty view. It is allocated once and never written.
var anchor = AllocAligned(Alignment)

// AllocAligned allocates a byte slice of the given size with 64-byte alignment.
// The returned slice is guaranteed to start at a memory address divisible by 64.
//
// Note: This function allocates slightly more memory than requested to ensure alignment.
// The underlying array is kept alive by the returned slice.
func AllocAligned(size int) []byte {
	if size <= 0 {
		return nil
	}

	// Allocate size + alignment to ensure we can find an aligned offset
	totalSize := size + Alignment
	buf := make([]byte, totalSize)

	ptr := unsafe.Pointer(&buf[0]) //nolint:gosec // unsafe is required for memory alignment
	addr := uintptr(ptr)
	offset := (Alignment - (addr & (Alignment - 1))) & (Alignment - 1)

	return buf[offset : offset+uintptr(size) : offset+uintptr(size)]
}

// Layout returns the number of bytes needed for n elements of elemSize bytes.
// It panics if n is negative or the size overflows.
func Layout(n, elemSize int) int {
	if n < 0 || elemSize <= 0 {
		panic(fmt.Sprintf("mem: invalid layout (n=%d, elemSize=%d)", n, elemSize))
	}
	hi, lo := bits.Mul64(uint64(n), uint64(elemSize))
	if hi != 0 || lo > math.MaxInt-Alignment {
		panic(fmt.Sprintf("mem: layout overflow (n=%d, elemSize=%d)", n, elemSize))
	}
	return int(lo)
}

// IsAligned reports whether the first byte of p sits on an Alignment boundary.
func IsAligned(p unsafe.Pointer) bool {
	return uintptr(p)&(Alignment-1) == 0
}

// Empty returns the canonical empty view for T: non-nil, aligned, zero length.
func Empty[T any]() []T {
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(anchor))), 0) //nolint:gosec // aligned anchor
}

// Zero returns a shared one-element view holding the zero value of T. T must
// not be larger than Alignment. The slice must not be modified.
func Zero[T any]() []T {
	if SizeOf[T]() > Alignment {
		panic("mem: Zero element larger than the anchor")
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(anchor))), 1)[:1:1] //nolint:gosec // aligned anchor
}

// Cast reinterprets raw as a slice of n elements of T. raw must be aligned and
// hold at least n*sizeof(T) bytes.
func Cast[T any](raw []byte, n int) []T {
	if n == 0 {
		return Empty[T]()
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(raw))), n) //nolint:gosec // caller guarantees layout
}

// SizeOf returns the size in bytes of T.
func SizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}
