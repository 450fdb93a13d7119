package memory

import (
	"errors"

	"github.com/hupe1980/colmem/internal/mem"
)

// Alignment is the byte alignment of every block handed out by an Allocator.
const Alignment = mem.Alignment

var (
	// ErrAllocationFailed is returned when the underlying allocator cannot provide memory.
	ErrAllocationFailed = errors.New("memory: allocation failed")
	// ErrMemoryLimit is returned when an allocation would exceed the configured budget.
	ErrMemoryLimit = errors.New("memory: limit exceeded")
)

// Primitive is the set of fixed-size element types a buffer may hold.
// None of them contain Go pointers, so they may live in off-heap memory.
type Primitive interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint |
		~float32 | ~float64
}

// Allocator is the lower allocation layer consumed by buffers.
//
// Implementations must be safe for concurrent use.
type Allocator interface {
	// Allocate returns a zeroed block of exactly size bytes aligned to Alignment.
	// A size of zero returns a nil block.
	Allocate(size int) ([]byte, error)

	// Reallocate grows or shrinks b to size bytes, preserving the first
	// min(len(b), size) bytes. Bytes beyond len(b) are zeroed. The block may move;
	// b must not be used after a successful call.
	Reallocate(b []byte, size int) ([]byte, error)

	// Free releases a block previously returned by Allocate or Reallocate.
	Free(b []byte)
}

// HeapAllocator allocates from the Go heap.
type HeapAllocator struct{}

// DefaultAllocator is the allocator used when none is configured.
var DefaultAllocator Allocator = HeapAllocator{}

// Allocate implements Allocator.
func (HeapAllocator) Allocate(size int) ([]byte, error) {
	if size <= 0 {
		return nil, nil
	}
	return mem.AllocAligned(size), nil
}

// Reallocate implements Allocator.
func (HeapAllocator) Reallocate(b []byte, size int) ([]byte, error) {
	if size <= 0 {
		return nil, nil
	}
	nb := mem.AllocAligned(size)
	copy(nb, b)
	return nb, nil
}

// Free implements Allocator. The garbage collector reclaims heap blocks.
func (HeapAllocator) Free([]byte) {}
