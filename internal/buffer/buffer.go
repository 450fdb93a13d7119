package buffer

import (
	"fmt"

	"github.com/hupe1980/colmem/internal/mem"
	"github.com/hupe1980/colmem/memory"
)

// Buffer is an owned, aligned, growable array of T.
// It is NOT thread-safe while being built.
type Buffer[T memory.Primitive] struct {
	alloc  memory.Allocator
	growth memory.GrowthPolicy
	raw    []byte // the allocation, cap()*sizeof(T) bytes
	n      int    // logical length in elements
}

// New returns an empty Buffer. Nothing is allocated until elements are reserved.
func New[T memory.Primitive](a memory.Allocator, growth memory.GrowthPolicy) *Buffer[T] {
	if a == nil {
		a = memory.DefaultAllocator
	}
	return &Buffer[T]{alloc: a, growth: growth}
}

// Alloc returns an empty Buffer with room for capacity elements.
func Alloc[T memory.Primitive](a memory.Allocator, growth memory.GrowthPolicy, capacity int) (*Buffer[T], error) {
	b := New[T](a, growth)
	if err := b.Reserve(capacity); err != nil {
		return nil, err
	}
	return b, nil
}

// Adopt wraps raw, a block returned by a's Allocate or Reallocate, as a Buffer
// of n elements.
//
// The caller guarantees that raw is exactly one live block of a, that it is
// aligned to memory.Alignment, and that len(raw) >= n*sizeof(T). None of this
// is checked. After the call the Buffer owns raw; the caller must not touch or
// free it.
func Adopt[T memory.Primitive](a memory.Allocator, raw []byte, n int) *Buffer[T] {
	return &Buffer[T]{alloc: a, raw: raw, n: n}
}

// Len returns the number of elements.
func (b *Buffer[T]) Len() int {
	if b == nil {
		return 0
	}
	return b.n
}

// Cap returns the number of elements that fit without reallocating.
func (b *Buffer[T]) Cap() int {
	if b == nil {
		return 0
	}
	return len(b.raw) / mem.SizeOf[T]()
}

// SizeBytes returns the number of bytes held by the allocation.
func (b *Buffer[T]) SizeBytes() int {
	if b == nil {
		return 0
	}
	return len(b.raw)
}

// View returns the first Len elements. The slice aliases the buffer.
func (b *Buffer[T]) View() []T {
	if b == nil {
		return mem.Empty[T]()
	}
	return mem.Cast[T](b.raw, b.n)
}

// Bytes returns the raw bytes of the first Len elements.
func (b *Buffer[T]) Bytes() []byte {
	if b == nil || b.n == 0 {
		return mem.Empty[byte]()
	}
	return b.raw[:b.n*mem.SizeOf[T]()]
}

// Resize reallocates the buffer to hold exactly capacity elements. If capacity
// is below Len, the buffer is truncated.
func (b *Buffer[T]) Resize(capacity int) error {
	if capacity < 0 {
		panic(fmt.Sprintf("buffer: negative capacity %d", capacity))
	}
	size := mem.Layout(capacity, mem.SizeOf[T]())
	if size == len(b.raw) {
		return nil
	}

	var (
		raw []byte
		err error
	)
	switch {
	case len(b.raw) == 0:
		raw, err = b.alloc.Allocate(size)
	default:
		raw, err = b.alloc.Reallocate(b.raw, size)
	}
	if err != nil {
		return err
	}

	b.raw = raw
	b.n = min(b.n, capacity)
	return nil
}

// Reserve ensures room for at least capacity elements, allocating exactly
// capacity if the buffer has to grow.
func (b *Buffer[T]) Reserve(capacity int) error {
	if capacity <= b.Cap() {
		return nil
	}
	return b.Resize(capacity)
}

// Grow ensures room for n more elements, following the growth policy.
func (b *Buffer[T]) Grow(n int) error {
	need := b.n + n
	if need < b.n {
		panic("buffer: length overflow")
	}
	c := b.Cap()
	if need <= c {
		return nil
	}
	return b.Resize(b.growth.Next(c, need))
}

// Push appends v.
func (b *Buffer[T]) Push(v T) error {
	if err := b.Grow(1); err != nil {
		return err
	}
	b.n++
	mem.Cast[T](b.raw, b.n)[b.n-1] = v
	return nil
}

// Append appends vs.
func (b *Buffer[T]) Append(vs ...T) error {
	if len(vs) == 0 {
		return nil
	}
	if err := b.Grow(len(vs)); err != nil {
		return err
	}
	start := b.n
	b.n += len(vs)
	copy(mem.Cast[T](b.raw, b.n)[start:], vs)
	return nil
}

// ShrinkToFit releases capacity beyond Len.
func (b *Buffer[T]) ShrinkToFit() error {
	if b.Cap() == b.n {
		return nil
	}
	return b.Resize(b.n)
}

// Clone returns a deep copy with no spare capacity.
func (b *Buffer[T]) Clone() (*Buffer[T], error) {
	if b == nil {
		return nil, nil
	}
	c, err := Alloc[T](b.alloc, b.growth, b.n)
	if err != nil {
		return nil, err
	}
	if err := c.Append(b.View()...); err != nil {
		c.Release()
		return nil, err
	}
	return c, nil
}

// Release frees the allocation and leaves the buffer empty. It is idempotent.
func (b *Buffer[T]) Release() {
	if b == nil {
		return
	}
	if len(b.raw) > 0 {
		b.alloc.Free(b.raw)
	}
	b.raw = nil
	b.n = 0
}
