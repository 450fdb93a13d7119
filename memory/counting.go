package memory

import (
	"sync/atomic"
)

// AllocatorStats is a snapshot of a CountingAllocator.
type AllocatorStats struct {
	Allocations   int64
	Reallocations int64
	Frees         int64
	// BytesAllocated is the sum of sizes requested by Allocate and by growing Reallocate calls.
	BytesAllocated int64
	// BytesInUse is the number of bytes currently held by live blocks.
	BytesInUse int64
}

// CountingAllocator wraps an Allocator and counts every call.
type CountingAllocator struct {
	inner Allocator

	allocs   atomic.Int64
	reallocs atomic.Int64
	frees    atomic.Int64
	total    atomic.Int64
	inUse    atomic.Int64
}

// NewCountingAllocator wraps inner. If inner is nil, DefaultAllocator is used.
func NewCountingAllocator(inner Allocator) *CountingAllocator {
	if inner == nil {
		inner = DefaultAllocator
	}
	return &CountingAllocator{inner: inner}
}

// Allocate implements Allocator.
func (c *CountingAllocator) Allocate(size int) ([]byte, error) {
	b, err := c.inner.Allocate(size)
	if err != nil {
		return nil, err
	}
	if size > 0 {
		c.allocs.Add(1)
		c.total.Add(int64(size))
		c.inUse.Add(int64(size))
	}
	return b, nil
}

// Reallocate implements Allocator.
func (c *CountingAllocator) Reallocate(b []byte, size int) ([]byte, error) {
	old := len(b)
	nb, err := c.inner.Reallocate(b, size)
	if err != nil {
		return nil, err
	}
	c.reallocs.Add(1)
	if size > old {
		c.total.Add(int64(size - old))
	}
	c.inUse.Add(int64(len(nb) - old))
	return nb, nil
}

// Free implements Allocator.
func (c *CountingAllocator) Free(b []byte) {
	if len(b) == 0 {
		return
	}
	c.frees.Add(1)
	c.inUse.Add(-int64(len(b)))
	c.inner.Free(b)
}

// Stats returns a snapshot of the counters.
func (c *CountingAllocator) Stats() AllocatorStats {
	return AllocatorStats{
		Allocations:    c.allocs.Load(),
		Reallocations:  c.reallocs.Load(),
		Frees:          c.frees.Load(),
		BytesAllocated: c.total.Load(),
		BytesInUse:     c.inUse.Load(),
	}
}

// Reset zeroes the counters.
func (c *CountingAllocator) Reset() {
	c.allocs.Store(0)
	c.reallocs.Store(0)
	c.frees.Store(0)
	c.total.Store(0)
	c.inUse.Store(0)
}
