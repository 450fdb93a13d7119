package memory

import (
	"fmt"
)

// Acquirer is a memory budget. resource.Controller implements it.
type Acquirer interface {
	// TryAcquireMemory reserves n bytes without blocking, or returns an error.
	TryAcquireMemory(n int64) error
	// ReleaseMemory returns n previously reserved bytes.
	ReleaseMemory(n int64)
}

// LimitedAllocator charges every block against an Acquirer before delegating.
type LimitedAllocator struct {
	inner Allocator
	acq   Acquirer
}

// NewLimitedAllocator wraps inner with the budget acq.
func NewLimitedAllocator(inner Allocator, acq Acquirer) *LimitedAllocator {
	if inner == nil {
		inner = DefaultAllocator
	}
	return &LimitedAllocator{inner: inner, acq: acq}
}

func (l *LimitedAllocator) acquire(n int) error {
	if l.acq == nil || n <= 0 {
		return nil
	}
	if err := l.acq.TryAcquireMemory(int64(n)); err != nil {
		return fmt.Errorf("%w: %d bytes: %w", ErrMemoryLimit, n, err)
	}
	return nil
}

func (l *LimitedAllocator) release(n int) {
	if l.acq == nil || n <= 0 {
		return
	}
	l.acq.ReleaseMemory(int64(n))
}

// Allocate implements Allocator.
func (l *LimitedAllocator) Allocate(size int) ([]byte, error) {
	if err := l.acquire(size); err != nil {
		return nil, err
	}
	b, err := l.inner.Allocate(size)
	if err != nil {
		l.release(size)
		return nil, err
	}
	return b, nil
}

// Reallocate implements Allocator.
func (l *LimitedAllocator) Reallocate(b []byte, size int) ([]byte, error) {
	delta := max(size, 0) - len(b)
	if err := l.acquire(delta); err != nil {
		return nil, err
	}
	nb, err := l.inner.Reallocate(b, size)
	if err != nil {
		l.release(delta)
		return nil, err
	}
	l.release(-delta)
	return nb, nil
}

// Free implements Allocator.
func (l *LimitedAllocator) Free(b []byte) {
	n := len(b)
	l.inner.Free(b)
	l.release(n)
}
