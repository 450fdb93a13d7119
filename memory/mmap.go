package memory

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/hupe1980/colmem/internal/mmap"
)

// MmapAllocator backs every block with its own anonymous mapping, outside the
// Go heap. Blocks are page-aligned and must be released with Free (which
// Release on a built value does); unreleased blocks leak until process exit.
type MmapAllocator struct {
	mu       sync.Mutex
	mappings map[uintptr]*mmap.Mapping
}

// NewMmapAllocator creates an allocator backed by anonymous mappings.
func NewMmapAllocator() *MmapAllocator {
	return &MmapAllocator{
		mappings: make(map[uintptr]*mmap.Mapping),
	}
}

func addrOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b))) //nolint:gosec // identity only
}

// Allocate implements Allocator.
func (a *MmapAllocator) Allocate(size int) ([]byte, error) {
	if size <= 0 {
		return nil, nil
	}
	m, err := mmap.MapAnon(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAllocationFailed, err)
	}
	b := m.Bytes()[:size:size]

	a.mu.Lock()
	a.mappings[addrOf(b)] = m
	a.mu.Unlock()

	return b, nil
}

// Reallocate implements Allocator. A block shrinks in place and grows in place
// while its mapping has room; otherwise it moves to a new mapping.
func (a *MmapAllocator) Reallocate(b []byte, size int) ([]byte, error) {
	if len(b) == 0 {
		return a.Allocate(size)
	}
	if size <= 0 {
		a.Free(b)
		return nil, nil
	}

	a.mu.Lock()
	m := a.mappings[addrOf(b)]
	a.mu.Unlock()

	if m != nil && size <= m.Size() {
		nb := m.Bytes()[:size:size]
		if size > len(b) {
			clear(nb[len(b):])
		}
		return nb, nil
	}

	nb, err := a.Allocate(size)
	if err != nil {
		return nil, err
	}
	copy(nb, b)
	a.Free(b)
	return nb, nil
}

// Free implements Allocator.
func (a *MmapAllocator) Free(b []byte) {
	if len(b) == 0 {
		return
	}
	a.mu.Lock()
	m, ok := a.mappings[addrOf(b)]
	delete(a.mappings, addrOf(b))
	a.mu.Unlock()

	if ok {
		_ = m.Close()
	}
}

// Live returns the number of mappings that have not been freed.
func (a *MmapAllocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.mappings)
}
