package memory

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/hupe1980/colmem/internal/mmap"
)

// ErrArenaClosed is returned by an ArenaAllocator after Close.
var ErrArenaClosed = errors.New("memory: arena is closed")

// DefaultArenaChunkSize is the default size of an arena chunk (1 MiB).
const DefaultArenaChunkSize = 1 << 20

// ArenaStats is a snapshot of an ArenaAllocator.
//
//   - BytesReserved: memory currently mapped for chunks
//   - BytesUsed: bytes requested by live allocations since the last Reset
//   - BytesWasted: alignment padding since the last Reset
//   - ChunksAllocated and TotalAllocs are cumulative
type ArenaStats struct {
	ChunksAllocated int64
	ActiveChunks    int64
	BytesReserved   int64
	BytesUsed       int64
	BytesWasted     int64
	TotalAllocs     int64
}

type arenaStats struct {
	chunksAllocated atomic.Int64
	activeChunks    atomic.Int64
	bytesReserved   atomic.Int64
	bytesUsed       atomic.Int64
	bytesWasted     atomic.Int64
	totalAllocs     atomic.Int64
}

type arenaChunk struct {
	data    []byte
	mapping *mmap.Mapping
	offset  atomic.Int64 // accessed without the lock
}

// ArenaAllocator carves blocks out of large anonymous mappings.
//
// Free is a no-op: memory comes back all at once through Reset or Close, so
// every value built from the arena must be dropped before either is called.
// Allocation is safe for concurrent use; Reset and Close are not safe
// concurrently with allocation.
type ArenaAllocator struct {
	chunkSize int
	acq       Acquirer

	mu      sync.Mutex
	chunks  []*arenaChunk // chunkSize chunks; chunks[0] survives Reset
	large   []*arenaChunk // dedicated chunks for blocks above chunkSize
	current atomic.Pointer[arenaChunk]
	closed  bool

	stats arenaStats
}

// ArenaOption configures an ArenaAllocator.
type ArenaOption func(*ArenaAllocator)

// WithArenaAcquirer charges every chunk against acq.
func WithArenaAcquirer(acq Acquirer) ArenaOption {
	return func(a *ArenaAllocator) {
		a.acq = acq
	}
}

// NewArenaAllocator creates an arena with chunks of chunkSize bytes, rounded
// up to a multiple of Alignment. Nothing is mapped until the first Allocate.
func NewArenaAllocator(chunkSize int, opts ...ArenaOption) *ArenaAllocator {
	if chunkSize <= 0 {
		chunkSize = DefaultArenaChunkSize
	}
	a := &ArenaAllocator{chunkSize: alignUp(chunkSize)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func alignUp(n int) int {
	return (n + Alignment - 1) &^ (Alignment - 1)
}

// Allocate implements Allocator.
func (a *ArenaAllocator) Allocate(size int) ([]byte, error) {
	if size <= 0 {
		return nil, nil
	}
	aligned := alignUp(size)
	if aligned > a.chunkSize {
		return a.allocLarge(size, aligned)
	}

	for {
		curr := a.current.Load()
		if curr != nil {
			if b, ok := a.tryAlloc(curr, size, aligned); ok {
				return b, nil
			}
		}

		a.mu.Lock()
		// Double check under lock
		if a.current.Load() != curr {
			a.mu.Unlock()
			continue
		}
		c, err := a.newChunkLocked(a.chunkSize)
		if err != nil {
			a.mu.Unlock()
			return nil, err
		}
		a.chunks = append(a.chunks, c)
		a.current.Store(c)
		a.mu.Unlock()
	}
}

func (a *ArenaAllocator) tryAlloc(c *arenaChunk, size, aligned int) ([]byte, bool) {
	for {
		old := c.offset.Load()
		next := old + int64(aligned)
		if next > int64(len(c.data)) {
			return nil, false
		}
		if c.offset.CompareAndSwap(old, next) {
			a.stats.bytesUsed.Add(int64(size))
			a.stats.bytesWasted.Add(int64(aligned - size))
			a.stats.totalAllocs.Add(1)
			return c.data[old : old+int64(size) : old+int64(size)], true
		}
	}
}

func (a *ArenaAllocator) allocLarge(size, aligned int) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	c, err := a.newChunkLocked(aligned)
	if err != nil {
		return nil, err
	}
	c.offset.Store(int64(aligned))
	a.large = append(a.large, c)

	a.stats.bytesUsed.Add(int64(size))
	a.stats.bytesWasted.Add(int64(aligned - size))
	a.stats.totalAllocs.Add(1)
	return c.data[:size:size], nil
}

func (a *ArenaAllocator) newChunkLocked(size int) (*arenaChunk, error) {
	if a.closed {
		return nil, fmt.Errorf("%w: %w", ErrAllocationFailed, ErrArenaClosed)
	}
	if a.acq != nil {
		if err := a.acq.TryAcquireMemory(int64(size)); err != nil {
			return nil, fmt.Errorf("%w: arena chunk of %d bytes: %w", ErrMemoryLimit, size, err)
		}
	}

	// Off-heap, so large arenas add no GC pressure.
	m, err := mmap.MapAnon(size)
	if err != nil {
		if a.acq != nil {
			a.acq.ReleaseMemory(int64(size))
		}
		return nil, fmt.Errorf("%w: map arena chunk: %w", ErrAllocationFailed, err)
	}

	a.stats.chunksAllocated.Add(1)
	a.stats.activeChunks.Add(1)
	a.stats.bytesReserved.Add(int64(size))
	return &arenaChunk{data: m.Bytes(), mapping: m}, nil
}

// Reallocate implements Allocator. The most recent block of the current chunk
// grows in place while the chunk has room; shrinking always happens in place.
// Otherwise the block is copied and its old space stays reserved until Reset.
func (a *ArenaAllocator) Reallocate(b []byte, size int) ([]byte, error) {
	if len(b) == 0 {
		return a.Allocate(size)
	}
	if size <= 0 {
		return nil, nil
	}
	if size <= len(b) {
		a.stats.bytesUsed.Add(int64(size - len(b)))
		return b[:size:size], nil
	}

	if c := a.current.Load(); c != nil {
		if nb, ok := a.extend(c, b, size); ok {
			return nb, nil
		}
	}

	nb, err := a.Allocate(size)
	if err != nil {
		return nil, err
	}
	copy(nb, b)
	a.stats.bytesUsed.Add(-int64(len(b)))
	return nb, nil
}

// extend grows b in place if it is the last block carved from c.
func (a *ArenaAllocator) extend(c *arenaChunk, b []byte, size int) ([]byte, bool) {
	base := uintptr(unsafe.Pointer(unsafe.SliceData(c.data))) //nolint:gosec // address comparison only
	p := uintptr(unsafe.Pointer(unsafe.SliceData(b)))         //nolint:gosec // address comparison only
	if p < base || p >= base+uintptr(len(c.data)) {
		return nil, false
	}

	start := int64(p - base)
	oldEnd := start + int64(alignUp(len(b)))
	newEnd := start + int64(alignUp(size))
	if newEnd > int64(len(c.data)) || !c.offset.CompareAndSwap(oldEnd, newEnd) {
		return nil, false
	}

	nb := c.data[start : start+int64(size) : start+int64(size)]
	clear(nb[len(b):])
	a.stats.bytesUsed.Add(int64(size - len(b)))
	a.stats.bytesWasted.Add(newEnd - oldEnd - int64(size-len(b)))
	return nb, true
}

// Free implements Allocator. Arena blocks are reclaimed by Reset and Close.
func (a *ArenaAllocator) Free([]byte) {}

// Reset discards every allocation, keeping the first chunk for reuse.
// All blocks handed out before Reset become invalid.
func (a *ArenaAllocator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.chunks) > 0 {
		first := a.chunks[0]
		a.unmapLocked(a.chunks[1:])
		clear(first.data[:first.offset.Load()])
		first.offset.Store(0)
		a.chunks = a.chunks[:1]
		a.current.Store(first)
	}
	a.unmapLocked(a.large)
	a.large = nil

	a.stats.bytesUsed.Store(0)
	a.stats.bytesWasted.Store(0)
}

// Close unmaps every chunk. The arena cannot be used afterwards.
func (a *ArenaAllocator) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true
	a.current.Store(nil)

	a.unmapLocked(a.chunks)
	a.unmapLocked(a.large)
	a.chunks, a.large = nil, nil

	a.stats.bytesUsed.Store(0)
	a.stats.bytesWasted.Store(0)
	return nil
}

func (a *ArenaAllocator) unmapLocked(chunks []*arenaChunk) {
	for _, c := range chunks {
		size := int64(len(c.data))
		_ = c.mapping.Close()
		if a.acq != nil {
			a.acq.ReleaseMemory(size)
		}
		a.stats.activeChunks.Add(-1)
		a.stats.bytesReserved.Add(-size)
	}
}

// Stats returns a snapshot of the arena counters.
func (a *ArenaAllocator) Stats() ArenaStats {
	return ArenaStats{
		ChunksAllocated: a.stats.chunksAllocated.Load(),
		ActiveChunks:    a.stats.activeChunks.Load(),
		BytesReserved:   a.stats.bytesReserved.Load(),
		BytesUsed:       a.stats.bytesUsed.Load(),
		BytesWasted:     a.stats.bytesWasted.Load(),
		TotalAllocs:     a.stats.totalAllocs.Load(),
	}
}

// Usage returns the used share of reserved memory in percent.
func (a *ArenaAllocator) Usage() float64 {
	stats := a.Stats()
	if stats.BytesReserved == 0 {
		return 0
	}
	return float64(stats.BytesUsed) / float64(stats.BytesReserved) * 100
}

func (a *ArenaAllocator) String() string {
	stats := a.Stats()
	return fmt.Sprintf(
		"Arena{chunks: %d, reserved: %.2f MB, used: %.2f MB, wasted: %.2f KB, usage: %.1f%%, allocs: %d}",
		stats.ActiveChunks,
		float64(stats.BytesReserved)/(1024*1024),
		float64(stats.BytesUsed)/(1024*1024),
		float64(stats.BytesWasted)/1024,
		a.Usage(),
		stats.TotalAllocs,
	)
}
