package memory

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aligned(b []byte) bool {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))%Alignment == 0
}

func testAllocator(t *testing.T, a Allocator) {
	t.Helper()

	t.Run("allocate", func(t *testing.T) {
		b, err := a.Allocate(100)
		require.NoError(t, err)
		require.Len(t, b, 100)
		assert.True(t, aligned(b))
		for _, v := range b {
			assert.Zero(t, v)
		}
		a.Free(b)
	})

	t.Run("allocate zero", func(t *testing.T) {
		b, err := a.Allocate(0)
		require.NoError(t, err)
		assert.Nil(t, b)
	})

	t.Run("grow preserves prefix", func(t *testing.T) {
		b, err := a.Allocate(3)
		require.NoError(t, err)
		copy(b, []byte{1, 2, 3})

		b, err = a.Reallocate(b, 200)
		require.NoError(t, err)
		require.Len(t, b, 200)
		assert.True(t, aligned(b))
		assert.Equal(t, []byte{1, 2, 3}, b[:3])
		assert.Zero(t, b[3])
		assert.Zero(t, b[199])
		a.Free(b)
	})

	t.Run("shrink preserves prefix", func(t *testing.T) {
		b, err := a.Allocate(64)
		require.NoError(t, err)
		for i := range b {
			b[i] = byte(i)
		}

		b, err = a.Reallocate(b, 5)
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 1, 2, 3, 4}, b)

		// Growing again must not resurrect stale bytes.
		b, err = a.Reallocate(b, 10)
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 1, 2, 3, 4, 0, 0, 0, 0, 0}, b)
		a.Free(b)
	})
}

func TestHeapAllocator(t *testing.T) {
	testAllocator(t, HeapAllocator{})
}

func TestMmapAllocator(t *testing.T) {
	a := NewMmapAllocator()
	testAllocator(t, a)
	assert.Equal(t, 0, a.Live())

	b, err := a.Allocate(10)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Live())

	b, err = a.Reallocate(b, 1<<16)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Live())

	a.Free(b)
	assert.Equal(t, 0, a.Live())

	// Freeing foreign or empty blocks is harmless.
	a.Free(nil)
	a.Free(make([]byte, 4))
	assert.Equal(t, 0, a.Live())
}

func TestCountingAllocator(t *testing.T) {
	c := NewCountingAllocator(nil)
	testAllocator(t, c)

	c.Reset()
	assert.Equal(t, AllocatorStats{}, c.Stats())

	b, err := c.Allocate(16)
	require.NoError(t, err)
	b, err = c.Reallocate(b, 32)
	require.NoError(t, err)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Allocations)
	assert.Equal(t, int64(1), stats.Reallocations)
	assert.Equal(t, int64(32), stats.BytesAllocated)
	assert.Equal(t, int64(32), stats.BytesInUse)

	c.Free(b)
	stats = c.Stats()
	assert.Equal(t, int64(1), stats.Frees)
	assert.Equal(t, int64(0), stats.BytesInUse)
}

type budget struct {
	limit, used int64
}

var errBudget = errors.New("budget exhausted")

func (b *budget) TryAcquireMemory(n int64) error {
	if b.used+n > b.limit {
		return errBudget
	}
	b.used += n
	return nil
}

func (b *budget) ReleaseMemory(n int64) { b.used -= n }

func TestLimitedAllocator(t *testing.T) {
	bud := &budget{limit: 100}
	l := NewLimitedAllocator(nil, bud)

	b, err := l.Allocate(60)
	require.NoError(t, err)
	assert.Equal(t, int64(60), bud.used)

	_, err = l.Allocate(50)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMemoryLimit)
	assert.ErrorIs(t, err, errBudget)
	assert.Equal(t, int64(60), bud.used)

	_, err = l.Reallocate(b, 120)
	assert.ErrorIs(t, err, ErrMemoryLimit)

	b, err = l.Reallocate(b, 90)
	require.NoError(t, err)
	assert.Equal(t, int64(90), bud.used)

	b, err = l.Reallocate(b, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), bud.used)

	l.Free(b)
	assert.Equal(t, int64(0), bud.used)
}

func TestLimitedAllocator_NoBudget(t *testing.T) {
	l := NewLimitedAllocator(HeapAllocator{}, nil)
	b, err := l.Allocate(1 << 10)
	require.NoError(t, err)
	assert.Len(t, b, 1<<10)
	l.Free(b)
}
