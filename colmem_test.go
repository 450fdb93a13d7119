package colmem_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colmem"
	"github.com/hupe1980/colmem/array"
	"github.com/hupe1980/colmem/bitmap"
	"github.com/hupe1980/colmem/memory"
	"github.com/hupe1980/colmem/offset"
	"github.com/hupe1980/colmem/resource"
	"github.com/hupe1980/colmem/source"
	"github.com/hupe1980/colmem/testutil"
	"github.com/hupe1980/colmem/validity"
)

func TestMemoryBudget(t *testing.T) {
	ctrl := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 10})
	alloc := memory.NewLimitedAllocator(memory.NewMmapAllocator(), ctrl)

	small, err := array.NewPrimitive(source.Of[int64](1, 2, 3), memory.WithAllocator(alloc))
	require.NoError(t, err)
	assert.Equal(t, int64(24), ctrl.MemoryUsage())

	big := source.Repeat("0123456789abcdef", 100)
	_, err = array.NewString[int32](big, memory.WithAllocator(alloc))
	require.ErrorIs(t, err, colmem.ErrMemoryLimit)
	assert.ErrorIs(t, err, colmem.ErrLimitExceeded)
	assert.Equal(t, int64(24), ctrl.MemoryUsage(), "failed builds return their memory")

	small.Release()
	assert.Equal(t, int64(0), ctrl.MemoryUsage())
	assert.LessOrEqual(t, ctrl.PeakMemoryUsage(), ctrl.MemoryLimit())
}

func TestMemoryBudget_Shared(t *testing.T) {
	ctrl := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 20})
	alloc := memory.NewLimitedAllocator(nil, ctrl)
	rng := testutil.NewRNG(42)
	inputs := make([][]string, 8)
	for i := range inputs {
		inputs[i] = rng.Strings(200, 16)
	}

	var wg sync.WaitGroup
	out := make([]*array.String[int64], len(inputs))
	for i, in := range inputs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := array.NewString[int64](source.Slice(in), memory.WithAllocator(alloc))
			assert.NoError(t, err)
			out[i] = s
		}()
	}
	wg.Wait()

	for i, s := range out {
		require.NotNil(t, s)
		assert.Equal(t, strings.Join(inputs[i], ""), string(s.Data()))
		s.Release()
	}
	assert.Equal(t, int64(0), ctrl.MemoryUsage())
}

func TestArenaAllocator_Columns(t *testing.T) {
	ctrl := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 20})
	arena := memory.NewArenaAllocator(1<<14, memory.WithArenaAcquirer(ctrl))
	defer arena.Close()

	for round := range 3 {
		ints, err := array.NewNullablePrimitive(
			source.Of(validity.Some[int32](1), validity.None[int32](), validity.Some(int32(round))),
			memory.WithAllocator(arena),
		)
		require.NoError(t, err)
		strs, err := array.NewString[int32](source.Repeat("abc", 50), memory.WithAllocator(arena))
		require.NoError(t, err)

		assert.Equal(t, []int32{1, 0, int32(round)}, ints.Values())
		assert.Equal(t, 1, ints.NullCount())
		assert.Equal(t, "abc", strs.Value(49))
		assert.Equal(t, int32(150), strs.OffsetBuffer()[50])

		arena.Reset()
		assert.Equal(t, int64(1<<14), ctrl.MemoryUsage())
	}
}

func TestAcquireMemory_Context(t *testing.T) {
	ctrl := resource.NewController(resource.Config{MemoryLimitBytes: 8})
	require.NoError(t, ctrl.AcquireMemory(context.Background(), 8))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, ctrl.AcquireMemory(ctx, 1))
	ctrl.ReleaseMemory(8)
}

func TestOverflowError(t *testing.T) {
	err := error(&colmem.OverflowError{Index: 3, Length: 9, Bits: 32, Err: errors.New("too large")})
	assert.ErrorIs(t, err, colmem.ErrOffsetOverflow)
	assert.ErrorIs(t, err, offset.ErrOverflow)
	assert.Contains(t, err.Error(), "item 3 of length 9")
}

func TestContracts(t *testing.T) {
	bm := bitmap.FromSlice([]bool{true, false})
	n, err := offset.NewNullable[byte, int32](source.Of(validity.Some([]byte("x")), validity.None[[]byte]()))
	require.NoError(t, err)
	s, err := array.NewNullableString[int32](source.Of(validity.None[string](), validity.Some("y")))
	require.NoError(t, err)

	for _, d := range []colmem.ArrayData{bm, n, s} {
		assert.Equal(t, 2, d.Len())
	}
	for _, v := range []colmem.ValidityBitmap{n, s} {
		assert.Equal(t, 1, v.ValidityBitmap().CountZeros())
	}

	// A bitmap assigns no null semantics to its own bits.
	assert.Equal(t, 0, bm.NullCount())
	assert.Equal(t, 1, n.NullCount())

	var ob colmem.OffsetBuffer[int32] = n
	assert.Equal(t, []int32{0, 1, 1}, ob.OffsetBuffer())
}
