package bitmap

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colmem/memory"
	"github.com/hupe1980/colmem/testutil"
)

func TestBitmap_ToRoaring(t *testing.T) {
	bm := FromSlice([]bool{false, true, false, true, false, true, false, false, false, true})

	rb, err := bm.ToRoaring()
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 3, 5, 9}, rb.ToArray())
	assert.Equal(t, uint64(bm.CountOnes()), rb.GetCardinality())

	empty, err := (&Bitmap{}).ToRoaring()
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
}

func TestBitmap_FromRoaring(t *testing.T) {
	rb := roaring.BitmapOf(0, 2, 8)

	bm, err := FromRoaring(rb, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, bm.Len())
	assert.Equal(t, "1010000010", bm.String())
	assert.Equal(t, []byte{0x05, 0x01}, bm.Bytes())

	_, err = FromRoaring(rb, 8)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = FromRoaring(rb, -1)
	assert.ErrorIs(t, err, ErrOutOfRange)

	counting := memory.NewCountingAllocator(nil)
	bm, err = FromRoaring(roaring.New(), 0, memory.WithAllocator(counting))
	require.NoError(t, err)
	assert.True(t, bm.IsEmpty())
	assert.Equal(t, int64(0), counting.Stats().Allocations)

	bm, err = FromRoaring(roaring.New(), 3)
	require.NoError(t, err)
	assert.Equal(t, "000", bm.String())
}

func TestBitmap_RoaringRoundTrip(t *testing.T) {
	rng := testutil.NewRNG(99)
	in := FromSlice(rng.Bools(5000, 0.1))

	rb, err := in.ToRoaring()
	require.NoError(t, err)

	out, err := FromRoaring(rb, in.Len())
	require.NoError(t, err)
	assert.True(t, in.Equal(out))
}
