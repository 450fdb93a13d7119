package array

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colmem/memory"
	"github.com/hupe1980/colmem/source"
	"github.com/hupe1980/colmem/validity"
)

func TestPrimitive(t *testing.T) {
	a, err := NewPrimitive(source.Of[float64](1.5, 2.5))
	require.NoError(t, err)

	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 2.5, a.Value(1))
	assert.True(t, a.IsValid(0))
	assert.False(t, a.IsNull(1))
	assert.Equal(t, 0, a.NullCount())
	assert.Equal(t, 2, a.ValidCount())
	assert.PanicsWithValue(t, "array: index 2 out of range [0:2)", func() { a.IsNull(2) })
}

func TestNullablePrimitive(t *testing.T) {
	a, err := NewNullablePrimitive(source.Of(validity.None[uint32](), validity.Some[uint32](9)))
	require.NoError(t, err)

	v, ok := a.Get(0)
	assert.False(t, ok)
	assert.Zero(t, v)
	v, ok = a.Get(1)
	assert.True(t, ok)
	assert.Equal(t, uint32(9), v)
	assert.Equal(t, 1, a.NullCount())

	got := slices.Collect(a.All())
	assert.Equal(t, []validity.Option[uint32]{validity.None[uint32](), validity.Some[uint32](9)}, got)
}

func TestString(t *testing.T) {
	a, err := NewString[int32](source.Of("hello", "", "wörld"))
	require.NoError(t, err)

	assert.Equal(t, 3, a.Len())
	assert.Equal(t, "hello", a.Value(0))
	assert.Equal(t, "", a.Value(1))
	assert.Equal(t, "wörld", a.Value(2))
	assert.Equal(t, []int32{0, 5, 5, 11}, a.OffsetBuffer())
	assert.Equal(t, []string{"hello", "", "wörld"}, slices.Collect(a.All()))
	assert.True(t, a.IsValid(1))
	assert.Equal(t, 3, a.ValidCount())
}

func TestNullableString(t *testing.T) {
	src := source.Of(validity.Some("a"), validity.None[string](), validity.Some("bc"))
	a, err := NewNullableString[int64](src)
	require.NoError(t, err)

	assert.Equal(t, []int64{0, 1, 1, 3}, a.OffsetBuffer())
	assert.Equal(t, "101", a.ValidityBitmap().String())
	assert.Equal(t, "", a.Value(1))

	s, ok := a.Get(2)
	assert.True(t, ok)
	assert.Equal(t, "bc", s)
	_, ok = a.Get(1)
	assert.False(t, ok)

	var got []string
	for o := range a.All() {
		v, ok := o.Get()
		if !ok {
			v = "<nil>"
		}
		got = append(got, v)
	}
	assert.Equal(t, []string{"a", "<nil>", "bc"}, got)
}

func TestString_Release(t *testing.T) {
	counting := memory.NewCountingAllocator(nil)
	a, err := NewString[int32](source.Of("x", "yz"), memory.WithAllocator(counting))
	require.NoError(t, err)
	assert.Equal(t, int64(3+12), counting.Stats().BytesInUse)

	a.Release()
	assert.Equal(t, int64(0), counting.Stats().BytesInUse)
}
