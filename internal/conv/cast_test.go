//go:build amd64 || arm64

package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntTo(t *testing.T) {
	t.Run("valid zero", func(t *testing.T) {
		got, err := IntTo[int32](0)
		assert.NoError(t, err)
		assert.Equal(t, int32(0), got)
	})

	t.Run("valid max int32", func(t *testing.T) {
		got, err := IntTo[int32](math.MaxInt32)
		assert.NoError(t, err)
		assert.Equal(t, int32(math.MaxInt32), got)
	})

	t.Run("invalid too large int32", func(t *testing.T) {
		_, err := IntTo[int32](math.MaxInt32 + 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrOverflow)
	})

	t.Run("valid max int64", func(t *testing.T) {
		got, err := IntTo[int64](math.MaxInt)
		assert.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64), got)
	})

	t.Run("invalid negative", func(t *testing.T) {
		_, err := IntTo[int64](-1)
		assert.ErrorIs(t, err, ErrOverflow)
	})
}

func TestAdd(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		got, err := Add[int32](3, 4)
		assert.NoError(t, err)
		assert.Equal(t, int32(7), got)
	})

	t.Run("exact max is valid", func(t *testing.T) {
		got, err := Add[int32](math.MaxInt32-1, 1)
		assert.NoError(t, err)
		assert.Equal(t, int32(math.MaxInt32), got)

		got64, err := Add[int64](math.MaxInt64, 0)
		assert.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64), got64)
	})

	t.Run("overflow int32", func(t *testing.T) {
		_, err := Add[int32](math.MaxInt32, 1)
		assert.ErrorIs(t, err, ErrOverflow)
	})

	t.Run("overflow int64", func(t *testing.T) {
		_, err := Add[int64](math.MaxInt64-1, 2)
		assert.ErrorIs(t, err, ErrOverflow)
	})

	t.Run("negative operand", func(t *testing.T) {
		_, err := Add[int64](-1, 2)
		assert.ErrorIs(t, err, ErrOverflow)
	})
}

func TestToInt(t *testing.T) {
	got, err := ToInt[int32](42)
	assert.NoError(t, err)
	assert.Equal(t, 42, got)

	got, err = ToInt[int64](math.MaxInt64)
	assert.NoError(t, err)
	assert.Equal(t, math.MaxInt, got)

	_, err = ToInt[int64](-5)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestMaxOf(t *testing.T) {
	assert.Equal(t, int32(math.MaxInt32), MaxOf[int32]())
	assert.Equal(t, int64(math.MaxInt64), MaxOf[int64]())
	assert.Equal(t, 32, BitsOf[int32]())
	assert.Equal(t, 64, BitsOf[int64]())
}
