package conv

import (
	"errors"
	"fmt"
	"math"
)

// ErrOverflow is wrapped by every error returned from this package.
var ErrOverflow = errors.New("integer overflow")

// Signed is the closed set of fixed-width integers used for offsets.
type Signed interface {
	int32 | int64
}

// MaxOf returns the largest value representable by T.
func MaxOf[T Signed]() T {
	var zero T
	switch any(zero).(type) {
	case int32:
		return T(math.MaxInt32)
	default:
		var m int64 = math.MaxInt64
		return T(m)
	}
}

// BitsOf returns the width of T in bits.
func BitsOf[T Signed]() int {
	var zero T
	if _, ok := any(zero).(int32); ok {
		return 32
	}
	return 64
}

// IntTo converts a non-negative int to T safely.
func IntTo[T Signed](v int) (T, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: %d cannot be converted to int%d (negative)", ErrOverflow, v, BitsOf[T]())
	}
	if uint64(v) > uint64(MaxOf[T]()) {
		return 0, fmt.Errorf("%w: %d cannot be converted to int%d (too large)", ErrOverflow, v, BitsOf[T]())
	}
	return T(v), nil
}

// Add returns a+b for non-negative operands, failing instead of wrapping.
// A sum exactly equal to MaxOf[T] is valid.
func Add[T Signed](a, b T) (T, error) {
	if a < 0 || b < 0 {
		return 0, fmt.Errorf("%w: negative operand (%d + %d)", ErrOverflow, a, b)
	}
	if a > MaxOf[T]()-b {
		return 0, fmt.Errorf("%w: %d + %d exceeds int%d", ErrOverflow, a, b, BitsOf[T]())
	}
	return a + b, nil
}

// ToInt converts an offset element back to int safely.
func ToInt[T Signed](v T) (int, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: %d cannot be converted to int (negative)", ErrOverflow, v)
	}
	if uint64(v) > uint64(math.MaxInt) {
		return 0, fmt.Errorf("%w: %d cannot be converted to int (too large)", ErrOverflow, v)
	}
	return int(v), nil
}
