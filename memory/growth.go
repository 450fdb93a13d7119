package memory

import (
	"fmt"
	"math"
)

// MaxPresize caps the number of elements pre-allocated from a size hint.
// Sources whose hint is larger still build correctly; they just grow.
const MaxPresize = 1 << 24

// GrowthPolicy decides how far a buffer grows when it runs out of capacity.
type GrowthPolicy int

const (
	// GrowExact grows to exactly the required capacity (one unit at a time
	// for appends).
	GrowExact GrowthPolicy = iota
	// GrowDouble grows to at least twice the current capacity.
	GrowDouble
)

// Next returns the capacity to grow to from capacity c so that at least need
// elements fit. need must be greater than c.
func (p GrowthPolicy) Next(c, need int) int {
	switch p {
	case GrowDouble:
		if c > math.MaxInt/2 {
			return need
		}
		return max(need, 2*c)
	default:
		return need
	}
}

// String implements fmt.Stringer.
func (p GrowthPolicy) String() string {
	switch p {
	case GrowExact:
		return "exact"
	case GrowDouble:
		return "double"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// Presize clamps a size hint to [0, MaxPresize].
func Presize(hint int) int {
	return min(max(hint, 0), MaxPresize)
}
