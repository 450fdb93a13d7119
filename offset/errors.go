package offset

import (
	"errors"
	"fmt"
)

// ErrOverflow is returned when an item length or a running total does not fit
// the offset type.
var ErrOverflow = errors.New("offset overflow")

// OverflowError describes the item that overflowed the offset type.
// It matches both ErrOverflow and the underlying conversion error.
type OverflowError struct {
	// Index is the position of the offending item in the source.
	Index int
	// Length is the length of the offending item.
	Length int
	// Bits is the width of the offset type.
	Bits int
	// Err is the conversion error.
	Err error
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("offset: item %d of length %d does not fit int%d offsets: %v", e.Index, e.Length, e.Bits, e.Err)
}

func (e *OverflowError) Unwrap() []error {
	return []error{ErrOverflow, e.Err}
}
