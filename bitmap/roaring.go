package bitmap

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/colmem/internal/buffer"
	"github.com/hupe1980/colmem/memory"
)

// ErrOutOfRange is returned when a position does not fit the requested bitmap.
var ErrOutOfRange = errors.New("bitmap: position out of range")

// ToRoaring returns the positions of the set bits as a roaring bitmap.
func (b *Bitmap) ToRoaring() (*roaring.Bitmap, error) {
	if uint64(b.bits) > math.MaxUint32+1 {
		return nil, fmt.Errorf("%w: %d bits exceed 32-bit positions", ErrOutOfRange, b.bits)
	}

	rb := roaring.New()
	pos := make([]uint32, 0, 64)
	for i, v := range b.buf.View() {
		for v != 0 {
			tz := bits.TrailingZeros8(v)
			pos = append(pos, uint32(i*8+tz))
			v &= v - 1
		}
		if len(pos) >= 64 {
			rb.AddMany(pos)
			pos = pos[:0]
		}
	}
	rb.AddMany(pos)
	return rb, nil
}

// FromRoaring builds an n-bit bitmap whose set bits are the positions in rb.
// Every position must be below n.
func FromRoaring(rb *roaring.Bitmap, n int, opts ...memory.Option) (*Bitmap, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrOutOfRange, n)
	}
	if !rb.IsEmpty() && uint64(rb.Maximum()) >= uint64(n) {
		return nil, fmt.Errorf("%w: position %d, length %d", ErrOutOfRange, rb.Maximum(), n)
	}
	if n == 0 {
		return &Bitmap{}, nil
	}

	cfg := memory.NewConfig(opts...)
	size := byteLen(n)
	raw, err := cfg.Allocator.Allocate(size)
	if err != nil {
		return nil, err
	}

	it := rb.Iterator()
	for it.HasNext() {
		p := it.Next()
		raw[p>>3] |= 1 << (p & 7)
	}

	return &Bitmap{
		bits: n,
		buf:  buffer.Adopt[byte](cfg.Allocator, raw, size),
	}, nil
}
