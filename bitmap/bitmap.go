package bitmap

import (
	"fmt"
	"iter"
	"math/bits"
	"strings"
	"time"

	"github.com/hupe1980/colmem/internal/buffer"
	"github.com/hupe1980/colmem/memory"
	"github.com/hupe1980/colmem/source"
)

// Bitmap is an immutable collection of bits.
//
// The zero value is the empty bitmap.
type Bitmap struct {
	// bits is the number of bits stored in the bitmap.
	bits int
	// buf holds ceil(bits/8) bytes.
	buf *buffer.Buffer[byte]
}

// New builds a bitmap from src in one pass.
func New(src source.Source[bool], opts ...memory.Option) (*Bitmap, error) {
	cfg := memory.NewConfig(opts...)
	start := time.Now()

	b := &Builder{cfg: cfg, hint: memory.Presize(src.SizeHint())}
	for v := range src.Seq() {
		if err := b.Append(v); err != nil {
			b.Release()
			cfg.Observe("bitmap", start, 0, 0, err)
			return nil, err
		}
	}

	bm, err := b.Finish()
	if err != nil {
		cfg.Observe("bitmap", start, 0, 0, err)
		return nil, err
	}
	cfg.Observe("bitmap", start, bm.Len(), bm.SizeBytes(), nil)
	return bm, nil
}

// FromSlice builds a bitmap from vs on the Go heap.
func FromSlice(vs []bool) *Bitmap {
	bm, err := New(source.Slice(vs))
	if err != nil {
		// The heap allocator does not fail.
		panic(err)
	}
	return bm
}

// Len returns the number of bits.
func (b *Bitmap) Len() int {
	return b.bits
}

// IsEmpty reports whether the bitmap holds no bits.
func (b *Bitmap) IsEmpty() bool {
	return b.bits == 0
}

// IsValid reports whether bit i is set. It panics if i is out of range.
func (b *Bitmap) IsValid(i int) bool {
	if uint(i) >= uint(b.bits) {
		indexOutOfRange("IsValid", i, b.bits)
	}
	return b.get(i)
}

// IsNull reports whether bit i is clear. It panics if i is out of range.
func (b *Bitmap) IsNull(i int) bool {
	if uint(i) >= uint(b.bits) {
		indexOutOfRange("IsNull", i, b.bits)
	}
	return !b.get(i)
}

// Index returns bit i. It is equivalent to IsValid.
func (b *Bitmap) Index(i int) bool {
	return b.IsValid(i)
}

// NullCount returns 0: a bitmap assigns no null semantics to its bits.
func (b *Bitmap) NullCount() int {
	return 0
}

// ValidCount returns Len.
func (b *Bitmap) ValidCount() int {
	return b.bits
}

// get reads bit i without a bounds check. Callers check i first.
func (b *Bitmap) get(i int) bool {
	return b.buf.View()[i>>3]&(1<<(i&7)) != 0
}

//go:noinline
func indexOutOfRange(op string, i, n int) {
	panic(fmt.Sprintf("bitmap: %s index %d out of range [0:%d)", op, i, n))
}

// All returns the bits in index order. The sequence may be ranged over repeatedly.
func (b *Bitmap) All() iter.Seq[bool] {
	return func(yield func(bool) bool) {
		data := b.buf.View()
		for i := 0; i < b.bits; i++ {
			if !yield(data[i>>3]&(1<<(i&7)) != 0) {
				return
			}
		}
	}
}

// Bytes returns the packed bytes. The slice aliases the bitmap and must not be modified.
func (b *Bitmap) Bytes() []byte {
	return b.buf.View()
}

// SizeBytes returns the number of bytes owned by the bitmap.
func (b *Bitmap) SizeBytes() int {
	return b.buf.SizeBytes()
}

// CountOnes returns the number of set bits.
func (b *Bitmap) CountOnes() int {
	n := 0
	for _, v := range b.buf.View() {
		n += bits.OnesCount8(v)
	}
	return n
}

// CountZeros returns the number of clear bits.
func (b *Bitmap) CountZeros() int {
	return b.bits - b.CountOnes()
}

// Equal reports whether both bitmaps hold the same bit sequence.
func (b *Bitmap) Equal(other *Bitmap) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.bits != other.bits {
		return false
	}
	x, y := b.buf.View(), other.buf.View()
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (b *Bitmap) Clone() (*Bitmap, error) {
	buf, err := b.buf.Clone()
	if err != nil {
		return nil, err
	}
	return &Bitmap{bits: b.bits, buf: buf}, nil
}

// Release returns the buffer to its allocator. The bitmap is empty afterwards.
func (b *Bitmap) Release() {
	b.buf.Release()
	b.buf = nil
	b.bits = 0
}

// String renders the bits as 0 and 1 characters in index order.
func (b *Bitmap) String() string {
	var sb strings.Builder
	sb.Grow(b.bits)
	for v := range b.All() {
		if v {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
