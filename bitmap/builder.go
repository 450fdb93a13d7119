package bitmap

import (
	"github.com/hupe1980/colmem/internal/buffer"
	"github.com/hupe1980/colmem/memory"
)

// Builder packs bits into a byte buffer in one pass.
// It is NOT thread-safe.
type Builder struct {
	cfg  memory.Config
	hint int

	raw     []byte // allocation; bytes [0:written) are final
	written int
	cur     byte // partially filled byte
	bits    int
}

// NewBuilder returns a builder expecting about hint bits.
// Nothing is allocated until the first Append.
func NewBuilder(hint int, opts ...memory.Option) *Builder {
	return &Builder{
		cfg:  memory.NewConfig(opts...),
		hint: memory.Presize(hint),
	}
}

// Len returns the number of bits appended so far.
func (b *Builder) Len() int {
	return b.bits
}

// Append adds one bit.
func (b *Builder) Append(v bool) error {
	if b.raw == nil {
		// At least one bit is about to be stored.
		n := max(b.hint, 1)
		raw, err := b.cfg.Allocator.Allocate(byteLen(n))
		if err != nil {
			return err
		}
		b.raw = raw
	}

	pos := b.bits & 7
	if v {
		b.cur |= 1 << pos
	}
	b.bits++

	if pos == 7 {
		return b.flush()
	}
	return nil
}

// flush writes the current byte, growing the allocation if it is full.
func (b *Builder) flush() error {
	if b.written == len(b.raw) {
		raw, err := b.cfg.Allocator.Reallocate(b.raw, b.cfg.Growth.Next(len(b.raw), b.written+1))
		if err != nil {
			return err
		}
		b.raw = raw
	}
	b.raw[b.written] = b.cur
	b.written++
	b.cur = 0
	return nil
}

// Finish publishes the bitmap and resets the builder.
// The buffer is trimmed to exactly ceil(Len/8) bytes.
func (b *Builder) Finish() (*Bitmap, error) {
	defer b.reset()

	if b.bits == 0 {
		b.Release()
		return &Bitmap{}, nil
	}

	if b.bits&7 != 0 {
		if err := b.flush(); err != nil {
			b.Release()
			return nil, err
		}
	}

	if len(b.raw) != b.written {
		raw, err := b.cfg.Allocator.Reallocate(b.raw, b.written)
		if err != nil {
			b.Release()
			return nil, err
		}
		b.raw = raw
	}

	return &Bitmap{
		bits: b.bits,
		buf:  buffer.Adopt[byte](b.cfg.Allocator, b.raw, b.written),
	}, nil
}

// Release discards everything appended so far.
func (b *Builder) Release() {
	if len(b.raw) > 0 {
		b.cfg.Allocator.Free(b.raw)
	}
	b.reset()
}

func (b *Builder) reset() {
	b.raw = nil
	b.written = 0
	b.cur = 0
	b.bits = 0
}

// byteLen returns ceil(bits/8).
func byteLen(bits int) int {
	return bits/8 + min(bits%8, 1)
}
