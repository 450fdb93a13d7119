package offset

import (
	"github.com/hupe1980/colmem/internal/buffer"
	"github.com/hupe1980/colmem/internal/conv"
	"github.com/hupe1980/colmem/memory"
)

// Element is the closed set of offset types.
type Element interface {
	conv.Signed
}

// builder appends child data and tracks the running total.
type builder[T memory.Primitive, O Element] struct {
	data  *buffer.Buffer[T]
	total O
	items int
}

func newBuilder[T memory.Primitive, O Element](cfg memory.Config) *builder[T, O] {
	// The child length is unknown up front, so data always grows amortized.
	return &builder[T, O]{data: buffer.New[T](cfg.Allocator, memory.GrowDouble)}
}

// push appends item and returns the new running total.
func (b *builder[T, O]) push(item []T) (O, error) {
	total, err := advance(b.total, len(item))
	if err != nil {
		return 0, &OverflowError{Index: b.items, Length: len(item), Bits: conv.BitsOf[O](), Err: err}
	}
	if err := b.data.Append(item...); err != nil {
		return 0, err
	}
	b.total = total
	b.items++
	return total, nil
}

// skip accounts for an absent item and returns the unchanged total.
func (b *builder[T, O]) skip() O {
	b.items++
	return b.total
}

// finish trims the data buffer and hands it over.
func (b *builder[T, O]) finish() (*buffer.Buffer[T], error) {
	if err := b.data.ShrinkToFit(); err != nil {
		return nil, err
	}
	data := b.data
	b.data = nil
	return data, nil
}

func (b *builder[T, O]) release() {
	b.data.Release()
}

// advance returns total+n, failing if n or the sum does not fit O.
func advance[O Element](total O, n int) (O, error) {
	delta, err := conv.IntTo[O](n)
	if err != nil {
		return 0, err
	}
	return conv.Add(total, delta)
}
