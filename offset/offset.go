package offset

import (
	"fmt"
	"iter"
	"time"

	"github.com/hupe1980/colmem/internal/buffer"
	"github.com/hupe1980/colmem/internal/mem"
	"github.com/hupe1980/colmem/memory"
	"github.com/hupe1980/colmem/source"
	"github.com/hupe1980/colmem/validity"
)

// Offset holds N variable-length items of T with O offsets.
//
// The zero value holds no items. Built values are immutable and safe for
// concurrent reads.
type Offset[T memory.Primitive, O Element] struct {
	data    *buffer.Buffer[T]
	offsets validity.Plain[O]
}

// New builds an Offset from src in one pass.
//
// On error every partial buffer is released and nil is returned.
func New[T memory.Primitive, O Element](src source.Source[[]T], opts ...memory.Option) (*Offset[T, O], error) {
	cfg := memory.NewConfig(opts...)
	start := time.Now()

	o, err := build[T, O](cfg, src)
	if err != nil {
		cfg.Observe("offset", start, 0, 0, err)
		return nil, err
	}
	cfg.Observe("offset", start, o.Len(), o.SizeBytes(), nil)
	return o, nil
}

func build[T memory.Primitive, O Element](cfg memory.Config, src source.Source[[]T]) (*Offset[T, O], error) {
	hint := src.SizeHint()
	if hint < memory.MaxPresize {
		hint++
	}
	offsets := validity.NewPlainBuilder[O](hint, cfg.Options()...)
	data := newBuilder[T, O](cfg)

	fail := func(err error) (*Offset[T, O], error) {
		offsets.Release()
		data.release()
		return nil, err
	}

	if err := offsets.Append(0); err != nil {
		return fail(err)
	}
	for item := range src.Seq() {
		total, err := data.push(item)
		if err != nil {
			return fail(err)
		}
		if err := offsets.Append(total); err != nil {
			return fail(err)
		}
	}

	buf, err := data.finish()
	if err != nil {
		return fail(err)
	}
	ob, err := offsets.Finish()
	if err != nil {
		buf.Release()
		return nil, err
	}
	return &Offset[T, O]{data: buf, offsets: ob}, nil
}

// Len returns the number of items.
func (o *Offset[T, O]) Len() int {
	return max(o.offsets.Len()-1, 0)
}

// OffsetBuffer returns the N+1 offsets. The slice must not be modified.
// The zero value reports the single leading 0.
func (o *Offset[T, O]) OffsetBuffer() []O {
	return offsetsOrZero(o.offsets.Values())
}

// Data returns the concatenated child data. The slice must not be modified.
func (o *Offset[T, O]) Data() []T {
	return o.data.View()
}

// Value returns item i. It panics if i is out of range.
func (o *Offset[T, O]) Value(i int) []T {
	if n := o.Len(); uint(i) >= uint(n) {
		indexOutOfRange(i, n)
	}
	return span(o.data.View(), o.offsets.Values(), i)
}

// All returns the items in order.
func (o *Offset[T, O]) All() iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		data, offs := o.data.View(), o.offsets.Values()
		for i := range o.Len() {
			if !yield(span(data, offs, i)) {
				return
			}
		}
	}
}

// SizeBytes returns the number of bytes owned by the data and offsets buffers.
func (o *Offset[T, O]) SizeBytes() int {
	return o.data.SizeBytes() + o.offsets.SizeBytes()
}

// Release returns every buffer to its allocator.
func (o *Offset[T, O]) Release() {
	o.data.Release()
	o.offsets.Release()
	o.offsets = validity.Plain[O]{}
}

func offsetsOrZero[O Element](offs []O) []O {
	if len(offs) == 0 {
		return mem.Zero[O]()
	}
	return offs
}

// span returns data[offs[i]:offs[i+1]] with capacity clipped to the item.
func span[T any, O Element](data []T, offs []O, i int) []T {
	lo, hi := int(offs[i]), int(offs[i+1])
	return data[lo:hi:hi]
}

//go:noinline
func indexOutOfRange(i, n int) {
	panic(fmt.Sprintf("offset: index %d out of range [0:%d)", i, n))
}
