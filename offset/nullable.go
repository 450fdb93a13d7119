package offset

import (
	"iter"
	"time"

	"github.com/hupe1980/colmem/bitmap"
	"github.com/hupe1980/colmem/internal/buffer"
	"github.com/hupe1980/colmem/memory"
	"github.com/hupe1980/colmem/source"
	"github.com/hupe1980/colmem/validity"
)

// Nullable holds N variable-length items of T, some of which may be absent.
// Absent items repeat the previous offset and have a clear validity bit.
type Nullable[T memory.Primitive, O Element] struct {
	data    *buffer.Buffer[T]
	offsets validity.Nullable[O]
}

// NewNullable builds a Nullable from src in one pass.
//
// On error every partial buffer is released and nil is returned.
func NewNullable[T memory.Primitive, O Element](src source.Source[validity.Option[[]T]], opts ...memory.Option) (*Nullable[T, O], error) {
	cfg := memory.NewConfig(opts...)
	start := time.Now()

	n, err := buildNullable[T, O](cfg, src)
	if err != nil {
		cfg.Observe("offset_nullable", start, 0, 0, err)
		return nil, err
	}
	cfg.Observe("offset_nullable", start, n.Len(), n.SizeBytes(), nil)
	return n, nil
}

func buildNullable[T memory.Primitive, O Element](cfg memory.Config, src source.Source[validity.Option[[]T]]) (*Nullable[T, O], error) {
	offsets := validity.NewNullableBuilder[O](src.SizeHint(), cfg.Options()...)
	data := newBuilder[T, O](cfg)

	fail := func(err error) (*Nullable[T, O], error) {
		offsets.Release()
		data.release()
		return nil, err
	}

	if err := offsets.Seed(0); err != nil {
		return fail(err)
	}
	for opt := range src.Seq() {
		item, ok := opt.Get()
		if !ok {
			if err := offsets.Append(data.skip(), false); err != nil {
				return fail(err)
			}
			continue
		}
		total, err := data.push(item)
		if err != nil {
			return fail(err)
		}
		if err := offsets.Append(total, true); err != nil {
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
	return &Nullable[T, O]{data: buf, offsets: ob}, nil
}

// Len returns the number of items, absent ones included.
func (n *Nullable[T, O]) Len() int {
	return max(n.offsets.Len()-1, 0)
}

// OffsetBuffer returns the N+1 offsets. The slice must not be modified.
// The zero value reports the single leading 0.
func (n *Nullable[T, O]) OffsetBuffer() []O {
	return offsetsOrZero(n.offsets.Values())
}

// Data returns the concatenated data of the present items.
func (n *Nullable[T, O]) Data() []T {
	return n.data.View()
}

// ValidityBitmap returns the bitmap with one bit per item.
func (n *Nullable[T, O]) ValidityBitmap() *bitmap.Bitmap {
	return n.offsets.ValidityBitmap()
}

// IsValid reports whether item i is present. It panics if i is out of range.
func (n *Nullable[T, O]) IsValid(i int) bool {
	return n.offsets.IsValid(i)
}

// IsNull reports whether item i is absent. It panics if i is out of range.
func (n *Nullable[T, O]) IsNull(i int) bool {
	return n.offsets.IsNull(i)
}

// NullCount returns the number of absent items.
func (n *Nullable[T, O]) NullCount() int {
	return n.offsets.NullCount()
}

// ValidCount returns the number of present items.
func (n *Nullable[T, O]) ValidCount() int {
	return n.offsets.ValidCount()
}

// Value returns the data of item i, which is empty for an absent item.
// It panics if i is out of range.
func (n *Nullable[T, O]) Value(i int) []T {
	if l := n.Len(); uint(i) >= uint(l) {
		indexOutOfRange(i, l)
	}
	return span(n.data.View(), n.offsets.Values(), i)
}

// Get returns item i and whether it is present. It panics if i is out of range.
func (n *Nullable[T, O]) Get(i int) ([]T, bool) {
	v := n.Value(i)
	return v, n.offsets.IsValid(i)
}

// All returns the items in order, absent ones as None.
func (n *Nullable[T, O]) All() iter.Seq[validity.Option[[]T]] {
	return func(yield func(validity.Option[[]T]) bool) {
		data, offs := n.data.View(), n.offsets.Values()
		bm := n.offsets.ValidityBitmap()
		i := 0
		for valid := range bm.All() {
			opt := validity.None[[]T]()
			if valid {
				opt = validity.Some(span(data, offs, i))
			}
			if !yield(opt) {
				return
			}
			i++
		}
	}
}

// SizeBytes returns the number of bytes owned by the data, offsets and
// validity buffers.
func (n *Nullable[T, O]) SizeBytes() int {
	return n.data.SizeBytes() + n.offsets.SizeBytes()
}

// Release returns every buffer to its allocator.
func (n *Nullable[T, O]) Release() {
	n.data.Release()
	n.offsets.Release()
	n.offsets = validity.Nullable[O]{}
}
