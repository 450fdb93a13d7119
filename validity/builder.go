package validity

import (
	"time"

	"github.com/hupe1980/colmem/bitmap"
	"github.com/hupe1980/colmem/internal/buffer"
	"github.com/hupe1980/colmem/memory"
	"github.com/hupe1980/colmem/source"
)

// PlainBuilder appends values into a Plain. It never allocates a bitmap.
// It is NOT thread-safe.
type PlainBuilder[T memory.Primitive] struct {
	cfg  memory.Config
	buf  *buffer.Buffer[T]
	hint int
}

// NewPlainBuilder returns a builder expecting about hint values.
// Nothing is allocated until the first Append.
func NewPlainBuilder[T memory.Primitive](hint int, opts ...memory.Option) *PlainBuilder[T] {
	cfg := memory.NewConfig(opts...)
	return &PlainBuilder[T]{
		cfg:  cfg,
		buf:  buffer.New[T](cfg.Allocator, cfg.Growth),
		hint: memory.Presize(hint),
	}
}

// Len returns the number of values appended so far.
func (b *PlainBuilder[T]) Len() int {
	return b.buf.Len()
}

// Last returns the most recently appended value, or the zero value.
func (b *PlainBuilder[T]) Last() T {
	var zero T
	vs := b.buf.View()
	if len(vs) == 0 {
		return zero
	}
	return vs[len(vs)-1]
}

// Append adds v.
func (b *PlainBuilder[T]) Append(v T) error {
	if b.buf.Cap() == 0 {
		if err := b.buf.Reserve(max(b.hint, 1)); err != nil {
			return err
		}
	}
	return b.buf.Push(v)
}

// Finish publishes the values and resets the builder. Spare capacity left by
// an over-predicting hint is released.
func (b *PlainBuilder[T]) Finish() (Plain[T], error) {
	buf := b.buf
	b.buf = buffer.New[T](b.cfg.Allocator, b.cfg.Growth)

	if buf.Len() == 0 {
		buf.Release()
		return Plain[T]{}, nil
	}
	if err := buf.ShrinkToFit(); err != nil {
		buf.Release()
		return Plain[T]{}, err
	}
	return Plain[T]{buf: buf}, nil
}

// Release discards everything appended so far.
func (b *PlainBuilder[T]) Release() {
	b.buf.Release()
}

// NullableBuilder appends values with validity bits into a Nullable.
// It is NOT thread-safe.
type NullableBuilder[T memory.Primitive] struct {
	values *PlainBuilder[T]
	bits   *bitmap.Builder
}

// NewNullableBuilder returns a builder expecting about hint validity bits.
// Seeded values are added on top of the hint.
func NewNullableBuilder[T memory.Primitive](hint int, opts ...memory.Option) *NullableBuilder[T] {
	return &NullableBuilder[T]{
		values: NewPlainBuilder[T](hint, opts...),
		bits:   bitmap.NewBuilder(hint, opts...),
	}
}

// Len returns the number of values appended so far.
func (b *NullableBuilder[T]) Len() int {
	return b.values.Len()
}

// Last returns the most recently appended value, or the zero value.
func (b *NullableBuilder[T]) Last() T {
	return b.values.Last()
}

// Seed adds a value that has no validity bit, such as the leading boundary of
// an offset buffer. Seeds must come before the first Append.
func (b *NullableBuilder[T]) Seed(v T) error {
	if b.bits.Len() > 0 {
		panic("validity: Seed after Append")
	}
	if b.values.buf.Cap() == 0 {
		// The hint counts bits; seeds need room on top of it.
		b.values.hint = memory.Presize(b.values.hint + 1)
	}
	return b.values.Append(v)
}

// Append adds v with the given validity bit.
func (b *NullableBuilder[T]) Append(v T, valid bool) error {
	if err := b.values.Append(v); err != nil {
		return err
	}
	return b.bits.Append(valid)
}

// AppendOption adds the value of o, or the zero value with a clear bit if o
// is absent.
func (b *NullableBuilder[T]) AppendOption(o Option[T]) error {
	v, ok := o.Get()
	return b.Append(v, ok)
}

// Finish publishes the values and their bitmap and resets the builder.
func (b *NullableBuilder[T]) Finish() (Nullable[T], error) {
	values, err := b.values.Finish()
	if err != nil {
		b.bits.Release()
		return Nullable[T]{}, err
	}
	bm, err := b.bits.Finish()
	if err != nil {
		values.Release()
		return Nullable[T]{}, err
	}
	return Nullable[T]{Plain: values, validity: bm}, nil
}

// Release discards everything appended so far.
func (b *NullableBuilder[T]) Release() {
	b.values.Release()
	b.bits.Release()
}

// NewPlain builds a Plain from src in one pass.
func NewPlain[T memory.Primitive](src source.Source[T], opts ...memory.Option) (Plain[T], error) {
	cfg := memory.NewConfig(opts...)
	start := time.Now()

	b := NewPlainBuilder[T](src.SizeHint(), cfg.Options()...)
	for v := range src.Seq() {
		if err := b.Append(v); err != nil {
			b.Release()
			cfg.Observe("plain", start, 0, 0, err)
			return Plain[T]{}, err
		}
	}

	p, err := b.Finish()
	cfg.Observe("plain", start, p.Len(), p.SizeBytes(), err)
	return p, err
}

// NewNullable builds a Nullable from src in one pass. Absent items are stored
// as the zero value with a clear bit.
func NewNullable[T memory.Primitive](src source.Source[Option[T]], opts ...memory.Option) (Nullable[T], error) {
	cfg := memory.NewConfig(opts...)
	start := time.Now()

	b := NewNullableBuilder[T](src.SizeHint(), cfg.Options()...)
	for o := range src.Seq() {
		if err := b.AppendOption(o); err != nil {
			b.Release()
			cfg.Observe("nullable", start, 0, 0, err)
			return Nullable[T]{}, err
		}
	}

	n, err := b.Finish()
	cfg.Observe("nullable", start, n.Len(), n.SizeBytes(), err)
	return n, err
}
