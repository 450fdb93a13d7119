package array

import (
	"iter"

	"github.com/hupe1980/colmem/memory"
	"github.com/hupe1980/colmem/source"
	"github.com/hupe1980/colmem/validity"
)

// Primitive is a column of fixed-width values without nulls.
type Primitive[T memory.Primitive] struct {
	validity.Plain[T]
}

// NewPrimitive builds a Primitive column from src.
func NewPrimitive[T memory.Primitive](src source.Source[T], opts ...memory.Option) (*Primitive[T], error) {
	p, err := validity.NewPlain(src, opts...)
	if err != nil {
		return nil, err
	}
	return &Primitive[T]{Plain: p}, nil
}

// Value returns element i. It panics if i is out of range.
func (a *Primitive[T]) Value(i int) T {
	return a.Values()[i]
}

// IsValid reports true for every in-range index. It panics if i is out of range.
func (a *Primitive[T]) IsValid(i int) bool {
	checkIndex(i, a.Len())
	return true
}

// IsNull reports false for every in-range index. It panics if i is out of range.
func (a *Primitive[T]) IsNull(i int) bool {
	checkIndex(i, a.Len())
	return false
}

// NullCount returns 0.
func (a *Primitive[T]) NullCount() int { return 0 }

// ValidCount returns Len.
func (a *Primitive[T]) ValidCount() int { return a.Len() }

// NullablePrimitive is a column of fixed-width values that may be null.
// Null slots hold the zero value.
type NullablePrimitive[T memory.Primitive] struct {
	validity.Nullable[T]
}

// NewNullablePrimitive builds a NullablePrimitive column from src.
func NewNullablePrimitive[T memory.Primitive](src source.Source[validity.Option[T]], opts ...memory.Option) (*NullablePrimitive[T], error) {
	n, err := validity.NewNullable(src, opts...)
	if err != nil {
		return nil, err
	}
	return &NullablePrimitive[T]{Nullable: n}, nil
}

// Get returns element i and whether it is valid. It panics if i is out of range.
func (a *NullablePrimitive[T]) Get(i int) (T, bool) {
	valid := a.IsValid(i)
	return a.Values()[i], valid
}

// All returns the elements in order, nulls as None.
func (a *NullablePrimitive[T]) All() iter.Seq[validity.Option[T]] {
	return func(yield func(validity.Option[T]) bool) {
		vs := a.Values()
		i := 0
		for valid := range a.ValidityBitmap().All() {
			opt := validity.None[T]()
			if valid {
				opt = validity.Some(vs[i])
			}
			if !yield(opt) {
				return
			}
			i++
		}
	}
}
