package array

import (
	"fmt"
	"iter"
	"unsafe"

	"github.com/hupe1980/colmem/memory"
	"github.com/hupe1980/colmem/offset"
	"github.com/hupe1980/colmem/source"
	"github.com/hupe1980/colmem/validity"
)

// String is a column of strings stored as offsets into one byte buffer.
type String[O offset.Element] struct {
	*offset.Offset[byte, O]
}

// NewString builds a String column from src.
func NewString[O offset.Element](src source.Source[string], opts ...memory.Option) (*String[O], error) {
	o, err := offset.New[byte, O](source.Map(src, stringBytes), opts...)
	if err != nil {
		return nil, err
	}
	return &String[O]{Offset: o}, nil
}

// Value returns string i. The string aliases the column and stays valid
// until Release. It panics if i is out of range.
func (a *String[O]) Value(i int) string {
	return bytesString(a.Offset.Value(i))
}

// All returns the strings in order.
func (a *String[O]) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for v := range a.Offset.All() {
			if !yield(bytesString(v)) {
				return
			}
		}
	}
}

// IsValid reports true for every in-range index. It panics if i is out of range.
func (a *String[O]) IsValid(i int) bool {
	checkIndex(i, a.Len())
	return true
}

// IsNull reports false for every in-range index. It panics if i is out of range.
func (a *String[O]) IsNull(i int) bool {
	checkIndex(i, a.Len())
	return false
}

// NullCount returns 0.
func (a *String[O]) NullCount() int { return 0 }

// ValidCount returns Len.
func (a *String[O]) ValidCount() int { return a.Len() }

// NullableString is a column of strings that may be null.
type NullableString[O offset.Element] struct {
	*offset.Nullable[byte, O]
}

// NewNullableString builds a NullableString column from src.
func NewNullableString[O offset.Element](src source.Source[validity.Option[string]], opts ...memory.Option) (*NullableString[O], error) {
	bytesSrc := source.Map(src, func(o validity.Option[string]) validity.Option[[]byte] {
		s, ok := o.Get()
		if !ok {
			return validity.None[[]byte]()
		}
		return validity.Some(stringBytes(s))
	})
	n, err := offset.NewNullable[byte, O](bytesSrc, opts...)
	if err != nil {
		return nil, err
	}
	return &NullableString[O]{Nullable: n}, nil
}

// Value returns string i, or "" if it is null. It panics if i is out of range.
func (a *NullableString[O]) Value(i int) string {
	return bytesString(a.Nullable.Value(i))
}

// Get returns string i and whether it is valid. It panics if i is out of range.
func (a *NullableString[O]) Get(i int) (string, bool) {
	v, ok := a.Nullable.Get(i)
	return bytesString(v), ok
}

// All returns the strings in order, nulls as None.
func (a *NullableString[O]) All() iter.Seq[validity.Option[string]] {
	return func(yield func(validity.Option[string]) bool) {
		for o := range a.Nullable.All() {
			out := validity.None[string]()
			if v, ok := o.Get(); ok {
				out = validity.Some(bytesString(v))
			}
			if !yield(out) {
				return
			}
		}
	}
}

// stringBytes views s as bytes without copying. The bytes are only read.
func stringBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func bytesString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

func checkIndex(i, n int) {
	if uint(i) >= uint(n) {
		panic(fmt.Sprintf("array: index %d out of range [0:%d)", i, n))
	}
}
