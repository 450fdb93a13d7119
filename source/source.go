// Package source provides finite item sequences that carry a size hint.
//
// Builders use SizeHint to pre-size their buffers before consuming Seq. The
// hint is a prediction, not a promise: a source may yield more items than its
// hint (builders grow) or fewer (builders shrink when publishing).
package source

import (
	"iter"
	"slices"
)

// Source is a finite sequence of items with a size hint.
type Source[T any] interface {
	// Seq yields the items in order.
	Seq() iter.Seq[T]
	// SizeHint returns the predicted number of items Seq yields.
	SizeHint() int
}

type sliceSource[T any] []T

func (s sliceSource[T]) Seq() iter.Seq[T] { return slices.Values(s) }
func (s sliceSource[T]) SizeHint() int    { return len(s) }

// Slice returns a source over s with an exact hint.
func Slice[T any](s []T) Source[T] {
	return sliceSource[T](s)
}

// Of returns a source over the given items with an exact hint.
func Of[T any](items ...T) Source[T] {
	return sliceSource[T](items)
}

type seqSource[T any] struct {
	seq  iter.Seq[T]
	hint int
}

func (s seqSource[T]) Seq() iter.Seq[T] { return s.seq }
func (s seqSource[T]) SizeHint() int    { return s.hint }

// Seq returns a source over seq with no known size.
func Seq[T any](seq iter.Seq[T]) Source[T] {
	return seqSource[T]{seq: seq}
}

// WithHint returns a source over seq that predicts hint items.
func WithHint[T any](seq iter.Seq[T], hint int) Source[T] {
	return seqSource[T]{seq: seq, hint: max(hint, 0)}
}

// Map returns a source yielding fn applied to each item of src. The hint is kept.
func Map[T, U any](src Source[T], fn func(T) U) Source[U] {
	seq := src.Seq()
	return seqSource[U]{
		seq: func(yield func(U) bool) {
			for v := range seq {
				if !yield(fn(v)) {
					return
				}
			}
		},
		hint: src.SizeHint(),
	}
}

// Repeat returns a source yielding v n times with no known size.
func Repeat[T any](v T, n int) Source[T] {
	return Seq(func(yield func(T) bool) {
		for i := 0; i < n; i++ {
			if !yield(v) {
				return
			}
		}
	})
}
