package iter

import (
	"context"

	"gopkg.microglot.org/weft.go/internal/optional"
)

type Closer interface {
	Close(ctx context.Context) error
}

// Iterator produces values until Next returns an absent Optional.
type Iterator[T any] interface {
	Next(ctx context.Context) optional.Optional[T]
	Closer
}

type Filter[T any] interface {
	Keep(ctx context.Context, v T) bool
}

// NewSlice converts a slice of values into an Iterator implementation.
func NewSlice[T any](vs []T) Iterator[T] {
	return &iteratorSlice[T]{slice: vs, offset: -1}
}

type iteratorSlice[T any] struct {
	slice  []T
	offset int
}

func (it *iteratorSlice[T]) Next(ctx context.Context) optional.Optional[T] {
	it.offset = it.offset + 1
	if it.offset >= len(it.slice) {
		return optional.None[T]()
	}
	return optional.Some(it.slice[it.offset])
}

func (it *iteratorSlice[T]) Close(ctx context.Context) error {
	return nil
}

// NewFunc adapts a generator function. The function is called until it
// reports false.
func NewFunc[T any](next func(ctx context.Context) (T, bool)) Iterator[T] {
	return &iteratorFunc[T]{next: next}
}

type iteratorFunc[T any] struct {
	next func(ctx context.Context) (T, bool)
	done bool
}

func (it *iteratorFunc[T]) Next(ctx context.Context) optional.Optional[T] {
	if it.done {
		return optional.None[T]()
	}
	v, ok := it.next(ctx)
	if !ok {
		it.done = true
		return optional.None[T]()
	}
	return optional.Some(v)
}

func (it *iteratorFunc[T]) Close(ctx context.Context) error {
	it.done = true
	return nil
}

// NewIteratorFilter wraps an iterator with a filter so that only values that
// pass the filter are returned.
func NewIteratorFilter[T any](it Iterator[T], f Filter[T]) Iterator[T] {
	return &iteratorFilter[T]{
		iter:   it,
		filter: f,
	}
}

type iteratorFilter[T any] struct {
	iter   Iterator[T]
	filter Filter[T]
}

func (it *iteratorFilter[T]) Next(ctx context.Context) optional.Optional[T] {
	for {
		v := it.iter.Next(ctx)
		if !v.IsPresent() {
			return v
		}
		if it.filter.Keep(ctx, v.Value()) {
			return v
		}
	}
}

func (it *iteratorFilter[T]) Close(ctx context.Context) error {
	return it.iter.Close(ctx)
}

// Collect drains the iterator into a slice and closes it.
func Collect[T any](ctx context.Context, it Iterator[T]) ([]T, error) {
	var out []T
	for v := it.Next(ctx); v.IsPresent(); v = it.Next(ctx) {
		out = append(out, v.Value())
	}
	return out, it.Close(ctx)
}

// FilterFunc is an adaptor for simple filter functions that makes them
// compatible with the Filter interface. Use like:
//
//	FilterFunc[T](func(ctx context.Context, val T) bool { return true })
//
// Note that this type should never be referenced directly in any signature.
// Always use Filter as an input or output type.
type FilterFunc[T any] func(ctx context.Context, val T) bool

func (f FilterFunc[T]) Keep(ctx context.Context, val T) bool {
	return f(ctx, val)
}
