// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package parsec

import (
	"strings"

	"gopkg.microglot.org/weft.go/internal/optional"
	"gopkg.microglot.org/weft.go/internal/source"
)

type Pair[A any, B any] struct {
	First  A
	Second B
}

type Triple[A any, B any, C any] struct {
	First  A
	Second B
	Third  C
}

// WithSpan is an output together with the byte range that produced it.
type WithSpan[T any] struct {
	Value T
	Span  source.Span
}

func names[T any](ps []Parser[T], sep string) string {
	parts := make([]string, 0, len(ps))
	for _, p := range ps {
		parts = append(parts, p.Name())
	}
	return strings.Join(parts, sep)
}

// Sequence runs every parser in order and collects their outputs. The first
// failure is returned with the cursor left at the point of failure.
func Sequence[T any](ps ...Parser[T]) Parser[[]T] {
	return Func(names(ps, " "), func(c *Cursor) ([]T, error) {
		out := make([]T, 0, len(ps))
		for _, p := range ps {
			v, err := p.Parse(c)
			if err != nil {
				return out, err
			}
			out = append(out, v)
		}
		return out, nil
	})
}

// Concat is Sequence for parsers that produce slices; the outputs are
// flattened in order.
func Concat[T any](ps ...Parser[[]T]) Parser[[]T] {
	return Func(names(ps, " "), func(c *Cursor) ([]T, error) {
		var out []T
		for _, p := range ps {
			v, err := p.Parse(c)
			out = append(out, v...)
			if err != nil {
				return out, err
			}
		}
		return out, nil
	})
}

func Seq2[A any, B any](a Parser[A], b Parser[B]) Parser[Pair[A, B]] {
	return Func(a.Name()+" "+b.Name(), func(c *Cursor) (Pair[A, B], error) {
		var out Pair[A, B]
		var err error
		if out.First, err = a.Parse(c); err != nil {
			return out, err
		}
		out.Second, err = b.Parse(c)
		return out, err
	})
}

func Seq3[A any, B any, C any](a Parser[A], b Parser[B], cp Parser[C]) Parser[Triple[A, B, C]] {
	return Func(a.Name()+" "+b.Name()+" "+cp.Name(), func(c *Cursor) (Triple[A, B, C], error) {
		var out Triple[A, B, C]
		var err error
		if out.First, err = a.Parse(c); err != nil {
			return out, err
		}
		if out.Second, err = b.Parse(c); err != nil {
			return out, err
		}
		out.Third, err = cp.Parse(c)
		return out, err
	})
}

// Alternation tries each parser from the same starting point and returns the
// first success. When every alternative fails the cursor is restored and the
// error of the alternative that got furthest is returned; on a tie the
// earliest alternative wins.
func Alternation[T any](ps ...Parser[T]) Parser[T] {
	return Func(names(ps, " | "), func(c *Cursor) (T, error) {
		saved := *c
		var best error
		bestReach := -1
		for _, p := range ps {
			v, err := p.Parse(c)
			if err == nil {
				return v, nil
			}
			if r := reach(err, c); r > bestReach {
				best = err
				bestReach = r
			}
			*c = saved
		}
		var zero T
		if best == nil {
			best = fail(ErrUnexpected, c.pos, c.pos, "one of no alternatives")
		}
		return zero, best
	})
}

// Optional never fails. It returns the output of p when p succeeds and
// restores the cursor otherwise.
func Optional[T any](p Parser[T]) Parser[optional.Optional[T]] {
	return Func("["+p.Name()+"]", func(c *Cursor) (optional.Optional[T], error) {
		saved := *c
		v, err := p.Parse(c)
		if err != nil {
			*c = saved
			return optional.None[T](), nil
		}
		return optional.Some(v), nil
	})
}

// Peek runs p and then moves the cursor back to where it started, whatever
// the outcome. Diagnostics recorded by p are kept. Peek never fails.
func Peek[T any](p Parser[T]) Parser[optional.Optional[T]] {
	return Func("&"+p.Name(), func(c *Cursor) (optional.Optional[T], error) {
		start := c.pos
		v, err := p.Parse(c)
		c.pos = start
		if err != nil {
			return optional.None[T](), nil
		}
		return optional.Some(v), nil
	})
}

// Not succeeds without consuming input when p fails, and fails when p
// succeeds.
func Not[T any](p Parser[T]) Parser[struct{}] {
	return Func("!"+p.Name(), func(c *Cursor) (struct{}, error) {
		saved := *c
		_, err := p.Parse(c)
		*c = saved
		if err == nil {
			return struct{}{}, fail(ErrNegativeLookahead, c.pos, c.pos, p.Name())
		}
		return struct{}{}, nil
	})
}

// Repeated collects outputs of p until it fails; the failed attempt is rolled
// back. A success that consumes nothing is discarded and ends the repetition.
func Repeated[T any](p Parser[T]) Parser[[]T] {
	return Func("{"+p.Name()+"}", func(c *Cursor) ([]T, error) {
		return repeat(p, c, nil), nil
	})
}

func repeat[T any](p Parser[T], c *Cursor, out []T) []T {
	for {
		saved := *c
		v, err := p.Parse(c)
		if err != nil || c.pos == saved.pos {
			*c = saved
			return out
		}
		out = append(out, v)
	}
}

// AtLeast requires k successes of p and then behaves like Repeated. A
// negative k counts as zero.
func AtLeast[T any](p Parser[T], k int) Parser[[]T] {
	k = max(k, 0)
	return Func("{"+p.Name()+"}", func(c *Cursor) ([]T, error) {
		out := make([]T, 0, k)
		for x := 0; x < k; x = x + 1 {
			v, err := p.Parse(c)
			if err != nil {
				return out, err
			}
			out = append(out, v)
		}
		return repeat(p, c, out), nil
	})
}

// Count requires exactly n successes of p. A negative n counts as zero.
func Count[T any](p Parser[T], n int) Parser[[]T] {
	n = max(n, 0)
	return Func(p.Name(), func(c *Cursor) ([]T, error) {
		out := make([]T, 0, n)
		for x := 0; x < n; x = x + 1 {
			v, err := p.Parse(c)
			if err != nil {
				return out, err
			}
			out = append(out, v)
		}
		return out, nil
	})
}

// Map transforms the output of p.
func Map[T any, U any](p Parser[T], f func(T) U) Parser[U] {
	return Func(p.Name(), func(c *Cursor) (U, error) {
		v, err := p.Parse(c)
		if err != nil {
			var zero U
			return zero, err
		}
		return f(v), nil
	})
}

// Spanned records the byte range consumed by p.
func Spanned[T any](p Parser[T]) Parser[WithSpan[T]] {
	return Func(p.Name(), func(c *Cursor) (WithSpan[T], error) {
		start := c.pos
		v, err := p.Parse(c)
		return WithSpan[T]{Value: v, Span: source.NewSpan(start, c.pos)}, err
	})
}
