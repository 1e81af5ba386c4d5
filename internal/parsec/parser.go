// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package parsec

import (
	"sync"
)

// Parser consumes a prefix of the cursor's remaining input and produces a T.
type Parser[T any] interface {
	Parse(c *Cursor) (T, error)
	Name() string
}

type funcParser[T any] struct {
	name string
	fn   func(c *Cursor) (T, error)
}

func (p *funcParser[T]) Parse(c *Cursor) (T, error) {
	return p.fn(c)
}

func (p *funcParser[T]) Name() string {
	return p.name
}

// Func adapts a function to the Parser interface.
func Func[T any](name string, fn func(c *Cursor) (T, error)) Parser[T] {
	return &funcParser[T]{name: name, fn: fn}
}

// Named gives p a name. When p fails without getting past its starting
// position the error is reported as expecting name instead.
func Named[T any](name string, p Parser[T]) Parser[T] {
	return Func(name, func(c *Cursor) (T, error) {
		start := c.pos
		v, err := p.Parse(c)
		if err != nil {
			if e, ok := AsError(err); ok && reach(err, c) <= start && e.Kind != ErrNeedsMore {
				return v, fail(e.Kind, start, start, name)
			}
		}
		return v, err
	})
}

// Lazy defers construction of a parser until its first use. It breaks the
// initialization cycle of recursive grammars and is safe for concurrent use.
//
// Every recursive rule goes through a Lazy parser, so Lazy is also where
// nesting is counted. Once the source's depth limit is reached it fails with
// ErrTooDeep without running the wrapped parser.
func Lazy[T any](name string, build func() Parser[T]) Parser[T] {
	get := sync.OnceValue(build)
	return Func(name, func(c *Cursor) (T, error) {
		if c.depth >= c.src.maxDepth {
			var zero T
			return zero, fail(ErrTooDeep, c.pos, c.pos, name)
		}
		c.depth = c.depth + 1
		v, err := get().Parse(c)
		c.depth = c.depth - 1
		return v, err
	})
}

// Parse runs p against a fresh cursor over src and returns the output, the
// final cursor, and the error if p failed.
func Parse[T any](p Parser[T], src *Source) (T, *Cursor, error) {
	c := NewCursor(src)
	v, err := p.Parse(c)
	return v, c, err
}

// End succeeds only when no input remains.
func End() Parser[struct{}] {
	return Func("end of input", func(c *Cursor) (struct{}, error) {
		if c.AtEnd() {
			return struct{}{}, nil
		}
		return struct{}{}, fail(ErrUnexpected, c.pos, c.pos, "end of input")
	})
}

// Succeed consumes nothing and returns v.
func Succeed[T any](v T) Parser[T] {
	return Func("succeed", func(c *Cursor) (T, error) {
		return v, nil
	})
}
