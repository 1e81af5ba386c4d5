// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package parsec

import (
	"gopkg.microglot.org/weft.go/internal/exc"
	"gopkg.microglot.org/weft.go/internal/source"
)

// Placeholder builds the output that stands in for a failed parse. span is
// the input consumed before the failure and text is that input verbatim, so
// a placeholder that keeps text loses nothing.
type Placeholder[T any] func(span source.Span, text string) T

// Expected never fails. When p fails it records an expected-but-missing
// diagnostic carrying message and returns placeholder for the range p
// consumed up to its failure point. This lets the enclosing sequence carry on
// past malformed input. A failure caused by the depth limit is recorded as a
// nesting diagnostic instead.
func Expected[T any](p Parser[T], message string, placeholder Placeholder[T]) Parser[T] {
	return Func(p.Name(), func(c *Cursor) (T, error) {
		start := c.pos
		v, err := p.Parse(c)
		if err == nil {
			return v, nil
		}
		span := source.NewSpan(start, c.pos)
		if e, ok := AsError(err); ok && e.Kind == ErrTooDeep {
			c.Report(exc.Newf(c.Location(span), exc.CodeNestingTooDeep, "nesting deeper than %d levels", c.src.maxDepth))
		} else {
			c.Report(exc.New(c.Location(span), exc.CodeExpectedMissing, message))
		}
		return placeholder(span, c.Slice(span)), nil
	})
}
