// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package parsec

import (
	"errors"
	"fmt"

	"gopkg.microglot.org/weft.go/internal/exc"
	"gopkg.microglot.org/weft.go/internal/source"
)

type ErrorKind uint8

const (
	// ErrTagMismatch is a literal that was expected but not found.
	ErrTagMismatch ErrorKind = iota + 1
	// ErrPatternMismatch is a regular expression that did not match.
	ErrPatternMismatch
	// ErrNeedsMore means input ended in the middle of a token.
	ErrNeedsMore
	// ErrNegativeLookahead means a Not parser saw the construct it forbids.
	ErrNegativeLookahead
	// ErrUnexpected covers failures of hand written parsers.
	ErrUnexpected
	// ErrTooDeep means the input nests deeper than the source allows.
	ErrTooDeep
)

func (k ErrorKind) String() string {
	switch k {
	case ErrTagMismatch:
		return "tag mismatch"
	case ErrPatternMismatch:
		return "pattern mismatch"
	case ErrNeedsMore:
		return "needs more input"
	case ErrNegativeLookahead:
		return "negative lookahead violated"
	case ErrUnexpected:
		return "unexpected input"
	case ErrTooDeep:
		return "nesting too deep"
	default:
		return fmt.Sprintf("error-kind-%d", k)
	}
}

// Code maps the kind onto the diagnostic code table.
func (k ErrorKind) Code() string {
	switch k {
	case ErrTagMismatch:
		return exc.CodeTagMismatch
	case ErrPatternMismatch:
		return exc.CodePatternMismatch
	case ErrNeedsMore:
		return exc.CodeNeedsMoreInput
	case ErrNegativeLookahead:
		return exc.CodeNegativeLookahead
	case ErrTooDeep:
		return exc.CodeNestingTooDeep
	default:
		return exc.CodeUnexpectedInput
	}
}

// Error is a local parse failure. Span starts where the failing primitive
// was attempted.
type Error struct {
	Kind     ErrorKind
	Span     source.Span
	Expected string
	// Needed is the number of missing units for ErrNeedsMore.
	Needed int
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrNeedsMore:
		return fmt.Sprintf("at %d: unexpected end of input, needs %s", e.Span.Start, e.Expected)
	case ErrNegativeLookahead:
		return fmt.Sprintf("at %d: unexpected %s", e.Span.Start, e.Expected)
	case ErrTooDeep:
		return fmt.Sprintf("at %d: %s nested too deeply", e.Span.Start, e.Expected)
	default:
		return fmt.Sprintf("at %d: expected %s", e.Span.Start, e.Expected)
	}
}

func fail(kind ErrorKind, start int, end int, expected string) *Error {
	return &Error{
		Kind:     kind,
		Span:     source.NewSpan(start, end),
		Expected: expected,
	}
}

// Failf builds an ErrUnexpected error at the cursor for hand written parsers.
func Failf(c *Cursor, format string, args ...any) error {
	return fail(ErrUnexpected, c.pos, c.pos, fmt.Sprintf(format, args...))
}

// AsError extracts the *Error from err, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsNeedsMore reports whether err means the input ended mid-token.
func IsNeedsMore(err error) bool {
	e, ok := AsError(err)
	return ok && e.Kind == ErrNeedsMore
}

// reach is how far a failed attempt got before failing. It drives the
// longest-match choice between failed alternatives.
func reach(err error, c *Cursor) int {
	r := c.pos
	if e, ok := AsError(err); ok && e.Span.Start > r {
		r = e.Span.Start
	}
	return r
}
