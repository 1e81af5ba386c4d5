// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package parsec

import (
	"fmt"
	"unicode/utf8"

	"gopkg.microglot.org/weft.go/internal/exc"
	"gopkg.microglot.org/weft.go/internal/source"
)

// Cursor is a position in a Source plus the diagnostics recorded so far.
//
// A Cursor is a small value. Copying it takes a snapshot and assigning the
// copy back restores it, including the diagnostic list:
//
//	saved := *c
//	if _, err := p.Parse(c); err != nil {
//		*c = saved
//	}
//
// Snapshots must be restored in stack order. Diagnostics recorded after a
// snapshot share storage with it and are overwritten by later reports once
// the snapshot is restored.
type Cursor struct {
	src   *Source
	pos   int
	depth int
	diags []exc.Exception
}

func NewCursor(src *Source) *Cursor {
	return &Cursor{src: src}
}

func (c *Cursor) Source() *Source {
	return c.src
}

func (c *Cursor) Name() string {
	return c.src.name
}

func (c *Cursor) Position() int {
	return c.pos
}

func (c *Cursor) Remaining() string {
	return c.src.text[c.pos:]
}

// Depth is the number of Lazy parsers currently running on this cursor.
func (c *Cursor) Depth() int {
	return c.depth
}

func (c *Cursor) AtEnd() bool {
	return c.pos >= len(c.src.text)
}

// Slice returns the source text covered by span.
func (c *Cursor) Slice(span source.Span) string {
	return c.src.text[span.Start:span.End]
}

// Location converts a span of this cursor's source into an exception location.
func (c *Cursor) Location(span source.Span) exc.Location {
	return exc.Location{URI: c.src.name, Span: span}
}

// Advance moves the cursor forward n bytes. If fewer than n bytes remain the
// cursor does not move, a needs-more-input diagnostic covering the attempted
// range is recorded, and an ErrNeedsMore error is returned.
func (c *Cursor) Advance(n int) (int, error) {
	if n < 0 {
		return c.pos, fmt.Errorf("parsec: negative advance %d", n)
	}
	remaining := len(c.src.text) - c.pos
	if n > remaining {
		return c.pos, c.outOfInput(n-remaining, "bytes")
	}
	c.pos = c.pos + n
	return c.pos, nil
}

// AdvanceRunes moves the cursor forward n characters.
func (c *Cursor) AdvanceRunes(n int) (int, error) {
	if n < 0 {
		return c.pos, fmt.Errorf("parsec: negative advance %d", n)
	}
	end := c.pos
	for x := 0; x < n; x = x + 1 {
		if end >= len(c.src.text) {
			return c.pos, c.outOfInput(n-x, "characters")
		}
		_, size := utf8.DecodeRuneInString(c.src.text[end:])
		end = end + size
	}
	c.pos = end
	return c.pos, nil
}

func (c *Cursor) outOfInput(needed int, unit string) error {
	span := source.NewSpan(c.pos, len(c.src.text))
	c.Report(exc.Newf(c.Location(span), exc.CodeNeedsMoreInput, "needs %d more %s", needed, unit))
	return &Error{
		Kind:     ErrNeedsMore,
		Span:     span,
		Expected: fmt.Sprintf("%d more %s", needed, unit),
		Needed:   needed,
	}
}

// Report records a diagnostic.
func (c *Cursor) Report(e exc.Exception) {
	c.diags = append(c.diags, e)
}

// Diagnostics returns the recorded diagnostics in the order they were
// reported.
func (c *Cursor) Diagnostics() []exc.Exception {
	out := make([]exc.Exception, len(c.diags))
	copy(out, c.diags)
	return out
}

// DiagnosticCount is the number of diagnostics recorded so far. It is cheaper
// than len(c.Diagnostics()).
func (c *Cursor) DiagnosticCount() int {
	return len(c.diags)
}
