// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package parsec

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.microglot.org/weft.go/internal/pattern"
)

// Tag matches text literally. When the remaining input is a proper prefix of
// text the error is ErrNeedsMore rather than ErrTagMismatch, which lets
// callers tell a truncated token from a wrong one.
func Tag(text string) Parser[string] {
	name := strconv.Quote(text)
	return Func(name, func(c *Cursor) (string, error) {
		rest := c.Remaining()
		start := c.pos
		if strings.HasPrefix(rest, text) {
			c.pos = c.pos + len(text)
			return c.src.text[start:c.pos], nil
		}
		if len(rest) < len(text) && strings.HasPrefix(text, rest) {
			e := fail(ErrNeedsMore, start, len(c.src.text), fmt.Sprintf("%d more bytes of %s", len(text)-len(rest), name))
			e.Needed = len(text) - len(rest)
			return "", e
		}
		return "", fail(ErrTagMismatch, start, start, name)
	})
}

// Regex matches pattern at the cursor position only. The pattern is compiled
// through the cursor's pattern cache on first use. Invalid patterns panic
// when the parser is constructed, the same way regexp.MustCompile does.
func Regex(expr string) Parser[string] {
	if _, err := pattern.Compile(expr); err != nil {
		panic(fmt.Sprintf("parsec: Regex(%q): %v", expr, err))
	}
	name := "/" + expr + "/"
	return Func(name, func(c *Cursor) (string, error) {
		start := c.pos
		re, err := c.src.patterns.Get(expr)
		if err != nil {
			return "", fail(ErrPatternMismatch, start, start, fmt.Sprintf("%s (%v)", name, err))
		}
		loc := re.FindStringIndex(c.Remaining())
		if loc == nil {
			return "", fail(ErrPatternMismatch, start, start, name)
		}
		c.pos = c.pos + loc[1]
		return c.src.text[start:c.pos], nil
	})
}
