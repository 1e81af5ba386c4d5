// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package grammar

import (
	"strings"

	"gopkg.microglot.org/weft.go/internal/exc"
	"gopkg.microglot.org/weft.go/internal/parsec"
	"gopkg.microglot.org/weft.go/internal/source"
	"gopkg.microglot.org/weft.go/internal/syntax"
)

func whitespace() parsec.Parser[syntax.Element] {
	return leaf(syntax.KindWhitespace, parsec.Regex(`\s+`))
}

func lineComment() parsec.Parser[syntax.Element] {
	return leaf(syntax.KindLineComment, parsec.Regex(`//[^\n]*`))
}

// blockComment matches /* ... */ with nesting. A comment that never closes
// runs to the end of input and is reported as unterminated.
func blockComment() parsec.Parser[syntax.Element] {
	open := parsec.Tag("/*")
	return parsec.Func("block comment", func(c *parsec.Cursor) (syntax.Element, error) {
		start := c.Position()
		if _, err := open.Parse(c); err != nil {
			return nil, err
		}
		rest := c.Remaining()
		depth := 1
		x := 0
		for x < len(rest) && depth > 0 {
			switch {
			case strings.HasPrefix(rest[x:], "/*"):
				depth = depth + 1
				x = x + 2
			case strings.HasPrefix(rest[x:], "*/"):
				depth = depth - 1
				x = x + 2
			default:
				x = x + 1
			}
		}
		if _, err := c.Advance(x); err != nil {
			return nil, err
		}
		span := source.NewSpan(start, c.Position())
		if depth > 0 {
			c.Report(exc.New(c.Location(span), exc.CodeUnterminated, "unterminated block comment"))
		}
		return syntax.Leaf(syntax.KindBlockComment, c.Slice(span)), nil
	})
}

// Ignorable matches one piece of trivia: a whitespace run, a line comment,
// or a block comment.
func Ignorable() parsec.Parser[syntax.Element] {
	return parsec.Named("trivia", parsec.Alternation(whitespace(), lineComment(), blockComment()))
}

// EatIgnorable matches any amount of trivia, including none.
func EatIgnorable() parsec.Parser[[]syntax.Element] {
	return parsec.Repeated(Ignorable())
}

// Padded surrounds p with trivia on both sides. The trivia become siblings of
// whatever p produced.
func Padded(p parsec.Parser[[]syntax.Element]) parsec.Parser[[]syntax.Element] {
	return parsec.Concat(EatIgnorable(), p, EatIgnorable())
}
