// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package grammar

import (
	"maps"
	"slices"
	"strings"

	"gopkg.microglot.org/weft.go/internal/exc"
	"gopkg.microglot.org/weft.go/internal/parsec"
	"gopkg.microglot.org/weft.go/internal/syntax"
)

var keywords = map[string]syntax.Kind{
	"let":      syntax.KindLetKw,
	"mut":      syntax.KindMutKw,
	"fn":       syntax.KindFnKw,
	"proto":    syntax.KindProtoKw,
	"impl":     syntax.KindImplKw,
	"import":   syntax.KindImportKw,
	"for":      syntax.KindForKw,
	"in":       syntax.KindInKw,
	"if":       syntax.KindIfKw,
	"else":     syntax.KindElseKw,
	"while":    syntax.KindWhileKw,
	"loop":     syntax.KindLoopKw,
	"return":   syntax.KindReturnKw,
	"break":    syntax.KindBreakKw,
	"continue": syntax.KindContinueKw,
	"as":       syntax.KindAsKw,
	"true":     syntax.KindTrueKw,
	"false":    syntax.KindFalseKw,
}

// Keywords lists the reserved words in sorted order.
func Keywords() []string {
	return slices.Sorted(maps.Keys(keywords))
}

const identChar = `[A-Za-z0-9_]`

// lexer holds the token level rules. Every rule swallows the trivia in front
// of its token.
type lexer struct {
	trivia parsec.Parser[[]syntax.Element]
	ident  parsec.Parser[piece]
}

func newLexer() *lexer {
	l := &lexer{trivia: EatIgnorable()}
	isKeyword := parsec.Regex(`(?:` + strings.Join(Keywords(), "|") + `)\b`)
	l.ident = parsec.Named("identifier", l.token(syntax.KindIdent, parsec.Map(
		parsec.Seq2(parsec.Not(isKeyword), parsec.Regex(`[A-Za-z_][A-Za-z0-9_]*`)),
		func(v parsec.Pair[struct{}, string]) string { return v.Second },
	)))
	return l
}

func (l *lexer) token(kind syntax.Kind, p parsec.Parser[string]) parsec.Parser[piece] {
	return lead(l.trivia, leaf(kind, p))
}

// keyword matches word only when it is not the start of a longer identifier.
func (l *lexer) keyword(word string) parsec.Parser[piece] {
	return parsec.Named(word, l.token(keywords[word], parsec.Map(
		parsec.Seq2(parsec.Tag(word), parsec.Not(parsec.Regex(identChar))),
		func(v parsec.Pair[string, struct{}]) string { return v.First },
	)))
}

// symbol matches text unless it is immediately followed by one of the
// characters in notBefore, which tells "<" apart from "<=" and "<<".
func (l *lexer) symbol(kind syntax.Kind, text string, notBefore string) parsec.Parser[piece] {
	var p parsec.Parser[string] = parsec.Tag(text)
	if notBefore != "" {
		p = parsec.Map(
			parsec.Seq2(p, parsec.Not(parsec.Regex(`[`+notBefore+`]`))),
			func(v parsec.Pair[string, struct{}]) string { return v.First },
		)
	}
	return parsec.Named(text, l.token(kind, p))
}

func (l *lexer) expect(p parsec.Parser[piece], what string) parsec.Parser[piece] {
	return expect(l.trivia, p, "expected "+what)
}

func (l *lexer) skip(stop string) parsec.Parser[piece] {
	return skip(l.trivia, stop)
}

func (l *lexer) number() parsec.Parser[piece] {
	notIdent := parsec.Not(parsec.Regex(identChar))
	first := func(v parsec.Pair[string, struct{}]) string { return v.First }
	float := l.token(syntax.KindFloat, parsec.Map(parsec.Seq2(
		parsec.Regex(`[0-9][0-9_]*\.[0-9][0-9_]*(?:[eE][+-]?[0-9]+)?`), notIdent), first))
	integer := l.token(syntax.KindInt, parsec.Map(parsec.Seq2(
		parsec.Regex(`0x[0-9A-Fa-f_]+|0b[01_]+|[0-9][0-9_]*`), notIdent), first))
	return parsec.Named("number", parsec.Alternation(float, integer))
}

// quoted matches a string or character literal. A literal that starts but
// does not close becomes an error token with a diagnostic.
func (l *lexer) quoted(kind syntax.Kind, quote string, code string, what string) parsec.Parser[piece] {
	complete := parsec.Regex(quote + `(?:[^` + quote + `\\\n]|\\.)*` + quote)
	if kind == syntax.KindChar {
		complete = parsec.Regex(quote + `(?:[^` + quote + `\\\n]|\\.)` + quote)
	}
	broken := parsec.Spanned(parsec.Regex(quote + `(?:[^` + quote + `\\\n]|\\.)*` + quote + `?`))
	lit := parsec.Func(what, func(c *parsec.Cursor) (syntax.Element, error) {
		saved := *c
		if text, err := complete.Parse(c); err == nil {
			return syntax.Leaf(kind, text), nil
		}
		*c = saved
		w, err := broken.Parse(c)
		if err != nil {
			return nil, err
		}
		c.Report(exc.Newf(c.Location(w.Span), code, "%s %s", adjective(code), what))
		return syntax.Leaf(syntax.KindError, w.Value), nil
	})
	return lead(l.trivia, lit)
}

func adjective(code string) string {
	if code == exc.CodeUnterminated {
		return "unterminated"
	}
	return "invalid"
}

func (l *lexer) literal() parsec.Parser[piece] {
	return parsec.Named("literal", parsec.Alternation(
		l.number(),
		l.quoted(syntax.KindString, `"`, exc.CodeUnterminated, "string literal"),
		l.quoted(syntax.KindChar, `'`, exc.CodeInvalidLiteral, "character literal"),
		l.keyword("true"),
		l.keyword("false"),
	))
}
