// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package grammar

import (
	"gopkg.microglot.org/weft.go/internal/exc"
	"gopkg.microglot.org/weft.go/internal/optional"
	"gopkg.microglot.org/weft.go/internal/parsec"
	"gopkg.microglot.org/weft.go/internal/source"
	"gopkg.microglot.org/weft.go/internal/syntax"
)

// piece is one syntactic element together with the trivia in front of it.
//
// Every grammar rule produces a piece. When rules are combined into a node
// the leading trivia of the first piece stays outside the node, so nodes
// always begin with a significant element and trivia between two elements
// ends up in their closest common parent.
type piece struct {
	trivia []syntax.Element
	el     syntax.Element
}

func (p piece) elements() []syntax.Element {
	out := make([]syntax.Element, 0, len(p.trivia)+1)
	out = append(out, p.trivia...)
	return append(out, p.el)
}

func flatten(ps []piece) []syntax.Element {
	var out []syntax.Element
	for _, p := range ps {
		out = append(out, p.elements()...)
	}
	return out
}

func node(kind syntax.Kind, ps ...piece) piece {
	if len(ps) == 0 {
		return piece{el: syntax.NewNode(kind)}
	}
	children := append([]syntax.Element{ps[0].el}, flatten(ps[1:])...)
	return piece{trivia: ps[0].trivia, el: syntax.NewNode(kind, children...)}
}

func leaf(kind syntax.Kind, p parsec.Parser[string]) parsec.Parser[syntax.Element] {
	return parsec.Map(p, func(text string) syntax.Element {
		return syntax.Leaf(kind, text)
	})
}

// lead attaches the trivia in front of p.
func lead(trivia parsec.Parser[[]syntax.Element], p parsec.Parser[syntax.Element]) parsec.Parser[piece] {
	return parsec.Map(parsec.Seq2(trivia, p), func(v parsec.Pair[[]syntax.Element, syntax.Element]) piece {
		return piece{trivia: v.First, el: v.Second}
	})
}

func one(p parsec.Parser[piece]) parsec.Parser[[]piece] {
	return parsec.Map(p, func(v piece) []piece {
		return []piece{v}
	})
}

func opt(p parsec.Parser[[]piece]) parsec.Parser[[]piece] {
	return parsec.Map(parsec.Optional(p), func(v optional.Optional[[]piece]) []piece {
		return v.OrElse(nil)
	})
}

func build(kind syntax.Kind, parts ...parsec.Parser[[]piece]) parsec.Parser[piece] {
	return parsec.Named(kind.String(), parsec.Map(parsec.Concat(parts...), func(ps []piece) piece {
		return node(kind, ps...)
	}))
}

// followedBy succeeds without consuming input when p would match.
func followedBy[T any](p parsec.Parser[T]) parsec.Parser[struct{}] {
	return parsec.Not(parsec.Not(p))
}

func missing(span source.Span, text string) piece {
	return piece{el: syntax.Leaf(syntax.KindError, text)}
}

// expect never fails. Input that does not match p is replaced by an error
// token and an expected-but-missing diagnostic.
func expect(trivia parsec.Parser[[]syntax.Element], p parsec.Parser[piece], message string) parsec.Parser[piece] {
	return parsec.Map(parsec.Seq2(trivia, parsec.Expected(p, message, missing)), func(v parsec.Pair[[]syntax.Element, piece]) piece {
		v.Second.trivia = append(v.First, v.Second.trivia...)
		return v.Second
	})
}

// skip consumes a single word or symbol that no rule accepts and wraps it in
// an error node. stop lists the symbols it must leave alone.
func skip(trivia parsec.Parser[[]syntax.Element], stop string) parsec.Parser[piece] {
	expr := `[A-Za-z0-9_]+|[^\sA-Za-z0-9_` + stop + `]`
	word := parsec.Spanned(parsec.Regex(expr))
	return parsec.Func("unexpected input", func(c *parsec.Cursor) (piece, error) {
		leading, err := trivia.Parse(c)
		if err != nil {
			return piece{}, err
		}
		w, err := word.Parse(c)
		if err != nil {
			return piece{}, err
		}
		c.Report(exc.Newf(c.Location(w.Span), exc.CodeUnexpectedInput, "unexpected %q", w.Value))
		return piece{
			trivia: leading,
			el:     syntax.NewNode(syntax.KindErrorNode, syntax.Leaf(syntax.KindError, w.Value)),
		}, nil
	})
}

func many(p parsec.Parser[[]piece]) parsec.Parser[[]piece] {
	return parsec.Map(parsec.Repeated(p), func(vs [][]piece) []piece {
		var out []piece
		for _, v := range vs {
			out = append(out, v...)
		}
		return out
	})
}
