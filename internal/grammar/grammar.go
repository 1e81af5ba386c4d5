// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package grammar is the Weft grammar written with the parsec combinators.
// Parsing never fails: malformed input is kept in the tree as error tokens
// and error nodes and explained by diagnostics.
package grammar

import (
	"sync"

	"gopkg.microglot.org/weft.go/internal/exc"
	"gopkg.microglot.org/weft.go/internal/parsec"
	"gopkg.microglot.org/weft.go/internal/source"
	"gopkg.microglot.org/weft.go/internal/syntax"
)

type Result struct {
	Root        *syntax.Node
	Diagnostics []exc.Exception
}

// Text reproduces the parsed input.
func (r *Result) Text() string {
	return syntax.Text(r.Root)
}

type rules struct {
	*lexer
	expr      parsec.Parser[piece]
	block     parsec.Parser[piece]
	blockForm parsec.Parser[piece]
	typ       parsec.Parser[piece]
	path      parsec.Parser[piece]
	let       parsec.Parser[piece]
	item      parsec.Parser[piece]
}

func newRules() *rules {
	r := &rules{lexer: newLexer()}
	// Recursive rules are bound late so they can refer to each other.
	r.expr = parsec.Lazy("expression", r.expression)
	r.block = parsec.Lazy("block", r.blockRule)
	r.blockForm = parsec.Lazy("block expression", r.blockExpression)
	r.typ = parsec.Lazy("type", r.typeRule)
	r.path = r.pathRule()
	r.let = r.letDecl()
	r.item = r.items()
	return r
}

var defaultRules = sync.OnceValue(newRules)

// sourceFile wraps top and everything after it in a SourceFile node. Input
// that top cannot start on is skipped one word or symbol at a time.
func (r *rules) sourceFile(top parsec.Parser[piece], c *parsec.Cursor) *syntax.Node {
	var children []syntax.Element
	rest := parsec.Alternation(top, r.skip(""))
	for {
		start := c.Position()
		p, err := rest.Parse(c)
		if err != nil || c.Position() == start {
			break
		}
		children = append(children, p.elements()...)
	}
	trailing, _ := r.trivia.Parse(c)
	children = append(children, trailing...)
	if !c.AtEnd() {
		span := source.NewSpan(c.Position(), len(c.Source().Text()))
		c.Report(exc.New(c.Location(span), exc.CodeUnexpectedInput, "unexpected input"))
		children = append(children, syntax.NewNode(syntax.KindErrorNode, syntax.Leaf(syntax.KindError, c.Slice(span))))
		_, _ = c.Advance(span.Len())
	}
	return syntax.NewNode(syntax.KindSourceFile, children...)
}

// SourceFile parses a whole Weft file.
func SourceFile(name string, text string, opts ...parsec.SourceOption) *Result {
	c := parsec.NewCursor(parsec.NewSource(name, text, opts...))
	g := defaultRules()
	root := g.sourceFile(g.item, c)
	return &Result{Root: root, Diagnostics: c.Diagnostics()}
}

// ParseExpr parses a single expression. The root is a SourceFile node
// holding the expression, its surrounding trivia, and error nodes for any
// input after it.
func ParseExpr(name string, text string, opts ...parsec.SourceOption) *Result {
	c := parsec.NewCursor(parsec.NewSource(name, text, opts...))
	g := defaultRules()
	first, _ := g.expect(g.expr, "expression").Parse(c)
	rest := g.sourceFile(parsec.Func("nothing", func(c *parsec.Cursor) (piece, error) {
		return piece{}, parsec.Failf(c, "end of expression")
	}), c)
	root := syntax.NewNode(syntax.KindSourceFile, append(first.elements(), rest.Children()...)...)
	return &Result{Root: root, Diagnostics: c.Diagnostics()}
}
