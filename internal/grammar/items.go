// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package grammar

import (
	"gopkg.microglot.org/weft.go/internal/parsec"
	"gopkg.microglot.org/weft.go/internal/syntax"
)

func (r *rules) semicolon() parsec.Parser[piece] {
	return r.expect(r.symbol(syntax.KindSemicolon, ";", ""), `";"`)
}

func (r *rules) pathRule() parsec.Parser[piece] {
	return build(syntax.KindPath,
		one(r.ident),
		many(parsec.Concat(
			one(r.symbol(syntax.KindColonColon, "::", "")),
			one(r.expect(r.ident, "identifier")),
		)),
	)
}

func (r *rules) typeRule() parsec.Parser[piece] {
	list := build(syntax.KindListType,
		one(r.symbol(syntax.KindLBracket, "[", "")),
		one(r.expect(r.typ, "type")),
		one(r.expect(r.symbol(syntax.KindRBracket, "]", ""), `"]"`)),
	)
	return parsec.Named("type", parsec.Alternation(r.path, list))
}

func (r *rules) letDecl() parsec.Parser[piece] {
	return build(syntax.KindLetDecl,
		one(r.keyword("let")),
		opt(one(r.keyword("mut"))),
		one(r.expect(r.ident, "identifier")),
		opt(parsec.Concat(
			one(r.symbol(syntax.KindColon, ":", ":")),
			one(r.expect(r.typ, "type")),
		)),
		one(r.expect(r.symbol(syntax.KindAssign, "=", "="), `"="`)),
		one(r.expect(r.expr, "expression")),
		one(r.semicolon()),
	)
}

// statement parses the expression of an expression statement once and then
// decides how it ends: before a closing brace it is the block's value, a
// block-form expression needs nothing more, and anything else may be an
// assignment and must end in ";".
func (r *rules) statement() parsec.Parser[piece] {
	empty := build(syntax.KindEmptyStmt, one(r.symbol(syntax.KindSemicolon, ";", "")))

	head := parsec.Alternation(r.blockForm, r.expr)
	closing := followedBy(r.symbol(syntax.KindRBrace, "}", ""))
	assign := parsec.Optional(parsec.Seq2(r.symbol(syntax.KindAssign, "=", "="), r.expect(r.expr, "expression")))
	semicolon := r.semicolon()
	expr := parsec.Func("expression statement", func(c *parsec.Cursor) (piece, error) {
		first, err := head.Parse(c)
		if err != nil {
			return piece{}, err
		}
		if _, err := closing.Parse(c); err == nil || first.el.Kind().IsBlockExpr() {
			return first, nil
		}
		a, _ := assign.Parse(c)
		semi, _ := semicolon.Parse(c)
		if v, ok := a.Get(); ok {
			return node(syntax.KindAssignStmt, first, v.First, v.Second, semi), nil
		}
		return node(syntax.KindExprStmt, first, semi), nil
	})
	return parsec.Named("statement", parsec.Alternation(r.let, empty, expr))
}

func (r *rules) blockRule() parsec.Parser[piece] {
	return build(syntax.KindBlock,
		one(r.symbol(syntax.KindLBrace, "{", "")),
		many(one(parsec.Alternation(r.statement(), r.skip("}")))),
		one(r.expect(r.symbol(syntax.KindRBrace, "}", ""), `"}"`)),
	)
}

func (r *rules) fnSig() parsec.Parser[piece] {
	param := build(syntax.KindParam,
		one(r.ident),
		one(r.expect(r.symbol(syntax.KindColon, ":", ":"), `":"`)),
		one(r.expect(r.typ, "type")),
	)
	params := build(syntax.KindParamList,
		one(r.symbol(syntax.KindLParen, "(", "")),
		opt(r.commaList(param)),
		one(r.expect(r.symbol(syntax.KindRParen, ")", ""), `")"`)),
	)
	return build(syntax.KindFnSig,
		one(r.keyword("fn")),
		one(r.expect(r.ident, "function name")),
		one(r.expect(params, "parameter list")),
		opt(parsec.Concat(
			one(r.symbol(syntax.KindArrow, "->", "")),
			one(r.expect(r.typ, "return type")),
		)),
	)
}

func (r *rules) items() parsec.Parser[piece] {
	sig := r.fnSig()
	fnDecl := build(syntax.KindFnDecl,
		one(sig),
		one(r.expect(r.block, "function body")),
	)
	open := one(r.expect(r.symbol(syntax.KindLBrace, "{", ""), `"{"`))
	closing := one(r.expect(r.symbol(syntax.KindRBrace, "}", ""), `"}"`))

	importDecl := build(syntax.KindImportDecl,
		one(r.keyword("import")),
		one(r.expect(r.path, "import path")),
		one(r.semicolon()),
	)
	protoDecl := build(syntax.KindProtoDecl,
		one(r.keyword("proto")),
		one(r.expect(r.ident, "identifier")),
		open,
		many(parsec.Alternation(
			parsec.Concat(one(sig), one(r.semicolon())),
			one(r.skip("}")),
		)),
		closing,
	)
	implDecl := build(syntax.KindImplDecl,
		one(r.keyword("impl")),
		one(r.expect(r.path, "protocol path")),
		opt(parsec.Concat(
			one(r.keyword("for")),
			one(r.expect(r.typ, "type")),
		)),
		open,
		many(parsec.Alternation(one(fnDecl), one(r.skip("}")))),
		closing,
	)
	return parsec.Named("item", parsec.Alternation(importDecl, r.let, fnDecl, protoDecl, implDecl))
}
