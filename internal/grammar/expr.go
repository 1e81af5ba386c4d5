// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package grammar

import (
	"gopkg.microglot.org/weft.go/internal/parsec"
	"gopkg.microglot.org/weft.go/internal/syntax"
)

// binary builds one left associative precedence level over next.
func (r *rules) binary(next parsec.Parser[piece], ops ...parsec.Parser[piece]) parsec.Parser[piece] {
	tail := parsec.Seq2(parsec.Alternation(ops...), r.expect(next, "expression after operator"))
	return parsec.Map(parsec.Seq2(next, parsec.Repeated(tail)), func(v parsec.Pair[piece, []parsec.Pair[piece, piece]]) piece {
		left := v.First
		for _, t := range v.Second {
			left = node(syntax.KindBinaryExpr, left, t.First, t.Second)
		}
		return left
	})
}

type suffix struct {
	kind  syntax.Kind
	parts []piece
}

func foldSuffixes(v parsec.Pair[piece, []suffix]) piece {
	left := v.First
	for _, s := range v.Second {
		left = node(s.kind, append([]piece{left}, s.parts...)...)
	}
	return left
}

func (r *rules) expression() parsec.Parser[piece] {
	primary := r.primary()

	args := build(syntax.KindArgList,
		one(r.symbol(syntax.KindLParen, "(", "")),
		opt(r.commaList(r.expr)),
		one(r.expect(r.symbol(syntax.KindRParen, ")", ""), `")"`)),
	)
	call := parsec.Map(args, func(p piece) suffix {
		return suffix{kind: syntax.KindCallExpr, parts: []piece{p}}
	})
	field := parsec.Map(
		parsec.Seq2(r.symbol(syntax.KindDot, ".", ""), r.expect(r.ident, "field name")),
		func(v parsec.Pair[piece, piece]) suffix {
			return suffix{kind: syntax.KindFieldExpr, parts: []piece{v.First, v.Second}}
		},
	)
	postfix := parsec.Map(parsec.Seq2(primary, parsec.Repeated(parsec.Alternation(call, field))), foldSuffixes)

	var unary parsec.Parser[piece]
	prefix := parsec.Alternation(
		r.symbol(syntax.KindBang, "!", "="),
		r.symbol(syntax.KindMinus, "-", ""),
	)
	unary = parsec.Alternation(
		parsec.Map(
			parsec.Seq2(prefix, r.expect(parsec.Lazy("operand", func() parsec.Parser[piece] { return unary }), "operand")),
			func(v parsec.Pair[piece, piece]) piece {
				return node(syntax.KindUnaryExpr, v.First, v.Second)
			},
		),
		postfix,
	)

	as := parsec.Map(
		parsec.Seq2(r.keyword("as"), r.expect(r.typ, "type")),
		func(v parsec.Pair[piece, piece]) suffix {
			return suffix{kind: syntax.KindCastExpr, parts: []piece{v.First, v.Second}}
		},
	)
	cast := parsec.Map(parsec.Seq2(unary, parsec.Repeated(as)), foldSuffixes)

	multiplicative := r.binary(cast,
		r.symbol(syntax.KindStar, "*", ""),
		r.symbol(syntax.KindSlash, "/", ""),
		r.symbol(syntax.KindPercent, "%", ""),
	)
	additive := r.binary(multiplicative,
		r.symbol(syntax.KindPlus, "+", ""),
		r.symbol(syntax.KindMinus, "-", ""),
	)
	shift := r.binary(additive,
		r.symbol(syntax.KindShl, "<<", ""),
		r.symbol(syntax.KindShr, ">>", ""),
	)
	bitwise := r.binary(shift,
		r.symbol(syntax.KindPipe, "|", "|"),
		r.symbol(syntax.KindAmp, "&", "&"),
		r.symbol(syntax.KindCaret, "^", ""),
	)
	comparison := r.binary(bitwise,
		r.symbol(syntax.KindEqEq, "==", ""),
		r.symbol(syntax.KindNotEq, "!=", ""),
		r.symbol(syntax.KindLtEq, "<=", ""),
		r.symbol(syntax.KindGtEq, ">=", ""),
		r.symbol(syntax.KindLt, "<", "<="),
		r.symbol(syntax.KindGt, ">", ">="),
	)
	logical := r.binary(comparison,
		r.symbol(syntax.KindOrOr, "||", ""),
		r.symbol(syntax.KindAndAnd, "&&", ""),
	)
	return parsec.Named("expression", logical)
}

func (r *rules) primary() parsec.Parser[piece] {
	paren := build(syntax.KindParenExpr,
		one(r.symbol(syntax.KindLParen, "(", "")),
		one(r.expect(r.expr, "expression")),
		one(r.expect(r.symbol(syntax.KindRParen, ")", ""), `")"`)),
	)
	list := build(syntax.KindListExpr,
		one(r.symbol(syntax.KindLBracket, "[", "")),
		opt(r.commaList(r.expr)),
		one(r.expect(r.symbol(syntax.KindRBracket, "]", ""), `"]"`)),
	)
	ret := build(syntax.KindReturnExpr,
		one(r.keyword("return")),
		opt(one(r.expr)),
	)
	brk := build(syntax.KindBreakExpr, one(r.keyword("break")))
	cont := build(syntax.KindContinueExpr, one(r.keyword("continue")))
	return parsec.Named("expression", parsec.Alternation(
		paren,
		list,
		r.literal(),
		r.blockForm,
		ret,
		brk,
		cont,
		r.path,
	))
}

// blockExpression covers the expressions that end in a block and may stand
// as statements on their own.
func (r *rules) blockExpression() parsec.Parser[piece] {
	var ifExpr parsec.Parser[piece]
	elseClause := build(syntax.KindElseClause,
		one(r.keyword("else")),
		one(r.expect(parsec.Alternation(
			parsec.Lazy("if", func() parsec.Parser[piece] { return ifExpr }),
			r.block,
		), "block")),
	)
	ifExpr = build(syntax.KindIfExpr,
		one(r.keyword("if")),
		one(r.expect(r.expr, "condition")),
		one(r.expect(r.block, "block")),
		opt(one(elseClause)),
	)
	while := build(syntax.KindWhileExpr,
		one(r.keyword("while")),
		one(r.expect(r.expr, "condition")),
		one(r.expect(r.block, "block")),
	)
	loop := build(syntax.KindLoopExpr,
		one(r.keyword("loop")),
		one(r.expect(r.block, "block")),
	)
	forExpr := build(syntax.KindForExpr,
		one(r.keyword("for")),
		one(r.expect(r.ident, "identifier")),
		one(r.expect(r.keyword("in"), `"in"`)),
		one(r.expect(r.expr, "expression")),
		one(r.expect(r.block, "block")),
	)
	return parsec.Alternation(ifExpr, while, loop, forExpr, r.block)
}

// commaList matches p { "," p } [ "," ].
func (r *rules) commaList(p parsec.Parser[piece]) parsec.Parser[[]piece] {
	comma := r.symbol(syntax.KindComma, ",", "")
	return parsec.Concat(
		one(p),
		many(parsec.Map(parsec.Seq2(comma, p), func(v parsec.Pair[piece, piece]) []piece {
			return []piece{v.First, v.Second}
		})),
		opt(one(comma)),
	)
}
