// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package syntax

import "fmt"

// Kind classifies both leaves and interior nodes of a syntax tree.
type Kind uint16

const (
	KindUnknown Kind = iota

	// Trivia
	KindWhitespace
	KindLineComment
	KindBlockComment

	// Tokens
	KindError
	KindIdent
	KindInt
	KindFloat
	KindString
	KindChar

	// Keywords
	KindLetKw
	KindMutKw
	KindFnKw
	KindProtoKw
	KindImplKw
	KindImportKw
	KindForKw
	KindInKw
	KindIfKw
	KindElseKw
	KindWhileKw
	KindLoopKw
	KindReturnKw
	KindBreakKw
	KindContinueKw
	KindAsKw
	KindTrueKw
	KindFalseKw

	// Punctuation
	KindLParen
	KindRParen
	KindLBrace
	KindRBrace
	KindLBracket
	KindRBracket
	KindComma
	KindSemicolon
	KindColon
	KindColonColon
	KindDot
	KindArrow
	KindAssign

	// Operators
	KindOrOr
	KindAndAnd
	KindEqEq
	KindNotEq
	KindLt
	KindGt
	KindLtEq
	KindGtEq
	KindPipe
	KindAmp
	KindCaret
	KindShl
	KindShr
	KindPlus
	KindMinus
	KindStar
	KindSlash
	KindPercent
	KindBang

	// Nodes
	KindSourceFile
	KindImportDecl
	KindLetDecl
	KindFnDecl
	KindFnSig
	KindParamList
	KindParam
	KindProtoDecl
	KindImplDecl
	KindPath
	KindListType
	KindBlock
	KindEmptyStmt
	KindExprStmt
	KindAssignStmt
	KindBinaryExpr
	KindUnaryExpr
	KindCastExpr
	KindParenExpr
	KindListExpr
	KindCallExpr
	KindArgList
	KindFieldExpr
	KindIfExpr
	KindElseClause
	KindWhileExpr
	KindLoopExpr
	KindForExpr
	KindReturnExpr
	KindBreakExpr
	KindContinueExpr
	KindErrorNode

	kindCount
)

var kindNames = map[Kind]string{
	KindUnknown:      "Unknown",
	KindWhitespace:   "Whitespace",
	KindLineComment:  "LineComment",
	KindBlockComment: "BlockComment",
	KindError:        "Error",
	KindIdent:        "Ident",
	KindInt:          "Int",
	KindFloat:        "Float",
	KindString:       "String",
	KindChar:         "Char",
	KindLetKw:        "LetKw",
	KindMutKw:        "MutKw",
	KindFnKw:         "FnKw",
	KindProtoKw:      "ProtoKw",
	KindImplKw:       "ImplKw",
	KindImportKw:     "ImportKw",
	KindForKw:        "ForKw",
	KindInKw:         "InKw",
	KindIfKw:         "IfKw",
	KindElseKw:       "ElseKw",
	KindWhileKw:      "WhileKw",
	KindLoopKw:       "LoopKw",
	KindReturnKw:     "ReturnKw",
	KindBreakKw:      "BreakKw",
	KindContinueKw:   "ContinueKw",
	KindAsKw:         "AsKw",
	KindTrueKw:       "TrueKw",
	KindFalseKw:      "FalseKw",
	KindLParen:       "LParen",
	KindRParen:       "RParen",
	KindLBrace:       "LBrace",
	KindRBrace:       "RBrace",
	KindLBracket:     "LBracket",
	KindRBracket:     "RBracket",
	KindComma:        "Comma",
	KindSemicolon:    "Semicolon",
	KindColon:        "Colon",
	KindColonColon:   "ColonColon",
	KindDot:          "Dot",
	KindArrow:        "Arrow",
	KindAssign:       "Assign",
	KindOrOr:         "OrOr",
	KindAndAnd:       "AndAnd",
	KindEqEq:         "EqEq",
	KindNotEq:        "NotEq",
	KindLt:           "Lt",
	KindGt:           "Gt",
	KindLtEq:         "LtEq",
	KindGtEq:         "GtEq",
	KindPipe:         "Pipe",
	KindAmp:          "Amp",
	KindCaret:        "Caret",
	KindShl:          "Shl",
	KindShr:          "Shr",
	KindPlus:         "Plus",
	KindMinus:        "Minus",
	KindStar:         "Star",
	KindSlash:        "Slash",
	KindPercent:      "Percent",
	KindBang:         "Bang",
	KindSourceFile:   "SourceFile",
	KindImportDecl:   "ImportDecl",
	KindLetDecl:      "LetDecl",
	KindFnDecl:       "FnDecl",
	KindFnSig:        "FnSig",
	KindParamList:    "ParamList",
	KindParam:        "Param",
	KindProtoDecl:    "ProtoDecl",
	KindImplDecl:     "ImplDecl",
	KindPath:         "Path",
	KindListType:     "ListType",
	KindBlock:        "Block",
	KindEmptyStmt:    "EmptyStmt",
	KindExprStmt:     "ExprStmt",
	KindAssignStmt:   "AssignStmt",
	KindBinaryExpr:   "BinaryExpr",
	KindUnaryExpr:    "UnaryExpr",
	KindCastExpr:     "CastExpr",
	KindParenExpr:    "ParenExpr",
	KindListExpr:     "ListExpr",
	KindCallExpr:     "CallExpr",
	KindArgList:      "ArgList",
	KindFieldExpr:    "FieldExpr",
	KindIfExpr:       "IfExpr",
	KindElseClause:   "ElseClause",
	KindWhileExpr:    "WhileExpr",
	KindLoopExpr:     "LoopExpr",
	KindForExpr:      "ForExpr",
	KindReturnExpr:   "ReturnExpr",
	KindBreakExpr:    "BreakExpr",
	KindContinueExpr: "ContinueExpr",
	KindErrorNode:    "ErrorNode",
}

var kindsByName = func() map[string]Kind {
	out := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		out[name] = k
	}
	return out
}()

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint16(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(name string) (Kind, error) {
	if k, ok := kindsByName[name]; ok {
		return k, nil
	}
	return KindUnknown, fmt.Errorf("unknown syntax kind %q", name)
}

// IsTrivia reports whether tokens of this kind carry no meaning for the
// grammar.
func (k Kind) IsTrivia() bool {
	return k == KindWhitespace || k == KindLineComment || k == KindBlockComment
}

// IsToken reports whether the kind labels a leaf.
func (k Kind) IsToken() bool {
	return k > KindUnknown && k < KindSourceFile
}

func (k Kind) IsKeyword() bool {
	return k >= KindLetKw && k <= KindFalseKw
}

// IsBlockExpr reports whether an expression of this kind ends in a block and
// may stand as a statement without a trailing semicolon.
func (k Kind) IsBlockExpr() bool {
	switch k {
	case KindIfExpr, KindWhileExpr, KindLoopExpr, KindForExpr, KindBlock:
		return true
	default:
		return false
	}
}

// AllKinds lists every defined kind in declaration order.
func AllKinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := KindUnknown; k < kindCount; k = k + 1 {
		out = append(out, k)
	}
	return out
}
