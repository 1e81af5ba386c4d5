// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package grammar

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gopkg.microglot.org/weft.go/internal/exc"
	"gopkg.microglot.org/weft.go/internal/parsec"
	"gopkg.microglot.org/weft.go/internal/pattern"
	"gopkg.microglot.org/weft.go/internal/source"
	"gopkg.microglot.org/weft.go/internal/syntax"
)

// sexpr renders the significant structure of el. Error tokens show as
// <err:text>.
func sexpr(el syntax.Element) string {
	switch v := el.(type) {
	case *syntax.Token:
		if v.Kind() == syntax.KindError {
			return "<err:" + v.Text() + ">"
		}
		return v.Text()
	case *syntax.Node:
		parts := []string{v.Kind().String()}
		for _, child := range v.Significant() {
			parts = append(parts, sexpr(child))
		}
		return "(" + strings.Join(parts, " ") + ")"
	default:
		return "?"
	}
}

func codes(diags []exc.Exception) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code())
	}
	return out
}

const program = `import std::io;

// Entry point.
fn main(args: [str], n: int) -> int {
	let mut total: int = 0;
	for a in args {
		total = total + a.len() * 2;
	}
	if total > n && !done {
		return total as int;
	} else if total == 0 {
		io::print("none");
	} else {
		loop { break; }
	}
	while total >= 1 { total = total >> 1; }
	/* nested /* block */ comment */
	[total, 'x', 1.5e3, 0b1010,]
}

proto Shape {
	fn area(s: Self) -> float;
}

impl Shape for Square {
	fn area(s: Self) -> float { s.side * s.side }
}
`

func TestSourceFileLossless(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input string
		clean bool
	}{
		{name: "program", input: program, clean: true},
		{name: "empty", input: "", clean: true},
		{name: "only trivia", input: "  \n// c\n/* d */\t", clean: true},
		{name: "let", input: "let x = 1;", clean: true},
		{name: "garbage", input: "}}} let = = fn (", clean: false},
		{name: "unterminated string", input: `let s = "abc`, clean: false},
		{name: "bad char", input: `let c = 'ab';`, clean: false},
		{name: "unterminated comment", input: "let x = 1; /* open", clean: false},
		{name: "non ascii", input: "let é = 1;", clean: false},
		{name: "dangling operator", input: "let x = 1 +", clean: false},
		{name: "lone keyword", input: "fn", clean: false},
		{name: "stray slash", input: "/", clean: false},
		{name: "unclosed block", input: "fn f() { let x = [1, 2", clean: false},
		{name: "vertical tab", input: "let\vx = 1;", clean: false},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			res := SourceFile("/t.weft", testCase.input)
			require.Equal(t, testCase.input, res.Text())
			require.Equal(t, len(testCase.input), res.Root.Len())
			require.Equal(t, syntax.KindSourceFile, res.Root.Kind())
			if testCase.clean {
				require.Empty(t, res.Diagnostics, codes(res.Diagnostics))
			} else {
				require.NotEmpty(t, res.Diagnostics)
			}
			for _, d := range res.Diagnostics {
				span := d.Location().Span
				require.True(t, span.Start <= span.End && span.End <= len(testCase.input), d.Error())
				require.Equal(t, "/t.weft", d.Location().URI)
			}
		})
	}
}

func TestReparseAfterSerialization(t *testing.T) {
	t.Parallel()

	for _, input := range []string{program, "}}} let = = fn (", "fn f() { a = 1 b }"} {
		res := SourceFile("/t.weft", input)
		data, err := json.Marshal(res.Root)
		require.NoError(t, err)
		var back syntax.Node
		require.NoError(t, json.Unmarshal(data, &back))

		again := SourceFile("/t.weft", syntax.Text(&back))
		require.Equal(t, syntax.Kinds(res.Root, false), syntax.Kinds(again.Root, false))
		require.Equal(t, syntax.Kinds(res.Root, true), syntax.Kinds(&back, true))
	}
}

func TestExpressions(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		expected string
	}{
		{input: "1 - 2 - 3", expected: "(BinaryExpr (BinaryExpr 1 - 2) - 3)"},
		{input: "1 + 2 * 3", expected: "(BinaryExpr 1 + (BinaryExpr 2 * 3))"},
		{input: "1 * 2 + 3", expected: "(BinaryExpr (BinaryExpr 1 * 2) + 3)"},
		{input: "a || b && c", expected: "(BinaryExpr (BinaryExpr (Path a) || (Path b)) && (Path c))"},
		{input: "a < b << c", expected: "(BinaryExpr (Path a) < (BinaryExpr (Path b) << (Path c)))"},
		{input: "a <= b", expected: "(BinaryExpr (Path a) <= (Path b))"},
		{input: "a<-b", expected: "(BinaryExpr (Path a) < (UnaryExpr - (Path b)))"},
		{input: "a | b & c ^ d", expected: "(BinaryExpr (BinaryExpr (BinaryExpr (Path a) | (Path b)) & (Path c)) ^ (Path d))"},
		{input: "a == b | c", expected: "(BinaryExpr (Path a) == (BinaryExpr (Path b) | (Path c)))"},
		{input: "!a == b", expected: "(BinaryExpr (UnaryExpr ! (Path a)) == (Path b))"},
		{input: "--x", expected: "(UnaryExpr - (UnaryExpr - (Path x)))"},
		{input: "-a as T", expected: "(CastExpr (UnaryExpr - (Path a)) as (Path T))"},
		{input: "x as [T] as U", expected: "(CastExpr (CastExpr (Path x) as (ListType [ (Path T) ])) as (Path U))"},
		{input: "x.y(1, 2)", expected: "(CallExpr (FieldExpr (Path x) . y) (ArgList ( 1 , 2 )))"},
		{input: "f()", expected: "(CallExpr (Path f) (ArgList ( )))"},
		{input: "1.len", expected: "(FieldExpr 1 . len)"},
		{input: "[1, 2,]", expected: "(ListExpr [ 1 , 2 , ])"},
		{input: "[]", expected: "(ListExpr [ ])"},
		{input: "(1 + 2) * 3", expected: "(BinaryExpr (ParenExpr ( (BinaryExpr 1 + 2) )) * 3)"},
		{input: "a::b::c", expected: "(Path a :: b :: c)"},
		{input: "1.5 % 0x1F", expected: "(BinaryExpr 1.5 % 0x1F)"},
		{input: `"hi" + 'c'`, expected: `(BinaryExpr "hi" + 'c')`},
		{input: `"a\"b"`, expected: `"a\"b"`},
		{input: "true != false", expected: "(BinaryExpr true != false)"},
		{input: "letter", expected: "(Path letter)"},
		{input: "return", expected: "(ReturnExpr return)"},
		{input: "return 1", expected: "(ReturnExpr return 1)"},
		{input: "break", expected: "(BreakExpr break)"},
		{input: "loop { continue }", expected: "(LoopExpr loop (Block { (ContinueExpr continue) }))"},
		{input: "while a { }", expected: "(WhileExpr while (Path a) (Block { }))"},
		{input: "for i in xs { i }", expected: "(ForExpr for i in (Path xs) (Block { (Path i) }))"},
		{
			input:    "if a { 1 } else if b { 2 } else { 3 }",
			expected: "(IfExpr if (Path a) (Block { 1 }) (ElseClause else (IfExpr if (Path b) (Block { 2 }) (ElseClause else (Block { 3 })))))",
		},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()
			res := ParseExpr("/e.weft", testCase.input)
			require.Empty(t, res.Diagnostics, codes(res.Diagnostics))
			require.Equal(t, testCase.input, res.Text())
			sig := res.Root.Significant()
			require.Len(t, sig, 1)
			require.Equal(t, testCase.expected, sexpr(sig[0]))
		})
	}
}

func TestBinaryTriviaPlacement(t *testing.T) {
	t.Parallel()

	res := ParseExpr("/e.weft", "  1 /* c */ + 2 ")
	require.Empty(t, res.Diagnostics)
	require.Equal(t, []syntax.Kind{syntax.KindWhitespace, syntax.KindBinaryExpr, syntax.KindWhitespace}, kindsOf(res.Root.Children()))

	bin := res.Root.Children()[1].(*syntax.Node)
	require.Equal(t, []syntax.Kind{
		syntax.KindInt,
		syntax.KindWhitespace, syntax.KindBlockComment, syntax.KindWhitespace,
		syntax.KindPlus,
		syntax.KindWhitespace,
		syntax.KindInt,
	}, kindsOf(bin.Children()))
}

func kindsOf(els []syntax.Element) []syntax.Kind {
	out := make([]syntax.Kind, 0, len(els))
	for _, el := range els {
		out = append(out, el.Kind())
	}
	return out
}

func TestMissingOperand(t *testing.T) {
	t.Parallel()

	res := ParseExpr("/e.weft", "1 +")
	require.Equal(t, []string{exc.CodeExpectedMissing}, codes(res.Diagnostics))
	require.Equal(t, "(BinaryExpr 1 + <err:>)", sexpr(res.Root.Significant()[0]))
	require.Equal(t, source.NewSpan(3, 3), res.Diagnostics[0].Location().Span)
}

func TestLetWithMissingExpression(t *testing.T) {
	t.Parallel()

	res := SourceFile("/t.weft", "let x = ;")
	require.Len(t, res.Diagnostics, 1)
	require.Equal(t, exc.CodeExpectedMissing, res.Diagnostics[0].Code())
	require.Equal(t, source.NewSpan(8, 8), res.Diagnostics[0].Location().Span)

	sig := res.Root.Significant()
	require.Len(t, sig, 1)
	require.Equal(t, "(LetDecl let x = <err:> ;)", sexpr(sig[0]))
	require.Equal(t, "let x = ;", res.Text())
}

func TestDeclarations(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		expected string
	}{
		{input: "import a::b;", expected: "(ImportDecl import (Path a :: b) ;)"},
		{input: "let mut x: [int] = 1;", expected: "(LetDecl let mut x : (ListType [ (Path int) ]) = 1 ;)"},
		{input: "fn f() {}", expected: "(FnDecl (FnSig fn f (ParamList ( ))) (Block { }))"},
		{
			input:    "fn f(a: A, b: B,) -> C { a }",
			expected: "(FnDecl (FnSig fn f (ParamList ( (Param a : (Path A)) , (Param b : (Path B)) , )) -> (Path C)) (Block { (Path a) }))",
		},
		{
			input:    "proto P { fn a(); }",
			expected: "(ProtoDecl proto P { (FnSig fn a (ParamList ( ))) ; })",
		},
		{
			input:    "impl P for T { fn a() {} }",
			expected: "(ImplDecl impl (Path P) for (Path T) { (FnDecl (FnSig fn a (ParamList ( ))) (Block { })) })",
		},
		{
			input:    "fn f() { let y = 1; ; x = y; g(); if a {} y }",
			expected: "(FnDecl (FnSig fn f (ParamList ( ))) (Block { (LetDecl let y = 1 ;) (EmptyStmt ;) (AssignStmt (Path x) = (Path y) ;) (ExprStmt (CallExpr (Path g) (ArgList ( ))) ;) (IfExpr if (Path a) (Block { })) (Path y) }))",
		},
		{
			input:    "fn f() { if a {} - 1; while b {} loop {}; x }",
			expected: "(FnDecl (FnSig fn f (ParamList ( ))) (Block { (IfExpr if (Path a) (Block { })) (ExprStmt (UnaryExpr - 1) ;) (WhileExpr while (Path b) (Block { })) (LoopExpr loop (Block { })) (EmptyStmt ;) (Path x) }))",
		},
		{
			input:    "fn f() { g({ 1 }); { 2 } }",
			expected: "(FnDecl (FnSig fn f (ParamList ( ))) (Block { (ExprStmt (CallExpr (Path g) (ArgList ( (Block { 1 }) ))) ;) (Block { 2 }) }))",
		},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()
			res := SourceFile("/t.weft", testCase.input)
			require.Empty(t, res.Diagnostics, codes(res.Diagnostics))
			sig := res.Root.Significant()
			require.Len(t, sig, 1)
			require.Equal(t, testCase.expected, sexpr(sig[0]))
		})
	}
}

func TestTokenKinds(t *testing.T) {
	t.Parallel()

	res := SourceFile("/t.weft", "let mut x = 0x1F; // hex")
	require.Equal(t, []syntax.Kind{
		syntax.KindSourceFile, syntax.KindLetDecl,
		syntax.KindLetKw, syntax.KindMutKw, syntax.KindIdent, syntax.KindAssign, syntax.KindInt, syntax.KindSemicolon,
	}, syntax.Kinds(res.Root, true))
	require.Equal(t, syntax.KindLineComment, res.Root.Children()[len(res.Root.Children())-1].Kind())
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	res := SourceFile("/t.weft", "} let x = 1;")
	require.Equal(t, []string{exc.CodeUnexpectedInput}, codes(res.Diagnostics))
	require.Equal(t, source.NewSpan(0, 1), res.Diagnostics[0].Location().Span)
	sig := res.Root.Significant()
	require.Len(t, sig, 2)
	require.Equal(t, "(ErrorNode <err:}>)", sexpr(sig[0]))
	require.Equal(t, syntax.KindLetDecl, sig[1].Kind())

	res = SourceFile("/t.weft", "fn f() { ) }")
	require.Equal(t, []string{exc.CodeUnexpectedInput}, codes(res.Diagnostics))
	require.Equal(t, "(FnDecl (FnSig fn f (ParamList ( ))) (Block { (ErrorNode <err:)>) }))", sexpr(res.Root.Significant()[0]))

	res = SourceFile("/t.weft", "fn f() { a = 1 b }")
	require.Equal(t, []string{exc.CodeExpectedMissing}, codes(res.Diagnostics))
	require.Equal(t, "(FnDecl (FnSig fn f (ParamList ( ))) (Block { (AssignStmt (Path a) = 1 <err:>) (Path b) }))", sexpr(res.Root.Significant()[0]))

	res = SourceFile("/t.weft", "fn f() {")
	require.Equal(t, []string{exc.CodeExpectedMissing}, codes(res.Diagnostics))
	require.Equal(t, "(FnDecl (FnSig fn f (ParamList ( ))) (Block { <err:>))", sexpr(res.Root.Significant()[0]))

	res = SourceFile("/t.weft", "nope")
	require.Equal(t, "(ErrorNode <err:nope>)", sexpr(res.Root.Significant()[0]))
}

func TestNestedBlockArguments(t *testing.T) {
	t.Parallel()

	const depth = 30
	text := "fn f() { " + strings.Repeat("a({ ", depth) + "1" + strings.Repeat(" });", depth) + " }"
	start := time.Now()
	res := SourceFile("/t.weft", text)
	require.Less(t, time.Since(start), 5*time.Second)
	require.Empty(t, res.Diagnostics, codes(res.Diagnostics))
	require.Equal(t, text, res.Text())
	calls := 0
	for _, k := range syntax.Kinds(res.Root, true) {
		if k == syntax.KindCallExpr {
			calls = calls + 1
		}
	}
	require.Equal(t, depth, calls)
}

func TestNestingLimit(t *testing.T) {
	t.Parallel()

	const depth = 100000
	testCases := []struct {
		name  string
		input string
		code  string
	}{
		{
			name:  "parens",
			input: "let x = " + strings.Repeat("(", depth) + "1" + strings.Repeat(")", depth) + ";",
			code:  exc.CodeNestingTooDeep,
		},
		{
			name:  "blocks",
			input: "fn f() " + strings.Repeat("{", depth) + strings.Repeat("}", depth),
			code:  exc.CodeUnexpectedInput,
		},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			res := SourceFile("/t.weft", testCase.input)
			require.Equal(t, testCase.input, res.Text())
			require.Contains(t, codes(res.Diagnostics), testCase.code)
		})
	}

	res := SourceFile("/t.weft", "let x = ((((1))));", parsec.WithMaxDepth(3))
	require.Equal(t, exc.CodeNestingTooDeep, res.Diagnostics[0].Code())
	require.Equal(t, "let x = ((((1))));", res.Text())
}

func TestComments(t *testing.T) {
	t.Parallel()

	res := SourceFile("/t.weft", "/* a /* b */ c */")
	require.Empty(t, res.Diagnostics)
	require.Len(t, res.Root.Children(), 1)
	require.Equal(t, syntax.KindBlockComment, res.Root.Children()[0].Kind())
	require.Equal(t, "/* a /* b */ c */", syntax.Text(res.Root.Children()[0]))

	res = SourceFile("/t.weft", "/* a /* b */ c")
	require.Equal(t, []string{exc.CodeUnterminated}, codes(res.Diagnostics))
	require.Len(t, res.Root.Children(), 1)
	require.Equal(t, source.NewSpan(0, 14), res.Diagnostics[0].Location().Span)
}

func TestLiteralDiagnostics(t *testing.T) {
	t.Parallel()

	res := ParseExpr("/e.weft", `"abc`)
	require.Equal(t, []string{exc.CodeUnterminated}, codes(res.Diagnostics))
	require.Equal(t, `<err:"abc>`, sexpr(res.Root.Significant()[0]))

	res = ParseExpr("/e.weft", `'ab'`)
	require.Equal(t, []string{exc.CodeInvalidLiteral}, codes(res.Diagnostics))
	require.Equal(t, `<err:'ab'>`, sexpr(res.Root.Significant()[0]))
}

func TestIgnorable(t *testing.T) {
	t.Parallel()

	c := parsec.NewCursor(parsec.NewSource("/t.weft", "  // c\n/* x */y"))
	out, err := EatIgnorable().Parse(c)
	require.NoError(t, err)
	require.Equal(t, []syntax.Kind{
		syntax.KindWhitespace, syntax.KindLineComment, syntax.KindWhitespace, syntax.KindBlockComment,
	}, kindsOf(out))
	require.Equal(t, "y", c.Remaining())

	_, err = Ignorable().Parse(c)
	require.Error(t, err)

	word := parsec.Map(parsec.Regex(`[a-z]+`), func(s string) []syntax.Element {
		return []syntax.Element{syntax.Leaf(syntax.KindIdent, s)}
	})
	c = parsec.NewCursor(parsec.NewSource("/t.weft", " a\t"))
	out, err = Padded(word).Parse(c)
	require.NoError(t, err)
	require.Equal(t, []syntax.Kind{syntax.KindWhitespace, syntax.KindIdent, syntax.KindWhitespace}, kindsOf(out))
	require.True(t, c.AtEnd())
}

func TestConcurrentParses(t *testing.T) {
	t.Parallel()

	cache := pattern.NewCache()
	expected := SourceFile("/t.weft", program).Root.String()
	var wg sync.WaitGroup
	results := make([]string, 8)
	for x := range results {
		wg.Add(1)
		go func(x int) {
			defer wg.Done()
			results[x] = SourceFile("/t.weft", program, parsec.WithPatternCache(cache)).Root.String()
		}(x)
	}
	wg.Wait()
	for _, r := range results {
		require.Equal(t, expected, r)
	}
	require.Positive(t, cache.Len())
}

func TestReferenceGrammar(t *testing.T) {
	t.Parallel()

	g, err := LoadReference()
	require.NoError(t, err)
	productions := Productions(g)
	require.Contains(t, productions, StartProduction)
	for _, name := range productions {
		if k, err := syntax.ParseKind(name); err == nil {
			require.False(t, k.IsToken(), name)
		}
	}
	for _, kind := range []syntax.Kind{
		syntax.KindLetDecl, syntax.KindFnDecl, syntax.KindProtoDecl, syntax.KindImplDecl,
		syntax.KindIfExpr, syntax.KindForExpr, syntax.KindListType, syntax.KindParamList,
	} {
		require.Contains(t, productions, kind.String())
	}
	require.Equal(t, reference, Reference())

	_, err = LoadGrammar("bad.ebnf", []byte(`SourceFile = Missing .`))
	require.Error(t, err)
	_, err = LoadGrammar("bad.ebnf", []byte(`SourceFile = "a" . Other = "b" .`))
	require.Error(t, err)
	_, err = LoadGrammar("bad.ebnf", []byte(`SourceFile = `))
	require.Error(t, err)
}

func TestKeywords(t *testing.T) {
	t.Parallel()

	words := Keywords()
	require.Len(t, words, 18)
	for _, w := range words {
		res := ParseExpr("/e.weft", w+"x")
		require.Empty(t, res.Diagnostics, w)
		require.Equal(t, "(Path "+w+"x)", sexpr(res.Root.Significant()[0]))
	}
}
