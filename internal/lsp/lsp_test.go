// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package lsp

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"gopkg.microglot.org/weft.go/internal/exc"
	"gopkg.microglot.org/weft.go/internal/pattern"
	"gopkg.microglot.org/weft.go/internal/source"
)

type notification struct {
	method string
	params any
}

func recorder() (*glsp.Context, *[]notification) {
	var sent []notification
	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			sent = append(sent, notification{method, params})
		},
	}
	return ctx, &sent
}

func published(t *testing.T, n notification) protocol.PublishDiagnosticsParams {
	t.Helper()
	require.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, n.method)
	params, ok := n.params.(protocol.PublishDiagnosticsParams)
	require.True(t, ok)
	return params
}

func TestPositions(t *testing.T) {
	t.Parallel()

	// "é" is two bytes and one UTF-16 unit; "😀" is four bytes and two units.
	text := "let é = 1;\nlet s = \"😀\" x;\r\n"
	lines := source.NewLineIndex(text)

	testCases := []struct {
		name   string
		offset int
		pos    protocol.Position
	}{
		{name: "start", offset: 0, pos: protocol.Position{Line: 0, Character: 0}},
		{name: "after two byte rune", offset: 6, pos: protocol.Position{Line: 0, Character: 5}},
		{name: "second line", offset: 11, pos: protocol.Position{Line: 1, Character: 0}},
		{name: "after surrogate pair", offset: 24, pos: protocol.Position{Line: 1, Character: 11}},
		{name: "end", offset: len(text), pos: protocol.Position{Line: 2, Character: 0}},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, testCase.pos, toPosition(lines, text, testCase.offset))
			require.Equal(t, testCase.offset, toOffset(lines, text, testCase.pos))
		})
	}

	require.Equal(t, len("let é = 1;"), toOffset(lines, text, protocol.Position{Line: 0, Character: 99}))
	require.Equal(t, len(text), toOffset(lines, text, protocol.Position{Line: 9, Character: 0}))
}

func TestDiagnosticsLifecycle(t *testing.T) {
	t.Parallel()

	s := NewServer("test", WithPatternCache(pattern.NewCache()))
	ctx, sent := recorder()
	uri := "file:///work/main.weft"

	require.NoError(t, s.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "weft", Version: 1, Text: "let x = ;\n"},
	}))
	require.Len(t, *sent, 1)
	params := published(t, (*sent)[0])
	require.Equal(t, uri, params.URI)
	require.Equal(t, protocol.UInteger(1), *params.Version)
	require.Len(t, params.Diagnostics, 1)
	d := params.Diagnostics[0]
	require.Equal(t, exc.CodeExpectedMissing, d.Code.Value)
	require.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 0, Character: 8},
		End:   protocol.Position{Line: 0, Character: 8},
	}, d.Range)
	require.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	require.Len(t, s.docs.reported(), 1)
	require.Equal(t, "/work/main.weft", s.docs.reported()[0].Location().URI)

	// Insert the missing expression with a ranged edit.
	r := protocol.Range{
		Start: protocol.Position{Line: 0, Character: 8},
		End:   protocol.Position{Line: 0, Character: 8},
	}
	require.NoError(t, s.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEvent{Range: &r, Text: "42 "}},
	}))
	require.Len(t, *sent, 2)
	params = published(t, (*sent)[1])
	require.Empty(t, params.Diagnostics)
	doc, ok := s.docs.get(uri)
	require.True(t, ok)
	require.Equal(t, "let x = 42 ;\n", doc.text)

	require.NoError(t, s.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                3,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "fn f( {}"}},
	}))
	params = published(t, (*sent)[2])
	require.NotEmpty(t, params.Diagnostics)
	require.Equal(t, protocol.UInteger(3), *params.Version)

	require.NoError(t, s.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))
	params = published(t, (*sent)[3])
	require.Empty(t, params.Diagnostics)
	_, ok = s.docs.get(uri)
	require.False(t, ok)

	// Changes for documents that were never opened are ignored.
	require.NoError(t, s.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: "file:///other.weft"},
		},
	}))
	require.Len(t, *sent, 4)
}

const outline = `import std::io;
let limit = 10;
fn main() { limit }
proto Shape {
	fn area(s: Self) -> float;
}
impl Shape for Square {
	fn area(s: Self) -> float { 1.0 }
}
`

func TestDocumentSymbols(t *testing.T) {
	t.Parallel()

	s := NewServer("test")
	ctx, _ := recorder()
	uri := "file:///outline.weft"
	require.NoError(t, s.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Version: 1, Text: outline},
	}))
	out, err := s.textDocumentDocumentSymbol(ctx, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	symbols, ok := out.([]protocol.DocumentSymbol)
	require.True(t, ok)

	type flat struct {
		name string
		kind protocol.SymbolKind
	}
	var got []flat
	for _, sym := range symbols {
		got = append(got, flat{sym.Name, sym.Kind})
		for _, child := range sym.Children {
			got = append(got, flat{"  " + child.Name, child.Kind})
		}
	}
	require.Equal(t, []flat{
		{"std::io", protocol.SymbolKindModule},
		{"limit", protocol.SymbolKindVariable},
		{"main", protocol.SymbolKindFunction},
		{"Shape", protocol.SymbolKindInterface},
		{"  area", protocol.SymbolKindMethod},
		{"Shape", protocol.SymbolKindClass},
		{"  area", protocol.SymbolKindFunction},
	}, got)

	main := symbols[2]
	require.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 2, Character: 0},
		End:   protocol.Position{Line: 2, Character: 19},
	}, main.Range)
	require.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 2, Character: 3},
		End:   protocol.Position{Line: 2, Character: 7},
	}, main.SelectionRange)
	require.NotNil(t, symbols[5].Detail)
	require.Equal(t, "for Square", *symbols[5].Detail)

	out, err = s.textDocumentDocumentSymbol(ctx, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///closed.weft"},
	})
	require.NoError(t, err)
	require.Nil(t, out)
}

func TestHover(t *testing.T) {
	t.Parallel()

	s := NewServer("test")
	ctx, _ := recorder()
	uri := "file:///hover.weft"
	require.NoError(t, s.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Version: 1, Text: "let x = 1 + 2;"},
	}))
	h, err := s.textDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: 0, Character: 10},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, h)
	content, ok := h.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	require.Equal(t, "Plus \"+\"\nSourceFile > LetDecl > BinaryExpr", content.Value)
	require.Equal(t, protocol.Position{Line: 0, Character: 10}, h.Range.Start)
	require.Equal(t, protocol.Position{Line: 0, Character: 11}, h.Range.End)

	h, err = s.textDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///nope.weft"},
		},
	})
	require.NoError(t, err)
	require.Nil(t, h)
}

func TestInitialize(t *testing.T) {
	t.Parallel()

	s := NewServer("1.2.3")
	ctx, _ := recorder()
	out, err := s.initialize(ctx, &protocol.InitializeParams{})
	require.NoError(t, err)
	result, ok := out.(protocol.InitializeResult)
	require.True(t, ok)
	require.Equal(t, "weft", result.ServerInfo.Name)
	require.Equal(t, "1.2.3", *result.ServerInfo.Version)
	sync, ok := result.Capabilities.TextDocumentSync.(*protocol.TextDocumentSyncOptions)
	require.True(t, ok)
	require.Equal(t, protocol.TextDocumentSyncKindIncremental, *sync.Change)
	require.NotNil(t, result.Capabilities.DocumentSymbolProvider)
	require.NotNil(t, result.Capabilities.HoverProvider)
	require.NoError(t, s.initialized(ctx, &protocol.InitializedParams{}))
	require.NoError(t, s.setTrace(ctx, &protocol.SetTraceParams{Value: protocol.TraceValueMessage}))
	require.NoError(t, s.shutdown(ctx))
}
