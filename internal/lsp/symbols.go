// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"gopkg.microglot.org/weft.go/internal/source"
	"gopkg.microglot.org/weft.go/internal/syntax"
)

// symbols outlines the declarations directly under n, which starts at
// offset. Declarations nested in proto and impl blocks become children.
func (d *document) symbols(n *syntax.Node, offset int) []protocol.DocumentSymbol {
	out := []protocol.DocumentSymbol{}
	for _, child := range n.Children() {
		span := source.NewSpan(offset, offset+child.Len())
		offset = span.End
		cn, ok := child.(*syntax.Node)
		if !ok {
			continue
		}
		switch cn.Kind() {
		case syntax.KindImportDecl:
			out = append(out, d.symbol(cn, span, syntax.KindPath, protocol.SymbolKindModule))
		case syntax.KindLetDecl:
			out = append(out, d.symbol(cn, span, syntax.KindIdent, protocol.SymbolKindVariable))
		case syntax.KindFnDecl:
			// The signature is the first child so it shares the declaration's
			// start offset.
			if sig, ok := cn.FirstChildOfKind(syntax.KindFnSig).(*syntax.Node); ok {
				out = append(out, d.symbol(sig, span, syntax.KindIdent, protocol.SymbolKindFunction))
			}
		case syntax.KindFnSig:
			out = append(out, d.symbol(cn, span, syntax.KindIdent, protocol.SymbolKindMethod))
		case syntax.KindProtoDecl:
			sym := d.symbol(cn, span, syntax.KindIdent, protocol.SymbolKindInterface)
			sym.Children = d.symbols(cn, span.Start)
			out = append(out, sym)
		case syntax.KindImplDecl:
			sym := d.symbol(cn, span, syntax.KindPath, protocol.SymbolKindClass)
			if ty := cn.ChildrenOfKind(syntax.KindPath); len(ty) > 1 {
				detail := "for " + strings.TrimSpace(syntax.Text(ty[1]))
				sym.Detail = &detail
			}
			sym.Children = d.symbols(cn, span.Start)
			out = append(out, sym)
		}
	}
	return out
}

// symbol names a declaration after its first child of the given kind.
func (d *document) symbol(n *syntax.Node, span source.Span, name syntax.Kind, kind protocol.SymbolKind) protocol.DocumentSymbol {
	full := toRange(d.lines, d.text, span)
	label := "?"
	if el := n.FirstChildOfKind(name); el != nil {
		if text := strings.TrimSpace(syntax.Text(el)); text != "" {
			label = text
		}
	}
	selection := d.nameRange(n, span.Start, name)
	if selection == (protocol.Range{}) {
		selection = full
	}
	return protocol.DocumentSymbol{
		Name:           label,
		Kind:           kind,
		Range:          full,
		SelectionRange: selection,
	}
}

// nameRange returns the range of the first child of n with the given kind,
// or the zero range.
func (d *document) nameRange(n *syntax.Node, offset int, kind syntax.Kind) protocol.Range {
	for _, child := range n.Children() {
		if child.Kind() == kind {
			return toRange(d.lines, d.text, source.NewSpan(offset, offset+child.Len()))
		}
		offset = offset + child.Len()
	}
	return protocol.Range{}
}

// hover describes the token under offset and the nodes around it.
func (d *document) hover(offset int) *protocol.Hover {
	path, span := syntax.At(d.result.Root, offset)
	if len(path) == 0 {
		return nil
	}
	kinds := make([]string, 0, len(path))
	for _, el := range path[:len(path)-1] {
		kinds = append(kinds, el.Kind().String())
	}
	value := syntax.Describe(path[len(path)-1])
	if len(kinds) > 0 {
		value = value + "\n" + strings.Join(kinds, " > ")
	}
	r := toRange(d.lines, d.text, span)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindPlainText, Value: value},
		Range:    &r,
	}
}
