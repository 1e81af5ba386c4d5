// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package syntax

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.microglot.org/weft.go/internal/iter"
	"gopkg.microglot.org/weft.go/internal/source"
)

// Walk visits el and its descendants in pre-order, passing each element's
// span relative to the start of el. Returning false from fn skips the
// children of the element just visited.
func Walk(el Element, fn func(el Element, span source.Span) bool) {
	walk(el, 0, fn)
}

func walk(el Element, offset int, fn func(el Element, span source.Span) bool) {
	if !fn(el, source.NewSpan(offset, offset+el.Len())) {
		return
	}
	n, ok := el.(*Node)
	if !ok {
		return
	}
	for _, child := range n.children {
		walk(child, offset, fn)
		offset = offset + child.Len()
	}
}

// Leaves iterates the tokens under el in source order.
func Leaves(el Element) iter.Iterator[*Token] {
	var out []*Token
	Walk(el, func(e Element, _ source.Span) bool {
		if t, ok := e.(*Token); ok {
			out = append(out, t)
		}
		return true
	})
	return iter.NewSlice(out)
}

// Kinds lists the kind of every element under el in pre-order.
func Kinds(el Element, skipTrivia bool) []Kind {
	var out []Kind
	Walk(el, func(e Element, _ source.Span) bool {
		if skipTrivia && e.Kind().IsTrivia() {
			return true
		}
		out = append(out, e.Kind())
		return true
	})
	return out
}

// Find returns the first element of the given kind in pre-order, or nil.
func Find(el Element, kind Kind) Element {
	var found Element
	Walk(el, func(e Element, _ source.Span) bool {
		if found != nil {
			return false
		}
		if e.Kind() == kind {
			found = e
			return false
		}
		return true
	})
	return found
}

// At returns the chain of elements from el down to the token covering
// offset, along with that token's span. Offsets at the very end of el select
// the last token. The chain is empty when el has no text.
func At(el Element, offset int) ([]Element, source.Span) {
	if el.Len() == 0 {
		return nil, source.Span{}
	}
	if offset >= el.Len() {
		offset = el.Len() - 1
	}
	if offset < 0 {
		offset = 0
	}
	var path []Element
	var span source.Span
	Walk(el, func(e Element, s source.Span) bool {
		if !s.Contains(offset) {
			return false
		}
		path = append(path, e)
		span = s
		return true
	})
	return path, span
}

// Dump renders el as an indented outline, one element per line.
func Dump(el Element) string {
	var b strings.Builder
	dump(&b, el, 0, 0)
	return b.String()
}

func dump(b *strings.Builder, el Element, offset int, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(el.Kind().String())
	b.WriteString("@")
	b.WriteString(source.NewSpan(offset, offset+el.Len()).String())
	switch v := el.(type) {
	case *Token:
		b.WriteString(" ")
		b.WriteString(strconv.Quote(v.text))
		b.WriteString("\n")
	case *Node:
		b.WriteString("\n")
		for _, child := range v.children {
			dump(b, child, offset, depth+1)
			offset = offset + child.Len()
		}
	}
}

// Describe is a one line summary of el for logs and error messages.
func Describe(el Element) string {
	if t, ok := el.(*Token); ok {
		return fmt.Sprintf("%s %q", t.kind, t.text)
	}
	return fmt.Sprintf("%s (%d bytes)", el.Kind(), el.Len())
}
