// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package syntax

import (
	"strings"
)

// Element is either a *Token or a *Node.
//
// Elements do not record their own offsets. A position is known only while
// walking down from a root, which keeps subtrees independent of where they
// were parsed.
type Element interface {
	Kind() Kind
	Len() int
	isElement()
}

// Token is a leaf holding a slice of the source text.
type Token struct {
	kind Kind
	text string
}

// Leaf builds a token. The text is kept as given, without copying.
func Leaf(kind Kind, text string) *Token {
	return &Token{kind: kind, text: text}
}

func (t *Token) Kind() Kind {
	return t.kind
}

func (t *Token) Text() string {
	return t.text
}

func (t *Token) Len() int {
	return len(t.text)
}

func (t *Token) isElement() {}

// Node is an interior element. Its width is the sum of its children's.
type Node struct {
	kind     Kind
	children []Element
	width    int
}

// NewNode builds a node from children in source order. Nil children are
// dropped.
func NewNode(kind Kind, children ...Element) *Node {
	n := &Node{kind: kind, children: make([]Element, 0, len(children))}
	for _, child := range children {
		if child == nil {
			continue
		}
		n.children = append(n.children, child)
		n.width = n.width + child.Len()
	}
	return n
}

func (n *Node) Kind() Kind {
	return n.kind
}

func (n *Node) Len() int {
	return n.width
}

func (n *Node) isElement() {}

// Children returns the direct children, trivia included. The slice must not
// be modified.
func (n *Node) Children() []Element {
	return n.children
}

// Significant returns the direct children that are not trivia.
func (n *Node) Significant() []Element {
	out := make([]Element, 0, len(n.children))
	for _, child := range n.children {
		if !child.Kind().IsTrivia() {
			out = append(out, child)
		}
	}
	return out
}

// FirstChildOfKind returns the first direct child of the given kind, or nil.
func (n *Node) FirstChildOfKind(kind Kind) Element {
	for _, child := range n.children {
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind Kind) []Element {
	var out []Element
	for _, child := range n.children {
		if child.Kind() == kind {
			out = append(out, child)
		}
	}
	return out
}

func (n *Node) String() string {
	return Dump(n)
}

// Text reassembles the source text covered by el.
func Text(el Element) string {
	switch v := el.(type) {
	case *Token:
		return v.text
	case *Node:
		var b strings.Builder
		b.Grow(v.width)
		writeText(&b, v)
		return b.String()
	default:
		return ""
	}
}

func writeText(b *strings.Builder, n *Node) {
	for _, child := range n.children {
		switch v := child.(type) {
		case *Token:
			b.WriteString(v.text)
		case *Node:
			writeText(b, v)
		}
	}
}

// IsError reports whether el is an error token or an error node.
func IsError(el Element) bool {
	k := el.Kind()
	return k == KindError || k == KindErrorNode
}
