// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package syntax

import (
	"encoding/json"
	"fmt"
)

type jsonElement struct {
	Kind     string         `json:"kind"`
	Text     *string        `json:"text,omitempty"`
	Children []*jsonElement `json:"children,omitempty"`
}

func (t *Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSON(t))
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSON(n))
}

func toJSON(el Element) *jsonElement {
	je := &jsonElement{Kind: el.Kind().String()}
	switch v := el.(type) {
	case *Token:
		text := v.text
		je.Text = &text
	case *Node:
		if len(v.children) > 0 {
			je.Children = make([]*jsonElement, len(v.children))
			for x, child := range v.children {
				je.Children[x] = toJSON(child)
			}
		}
	}
	return je
}

func (t *Token) UnmarshalJSON(data []byte) error {
	el, err := UnmarshalElement(data)
	if err != nil {
		return err
	}
	tok, ok := el.(*Token)
	if !ok {
		return fmt.Errorf("syntax: expected a token but found %s", el.Kind())
	}
	*t = *tok
	return nil
}

func (n *Node) UnmarshalJSON(data []byte) error {
	el, err := UnmarshalElement(data)
	if err != nil {
		return err
	}
	node, ok := el.(*Node)
	if !ok {
		return fmt.Errorf("syntax: expected a node but found %s", el.Kind())
	}
	*n = *node
	return nil
}

// UnmarshalElement decodes a token or node from its JSON form. Whether the
// result is a token is decided by its kind.
func UnmarshalElement(data []byte) (Element, error) {
	var je jsonElement
	if err := json.Unmarshal(data, &je); err != nil {
		return nil, err
	}
	return fromJSON(&je)
}

func fromJSON(je *jsonElement) (Element, error) {
	if je == nil {
		return nil, fmt.Errorf("syntax: null element")
	}
	kind, err := ParseKind(je.Kind)
	if err != nil {
		return nil, err
	}
	if kind.IsToken() {
		if je.Text == nil {
			return nil, fmt.Errorf("syntax: token %s has no text", kind)
		}
		if len(je.Children) > 0 {
			return nil, fmt.Errorf("syntax: token %s has children", kind)
		}
		return Leaf(kind, *je.Text), nil
	}
	if je.Text != nil {
		return nil, fmt.Errorf("syntax: node %s has text", kind)
	}
	children := make([]Element, 0, len(je.Children))
	for _, child := range je.Children {
		el, err := fromJSON(child)
		if err != nil {
			return nil, err
		}
		children = append(children, el)
	}
	return NewNode(kind, children...), nil
}
