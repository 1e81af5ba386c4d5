// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package treepb

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"gopkg.microglot.org/weft.go/internal/exc"
	"gopkg.microglot.org/weft.go/internal/source"
	"gopkg.microglot.org/weft.go/internal/syntax"
)

// Document is a parsed file in the form carried by the File message.
type Document struct {
	URI         string
	Root        *syntax.Node
	Diagnostics []exc.Exception
}

func field(md protoreflect.MessageDescriptor, name string) protoreflect.FieldDescriptor {
	return md.Fields().ByName(protoreflect.Name(name))
}

// Encode converts doc into a dynamic File message.
func (s *Schema) Encode(doc *Document) *dynamicpb.Message {
	msg := dynamicpb.NewMessage(s.FileType)
	msg.Set(field(s.FileType, "uri"), protoreflect.ValueOfString(doc.URI))
	if doc.Root != nil {
		msg.Set(field(s.FileType, "root"), protoreflect.ValueOfMessage(s.element(doc.Root)))
	}
	diags := msg.Mutable(field(s.FileType, "diagnostics")).List()
	for _, d := range doc.Diagnostics {
		diags.Append(protoreflect.ValueOfMessage(s.diagnostic(d)))
	}
	return msg
}

func (s *Schema) element(el syntax.Element) *dynamicpb.Message {
	msg := dynamicpb.NewMessage(s.ElementType)
	msg.Set(field(s.ElementType, "kind"), protoreflect.ValueOfString(el.Kind().String()))
	switch v := el.(type) {
	case *syntax.Token:
		if v.Text() != "" {
			msg.Set(field(s.ElementType, "text"), protoreflect.ValueOfString(v.Text()))
		}
	case *syntax.Node:
		children := msg.Mutable(field(s.ElementType, "children")).List()
		for _, child := range v.Children() {
			children.Append(protoreflect.ValueOfMessage(s.element(child)))
		}
	}
	return msg
}

func (s *Schema) diagnostic(e exc.Exception) *dynamicpb.Message {
	loc := e.Location()
	msg := dynamicpb.NewMessage(s.DiagnosticType)
	msg.Set(field(s.DiagnosticType, "code"), protoreflect.ValueOfString(e.Code()))
	msg.Set(field(s.DiagnosticType, "message"), protoreflect.ValueOfString(e.Message()))
	msg.Set(field(s.DiagnosticType, "uri"), protoreflect.ValueOfString(loc.URI))
	msg.Set(field(s.DiagnosticType, "start"), protoreflect.ValueOfUint32(uint32(loc.Start)))
	msg.Set(field(s.DiagnosticType, "end"), protoreflect.ValueOfUint32(uint32(loc.End)))
	return msg
}

// Decode converts a File message back into a Document.
func (s *Schema) Decode(msg protoreflect.Message) (*Document, error) {
	if msg.Descriptor().FullName() != s.FileType.FullName() {
		return nil, fmt.Errorf("treepb: expected %s but found %s", s.FileType.FullName(), msg.Descriptor().FullName())
	}
	doc := &Document{URI: msg.Get(field(s.FileType, "uri")).String()}
	if rf := field(s.FileType, "root"); msg.Has(rf) {
		el, err := s.fromElement(msg.Get(rf).Message())
		if err != nil {
			return nil, err
		}
		root, ok := el.(*syntax.Node)
		if !ok {
			return nil, fmt.Errorf("treepb: root must be a node, found %s", el.Kind())
		}
		doc.Root = root
	}
	diags := msg.Get(field(s.FileType, "diagnostics")).List()
	for x := 0; x < diags.Len(); x = x + 1 {
		d := diags.Get(x).Message()
		span := source.NewSpan(
			int(d.Get(field(s.DiagnosticType, "start")).Uint()),
			int(d.Get(field(s.DiagnosticType, "end")).Uint()),
		)
		doc.Diagnostics = append(doc.Diagnostics, exc.New(
			exc.Location{URI: d.Get(field(s.DiagnosticType, "uri")).String(), Span: span},
			d.Get(field(s.DiagnosticType, "code")).String(),
			d.Get(field(s.DiagnosticType, "message")).String(),
		))
	}
	return doc, nil
}

func (s *Schema) fromElement(msg protoreflect.Message) (syntax.Element, error) {
	kind, err := syntax.ParseKind(msg.Get(field(s.ElementType, "kind")).String())
	if err != nil {
		return nil, err
	}
	children := msg.Get(field(s.ElementType, "children")).List()
	if kind.IsToken() {
		if children.Len() > 0 {
			return nil, fmt.Errorf("treepb: token %s has children", kind)
		}
		return syntax.Leaf(kind, msg.Get(field(s.ElementType, "text")).String()), nil
	}
	if msg.Has(field(s.ElementType, "text")) {
		return nil, fmt.Errorf("treepb: node %s has text", kind)
	}
	out := make([]syntax.Element, 0, children.Len())
	for x := 0; x < children.Len(); x = x + 1 {
		child, err := s.fromElement(children.Get(x).Message())
		if err != nil {
			return nil, err
		}
		out = append(out, child)
	}
	return syntax.NewNode(kind, out...), nil
}

// Marshal encodes doc in the protobuf binary format.
func Marshal(doc *Document) ([]byte, error) {
	s, err := DefaultSchema()
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s.Encode(doc))
}

// MarshalJSON encodes doc as protojson.
func MarshalJSON(doc *Document) ([]byte, error) {
	s, err := DefaultSchema()
	if err != nil {
		return nil, err
	}
	return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s.Encode(doc))
}

// Unmarshal decodes the protobuf binary format.
func Unmarshal(data []byte) (*Document, error) {
	s, err := DefaultSchema()
	if err != nil {
		return nil, err
	}
	msg := dynamicpb.NewMessage(s.FileType)
	if err := proto.Unmarshal(data, msg); err != nil {
		return nil, err
	}
	return s.Decode(msg)
}

// UnmarshalJSON decodes protojson.
func UnmarshalJSON(data []byte) (*Document, error) {
	s, err := DefaultSchema()
	if err != nil {
		return nil, err
	}
	msg := dynamicpb.NewMessage(s.FileType)
	if err := protojson.Unmarshal(data, msg); err != nil {
		return nil, err
	}
	return s.Decode(msg)
}
