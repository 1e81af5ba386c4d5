// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package treepb encodes syntax trees as protocol buffers. The message types
// are compiled from an embedded .proto file when first needed, so no
// generated code is involved.
package treepb

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/bufbuild/protocompile/parser"
	"github.com/bufbuild/protocompile/reporter"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"

	"gopkg.microglot.org/weft.go/internal/exc"
	"gopkg.microglot.org/weft.go/internal/source"
)

const schemaPath = "weft/syntax/v1/syntax_tree.proto"

//go:embed syntax_tree.proto
var schemaText string

// Schema holds the descriptors of the tree messages.
type Schema struct {
	File           protoreflect.FileDescriptor
	ElementType    protoreflect.MessageDescriptor
	DiagnosticType protoreflect.MessageDescriptor
	FileType       protoreflect.MessageDescriptor
}

var defaultSchema = sync.OnceValues(func() (*Schema, error) {
	return CompileSchema(schemaPath, schemaText, exc.NewReporter(nil))
})

// DefaultSchema compiles the embedded schema once per process.
func DefaultSchema() (*Schema, error) {
	return defaultSchema()
}

// SchemaText is the embedded .proto source.
func SchemaText() string {
	return schemaText
}

// CompileSchema compiles text as a standalone .proto file. Problems found by
// the compiler are sent to r.
func CompileSchema(path string, text string, r exc.Reporter) (*Schema, error) {
	h := reporter.NewHandler(&protoReporter{reporter: r})
	node, err := parser.Parse(path, strings.NewReader(text), h)
	if err != nil {
		return nil, err
	}
	result, err := parser.ResultFromAST(node, true, h)
	if err != nil {
		return nil, err
	}
	fd, err := protodesc.NewFile(result.FileDescriptorProto(), new(protoregistry.Files))
	if err != nil {
		e := exc.Wrap(exc.Location{URI: path}, exc.CodeSchema, err)
		_ = r.Report(e)
		return nil, e
	}
	s := &Schema{File: fd}
	for _, m := range []struct {
		name string
		dst  *protoreflect.MessageDescriptor
	}{
		{"Element", &s.ElementType},
		{"Diagnostic", &s.DiagnosticType},
		{"File", &s.FileType},
	} {
		md := fd.Messages().ByName(protoreflect.Name(m.name))
		if md == nil {
			e := exc.New(exc.Location{URI: path}, exc.CodeSchema, fmt.Sprintf("schema has no message %s", m.name))
			_ = r.Report(e)
			return nil, e
		}
		*m.dst = md
	}
	return s, nil
}

type protoReporter struct {
	reporter exc.Reporter
}

func (self *protoReporter) Error(e reporter.ErrorWithPos) error {
	pos := e.GetPosition()
	loc := exc.Location{
		URI:  pos.Filename,
		Span: source.NewSpan(pos.Offset, pos.Offset),
	}
	if fatal := self.reporter.Report(exc.Wrap(loc, exc.CodeSchema, e)); fatal != nil {
		return fatal
	}
	return nil
}

func (self *protoReporter) Warning(e reporter.ErrorWithPos) {
	_ = self.Error(e)
}
