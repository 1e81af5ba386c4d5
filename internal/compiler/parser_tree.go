// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"

	"gopkg.microglot.org/weft.go/internal/exc"
	"gopkg.microglot.org/weft.go/internal/pattern"
	"gopkg.microglot.org/weft.go/internal/source"
	"gopkg.microglot.org/weft.go/internal/syntax"
	"gopkg.microglot.org/weft.go/internal/treepb"
)

// FileParserTreeJSON reads trees written by weftc parse. Both the plain
// element JSON and the protojson File form are accepted.
type FileParserTreeJSON struct {
	Weft *FileParserWeft
}

func (self *FileParserTreeJSON) ParseFile(ctx context.Context, patterns *pattern.Cache, file source.File) (*ParsedFile, error) {
	uri := file.Path(ctx)
	data, err := file.Text(ctx)
	if err != nil {
		return nil, err
	}
	el, errEl := syntax.UnmarshalElement([]byte(data))
	if errEl == nil {
		root, err := sourceFileRoot(uri, el)
		if err != nil {
			return nil, err
		}
		return self.Weft.parseText(uri, file.Kind(ctx), syntax.Text(root), patterns), nil
	}
	doc, errDoc := treepb.UnmarshalJSON([]byte(data))
	if errDoc != nil {
		return nil, exc.Wrap(exc.Location{URI: uri}, exc.CodeUnsupportedFileFormat, errEl)
	}
	root, err := sourceFileRoot(uri, doc.Root)
	if err != nil {
		return nil, err
	}
	return self.Weft.parseText(uri, file.Kind(ctx), syntax.Text(root), patterns), nil
}

type FileParserTreeProto struct {
	Weft *FileParserWeft
}

func (self *FileParserTreeProto) ParseFile(ctx context.Context, patterns *pattern.Cache, file source.File) (*ParsedFile, error) {
	uri := file.Path(ctx)
	data, err := file.Text(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := treepb.Unmarshal([]byte(data))
	if err != nil {
		return nil, exc.Wrap(exc.Location{URI: uri}, exc.CodeUnsupportedFileFormat, err)
	}
	root, err := sourceFileRoot(uri, doc.Root)
	if err != nil {
		return nil, err
	}
	return self.Weft.parseText(uri, file.Kind(ctx), syntax.Text(root), patterns), nil
}

func sourceFileRoot(uri string, el syntax.Element) (*syntax.Node, error) {
	n, ok := el.(*syntax.Node)
	if !ok || n == nil || n.Kind() != syntax.KindSourceFile {
		return nil, exc.New(exc.Location{URI: uri}, exc.CodeUnsupportedFileFormat, "tree root is not a SourceFile node")
	}
	return n, nil
}
