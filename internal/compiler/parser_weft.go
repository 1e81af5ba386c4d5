// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"

	"gopkg.microglot.org/weft.go/internal/grammar"
	"gopkg.microglot.org/weft.go/internal/parsec"
	"gopkg.microglot.org/weft.go/internal/pattern"
	"gopkg.microglot.org/weft.go/internal/source"
)

type FileParserWeft struct{}

func (self *FileParserWeft) ParseFile(ctx context.Context, patterns *pattern.Cache, file source.File) (*ParsedFile, error) {
	text, err := file.Text(ctx)
	if err != nil {
		return nil, err
	}
	return self.parseText(file.Path(ctx), file.Kind(ctx), text, patterns), nil
}

func (self *FileParserWeft) parseText(uri string, kind source.FileKind, text string, patterns *pattern.Cache) *ParsedFile {
	result := grammar.SourceFile(uri, text, parsec.WithPatternCache(patterns))
	return &ParsedFile{
		URI:         uri,
		Kind:        kind,
		Text:        text,
		Root:        result.Root,
		Diagnostics: result.Diagnostics,
		Lines:       source.NewLineIndex(text),
	}
}
