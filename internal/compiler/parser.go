// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"

	"gopkg.microglot.org/weft.go/internal/pattern"
	"gopkg.microglot.org/weft.go/internal/source"
)

// FileParser turns one kind of file into a ParsedFile. Diagnostics belong in
// the result; a returned error means the file could not be read at all.
type FileParser interface {
	ParseFile(ctx context.Context, patterns *pattern.Cache, file source.File) (*ParsedFile, error)
}

func DefaultParsers() map[source.FileKind]FileParser {
	weft := &FileParserWeft{}
	return map[source.FileKind]FileParser{
		source.FileKindWeft:      weft,
		source.FileKindTreeJSON:  &FileParserTreeJSON{Weft: weft},
		source.FileKindTreeProto: &FileParserTreeProto{Weft: weft},
	}
}
