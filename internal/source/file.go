// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"fmt"
)

type FileKind uint32

const (
	FileKindNone FileKind = iota
	FileKindWeft
	FileKindTreeJSON
	FileKindTreeProto
)

func (k FileKind) String() string {
	switch k {
	case FileKindNone:
		return "none"
	case FileKindWeft:
		return "weft"
	case FileKindTreeJSON:
		return "weft-tree-json"
	case FileKindTreeProto:
		return "weft-tree-proto"
	default:
		return fmt.Sprintf("unknown-%d", k)
	}
}

// File is a named unit of source content. Text returns the complete, decoded
// content; the parser never reads incrementally.
type File interface {
	Path(ctx context.Context) string
	Kind(ctx context.Context) FileKind
	Text(ctx context.Context) (string, error)
}

type FileSystem interface {
	Open(ctx context.Context, uri string) ([]File, error)
	Write(ctx context.Context, uri string, content string) error
}
