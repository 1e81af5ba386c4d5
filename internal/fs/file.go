// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package fs

import (
	"context"
	"io"
	"strings"
	"unicode/utf8"

	"gopkg.microglot.org/weft.go/internal/exc"
	"gopkg.microglot.org/weft.go/internal/source"
)

// NewFileString wraps static string content in source.File.
func NewFileString(path string, content string, kind source.FileKind) source.File {
	return NewFileFN(path, func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(content)), nil
	}, kind)
}

type fileIOFunc struct {
	path string
	kind source.FileKind
	body func() (io.ReadCloser, error)
}

// NewFileFN is intended to wrap actual file based content in the source.File
// interface. The given body function is used each time there is a call to
// the source.File.Text method so it must return a new io.ReadCloser handle.
func NewFileFN(path string, body func() (io.ReadCloser, error), kind source.FileKind) source.File {
	return &fileIOFunc{
		path: path,
		kind: kind,
		body: body,
	}
}

func (f *fileIOFunc) Path(ctx context.Context) string {
	return f.path
}

func (f *fileIOFunc) Kind(ctx context.Context) source.FileKind {
	return f.kind
}

func (f *fileIOFunc) Text(ctx context.Context) (string, error) {
	rc, err := f.body()
	if err != nil {
		return "", fsErr(f.path, err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return "", fsErr(f.path, err)
	}
	if f.kind == source.FileKindWeft && !utf8.Valid(b) {
		return "", exc.New(exc.Location{URI: f.path}, exc.CodeUnsupportedFileFormat, "source is not valid UTF-8")
	}
	return string(b), nil
}
