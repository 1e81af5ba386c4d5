// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package lsp

import (
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"gopkg.microglot.org/weft.go/internal/exc"
	"gopkg.microglot.org/weft.go/internal/grammar"
	"gopkg.microglot.org/weft.go/internal/parsec"
	"gopkg.microglot.org/weft.go/internal/pattern"
	"gopkg.microglot.org/weft.go/internal/source"
	"gopkg.microglot.org/weft.go/internal/target"
)

// document is one open file and the result of its latest parse.
type document struct {
	uri     protocol.DocumentUri
	version protocol.Integer
	text    string
	lines   *source.LineIndex
	result  *grammar.Result
}

func parseDocument(uri protocol.DocumentUri, version protocol.Integer, text string, patterns *pattern.Cache) *document {
	return &document{
		uri:     uri,
		version: version,
		text:    text,
		lines:   source.NewLineIndex(text),
		result:  grammar.SourceFile(target.Normalize(uri), text, parsec.WithPatternCache(patterns)),
	}
}

// edit applies one content change and returns the new text.
func (d *document) edit(change any) string {
	switch c := change.(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		return c.Text
	case protocol.TextDocumentContentChangeEvent:
		if c.Range == nil {
			return c.Text
		}
		start := toOffset(d.lines, d.text, c.Range.Start)
		end := toOffset(d.lines, d.text, c.Range.End)
		if end < start {
			start, end = end, start
		}
		return d.text[:start] + c.Text + d.text[end:]
	default:
		return d.text
	}
}

func (d *document) diagnostics() []protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	src := "weft"
	out := make([]protocol.Diagnostic, 0, len(d.result.Diagnostics))
	for _, e := range d.result.Diagnostics {
		out = append(out, protocol.Diagnostic{
			Range:    toRange(d.lines, d.text, e.Location().Span),
			Severity: &severity,
			Code:     &protocol.IntegerOrString{Value: e.Code()},
			Source:   &src,
			Message:  e.Message(),
		})
	}
	return out
}

type documents struct {
	lock sync.Mutex
	docs map[protocol.DocumentUri]*document
}

func newDocuments() *documents {
	return &documents{docs: make(map[protocol.DocumentUri]*document)}
}

func (s *documents) get(uri protocol.DocumentUri) (*document, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	d, ok := s.docs[uri]
	return d, ok
}

func (s *documents) put(d *document) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.docs[d.uri] = d
}

func (s *documents) remove(uri protocol.DocumentUri) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.docs, uri)
}

// reported flattens every open document's diagnostics, for logging.
func (s *documents) reported() []exc.Exception {
	s.lock.Lock()
	defer s.lock.Unlock()
	var out []exc.Exception
	for _, d := range s.docs {
		out = append(out, d.result.Diagnostics...)
	}
	exc.Sort(out)
	return out
}
