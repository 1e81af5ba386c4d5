// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package lsp serves parse diagnostics, document outlines, and syntax hovers
// to editors over the language server protocol.
package lsp

import (
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"gopkg.microglot.org/weft.go/internal/pattern"
)

const lsName = "weft"

var log = commonlog.GetLogger("weft.lsp")

type Server struct {
	handler  protocol.Handler
	server   *server.Server
	version  string
	docs     *documents
	patterns *pattern.Cache
}

type Option func(s *Server)

// WithPatternCache shares a regex cache between every document parse.
func WithPatternCache(c *pattern.Cache) Option {
	return func(s *Server) {
		s.patterns = c
	}
}

func NewServer(version string, opts ...Option) *Server {
	s := &Server{
		version: version,
		docs:    newDocuments(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.patterns == nil {
		s.patterns = pattern.Default()
	}
	s.handler = protocol.Handler{
		Initialize:                 s.initialize,
		Initialized:                s.initialized,
		Shutdown:                   s.shutdown,
		SetTrace:                   s.setTrace,
		TextDocumentDidOpen:        s.textDocumentDidOpen,
		TextDocumentDidChange:      s.textDocumentDidChange,
		TextDocumentDidClose:       s.textDocumentDidClose,
		TextDocumentDocumentSymbol: s.textDocumentDocumentSymbol,
		TextDocumentHover:          s.textDocumentHover,
	}
	s.server = server.NewServer(&s.handler, lsName, false)
	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

// RunTCP listens on address and serves each connection.
func (s *Server) RunTCP(address string) error {
	return s.server.RunTCP(address)
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	// Sync defaults to incremental because a change handler is installed.
	capabilities := s.handler.CreateServerCapabilities()
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("client initialized")
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	log.Infof("shutting down with %d open diagnostics", len(s.docs.reported()))
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	d := parseDocument(params.TextDocument.URI, params.TextDocument.Version, params.TextDocument.Text, s.patterns)
	s.docs.put(d)
	s.publish(ctx, d)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	d, ok := s.docs.get(params.TextDocument.URI)
	if !ok {
		log.Warningf("change for unknown document %s", params.TextDocument.URI)
		return nil
	}
	for _, change := range params.ContentChanges {
		// Ranged changes are relative to the text after the previous change.
		d = parseDocument(d.uri, params.TextDocument.Version, d.edit(change), s.patterns)
	}
	s.docs.put(d)
	s.publish(ctx, d)
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(params.TextDocument.URI)
	// Clear the editor's markers for the closed file.
	ctx.Notify(string(protocol.ServerTextDocumentPublishDiagnostics), protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	d, ok := s.docs.get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return d.symbols(d.result.Root, 0), nil
}

func (s *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	d, ok := s.docs.get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return d.hover(toOffset(d.lines, d.text, params.Position)), nil
}

func (s *Server) publish(ctx *glsp.Context, d *document) {
	diags := d.diagnostics()
	log.Debugf("publishing %d diagnostics for %s", len(diags), d.uri)
	version := protocol.UInteger(d.version)
	ctx.Notify(string(protocol.ServerTextDocumentPublishDiagnostics), protocol.PublishDiagnosticsParams{
		URI:         d.uri,
		Version:     &version,
		Diagnostics: diags,
	})
}
