// Package pathsrv exposes weave's path-expression language over the
// Language Server Protocol, so an editor can flag a malformed
// expression (in a pipeline config, or typed into a scratch file)
// before a user ever runs it against real data.
//
// It is built on the same stack as the teacher's javalyzer language
// server: github.com/tliron/glsp plus github.com/tliron/glsp/server,
// with github.com/tliron/commonlog/simple wired in as the logging
// backend.
package pathsrv

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/weave/pathexpr"
)

const languageServerName = "weave"

// Server is a minimal LSP server that validates the path expressions
// in a document, one per line, and republishes diagnostics whenever
// the document changes.
type Server struct {
	handler protocol.Handler
	server  *server.Server
	docs    map[string]string
	version string
	root    string
}

// NewServer builds a Server tagged with version, ready to run over
// stdio via RunStdio.
func NewServer(version string) *Server {
	s := &Server{docs: make(map[string]string), version: version}

	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Shutdown:              s.shutdown,
		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,
		TextDocumentDidSave:   s.textDocumentDidSave,
	}
	s.server = server.NewServer(&s.handler, languageServerName, false)
	return s
}

// RunStdio serves LSP requests over stdin/stdout until the client
// disconnects.
func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	s.root = "."
	if params.RootPath != nil && *params.RootPath != "" {
		s.root = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			s.root = path
		}
	}

	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    languageServerName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) shutdown(ctx *glsp.Context) error { return nil }

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.docs[uri] = params.TextDocument.Text
	s.publishDiagnostics(ctx, uri)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		s.docs[uri] = whole.Text
		s.publishDiagnostics(ctx, uri)
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	delete(s.docs, params.TextDocument.URI)
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := params.TextDocument.URI
	if params.Text != nil {
		s.docs[uri] = *params.Text
		s.publishDiagnostics(ctx, uri)
	}
	return nil
}

// publishDiagnostics validates every non-blank line of the document
// that does not start with '#' as a path expression and reports the
// ones that fail to parse.
func (s *Server) publishDiagnostics(ctx *glsp.Context, uri string) {
	text := s.docs[uri]
	var diagnostics []protocol.Diagnostic
	for i, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if _, err := pathexpr.Parse(trimmed); err != nil {
			severity := protocol.DiagnosticSeverityError
			diagnostics = append(diagnostics, protocol.Diagnostic{
				Range: protocol.Range{
					Start: protocol.Position{Line: uint32(i), Character: 0},
					End:   protocol.Position{Line: uint32(i), Character: uint32(len(line))},
				},
				Severity: &severity,
				Source:   strPtr(languageServerName),
				Message:  err.Error(),
			})
		}
	}
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool { return &b }
func strPtr(s string) *string { return &s }

func intPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}
