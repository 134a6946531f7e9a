package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"phenolint/internal/context"
	"phenolint/internal/linter"

	"go.uber.org/zap"
)

const (
	// Name is the identifier phenolint's language server reports in its
	// InitializeResult.
	Name = "phenolint"
	// Version is the language server's reported protocol-handler version,
	// independent of phenolint's own CLI versioning.
	Version = "0.1.0"
)

// Server is the glsp-backed LSP front end: stdio JSON-RPC in, diagnostics
// and one "apply phenolint patches" code action out.
type Server struct {
	log  *zap.Logger
	ctx  *context.LinterContext
	docs *manager
	glsp *glspserver.Server
}

// NewServer builds a Server that lints with ctx on every open/change and
// logs through log.
func NewServer(log *zap.Logger, ctx *context.LinterContext) *Server {
	s := &Server{log: log, ctx: ctx, docs: newManager()}

	handler := protocol.Handler{
		Initialize:             s.initialize,
		Initialized:            s.initialized,
		Shutdown:               s.shutdown,
		TextDocumentDidOpen:    s.didOpen,
		TextDocumentDidChange:  s.didChange,
		TextDocumentDidClose:   s.didClose,
		TextDocumentCodeAction: s.codeAction,
	}
	s.glsp = glspserver.NewServer(&handler, Name, false)
	return s
}

// Run serves the protocol over stdio until the client disconnects.
func (s *Server) Run() error {
	s.log.Info("starting phenolint language server", zap.String("version", Version))
	return s.glsp.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	openClose := true
	change := protocol.TextDocumentSyncKindFull
	capabilities := protocol.ServerCapabilities{
		TextDocumentSync: protocol.TextDocumentSyncOptions{
			OpenClose: &openClose,
			Change:    &change,
		},
		CodeActionProvider: &protocol.CodeActionOptions{
			CodeActionKinds: []protocol.CodeActionKind{protocol.CodeActionKindQuickFix},
		},
	}
	version := Version
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo:   &protocol.InitializeResultServerInfo{Name: Name, Version: &version},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := s.docs.didOpen(params)
	s.publish(ctx, doc)
	return nil
}

func (s *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	doc, err := s.docs.didChange(params)
	if err != nil {
		s.log.Warn("didChange for untracked document", zap.Error(err))
		return nil
	}
	s.publish(ctx, doc)
	return nil
}

func (s *Server) didClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.didClose(params)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *Server) codeAction(ctx *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	doc, ok := s.docs.get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return codeActionsFor(s.log, s.ctx, doc), nil
}

// publish runs Lint over doc's current content and sends the resulting
// diagnostics to the client, replacing whatever it previously published
// for this URI.
func (s *Server) publish(ctx *glsp.Context, doc *Document) {
	result := linter.Lint(s.log, s.ctx, doc.Content, false, true)
	if result.Err != nil {
		s.log.Warn("lint failed", zap.String("uri", doc.URI), zap.Error(result.Err))
		return
	}
	diags := diagnosticsFor(doc.Content, result.Report.Findings)
	s.log.Debug("publishing diagnostics", zap.String("uri", doc.URI), zap.Int("count", len(diags)))
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Diagnostics: diags,
	})
}
