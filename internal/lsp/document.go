// Package lsp publishes phenolint's findings over the Language Server
// Protocol: diagnostics on open/change, and a single "apply phenolint
// patches" code action, via github.com/tliron/glsp.
package lsp

import (
	"fmt"
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Document is one open text document, tracked only well enough to
// re-lint it on every change: unlike an editing language server,
// phenolint never needs to resolve a byte offset back into the document
// for completion/hover/rename, so there is no cached parse tree here —
// Content is re-parsed by internal/linter.Lint on every publish.
type Document struct {
	URI     string
	Content []byte
	Version int32
}

// manager tracks currently open documents, keyed by URI.
type manager struct {
	mu        sync.RWMutex
	documents map[string]*Document
}

func newManager() *manager {
	return &manager{documents: make(map[string]*Document)}
}

func (m *manager) didOpen(params *protocol.DidOpenTextDocumentParams) *Document {
	doc := &Document{
		URI:     params.TextDocument.URI,
		Content: []byte(params.TextDocument.Text),
		Version: params.TextDocument.Version,
	}
	m.mu.Lock()
	m.documents[doc.URI] = doc
	m.mu.Unlock()
	return doc
}

// didChange applies a full-document sync update (the server advertises
// TextDocumentSyncKindFull, so every change carries the complete new
// text rather than an incremental range edit).
func (m *manager) didChange(params *protocol.DidChangeTextDocumentParams) (*Document, error) {
	uri := params.TextDocument.URI

	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.documents[uri]
	if !ok {
		return nil, fmt.Errorf("document not open: %s", uri)
	}
	for _, change := range params.ContentChanges {
		// Only the whole-document shape (Range == nil) is expected: the
		// server advertises TextDocumentSyncKindFull, so every change
		// notification carries the complete new text.
		if textChange, ok := change.(protocol.TextDocumentContentChangeEvent); ok && textChange.Range == nil {
			doc.Content = []byte(textChange.Text)
		}
	}
	doc.Version = params.TextDocument.Version
	return doc, nil
}

func (m *manager) didClose(params *protocol.DidCloseTextDocumentParams) {
	m.mu.Lock()
	delete(m.documents, params.TextDocument.URI)
	m.mu.Unlock()
}

func (m *manager) get(uri string) (*Document, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.documents[uri]
	return doc, ok
}
