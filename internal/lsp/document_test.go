package lsp

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestManagerDidOpenTracksDocument(t *testing.T) {
	m := newManager()
	uri := "file:///patient.json"
	doc := m.didOpen(&protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "json", Version: 1, Text: `{"id":"x"}`},
	})
	if doc.URI != uri || string(doc.Content) != `{"id":"x"}` || doc.Version != 1 {
		t.Errorf("unexpected document: %+v", doc)
	}

	got, ok := m.get(uri)
	if !ok || got != doc {
		t.Error("expected get to return the same tracked document")
	}
}

func TestManagerDidChangeReplacesFullContent(t *testing.T) {
	m := newManager()
	uri := "file:///patient.json"
	m.didOpen(&protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Version: 1, Text: `{"id":"x"}`},
	})

	doc, err := m.didChange(&protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEvent{Text: `{"id":"y"}`},
		},
	})
	if err != nil {
		t.Fatalf("didChange error: %v", err)
	}
	if string(doc.Content) != `{"id":"y"}` || doc.Version != 2 {
		t.Errorf("unexpected document after change: %+v", doc)
	}
}

func TestManagerDidChangeUntrackedDocumentErrors(t *testing.T) {
	m := newManager()
	_, err := m.didChange(&protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: "file:///never-opened.json"},
			Version:                2,
		},
	})
	if err == nil {
		t.Error("expected an error for a didChange on an untracked document")
	}
}

func TestManagerDidCloseRemovesDocument(t *testing.T) {
	m := newManager()
	uri := "file:///patient.json"
	m.didOpen(&protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Version: 1, Text: `{}`},
	})
	m.didClose(&protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	if _, ok := m.get(uri); ok {
		t.Error("expected document to be removed after didClose")
	}
}
