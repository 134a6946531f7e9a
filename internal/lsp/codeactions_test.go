package lsp

import (
	"testing"

	"phenolint/internal/context"

	"go.uber.org/zap"
)

func TestCodeActionsForOffersApplyPatchesOnFixableDocument(t *testing.T) {
	doc := &Document{
		URI: "file:///patient.json",
		Content: []byte(`{
			"id": "patient-1",
			"metaData": {},
			"diseases": [],
			"interpretations": [
				{"diagnosis": {"disease": {"id": "MONDO:0001", "label": "x"}}}
			]
		}`),
	}
	ctx := context.New(nil, []string{"INTER001"})
	actions := codeActionsFor(zap.NewNop(), ctx, doc)
	if len(actions) != 1 {
		t.Fatalf("len(actions) = %d, want 1", len(actions))
	}
	if actions[0].Title != applyPatchesTitle {
		t.Errorf("Title = %q, want %q", actions[0].Title, applyPatchesTitle)
	}
	edits, ok := actions[0].Edit.Changes[doc.URI]
	if !ok || len(edits) != 1 {
		t.Fatalf("expected exactly one TextEdit for %s, got %+v", doc.URI, actions[0].Edit.Changes)
	}
}

func TestCodeActionsForOffersNothingOnCleanDocument(t *testing.T) {
	doc := &Document{
		URI:     "file:///patient.json",
		Content: []byte(`{"id": "patient-1", "metaData": {}}`),
	}
	ctx := context.New(nil, []string{"CURIE001"})
	actions := codeActionsFor(zap.NewNop(), ctx, doc)
	if len(actions) != 0 {
		t.Errorf("len(actions) = %d, want 0 for a document with nothing to patch", len(actions))
	}
}
