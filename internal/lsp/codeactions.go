package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"phenolint/internal/context"
	"phenolint/internal/linter"
	"phenolint/internal/report"

	"go.uber.org/zap"
)

const applyPatchesTitle = "Apply phenolint patches"

// codeActionsFor re-runs Lint with patching enabled and, if it produced
// a re-serialized text document, offers one whole-document code action
// replacing doc's content with it. Protobuf documents produce
// BinaryData, which has no text representation an editor could apply as
// a TextEdit, so no action is offered for those.
func codeActionsFor(log *zap.Logger, ctx *context.LinterContext, doc *Document) []protocol.CodeAction {
	result := linter.Lint(log, ctx, doc.Content, true, true)
	if result.Err != nil || len(result.Report.Findings) == 0 {
		return nil
	}

	hasPatch := false
	for _, f := range result.Report.Findings {
		if len(f.Patches) > 0 {
			hasPatch = true
			break
		}
	}
	if !hasPatch {
		return nil
	}

	text, ok := result.Report.PatchedPhenopacket.(report.TextData)
	if !ok {
		return nil
	}

	wholeDocument := protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   positionAt(doc.Content, len(doc.Content)),
	}
	edit := protocol.TextEdit{Range: wholeDocument, NewText: string(text)}

	kind := protocol.CodeActionKindQuickFix
	return []protocol.CodeAction{{
		Title: applyPatchesTitle,
		Kind:  &kind,
		Edit: &protocol.WorkspaceEdit{
			Changes: map[protocol.DocumentUri][]protocol.TextEdit{
				doc.URI: {edit},
			},
		},
	}}
}
