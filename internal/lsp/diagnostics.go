package lsp

import (
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"phenolint/internal/report"
)

// positionAt converts a byte offset into content to a zero-based
// line/character LSP Position. No available library maps a raw byte
// offset in an arbitrary document back to UTF-16 code units; a single
// forward scan over the bytes already read for linting is the standard
// idiom and needs no wrapper.
func positionAt(content []byte, offset int) protocol.Position {
	if offset > len(content) {
		offset = len(content)
	}
	var line, char uint32
	for i := 0; i < offset; {
		r, size := utf8.DecodeRune(content[i:offset])
		i += size
		if r == '\n' {
			line++
			char = 0
			continue
		}
		if r >= 0x10000 {
			char += 2
		} else {
			char++
		}
	}
	return protocol.Position{Line: line, Character: char}
}

// diagnosticsFor converts a lint report's compiled ReportSpecs into LSP
// diagnostics positioned against content.
func diagnosticsFor(content []byte, findings []report.LintFinding) []protocol.Diagnostic {
	diags := make([]protocol.Diagnostic, 0, len(findings))
	for _, f := range findings {
		if f.ReportSpec == nil || len(f.ReportSpec.Labels) == 0 {
			continue
		}
		primary := f.ReportSpec.Labels[0]
		severity := severityOf(f.ReportSpec.Severity)
		source := "phenolint"
		message := f.ReportSpec.Code + ": " + f.ReportSpec.Message
		diags = append(diags, protocol.Diagnostic{
			Range: protocol.Range{
				Start: positionAt(content, primary.Range.Start),
				End:   positionAt(content, primary.Range.End),
			},
			Severity: &severity,
			Source:   &source,
			Message:  message,
		})
	}
	return diags
}

func severityOf(s report.Severity) protocol.DiagnosticSeverity {
	switch s {
	case report.SeverityError:
		return protocol.DiagnosticSeverityError
	case report.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityHint
	}
}
