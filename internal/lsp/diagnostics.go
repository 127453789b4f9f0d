package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"layoutlex/internal/diag"
)

const diagnosticSource = "layoutlex"

// buildDiagnostics converts the document's bag into LSP diagnostics. Notes
// become related information on the same document.
func buildDiagnostics(d *document) []protocol.Diagnostic {
	items := d.result.Bag.Items()
	out := make([]protocol.Diagnostic, 0, len(items))
	for _, item := range items {
		pd := protocol.Diagnostic{
			Range:    rangeOfMultiline(d.text, d.starts, item.Primary),
			Severity: ptrSeverity(severityOf(item.Severity)),
			Code:     &protocol.IntegerOrString{Value: item.Code.ID()},
			Source:   ptrString(diagnosticSource),
			Message:  item.Message,
		}
		for _, note := range item.Notes {
			pd.RelatedInformation = append(pd.RelatedInformation, protocol.DiagnosticRelatedInformation{
				Location: protocol.Location{URI: d.uri, Range: rangeOfMultiline(d.text, d.starts, note.Span)},
				Message:  note.Msg,
			})
		}
		out = append(out, pd)
	}
	return out
}

func severityOf(sev diag.Severity) protocol.DiagnosticSeverity {
	switch sev {
	case diag.SevError:
		return protocol.DiagnosticSeverityError
	case diag.SevWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}

// publishDiagnostics sends diagnostics for d. An empty list clears them.
func publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}
	log.Debugf("publishing %d diagnostics for %s", len(diagnostics), uri)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
