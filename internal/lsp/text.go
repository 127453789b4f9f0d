package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// applyChanges applies didChange content changes in order. A whole-document
// change replaces the text; a ranged change splices it.
func applyChanges(text string, changes []any) string {
	for _, change := range changes {
		switch change := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = change.Text
		case protocol.TextDocumentContentChangeEvent:
			if change.Range == nil {
				text = change.Text
				continue
			}
			starts := lineStarts(text)
			start := offsetForPosition(text, starts, change.Range.Start)
			end := offsetForPosition(text, starts, change.Range.End)
			end = max(end, start)
			text = text[:start] + change.Text + text[end:]
		}
	}
	return text
}
