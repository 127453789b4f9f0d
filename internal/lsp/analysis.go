package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"layoutlex/internal/diag"
	"layoutlex/internal/driver"
)

// document is the analysed state of one open buffer.
type document struct {
	uri     protocol.DocumentUri
	version protocol.Integer
	text    string
	starts  []uint32
	result  *driver.TokenizeResult
	anchors []driver.Anchor
}

// analyze lexes text, lints the token stream and extracts comment blocks.
// A lexing failure leaves anchors empty; the failure is in result.Bag.
func analyze(uri protocol.DocumentUri, version protocol.Integer, text string, opts Options) *document {
	res := driver.TokenizeSource(uriToPath(uri), []byte(text), driver.TokenizeOptions{
		MaxDiagnostics: opts.MaxDiagnostics,
		WarnControls:   opts.WarnControls,
		Lint:           true,
	})
	doc := &document{
		uri:     uri,
		version: version,
		text:    res.File.Content,
		starts:  lineStarts(res.File.Content),
		result:  res,
	}
	if res.Lex != nil {
		r := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag, File: res.File.ID})
		doc.anchors = driver.AnnotateSpan(res.File.Span(), opts.Parse, r)
	}
	log.Debugf("analysed %s v%d: %d tokens, %d anchors, %d diagnostics",
		uri, version, len(res.Tokens()), len(doc.anchors), res.Bag.Len())
	return doc
}

// anchorAt returns the anchor whose line contains offset.
func (d *document) anchorAt(offset uint32) (driver.Anchor, bool) {
	for _, a := range d.anchors {
		// строка якоря от начала строки (с отступом) до перевода строки
		lineStart := a.Line.Off - a.Line.Pos
		if offset >= lineStart && offset <= a.Line.End() {
			return a, true
		}
		if lineStart > offset {
			break
		}
	}
	return driver.Anchor{}, false
}
