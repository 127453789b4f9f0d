package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"layoutlex/internal/parse"
	"layoutlex/internal/source"
	"layoutlex/internal/token"
)

// SemanticTokenTypes is the legend advertised to the client; indices into it
// are the token type numbers on the wire.
var SemanticTokenTypes = []string{
	"comment",
	"variable",
	"number",
	"operator",
	"string",
	"regexp",
}

const (
	semComment uint32 = iota
	semVariable
	semNumber
	semOperator
	semString
	semRegexp
)

type semanticToken struct {
	line   uint32
	start  uint32 // UTF-16
	length uint32 // UTF-16
	kind   uint32
}

// collectSemanticTokens classifies every token of the document. A line whose
// first non-blank text is the comment delimiter is one comment token.
func collectSemanticTokens(d *document, cfg *parse.Config) []semanticToken {
	toks := d.result.Tokens()
	if len(toks) == 0 {
		return nil
	}
	comments := commentLines(d, cfg)
	var out []semanticToken
	for _, tok := range toks {
		if tok.IsLayout() {
			continue
		}
		if c, ok := comments[tok.Span.Line]; ok && tok.Span.Off >= c.Off {
			if tok.Span.Off == c.Off {
				out = append(out, spanToken(d.text, c, semComment))
			}
			continue
		}
		kind, ok := semanticKind(tok)
		if !ok {
			continue
		}
		out = append(out, spanToken(d.text, tok.Span, kind))
	}
	return out
}

func semanticKind(tok token.Token) (uint32, bool) {
	switch tok.Kind.Class {
	case token.ClassSymbol:
		if b := tok.Span.Text[0]; b >= '0' && b <= '9' {
			return semNumber, true
		}
		return semVariable, true
	case token.ClassSpecial:
		return semOperator, true
	case token.ClassNonASCII:
		return semString, true
	case token.ClassControls:
		return semRegexp, true
	}
	return 0, false
}

// commentLines finds whole-line comments keyed by line; the span runs from
// the delimiter to the line ending.
func commentLines(d *document, cfg *parse.Config) map[uint32]source.Span {
	out := make(map[uint32]source.Span)
	c := parse.NewCursor(source.NewSpan(d.text), cfg)
	for !c.Empty() {
		line, _, rest := c.RestOfLine()
		lc := parse.NewCursor(line, cfg)
		if _, after, ok := lc.Whitespace(); ok {
			lc = after
		}
		if comment, _, ok := lc.LineComment(); ok {
			span := comment.Delimiter
			span.Text = d.text[span.Off : comment.Text.End()]
			out[span.Line] = span
		}
		c = rest
	}
	return out
}

func spanToken(text string, span source.Span, kind uint32) semanticToken {
	r := rangeOf(text, span)
	return semanticToken{
		line:   r.Start.Line,
		start:  r.Start.Character,
		length: r.End.Character - r.Start.Character,
		kind:   kind,
	}
}

// encodeSemanticTokens packs tokens into the relative five-integer form.
func encodeSemanticTokens(tokens []semanticToken) []protocol.UInteger {
	data := make([]protocol.UInteger, 0, len(tokens)*5)
	var prevLine, prevStart uint32
	for _, tok := range tokens {
		deltaLine := tok.line - prevLine
		deltaStart := tok.start
		if deltaLine == 0 {
			deltaStart = tok.start - prevStart
		}
		data = append(data, deltaLine, deltaStart, tok.length, tok.kind, 0)
		prevLine = tok.line
		prevStart = tok.start
	}
	return data
}
