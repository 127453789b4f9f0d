package driver

import (
	"fmt"

	"layoutlex/internal/diag"
	"layoutlex/internal/lexer"
	"layoutlex/internal/source"
	"layoutlex/internal/token"
)

// LineEndingStyle names one line terminator.
type LineEndingStyle string

const (
	EndingLF   LineEndingStyle = "LF"
	EndingCRLF LineEndingStyle = "CRLF"
	EndingCR   LineEndingStyle = "CR"
)

func styleOf(s string) LineEndingStyle {
	switch s {
	case "\r\n":
		return EndingCRLF
	case "\r":
		return EndingCR
	default:
		return EndingLF
	}
}

// lineEndings splits a line-ending token into single terminators.
func lineEndings(sp source.Span) []source.Span {
	var out []source.Span
	rest := sp
	for !rest.Empty() {
		n := source.LineEndingPrefixLen(rest.Text)
		if n == 0 {
			break
		}
		var one source.Span
		one, rest = rest.Split(n)
		out = append(out, one)
	}
	return out
}

// LineCount returns the number of lines in the stream: terminators plus one
// for an unterminated last line.
func LineCount(lex *lexer.Lex) int {
	toks := lex.Tokens()
	if len(toks) == 0 {
		return 0
	}
	n := 0
	for _, tok := range toks {
		if tok.Kind == token.LineEnding {
			n += len(lineEndings(tok.Span))
		}
	}
	if toks[len(toks)-1].Kind != token.LineEnding {
		n++
	}
	return n
}

// Check validates the stream and reports layout lints:
//   - a broken stream (LexBrokenStream, error)
//   - line terminators that differ from the first one seen (LexMixedLineEndings, warning, once)
//   - whitespace at the end of a line (LexTrailingSpace, info)
func Check(lex *lexer.Lex, r diag.Reporter) {
	if r == nil || lex == nil {
		return
	}
	if err := lex.Validate(); err != nil {
		r.Report(diag.LexBrokenStream, diag.SevError, source.Span{}, err.Error(), nil)
		return
	}

	var (
		first      source.Span
		firstStyle LineEndingStyle
		mixed      bool
	)
	toks := lex.Tokens()
	for i, tok := range toks {
		switch tok.Kind {
		case token.LineEnding:
			for _, one := range lineEndings(tok.Span) {
				style := styleOf(one.Text)
				switch {
				case firstStyle == "":
					first, firstStyle = one, style
				case style != firstStyle && !mixed:
					mixed = true
					diag.ReportWarning(r, diag.LexMixedLineEndings, one,
						fmt.Sprintf("%s line ending in a file that started with %s", style, firstStyle)).
						WithNote(first, "first line ending here").
						Emit()
				}
			}
		case token.Whitespace:
			if i+1 == len(toks) || toks[i+1].Kind == token.LineEnding {
				diag.ReportInfo(r, diag.LexTrailingSpace, tok.Span, "trailing whitespace").Emit()
			}
		}
	}
}
