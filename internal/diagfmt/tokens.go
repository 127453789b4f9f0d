package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"layoutlex/internal/lexer"
	"layoutlex/internal/token"
)

type TokenOutput struct {
	Kind    string `json:"kind"`
	Byte    string `json:"byte,omitempty"` // только для special
	Text    string `json:"text"`
	Display string `json:"display"`
	Line    uint32 `json:"line"`
	Pos     uint32 `json:"pos"`
	Off     uint32 `json:"off"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате:
// номер, line:pos (0-based), вид и текст в кавычках.
func FormatTokensPretty(w io.Writer, tokens []token.Token, opts TokenOpts) error {
	p := newPalette(opts.Color)
	for i, tok := range tokens {
		text := fmt.Sprintf("%q", tok.Text())
		if opts.Width > 0 && runewidth.StringWidth(text) > opts.Width {
			text = runewidth.Truncate(text, opts.Width, "...")
		}
		kind := fmt.Sprintf("%-11s", tok.Kind.String())
		if tok.IsLayout() {
			kind = p.dim(kind)
		} else {
			kind = p.bold(kind)
		}
		if _, err := fmt.Fprintf(w, "%5d %s %s %s\n", i+1,
			p.dim(fmt.Sprintf("%4d:%-4d", tok.Span.Line, tok.Span.Pos)), kind, text); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text(),
			Display: token.DisplayText(tok.Text()),
			Line:    tok.Span.Line,
			Pos:     tok.Span.Pos,
			Off:     tok.Span.Off,
		}
		if tok.Kind.IsSpecial() {
			out.Byte = string(rune(tok.Kind.Byte))
		}
		output = append(output, out)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// FormatTokensLex prints the line-grouped dump of Lex.String.
func FormatTokensLex(w io.Writer, lex *lexer.Lex) error {
	_, err := io.WriteString(w, lex.String())
	return err
}

// FormatTokenSummary prints one "kind count" line per kind, in first-seen
// order.
func FormatTokenSummary(w io.Writer, tokens []token.Token) error {
	var order []string
	counts := make(map[string]int)
	for _, tok := range tokens {
		k := tok.Kind.String()
		if _, ok := counts[k]; !ok {
			order = append(order, k)
		}
		counts[k]++
	}
	var sb strings.Builder
	for _, k := range order {
		fmt.Fprintf(&sb, "%-11s %d\n", k, counts[k])
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
