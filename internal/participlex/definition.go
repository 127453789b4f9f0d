// Package participlex exposes the layout tokenizer as a participle lexer, so
// grammars can be written over the same token classes the rest of the tool
// reports.
package participlex

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	plex "github.com/alecthomas/participle/v2/lexer"

	"layoutlex/internal/lexer"
	"layoutlex/internal/parse"
	"layoutlex/internal/token"
)

// Token type names as seen by participle grammars.
const (
	NonASCII   = "NonASCII"
	LineEnding = "LineEnding"
	Whitespace = "Whitespace"
	Controls   = "Controls"
	Symbol     = "Symbol"
	Special    = "Special"
	// Comment runs from the delimiter to the end of its line.
	Comment = "Comment"
)

var classTypes = map[token.Class]plex.TokenType{
	token.ClassNonASCII:   -2,
	token.ClassLineEnding: -3,
	token.ClassWhitespace: -4,
	token.ClassControls:   -5,
	token.ClassSymbol:     -6,
	token.ClassSpecial:    -7,
}

const commentType plex.TokenType = -8

var symbols = map[string]plex.TokenType{
	"EOF":      plex.EOF,
	NonASCII:   classTypes[token.ClassNonASCII],
	LineEnding: classTypes[token.ClassLineEnding],
	Whitespace: classTypes[token.ClassWhitespace],
	Controls:   classTypes[token.ClassControls],
	Symbol:     classTypes[token.ClassSymbol],
	Special:    classTypes[token.ClassSpecial],
	Comment:    commentType,
}

// Definition implements plex.Definition on top of lexer.Lexer.
type Definition struct {
	delim string
}

var (
	_ plex.Definition       = (*Definition)(nil)
	_ plex.StringDefinition = (*Definition)(nil)
	_ plex.BytesDefinition  = (*Definition)(nil)
)

// New returns a definition. When cfg has a delimiter, everything from a
// delimiter at a token boundary to the end of its line is one Comment token.
func New(cfg *parse.Config) *Definition {
	d := &Definition{}
	if cfg != nil {
		d.delim, _ = cfg.Delimiter()
	}
	return d
}

// Symbols returns the token type names; the map must not be modified.
func (d *Definition) Symbols() map[string]plex.TokenType {
	return symbols
}

func (d *Definition) Lex(filename string, r io.Reader) (plex.Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return d.LexString(filename, string(data))
}

func (d *Definition) LexBytes(filename string, input []byte) (plex.Lexer, error) {
	return d.LexString(filename, string(input))
}

// LexString tokenizes input up front. A source the lexer rejects is returned
// as an error wrapping lexer.ErrTooLarge.
func (d *Definition) LexString(filename, input string) (plex.Lexer, error) {
	lex, err := lexer.Tokenize(input)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	out := &tokenLexer{}
	col := 1
	toks := lex.Tokens()
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		pos := plex.Position{
			Filename: filename,
			Offset:   int(tok.Span.Off),
			Line:     int(tok.Span.Line) + 1,
			Column:   col,
		}
		typ := classTypes[tok.Kind.Class]
		value := tok.Span.Text
		if d.delim != "" && !tok.IsLayout() && strings.HasPrefix(input[tok.Span.Off:], d.delim) {
			// комментарий поглощает токены до конца строки
			rest := input[tok.Span.Off:]
			if end := strings.IndexAny(rest, "\r\n"); end >= 0 {
				rest = rest[:end]
			}
			typ, value = commentType, rest
			for i+1 < len(toks) && int(toks[i+1].Span.Off) < int(tok.Span.Off)+len(rest) {
				i++
			}
		}
		out.tokens = append(out.tokens, plex.Token{Type: typ, Value: value, Pos: pos})
		if tok.Kind == token.LineEnding {
			col = 1
		} else {
			col += utf8.RuneCountInString(value)
		}
	}
	out.eof = plex.Token{Type: plex.EOF, Pos: plex.Position{
		Filename: filename,
		Offset:   len(input),
		Line:     lineAfter(toks),
		Column:   col,
	}}
	return out, nil
}

// lineAfter is the 1-based line the end of input sits on.
func lineAfter(toks []token.Token) int {
	if len(toks) == 0 {
		return 1
	}
	last := toks[len(toks)-1]
	if last.Kind == token.LineEnding {
		return int(last.Span.Line) + 2
	}
	return int(last.Span.Line) + 1
}

type tokenLexer struct {
	tokens []plex.Token
	next   int
	eof    plex.Token
}

// Next returns the tokens in order, then EOF forever.
func (l *tokenLexer) Next() (plex.Token, error) {
	if l.next >= len(l.tokens) {
		return l.eof, nil
	}
	tok := l.tokens[l.next]
	l.next++
	return tok, nil
}
