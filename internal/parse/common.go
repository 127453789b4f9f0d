package parse

import (
	"strings"

	"layoutlex/internal/source"
	"layoutlex/internal/token"
)

// Symbol matches a non-empty run of ASCII letters, digits and underscores.
func (c Cursor) Symbol() (source.Span, Cursor, bool) {
	return c.matchPrefix(token.IsSymbol)
}

// ExactSymbol matches s only when it is the whole next symbol, so "for" does
// not match the start of "format".
func (c Cursor) ExactSymbol(s string) (source.Span, Cursor, bool) {
	sym, rest, ok := c.Symbol()
	if !ok || sym.Text != s {
		return source.Span{}, c, false
	}
	return sym, rest, true
}

// Exact matches the literal s. It refuses to match when s ends in CR and the
// input continues with LF, since that would split a CRLF.
func (c Cursor) Exact(s string) (source.Span, Cursor, bool) {
	text := c.span.Text
	if s == "" || !strings.HasPrefix(text, s) {
		return source.Span{}, c, false
	}
	if s[len(s)-1] == '\r' && len(text) > len(s) && text[len(s)] == '\n' {
		return source.Span{}, c, false
	}
	left, right := c.split(len(s))
	return left.span, right, true
}

// Mark matches the single character r.
func (c Cursor) Mark(r rune) (source.Span, Cursor, bool) {
	return c.Exact(string(r))
}

// WhiteMark skips white lines and line comments, then matches r. On a
// non-match the original cursor is returned.
func (c Cursor) WhiteMark(r rune) (source.Span, Cursor, bool) {
	_, after, _ := c.WhiteLineComments()
	mark, rest, ok := after.Mark(r)
	if !ok {
		return source.Span{}, c, false
	}
	return mark, rest, true
}
