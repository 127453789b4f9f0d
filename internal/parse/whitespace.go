package parse

import (
	"strings"

	"layoutlex/internal/source"
	"layoutlex/internal/token"
)

// Whitespace matches a non-empty run of spaces and tabs.
func (c Cursor) Whitespace() (source.Span, Cursor, bool) {
	return c.matchPrefix(token.IsWhitespace)
}

// LineEnding matches a single CR, LF or CRLF.
func (c Cursor) LineEnding() (source.Span, Cursor, bool) {
	return c.splitOptional(source.LineEndingPrefixLen(c.span.Text))
}

// RestOfLine splits off the text up to the next line ending and the ending
// itself. Without a line ending the whole input is the line, ending is empty
// and rest is empty.
func (c Cursor) RestOfLine() (line, ending source.Span, rest Cursor) {
	i := strings.IndexAny(c.span.Text, "\r\n")
	if i < 0 {
		i = c.Len()
	}
	before, after := c.split(i)
	ending, rest, _ = after.LineEnding()
	return before.span, ending, rest
}

// WhiteLines matches a non-empty run of whitespace and line endings, blank
// lines included, as one span.
func (c Cursor) WhiteLines() (source.Span, Cursor, bool) {
	return c.matchPrefix(func(b byte) bool {
		return token.IsWhitespace(b) || token.IsLineEnding(b)
	})
}

// IndentLevel measures the leading indentation: each tab is one level and one
// byte, each full group of TabWidth spaces is one level. It stops at the first
// byte that does not complete a level. n is the byte length of the measured
// indentation.
func (c Cursor) IndentLevel() (level, n int) {
	white, _, ok := c.Whitespace()
	if !ok {
		return 0, 0
	}
	width := c.cfg.tabWidth
	text := white.Text
	for n < len(text) {
		switch {
		case text[n] == '\t':
			n++
		case n+width <= len(text) && strings.Count(text[n:n+width], " ") == width:
			n += width
		default:
			return level, n
		}
		level++
	}
	return level, n
}

// LineText returns the 0-based line n of the cursor without its line ending.
// ok is false when n is negative or the input has fewer lines. This walks the input from the
// start on every call.
func (c Cursor) LineText(n int) (source.Span, bool) {
	if n < 0 {
		return source.Span{}, false
	}
	cur := c
	for range n {
		_, ending, rest := cur.RestOfLine()
		if ending.Empty() {
			return source.Span{}, false
		}
		cur = rest
	}
	line, _, _ := cur.RestOfLine()
	return line, true
}
