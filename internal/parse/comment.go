package parse

import (
	"strings"

	"layoutlex/internal/source"
)

// LineComment is a matched line comment split into its parts.
// Ending is empty when the comment runs to the end of input.
type LineComment struct {
	Delimiter source.Span
	Text      source.Span
	Ending    source.Span
}

// Len returns the total byte length of the comment, ending included.
func (lc LineComment) Len() int {
	return lc.Delimiter.Len() + lc.Text.Len() + lc.Ending.Len()
}

// LineComment matches the configured delimiter followed by the rest of the line.
func (c Cursor) LineComment() (LineComment, Cursor, bool) {
	delim, ok := c.cfg.Delimiter()
	if !ok || !strings.HasPrefix(c.span.Text, delim) {
		return LineComment{}, c, false
	}
	d, after := c.split(len(delim))
	text, ending, rest := after.RestOfLine()
	return LineComment{Delimiter: d.span, Text: text, Ending: ending}, rest, true
}

// WhiteLineComments skips any mix of whitespace, line endings and line
// comments and returns everything it skipped as one span.
func (c Cursor) WhiteLineComments() (source.Span, Cursor, bool) {
	cur := c
	total := 0
	for {
		matched := false
		if white, rest, ok := cur.WhiteLines(); ok {
			matched = true
			total += white.Len()
			cur = rest
		}
		if lc, rest, ok := cur.LineComment(); ok {
			matched = true
			total += lc.Len()
			cur = rest
		}
		if !matched {
			return c.splitOptional(total)
		}
	}
}
