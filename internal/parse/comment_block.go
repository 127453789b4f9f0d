package parse

import (
	"strings"
	"unicode"

	"layoutlex/internal/source"
)

// CommentBlock is the result of LineCommentBlock.
type CommentBlock struct {
	// Comments holds the comment texts without delimiter, nearest line first.
	Comments []source.Span
	// Ignored is the part of Block above the accepted comments.
	Ignored source.Span
	// Block is the whole layout run the comments were taken from.
	Block source.Span
}

// Empty reports whether no comment was accepted.
func (b CommentBlock) Empty() bool {
	return len(b.Comments) == 0
}

// Texts returns the comment texts, nearest line first.
func (b CommentBlock) Texts() []string {
	out := make([]string, len(b.Comments))
	for i, c := range b.Comments {
		out[i] = c.Text
	}
	return out
}

// LineCommentBlock extracts the line comments that directly precede the end
// of the layout run at c.
//
// The last line of the run (the indentation in front of whatever follows)
// fixes the indent level. Lines are then examined upward; extraction stops at
// the first line whose indent level differs or which does not start with the
// delimiter after its indentation. Comments come out bottom-to-top.
//
// When at least one comment is accepted the returned cursor is past the run;
// otherwise it is c.
func (c Cursor) LineCommentBlock() (CommentBlock, Cursor) {
	delim, ok := c.cfg.Delimiter()
	if !ok {
		return CommentBlock{}, c
	}
	block, after, ok := c.WhiteLineComments()
	if !ok {
		return CommentBlock{}, c
	}

	out := CommentBlock{Block: block}
	lines, last := c.with(block).splitLastLine()
	want, _ := last.IndentLevel()
	for !lines.Empty() {
		rest, line := lines.withoutTrailingLineEnding().splitLastLine()
		level, n := line.IndentLevel()
		if level != want {
			break
		}
		_, body := line.split(n)
		if !strings.HasPrefix(body.Text(), delim) {
			break
		}
		_, text := body.split(len(delim))
		out.Comments = append(out.Comments, c.cfg.commentText(text))
		lines = rest
	}
	out.Ignored = lines.span

	if out.Empty() {
		return out, c
	}
	return out, after
}

// splitLastLine splits after the last CR or LF; without one the whole text
// is the last line.
func (c Cursor) splitLastLine() (Cursor, Cursor) {
	i := strings.LastIndexAny(c.span.Text, "\r\n")
	return c.split(i + 1)
}

// withoutTrailingLineEnding drops one trailing CRLF, CR or LF.
func (c Cursor) withoutTrailingLineEnding() Cursor {
	text := c.span.Text
	n := 0
	switch {
	case strings.HasSuffix(text, "\r\n"):
		n = 2
	case strings.HasSuffix(text, "\r"), strings.HasSuffix(text, "\n"):
		n = 1
	}
	left, _ := c.split(len(text) - n)
	return left
}

func (cfg *Config) commentText(c Cursor) source.Span {
	if !cfg.trim {
		return c.span
	}
	text := c.span.Text
	lead := len(text) - len(strings.TrimLeftFunc(text, unicode.IsSpace))
	_, rest := c.split(lead)
	kept := len(strings.TrimRightFunc(rest.Text(), unicode.IsSpace))
	trimmed, _ := rest.split(kept)
	return trimmed.span
}
