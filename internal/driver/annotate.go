package driver

import (
	"slices"

	"layoutlex/internal/diag"
	"layoutlex/internal/parse"
	"layoutlex/internal/source"
)

// Anchor is a line of content together with the comment block right above it.
type Anchor struct {
	// Line is the anchor line from its first non-blank byte up to the line ending.
	Line source.Span
	// Comments are the comment texts, top line first.
	Comments []source.Span
	// Ignored is the part of the layout run above the accepted comments.
	Ignored source.Span
}

// Texts returns the comment texts, top line first.
func (a Anchor) Texts() []string {
	out := make([]string, len(a.Comments))
	for i, c := range a.Comments {
		out[i] = c.Text
	}
	return out
}

// Annotate walks src and returns every anchor that has at least one comment
// above it. An anchor is the first non-layout line after a run of blank lines
// and line comments.
func Annotate(src string, cfg *parse.Config) []Anchor {
	return AnnotateSpan(source.NewSpan(src), cfg, nil)
}

// AnnotateSpan is Annotate over a span with absolute positions. When r is not
// nil, comments cut off by an indentation change and comments trailing at the
// end of input are reported.
func AnnotateSpan(src source.Span, cfg *parse.Config, r diag.Reporter) []Anchor {
	var anchors []Anchor
	c := parse.NewCursor(src, cfg)
	for !c.Empty() {
		block, _ := c.LineCommentBlock()
		_, at, _ := c.WhiteLineComments()
		if at.Empty() {
			if r != nil {
				reportDangling(r, c, cfg)
			}
			break
		}
		line, _, rest := at.RestOfLine()
		if !block.Empty() {
			comments := slices.Clone(block.Comments)
			slices.Reverse(comments)
			anchors = append(anchors, Anchor{Line: line, Comments: comments, Ignored: block.Ignored})
			if r != nil {
				reportCutOff(r, block.Ignored, cfg)
			}
		}
		c = rest
	}
	return anchors
}

// reportCutOff flags a comment line right above an accepted block that was
// rejected for its indentation.
func reportCutOff(r diag.Reporter, ignored source.Span, cfg *parse.Config) {
	lines := splitLines(ignored, cfg)
	if len(lines) == 0 {
		return
	}
	last := lines[len(lines)-1]
	if isCommentLine(last, cfg) {
		diag.ReportInfo(r, diag.CmtIndentMismatch, last,
			"comment is indented differently from the block below it").Emit()
	}
}

// reportDangling flags comments that are not followed by any content line.
func reportDangling(r diag.Reporter, c parse.Cursor, cfg *parse.Config) {
	for _, line := range splitLines(c.Span(), cfg) {
		if isCommentLine(line, cfg) {
			diag.ReportInfo(r, diag.CmtDanglingBlock, line, "comment at end of input has no line to attach to").Emit()
			return
		}
	}
}

func splitLines(sp source.Span, cfg *parse.Config) []source.Span {
	var out []source.Span
	c := parse.NewCursor(sp, cfg)
	for !c.Empty() {
		line, _, rest := c.RestOfLine()
		out = append(out, line)
		c = rest
	}
	return out
}

func isCommentLine(line source.Span, cfg *parse.Config) bool {
	c := parse.NewCursor(line, cfg)
	if _, rest, ok := c.Whitespace(); ok {
		c = rest
	}
	_, _, ok := c.LineComment()
	return ok
}
