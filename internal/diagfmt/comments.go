package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"layoutlex/internal/driver"
	"layoutlex/internal/source"
)

// AnchorJSON is one anchor line with its comment block.
type AnchorJSON struct {
	Line     uint32   `json:"line"` // 1-based
	Col      uint32   `json:"col"`  // 1-based, в байтах
	Text     string   `json:"text"`
	Comments []string `json:"comments"`
}

// CommentsOutput is the root of the JSON comment dump.
type CommentsOutput struct {
	File    string       `json:"file"`
	Anchors []AnchorJSON `json:"anchors"`
	Count   int          `json:"count"`
}

// CommentBlockText joins comment lines top to bottom, wrapping at width
// when it is positive.
func CommentBlockText(comments []string, width int) string {
	text := strings.Join(comments, "\n")
	if width > 0 {
		text = wordwrap.String(text, width)
	}
	return text
}

// FormatCommentsPretty prints each anchor as path:line:col and its text,
// followed by the comment block indented below it.
func FormatCommentsPretty(w io.Writer, fs *source.FileSet, file *source.File, anchors []driver.Anchor, opts CommentOpts) error {
	p := newPalette(opts.Color)
	path := formatPath(fs, file, opts.PathMode)
	pad := opts.Indent
	if pad == 0 {
		pad = 4
	}
	var sb strings.Builder
	for _, a := range anchors {
		loc := source.LineColOf(a.Line)
		fmt.Fprintf(&sb, "%s %s\n", p.path(fmt.Sprintf("%s:%d:%d", path, loc.Line, loc.Col)), p.bold(a.Line.Text))
		block := CommentBlockText(a.Texts(), opts.Width)
		sb.WriteString(p.note(indent.String(block, pad)))
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// BuildCommentsOutput converts anchors for JSON output.
func BuildCommentsOutput(fs *source.FileSet, file *source.File, anchors []driver.Anchor, mode PathMode) CommentsOutput {
	out := CommentsOutput{
		File:    formatPath(fs, file, mode),
		Anchors: make([]AnchorJSON, 0, len(anchors)),
	}
	for _, a := range anchors {
		loc := source.LineColOf(a.Line)
		out.Anchors = append(out.Anchors, AnchorJSON{
			Line:     loc.Line,
			Col:      loc.Col,
			Text:     a.Line.Text,
			Comments: a.Texts(),
		})
	}
	out.Count = len(out.Anchors)
	return out
}

// FormatCommentsJSON writes BuildCommentsOutput as indented JSON.
func FormatCommentsJSON(w io.Writer, fs *source.FileSet, file *source.File, anchors []driver.Anchor, mode PathMode) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildCommentsOutput(fs, file, anchors, mode))
}
