package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// buildHover shows the comment block above the anchor line under pos.
func buildHover(d *document, pos protocol.Position) *protocol.Hover {
	if d == nil {
		return nil
	}
	a, ok := d.anchorAt(offsetForPosition(d.text, d.starts, pos))
	if !ok || len(a.Comments) == 0 {
		return nil
	}
	r := rangeOf(d.text, a.Line)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: commentMarkdown(a.Texts()),
		},
		Range: &r,
	}
}

// commentMarkdown renders each run of non-blank comment lines as a Markdown
// paragraph with hard line breaks.
func commentMarkdown(lines []string) string {
	var paragraphs []string
	var cur []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(cur) > 0 {
				paragraphs = append(paragraphs, strings.Join(cur, "  \n"))
				cur = nil
			}
			continue
		}
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		paragraphs = append(paragraphs, strings.Join(cur, "  \n"))
	}
	return strings.Join(paragraphs, "\n\n")
}
