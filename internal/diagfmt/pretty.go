package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"layoutlex/internal/diag"
	"layoutlex/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^^^ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		var sb strings.Builder
		file := lookupFile(fs, d.File)
		loc := d.Location()

		fmt.Fprintf(&sb, "%s: %s %s: %s\n",
			p.path(fmt.Sprintf("%s:%d:%d", formatPath(fs, file, opts.PathMode), loc.Line, loc.Col)),
			p.severity(d.Severity)(d.Severity.String()),
			p.bold(d.Code.ID()),
			d.Message)

		if file != nil {
			writeSnippet(&sb, p, file, d.Primary, int(opts.Context), p.severity(d.Severity))
		}

		if opts.ShowNotes {
			for _, note := range d.Notes {
				nl := source.LineColOf(note.Span)
				fmt.Fprintf(&sb, "  %s %s:%d:%d: %s\n",
					p.note("note:"), formatPath(fs, file, opts.PathMode), nl.Line, nl.Col, note.Msg)
				if file != nil {
					writeSnippet(&sb, p, file, note.Span, 0, p.note)
				}
			}
		}
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

// writeSnippet prints the span's first line with context and an underline.
func writeSnippet(sb *strings.Builder, p palette, file *source.File, sp source.Span, context int, mark sprint) {
	context = max(context, 0)
	line := sp.Line + 1
	first := line - uint32(min(context, int(sp.Line)))
	last := line + uint32(context)
	width := len(strconv.FormatUint(uint64(last), 10))
	gutter := strings.Repeat(" ", width)

	total := lineCount(file)
	fmt.Fprintf(sb, "%s %s\n", gutter, p.dim("|"))
	for n := first; n <= last; n++ {
		if n > line && n > total {
			break
		}
		text := file.GetLine(n)
		num := fmt.Sprintf("%*d", width, n)
		if n == line {
			fmt.Fprintf(sb, "%s %s %s\n", p.bold(num), p.dim("|"), text)
			fmt.Fprintf(sb, "%s %s %s\n", gutter, p.dim("|"), underline(text, int(sp.Pos), sp.Len(), mark))
			continue
		}
		fmt.Fprintf(sb, "%s %s %s\n", p.dim(num), p.dim("|"), text)
	}
}

// lineCount counts terminated lines plus an unterminated last one.
func lineCount(file *source.File) uint32 {
	var n uint32
	text := file.Content
	for i := 0; i < len(text); {
		if k := source.LineEndingPrefixLen(text[i:]); k > 0 {
			n++
			i += k
			continue
		}
		i++
	}
	if text != "" && !source.IsLineEndingByte(text[len(text)-1]) {
		n++
	}
	return n
}

// underline builds the marker line: the prefix keeps tabs so the carets line
// up under the text, other runes become spaces of their display width.
func underline(line string, pos, length int, mark sprint) string {
	pos = min(pos, len(line))
	var pad strings.Builder
	for _, r := range line[:pos] {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	end := min(pos+length, len(line))
	n := max(runewidth.StringWidth(line[pos:end]), 1)
	return pad.String() + mark(strings.Repeat("^", n))
}
