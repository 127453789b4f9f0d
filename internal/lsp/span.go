package lsp

import (
	"sort"
	"unicode/utf8"

	"fortio.org/safecast"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"layoutlex/internal/source"
)

const maxUint32 = ^uint32(0)

func safeUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return maxUint32
	}
	return v
}

// lineStarts returns the byte offset of every line start. CR, LF and CRLF
// all end a line, the same way the lexer counts them.
func lineStarts(text string) []uint32 {
	starts := []uint32{0}
	for i := 0; i < len(text); {
		if n := source.LineEndingPrefixLen(text[i:]); n > 0 {
			i += n
			starts = append(starts, safeUint32(i))
			continue
		}
		i++
	}
	return starts
}

// utf16Len counts UTF-16 code units in s. Invalid bytes count as one unit.
func utf16Len(s string) int {
	units := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		i += size
	}
	return units
}

// positionOf converts an absolute byte offset inside a span's line into an
// LSP position. line and pos are the span's 0-based coordinates.
func positionOf(text string, off, line, pos uint32) protocol.Position {
	start := off - pos
	if int(off) > len(text) || start > off {
		return protocol.Position{Line: line}
	}
	return protocol.Position{Line: line, Character: safeUint32(utf16Len(text[start:off]))}
}

// rangeOf converts a span that does not cross a line ending into an LSP range.
func rangeOf(text string, span source.Span) protocol.Range {
	start := positionOf(text, span.Off, span.Line, span.Pos)
	end := start
	end.Character += safeUint32(utf16Len(span.Text))
	return protocol.Range{Start: start, End: end}
}

// rangeOfMultiline handles spans that may contain line endings.
func rangeOfMultiline(text string, starts []uint32, span source.Span) protocol.Range {
	return protocol.Range{
		Start: positionOf(text, span.Off, span.Line, span.Pos),
		End:   positionForOffset(text, starts, span.End()),
	}
}

// positionForOffset maps a byte offset to an LSP position.
func positionForOffset(text string, starts []uint32, offset uint32) protocol.Position {
	offset = min(offset, safeUint32(len(text)))
	line := sort.Search(len(starts), func(i int) bool { return starts[i] > offset }) - 1
	line = max(line, 0)
	// offset между CR и LF относим к концу строки
	start := starts[line]
	return protocol.Position{
		Line:      safeUint32(line),
		Character: safeUint32(utf16Len(text[start:offset])),
	}
}

// offsetForPosition maps an LSP position to a byte offset. Positions past the
// end of a line clamp to the line ending; lines past the end of text clamp to
// the end of text.
func offsetForPosition(text string, starts []uint32, pos protocol.Position) uint32 {
	if int(pos.Line) >= len(starts) {
		return safeUint32(len(text))
	}
	off := starts[pos.Line]
	end := safeUint32(len(text))
	if int(pos.Line)+1 < len(starts) {
		end = starts[pos.Line+1]
	}
	units := 0
	want := int(pos.Character)
	for off < end {
		if source.IsLineEndingByte(text[off]) {
			break
		}
		r, size := utf8.DecodeRuneInString(text[off:end])
		need := 1
		if r > 0xFFFF {
			need = 2
		}
		if units+need > want {
			break
		}
		units += need
		off += safeUint32(size)
	}
	return off
}
