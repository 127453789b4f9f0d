package source

import (
	"fmt"
)

// Span is a zero-copy view into a source buffer.
// Text always shares memory with the buffer it was cut from; Line and Pos
// locate its first byte (both 0-based, Pos counted in bytes within the line),
// Off is the absolute byte offset of that byte.
type Span struct {
	Text string
	Line uint32
	Pos  uint32
	Off  uint32
}

// NewSpan returns a span covering the whole text, starting at line 0, position 0.
func NewSpan(text string) Span {
	return Span{Text: text}
}

func (s Span) Empty() bool {
	return len(s.Text) == 0
}

func (s Span) Len() int {
	return len(s.Text)
}

// End returns the absolute byte offset just past the span.
func (s Span) End() uint32 {
	return s.Off + mustU32(len(s.Text))
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d+%d", s.Line, s.Pos, len(s.Text))
}

// Contains reports whether the absolute offset falls inside the span.
func (s Span) Contains(off uint32) bool {
	return off >= s.Off && off < s.End()
}
