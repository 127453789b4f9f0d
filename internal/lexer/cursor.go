package lexer

import (
	"layoutlex/internal/source"
)

// Cursor представляет собой позицию в исходнике вместе со счётчиками строки и позиции.
type Cursor struct {
	Src  string
	Off  int
	Line uint32
	Pos  uint32
}

// NewCursor creates a new cursor at the start of src.
func NewCursor(src string) Cursor {
	return Cursor{Src: src}
}

// EOF проверяет, достигнут ли конец исходника
func (c *Cursor) EOF() bool {
	return c.Off >= len(c.Src)
}

// Rest returns the unread part of the source.
func (c *Cursor) Rest() string {
	return c.Src[c.Off:]
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Src[c.Off]
}

// Mark это метка, чтобы быстро получать Span читаемого фрагмента
type Mark struct {
	off  int
	line uint32
	pos  uint32
}

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark{off: c.Off, line: c.Line, pos: c.Pos}
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		Text: c.Src[m.off:c.Off],
		Line: m.line,
		Pos:  m.pos,
		Off:  uint32(m.off), //nolint:gosec // off is bounded by the size check in Lex
	}
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off, c.Line, c.Pos = m.off, m.line, m.pos
}

// advance consumes n bytes that form one token of the given line-ending-ness.
// Counters are advanced by the caller-checked amounts.
func (c *Cursor) advance(n int, lineEnding bool) {
	c.Off += n
	if lineEnding {
		c.Line++
		c.Pos = 0
		return
	}
	c.Pos += uint32(n) //nolint:gosec // n is checked against the limit before advancing
}
