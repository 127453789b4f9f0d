package parse

import (
	"layoutlex/internal/source"
)

// Cursor is a span of remaining input together with the parse configuration.
type Cursor struct {
	span source.Span
	cfg  *Config
}

// NewCursor returns a cursor over span. A nil cfg means DefaultConfig.
func NewCursor(span source.Span, cfg *Config) Cursor {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return Cursor{span: span, cfg: cfg}
}

// FromString returns a cursor over the whole text, starting at line 0, position 0.
func FromString(text string, cfg *Config) Cursor {
	return NewCursor(source.NewSpan(text), cfg)
}

func (c Cursor) Span() source.Span { return c.span }

func (c Cursor) Text() string { return c.span.Text }

func (c Cursor) Len() int { return len(c.span.Text) }

func (c Cursor) Empty() bool { return c.span.Empty() }

func (c Cursor) Config() *Config { return c.cfg }

func (c Cursor) with(span source.Span) Cursor {
	return Cursor{span: span, cfg: c.cfg}
}

// split cuts the cursor at a boundary the caller knows to be valid.
func (c Cursor) split(i int) (Cursor, Cursor) {
	left, right := c.span.Split(i)
	return c.with(left), c.with(right)
}

// splitOptional is split that reports no match for i == 0.
func (c Cursor) splitOptional(i int) (source.Span, Cursor, bool) {
	left, right, ok := c.span.SplitOptional(i)
	if !ok {
		return source.Span{}, c, false
	}
	return left, c.with(right), true
}

// matchPrefix matches the longest prefix whose bytes satisfy pred. pred must
// accept only ASCII bytes and must not stop between CR and LF.
func (c Cursor) matchPrefix(pred func(byte) bool) (source.Span, Cursor, bool) {
	text := c.span.Text
	n := 0
	for n < len(text) && pred(text[n]) {
		n++
	}
	return c.splitOptional(n)
}
