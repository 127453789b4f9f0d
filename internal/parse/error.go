package parse

import (
	"fmt"
	"unicode/utf8"

	"layoutlex/internal/source"
)

// Error is a parse failure located at a span of the input.
type Error[E any] struct {
	Span source.Span
	Err  E
}

func (e *Error[E]) Error() string {
	return fmt.Sprintf("%d:%d: %v", e.Span.Line+1, e.Span.Pos+1, e.Err)
}

// Unwrap exposes Err when it is itself an error.
func (e *Error[E]) Unwrap() error {
	if err, ok := any(e.Err).(error); ok {
		return err
	}
	return nil
}

// ToError locates e at the most useful span at c: the symbol starting there,
// else the next character (a whole CRLF counts as one), else the empty input.
func ToError[E any](c Cursor, e E) *Error[E] {
	if sym, _, ok := c.Symbol(); ok {
		return &Error[E]{Span: sym, Err: e}
	}
	if c.Empty() {
		return &Error[E]{Span: c.span, Err: e}
	}
	n := source.LineEndingPrefixLen(c.span.Text)
	if n == 0 {
		_, n = utf8.DecodeRuneInString(c.span.Text)
		if !c.span.IsValidSplitIndex(n) {
			// битый UTF-8: берём хвост до ближайшей границы
			for n < c.Len() && !c.span.IsValidSplitIndex(n) {
				n++
			}
		}
	}
	first, _ := c.split(n)
	return &Error[E]{Span: first.span, Err: e}
}

// MapError converts the payload of a located error.
func MapError[E, F any](err *Error[E], f func(E) F) *Error[F] {
	if err == nil {
		return nil
	}
	return &Error[F]{Span: err.Span, Err: f(err.Err)}
}

// Punct skips white lines and comments and matches ch. On a non-match it
// returns a *Error[E] located after the skipped layout.
func Punct[E any](c Cursor, ch rune, e E) (source.Span, Cursor, error) {
	_, after, _ := c.WhiteLineComments()
	if mark, rest, ok := after.Mark(ch); ok {
		return mark, rest, nil
	}
	return source.Span{}, c, ToError(after, e)
}
