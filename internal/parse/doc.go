// Package parse provides layout-aware combinators over source spans.
//
// Every combinator has the shape
//
//	func (c Cursor) X(...) (match source.Span, rest Cursor, ok bool)
//
// A non-match returns ok == false and rest == c: combinators never fail in
// any other way. ToError turns a cursor position into a located error when
// a caller decides that a non-match is fatal.
//
// Cursors are values. They pair a span with a *Config that must not be
// changed once parsing has started; any number of cursors may share it.
package parse
