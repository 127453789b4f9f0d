// Package token defines the byte-class token kinds produced by the layout lexer.
// Invariants:
//   - Token.Span.Text is a slice of the original source (no copies).
//   - A Special token is always exactly one byte and carries that byte in Kind.Byte.
//   - LineEnding text is exactly "\r", "\n" or "\r\n".
//   - Non-ASCII text is one opaque run; the lexer never looks inside it.
package token
