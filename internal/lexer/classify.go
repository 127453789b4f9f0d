package lexer

import (
	"layoutlex/internal/source"
	"layoutlex/internal/token"
)

// Classify returns the kind and byte length of the maximal run of one kind at
// the start of s. s must not be empty.
//
// CRLF is one LineEnding of length 2; LFCR is two tokens. Special is always a
// single byte, even when the next byte is the same.
func Classify(s string) (token.Kind, int) {
	if source.CheckInvariants && s == "" {
		panic("lexer: Classify on empty input")
	}
	b := s[0]
	switch {
	case token.IsNonASCII(b):
		return token.NonASCII, prefixLen(s, token.IsNonASCII)
	case token.IsLineEnding(b):
		return token.LineEnding, source.LineEndingPrefixLen(s)
	case token.IsWhitespace(b):
		return token.Whitespace, prefixLen(s, token.IsWhitespace)
	case token.IsControl(b):
		return token.Controls, prefixLen(s, token.IsControl)
	case token.IsSymbol(b):
		return token.Symbol, prefixLen(s, token.IsSymbol)
	default:
		return token.Special(b), 1
	}
}

// prefixLen returns the length of the longest prefix of s whose bytes satisfy pred.
func prefixLen(s string, pred func(byte) bool) int {
	for i := 0; i < len(s); i++ {
		if !pred(s[i]) {
			return i
		}
	}
	return len(s)
}
