package token

import (
	"fmt"
	"strings"

	"layoutlex/internal/source"
)

// Token is a classified span of source text.
type Token struct {
	Kind Kind
	Span source.Span
}

func (t Token) Text() string { return t.Span.Text }

func (t Token) IsLayout() bool {
	return t.Kind.Class == ClassWhitespace || t.Kind.Class == ClassLineEnding
}

// String renders the token as Token([line:pos]:kind bytes).
func (t Token) String() string {
	return fmt.Sprintf("Token([%d:%d]:%s %s)", t.Span.Line, t.Span.Pos, t.Kind, DisplayText(t.Span.Text))
}

// DisplayByte maps a byte to a single printable mnemonic:
// CR, LF, space and tab become r, n, s, t; letters, digits and ASCII
// punctuation are kept; everything else becomes '?'.
func DisplayByte(b byte) byte {
	switch b {
	case '\r':
		return 'r'
	case '\n':
		return 'n'
	case ' ':
		return 's'
	case '\t':
		return 't'
	}
	if IsSymbol(b) || (b > 0x20 && b < 0x7F) {
		return b
	}
	return '?'
}

// DisplayText applies DisplayByte to every byte of s.
func DisplayText(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		sb.WriteByte(DisplayByte(s[i]))
	}
	return sb.String()
}
