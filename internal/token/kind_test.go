package token_test

import (
	"testing"

	"layoutlex/internal/source"
	"layoutlex/internal/token"
)

func TestKindIsValid(t *testing.T) {
	tests := []struct {
		kind token.Kind
		text string
		want bool
	}{
		{token.LineEnding, "\r", true},
		{token.LineEnding, "\n", true},
		{token.LineEnding, "\r\n", true},
		{token.LineEnding, "\n\r", false},
		{token.LineEnding, "\n\n", false},
		{token.Whitespace, " \t ", true},
		{token.Whitespace, " \n", false},
		{token.Symbol, "foo_Bar9", true},
		{token.Symbol, "foo-bar", false},
		{token.Controls, "\x00\x1b\x7f", true},
		{token.Controls, "\t", false},
		{token.NonASCII, "你好", true},
		{token.NonASCII, "你a", false},
		{token.Special('+'), "+", true},
		{token.Special('+'), "++", false},
		{token.Special('+'), "-", false},
		{token.Special('a'), "a", false},
		{token.Symbol, "", false},
	}
	for _, tt := range tests {
		if got := tt.kind.IsValid(tt.text); got != tt.want {
			t.Errorf("%v.IsValid(%q) = %v, want %v", tt.kind, tt.text, got, tt.want)
		}
	}
}

func TestKindNames(t *testing.T) {
	names := map[token.Kind]string{
		token.NonASCII:     "non-ascii",
		token.LineEnding:   "line-ending",
		token.Whitespace:   "whitespace",
		token.Controls:     "controls",
		token.Symbol:       "symbol",
		token.Special('#'): "special",
	}
	for k, want := range names {
		if got := k.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

func TestMergeable(t *testing.T) {
	for _, k := range []token.Kind{token.NonASCII, token.Whitespace, token.Controls, token.Symbol} {
		if !k.Mergeable() {
			t.Errorf("%v should be mergeable", k)
		}
	}
	for _, k := range []token.Kind{token.LineEnding, token.Special('.')} {
		if k.Mergeable() {
			t.Errorf("%v must NOT be mergeable", k)
		}
	}
}

func TestDisplayByte(t *testing.T) {
	if got := token.DisplayText("a\r\n \t_;\x00é"); got != "arnst_;???" {
		t.Fatalf("DisplayText = %q", got)
	}
}

func TestTokenString(t *testing.T) {
	tok := token.Token{
		Kind: token.LineEnding,
		Span: source.Span{Text: "\r\n", Line: 2, Pos: 7},
	}
	if got := tok.String(); got != "Token([2:7]:line-ending rn)" {
		t.Fatalf("String() = %q", got)
	}
}
