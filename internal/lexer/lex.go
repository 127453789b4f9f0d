package lexer

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"layoutlex/internal/source"
	"layoutlex/internal/token"
)

// ErrBrokenStream is returned by Validate when a token list does not describe
// its source.
var ErrBrokenStream = errors.New("broken token stream")

// Lex is a tokenized source: the tokens, concatenated, are the source.
type Lex struct {
	source string
	tokens []token.Token
}

// NewLex validates tokens against src and wraps them.
func NewLex(src string, tokens []token.Token) (*Lex, error) {
	l := &Lex{source: src, tokens: tokens}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func newLex(src string, tokens []token.Token) *Lex {
	l := &Lex{source: src, tokens: tokens}
	if source.CheckInvariants {
		if err := l.Validate(); err != nil {
			panic(err)
		}
	}
	return l
}

func (l *Lex) Source() string { return l.source }

// Tokens returns the token list. It must not be modified.
func (l *Lex) Tokens() []token.Token { return l.tokens }

func (l *Lex) Len() int { return len(l.tokens) }

// Validate checks that the tokens reproduce the source, that every kind fits
// its text, that line/position counters advance correctly without overflow,
// and that no two adjacent tokens should have been one.
func (l *Lex) Validate() error {
	if err := l.matchesSource(); err != nil {
		return err
	}
	if err := l.matchesPositions(); err != nil {
		return err
	}
	return l.maximal()
}

func (l *Lex) matchesSource() error {
	rest := l.source
	var off uint64
	for i, tok := range l.tokens {
		if !strings.HasPrefix(rest, tok.Span.Text) {
			return fmt.Errorf("%w: token %d %q does not match source at offset %d", ErrBrokenStream, i, tok.Span.Text, off)
		}
		if !tok.Kind.IsValid(tok.Span.Text) {
			return fmt.Errorf("%w: token %d %q is not a valid %s", ErrBrokenStream, i, tok.Span.Text, tok.Kind)
		}
		if uint64(tok.Span.Off) != off {
			return fmt.Errorf("%w: token %d at offset %d, want %d", ErrBrokenStream, i, tok.Span.Off, off)
		}
		rest = rest[len(tok.Span.Text):]
		off += uint64(len(tok.Span.Text))
	}
	if rest != "" {
		return fmt.Errorf("%w: %d trailing bytes not covered", ErrBrokenStream, len(rest))
	}
	return nil
}

func (l *Lex) matchesPositions() error {
	var line, pos uint64
	for i, tok := range l.tokens {
		if uint64(tok.Span.Line) != line || uint64(tok.Span.Pos) != pos {
			return fmt.Errorf("%w: token %d at %d:%d, want %d:%d", ErrBrokenStream, i, tok.Span.Line, tok.Span.Pos, line, pos)
		}
		if tok.Kind == token.LineEnding {
			line++
			pos = 0
		} else {
			pos += uint64(len(tok.Span.Text))
		}
		if line > math.MaxUint32 || pos > math.MaxUint32 {
			return fmt.Errorf("%w: counter overflow at token %d", ErrBrokenStream, i)
		}
	}
	return nil
}

func (l *Lex) maximal() error {
	for i := 1; i < len(l.tokens); i++ {
		prev, cur := l.tokens[i-1], l.tokens[i]
		if prev.Kind.Class != cur.Kind.Class {
			continue
		}
		switch {
		case cur.Kind.IsSpecial():
			continue
		case cur.Kind == token.LineEnding:
			if prev.Span.Text == "\r" && cur.Span.Text == "\n" {
				return fmt.Errorf("%w: split CRLF at token %d", ErrBrokenStream, i)
			}
		default:
			return fmt.Errorf("%w: adjacent %s tokens at %d", ErrBrokenStream, cur.Kind, i)
		}
	}
	return nil
}

// String renders one block per source line:
//
//	line 1:
//	    0    : symbol           the
func (l *Lex) String() string {
	var b strings.Builder
	var line uint32
	for _, tok := range l.tokens {
		if tok.Span.Line == line {
			line++
			fmt.Fprintf(&b, "line %d:\n", line)
		}
		fmt.Fprintf(&b, "    %-5d: %-16s %s\n", tok.Span.Pos, tok.Kind, token.DisplayText(tok.Span.Text))
	}
	return b.String()
}
