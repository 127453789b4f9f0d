package lexer

import (
	"errors"
	"fmt"
	"math"

	"layoutlex/internal/diag"
	"layoutlex/internal/token"
)

// ErrTooLarge rejects sources whose line counter or a single line's byte
// length would not fit in 32 bits. Byte offsets are 32-bit as well, so New
// also rejects any source longer than math.MaxUint32 bytes.
var ErrTooLarge = errors.New("source too large")

type Lexer struct {
	cursor Cursor
	opts   Options
	limit  uint64 // верхняя граница счётчиков; тесты её понижают
	err    error
}

func New(src string, opts Options) *Lexer {
	lx := &Lexer{
		cursor: NewCursor(src),
		opts:   opts,
		limit:  math.MaxUint32,
	}
	// абсолютные смещения в Span тоже 32-битные
	if uint64(len(src)) > math.MaxUint32 {
		lx.fail(fmt.Errorf("%w: %d bytes", ErrTooLarge, len(src)))
	}
	return lx
}

// Tokenize lexes src with default options.
func Tokenize(src string) (*Lex, error) {
	return New(src, Options{}).Lex()
}

// Next returns the next token. ok is false at end of input and after a
// failure; Err tells the two apart.
func (lx *Lexer) Next() (tok token.Token, ok bool) {
	if lx.err != nil || lx.cursor.EOF() {
		return token.Token{}, false
	}
	start := lx.cursor.Mark()
	kind, n := Classify(lx.cursor.Rest())
	isEnding := kind == token.LineEnding

	switch {
	case isEnding && uint64(lx.cursor.Line)+1 > lx.limit:
		lx.fail(fmt.Errorf("%w: more than %d lines", ErrTooLarge, lx.limit))
	case !isEnding && uint64(lx.cursor.Pos)+uint64(n) > lx.limit:
		lx.fail(fmt.Errorf("%w: line %d longer than %d bytes", ErrTooLarge, lx.cursor.Line+1, lx.limit))
	}
	if lx.err != nil {
		lx.cursor.advance(n, isEnding)
		lx.report(diag.LexTooLarge, diag.SevError, lx.cursor.SpanFrom(start), lx.err.Error())
		return token.Token{}, false
	}

	lx.cursor.advance(n, isEnding)
	tok = token.Token{Kind: kind, Span: lx.cursor.SpanFrom(start)}
	if kind == token.Controls && lx.opts.WarnControls {
		lx.report(diag.LexControlBytes, diag.SevWarning, tok.Span,
			fmt.Sprintf("control bytes %q", tok.Span.Text))
	}
	return tok, true
}

// Err returns the failure that stopped the lexer, if any.
func (lx *Lexer) Err() error {
	return lx.err
}

// Lex drains the lexer into a token stream. On failure no partial result is
// returned.
func (lx *Lexer) Lex() (*Lex, error) {
	capacity := lx.opts.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	capacity = min(capacity, len(lx.cursor.Src)+1)
	tokens := make([]token.Token, 0, capacity)
	for {
		tok, ok := lx.Next()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}
	if lx.err != nil {
		return nil, lx.err
	}
	return newLex(lx.cursor.Src, tokens), nil
}

func (lx *Lexer) fail(err error) {
	if lx.err == nil {
		lx.err = err
	}
}
