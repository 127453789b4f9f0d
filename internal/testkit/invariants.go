package testkit

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"layoutlex/internal/parse"
	"layoutlex/internal/source"
	"layoutlex/internal/token"
)

// CheckTokens verifies a token list against its source independently of
// lexer.Lex.Validate:
// 1) walking the whole source span with Split reproduces every token span exactly
// 2) every kind accepts its text
// 3) no two adjacent tokens of a mergeable kind share a class
// 4) no token separates the CR and LF of a CRLF pair
func CheckTokens(src string, toks []token.Token) error {
	if _, err := safecast.Conv[uint32](len(src)); err != nil {
		return fmt.Errorf("source length overflow: %w", err)
	}
	rest := source.NewSpan(src)
	for i, tok := range toks {
		n := tok.Span.Len()
		if n == 0 {
			return fmt.Errorf("token %d is empty", i)
		}
		if n > rest.Len() {
			return fmt.Errorf("token %d %q runs past the end of source", i, tok.Span.Text)
		}
		if !rest.IsValidSplitIndex(n) {
			return fmt.Errorf("token %d %q ends on an invalid split index", i, tok.Span.Text)
		}
		want, next := rest.Split(n)
		if want != tok.Span {
			return fmt.Errorf("token %d span %v %q, want %v %q", i, tok.Span, tok.Span.Text, want, want.Text)
		}
		if !tok.Kind.IsValid(tok.Span.Text) {
			return fmt.Errorf("token %d %q is not a valid %s", i, tok.Span.Text, tok.Kind)
		}
		if i > 0 {
			prev := toks[i-1]
			if prev.Kind == tok.Kind && tok.Kind.Mergeable() {
				return fmt.Errorf("tokens %d and %d are both %s", i-1, i, tok.Kind)
			}
		}
		rest = next
	}
	if !rest.Empty() {
		return fmt.Errorf("%d bytes not covered by tokens", rest.Len())
	}
	return nil
}

// CheckSplit verifies Split at i:
// 1) the halves concatenate to the original text
// 2) the left half keeps the original coordinates
// 3) the right half starts where a byte-by-byte recount says it does
func CheckSplit(s source.Span, i int) error {
	if !s.IsValidSplitIndex(i) {
		return fmt.Errorf("index %d is not a valid split of %q", i, s.Text)
	}
	left, right := s.Split(i)
	if left.Text+right.Text != s.Text {
		return fmt.Errorf("split %d: %q + %q != %q", i, left.Text, right.Text, s.Text)
	}
	if left.Line != s.Line || left.Pos != s.Pos || left.Off != s.Off {
		return fmt.Errorf("split %d: left starts at %v, want %v", i, left, s)
	}
	line, pos := recount(s, i)
	if uint64(right.Line) != line || uint64(right.Pos) != pos {
		return fmt.Errorf("split %d: right at %d:%d, want %d:%d", i, right.Line, right.Pos, line, pos)
	}
	if uint64(right.Off) != uint64(s.Off)+uint64(i) {
		return fmt.Errorf("split %d: right offset %d, want %d", i, right.Off, uint64(s.Off)+uint64(i))
	}
	return nil
}

// CheckAllSplits runs CheckSplit for every valid index of s and checks that
// indices inside a UTF-8 sequence or a CRLF pair are rejected.
func CheckAllSplits(s source.Span) error {
	for i := 0; i <= s.Len(); i++ {
		valid := s.IsValidSplitIndex(i)
		if valid != wantValid(s.Text, i) {
			return fmt.Errorf("IsValidSplitIndex(%d) = %v for %q", i, valid, s.Text)
		}
		if !valid {
			if _, _, err := s.SplitChecked(i); err == nil {
				return fmt.Errorf("SplitChecked(%d) accepted an invalid index in %q", i, s.Text)
			}
			continue
		}
		if err := CheckSplit(s, i); err != nil {
			return err
		}
	}
	return nil
}

// CheckCombinator verifies the result of a cursor combinator: on success the
// match and the remainder tile the input; on failure the input is untouched.
func CheckCombinator(in parse.Cursor, match source.Span, rest parse.Cursor, ok bool) error {
	if !ok {
		if rest.Span() != in.Span() {
			return fmt.Errorf("failed match moved the cursor: %v -> %v", in.Span(), rest.Span())
		}
		return nil
	}
	if match.Empty() {
		return fmt.Errorf("successful match is empty at %v", in.Span())
	}
	want, wantRest := in.Span().Split(match.Len())
	if match != want {
		return fmt.Errorf("match %v %q, want %v %q", match, match.Text, want, want.Text)
	}
	if rest.Span() != wantRest {
		return fmt.Errorf("rest %v, want %v", rest.Span(), wantRest)
	}
	return nil
}

// recount walks the first i bytes of s and returns the line and position of
// byte i.
func recount(s source.Span, i int) (line, pos uint64) {
	line, pos = uint64(s.Line), uint64(s.Pos)
	text := s.Text[:i]
	for j := 0; j < len(text); j++ {
		switch {
		case text[j] == '\r' && j+1 < len(text) && text[j+1] == '\n':
			continue
		case text[j] == '\r' || text[j] == '\n':
			line++
			pos = 0
		default:
			pos++
		}
	}
	return line, pos
}

func wantValid(text string, i int) bool {
	if i == 0 || i == len(text) {
		return true
	}
	if !utf8.RuneStart(text[i]) {
		return false
	}
	return text[i-1] != '\r' || text[i] != '\n'
}
