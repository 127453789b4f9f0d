package source

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"fortio.org/safecast"
)

// ErrInvalidSplit is returned by SplitChecked when the index is out of range,
// falls inside a UTF-8 sequence or between the CR and LF of a CRLF pair.
var ErrInvalidSplit = errors.New("invalid split index")

// IsValidSplitIndex reports whether the span may be split at byte index i:
// i must be within bounds, on a UTF-8 boundary and must not separate "\r\n".
func (s Span) IsValidSplitIndex(i int) bool {
	if i < 0 || i > len(s.Text) {
		return false
	}
	if i == 0 || i == len(s.Text) {
		return true
	}
	if !utf8.RuneStart(s.Text[i]) {
		return false
	}
	return s.Text[i-1] != '\r' || s.Text[i] != '\n'
}

// Split cuts the span at byte index i and returns (before, from).
// The right half gets its line and position recomputed from the line endings
// inside the left half.
//
// The caller must guarantee IsValidSplitIndex(i). The check is compiled in
// only with the layoutlex_debug build tag; use SplitChecked for untrusted indices.
func (s Span) Split(i int) (Span, Span) {
	if CheckInvariants && !s.IsValidSplitIndex(i) {
		panic(fmt.Errorf("%w: %d in %q", ErrInvalidSplit, i, s.Text))
	}
	left := Span{Text: s.Text[:i], Line: s.Line, Pos: s.Pos, Off: s.Off}
	return left, left.follow(s.Text[i:])
}

// SplitOptional is Split that reports no match for i == 0 instead of
// producing an empty left half. For i == 0 it returns (Span{}, s, false).
func (s Span) SplitOptional(i int) (Span, Span, bool) {
	if i == 0 {
		return Span{}, s, false
	}
	left, right := s.Split(i)
	return left, right, true
}

// SplitChecked validates i before splitting.
func (s Span) SplitChecked(i int) (Span, Span, error) {
	if !s.IsValidSplitIndex(i) {
		return Span{}, s, fmt.Errorf("%w: %d (len %d)", ErrInvalidSplit, i, len(s.Text))
	}
	if !s.fitsAfter(i) {
		return Span{}, s, fmt.Errorf("%w: %d overflows offset %d or column %d", ErrInvalidSplit, i, s.Off, s.Pos)
	}
	left, right := s.Split(i)
	return left, right, nil
}

// fitsAfter reports whether the right half of a split at i keeps its offset
// and column within 32 bits.
func (s Span) fitsAfter(i int) bool {
	if uint64(s.Off)+uint64(i) > math.MaxUint32 {
		return false
	}
	if count, _ := lineEndingCountAndLastLen(s.Text[:i]); count > 0 {
		return true
	}
	return uint64(s.Pos)+uint64(i) <= math.MaxUint32
}

// follow builds the span for rest, which must start right after s in the buffer.
func (s Span) follow(rest string) Span {
	n := mustU32(len(s.Text))
	count, last := lineEndingCountAndLastLen(s.Text)
	next := Span{Text: rest, Line: s.Line, Off: mustU32(int(s.Off) + int(n))}
	if count > 0 {
		next.Line = mustU32(int(s.Line) + count)
		next.Pos = mustU32(last)
	} else {
		next.Pos = mustU32(int(s.Pos) + int(n))
	}
	return next
}

// LineEndingPrefixLen returns 2 for a leading CRLF, 1 for a leading CR or LF
// and 0 otherwise.
func LineEndingPrefixLen(s string) int {
	if s == "" {
		return 0
	}
	switch s[0] {
	case '\r':
		if len(s) >= 2 && s[1] == '\n' {
			return 2
		}
		return 1
	case '\n':
		return 1
	}
	return 0
}

// IsLineEndingByte reports whether b is CR or LF.
func IsLineEndingByte(b byte) bool {
	return b == '\r' || b == '\n'
}

// lineEndingCountAndLastLen counts line endings (CRLF counts once) and
// returns the number of bytes after the last one.
func lineEndingCountAndLastLen(s string) (count, last int) {
	for i := 0; i < len(s); {
		if n := LineEndingPrefixLen(s[i:]); n > 0 {
			count++
			i += n
			last = len(s) - i
			continue
		}
		i++
	}
	if count == 0 {
		last = len(s)
	}
	return count, last
}

func mustU32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("source counter overflow: %w", err))
	}
	return v
}
