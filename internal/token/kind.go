package token

import (
	"fmt"
)

// Class is the structural category of a run of bytes.
type Class uint8

const (
	// ClassNonASCII covers runs of bytes above 0x7F.
	ClassNonASCII Class = iota
	// ClassLineEnding is a single CR, LF or CRLF.
	ClassLineEnding
	// ClassWhitespace covers runs of spaces and tabs.
	ClassWhitespace
	// ClassControls covers runs of control bytes other than CR, LF and TAB.
	ClassControls
	// ClassSymbol covers runs of ASCII letters, digits and underscores.
	ClassSymbol
	// ClassSpecial is any other single ASCII byte.
	ClassSpecial
)

var classNames = [...]string{
	ClassNonASCII:   "non-ascii",
	ClassLineEnding: "line-ending",
	ClassWhitespace: "whitespace",
	ClassControls:   "controls",
	ClassSymbol:     "symbol",
	ClassSpecial:    "special",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return fmt.Sprintf("Class(%d)", uint8(c))
}

// Kind is a closed union over Class; Byte is meaningful only for ClassSpecial.
type Kind struct {
	Class Class
	Byte  byte
}

var (
	NonASCII   = Kind{Class: ClassNonASCII}
	LineEnding = Kind{Class: ClassLineEnding}
	Whitespace = Kind{Class: ClassWhitespace}
	Controls   = Kind{Class: ClassControls}
	Symbol     = Kind{Class: ClassSymbol}
)

// Special returns the kind of the single punctuation byte b.
func Special(b byte) Kind {
	return Kind{Class: ClassSpecial, Byte: b}
}

func (k Kind) IsSpecial() bool { return k.Class == ClassSpecial }

// Mergeable reports whether two adjacent tokens of this kind could have been
// one token. Special never merges; LineEnding merges only as CRLF, which the
// caller has to check on the text.
func (k Kind) Mergeable() bool {
	switch k.Class {
	case ClassNonASCII, ClassWhitespace, ClassControls, ClassSymbol:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	return k.Class.String()
}

// IsValid reports whether text could be a token of this kind.
func (k Kind) IsValid(text string) bool {
	if text == "" {
		return false
	}
	switch k.Class {
	case ClassNonASCII:
		return all(text, IsNonASCII)
	case ClassLineEnding:
		return text == "\r" || text == "\n" || text == "\r\n"
	case ClassWhitespace:
		return all(text, IsWhitespace)
	case ClassControls:
		return all(text, IsControl)
	case ClassSymbol:
		return all(text, IsSymbol)
	case ClassSpecial:
		return len(text) == 1 && text[0] == k.Byte && IsSpecial(k.Byte)
	default:
		return false
	}
}

func IsNonASCII(b byte) bool { return b > 0x7F }

func IsWhitespace(b byte) bool { return b == ' ' || b == '\t' }

func IsLineEnding(b byte) bool { return b == '\r' || b == '\n' }

// IsControl reports control bytes that are not layout: < 0x20 except CR, LF
// and TAB, plus DEL.
func IsControl(b byte) bool {
	return (b < 0x20 && b != '\r' && b != '\n' && b != '\t') || b == 0x7F
}

func IsSymbol(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// IsSpecial reports ASCII bytes that fall in no other class.
func IsSpecial(b byte) bool {
	return !IsNonASCII(b) && !IsLineEnding(b) && !IsWhitespace(b) && !IsControl(b) && !IsSymbol(b)
}

func all(s string, pred func(byte) bool) bool {
	for i := 0; i < len(s); i++ {
		if !pred(s[i]) {
			return false
		}
	}
	return true
}
