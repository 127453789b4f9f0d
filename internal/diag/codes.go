package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo             Code = 1000
	LexTooLarge         Code = 1001
	LexControlBytes     Code = 1002
	LexBrokenStream     Code = 1003
	LexMixedLineEndings Code = 1004
	LexTrailingSpace    Code = 1005

	// Комментарии и конфигурация
	CmtInfo             Code = 4000
	CmtIndentMismatch   Code = 4001
	CmtDanglingBlock    Code = 4002
	CfgInvalidDelimiter Code = 4100
	CfgInvalidTabWidth  Code = 4101
	CfgDecodeError      Code = 4102

	// Целочисленные литералы
	IntInfo        Code = 5000
	IntEmpty       Code = 5001
	IntInvalidChar Code = 5002
	IntUnderscore  Code = 5003
	IntOutOfRange  Code = 5004

	// IO
	IOLoadFileError Code = 9001
	IOReadDirError  Code = 9002
	IOCacheError    Code = 9003
)

var (
	codeDescription = map[Code]string{
		UnknownCode:         "Unknown error",
		LexInfo:             "Lexical information",
		LexTooLarge:         "Source too large for 32-bit positions",
		LexControlBytes:     "Control bytes in source",
		LexBrokenStream:     "Token stream invariant violated",
		LexMixedLineEndings: "Mixed line endings",
		LexTrailingSpace:    "Trailing whitespace",
		CmtInfo:             "Comment information",
		CmtIndentMismatch:   "Comment indentation differs from block",
		CmtDanglingBlock:    "Comment block without anchor",
		CfgInvalidDelimiter: "Invalid comment delimiter",
		CfgInvalidTabWidth:  "Invalid tab width",
		CfgDecodeError:      "Cannot decode configuration",
		IntInfo:             "Integer literal information",
		IntEmpty:            "Empty integer literal",
		IntInvalidChar:      "Invalid character in integer literal",
		IntUnderscore:       "Misplaced underscore in integer literal",
		IntOutOfRange:       "Integer literal out of range",
		IOLoadFileError:     "Cannot load file",
		IOReadDirError:      "Cannot read directory",
		IOCacheError:        "Cache unavailable",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 4000 && ic < 4100:
		return fmt.Sprintf("CMT%04d", ic)
	case ic >= 4100 && ic < 5000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("INT%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
