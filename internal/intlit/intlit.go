// Package intlit validates and parses unsigned decimal integer literals with
// an underscore policy.
package intlit

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"layoutlex/internal/diag"
	"layoutlex/internal/parse"
	"layoutlex/internal/source"
)

var (
	ErrEmpty                    = errors.New("integers cannot be empty")
	ErrInvalidChar              = errors.New("the integer contains an invalid char")
	ErrContainsUnderscore       = errors.New("integers cannot contain underscores")
	ErrStartsWithUnderscore     = errors.New("integers cannot start with underscores")
	ErrEndsWithUnderscore       = errors.New("integers cannot end with underscores")
	ErrContainsDoubleUnderscore = errors.New("integers cannot contain double underscores")
	ErrContainsOnlyUnderscores  = errors.New("integers cannot contain only underscores")
	ErrOutOfRange               = errors.New("the integer value is out of range")
)

// InvalidCharError names the offending character; it matches ErrInvalidChar
// with errors.Is.
type InvalidCharError struct {
	Char rune
}

func (e InvalidCharError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidChar, e.Char)
}

func (e InvalidCharError) Is(target error) bool {
	return target == ErrInvalidChar
}

// Policy controls where underscores may appear.
type Policy struct {
	AllowUnderscores bool
	AllowLeading     bool
	AllowTrailing    bool
	AllowDouble      bool
}

// DefaultPolicy allows single underscores between digits only.
func DefaultPolicy() Policy {
	return Policy{AllowUnderscores: true}
}

// Validate checks s against the policy and returns it with leading and
// trailing underscores removed.
func (p Policy) Validate(s string) (string, error) {
	if s == "" {
		return "", ErrEmpty
	}
	if i := strings.IndexFunc(s, func(r rune) bool { return (r < '0' || r > '9') && r != '_' }); i >= 0 {
		return "", InvalidCharError{Char: []rune(s[i:])[0]}
	}
	switch {
	case !p.AllowUnderscores && strings.Contains(s, "_"):
		return "", ErrContainsUnderscore
	case !p.AllowLeading && s[0] == '_':
		return "", ErrStartsWithUnderscore
	case !p.AllowTrailing && s[len(s)-1] == '_':
		return "", ErrEndsWithUnderscore
	case !p.AllowDouble && strings.Contains(s, "__"):
		return "", ErrContainsDoubleUnderscore
	}
	trimmed := strings.Trim(s, "_")
	if trimmed == "" {
		return "", ErrContainsOnlyUnderscores
	}
	return trimmed, nil
}

func (p Policy) digits(s string) (string, error) {
	v, err := p.Validate(s)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(v, "_", ""), nil
}

// ParseUint parses s into an unsigned integer of the given bit size
// (8, 16, 32 or 64).
func (p Policy) ParseUint(s string, bits int) (uint64, error) {
	switch bits {
	case 8, 16, 32, 64:
	default:
		return 0, fmt.Errorf("unsupported bit size %d", bits)
	}
	d, err := p.digits(s)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(d, 10, bits)
	if err != nil {
		return 0, ErrOutOfRange
	}
	return v, nil
}

// ParseBig parses s without a size limit.
func (p Policy) ParseBig(s string) (*big.Int, error) {
	d, err := p.digits(s)
	if err != nil {
		return nil, err
	}
	v, ok := new(big.Int).SetString(d, 10)
	if !ok {
		return nil, ErrOutOfRange
	}
	return v, nil
}

// ParseSized parses s into an unsigned value of the given bit size: 8, 16,
// 32, 64 or 128. bits == 0 parses without a size limit.
func (p Policy) ParseSized(s string, bits int) (*big.Int, error) {
	switch bits {
	case 0:
		return p.ParseBig(s)
	case 128:
		v, err := p.ParseBig(s)
		if err != nil {
			return nil, err
		}
		if v.BitLen() > 128 {
			return nil, ErrOutOfRange
		}
		return v, nil
	}
	u, err := p.ParseUint(s, bits)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetUint64(u), nil
}

// Literal matches the symbol at c and parses it with ParseSized. On failure the error is a *parse.Error[error] located at the
// symbol (or the offending character when there is no symbol) and c is
// returned unchanged.
func (p Policy) Literal(c parse.Cursor, bits int) (*big.Int, source.Span, parse.Cursor, error) {
	sym, rest, ok := c.Symbol()
	if !ok {
		return nil, source.Span{}, c, parse.ToError[error](c, ErrEmpty)
	}
	v, err := p.ParseSized(sym.Text, bits)
	if err != nil {
		return nil, sym, c, parse.ToError(c, err)
	}
	return v, sym, rest, nil
}

// Code maps a validation error to its diagnostic code.
func Code(err error) diag.Code {
	switch {
	case err == nil:
		return diag.UnknownCode
	case errors.Is(err, ErrEmpty):
		return diag.IntEmpty
	case errors.Is(err, ErrInvalidChar):
		return diag.IntInvalidChar
	case errors.Is(err, ErrOutOfRange):
		return diag.IntOutOfRange
	case errors.Is(err, ErrContainsUnderscore), errors.Is(err, ErrStartsWithUnderscore),
		errors.Is(err, ErrEndsWithUnderscore), errors.Is(err, ErrContainsDoubleUnderscore),
		errors.Is(err, ErrContainsOnlyUnderscores):
		return diag.IntUnderscore
	}
	return diag.UnknownCode
}
