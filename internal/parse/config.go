package parse

import (
	"errors"
	"fmt"
	"strings"

	"layoutlex/internal/source"
)

var (
	ErrInvalidDelimiter = errors.New("invalid line-comment delimiter")
	ErrInvalidTabWidth  = errors.New("invalid tab width")
)

// DefaultTabWidth is the number of spaces that make one indent level.
const DefaultTabWidth = 4

// Options is the mutable input to NewConfig.
type Options struct {
	// Delimiter starts a line comment; empty means comments are not recognised.
	Delimiter string
	// TabWidth is the number of spaces per indent level; 0 means DefaultTabWidth.
	TabWidth int
	// TrimComments trims surrounding whitespace from extracted comment text.
	TrimComments bool
}

// Config is the immutable parse configuration shared by cursors.
type Config struct {
	delimiter string
	tabWidth  int
	trim      bool
}

// DefaultConfig has no comment delimiter and DefaultTabWidth.
func DefaultConfig() *Config {
	return &Config{tabWidth: DefaultTabWidth}
}

// IsValidDelimiter reports whether s can delimit line comments: it must be
// non-empty and must not contain CR or LF.
func IsValidDelimiter(s string) bool {
	return s != "" && !strings.ContainsAny(s, "\r\n")
}

// NewConfig validates opts and builds a Config. A zero TabWidth is the unset
// value and becomes DefaultTabWidth; a negative one is rejected.
func NewConfig(opts Options) (*Config, error) {
	if opts.Delimiter != "" && !IsValidDelimiter(opts.Delimiter) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDelimiter, opts.Delimiter)
	}
	if opts.TabWidth < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTabWidth, opts.TabWidth)
	}
	return NewConfigUnchecked(opts), nil
}

// NewConfigUnchecked builds a Config from options the caller has already
// validated. Preconditions are asserted only in layoutlex_debug builds.
func NewConfigUnchecked(opts Options) *Config {
	if source.CheckInvariants {
		if opts.Delimiter != "" && !IsValidDelimiter(opts.Delimiter) {
			panic(fmt.Errorf("%w: %q", ErrInvalidDelimiter, opts.Delimiter))
		}
		if opts.TabWidth < 0 {
			panic(fmt.Errorf("%w: %d", ErrInvalidTabWidth, opts.TabWidth))
		}
	}
	width := opts.TabWidth
	if width == 0 {
		width = DefaultTabWidth
	}
	return &Config{
		delimiter: opts.Delimiter,
		tabWidth:  width,
		trim:      opts.TrimComments,
	}
}

// Delimiter returns the line-comment delimiter, if one is configured.
func (c *Config) Delimiter() (string, bool) {
	return c.delimiter, c.delimiter != ""
}

func (c *Config) TabWidth() int { return c.tabWidth }

func (c *Config) TrimComments() bool { return c.trim }

// Options returns the options this config was built from.
func (c *Config) Options() Options {
	return Options{Delimiter: c.delimiter, TabWidth: c.tabWidth, TrimComments: c.trim}
}
