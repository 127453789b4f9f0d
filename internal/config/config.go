// Package config loads layoutlex.toml and validates option bounds.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"layoutlex/internal/intlit"
	"layoutlex/internal/parse"
)

// FileName is the project configuration file looked up from the working directory.
const FileName = "layoutlex.toml"

const (
	MinTabWidth           = 1
	MaxTabWidth           = 16
	MaxDelimiterLen       = 8
	DefaultMaxDiagnostics = 100
)

var ErrInvalid = errors.New("invalid configuration")

type Comments struct {
	Delimiter string `toml:"delimiter"`
	TabWidth  int    `toml:"tab_width"`
	Trim      bool   `toml:"trim"`
}

type Scan struct {
	Extensions     []string `toml:"extensions"`
	Jobs           int      `toml:"jobs"`
	MaxDiagnostics int      `toml:"max_diagnostics"`
	Cache          bool     `toml:"cache"`
}

type Int struct {
	AllowUnderscores bool `toml:"allow_underscores"`
	AllowLeading     bool `toml:"allow_leading"`
	AllowTrailing    bool `toml:"allow_trailing"`
	AllowDouble      bool `toml:"allow_double"`
}

type Config struct {
	// Path is the file the config was loaded from; empty for defaults.
	Path     string   `toml:"-"`
	Comments Comments `toml:"comments"`
	Scan     Scan     `toml:"scan"`
	Int      Int      `toml:"int"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Comments: Comments{Delimiter: "//", TabWidth: parse.DefaultTabWidth},
		Scan:     Scan{MaxDiagnostics: DefaultMaxDiagnostics, Cache: true},
		Int:      Int{AllowUnderscores: true},
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path on top of Default and validates the result.
// Keys absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: %w: unknown keys %s", path, ErrInvalid, strings.Join(keys, ", "))
	}
	if meta.IsDefined("comments", "tab_width") && cfg.Comments.TabWidth == 0 {
		return Config{}, fmt.Errorf("%s: %w: [comments].tab_width must be at least %d", path, ErrInvalid, MinTabWidth)
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads the nearest config file, falling back to Default.
func Discover(startDir string) (Config, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return Default(), false, err
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, true, err
	}
	return cfg, true, nil
}

// Validate checks option bounds. An empty delimiter disables comments.
func (c Config) Validate() error {
	d := c.Comments.Delimiter
	if d != "" {
		if len(d) > MaxDelimiterLen {
			return fmt.Errorf("%w: [comments].delimiter longer than %d bytes", ErrInvalid, MaxDelimiterLen)
		}
		if !parse.IsValidDelimiter(d) {
			return fmt.Errorf("%w: %w", ErrInvalid, parse.ErrInvalidDelimiter)
		}
	}
	if w := c.Comments.TabWidth; w < MinTabWidth || w > MaxTabWidth {
		return fmt.Errorf("%w: %w: [comments].tab_width %d not in %d..%d", ErrInvalid, parse.ErrInvalidTabWidth, w, MinTabWidth, MaxTabWidth)
	}
	if c.Scan.Jobs < 0 {
		return fmt.Errorf("%w: [scan].jobs must not be negative", ErrInvalid)
	}
	if c.Scan.MaxDiagnostics < 0 {
		return fmt.Errorf("%w: [scan].max_diagnostics must not be negative", ErrInvalid)
	}
	for _, ext := range c.Scan.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: [scan].extensions entry %q must start with '.'", ErrInvalid, ext)
		}
	}
	return nil
}

// ParseConfig builds the parse configuration for the [comments] section.
func (c Config) ParseConfig() (*parse.Config, error) {
	return parse.NewConfig(parse.Options{
		Delimiter:    c.Comments.Delimiter,
		TabWidth:     c.Comments.TabWidth,
		TrimComments: c.Comments.Trim,
	})
}

// IntPolicy returns the integer literal policy for the [int] section.
func (c Config) IntPolicy() intlit.Policy {
	return intlit.Policy{
		AllowUnderscores: c.Int.AllowUnderscores,
		AllowLeading:     c.Int.AllowLeading,
		AllowTrailing:    c.Int.AllowTrailing,
		AllowDouble:      c.Int.AllowDouble,
	}
}

// MatchesExtension reports whether path should be scanned.
// No configured extensions means every file.
func (s Scan) MatchesExtension(path string) bool {
	if len(s.Extensions) == 0 {
		return true
	}
	ext := filepath.Ext(path)
	for _, e := range s.Extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
