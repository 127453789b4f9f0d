package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"layoutlex/internal/config"
	"layoutlex/internal/parse"
)

// settings is the configuration a command runs with: the config file with
// command-line overrides applied on top.
type settings struct {
	cfg   config.Config
	parse *parse.Config
	color switchMode
}

// loadSettings reads the config file named by --config, or the nearest
// layoutlex.toml, and applies flag overrides.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Root().PersistentFlags()
	cfg, err := readConfig(flags)
	if err != nil {
		return nil, err
	}
	if err := applyOverrides(&cfg, flags); err != nil {
		return nil, err
	}
	pc, err := cfg.ParseConfig()
	if err != nil {
		return nil, err
	}
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	mode, err := readSwitchMode("color", colorFlag)
	if err != nil {
		return nil, err
	}
	return &settings{cfg: cfg, parse: pc, color: mode}, nil
}

func readConfig(flags *pflag.FlagSet) (config.Config, error) {
	path, err := flags.GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, found, err := config.Discover(wd)
	if err != nil {
		return config.Config{}, err
	}
	if found {
		log.Debugf("using %s", cfg.Path)
	}
	return cfg, nil
}

// applyOverrides copies explicitly set flags into cfg and revalidates it.
// Flags left at their defaults never override file values.
func applyOverrides(cfg *config.Config, flags *pflag.FlagSet) error {
	if flags.Changed("delimiter") {
		d, err := flags.GetString("delimiter")
		if err != nil {
			return err
		}
		cfg.Comments.Delimiter = d
	}
	if flags.Changed("tab-width") {
		w, err := flags.GetInt("tab-width")
		if err != nil {
			return err
		}
		cfg.Comments.TabWidth = w
	}
	if flags.Changed("trim") {
		trim, err := flags.GetBool("trim")
		if err != nil {
			return err
		}
		cfg.Comments.Trim = trim
	}
	if flags.Changed("max-diagnostics") {
		n, err := flags.GetInt("max-diagnostics")
		if err != nil {
			return err
		}
		cfg.Scan.MaxDiagnostics = n
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// useColor reports whether output written to f should be colorized.
func (s *settings) useColor(f *os.File) bool {
	return s.color.enabled(f)
}

// maxDiagnostics is the per-file diagnostics limit; zero means the default.
func (s *settings) maxDiagnostics() int {
	if s.cfg.Scan.MaxDiagnostics <= 0 {
		return config.DefaultMaxDiagnostics
	}
	return s.cfg.Scan.MaxDiagnostics
}
