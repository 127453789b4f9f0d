package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"layoutlex/internal/driver"
	"layoutlex/internal/prof"
)

var scanCmd = &cobra.Command{
	Use:   "scan [flags] DIR",
	Short: "Tokenize every file of a directory tree",
	Long: `Scan tokenizes and lints every matching file under DIR in parallel and
prints per-file and total counts. Unchanged files are answered from the cache`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringSlice("ext", nil, "file extensions to scan, e.g. .go,.py; overrides [scan].extensions")
	scanCmd.Flags().Int("jobs", 0, "parallel workers (0 = GOMAXPROCS); overrides [scan].jobs")
	scanCmd.Flags().String("ui", "auto", "progress UI mode (auto|on|off)")
	scanCmd.Flags().Bool("no-cache", false, "do not read or write the disk cache")
	scanCmd.Flags().Bool("clear-cache", false, "drop cached summaries before scanning")
	scanCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	scanCmd.Flags().Bool("diagnostics", false, "print diagnostics of every file")
	scanCmd.Flags().String("cpu-profile", "", "write a CPU profile to this file")
	scanCmd.Flags().String("mem-profile", "", "write a heap profile to this file after the scan")
	scanCmd.Flags().String("runtime-trace", "", "write a runtime trace to this file")
}

func runScan(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	format, err := flags.GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	uiMode, err := readSwitchMode("ui", uiFlag)
	if err != nil {
		return err
	}
	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	clearCache, err := flags.GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	showDiagnostics, err := flags.GetBool("diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get diagnostics flag: %w", err)
	}

	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	scanCfg := st.cfg.Scan
	if flags.Changed("ext") {
		if scanCfg.Extensions, err = flags.GetStringSlice("ext"); err != nil {
			return err
		}
	}
	if flags.Changed("jobs") {
		if scanCfg.Jobs, err = flags.GetInt("jobs"); err != nil {
			return err
		}
	}
	checked := st.cfg
	checked.Scan = scanCfg
	if err := checked.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	timer, err := newTimer(cmd)
	if err != nil {
		return err
	}
	req := driver.ScanRequest{
		Dir:          args[0],
		Scan:         scanCfg,
		Parse:        st.parse,
		WarnControls: true,
		Observer:     phaseObserver(timer),
	}
	if scanCfg.Cache && !noCache {
		req.Cache = openCache(clearCache)
	}

	profiling, err := readProfileOptions(flags)
	if err != nil {
		return err
	}
	if profiling.Enabled() {
		log.Infof("profiling scan of %s", args[0])
	}
	session, err := prof.Start(profiling)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Stop(); err != nil {
			log.Warningf("%s", err.Error())
		}
	}()

	var result *driver.ScanResult
	if format == "pretty" && uiMode.enabled(os.Stdout) {
		result, err = runScanWithUI(cmd.Context(), "scanning "+args[0], &req)
	} else {
		result, err = driver.Scan(cmd.Context(), req)
	}
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if showDiagnostics {
		for i := range result.Files {
			if err := printDiagnostics(os.Stderr, result.Files[i].Bag, result.FileSet, st.useColor(os.Stderr)); err != nil {
				return err
			}
		}
	}
	if format == "json" {
		err = writeScanJSON(out, result)
	} else {
		err = writeScanTable(out, result)
	}
	if err != nil {
		return err
	}
	printTimings(os.Stderr, timer)
	if result.Totals().Errors > 0 {
		return errHasErrors
	}
	return nil
}

func readProfileOptions(flags *pflag.FlagSet) (prof.Options, error) {
	var (
		opts prof.Options
		err  error
	)
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return opts, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return opts, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return opts, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	return opts, nil
}

// openCache opens the user cache; a cache that cannot be opened only
// disables caching.
func openCache(clear bool) *driver.DiskCache {
	cache, err := driver.OpenDiskCache("layoutlex")
	if err != nil {
		log.Warningf("disk cache disabled: %s", err.Error())
		return nil
	}
	if clear {
		if err := cache.DropAll(); err != nil {
			log.Warningf("failed to clear cache %s: %s", cache.Dir(), err.Error())
		}
	}
	return cache
}

func writeScanTable(out io.Writer, result *driver.ScanResult) error {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("file", "tokens", "lines", "anchors", "comments", "diags").
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return lipgloss.NewStyle().Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
		})
	for i := range result.Files {
		f := &result.Files[i]
		name := f.Path
		if f.Cached {
			name += " (cached)"
		}
		tbl.Row(name,
			strconv.Itoa(f.Tokens), strconv.Itoa(f.Lines),
			strconv.Itoa(f.Anchors), strconv.Itoa(f.Comments),
			strconv.Itoa(bagLen(f)))
	}
	if _, err := fmt.Fprintln(out, tbl.Render()); err != nil {
		return err
	}
	t := result.Totals()
	_, err := fmt.Fprintf(out, "%d file(s), %d cached: %d tokens, %d lines, %d anchors, %d comment lines, %d distinct symbols, %d error(s), %d warning(s)\n",
		t.Files, t.Cached, t.Tokens, t.Lines, t.Anchors, t.Comments, t.Symbols, t.Errors, t.Warnings)
	return err
}

type scanFileJSON struct {
	Path        string         `json:"path"`
	Cached      bool           `json:"cached"`
	Tokens      int            `json:"tokens"`
	Lines       int            `json:"lines"`
	Anchors     int            `json:"anchors"`
	Comments    int            `json:"comments"`
	Kinds       map[string]int `json:"kinds,omitempty"`
	Diagnostics int            `json:"diagnostics"`
}

type scanJSON struct {
	Files  []scanFileJSON `json:"files"`
	Totals driver.Totals  `json:"totals"`
}

func buildScanJSON(result *driver.ScanResult) scanJSON {
	payload := scanJSON{
		Files:  make([]scanFileJSON, 0, len(result.Files)),
		Totals: result.Totals(),
	}
	for i := range result.Files {
		f := &result.Files[i]
		payload.Files = append(payload.Files, scanFileJSON{
			Path:        f.Path,
			Cached:      f.Cached,
			Tokens:      f.Tokens,
			Lines:       f.Lines,
			Anchors:     f.Anchors,
			Comments:    f.Comments,
			Kinds:       f.Kinds,
			Diagnostics: bagLen(f),
		})
	}
	return payload
}

func writeScanJSON(out io.Writer, result *driver.ScanResult) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(buildScanJSON(result))
}

func bagLen(f *driver.FileSummary) int {
	if f.Bag == nil {
		return 0
	}
	return f.Bag.Len()
}
