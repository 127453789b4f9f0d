package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"layoutlex/internal/diag"
	"layoutlex/internal/diagfmt"
	"layoutlex/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] FILE...",
	Short: "Report layout problems in files",
	Long: `Check validates the token stream of every file and reports mixed line
endings, trailing whitespace, control bytes and misplaced comment blocks`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Bool("strict", false, "fail on warnings as well as errors")
	checkCmd.Flags().String("min-severity", "info", "hide diagnostics below this severity (info|warning|error)")
}

type checkCounts struct {
	files    int
	errors   int
	warnings int
}

func (c *checkCounts) add(bag *diag.Bag) {
	c.files++
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			c.errors++
		case diag.SevWarning:
			c.warnings++
		}
	}
}

func (c checkCounts) failed(strict bool) bool {
	return c.errors > 0 || (strict && c.warnings > 0)
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return fmt.Errorf("failed to get strict flag: %w", err)
	}

	minSevFlag, err := cmd.Flags().GetString("min-severity")
	if err != nil {
		return fmt.Errorf("failed to get min-severity flag: %w", err)
	}
	minSev, err := diag.ParseSeverity(minSevFlag)
	if err != nil {
		return err
	}

	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	timer, err := newTimer(cmd)
	if err != nil {
		return err
	}

	var counts checkCounts
	for _, path := range args {
		endFile := timePhase(timer, path)
		result, err := checkFile(path, st)
		endFile()
		if err != nil {
			return err
		}
		counts.add(result.Bag)
		shown := result.Bag.Filter(minSev)

		if format == "json" {
			err = diagfmt.JSON(cmd.OutOrStdout(), shown, result.FileSet, diagfmt.JSONOpts{
				IncludePositions: true,
				IncludeNotes:     true,
			})
		} else {
			err = printDiagnostics(cmd.OutOrStdout(), shown, result.FileSet, st.useColor(os.Stdout))
		}
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stderr, "checked %d file(s): %d error(s), %d warning(s)\n", counts.files, counts.errors, counts.warnings)
	printTimings(os.Stderr, timer)
	if counts.failed(strict) {
		return errHasErrors
	}
	return nil
}

// checkFile lexes and lints path, then adds comment-block diagnostics to the
// same bag.
func checkFile(path string, st *settings) (*driver.TokenizeResult, error) {
	result, err := driver.Tokenize(path, driver.TokenizeOptions{
		MaxDiagnostics: st.maxDiagnostics(),
		WarnControls:   true,
		Lint:           true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	if result.Lex != nil {
		reporter := diag.NewDedupReporter(diag.BagReporter{Bag: result.Bag, File: result.File.ID})
		driver.AnnotateSpan(result.File.Span(), st.parse, reporter)
	}
	result.Bag.Sort()
	return result, nil
}
