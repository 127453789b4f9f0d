package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"layoutlex/internal/diagfmt"
	"layoutlex/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] FILE",
	Short: "Split a file into layout tokens",
	Long:  `Tokenize breaks a file into maximal runs of one byte class and prints them`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|lex|summary)")
	tokenizeCmd.Flags().Int("width", 0, "truncate token text in pretty output to this many columns (0 = no limit)")
	tokenizeCmd.Flags().Bool("lint", false, "also report mixed line endings and trailing whitespace")
	tokenizeCmd.Flags().Bool("warn-controls", true, "warn about runs of control bytes")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "lex", "summary":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return fmt.Errorf("failed to get width flag: %w", err)
	}
	lint, err := cmd.Flags().GetBool("lint")
	if err != nil {
		return fmt.Errorf("failed to get lint flag: %w", err)
	}
	warnControls, err := cmd.Flags().GetBool("warn-controls")
	if err != nil {
		return fmt.Errorf("failed to get warn-controls flag: %w", err)
	}

	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	timer, err := newTimer(cmd)
	if err != nil {
		return err
	}

	// Выполняем токенизацию
	endLex := timePhase(timer, "tokenize")
	result, err := driver.Tokenize(filePath, driver.TokenizeOptions{
		MaxDiagnostics: st.maxDiagnostics(),
		WarnControls:   warnControls,
		Lint:           lint,
	})
	endLex()
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Диагностика в stderr
	if err := printDiagnostics(os.Stderr, result.Bag, result.FileSet, st.useColor(os.Stderr)); err != nil {
		return err
	}
	if result.Lex == nil {
		return fmt.Errorf("tokenization failed: %w", errHasErrors)
	}

	out := cmd.OutOrStdout()
	endPrint := timePhase(timer, "print")
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(out, result.Tokens(), diagfmt.TokenOpts{
			Color: st.useColor(os.Stdout),
			Width: width,
		})
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens())
	case "lex":
		err = diagfmt.FormatTokensLex(out, result.Lex)
	case "summary":
		err = diagfmt.FormatTokenSummary(out, result.Tokens())
	}
	endPrint()
	printTimings(os.Stderr, timer)
	return err
}
