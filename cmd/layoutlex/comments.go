package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"layoutlex/internal/diag"
	"layoutlex/internal/diagfmt"
	"layoutlex/internal/driver"
	"layoutlex/internal/source"
)

var commentsCmd = &cobra.Command{
	Use:   "comments [flags] FILE",
	Short: "Print the comment blocks found above code lines",
	Long: `Comments finds every line that follows a layout run and prints the block of
comment lines written directly above it at the same indentation`,
	Args: cobra.ExactArgs(1),
	RunE: runComments,
}

func init() {
	commentsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	commentsCmd.Flags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	commentsCmd.Flags().Int("wrap", 0, "wrap comment text at this width (0 = keep lines)")
	commentsCmd.Flags().Uint("indent", 4, "spaces in front of comment lines in pretty output")
}

func runComments(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	pathModeFlag, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, err := diagfmt.ParsePathMode(pathModeFlag)
	if err != nil {
		return err
	}
	wrap, err := cmd.Flags().GetInt("wrap")
	if err != nil {
		return fmt.Errorf("failed to get wrap flag: %w", err)
	}
	indent, err := cmd.Flags().GetUint("indent")
	if err != nil {
		return fmt.Errorf("failed to get indent flag: %w", err)
	}

	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if _, ok := st.parse.Delimiter(); !ok {
		return fmt.Errorf("no comment delimiter configured (set --delimiter or [comments].delimiter)")
	}
	timer, err := newTimer(cmd)
	if err != nil {
		return err
	}

	endLoad := timePhase(timer, "load")
	fs := source.NewFileSet()
	fileID, err := fs.Load(args[0])
	endLoad()
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}
	file := fs.Get(fileID)

	endAnnotate := timePhase(timer, "annotate")
	bag := diag.NewBag(st.maxDiagnostics())
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag, File: file.ID})
	anchors := driver.AnnotateSpan(file.Span(), st.parse, reporter)
	endAnnotate()

	if err := printDiagnostics(os.Stderr, bag, fs, st.useColor(os.Stderr)); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		err = diagfmt.FormatCommentsJSON(out, fs, file, anchors, pathMode)
	} else {
		err = diagfmt.FormatCommentsPretty(out, fs, file, anchors, diagfmt.CommentOpts{
			Color:    st.useColor(os.Stdout),
			PathMode: pathMode,
			Width:    wrap,
			Indent:   indent,
		})
	}
	printTimings(os.Stderr, timer)
	return err
}
