package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"layoutlex/internal/diag"
	"layoutlex/internal/diagfmt"
	"layoutlex/internal/driver"
)

const (
	historyFile = ".layoutlex_history"
	promptMain  = "lex> "
	promptCont  = "...> "
	replHelp    = `:mode pretty|lex|json|summary|comments   switch output
:quit                                    leave
a line ending in \ continues on the next line`
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Tokenize lines interactively",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

// replSession evaluates input buffers; it knows nothing about the terminal.
type replSession struct {
	st   *settings
	mode string
}

func runRepl(cmd *cobra.Command, _ []string) error {
	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	session := &replSession{st: st, mode: "pretty"}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "layoutlex repl; type :help for commands\n")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		input, ok := readInput(ln)
		if !ok {
			fmt.Fprintln(out)
			return nil
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(input, "\n", `\n`))
		if session.eval(out, input) {
			return nil
		}
	}
}

// readInput reads one logical input; lines ending in a backslash continue it.
func readInput(ln *liner.State) (string, bool) {
	var b strings.Builder
	prompt := promptMain
	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			return b.String(), true
		}
		if strings.HasSuffix(line, `\`) {
			b.WriteString(strings.TrimSuffix(line, `\`))
			b.WriteByte('\n')
			prompt = promptCont
			continue
		}
		b.WriteString(line)
		return b.String(), true
	}
}

// eval handles one input and reports whether the session should end.
func (s *replSession) eval(out io.Writer, input string) bool {
	if cmd, ok := strings.CutPrefix(strings.TrimSpace(input), ":"); ok {
		return s.command(out, cmd)
	}
	src := input + "\n"
	if err := s.render(out, src); err != nil {
		fmt.Fprintf(out, "error: %s\n", err.Error())
	}
	return false
}

func (s *replSession) command(out io.Writer, cmd string) bool {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		fmt.Fprintln(out, replHelp)
		return false
	}
	switch fields[0] {
	case "quit", "q", "exit":
		return true
	case "help", "h":
		fmt.Fprintln(out, replHelp)
	case "mode":
		if len(fields) != 2 {
			fmt.Fprintf(out, "mode: %s\n", s.mode)
			return false
		}
		switch fields[1] {
		case "pretty", "lex", "json", "summary", "comments":
			s.mode = fields[1]
		default:
			fmt.Fprintf(out, "unknown mode %q\n", fields[1])
		}
	default:
		fmt.Fprintf(out, "unknown command :%s; type :help\n", fields[0])
	}
	return false
}

func (s *replSession) render(out io.Writer, src string) error {
	result := driver.TokenizeSource("<repl>", []byte(src), driver.TokenizeOptions{
		MaxDiagnostics: s.st.maxDiagnostics(),
		WarnControls:   true,
		Lint:           true,
	})
	if result.Lex == nil {
		return printDiagnostics(out, result.Bag, result.FileSet, false)
	}

	var err error
	switch s.mode {
	case "lex":
		err = diagfmt.FormatTokensLex(out, result.Lex)
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens())
	case "summary":
		err = diagfmt.FormatTokenSummary(out, result.Tokens())
	case "comments":
		reporter := diag.NewDedupReporter(diag.BagReporter{Bag: result.Bag, File: result.File.ID})
		anchors := driver.AnnotateSpan(result.File.Span(), s.st.parse, reporter)
		err = diagfmt.FormatCommentsPretty(out, result.FileSet, result.File, anchors, diagfmt.CommentOpts{
			PathMode: diagfmt.PathModeBasename,
			Indent:   4,
		})
	default:
		err = diagfmt.FormatTokensPretty(out, result.Tokens(), diagfmt.TokenOpts{Width: 40})
	}
	if err != nil {
		return err
	}
	return printDiagnostics(out, result.Bag, result.FileSet, false)
}
