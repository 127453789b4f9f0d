package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"golang.org/x/term"

	"layoutlex/internal/config"
	"layoutlex/internal/version"
)

var log = commonlog.GetLogger("layoutlex.cli")

var rootCmd = &cobra.Command{
	Use:   "layoutlex",
	Short: "Layout-preserving tokenizer and comment extractor",
	Long: `layoutlex splits text into layout-aware tokens, extracts comment blocks
that sit above code lines and checks files for layout problems`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

// main registers subcommands and global flags, then executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(commentsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(intCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(versionCmd)

	registerGlobalFlags(rootCmd.PersistentFlags())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerGlobalFlags defines the flags shared by every command.
func registerGlobalFlags(fs *pflag.FlagSet) {
	// Глобальные флаги
	fs.String("color", "auto", "colorize output (auto|on|off)")
	fs.Bool("timings", false, "show timing information")
	fs.Int("max-diagnostics", config.DefaultMaxDiagnostics, "maximum number of diagnostics to keep per file")
	fs.CountP("verbose", "v", "increase log verbosity (repeatable)")
	fs.String("log-file", "", "write logs to this file instead of stderr")
	fs.String("config", "", "path to "+config.FileName+" (default: search upwards from the working directory)")

	// Переопределения секции [comments]
	fs.String("delimiter", "", "comment delimiter; overrides [comments].delimiter")
	fs.Int("tab-width", 0, "tab width for indentation; overrides [comments].tab_width")
	fs.Bool("trim", false, "trim whitespace around extracted comment text; overrides [comments].trim")
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()
	verbosity, err := flags.GetCount("verbose")
	if err != nil {
		return err
	}
	logFile, err := flags.GetString("log-file")
	if err != nil {
		return err
	}
	var path *string
	if logFile != "" {
		path = &logFile
	}
	commonlog.Configure(verbosity, path)
	return nil
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
