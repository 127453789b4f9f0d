package main

import (
	"github.com/spf13/cobra"

	"layoutlex/internal/lsp"
	"layoutlex/internal/version"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Run the layoutlex language server over stdio",
	Args:  cobra.NoArgs,
	RunE:  runLSP,
}

func init() {
	lspCmd.Flags().Bool("warn-controls", true, "publish warnings for runs of control bytes")
}

func runLSP(cmd *cobra.Command, _ []string) error {
	warnControls, err := cmd.Flags().GetBool("warn-controls")
	if err != nil {
		return err
	}
	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	server := lsp.NewServer(lsp.Options{
		Parse:          st.parse,
		WarnControls:   warnControls,
		MaxDiagnostics: st.maxDiagnostics(),
		Version:        version.Version,
	})
	return server.RunStdio()
}
