package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"layoutlex/internal/intlit"
)

var intCmd = &cobra.Command{
	Use:   "int [flags] LITERAL...",
	Short: "Validate decimal integer literals",
	Long: `Int checks decimal literals against the underscore policy from [int] and
the requested width, printing each value or the reason it was rejected`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInt,
}

func init() {
	intCmd.Flags().Int("bits", 64, "value width: 8, 16, 32, 64, 128, or 0 for arbitrary precision")
}

func runInt(cmd *cobra.Command, args []string) error {
	bits, err := cmd.Flags().GetInt("bits")
	if err != nil {
		return fmt.Errorf("failed to get bits flag: %w", err)
	}
	switch bits {
	case 0, 8, 16, 32, 64, 128:
	default:
		return fmt.Errorf("invalid --bits value %d (expected 8|16|32|64|128|0)", bits)
	}
	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if !checkLiterals(cmd.OutOrStdout(), st.cfg.IntPolicy(), bits, args) {
		return errHasErrors
	}
	return nil
}

// checkLiterals prints one line per literal and reports whether all were valid.
func checkLiterals(out io.Writer, policy intlit.Policy, bits int, literals []string) bool {
	ok := true
	for _, lit := range literals {
		value, err := parseLiteral(policy, bits, lit)
		if err != nil {
			ok = false
			fmt.Fprintf(out, "%q\t%s: %s\n", lit, intlit.Code(err).ID(), err.Error())
			continue
		}
		fmt.Fprintf(out, "%q\t%s\n", lit, value)
	}
	return ok
}

func parseLiteral(policy intlit.Policy, bits int, lit string) (string, error) {
	v, err := policy.ParseSized(lit, bits)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}
