// Package cli wires up the slice-language-server command line.
package cli

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "slice-language-server",
	Short: "Language server for the Slice interface definition language",
	Long: `slice-language-server implements the Language Server Protocol for Slice.
It maintains independently-configured compilation sets over a workspace,
recompiles the affected sets when a file changes, publishes diagnostics, and
answers goto-definition and hover queries.

The server itself does not parse Slice: it drives the external Slice
compiler and works on the compiled trees it returns.`,
	// Don't show usage when there's an error
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
