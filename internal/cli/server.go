package cli

import (
	"github.com/spf13/cobra"

	"slice-language-server/internal/lsp"
	"slice-language-server/internal/session"
	"slice-language-server/internal/slicec"
)

var (
	slicecPath string
	verbose    bool
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the language server on stdio",
	Long: `Run the language server. The editor connects over stdio; all logging goes
to stderr.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().StringVar(&slicecPath, "slicec", slicec.DefaultCommand, "Path of the Slice compiler executable")
	serverCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(serverCmd)
}

func runServer(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	compiler := slicec.NewCommandCompiler(slicecPath)
	sess := session.New(compiler, logger)
	server := lsp.NewServer(sess, logger)

	logger.Info("starting slice language server on stdio")
	return server.RunStdio(cmd.Context())
}
