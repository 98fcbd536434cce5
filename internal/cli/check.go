package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"slice-language-server/internal/config"
	"slice-language-server/internal/diag"
	"slice-language-server/internal/session"
	"slice-language-server/internal/slicec"
)

var (
	checkConfigPath string
	checkWorkspace  string
	checkBuiltins   string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compile a workspace once and print its diagnostics",
	Long: `Compile every configuration set of a workspace once and print the
diagnostics to the terminal. The configuration file uses the same fields as
the editor settings:

  builtinSlicePath: /opt/slice/well-known-types
  configurations:
    - paths: [slice, vendored/slice]
      addWellKnownTypes: true
      lints:
        Deprecated: allow

Exits non-zero when any error-level diagnostic is reported.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkConfigPath, "config", "c", "slice-lsp.yaml", "Configuration file path, relative to the workspace")
	checkCmd.Flags().StringVarP(&checkWorkspace, "workspace", "w", ".", "Workspace root")
	checkCmd.Flags().StringVar(&checkBuiltins, "builtin-slice-path", "", "Path of the built-in Slice files (overrides the configuration file)")
	checkCmd.Flags().StringVar(&slicecPath, "slicec", slicec.DefaultCommand, "Path of the Slice compiler executable")
	rootCmd.AddCommand(checkCmd)
}

// checkFile is the YAML shape of the check configuration.
type checkFile struct {
	BuiltinSlicePath string               `yaml:"builtinSlicePath"`
	Configurations   []checkConfiguration `yaml:"configurations"`
}

type checkConfiguration struct {
	Paths             []string          `yaml:"paths"`
	AddWellKnownTypes *bool             `yaml:"addWellKnownTypes"`
	Lints             map[string]string `yaml:"lints"`
}

func (c checkConfiguration) sliceConfig() config.SliceConfig {
	cfg := config.Default()
	cfg.Paths = c.Paths
	if c.AddWellKnownTypes != nil {
		cfg.IncludeBuiltinTypes = *c.AddWellKnownTypes
	}
	cfg.LintLevels = c.Lints
	return cfg
}

func runCheck(cmd *cobra.Command, _ []string) error {
	workspaceRoot, err := filepath.Abs(checkWorkspace)
	if err != nil {
		return fmt.Errorf("resolving workspace root: %w", err)
	}

	parsed, err := loadCheckFile(filepath.Join(workspaceRoot, checkConfigPath))
	if err != nil {
		return err
	}

	builtins := checkBuiltins
	if builtins == "" {
		builtins = parsed.BuiltinSlicePath
	}
	if builtins == "" {
		return fmt.Errorf("no built-in Slice path: set builtinSlicePath in %s or pass --builtin-slice-path", checkConfigPath)
	}
	if !filepath.IsAbs(builtins) {
		builtins = filepath.Join(workspaceRoot, builtins)
	}

	cfgs := make([]config.SliceConfig, 0, len(parsed.Configurations))
	for _, entry := range parsed.Configurations {
		cfgs = append(cfgs, entry.sliceConfig())
	}

	server := config.ServerConfig{WorkspaceRoot: workspaceRoot, BuiltinSlicePath: builtins}
	compiler := slicec.NewCommandCompiler(slicecPath)

	errorCount := 0
	total := 0
	for _, cfg := range cfgs {
		set := session.NewConfigurationSet(cfg)
		diags := set.Recompile(cmd.Context(), server, compiler)
		total += len(diags)
		errorCount += diag.Fprint(os.Stdout, diags)
	}

	if errorCount > 0 {
		return fmt.Errorf("%d error(s) in %d diagnostic(s)", errorCount, total)
	}
	fmt.Printf("ok: %d configuration set(s), %d diagnostic(s)\n", len(cfgs), total)
	return nil
}

func loadCheckFile(path string) (*checkFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	var parsed checkFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(parsed.Configurations) == 0 {
		parsed.Configurations = []checkConfiguration{{}}
	}
	return &parsed, nil
}
