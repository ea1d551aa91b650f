package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yashsidana/code-clarified/internal/config"
	"github.com/yashsidana/code-clarified/pkg/buildinfo"
)

// cfgFile is the --config flag value, shared by all subcommands.
var cfgFile string

// loadConfig loads the layered configuration honoring the --config flag.
func loadConfig() (config.Config, error) {
	return config.Load(cfgFile)
}

// Execute runs the codeclarified CLI and returns an error if any command
// fails. This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (analyze,
// functions, serve, cache), configures logging based on the --verbose flag,
// and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "codeclarified",
		Short:        "Code Clarified turns Python code into flowcharts",
		Long:         `Code Clarified parses Python source, extracts each function's decisions, loops, and returns, and renders the result as a control-flow diagram with an optional AI explanation.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/code-clarified/config.toml)")

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newFunctionsCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}
