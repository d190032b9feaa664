// Package main is the entry point for fukuiiconf.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	_ "github.com/donaldgifford/fukuiiconf/internal/rules" // Register quote rules via init().
	"github.com/donaldgifford/fukuiiconf/internal/runner"
)

// Build-time variables set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	configPath string
	logLevel   string

	// exitCode is set by the command that ran.
	exitCode = runner.ExitOK
)

var rootCmd = &cobra.Command{
	Use:   "fukuiiconf",
	Short: "Generate Fukuii node configuration files",
	Long: `fukuiiconf builds Fukuii node configuration from profile presets,
chain fork tables and individual overrides, and imports existing flat
configuration files back into an editable session.

Configuration:
  The tool looks for its own settings in:
  1. --config flag (explicit path)
  2. fukuiiconf.yml, fukuiiconf.yaml, .fukuiiconf.yml or .fukuiiconf.yaml
     in the current directory

Environment Variables:
  FUKUIICONF_LOG_LEVEL             - log level (overrides the config file)
  FUKUIICONF_WIZARD_DEFAULT_CHAIN  - chain used when none is selected
  FUKUIICONF_PRODUCT_VERSION       - node version written in headers`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error, disabled")

	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newChainCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newCatalogCmd())
	rootCmd.AddCommand(newTUICmd())
	rootCmd.AddCommand(newVersionCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "fukuiiconf: %v\n", err)
		os.Exit(runner.ExitError)
	}
	os.Exit(exitCode)
}

// runnerOptions returns the environment options shared by all commands.
func runnerOptions(cmd *cobra.Command) *runner.Options {
	return &runner.Options{
		ConfigPath: configPath,
		LogLevel:   logLevel,
		Stdin:      cmd.InOrStdin(),
		Stdout:     cmd.OutOrStdout(),
		Stderr:     cmd.ErrOrStderr(),
	}
}
