// Package cmd defines the CLI commands for faas-installer.
package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/faas-installer/internal/config"
	"github.com/donaldgifford/faas-installer/internal/ui"
)

var (
	verbose bool
	noColor bool
	cfgFile string
)

// rootCmd is the base command for the faas-installer CLI.
var rootCmd = &cobra.Command{
	Use:   "faas-installer",
	Short: "Install the faas-cli binary for this platform",
	Long: `faas-installer downloads the faas-cli release artifact that matches the
host operating system and architecture into <install-dir>/bin and marks it
executable. It installs the latest release unless a tag is pinned.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		initLogger()
	},
}

// Execute runs the root command. Errors are printed to stderr before being
// returned, so callers only need to set the exit code.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		ui.NewWriterWithOutputs(rootCmd.OutOrStdout(), rootCmd.ErrOrStderr(), colorDisabled()).Error(err.Error())
	}

	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/faas-installer/config.yaml)")
}

func initLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func colorDisabled() bool {
	return noColor || color.NoColor
}

func newWriter(cmd *cobra.Command) *ui.Writer {
	return ui.NewWriterWithOutputs(cmd.OutOrStdout(), cmd.ErrOrStderr(), colorDisabled())
}

// loadConfig reads --config, or the default path when the flag is unset.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	return config.Load(path)
}
