package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/faas-installer/internal/config"
	"github.com/donaldgifford/faas-installer/internal/platform"
	"github.com/donaldgifford/faas-installer/internal/release"
)

var locateVersion string

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Print the download URL for this platform's artifact",
	Long:  `Resolve the release artifact for this platform and print its download URL without downloading anything.`,
	Args:  cobra.NoArgs,
	RunE:  runLocate,
}

func init() {
	locateCmd.Flags().StringVar(&locateVersion, "version", "", "release tag to look up (default \"latest\")")
	rootCmd.AddCommand(locateCmd)
}

func runLocate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("version") {
		cfg.Version = locateVersion
	}

	ctx, cancel := withTimeout(cmd.Context(), cfg)
	defer cancel()

	artifact, err := platform.Detect(ctx).ArtifactName(cfg.BaseName)
	if err != nil {
		return err
	}

	locator, err := newLocator(cfg, slog.Default())
	if err != nil {
		return err
	}

	url, err := locator.Locate(ctx, artifact)
	if err != nil {
		return err
	}

	newWriter(cmd).Printf("%s\n", url)

	return nil
}

func newLocator(cfg *config.Config, logger *slog.Logger) (release.Locator, error) {
	return release.New(release.Options{
		Repo:    cfg.Repo,
		Version: cfg.Version,
		APIURL:  cfg.APIURL,
		WebURL:  cfg.WebURL,
		Logger:  logger,
	})
}
