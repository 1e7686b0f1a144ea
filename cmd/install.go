package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/faas-installer/internal/config"
	"github.com/donaldgifford/faas-installer/internal/getter"
	"github.com/donaldgifford/faas-installer/internal/installer"
	"github.com/donaldgifford/faas-installer/internal/platform"
)

var (
	installVersion       string
	installDir           string
	installRemovePartial bool
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Download faas-cli into <install-dir>/bin",
	Long: `Resolve the artifact for this platform, look up its download URL, and
download it to <install-dir>/bin/<artifact>. Any existing file at that path is
replaced. The install dir defaults to the directory holding faas-installer.`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVar(&installVersion, "version", "", "release tag to install (default \"latest\")")
	installCmd.Flags().StringVar(&installDir, "dir", "", "install directory; bin/ is created inside it")
	installCmd.Flags().BoolVar(&installRemovePartial, "remove-partial", false, "delete the destination if the download fails")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("version") {
		cfg.Version = installVersion
	}

	if cmd.Flags().Changed("dir") {
		cfg.InstallDir = installDir
	}

	if cmd.Flags().Changed("remove-partial") {
		cfg.RemovePartial = installRemovePartial
	}

	ctx, cancel := withTimeout(cmd.Context(), cfg)
	defer cancel()

	dir, err := cfg.ResolveInstallDir()
	if err != nil {
		return err
	}

	logger := slog.Default()

	locator, err := newLocator(cfg, logger)
	if err != nil {
		return err
	}

	inst, err := installer.New(installer.Options{
		Platform:      platform.Detect(ctx),
		BaseName:      cfg.BaseName,
		InstallDir:    dir,
		Locator:       locator,
		Downloader:    getter.New(logger),
		RemovePartial: cfg.RemovePartial,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("creating installer: %w", err)
	}

	w := newWriter(cmd)
	w.Infof("Installing %s into %s", cfg.BaseName, filepath.Join(dir, installer.BinDir))

	res, err := inst.Install(ctx)
	if err != nil {
		var stageErr *installer.StageError
		if errors.As(err, &stageErr) && stageErr.Stage == installer.Downloading && !cfg.RemovePartial {
			w.Warningf("%s may hold a partial download", filepath.Join(dir, installer.BinDir))
		}

		return err
	}

	w.Successf("Download complete: %s (%s)", res.Path, res.Mode)

	return nil
}

// withTimeout bounds ctx by cfg.Timeout. A zero timeout leaves ctx alone.
func withTimeout(ctx context.Context, cfg *config.Config) (context.Context, context.CancelFunc) {
	if cfg.Timeout > 0 {
		return context.WithTimeout(ctx, cfg.Timeout)
	}

	return context.WithCancel(ctx)
}
